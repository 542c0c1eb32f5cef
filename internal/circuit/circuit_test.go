package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateValidate(t *testing.T) {
	assert.NoError(t, CNOT(0, 1).Validate(2))
	assert.ErrorIs(t, CNOT(1, 1).Validate(2), ErrDuplicateQubit)
	assert.ErrorIs(t, Toffoli(0, 1, 0).Validate(3), ErrDuplicateQubit)
	assert.ErrorIs(t, H(3).Validate(3), ErrQubitRange)
	assert.ErrorIs(t, H(-1).Validate(3), ErrQubitRange)

	c := New(2).Append(H(0), CZ(0, 2))
	assert.ErrorIs(t, c.Validate(), ErrQubitRange)
}

func TestGateQubitsAndRemap(t *testing.T) {
	g := Toffoli(0, 1, 2)
	assert.Equal(t, []int{0, 1, 2}, g.Qubits())
	assert.True(t, g.Touches(1))
	assert.False(t, g.Touches(3))

	r := g.Remap(func(q int) int { return q + 10 })
	assert.Equal(t, Toffoli(10, 11, 12), r)
	assert.Equal(t, H(7), H(2).Remap(func(q int) int { return q + 5 }))
	assert.Equal(t, -1, H(2).Remap(func(q int) int { return q + 5 }).Control)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "HAD", KindH.String())
	assert.Equal(t, "Tdg", KindTdg.String())
	assert.Equal(t, "CNOT(0,1)", CNOT(0, 1).String())
	assert.True(t, KindCZ.IsClifford())
	assert.False(t, KindT.IsClifford())
	assert.False(t, KindTof.IsClifford())
}

func TestInverse(t *testing.T) {
	c := New(2).Append(H(0), S(1), T(0), CNOT(0, 1), Tdg(1))
	inv := c.Inverse()
	assert.Equal(t, []Gate{T(1), CNOT(0, 1), Tdg(0), S(1), Z(1), H(0)}, inv.Gates)
}

func TestMetrics(t *testing.T) {
	c := New(3).Append(
		H(2),
		T(0), T(1),
		CNOT(0, 1),
		H(1),
		Tdg(1),
		CZ(1, 2),
		T(2),
		H(0),
	)
	m := c.Metrics()
	assert.Equal(t, 3, m.Qubits)
	assert.Equal(t, 9, m.Gates)
	assert.Equal(t, 4, m.TCount)
	assert.Equal(t, 2, m.TwoQubit)
	assert.Equal(t, 3, m.Hadamard)
	assert.Equal(t, 1, m.InternalH)
	// T(0) -> CNOT -> Tdg(1) -> CZ -> T(2)
	assert.Equal(t, 3, m.TDepth)

	first, last := c.TRange()
	assert.Equal(t, 1, first)
	assert.Equal(t, 7, last)

	assert.Equal(t, 0, New(1).Append(H(0)).InternalHCount())
}

func TestDAGParallelGates(t *testing.T) {
	c := New(4).Append(H(0), H(1), CNOT(0, 1), X(2))
	dag := FromCircuit(c)

	require.Len(t, dag.Nodes, 4)
	assert.Equal(t, 0, dag.Nodes[0].Step)
	assert.Equal(t, 0, dag.Nodes[1].Step)
	assert.Equal(t, 1, dag.Nodes[2].Step)
	assert.Equal(t, 0, dag.Nodes[3].Step)
	assert.Equal(t, []int{0, 1}, dag.Nodes[2].Dependencies)
	assert.Equal(t, 2, dag.MaxStep())

	order := dag.ToCircuit().Gates
	assert.Equal(t, []Gate{H(0), H(1), X(2), CNOT(0, 1)}, order)

	assert.Equal(t, dag.Nodes[2], dag.GetNodeAt(1, 0))
	assert.Nil(t, dag.GetNodeAt(1, 3))
	assert.Len(t, dag.GetNodesAtStep(0), 3)
}

func TestDAGSpanning(t *testing.T) {
	c := New(3).Append(CNOT(0, 2), H(1))

	plain := FromCircuit(c)
	assert.Equal(t, 0, plain.Nodes[1].Step)

	spanning := FromCircuit(c, WithSpanning())
	assert.Equal(t, 1, spanning.Nodes[1].Step)
}
