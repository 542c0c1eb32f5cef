package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtcount/internal/circuit"
)

func TestBellState(t *testing.T) {
	s := NewStateVector(2).Run(circuit.New(2).Append(circuit.H(0), circuit.CNOT(0, 1)))
	assert.InDelta(t, 0.5, s.Probability(0), 1e-12)
	assert.InDelta(t, 0.5, s.Probability(3), 1e-12)
	assert.InDelta(t, 0, s.Probability(1), 1e-12)
	assert.InDelta(t, 1, s.Norm(), 1e-12)
}

func TestToffoliTruthTable(t *testing.T) {
	c := circuit.New(3).Append(circuit.Toffoli(0, 1, 2))
	for k := 0; k < 8; k++ {
		want := k
		if k&3 == 3 {
			want ^= 4
		}
		s := Basis(3, k).Run(c)
		assert.InDelta(t, 1, s.Probability(want), 1e-12, "input %03b", k)
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name string
		a, b *circuit.Circuit
		want bool
	}{
		{
			name: "TT is S",
			a:    circuit.New(1).Append(circuit.T(0), circuit.T(0)),
			b:    circuit.New(1).Append(circuit.S(0)),
			want: true,
		},
		{
			name: "HZH is X",
			a:    circuit.New(1).Append(circuit.H(0), circuit.Z(0), circuit.H(0)),
			b:    circuit.New(1).Append(circuit.X(0)),
			want: true,
		},
		{
			name: "CZ is H CX H",
			a:    circuit.New(2).Append(circuit.CZ(0, 1)),
			b:    circuit.New(2).Append(circuit.H(1), circuit.CNOT(0, 1), circuit.H(1)),
			want: true,
		},
		{
			name: "T is not S",
			a:    circuit.New(1).Append(circuit.T(0)),
			b:    circuit.New(1).Append(circuit.S(0)),
			want: false,
		},
		{
			name: "global phase only",
			a:    circuit.New(1).Append(circuit.X(0), circuit.Z(0), circuit.X(0), circuit.Z(0)),
			b:    circuit.New(1),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equivalent(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInverseIsIdentity(t *testing.T) {
	c := circuit.New(3).Append(
		circuit.H(0), circuit.T(1), circuit.CNOT(0, 2), circuit.S(2),
		circuit.Tdg(0), circuit.CZ(1, 2), circuit.Toffoli(0, 1, 2),
	)
	both := c.Clone()
	both.Gates = append(both.Gates, c.Inverse().Gates...)

	ok, err := Equivalent(both, circuit.New(3))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostSelect(t *testing.T) {
	// logical qubit 0 moved to wire 1 through a Hadamard gadget on wire 0
	c := circuit.New(2).Append(circuit.H(1), circuit.CZ(0, 1))
	for k := 0; k < 2; k++ {
		s := Basis(2, k).Run(c).PostSelect([]int{1}, []int{0})
		ref := Basis(1, k).Run(circuit.New(1).Append(circuit.H(0)))
		assert.True(t, EqualUpToPhase([]*StateVector{ref}, []*StateVector{s}, 1e-9), "input %d", k)
		assert.InDelta(t, 1, s.Norm(), 1e-12)
	}
}

func TestUnitaryTooLarge(t *testing.T) {
	_, err := Unitary(circuit.New(MaxQubits + 1))
	assert.ErrorIs(t, err, ErrTooLarge)
}
