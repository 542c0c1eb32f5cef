package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qtcount/internal/circuit"
	"qtcount/internal/optimize"
)

func TestPadCenter(t *testing.T) {
	assert.Equal(t, " H ", padCenter("H", 3))
	assert.Equal(t, " T† ", padCenter("T†", 4))
	assert.Equal(t, "CNO", padCenter("CNOT", 3))
}

func TestVisibleLenAndOverlay(t *testing.T) {
	assert.Equal(t, 2, visibleLen("\x1b[31mab\x1b[0m"))
	assert.Equal(t, "abcdef\nghXYkl", overlayAt("abcdef\nghijkl", "XY", 2, 1))
	assert.Equal(t, "ab  XY", overlayAt("ab", "XY", 4, 0))
}

func TestGetCellInfo(t *testing.T) {
	c := circuit.New(3).Append(circuit.CNOT(0, 2), circuit.T(1))
	dag := circuit.FromCircuit(c, circuit.WithSpanning())

	ctrl := getCellInfo(dag, 0, 0)
	require.NotNil(t, ctrl.gate)
	assert.True(t, ctrl.isControl)
	assert.True(t, ctrl.vertBelow)
	assert.False(t, ctrl.vertAbove)

	mid := getCellInfo(dag, 0, 1)
	assert.Nil(t, mid.gate)
	assert.True(t, mid.passThrough)

	tgt := getCellInfo(dag, 0, 2)
	assert.True(t, tgt.isTarget)
	assert.True(t, tgt.vertAbove)

	tg := getCellInfo(dag, 1, 1)
	require.NotNil(t, tg.gate)
	assert.Equal(t, circuit.KindT, tg.gate.Kind)
}

func TestGridViewLabels(t *testing.T) {
	g := newGridView(circuit.New(3), []int{2, 0})
	assert.Equal(t, "q[0]", g.label(2))
	assert.Equal(t, "q[1]", g.label(0))
	assert.Equal(t, "a1", g.label(1))
	assert.False(t, g.isLogical(1))

	plain := newGridView(circuit.New(2), nil)
	assert.Equal(t, "q[1]", plain.label(1))
	assert.True(t, plain.isLogical(1))
}

func TestGridViewMoveStaysInBounds(t *testing.T) {
	// two layers: CNOT at step 0, T at step 1
	g := newGridView(circuit.New(2).Append(circuit.CNOT(0, 1), circuit.T(1)), nil)
	require.Equal(t, 2, g.dag.MaxStep())
	for range 5 {
		g.move("right")
		g.move("down")
	}
	assert.Equal(t, 1, g.cursorStep)
	assert.Equal(t, 1, g.cursorQubit)
	for range 5 {
		g.move("h")
		g.move("k")
	}
	assert.Zero(t, g.cursorStep)
	assert.Zero(t, g.cursorQubit)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelOptimizesOnInit(t *testing.T) {
	c := circuit.New(3).Append(circuit.Toffoli(0, 1, 2))
	m := initialModel(c, optimize.DefaultOptions(), "out.qasm")
	assert.True(t, m.running)
	assert.Equal(t, "Loading...", m.View())

	m, _ = update(t, m, m.Init()())
	require.NoError(t, m.err)
	assert.False(t, m.running)
	assert.Equal(t, 7, m.after.TCount)
	require.NotNil(t, m.optimized.dag)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
	assert.Contains(t, m.View(), "Optimized")
}

func TestModelNavigation(t *testing.T) {
	c := circuit.New(2).Append(circuit.H(0), circuit.CNOT(0, 1))
	m := initialModel(c, optimize.DefaultOptions(), "out.qasm")
	m, _ = update(t, m, m.Init()())

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("right"))
	assert.Equal(t, 1, m.original.cursorQubit)
	assert.Equal(t, 1, m.original.cursorStep)

	m, _ = update(t, m, key("right"))
	assert.Equal(t, 1, m.original.cursorStep, "cursor stays on the last step")

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, focusOptimized, m.focus)
	m, _ = update(t, m, key("tab"))
	assert.Equal(t, focusQASM, m.focus)
	m, cmd := update(t, m, key("tab"))
	assert.Equal(t, focusOriginal, m.focus)
	assert.Nil(t, cmd, "unchanged source is not re-optimized")
}

func TestModelMenuAppliesOption(t *testing.T) {
	m := initialModel(circuit.New(1).Append(circuit.T(0)), optimize.DefaultOptions(), "out.qasm")
	m, _ = update(t, m, m.Init()())

	m, _ = update(t, m, key("a"))
	require.Equal(t, focusMenu, m.focus)
	assert.Contains(t, m.renderMenu(), "FastTODD")

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("enter"))
	assert.Equal(t, optimize.MethodFastTODD, m.method)

	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("right"))
	m, _ = update(t, m, key("down"))
	m, cmd := update(t, m, key("enter"))
	assert.False(t, m.opts.Gadgetize)
	assert.True(t, m.running)
	assert.NotNil(t, cmd)
	assert.Equal(t, focusOriginal, m.focus)
}

func TestModelReoptimizesEditedQASM(t *testing.T) {
	m := initialModel(circuit.New(1).Append(circuit.T(0)), optimize.DefaultOptions(), "out.qasm")
	m, _ = update(t, m, m.Init()())
	stale := m.Init()

	m.focus = focusQASM
	m.qasmEditor.SetValue(circuit.New(1).Append(circuit.T(0), circuit.T(0)).ToQASM())
	m, cmd := update(t, m, key("tab"))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.before.TCount)

	m, _ = update(t, m, stale())
	assert.True(t, m.running, "results for the old source are dropped")

	m, _ = update(t, m, cmd())
	assert.False(t, m.running)
	assert.Zero(t, m.after.TCount)
}

func TestModelInvalidQASM(t *testing.T) {
	m := initialModel(circuit.New(1).Append(circuit.T(0)), optimize.DefaultOptions(), "out.qasm")
	m.focus = focusQASM
	m.qasmEditor.SetValue("OPENQASM 2.0;\nqreg q[1];\nfoo q[0];\n")
	m, cmd := update(t, m, key("tab"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.statusMsg, "QASM error")
	assert.Equal(t, 1, m.before.TCount)
}
