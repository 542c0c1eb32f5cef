package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qtcount/internal/circuit"
	"qtcount/internal/optimize"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusOriginal focus = iota
	focusOptimized
	focusQASM
	focusMenu
)

// gridView is a scrollable circuit grid. Wire w is labelled with the
// logical qubit mapped onto it, or as an ancilla.
type gridView struct {
	dag         *circuit.CircuitDAG
	mapping     []int
	cursorQubit int
	cursorStep  int
}

func newGridView(c *circuit.Circuit, mapping []int) gridView {
	return gridView{dag: circuit.FromCircuit(c, circuit.WithSpanning()), mapping: mapping}
}

func (g *gridView) isLogical(wire int) bool {
	if g.mapping == nil {
		return true
	}
	for _, w := range g.mapping {
		if w == wire {
			return true
		}
	}
	return false
}

func (g *gridView) label(wire int) string {
	if g.mapping == nil {
		return fmt.Sprintf("q[%d]", wire)
	}
	for q, w := range g.mapping {
		if w == wire {
			return fmt.Sprintf("q[%d]", q)
		}
	}
	return fmt.Sprintf("a%d", wire)
}

func (g *gridView) move(key string) {
	switch key {
	case "up", "k":
		if g.cursorQubit > 0 {
			g.cursorQubit--
		}
	case "down", "j":
		if g.cursorQubit < g.dag.NumQubits-1 {
			g.cursorQubit++
		}
	case "left", "h":
		if g.cursorStep > 0 {
			g.cursorStep--
		}
	case "right", "l":
		if g.cursorStep < g.dag.MaxStep()-1 {
			g.cursorStep++
		}
	}
}

// optimizedMsg carries the result of a background pipeline run.
type optimizedMsg struct {
	source *circuit.Circuit
	res    *optimize.Result
	err    error
}

// Model represents the TUI application state.
type Model struct {
	source     *circuit.Circuit
	result     *optimize.Result
	original   gridView
	optimized  gridView
	before     circuit.Metrics
	after      circuit.Metrics
	opts       optimize.Options
	method     optimize.Method
	running    bool
	err        error
	width      int
	height     int
	qasmEditor textarea.Model
	focus      focus
	lastQASM   string
	statusMsg  string // transient status message (e.g. save confirmation)
	savePath   string

	// Menu state
	menuCat  int
	menuItem int
}

func initialModel(c *circuit.Circuit, opts optimize.Options, savePath string) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.CharLimit = 0
	ta.MaxHeight = 0

	if opts.Cache == nil {
		opts.Cache = optimize.NewCache(opts.CacheSize)
	}
	m := Model{
		source:     c,
		opts:       opts,
		method:     opts.Method,
		qasmEditor: ta,
		focus:      focusOriginal,
		savePath:   savePath,
		running:    true,
	}
	m.setSource(c)
	m.qasmEditor.SetValue(m.lastQASM)
	m.lastQASM = m.qasmEditor.Value()
	return m
}

func (m *Model) setSource(c *circuit.Circuit) {
	m.source = c
	m.original = newGridView(c, nil)
	m.before = c.Metrics()
	m.lastQASM = c.ToQASM()
}

// parseQASMInput re-reads the editor; it reports whether the source changed.
func (m *Model) parseQASMInput() bool {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return false
	}
	c := &circuit.Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		m.statusMsg = fmt.Sprintf("QASM error: %v", err)
		return false
	}
	m.setSource(c)
	m.lastQASM = qasm
	return true
}

// runOptimization starts the pipeline on the current source.
func (m *Model) runOptimization() tea.Cmd {
	m.running = true
	src, opts := m.source, m.opts
	opts.Method = m.method
	return func() tea.Msg {
		res, err := optimize.TCountOptimization(context.Background(), src, opts)
		return optimizedMsg{source: src, res: res, err: err}
	}
}

func (m *Model) focusedGrid() *gridView {
	switch m.focus {
	case focusOriginal:
		return &m.original
	case focusOptimized:
		if m.optimized.dag != nil {
			return &m.optimized
		}
	}
	return nil
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.runOptimization()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case optimizedMsg:
		if msg.source != m.source {
			// stale result for an edited source
			break
		}
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.res
			m.after = msg.res.After
			m.optimized = newGridView(msg.res.Circuit, msg.res.Mapping)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		m.qasmEditor.SetHeight(max(msg.Height-16, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusOriginal, focusOptimized:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				if m.focus == focusOriginal && m.optimized.dag != nil {
					m.focus = focusOptimized
				} else {
					m.focus = focusQASM
					m.qasmEditor.Focus()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "ctrl+s":
				m.save()
			default:
				if g := m.focusedGrid(); g != nil {
					g.move(key)
				}
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusOriginal
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(optionMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(optionMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				optionMenu[m.menuCat].items[m.menuItem].apply(&m)
				m.focus = focusOriginal
				cmds = append(cmds, m.runOptimization())
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusOriginal
				m.qasmEditor.Blur()
				if m.parseQASMInput() {
					cmds = append(cmds, m.runOptimization())
				}
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) save() {
	if m.result == nil {
		m.statusMsg = "Nothing to save yet"
		return
	}
	if err := writeCircuit(m.savePath, m.result.Circuit); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + m.savePath
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 4
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

// runView starts the interactive viewer. The pipeline logger is silenced
// since the alternate screen owns the terminal.
func runView(cmd *cobra.Command, args []string) error {
	c, err := readCircuit(args[0])
	if err != nil {
		return err
	}
	opts := cfg.Options()
	opts.Logger = zap.NewNop()

	p := tea.NewProgram(initialModel(c, opts, savePath), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
