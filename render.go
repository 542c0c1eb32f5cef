package main

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"qtcount/internal/circuit"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate kind.
func gateDisplayName(k circuit.Kind) string {
	switch k {
	case circuit.KindH:
		return "H"
	case circuit.KindTdg:
		return "T†"
	default:
		return k.String()
	}
}

// controlSymbol returns the wire symbol for a control qubit.
func controlSymbol(circuit.Kind) string {
	return "●"
}

// targetSymbol returns the wire symbol for the target of a controlled gate.
func targetSymbol(k circuit.Kind) string {
	if k == circuit.KindCZ {
		return "●"
	}
	return "⊕"
}

// ──────────────────────────── Cell layout ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *circuit.Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
// The DAG must be built with circuit.WithSpanning so that no two gates of a
// step overlap on screen.
func getCellInfo(dag *circuit.CircuitDAG, step, qubit int) cellInfo {
	var info cellInfo
	for _, node := range dag.GetNodesAtStep(step) {
		g := node.Gate
		qs := g.Qubits()
		if g.Touches(qubit) {
			info.gate = &node.Gate
			if len(qs) > 1 {
				info.isTarget = g.Target == qubit
				info.isControl = !info.isTarget
			}
		}
		if len(qs) < 2 {
			continue
		}
		lo, hi := slices.Min(qs), slices.Max(qs)
		if qubit < lo || qubit > hi {
			continue
		}
		info.vertAbove = info.vertAbove || qubit > lo
		info.vertBelow = info.vertBelow || qubit < hi
		if qubit > lo && qubit < hi && !g.Touches(qubit) {
			info.passThrough = true
		}
	}
	return info
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, cursor bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	style := gateStyle
	if info.gate != nil && info.gate.IsT() {
		style = tGateStyle
	}

	// ── Cursor cell ──
	if cursor {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && info.isControl:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + style.Render(controlSymbol(info.gate.Kind)) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil && info.isTarget:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + style.Render(targetSymbol(info.gate.Kind)) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(gateDisplayName(info.gate.Kind), gateNameW)
			mid = bdr.Render("║") + "─┤" + style.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.gate != nil && info.isControl:
		mid = strings.Repeat("─", dashL) + style.Render(controlSymbol(info.gate.Kind)) + strings.Repeat("─", dashR)
	case info.gate != nil && info.isTarget:
		mid = strings.Repeat("─", dashL) + style.Render(targetSymbol(info.gate.Kind)) + strings.Repeat("─", dashR)
	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate.Kind), gateNameW)
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + style.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderGrid renders one circuit grid, scrolled so the cursor step is
// visible.
func renderGrid(g *gridView, focused bool, width int) string {
	var sb strings.Builder

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)
	startStep := 0
	if g.cursorStep >= maxSteps {
		startStep = g.cursorStep - maxSteps + 1
	}
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+maxSteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for wire := range g.dag.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("%-5s", g.label(wire))
		if g.isLogical(wire) {
			label = qubitLabelStyle.Render(label)
		} else {
			label = ancillaLabelStyle.Render(label)
		}
		midLine := label + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+maxSteps; step++ {
			info := getCellInfo(g.dag, step, wire)
			cursor := focused && step == g.cursorStep && wire == g.cursorQubit
			top, mid, bot := renderCell(info, cursor)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}
	return sb.String()
}

// renderCircuitPanel renders the original and optimized grids stacked.
func (m Model) renderCircuitPanel(width, height int) string {
	top := m.original
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Original"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  T-count %d", m.before.TCount)))
	sb.WriteString("\n")
	sb.WriteString(renderGrid(&top, m.focus == focusOriginal, width))
	orig := circuitStyle.Width(width).Render(sb.String())

	sb.Reset()
	title := "Optimized"
	if m.running {
		title += " (running…)"
	}
	sb.WriteString(titleStyle.Render(title))
	if m.optimized.dag != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  T-count %d  %s", m.after.TCount, m.method)))
		sb.WriteString("\n")
		opt := m.optimized
		sb.WriteString(renderGrid(&opt, m.focus == focusOptimized, width))
	} else {
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
	}
	optPanel := optimizedStyle.Width(width).Render(sb.String())

	return lipgloss.NewStyle().Height(height).Render(lipgloss.JoinVertical(lipgloss.Left, orig, optPanel))
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Source"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help and metrics bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s T %d→%d  2q %d→%d  T-depth %d→%d",
		activeGateStyle.Render("Metrics:  "),
		m.before.TCount, m.after.TCount,
		m.before.TwoQubit, m.after.TwoQubit,
		m.before.TDepth, m.after.TDepth,
	)
	if g := m.focusedGrid(); g != nil {
		if node := g.dag.GetNodeAt(g.cursorStep, g.cursorQubit); node != nil {
			fmt.Fprintf(&sb, "  │  %s at step %d, T-depth %d", node.Gate, node.Step, node.TDepth)
		}
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}
	sb.WriteString("\n")

	sb.WriteString(activeGateStyle.Render("Keys:     "))
	sb.WriteString("↑↓/jk Wire  ←→/hl Step  Tab Switch pane  ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Options  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

func isEscTerminator(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				i++
				if isEscTerminator(runes[i-1]) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if isEscTerminator(runes[i-1]) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	suffix.WriteString(string(runes[i:]))
	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscTerminator(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
