package main

import (
	"fmt"
	"strings"

	"qtcount/internal/optimize"
)

// menuItem represents a single choice in the options menu.
type menuItem struct {
	name     string
	apply    func(m *Model)
	selected func(m *Model) bool
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

func methodItem(name string, method optimize.Method) menuItem {
	return menuItem{
		name:     name,
		apply:    func(m *Model) { m.method = method },
		selected: func(m *Model) bool { return m.method == method },
	}
}

// optionMenu defines the optimizer settings picker.
var optionMenu = []menuCategory{
	{
		name: "Method",
		items: []menuItem{
			methodItem("TOHPE", optimize.MethodTOHPE),
			methodItem("FastTODD", optimize.MethodFastTODD),
		},
	},
	{
		name: "Hadamards",
		items: []menuItem{
			{
				name:     "Gadgetize",
				apply:    func(m *Model) { m.opts.Gadgetize = true },
				selected: func(m *Model) bool { return m.opts.Gadgetize },
			},
			{
				name:     "Keep in place",
				apply:    func(m *Model) { m.opts.Gadgetize = false },
				selected: func(m *Model) bool { return !m.opts.Gadgetize },
			},
		},
	},
}

// renderMenu renders the floating options popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Optimizer"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range optionMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(optionMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 30)))
	sb.WriteString("\n")

	cat := optionMenu[m.menuCat]
	for i, item := range cat.items {
		mark := " "
		if item.selected(&m) {
			mark = "✓"
		}
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
		}
		sb.WriteString(gateStyle.Render(mark))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Apply  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
