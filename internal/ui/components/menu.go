// Package components holds the reusable widgets of the terminal UI.
package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/ui/theme"
)

// MenuItem is one selectable row. Disabled items are drawn dimmed and the
// cursor passes over them.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor on Selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the cursor in dir until it lands on an enabled item. The
// cursor stays put when there is none in that direction.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update moves with up/down (or k/j) and runs the item action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if it := m.Items[m.Selected]; !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	dimmed := lipgloss.NewStyle().Foreground(theme.TextDim)

	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		var row string
		switch {
		case i == m.Selected && !it.Disabled:
			row = theme.Selected.Render("  ▸ " + it.Label)
		case it.Disabled:
			row = dimmed.Render("    " + it.Label)
		default:
			row = normal.Render("    " + it.Label)
		}
		if it.Detail != "" {
			row += "  " + theme.Hint.Render(it.Detail)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n") + "\n"
}
