package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/ui/theme"
)

// OptionList picks one value from a list of labelled options.
type OptionList struct {
	Labels   []string
	Values   []string
	Selected int
	// Chosen is the index of the current answer, or -1.
	Chosen int
}

// NewOptionList returns a list with the cursor on current, when it is one of
// values, otherwise on the first option.
func NewOptionList(labels, values []string, current string) OptionList {
	o := OptionList{Labels: labels, Values: values, Chosen: -1}
	for i, v := range values {
		if v == current {
			o.Selected = i
			o.Chosen = i
			break
		}
	}
	return o
}

// Update moves the cursor. Enter is left to the owning screen.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Values)-1 {
			o.Selected++
		}
	}
	return o, nil
}

// Value returns the value under the cursor.
func (o OptionList) Value() string {
	if o.Selected < 0 || o.Selected >= len(o.Values) {
		return ""
	}
	return o.Values[o.Selected]
}

// View renders the options, marking the cursor and the current answer.
func (o OptionList) View() string {
	var s string
	for i, label := range o.Labels {
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == o.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s", prefix, mark, label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == o.Selected:
			style = theme.Selected
		case i == o.Chosen:
			style = theme.Answered
		}
		s += style.Render(line) + "\n"
	}
	return s
}
