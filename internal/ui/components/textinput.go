package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a focused single-line field for free-text, number, percentage
// and currency answers. Numeric fields drop keystrokes that cannot be part
// of an amount such as "$12,500.50" or "85%".
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

func NewTextInput(placeholder, value string, numericOnly bool, charLimit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	if charLimit > 0 {
		m.CharLimit = charLimit
	}
	m.SetValue(value)
	m.Focus()
	return TextInput{Model: m, NumericOnly: numericOnly}
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && t.NumericOnly && !t.accepts(k.String()) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// accepts filters printable single-character keys; editing keys such as
// backspace and arrows always pass.
func (t TextInput) accepts(key string) bool {
	if len(key) != 1 {
		return true
	}
	c, cur := key[0], t.Model.Value()
	switch {
	case '0' <= c && c <= '9', c == ',', c == '$':
		return true
	case c == '.', c == '%':
		return !strings.ContainsRune(cur, rune(c))
	default:
		return false
	}
}

func (t TextInput) View() string  { return t.Model.View() }
func (t TextInput) Value() string { return t.Model.Value() }
