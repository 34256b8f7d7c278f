// Package screen defines the contract between the router and the screens of
// the terminal UI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/praxis/internal/ui/layout"
)

// Screen is one page of the terminal UI. The app draws the header and
// footer; a screen only renders the area between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the centre of the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is called when a screen is uncovered by a pop, so home can
// reload the dashboard after an assessment is saved.
type Refresher interface {
	Refresh() tea.Cmd
}
