// Package legal shows the privacy policy, terms and disclaimer.
package legal

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	pages "github.com/abhisek/praxis/internal/legal"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// LegalScreen is a menu of legal pages.
type LegalScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*LegalScreen)(nil)

// New creates a LegalScreen listing every embedded page.
func New() *LegalScreen {
	var items []components.MenuItem
	for _, name := range pages.Pages {
		items = append(items, components.MenuItem{
			Label: pages.Title(name),
			Action: func() tea.Cmd {
				next := NewPage(name)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	return &LegalScreen{menu: components.NewMenu(items)}
}

func (s *LegalScreen) Init() tea.Cmd { return nil }

func (s *LegalScreen) Title() string { return "Legal" }

func (s *LegalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LegalScreen) View(width, height int) string {
	return layout.Column("\n"+s.menu.View(), width)
}

// PageScreen scrolls through one legal page.
type PageScreen struct {
	name   string
	body   string
	offset int
}

var _ screen.Screen = (*PageScreen)(nil)
var _ screen.KeyHintProvider = (*PageScreen)(nil)

// NewPage creates a PageScreen for the named page.
func NewPage(name string) *PageScreen {
	data, ok := pages.Page(name)
	if !ok {
		return &PageScreen{name: name, body: "Page not found."}
	}
	return &PageScreen{name: name, body: string(data)}
}

func (s *PageScreen) Init() tea.Cmd { return nil }

func (s *PageScreen) Title() string { return pages.Title(s.name) }

func (s *PageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.offset--
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset -= 10
		case "pgdown":
			s.offset += 10
		}
	}
	return s, nil
}

func (s *PageScreen) View(width, height int) string {
	var b strings.Builder
	for l := range strings.Lines(s.body) {
		l = strings.TrimRight(l, "\n")
		switch {
		case strings.HasPrefix(l, "# "):
			b.WriteString(theme.Title.Render(strings.TrimPrefix(l, "# ")))
		case strings.HasPrefix(l, "## "):
			b.WriteString(theme.Heading.Render(strings.TrimPrefix(l, "## ")))
		default:
			b.WriteString(theme.Body.Render(l))
		}
		b.WriteString("\n")
	}
	content, off := layout.Scroll(layout.Column(b.String(), width), s.offset, height)
	s.offset = off
	return content
}
