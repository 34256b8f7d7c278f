// Package catalog browses the question catalog by module.
package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// CatalogScreen lists modules; enter expands a module to show its questions.
type CatalogScreen struct {
	catalog  *questions.Catalog
	modules  []string
	expanded map[string]bool
	selected int
	offset   int
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)

// New creates a CatalogScreen over c.
func New(c *questions.Catalog) *CatalogScreen {
	return &CatalogScreen{
		catalog:  c,
		modules:  c.Modules(),
		expanded: make(map[string]bool),
	}
}

func (s *CatalogScreen) Init() tea.Cmd {
	return nil
}

func (s *CatalogScreen) Title() string {
	return fmt.Sprintf("Question Catalog %s", s.catalog.Version())
}

func (s *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Expand"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Expanded reports whether a module's questions are shown.
func (s *CatalogScreen) Expanded(moduleID string) bool {
	return s.expanded[moduleID]
}

func (s *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.modules) == 0 {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.modules)-1 {
			s.selected++
		}
	case "enter", "space":
		id := s.modules[s.selected]
		s.expanded[id] = !s.expanded[id]
	}
	return s, nil
}

func (s *CatalogScreen) View(width, height int) string {
	var b strings.Builder
	cursorLine := 0
	line := 0
	write := func(text string) {
		b.WriteString(text + "\n")
		line += strings.Count(text, "\n") + 1
	}

	var category questions.Category
	for i, id := range s.modules {
		qs := s.catalog.ByModule(id)
		if len(qs) > 0 && qs[0].Category != category {
			category = qs[0].Category
			write("")
			write(layout.Section(category.DisplayName(), width))
		}

		marker := "▸"
		if s.expanded[id] {
			marker = "▾"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = theme.Selected
			cursorLine = line
		}
		write(style.Render(fmt.Sprintf("%s %s", marker, id)) + theme.Hint.Render(fmt.Sprintf("  %d questions", len(qs))))

		if !s.expanded[id] {
			continue
		}
		for _, q := range qs {
			write("    " + theme.Body.Render(q.Text))
			meta := fmt.Sprintf("    %s · %s · weight %g", q.ID, q.Type, q.Weight)
			if !q.UniversalQuestion {
				names := make([]string, len(q.ApplicableDisciplines))
				for j, d := range q.ApplicableDisciplines {
					names[j] = d.DisplayName()
				}
				meta += " · " + strings.Join(names, ", ")
			}
			write(theme.Hint.Render(meta))
		}
	}

	// Keep the cursor on screen.
	if cursorLine < s.offset {
		s.offset = cursorLine
	} else if height > 0 && cursorLine >= s.offset+height {
		s.offset = cursorLine - height + 1
	}
	content, off := layout.Scroll(b.String(), s.offset, height)
	s.offset = off
	return layout.Column(content, width)
}
