// Package plan shows the action plan for an assessment, generating it when
// the screen opens.
package plan

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

type planReadyMsg struct {
	plan *actionplan.Plan
	err  error
}

// PlanScreen generates and displays an action plan.
type PlanScreen struct {
	gen    *actionplan.Generator
	input  actionplan.Input
	ctx    context.Context
	cancel context.CancelFunc
	plan   *actionplan.Plan
	err    error
	offset int
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a PlanScreen for in.
func New(gen *actionplan.Generator, in actionplan.Input) *PlanScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &PlanScreen{gen: gen, input: in, ctx: ctx, cancel: cancel}
}

func (s *PlanScreen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.gen.Generate(s.ctx, s.input)
		return planReadyMsg{plan: p, err: err}
	}
}

func (s *PlanScreen) Title() string {
	return "Action Plan"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		s.plan, s.err = msg.plan, msg.err
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// The app pops the screen; stop any drafts still in flight.
			s.cancel()
		case "up", "k":
			s.offset--
		case "down", "j":
			s.offset++
		case "pgdown", "space":
			s.offset += 10
		case "pgup":
			s.offset -= 10
		}
	}
	return s, nil
}

func (s *PlanScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not build the action plan: %v", s.err))
	case s.plan == nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\nDrafting the action plan...")
	}
	content, off := layout.Scroll(Render(s.plan, width), s.offset, height)
	s.offset = off
	return content
}

// Render lays out a plan as text at the given width.
func Render(p *actionplan.Plan, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	if len(p.Items) == 0 {
		b.WriteString(theme.Hint.Render("Nothing urgent. Every finding is low priority.") + "\n")
		return layout.Column(b.String(), width)
	}

	summary := fmt.Sprintf("%d actions", len(p.Items))
	if n := p.Drafted(); n > 0 {
		summary += fmt.Sprintf(", %d procedures drafted by %s", n, p.Model)
	}
	b.WriteString(theme.Hint.Render(summary) + "\n\n")

	for i, it := range p.Items {
		head := lipgloss.NewStyle().Foreground(theme.PriorityColor(it.Priority)).Bold(true).
			Render(fmt.Sprintf("%d. [%s]", i+1, it.Priority))
		b.WriteString(head + " " + theme.Heading.Render(it.Title) + "\n")
		meta := it.Category.DisplayName()
		if it.Timeframe != "" {
			meta += " · within " + it.Timeframe
		}
		if it.Source == actionplan.SourceLLM {
			meta += " · drafted"
		}
		b.WriteString("   " + theme.Hint.Render(meta) + "\n")
		for j, step := range it.Steps {
			b.WriteString(fmt.Sprintf("   %d) %s\n", j+1, step))
		}
		b.WriteString("\n")
	}
	return layout.Column(b.String(), width)
}
