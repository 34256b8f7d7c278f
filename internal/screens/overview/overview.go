// Package overview renders the practice dashboard widgets.
package overview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/dashboard"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// Summarizer builds dashboard summaries.
type Summarizer interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
}

type summaryLoadedMsg struct {
	summary *dashboard.Summary
	err     error
}

// DashboardScreen shows the latest score, trend and top priorities.
type DashboardScreen struct {
	svc     Summarizer
	summary *dashboard.Summary
	err     error
	offset  int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(svc Summarizer) *DashboardScreen {
	return &DashboardScreen{svc: svc}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sum, err := s.svc.Summary(context.Background())
		return summaryLoadedMsg{summary: sum, err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		s.summary, s.err = msg.summary, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.offset--
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.err))
	case s.summary == nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading dashboard...")
	case s.summary.Latest == nil:
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet. Complete one to fill the dashboard.")
	}
	content, off := layout.Scroll(Render(s.summary, width), s.offset, height)
	s.offset = off
	return content
}

// Render lays out a non-empty summary at the given width.
func Render(sum *dashboard.Summary, width int) string {
	latest := sum.Latest
	barWidth := min(width-4, 72)
	var b strings.Builder

	b.WriteString("\n" + layout.Section("Latest assessment", width) + "\n")
	score := lipgloss.NewStyle().Foreground(theme.BucketColor(latest.Bucket)).Bold(true).
		Render(fmt.Sprintf("%.0f%% %s", latest.Overall, latest.Bucket.Label()))
	b.WriteString(fmt.Sprintf("%s  %s\n", score, theme.Hint.Render(fmt.Sprintf("%s · %s · %d completed",
		latest.PracticeName, latest.CompletedAt.Local().Format("02 Jan 2006"), sum.Completed))))

	if t := sum.Trend; t != nil {
		b.WriteString(theme.Body.Render("Change since "+t.Previous.CompletedAt.Local().Format("02 Jan 2006")+": ") +
			delta(t.Delta) + "\n")
	}

	b.WriteString("\n" + layout.Section("Categories", width) + "\n")
	trend := make(map[string]float64)
	if sum.Trend != nil {
		for _, ct := range sum.Trend.Categories {
			trend[string(ct.Category)] = ct.Delta
		}
	}
	for _, cs := range sum.Categories {
		if cs.Scored == 0 {
			continue
		}
		bar := components.NewProgressBar(cs.Category.DisplayName(), cs.Percent, barWidth-8)
		bar.LabelWidth = 22
		bar.Fill = theme.BucketColor(cs.Bucket)
		line := bar.View()
		if d, ok := trend[string(cs.Category)]; ok {
			line += "  " + delta(d)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + layout.Section("Top priorities", width) + "\n")
	if len(sum.Priorities) == 0 {
		b.WriteString(theme.Hint.Render("No high or critical findings.") + "\n")
	}
	for _, p := range sum.Priorities {
		tag := lipgloss.NewStyle().Foreground(theme.PriorityColor(p.Priority)).Bold(true).
			Render(fmt.Sprintf("[%s]", p.Priority))
		b.WriteString(tag + " " + theme.Body.Render(p.Question) + "\n")
		b.WriteString("  " + theme.Hint.Render(p.Interpretation) + "\n")
	}
	return layout.Column(b.String(), width)
}

func delta(d float64) string {
	switch {
	case d > 0.5:
		return lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("▲ %.0f", d))
	case d < -0.5:
		return lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("▼ %.0f", -d))
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("no change")
	}
}
