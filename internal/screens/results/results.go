// Package results shows a scored assessment: overall score, category
// breakdown and findings.
package results

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/screens/plan"
	"github.com/abhisek/praxis/internal/scoring"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// ResultsScreen displays a completed assessment.
type ResultsScreen struct {
	result  *assessment.Result
	catalog *questions.Catalog
	plans   *actionplan.Generator
	offset  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. plans may be nil, which hides the action plan.
func New(result *assessment.Result, c *questions.Catalog, plans *actionplan.Generator) *ResultsScreen {
	return &ResultsScreen{result: result, catalog: c, plans: plans}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.plans != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Action plan"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.offset--
	case "down", "j":
		s.offset++
	case "pgdown", "space":
		s.offset += 10
	case "pgup":
		s.offset -= 10
	case "enter":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "p":
		if s.plans == nil {
			return s, nil
		}
		r := s.result
		next := plan.New(s.plans, actionplan.Input{
			AssessmentID: r.ID,
			Profile:      r.Profile,
			Responses:    r.Responses,
			Report:       r.Report,
		})
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	content, off := layout.Scroll(s.render(width), s.offset, height)
	s.offset = off
	return content
}

func (s *ResultsScreen) render(width int) string {
	r := s.result
	rep := r.Report
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(r.Profile.PracticeName))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("%s · %s · %s",
		r.Profile.Discipline.DisplayName(), r.Profile.PracticeSize.DisplayName(),
		r.CompletedAt.Local().Format("02 Jan 2006"))))
	b.WriteString("\n\n")

	overall := lipgloss.NewStyle().Foreground(theme.BucketColor(rep.Bucket)).Bold(true).
		Render(fmt.Sprintf("%.0f%%  %s", rep.Overall, rep.Bucket.Label()))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, overall))
	b.WriteString("\n\n")

	var col strings.Builder
	col.WriteString(layout.Section("Categories", width) + "\n")
	barWidth := min(width-4, 72)
	for _, cs := range rep.Categories {
		if cs.Scored == 0 {
			col.WriteString(theme.Hint.Render(fmt.Sprintf("%-22s not scored", cs.Category.DisplayName())) + "\n")
			continue
		}
		bar := components.NewProgressBar(cs.Category.DisplayName(), cs.Percent, barWidth)
		bar.LabelWidth = 22
		bar.Fill = theme.BucketColor(cs.Bucket)
		col.WriteString(bar.View() + "\n")
	}

	findings := slices.Clone(rep.Findings)
	slices.SortStableFunc(findings, func(a, b scoring.Finding) int {
		return cmp.Compare(b.Interpretation.Priority.Rank(), a.Interpretation.Priority.Rank())
	})
	col.WriteString("\n" + layout.Section(fmt.Sprintf("Findings (%d)", len(findings)), width) + "\n")
	if len(findings) == 0 {
		col.WriteString(theme.Hint.Render("No findings for these answers.") + "\n")
	}
	for _, f := range findings {
		col.WriteString(s.renderFinding(f) + "\n")
	}

	b.WriteString(layout.Column(col.String(), width))
	return b.String()
}

func (s *ResultsScreen) renderFinding(f scoring.Finding) string {
	it := f.Interpretation
	text := f.QuestionID
	if q, err := s.catalog.GetQuestion(f.QuestionID); err == nil {
		text = q.Text
	}

	var b strings.Builder
	tag := "note"
	if it.Priority != "" {
		tag = string(it.Priority)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.PriorityColor(it.Priority)).Bold(true).
		Render(fmt.Sprintf("[%s]", tag)))
	b.WriteString(" " + theme.Body.Render(text) + "\n")
	b.WriteString("  " + theme.Hint.Render(it.Interpretation) + "\n")
	if it.Timeframe != "" {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Act within "+it.Timeframe) + "\n")
	}
	return b.String()
}
