// Package history lists past assessments and opens their results.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/screens/results"
	"github.com/abhisek/praxis/internal/store"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

const listLimit = 50

type listedMsg struct {
	filter questions.Discipline
	rows   []store.Assessment
	err    error
}

type openedMsg struct {
	result *assessment.Result
	err    error
}

// HistoryScreen lists saved assessments newest first. "f" cycles a
// discipline filter through the disciplines present in the list.
type HistoryScreen struct {
	repo    store.AssessmentRepo
	catalog *questions.Catalog
	plans   *actionplan.Generator

	filter  questions.Discipline
	seen    []questions.Discipline
	rows    []store.Assessment
	cursor  int
	loading bool
	err     error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.AssessmentRepo, c *questions.Catalog, plans *actionplan.Generator) *HistoryScreen {
	return &HistoryScreen{repo: repo, catalog: c, plans: plans}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.load() }

func (s *HistoryScreen) load() tea.Cmd {
	s.loading = true
	repo, filter := s.repo, s.filter
	return func() tea.Msg {
		rows, err := repo.List(context.Background(), store.QueryOpts{Limit: listLimit, Discipline: filter})
		return listedMsg{filter: filter, rows: rows, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "Past Assessments" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "f", Description: "Filter discipline"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listedMsg:
		if msg.filter != s.filter {
			return s, nil // superseded by a later filter change
		}
		s.loading, s.err = false, msg.err
		s.rows, s.cursor = msg.rows, 0
		if msg.filter == "" {
			s.seen = disciplinesOf(msg.rows)
		}
		return s, nil

	case openedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		next := results.New(msg.result, s.catalog, s.plans)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = max(min(s.cursor+1, len(s.rows)-1), 0)
	case "f":
		if len(s.seen) < 2 && s.filter == "" {
			return nil
		}
		s.filter = nextFilter(s.seen, s.filter)
		return s.load()
	case "enter":
		if s.cursor >= len(s.rows) {
			return nil
		}
		repo, id := s.repo, s.rows[s.cursor].ID
		return func() tea.Msg {
			a, err := repo.Get(context.Background(), id)
			if err != nil {
				return openedMsg{err: fmt.Errorf("open assessment: %w", err)}
			}
			return openedMsg{result: assessment.FromRecord(a)}
		}
	}
	return nil
}

// nextFilter steps "" -> seen[0] -> ... -> seen[n-1] -> "".
func nextFilter(seen []questions.Discipline, cur questions.Discipline) questions.Discipline {
	if cur == "" {
		if len(seen) == 0 {
			return ""
		}
		return seen[0]
	}
	for i, d := range seen {
		if d == cur && i+1 < len(seen) {
			return seen[i+1]
		}
	}
	return ""
}

func disciplinesOf(rows []store.Assessment) []questions.Discipline {
	var out []questions.Discipline
	have := map[questions.Discipline]bool{}
	for _, r := range rows {
		if !have[r.Discipline] {
			have[r.Discipline] = true
			out = append(out, r.Discipline)
		}
	}
	return out
}

func (s *HistoryScreen) View(width, height int) string {
	var notice string
	switch {
	case s.err != nil:
		notice = theme.ErrorText.Render("Error: " + s.err.Error())
	case s.loading && s.rows == nil:
		notice = theme.Hint.Render("Loading assessments...")
	case len(s.rows) == 0:
		notice = theme.Hint.Render("No assessments yet.")
	}
	if notice != "" {
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, notice)
	}

	heading := "All disciplines"
	if s.filter != "" {
		heading = s.filter.DisplayName()
	}
	lines := []string{layout.Section(fmt.Sprintf("%s · %d", heading, len(s.rows)), width)}
	for i, a := range s.rows {
		lines = append(lines, s.row(i, a))
	}

	body, _ := layout.Scroll(strings.Join(lines, "\n"), s.cursor-(height-4), height-2)
	return "\n" + layout.Column(body, width)
}

func (s *HistoryScreen) row(i int, a store.Assessment) string {
	text := fmt.Sprintf("%s  %-28s %-22s %3.0f%%  %s",
		a.CompletedAt.Local().Format("Jan 02, 2006"),
		truncate(a.PracticeName, 28),
		a.Discipline.DisplayName(),
		a.Report.Overall,
		a.Report.Bucket.Label(),
	)
	if i == s.cursor {
		return theme.Selected.Render("▸ " + text)
	}
	return theme.Body.Render("  " + text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
