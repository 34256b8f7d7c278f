// Package home is the main menu of the terminal UI.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/dashboard"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/screens/assess"
	"github.com/abhisek/praxis/internal/screens/catalog"
	"github.com/abhisek/praxis/internal/screens/history"
	"github.com/abhisek/praxis/internal/screens/legal"
	"github.com/abhisek/praxis/internal/screens/overview"
	"github.com/abhisek/praxis/internal/screens/profile"
	"github.com/abhisek/praxis/internal/store"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// Deps are the services reachable from the home menu.
type Deps struct {
	Assess      assess.Deps
	Dashboard   overview.Summarizer
	Assessments store.AssessmentRepo
}

type latestLoadedMsg struct {
	summary *dashboard.Summary
	last    assessment.Profile
	err     error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	summary *dashboard.Summary
	last    assessment.Profile
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return []components.MenuItem{
		{Label: "Start assessment", Detail: "answer the questions for your practice", Action: push(func() screen.Screen {
			return profile.New(h.deps.Assess, h.last)
		})},
		{Label: "Dashboard", Detail: "latest scores and trends", Action: push(func() screen.Screen {
			return overview.New(h.deps.Dashboard)
		})},
		{Label: "Past assessments", Action: push(func() screen.Screen {
			return history.New(h.deps.Assessments, h.deps.Assess.Catalog, h.deps.Assess.Plans)
		})},
		{Label: "Question catalog", Action: push(func() screen.Screen {
			return catalog.New(h.deps.Assess.Catalog)
		})},
		{Label: "Legal", Action: push(func() screen.Screen {
			return legal.New()
		})},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the latest score after an assessment completes.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg latestLoadedMsg
		if h.deps.Dashboard != nil {
			msg.summary, msg.err = h.deps.Dashboard.Summary(ctx)
		}
		if h.deps.Assessments != nil && msg.err == nil {
			rows, err := h.deps.Assessments.List(ctx, store.QueryOpts{Limit: 1})
			if err != nil {
				msg.err = err
			} else if len(rows) > 0 {
				msg.last = assessment.Profile{
					PracticeName: rows[0].PracticeName,
					Discipline:   rows[0].Discipline,
					PracticeSize: rows[0].PracticeSize,
				}
			}
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(latestLoadedMsg); ok {
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.summary = msg.summary
		h.last = msg.last
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Practice assessment"))
	sections = append(sections, h.renderStatus())
	sections = append(sections, h.menu.View())
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(h.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return layout.Column("\n"+content, width)
}

func (h *HomeScreen) renderStatus() string {
	if h.summary == nil || h.summary.Latest == nil {
		return theme.Hint.Render("No assessments yet. Start one to see where your practice stands.")
	}
	l := h.summary.Latest
	score := lipgloss.NewStyle().Foreground(theme.BucketColor(l.Bucket)).Bold(true).
		Render(fmt.Sprintf("%.0f%% %s", l.Overall, l.Bucket.Label()))
	line := fmt.Sprintf("%s  %s  %s",
		theme.Body.Render(l.PracticeName),
		score,
		theme.Hint.Render(l.CompletedAt.Local().Format("Jan 02, 2006")),
	)
	if h.summary.Completed > 1 {
		line += theme.Hint.Render(fmt.Sprintf("  (%d assessments)", h.summary.Completed))
	}
	return theme.Card.Render(line)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
