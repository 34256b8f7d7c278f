// Package app is the root Bubble Tea model of the terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/dashboard"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/screens/assess"
	"github.com/abhisek/praxis/internal/screens/home"
	"github.com/abhisek/praxis/internal/screens/profile"
	"github.com/abhisek/praxis/internal/screens/welcome"
	"github.com/abhisek/praxis/internal/store"
	"github.com/abhisek/praxis/internal/ui/layout"
)

// Options are the services the UI runs against.
type Options struct {
	Catalog     *questions.Catalog
	Dashboard   *dashboard.Service
	Assessments store.AssessmentRepo
	// Plans may be nil; result screens then offer no action plan.
	Plans *actionplan.Generator

	// StartAssessment skips the welcome screen and opens the profile form.
	StartAssessment bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	version string
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel. It opens on the welcome screen, or on
// the profile form above home when StartAssessment is set.
func newAppModel(opts Options) AppModel {
	homeDeps := home.Deps{
		Assess: assess.Deps{
			Catalog:  opts.Catalog,
			Recorder: opts.Dashboard,
			Plans:    opts.Plans,
		},
		Dashboard:   opts.Dashboard,
		Assessments: opts.Assessments,
	}
	newHome := func() screen.Screen { return home.New(homeDeps) }

	m := AppModel{version: opts.Catalog.Version()}
	if opts.StartAssessment {
		root := newHome()
		m.router = router.New(root)
		form := profile.New(homeDeps.Assess, assessment.Profile{})
		m.initCmd = tea.Batch(root.Init(), func() tea.Msg {
			return router.PushScreenMsg{Screen: form}
		})
		return m
	}

	w := welcome.New(m.version, newHome)
	m.router = router.New(w)
	m.initCmd = w.Init()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "catalog "+m.version, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
