// Package welcome shows the splash screen before the home menu.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "Know where your practice stands."

const banner = `
 ██████╗ ██████╗  █████╗ ██╗  ██╗██╗███████╗
 ██╔══██╗██╔══██╗██╔══██╗╚██╗██╔╝██║██╔════╝
 ██████╔╝██████╔╝███████║ ╚███╔╝ ██║███████╗
 ██╔═══╝ ██╔══██╗██╔══██║ ██╔██╗ ██║╚════██║
 ██║     ██║  ██║██║  ██║██╔╝ ██╗██║███████║
 ╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚══════╝`

// bannerWidth is the narrowest terminal that fits the block letters.
const bannerWidth = 48

// The splash reveals banner, then tagline, then the continue hint.
const (
	tickInterval = 100 * time.Millisecond
	totalDur     = 1800 * time.Millisecond
)

type phase int

const (
	phaseBlank phase = iota
	phaseBanner
	phaseTagline
	phaseReady
)

func phaseAt(d time.Duration) phase {
	switch {
	case d >= totalDur:
		return phaseReady
	case d >= 900*time.Millisecond:
		return phaseTagline
	case d >= 300*time.Millisecond:
		return phaseBanner
	}
	return phaseBlank
}

type tickMsg time.Time

// WelcomeScreen plays the splash and replaces itself with home on the
// first key press, whether or not the animation has finished.
type WelcomeScreen struct {
	next    func() screen.Screen
	catalog string
	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New builds the splash; next is called once, on the key press that leaves it.
func New(catalogVersion string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, catalog: catalogVersion}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done || phaseAt(w.elapsed) == phaseReady {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		home := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	p := phaseAt(w.elapsed)
	var parts []string
	if p >= phaseBanner {
		art := banner
		if width < bannerWidth {
			art = "P R A X I S"
		}
		parts = append(parts, theme.Title.Align(lipgloss.Left).Render(art), "")
	}
	if p >= phaseTagline {
		parts = append(parts,
			theme.Body.Bold(true).Render(Tagline),
			theme.Subtitle.Render("Question catalog "+w.catalog),
		)
	}
	if p == phaseReady {
		parts = append(parts, "", theme.Hint.Render("press any key to continue"))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
