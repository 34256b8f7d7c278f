// Package profile collects the practice profile that decides which
// questions the assessment asks.
package profile

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/router"
	"github.com/abhisek/praxis/internal/screen"
	"github.com/abhisek/praxis/internal/screens/assess"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldDiscipline
	fieldSize
)

// ProfileScreen asks for practice name, discipline and size.
type ProfileScreen struct {
	deps       assess.Deps
	field      field
	name       components.TextInput
	discipline components.OptionList
	size       components.OptionList
	errMsg     string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen pre-filled from last, typically the profile of
// the most recent assessment.
func New(deps assess.Deps, last assessment.Profile) *ProfileScreen {
	var dLabels, dValues []string
	for _, d := range questions.AllDisciplines() {
		dLabels = append(dLabels, d.DisplayName())
		dValues = append(dValues, string(d))
	}
	var sLabels, sValues []string
	for _, sz := range questions.AllPracticeSizes() {
		sLabels = append(sLabels, sz.DisplayName())
		sValues = append(sValues, string(sz))
	}
	return &ProfileScreen{
		deps:       deps,
		name:       components.NewTextInput("Practice name", last.PracticeName, false, 80),
		discipline: components.NewOptionList(dLabels, dValues, string(last.Discipline)),
		size:       components.NewOptionList(sLabels, sValues, string(last.PracticeSize)),
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Practice Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Shift+Tab", Description: "Previous"},
		{Key: "Esc", Description: "Back"},
	}
}

// Profile returns the profile as currently entered.
func (s *ProfileScreen) Profile() assessment.Profile {
	return assessment.Profile{
		PracticeName: strings.TrimSpace(s.name.Value()),
		Discipline:   questions.Discipline(s.discipline.Value()),
		PracticeSize: questions.PracticeSize(s.size.Value()),
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, s.advance()
		case "shift+tab":
			if s.field > fieldName {
				s.field--
			}
			s.errMsg = ""
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.field {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldDiscipline:
		s.discipline, cmd = s.discipline.Update(msg)
	case fieldSize:
		s.size, cmd = s.size.Update(msg)
	}
	return s, cmd
}

func (s *ProfileScreen) advance() tea.Cmd {
	if s.field == fieldName && strings.TrimSpace(s.name.Value()) == "" {
		s.errMsg = "Enter the practice name."
		return nil
	}
	s.errMsg = ""
	if s.field < fieldSize {
		s.field++
		return nil
	}

	form, err := assessment.NewForm(s.deps.Catalog, s.Profile())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := assess.New(form, s.deps)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ProfileScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Questions are tailored to your discipline and practice size.") + "\n\n")

	label := func(f field, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if f == s.field {
			style = theme.Heading
		}
		return style.Render(text) + "\n"
	}

	b.WriteString(label(fieldName, "Practice name"))
	if s.field == fieldName {
		b.WriteString(s.name.View() + "\n\n")
	} else {
		b.WriteString(theme.Answered.Render(s.Profile().PracticeName) + "\n\n")
	}

	b.WriteString(label(fieldDiscipline, "Discipline"))
	switch {
	case s.field == fieldDiscipline:
		b.WriteString(s.discipline.View() + "\n")
	case s.field > fieldDiscipline:
		b.WriteString(theme.Answered.Render(s.Profile().Discipline.DisplayName()) + "\n\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(label(fieldSize, "Practice size"))
	if s.field == fieldSize {
		b.WriteString(s.size.View())
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}
	return layout.Column(b.String(), width)
}
