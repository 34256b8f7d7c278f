// Package assess walks the user through the assessment form one question at
// a time, then saves and shows the result.
package assess

import (
	"context"
	"errors"
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
	"github.com/abhisek/praxis/internal/screens/results"
	"github.com/abhisek/praxis/internal/store"
	"github.com/abhisek/praxis/internal/ui/components"
	"github.com/abhisek/praxis/internal/ui/layout"
	"github.com/abhisek/praxis/internal/ui/theme"
)

// Recorder saves completed assessments.
type Recorder interface {
	Record(ctx context.Context, a *store.Assessment) error
}

// Deps are the services the form and its result screen need.
type Deps struct {
	Catalog  *questions.Catalog
	Recorder Recorder
	Plans    *actionplan.Generator
}

type savedMsg struct {
	result *assessment.Result
	err    error
}

// AssessScreen is the interactive assessment form.
type AssessScreen struct {
	deps    Deps
	form    *assessment.Form
	qi      int
	options components.OptionList
	input   components.TextInput
	errMsg  string
	saving  bool
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)

// New creates an AssessScreen over a fresh form.
func New(form *assessment.Form, deps Deps) *AssessScreen {
	s := &AssessScreen{deps: deps, form: form}
	s.load()
	return s
}

func (s *AssessScreen) Init() tea.Cmd {
	return nil
}

func (s *AssessScreen) Title() string {
	return "Assessment"
}

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "Shift+Tab", Description: "Previous"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *AssessScreen) question() questions.Question {
	return s.form.Current().Questions[s.qi]
}

// load prepares the answer widget for the current question, pre-filled with
// any earlier answer.
func (s *AssessScreen) load() {
	q := s.question()
	current, _ := s.form.Response(q.ID)
	if q.Type.IsChoice() {
		labels := make([]string, len(q.Options))
		values := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i], values[i] = o.Text, o.Value
		}
		s.options = components.NewOptionList(labels, values, current)
		return
	}
	placeholder := "Type your answer"
	switch q.Type {
	case questions.TypeCurrency:
		placeholder = "Amount, e.g. 18500"
	case questions.TypePercentage:
		placeholder = "Percentage, 0-100"
	case questions.TypeNumber:
		placeholder = "Number"
	}
	s.input = components.NewTextInput(placeholder, current, q.Type.IsNumeric(), 240)
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.errMsg = "Could not save: " + msg.err.Error()
			return s, nil
		}
		next := results.New(msg.result, s.deps.Catalog, s.deps.Plans)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "shift+tab":
			s.previous()
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.question().Type.IsChoice() {
		s.options, cmd = s.options.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit records the answer to the current question and moves on. An empty
// answer to an optional question skips it.
func (s *AssessScreen) submit() tea.Cmd {
	q := s.question()
	var value string
	if q.Type.IsChoice() {
		value = s.options.Value()
	} else {
		value = s.input.Value()
	}

	if !assessment.Required(q) && strings.TrimSpace(value) == "" {
		value = ""
	}
	if err := s.form.Answer(q.ID, value); err != nil {
		s.errMsg = friendly(err)
		return nil
	}
	s.errMsg = ""

	if s.qi < len(s.form.Current().Questions)-1 {
		s.qi++
		s.load()
		return nil
	}
	if s.form.IsLast() {
		return s.complete()
	}
	if _, err := s.form.Next(); err != nil {
		s.jumpToMissing(err)
		return nil
	}
	s.qi = 0
	s.load()
	return nil
}

func (s *AssessScreen) complete() tea.Cmd {
	res, err := s.form.Complete()
	if err != nil {
		s.jumpToMissing(err)
		return nil
	}
	s.saving = true
	rec := s.deps.Recorder
	return func() tea.Msg {
		if rec == nil {
			return savedMsg{result: res}
		}
		return savedMsg{result: res, err: rec.Record(context.Background(), res.Record())}
	}
}

// jumpToMissing moves to the first unanswered question of the step.
func (s *AssessScreen) jumpToMissing(err error) {
	s.errMsg = friendly(err)
	missing := s.form.Missing()
	if len(missing) == 0 {
		return
	}
	idx := slices.IndexFunc(s.form.Current().Questions, func(q questions.Question) bool {
		return q.ID == missing[0]
	})
	if idx >= 0 {
		s.qi = idx
		s.load()
	}
}

func (s *AssessScreen) previous() {
	s.errMsg = ""
	switch {
	case s.qi > 0:
		s.qi--
	case s.form.Back():
		s.qi = len(s.form.Current().Questions) - 1
	default:
		return
	}
	s.load()
}

func friendly(err error) string {
	var inc *assessment.IncompleteError
	switch {
	case errors.As(err, &inc):
		return fmt.Sprintf("%d question(s) still need an answer.", len(inc.Missing))
	case errors.Is(err, assessment.ErrInvalidResponse):
		// "invalid response: <id>: <reason>"
		msg := err.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
			reason := msg[i+2:]
			return strings.ToUpper(reason[:1]) + reason[1:] + "."
		}
		return msg
	default:
		return err.Error()
	}
}

func (s *AssessScreen) View(width, height int) string {
	step := s.form.Current()
	prog := s.form.Progress()
	q := s.question()
	var b strings.Builder

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Step %d of %d · %s · question %d of %d",
		prog.Step, prog.Steps, step.Category.DisplayName(), s.qi+1, len(step.Questions))) + "\n")
	bar := components.NewProgressBar("Answered", prog.Percent(), min(width-4, 72))
	b.WriteString(bar.View() + "\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text) + "\n")
	if q.HelpText != "" {
		b.WriteString(theme.Hint.Render(q.HelpText) + "\n")
	}
	if q.BenchmarkReference != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Benchmark: "+q.BenchmarkReference) + "\n")
	}
	b.WriteString("\n")

	if q.Type.IsChoice() {
		b.WriteString(s.options.View())
	} else {
		b.WriteString(s.input.View() + "\n")
		if !assessment.Required(q) {
			b.WriteString(theme.Hint.Render("Optional. Press Enter to skip.") + "\n")
		}
	}

	switch {
	case s.saving:
		b.WriteString("\n" + theme.Hint.Render("Saving..."))
	case s.errMsg != "":
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}

	return layout.Column("\n"+b.String(), width)
}
