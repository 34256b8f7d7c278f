// Package assessment implements the multi-step assessment form: one step
// per question module, answered in order and scored on completion.
package assessment

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

// Step is one page of the form: the applicable questions of a module.
type Step struct {
	ModuleID  string
	Category  questions.Category
	Questions []questions.Question
}

// Progress summarises how far through the form the user is.
type Progress struct {
	Step     int // 1-based
	Steps    int
	Answered int
	Total    int
}

// Percent returns the share of questions answered, 0-100.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total) * 100
}

// Form is the linear assessment state machine. It is not safe for concurrent use.
type Form struct {
	profile        Profile
	catalogVersion string
	steps          []Step
	index          int
	responses      map[string]string
	startedAt      time.Time
	now            func() time.Time
}

// NewForm builds the steps for a practice profile. Each module with at least
// one question applicable to the profile becomes a step, in catalog order.
// Discipline overrides are applied to the questions as asked.
func NewForm(c *questions.Catalog, p Profile) (*Form, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	var steps []Step
	for _, mod := range c.Modules() {
		qs := c.Filter(questions.Query{
			ModuleID:     mod,
			Discipline:   p.Discipline,
			PracticeSize: p.PracticeSize,
		})
		if len(qs) == 0 {
			continue
		}
		for i := range qs {
			qs[i] = qs[i].ForDiscipline(p.Discipline)
		}
		steps = append(steps, Step{ModuleID: mod, Category: qs[0].Category, Questions: qs})
	}
	if len(steps) == 0 {
		return nil, ErrNoQuestions
	}

	f := &Form{
		profile:        p,
		catalogVersion: c.Version(),
		steps:          steps,
		responses:      make(map[string]string),
		now:            time.Now,
	}
	f.startedAt = f.now()
	return f, nil
}

// Profile returns the profile the form was built for.
func (f *Form) Profile() Profile { return f.profile }

// Steps returns the number of steps.
func (f *Form) Steps() int { return len(f.steps) }

// Index returns the 0-based index of the current step.
func (f *Form) Index() int { return f.index }

// Current returns the current step.
func (f *Form) Current() Step { return f.steps[f.index] }

// IsLast reports whether the current step is the final one.
func (f *Form) IsLast() bool { return f.index == len(f.steps)-1 }

// Response returns the recorded answer for a question.
func (f *Form) Response(questionID string) (string, bool) {
	v, ok := f.responses[questionID]
	return v, ok
}

// Answer records a response to a question on the current step.
// An empty value clears an optional question's answer.
func (f *Form) Answer(questionID, value string) error {
	q, ok := f.find(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if value == "" && !Required(q) {
		delete(f.responses, questionID)
		return nil
	}
	v, err := ValidateResponse(q, value)
	if err != nil {
		return err
	}
	f.responses[questionID] = v
	return nil
}

func (f *Form) find(id string) (questions.Question, bool) {
	for _, q := range f.Current().Questions {
		if q.ID == id {
			return q, true
		}
	}
	return questions.Question{}, false
}

// Missing returns the IDs of required questions on the current step that have no answer.
func (f *Form) Missing() []string {
	missing := make([]string, 0)
	for _, q := range f.Current().Questions {
		if _, ok := f.responses[q.ID]; !ok && Required(q) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func (f *Form) checkStep() error {
	if missing := f.Missing(); len(missing) > 0 {
		return &IncompleteError{ModuleID: f.Current().ModuleID, Missing: missing}
	}
	return nil
}

// Next advances to the following step and reports whether it moved.
// It fails with ErrIncompleteStep while required questions are unanswered.
// On the last step it returns false without moving.
func (f *Form) Next() (bool, error) {
	if err := f.checkStep(); err != nil {
		return false, err
	}
	if f.IsLast() {
		return false, nil
	}
	f.index++
	return true, nil
}

// Back returns to the previous step, keeping recorded answers.
// It reports false on the first step.
func (f *Form) Back() bool {
	if f.index == 0 {
		return false
	}
	f.index--
	return true
}

// Progress reports the current position and answer count.
func (f *Form) Progress() Progress {
	p := Progress{Step: f.index + 1, Steps: len(f.steps)}
	for _, s := range f.steps {
		for _, q := range s.Questions {
			p.Total++
			if _, ok := f.responses[q.ID]; ok {
				p.Answered++
			}
		}
	}
	return p
}

// Questions returns every question on the form, as asked, in step order.
func (f *Form) Questions() []questions.Question {
	var out []questions.Question
	for _, s := range f.steps {
		out = append(out, s.Questions...)
	}
	return out
}

// Complete scores the form. It is only allowed on the last step, once that
// step is fully answered.
func (f *Form) Complete() (*Result, error) {
	if !f.IsLast() {
		return nil, ErrNotFinished
	}
	if err := f.checkStep(); err != nil {
		return nil, err
	}
	responses := maps.Clone(f.responses)
	return &Result{
		ID:             uuid.NewString(),
		Profile:        f.profile,
		CatalogVersion: f.catalogVersion,
		StartedAt:      f.startedAt,
		CompletedAt:    f.now(),
		Responses:      responses,
		Report:         scoring.Score(f.Questions(), responses),
	}, nil
}

// Result is a completed, scored assessment.
type Result struct {
	ID             string            `json:"id"`
	Profile        Profile           `json:"profile"`
	CatalogVersion string            `json:"catalogVersion"`
	StartedAt      time.Time         `json:"startedAt"`
	CompletedAt    time.Time         `json:"completedAt"`
	Responses      map[string]string `json:"responses"`
	Report         scoring.Report    `json:"report"`
}
