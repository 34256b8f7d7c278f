package questions

import (
	"fmt"
	"slices"
)

// Set is one independently authored partition of the catalog,
// usually all the questions of a single category.
type Set struct {
	Name      string
	Category  Category
	Questions []Question
}

func (s Set) label() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Category != "" {
		return string(s.Category)
	}
	return "set"
}

// Catalog is the ordered, read-only collection of assessment questions.
// All methods are safe for concurrent use; nothing mutates a Catalog after New returns.
type Catalog struct {
	version   string
	questions []Question
	byID      map[string]int
	modules   []string
}

// New validates the sets and concatenates them in argument order.
// Any invalid entry fails the whole construction; no partial catalog is returned.
func New(sets ...Set) (*Catalog, error) {
	if err := validateSets(sets); err != nil {
		return nil, err
	}

	n := 0
	for _, s := range sets {
		n += len(s.Questions)
	}

	c := &Catalog{
		questions: make([]Question, 0, n),
		byID:      make(map[string]int, n),
	}
	seenModule := make(map[string]bool)
	for _, s := range sets {
		for _, q := range s.Questions {
			c.byID[q.ID] = len(c.questions)
			c.questions = append(c.questions, q.clone())
			if !seenModule[q.ModuleID] {
				seenModule[q.ModuleID] = true
				c.modules = append(c.modules, q.ModuleID)
			}
		}
	}
	return c, nil
}

// Version returns the catalog's semantic version, or "" when built without a manifest.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// AllQuestions returns every question in catalog order.
func (c *Catalog) AllQuestions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.clone()
	}
	return out
}

// GetQuestion returns a question by ID, or error if not found.
func (c *Catalog) GetQuestion(id string) (Question, error) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question not found: %q", id)
	}
	return c.questions[i].clone(), nil
}

// ByCategory returns all questions in a category, in catalog order.
func (c *Catalog) ByCategory(category Category) []Question {
	return c.filter(func(q Question) bool { return q.Category == category })
}

// ByModule returns all questions whose module ID equals moduleID, in catalog order.
func (c *Catalog) ByModule(moduleID string) []Question {
	return c.filter(func(q Question) bool { return q.ModuleID == moduleID })
}

// ByDiscipline returns all questions that apply to a discipline, universal questions included.
func (c *Catalog) ByDiscipline(d Discipline) []Question {
	return c.filter(func(q Question) bool { return q.AppliesTo(d) })
}

// ByType returns all questions of a question type, in catalog order.
func (c *Catalog) ByType(t QuestionType) []Question {
	return c.filter(func(q Question) bool { return q.Type == t })
}

// Modules returns the distinct module IDs in order of first appearance.
func (c *Catalog) Modules() []string {
	return slices.Clone(c.modules)
}

// FirstInModule returns the first question of a module by catalog position.
func (c *Catalog) FirstInModule(moduleID string) (Question, bool) {
	for _, q := range c.questions {
		if q.ModuleID == moduleID {
			return q.clone(), true
		}
	}
	return Question{}, false
}

// Query combines filters; zero-valued fields match everything.
type Query struct {
	Category     Category
	ModuleID     string
	Discipline   Discipline
	Type         QuestionType
	PracticeSize PracticeSize
}

// Filter returns the questions matching every non-zero field of q.
func (c *Catalog) Filter(q Query) []Question {
	return c.filter(func(x Question) bool {
		switch {
		case q.Category != "" && x.Category != q.Category:
			return false
		case q.ModuleID != "" && x.ModuleID != q.ModuleID:
			return false
		case q.Discipline != "" && !x.AppliesTo(q.Discipline):
			return false
		case q.Type != "" && x.Type != q.Type:
			return false
		case q.PracticeSize != "" && !x.AppliesToSize(q.PracticeSize):
			return false
		}
		return true
	})
}

// filter returns a fresh, never-nil slice of matching questions in catalog order.
func (c *Catalog) filter(match func(Question) bool) []Question {
	result := make([]Question, 0)
	for _, q := range c.questions {
		if match(q) {
			result = append(result, q.clone())
		}
	}
	return result
}
