// Package actionplan turns scored findings into a prioritised list of actions,
// drafting standard operating procedures with an LLM where one is configured.
package actionplan

import (
	"time"

	"github.com/abhisek/praxis/internal/questions"
)

// Source says where an item's steps came from.
type Source string

const (
	SourceLLM    Source = "llm"
	SourceStatic Source = "static"
)

// Item is one action for the practice to take.
type Item struct {
	QuestionID     string             `json:"questionId"`
	Category       questions.Category `json:"category"`
	Priority       questions.Priority `json:"priority"`
	Timeframe      string             `json:"timeframe,omitempty"`
	Interpretation string             `json:"interpretation"`
	SOPTypes       []string           `json:"sopTypes,omitempty"`
	Title          string             `json:"title"`
	Steps          []string           `json:"steps"`
	Source         Source             `json:"source"`
}

// Plan is the full action plan for one assessment.
type Plan struct {
	AssessmentID string    `json:"assessmentId"`
	Model        string    `json:"model,omitempty"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Items        []Item    `json:"items"`
}

// Drafted returns how many items carry LLM-drafted steps.
func (p *Plan) Drafted() int {
	n := 0
	for _, it := range p.Items {
		if it.Source == SourceLLM {
			n++
		}
	}
	return n
}
