package assessment

import (
	"fmt"
	"strings"

	"github.com/abhisek/praxis/internal/questions"
)

// Profile describes the practice being assessed.
type Profile struct {
	PracticeName string                 `json:"practiceName"`
	Discipline   questions.Discipline   `json:"discipline"`
	PracticeSize questions.PracticeSize `json:"practiceSize"`
}

// Validate checks the profile's enums and name.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.PracticeName) == "" {
		return fmt.Errorf("practice name is required")
	}
	if !p.Discipline.Valid() {
		return fmt.Errorf("unknown discipline %q", p.Discipline)
	}
	if !p.PracticeSize.Valid() {
		return fmt.Errorf("unknown practice size %q", p.PracticeSize)
	}
	return nil
}
