package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteStep is returned when advancing past a step with unanswered questions.
	ErrIncompleteStep = errors.New("step has unanswered questions")

	// ErrInvalidResponse is returned when a response does not fit its question.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrUnknownQuestion is returned when answering a question not on the current step.
	ErrUnknownQuestion = errors.New("question is not on the current step")

	// ErrNotFinished is returned by Complete before the last step is reached.
	ErrNotFinished = errors.New("assessment is not on its last step")

	// ErrNoQuestions is returned when a profile matches no questions at all.
	ErrNoQuestions = errors.New("no questions apply to this practice")
)

// IncompleteError lists the unanswered questions of a step.
// It matches ErrIncompleteStep with errors.Is.
type IncompleteError struct {
	ModuleID string
	Missing  []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrIncompleteStep, e.ModuleID, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteStep
}
