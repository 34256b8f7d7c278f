package assessment

import (
	"fmt"
	"strings"

	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
)

// Required reports whether q must be answered before leaving its step.
// Free-text questions are optional.
func Required(q questions.Question) bool {
	return q.Type != questions.TypeText
}

// ValidateResponse checks that value is an acceptable answer to q and
// returns it normalised.
func ValidateResponse(q questions.Question, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s: empty answer", ErrInvalidResponse, q.ID)
	}

	switch {
	case q.Type.IsChoice():
		if _, ok := q.OptionByValue(value); !ok {
			return "", fmt.Errorf("%w: %s: %q is not one of the options", ErrInvalidResponse, q.ID, value)
		}
	case q.Type.IsNumeric():
		n, err := scoring.ParseNumber(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %q is not a number", ErrInvalidResponse, q.ID, value)
		}
		if q.Type == questions.TypePercentage && (n < 0 || n > 100) {
			return "", fmt.Errorf("%w: %s: percentage %v out of range 0-100", ErrInvalidResponse, q.ID, n)
		}
		if q.Type == questions.TypeCurrency && n < 0 {
			return "", fmt.Errorf("%w: %s: amount cannot be negative", ErrInvalidResponse, q.ID)
		}
	}
	return value, nil
}
