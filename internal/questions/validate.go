package questions

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found while assembling a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question catalog validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateSets performs all structural checks on the given sets.
// Returns a *ValidationError describing all problems found, or nil if valid.
func validateSets(sets []Set) error {
	var errs []string
	seen := make(map[string]string)

	for _, set := range sets {
		for i, q := range set.Questions {
			prefix := fmt.Sprintf("%s[%d] (id %q)", set.label(), i, q.ID)

			if err := validateRaw(q); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			}

			if set.Category != "" && q.Category != set.Category {
				errs = append(errs, fmt.Sprintf("%s: category %q does not belong in the %q set", prefix, q.Category, set.Category))
			}

			if q.ID == "" {
				continue
			}
			if first, dup := seen[q.ID]; dup {
				errs = append(errs, fmt.Sprintf("%s: duplicate question ID (first defined in %s)", prefix, first))
				continue
			}
			seen[q.ID] = set.label()
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
