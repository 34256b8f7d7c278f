package assessment

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/abhisek/praxis/internal/questions"
)

// Evaluate runs a complete set of responses through a fresh form and returns
// the result. Every problem is reported: invalid answers, answers to
// questions that do not apply to the profile and required questions left
// unanswered.
func Evaluate(c *questions.Catalog, p Profile, responses map[string]string) (*Result, error) {
	f, err := NewForm(c, p)
	if err != nil {
		return nil, err
	}

	asked := make(map[string]bool)
	var errs []error
	for {
		for _, q := range f.Current().Questions {
			asked[q.ID] = true
			v, ok := responses[q.ID]
			if !ok {
				continue
			}
			if err := f.Answer(q.ID, v); err != nil {
				errs = append(errs, err)
			}
		}
		if err := f.checkStep(); err != nil {
			errs = append(errs, err)
		}
		if f.IsLast() {
			break
		}
		f.index++
	}
	for _, id := range slices.Sorted(maps.Keys(responses)) {
		if !asked[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownQuestion, id))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Complete()
}
