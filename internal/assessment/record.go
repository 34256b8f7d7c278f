package assessment

import (
	"maps"

	"github.com/abhisek/praxis/internal/store"
)

// Record converts the result to its stored form.
func (r *Result) Record() *store.Assessment {
	return &store.Assessment{
		ID:             r.ID,
		PracticeName:   r.Profile.PracticeName,
		Discipline:     r.Profile.Discipline,
		PracticeSize:   r.Profile.PracticeSize,
		CatalogVersion: r.CatalogVersion,
		Report:         r.Report,
		Responses:      maps.Clone(r.Responses),
		StartedAt:      r.StartedAt,
		CompletedAt:    r.CompletedAt,
	}
}

// FromRecord rebuilds a result from a stored assessment.
func FromRecord(a *store.Assessment) *Result {
	return &Result{
		ID: a.ID,
		Profile: Profile{
			PracticeName: a.PracticeName,
			Discipline:   a.Discipline,
			PracticeSize: a.PracticeSize,
		},
		CatalogVersion: a.CatalogVersion,
		StartedAt:      a.StartedAt,
		CompletedAt:    a.CompletedAt,
		Responses:      maps.Clone(a.Responses),
		Report:         a.Report,
	}
}
