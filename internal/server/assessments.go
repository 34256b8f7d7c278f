package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/praxis/internal/actionplan"
	"github.com/abhisek/praxis/internal/assessment"
	"github.com/abhisek/praxis/internal/questions"
	"github.com/abhisek/praxis/internal/scoring"
	"github.com/abhisek/praxis/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type createAssessmentRequest struct {
	Profile   assessment.Profile `json:"profile"`
	Responses map[string]string  `json:"responses"`
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := assessment.Evaluate(s.deps.Catalog, req.Profile, req.Responses)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "assessment rejected", problems(err)...)
		return
	}
	if err := s.deps.Dashboard.Record(r.Context(), res.Record()); err != nil {
		s.log.Error("save assessment", "id", res.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save assessment")
		return
	}
	s.log.Info("assessment recorded", "id", res.ID, "discipline", res.Profile.Discipline,
		"overall", res.Report.Overall, "subject", Subject(r.Context()))
	w.Header().Set("Location", "/v1/assessments/"+res.ID)
	writeJSON(w, http.StatusCreated, res)
}

// problems flattens a joined error into one line per problem.
func problems(err error) []string {
	var out []string
	for line := range strings.Lines(err.Error()) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

type assessmentSummary struct {
	ID             string                 `json:"id"`
	PracticeName   string                 `json:"practiceName"`
	Discipline     questions.Discipline   `json:"discipline"`
	PracticeSize   questions.PracticeSize `json:"practiceSize"`
	CatalogVersion string                 `json:"catalogVersion"`
	CompletedAt    time.Time              `json:"completedAt"`
	Overall        float64                `json:"overall"`
	Bucket         scoring.Bucket         `json:"bucket"`
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	opts := store.QueryOpts{Limit: defaultListLimit}
	v := r.URL.Query()
	if l := v.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = min(n, maxListLimit)
	}
	if d := questions.Discipline(v.Get("discipline")); d != "" {
		if !d.Valid() {
			writeError(w, http.StatusBadRequest, "unknown discipline "+strconv.Quote(string(d)))
			return
		}
		opts.Discipline = d
	}

	rows, err := s.deps.Assessments.List(r.Context(), opts)
	if err != nil {
		s.log.Error("list assessments", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list assessments")
		return
	}
	out := make([]assessmentSummary, len(rows))
	for i, a := range rows {
		out[i] = assessmentSummary{
			ID:             a.ID,
			PracticeName:   a.PracticeName,
			Discipline:     a.Discipline,
			PracticeSize:   a.PracticeSize,
			CatalogVersion: a.CatalogVersion,
			CompletedAt:    a.CompletedAt,
			Overall:        a.Report.Overall,
			Bucket:         a.Report.Bucket,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// loadAssessment writes the error response itself and returns nil when the
// assessment cannot be loaded.
func (s *Server) loadAssessment(w http.ResponseWriter, r *http.Request) *assessment.Result {
	id := chi.URLParam(r, "id")
	a, err := s.deps.Assessments.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "assessment not found")
		return nil
	case err != nil:
		s.log.Error("get assessment", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load assessment")
		return nil
	}
	return assessment.FromRecord(a)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	if res := s.loadAssessment(w, r); res != nil {
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) actionPlan(w http.ResponseWriter, r *http.Request) {
	res := s.loadAssessment(w, r)
	if res == nil {
		return
	}
	plan, err := s.deps.Plans.Generate(r.Context(), actionplan.Input{
		AssessmentID: res.ID,
		Profile:      res.Profile,
		Responses:    res.Responses,
		Report:       res.Report,
	})
	if err != nil {
		s.log.Error("action plan", "id", res.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build action plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.deps.Dashboard.Summary(r.Context())
	if err != nil {
		s.log.Error("dashboard", "error", err)
		writeError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
