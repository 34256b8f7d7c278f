package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/praxis/internal/questions"
)

// parseQuery reads catalog filters from query parameters. An unknown enum
// value is an error rather than an empty result.
func parseQuery(v url.Values) (questions.Query, error) {
	q := questions.Query{
		Category:     questions.Category(v.Get("category")),
		ModuleID:     v.Get("module"),
		Discipline:   questions.Discipline(v.Get("discipline")),
		Type:         questions.QuestionType(v.Get("type")),
		PracticeSize: questions.PracticeSize(v.Get("size")),
	}
	switch {
	case q.Category != "" && !q.Category.Valid():
		return q, fmt.Errorf("unknown category %q", q.Category)
	case q.Discipline != "" && !q.Discipline.Valid():
		return q, fmt.Errorf("unknown discipline %q", q.Discipline)
	case q.Type != "" && !q.Type.Valid():
		return q, fmt.Errorf("unknown question type %q", q.Type)
	case q.PracticeSize != "" && !q.PracticeSize.Valid():
		return q, fmt.Errorf("unknown practice size %q", q.PracticeSize)
	}
	return q, nil
}

type questionList struct {
	Version   string               `json:"version"`
	Count     int                  `json:"count"`
	Questions []questions.Question `json:"questions"`
}

func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	qs := s.deps.Catalog.Filter(q)
	if q.Discipline != "" {
		for i := range qs {
			qs[i] = qs[i].ForDiscipline(q.Discipline)
		}
	}
	writeJSON(w, http.StatusOK, questionList{
		Version:   s.deps.Catalog.Version(),
		Count:     len(qs),
		Questions: qs,
	})
}

func (s *Server) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := s.deps.Catalog.GetQuestion(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if d := questions.Discipline(r.URL.Query().Get("discipline")); d != "" {
		if !d.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown discipline %q", d))
			return
		}
		q = q.ForDiscipline(d)
	}
	writeJSON(w, http.StatusOK, q)
}

type moduleInfo struct {
	ID        string             `json:"id"`
	Category  questions.Category `json:"category"`
	Questions int                `json:"questions"`
}

func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	mods := s.deps.Catalog.Modules()
	out := make([]moduleInfo, 0, len(mods))
	for _, id := range mods {
		qs := s.deps.Catalog.ByModule(id)
		out = append(out, moduleInfo{ID: id, Category: qs[0].Category, Questions: len(qs)})
	}
	writeJSON(w, http.StatusOK, out)
}
