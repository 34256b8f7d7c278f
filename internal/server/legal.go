package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/praxis/internal/legal"
)

func (s *Server) legalPage(w http.ResponseWriter, r *http.Request) {
	page, ok := legal.Page(chi.URLParam(r, "page"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such page")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(page)
}
