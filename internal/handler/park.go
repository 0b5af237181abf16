package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetParkDetail handles GET /api/parks/{id}.
func (s *Server) GetParkDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := s.parks.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
