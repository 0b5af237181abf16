package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/rv-companion/internal/domain"
)

// checklistResponse pairs a checklist with its resolved member assignments.
type checklistResponse struct {
	Checklist       domain.Checklist `json:"checklist"`
	AssignedMembers []domain.Member  `json:"assigned_members"`
}

// checklistRunResponse flattens a run and adds its derived identifier, which
// clients use as the cache and persistence key for per-date completion state.
type checklistRunResponse struct {
	RunID string `json:"run_id"`
	domain.ChecklistRun
}

// GetChecklist handles GET /api/checklists/{id}.
// The response includes the checklist and the family members resolved from
// its item assignments; assignments referencing unknown members are dropped.
func (s *Server) GetChecklist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	checklist, err := s.checklists.GetChecklist(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	members, err := s.checklists.AssignedMembers(r.Context(), checklist)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if members == nil {
		members = []domain.Member{}
	}

	writeJSON(w, http.StatusOK, checklistResponse{Checklist: checklist, AssignedMembers: members})
}

// GetChecklistRun handles GET /api/checklist-runs/{id}.
func (s *Server) GetChecklistRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.checklists.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checklistRunResponse{RunID: run.RunID(), ChecklistRun: run})
}
