package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/rv-companion/internal/domain"
)

// decodeFailureListResponse is the paginated envelope for decode failures.
type decodeFailureListResponse struct {
	Data       []domain.DecodeFailure `json:"data"`
	Pagination paginationMeta         `json:"pagination"`
}

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListDecodeFailures handles GET /api/diagnostics/decode-failures.
// The endpoint only exists when a diagnostics store is configured; without
// one it reports 404 like any other unknown resource.
func (s *Server) ListDecodeFailures(w http.ResponseWriter, r *http.Request) {
	if s.diagnostics == nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	failures, total, err := s.diagnostics.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if failures == nil {
		failures = []domain.DecodeFailure{}
	}

	writeJSON(w, http.StatusOK, decodeFailureListResponse{
		Data: failures,
		Pagination: paginationMeta{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// queryInt reads an optional integer query parameter. Absent or unparseable
// values come back nil so that NewPaginationParams can apply its defaults.
func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
