package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/wire"
)

// errorBody is the JSON envelope for every non-2xx response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v and writes it with the given status code.
// Encoding failures are logged but not surfaced; the status line has
// already been committed at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encoding response", "error", err)
	}
}

// writeError maps a service error to the appropriate HTTP status and code.
//
// Upstream decode errors deliberately map to 502: the failure is in the
// legacy backend's response shape, not in the caller's request or in this
// service.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var envErr *wire.EnvelopeError
	var fieldErr *wire.FieldError

	var status int
	var code string
	switch {
	case errors.As(err, &envErr):
		status, code = http.StatusBadGateway, "upstream_shape_unrecognized"
	case errors.As(err, &fieldErr):
		status, code = http.StatusBadGateway, "upstream_decode_failed"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "handler: request failed",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: err.Error()}})
}
