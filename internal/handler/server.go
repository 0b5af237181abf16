// Package handler implements the HTTP handlers for the RV Companion API.
// All handlers are methods on Server; methods are split into domain-specific
// files (itinerary.go, checklist.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/spec"
)

// ItineraryServicer defines the business operations the itinerary handler
// depends on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the service layer.
type ItineraryServicer interface {
	Get(ctx context.Context) (domain.Itinerary, error)
}

// ChecklistServicer defines the business operations the checklist handler
// depends on.
type ChecklistServicer interface {
	GetChecklist(ctx context.Context, id string) (domain.Checklist, error)
	GetRun(ctx context.Context, id string) (domain.ChecklistRun, error)
	AssignedMembers(ctx context.Context, checklist domain.Checklist) ([]domain.Member, error)
}

// ParkServicer defines the business operations the park handler depends on.
type ParkServicer interface {
	GetDetail(ctx context.Context, id string) (domain.ParkDetail, error)
}

// DiagnosticServicer defines the operations the diagnostics handler depends
// on.
type DiagnosticServicer interface {
	List(ctx context.Context, params domain.PaginationParams) ([]domain.DecodeFailure, int64, error)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	itineraries ItineraryServicer
	checklists  ChecklistServicer
	parks       ParkServicer

	// diagnostics is nil when no diagnostics store is configured; the
	// endpoint then reports 404.
	diagnostics DiagnosticServicer
}

// NewServer constructs the Server with all its dependencies.
// diagnostics may be nil.
func NewServer(itineraries ItineraryServicer, checklists ChecklistServicer, parks ParkServicer, diagnostics DiagnosticServicer) *Server {
	return &Server{
		itineraries: itineraries,
		checklists:  checklists,
		parks:       parks,
		diagnostics: diagnostics,
	}
}

// Routes registers every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPISpec)
	r.Get("/api/itinerary", s.GetItinerary)
	r.Get("/api/checklists/{id}", s.GetChecklist)
	r.Get("/api/checklist-runs/{id}", s.GetChecklistRun)
	r.Get("/api/parks/{id}", s.GetParkDetail)
	r.Get("/api/diagnostics/decode-failures", s.ListDecodeFailures)

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPISpec serves the embedded OpenAPI document.
func (s *Server) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(spec.OpenAPI)
}
