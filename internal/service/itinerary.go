// Package service contains the business logic for the RV Companion API.
// Services orchestrate the upstream fetch, the wire-layer decode, the cache,
// and the decode-failure diagnostics store. No HTTP and no SQL live here —
// services depend on interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/rv-companion/internal/cache"
	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
	"github.com/pkordes/rv-companion/internal/wire"
)

// ItineraryFetcher defines the upstream operation the itinerary service
// depends on. Defining the interface here (in the consumer package) lets
// tests inject a stub without a live backend.
type ItineraryFetcher interface {
	FetchItinerary(ctx context.Context) ([]byte, error)
}

// ItineraryService serves the household's normalized itinerary.
type ItineraryService struct {
	fetcher ItineraryFetcher
	cache   *cache.Cache
	diags   repo.DiagnosticRepo // nil when diagnostics are disabled
}

// NewItineraryService constructs an ItineraryService. cache and diags may be
// nil to disable caching and failure recording respectively.
func NewItineraryService(f ItineraryFetcher, c *cache.Cache, d repo.DiagnosticRepo) *ItineraryService {
	return &ItineraryService{fetcher: f, cache: c, diags: d}
}

const itineraryCacheKey = "itinerary:v1"

// Get returns the canonical itinerary, from cache when possible.
// Decode failures are recorded for diagnostics and propagated typed, so the
// handler can distinguish an unrecognized upstream shape from a field-level
// problem.
func (s *ItineraryService) Get(ctx context.Context) (domain.Itinerary, error) {
	var cached domain.Itinerary
	if hit, err := s.cache.Get(ctx, itineraryCacheKey, &cached); err != nil {
		slog.WarnContext(ctx, "itinerary cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	raw, err := s.fetcher.FetchItinerary(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	itinerary, err := wire.DecodeItinerary(raw)
	if err != nil {
		recordDecodeFailure(ctx, s.diags, "itinerary", err, raw)
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}

	if err := s.cache.Set(ctx, itineraryCacheKey, itinerary); err != nil {
		slog.WarnContext(ctx, "itinerary cache write failed", "error", err)
	}
	return itinerary, nil
}

// recordDecodeFailure persists a decode failure, best-effort. A diagnostics
// outage must never turn a decode error into a different error for the
// caller, so repo failures are only logged.
func recordDecodeFailure(ctx context.Context, diags repo.DiagnosticRepo, entity string, decodeErr error, raw []byte) {
	if diags == nil {
		return
	}

	kind := domain.ErrorKindStructural
	var envErr *wire.EnvelopeError
	if errors.As(decodeErr, &envErr) {
		kind = domain.ErrorKindEnvelopeNotFound
	}

	_, err := diags.Record(ctx, domain.DecodeFailure{
		Entity:    entity,
		ErrorKind: kind,
		Message:   decodeErr.Error(),
		RawBody:   string(raw),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record decode failure",
			"entity", entity,
			"error", err,
		)
	}
}
