package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/rv-companion/internal/cache"
	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
	"github.com/pkordes/rv-companion/internal/wire"
)

// ParkFetcher defines the upstream operation the park service depends on.
type ParkFetcher interface {
	FetchParkDetail(ctx context.Context, id string) ([]byte, error)
}

// ParkService serves normalized park detail.
type ParkService struct {
	fetcher ParkFetcher
	cache   *cache.Cache
	diags   repo.DiagnosticRepo
}

// NewParkService constructs a ParkService. cache and diags may be nil to
// disable caching and failure recording respectively.
func NewParkService(f ParkFetcher, c *cache.Cache, d repo.DiagnosticRepo) *ParkService {
	return &ParkService{fetcher: f, cache: c, diags: d}
}

// GetDetail returns canonical park detail for one park.
// The id is validated as non-blank only — park identifiers are opaque.
func (s *ParkService) GetDetail(ctx context.Context, id string) (domain.ParkDetail, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ParkDetail{}, fmt.Errorf("service.ParkService.GetDetail: %w: park id is required", domain.ErrValidation)
	}

	key := "park_detail:v1:" + id

	var cached domain.ParkDetail
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		slog.WarnContext(ctx, "park detail cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	raw, err := s.fetcher.FetchParkDetail(ctx, id)
	if err != nil {
		return domain.ParkDetail{}, fmt.Errorf("service.ParkService.GetDetail: %w", err)
	}

	detail, err := wire.DecodeParkDetail(raw)
	if err != nil {
		recordDecodeFailure(ctx, s.diags, "park_detail", err, raw)
		return domain.ParkDetail{}, fmt.Errorf("service.ParkService.GetDetail: %w", err)
	}

	if err := s.cache.Set(ctx, key, detail); err != nil {
		slog.WarnContext(ctx, "park detail cache write failed", "error", err)
	}
	return detail, nil
}
