package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
)

// DiagnosticService exposes recorded decode failures to support tooling.
// Construct it only when a diagnostics store is configured.
type DiagnosticService struct {
	diags repo.DiagnosticRepo
}

// NewDiagnosticService constructs a DiagnosticService backed by the provided
// repo.
func NewDiagnosticService(d repo.DiagnosticRepo) *DiagnosticService {
	return &DiagnosticService{diags: d}
}

// List returns a page of decode failures, newest first, plus the total count.
func (s *DiagnosticService) List(ctx context.Context, params domain.PaginationParams) ([]domain.DecodeFailure, int64, error) {
	failures, total, err := s.diags.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DiagnosticService.List: %w", err)
	}
	return failures, total, nil
}

// Prune removes failures older than retention and reports how many rows were
// deleted.
func (s *DiagnosticService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	removed, err := s.diags.Prune(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("service.DiagnosticService.Prune: %w", err)
	}
	return removed, nil
}
