package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkordes/rv-companion/internal/cache"
	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
	"github.com/pkordes/rv-companion/internal/wire"
)

// ChecklistFetcher defines the upstream operations the checklist service
// depends on.
type ChecklistFetcher interface {
	FetchChecklist(ctx context.Context, id string) ([]byte, error)
	FetchChecklistRun(ctx context.Context, id string) ([]byte, error)
	FetchMembers(ctx context.Context) ([]byte, error)
}

// ChecklistService serves normalized checklists and dated checklist runs,
// and resolves assigned-member references against the household member list.
type ChecklistService struct {
	fetcher ChecklistFetcher
	cache   *cache.Cache
	diags   repo.DiagnosticRepo
}

// NewChecklistService constructs a ChecklistService. cache and diags may be
// nil to disable caching and failure recording respectively.
func NewChecklistService(f ChecklistFetcher, c *cache.Cache, d repo.DiagnosticRepo) *ChecklistService {
	return &ChecklistService{fetcher: f, cache: c, diags: d}
}

// GetChecklist returns one canonical checklist.
func (s *ChecklistService) GetChecklist(ctx context.Context, id string) (domain.Checklist, error) {
	key := "checklist:v1:" + id

	var cached domain.Checklist
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		slog.WarnContext(ctx, "checklist cache read failed", "error", err)
	} else if hit {
		return cached, nil
	}

	raw, err := s.fetcher.FetchChecklist(ctx, id)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService.GetChecklist: %w", err)
	}

	checklist, err := wire.DecodeChecklist(raw)
	if err != nil {
		recordDecodeFailure(ctx, s.diags, "checklist", err, raw)
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService.GetChecklist: %w", err)
	}

	if err := s.cache.Set(ctx, key, checklist); err != nil {
		slog.WarnContext(ctx, "checklist cache write failed", "error", err)
	}
	return checklist, nil
}

// GetRun returns one canonical checklist run. Runs are cached under their
// derived ID, which is reproducible across decodes of the same day.
func (s *ChecklistService) GetRun(ctx context.Context, id string) (domain.ChecklistRun, error) {
	raw, err := s.fetcher.FetchChecklistRun(ctx, id)
	if err != nil {
		return domain.ChecklistRun{}, fmt.Errorf("service.ChecklistService.GetRun: %w", err)
	}

	run, err := wire.DecodeChecklistRun(raw)
	if err != nil {
		recordDecodeFailure(ctx, s.diags, "checklist_run", err, raw)
		return domain.ChecklistRun{}, fmt.Errorf("service.ChecklistService.GetRun: %w", err)
	}

	if err := s.cache.Set(ctx, "checklist_run:v1:"+run.RunID(), run); err != nil {
		slog.WarnContext(ctx, "checklist run cache write failed", "error", err)
	}
	return run, nil
}

// AssignedMembers resolves a checklist's assigned-member IDs against the
// household member list. The member list is fetched separately and the
// relation stays a lookup — removed members simply drop out of the result.
func (s *ChecklistService) AssignedMembers(ctx context.Context, checklist domain.Checklist) ([]domain.Member, error) {
	if len(checklist.AssignedMemberIDs) == 0 {
		return []domain.Member{}, nil
	}

	raw, err := s.fetcher.FetchMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.AssignedMembers: %w", err)
	}

	// The members endpoint has kept a stable shape; no tolerant decoding
	// needed beyond plain JSON.
	var members []domain.Member
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.AssignedMembers: decode members: %w", err)
	}

	return domain.ResolveMembers(checklist.AssignedMemberIDs, members), nil
}
