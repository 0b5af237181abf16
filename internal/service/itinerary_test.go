package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/rv-companion/internal/cache"
	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
	"github.com/pkordes/rv-companion/internal/service"
	"github.com/pkordes/rv-companion/internal/wire"
)

// mockFetcher is a hand-written test double for the upstream client.
// Each method is a function field — set only the ones your test needs.
type mockFetcher struct {
	itinerary    func(ctx context.Context) ([]byte, error)
	checklist    func(ctx context.Context, id string) ([]byte, error)
	checklistRun func(ctx context.Context, id string) ([]byte, error)
	parkDetail   func(ctx context.Context, id string) ([]byte, error)
	members      func(ctx context.Context) ([]byte, error)
}

func (m *mockFetcher) FetchItinerary(ctx context.Context) ([]byte, error) {
	return m.itinerary(ctx)
}
func (m *mockFetcher) FetchChecklist(ctx context.Context, id string) ([]byte, error) {
	return m.checklist(ctx, id)
}
func (m *mockFetcher) FetchChecklistRun(ctx context.Context, id string) ([]byte, error) {
	return m.checklistRun(ctx, id)
}
func (m *mockFetcher) FetchParkDetail(ctx context.Context, id string) ([]byte, error) {
	return m.parkDetail(ctx, id)
}
func (m *mockFetcher) FetchMembers(ctx context.Context) ([]byte, error) {
	return m.members(ctx)
}

// compile-time checks: mockFetcher must satisfy every fetcher interface.
var (
	_ service.ItineraryFetcher = (*mockFetcher)(nil)
	_ service.ChecklistFetcher = (*mockFetcher)(nil)
	_ service.ParkFetcher      = (*mockFetcher)(nil)
)

// mockDiagnosticRepo records what was stored so tests can assert on it.
type mockDiagnosticRepo struct {
	recorded []domain.DecodeFailure
}

func (m *mockDiagnosticRepo) Record(_ context.Context, f domain.DecodeFailure) (domain.DecodeFailure, error) {
	m.recorded = append(m.recorded, f)
	return f, nil
}
func (m *mockDiagnosticRepo) List(context.Context, domain.PaginationParams) ([]domain.DecodeFailure, int64, error) {
	return nil, 0, nil
}
func (m *mockDiagnosticRepo) Prune(context.Context, time.Time) (int64, error) {
	return 0, nil
}

var _ repo.DiagnosticRepo = (*mockDiagnosticRepo)(nil)

func newRedisCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return cache.New(rdb, time.Minute)
}

const itineraryBody = `{"legs":[{
	"day_label": "Day 1",
	"date_range_description": "Jun 1",
	"start": {"name": "A", "latitude": 1, "longitude": 2},
	"end": {"name": "B", "latitude": 3, "longitude": 4},
	"distance_in_miles": 10,
	"estimated_drive_time": "20 min"
}]}`

func TestItineraryService_Get(t *testing.T) {
	fetcher := &mockFetcher{
		itinerary: func(context.Context) ([]byte, error) { return []byte(itineraryBody), nil },
	}
	svc := service.NewItineraryService(fetcher, nil, nil)

	it, err := svc.Get(context.Background())

	require.NoError(t, err)
	require.Len(t, it.Legs, 1)
	assert.Equal(t, "Day 1", it.Legs[0].DayLabel)
}

// A second Get must be served from cache without touching the upstream.
func TestItineraryService_Get_CacheHit(t *testing.T) {
	calls := 0
	fetcher := &mockFetcher{
		itinerary: func(context.Context) ([]byte, error) {
			calls++
			return []byte(itineraryBody), nil
		},
	}
	svc := service.NewItineraryService(fetcher, newRedisCache(t), nil)

	first, err := svc.Get(context.Background())
	require.NoError(t, err)
	second, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Legs, second.Legs)
}

func TestItineraryService_Get_UpstreamError(t *testing.T) {
	fetcher := &mockFetcher{
		itinerary: func(context.Context) ([]byte, error) { return nil, errors.New("connection refused") },
	}
	svc := service.NewItineraryService(fetcher, nil, nil)

	_, err := svc.Get(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "service.ItineraryService.Get")
}

// An unrecognized shape propagates as EnvelopeError and is recorded with the
// raw body for diagnostics.
func TestItineraryService_Get_RecordsEnvelopeFailure(t *testing.T) {
	const body = `{"unexpected":[]}`
	fetcher := &mockFetcher{
		itinerary: func(context.Context) ([]byte, error) { return []byte(body), nil },
	}
	diags := &mockDiagnosticRepo{}
	svc := service.NewItineraryService(fetcher, nil, diags)

	_, err := svc.Get(context.Background())

	var envErr *wire.EnvelopeError
	require.ErrorAs(t, err, &envErr)

	require.Len(t, diags.recorded, 1)
	assert.Equal(t, "itinerary", diags.recorded[0].Entity)
	assert.Equal(t, domain.ErrorKindEnvelopeNotFound, diags.recorded[0].ErrorKind)
	assert.Equal(t, body, diags.recorded[0].RawBody)
}

func TestItineraryService_Get_RecordsStructuralFailure(t *testing.T) {
	fetcher := &mockFetcher{
		itinerary: func(context.Context) ([]byte, error) {
			return []byte(`{"legs":[{"day_label":"Day 1"}]}`), nil
		},
	}
	diags := &mockDiagnosticRepo{}
	svc := service.NewItineraryService(fetcher, nil, diags)

	_, err := svc.Get(context.Background())

	var fieldErr *wire.FieldError
	require.ErrorAs(t, err, &fieldErr)

	require.Len(t, diags.recorded, 1)
	assert.Equal(t, domain.ErrorKindStructural, diags.recorded[0].ErrorKind)
}
