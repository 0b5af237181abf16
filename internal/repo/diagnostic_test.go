package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/repo"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

var failureColumns = []string{"id", "entity", "error_kind", "message", "raw_body", "created_at"}

func TestDiagnosticRepo_Record(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO decode_failures`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(failureColumns).
			AddRow(pgUUID(id), "itinerary", domain.ErrorKindEnvelopeNotFound, "unable to locate itinerary legs in response", `{"odd":true}`, now))

	r := repo.NewDiagnosticRepo(mock)
	got, err := r.Record(context.Background(), domain.DecodeFailure{
		Entity:    "itinerary",
		ErrorKind: domain.ErrorKindEnvelopeNotFound,
		Message:   "unable to locate itinerary legs in response",
		RawBody:   `{"odd":true}`,
	})

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "itinerary", got.Entity)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepo_List(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT count\(\*\) FROM decode_failures`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT id, entity, error_kind, message, raw_body, created_at`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(failureColumns).
			AddRow(pgUUID(uuid.New()), "checklist", domain.ErrorKindStructural, `decode checklist: field "title": required field missing`, `{}`, now).
			AddRow(pgUUID(uuid.New()), "itinerary", domain.ErrorKindEnvelopeNotFound, "unable to locate itinerary legs in response", `{"x":1}`, now.Add(-time.Hour)))

	r := repo.NewDiagnosticRepo(mock)
	failures, total, err := r.List(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, failures, 2)
	assert.Equal(t, "checklist", failures[0].Entity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepo_Prune(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec(`DELETE FROM decode_failures`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	r := repo.NewDiagnosticRepo(mock)
	removed, err := r.Prune(context.Background(), time.Now().Add(-30*24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(5), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDiagnosticRepo_QueryError(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM decode_failures`).
		WillReturnError(assert.AnError)

	r := repo.NewDiagnosticRepo(mock)
	_, _, err := r.List(context.Background(), domain.NewPaginationParams(nil, nil))

	require.Error(t, err)
	assert.ErrorContains(t, err, "repo.DiagnosticRepo.List")
}
