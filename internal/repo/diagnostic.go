// Package repo contains all database access logic for the RV Companion API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/rv-companion/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, and unit
// tests to pass a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DiagnosticRepo defines the persistence operations for decode-failure
// records. The service layer depends on this interface, not the concrete
// Postgres implementation.
type DiagnosticRepo interface {
	// Record inserts a decode failure and returns the persisted record (with
	// DB-generated id and created_at populated).
	Record(ctx context.Context, failure domain.DecodeFailure) (domain.DecodeFailure, error)

	// List returns a page of decode failures ordered newest-first, plus the
	// total count across all pages.
	List(ctx context.Context, params domain.PaginationParams) ([]domain.DecodeFailure, int64, error)

	// Prune deletes failures recorded before cutoff and reports how many
	// rows were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// pgDiagnosticRepo is the Postgres implementation of DiagnosticRepo.
type pgDiagnosticRepo struct {
	db db
}

// NewDiagnosticRepo constructs a DiagnosticRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a
// pgxmock pool.
func NewDiagnosticRepo(db db) DiagnosticRepo {
	return &pgDiagnosticRepo{db: db}
}

// Record inserts a new decode-failure row and returns the persisted record.
func (r *pgDiagnosticRepo) Record(ctx context.Context, failure domain.DecodeFailure) (domain.DecodeFailure, error) {
	const q = `
		INSERT INTO decode_failures (entity, error_kind, message, raw_body)
		VALUES (@entity, @error_kind, @message, @raw_body)
		RETURNING id, entity, error_kind, message, raw_body, created_at`

	args := pgx.NamedArgs{
		"entity":     failure.Entity,
		"error_kind": failure.ErrorKind,
		"message":    failure.Message,
		"raw_body":   failure.RawBody,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDecodeFailure(row)
	if err != nil {
		return domain.DecodeFailure{}, fmt.Errorf("repo.DiagnosticRepo.Record: %w", err)
	}
	return result, nil
}

// List returns a page of decode failures, newest first.
func (r *pgDiagnosticRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.DecodeFailure, int64, error) {
	const countQ = `SELECT count(*) FROM decode_failures`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DiagnosticRepo.List: count: %w", err)
	}

	const q = `
		SELECT id, entity, error_kind, message, raw_body, created_at
		FROM decode_failures
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DiagnosticRepo.List: %w", err)
	}
	defer rows.Close()

	var failures []domain.DecodeFailure
	for rows.Next() {
		f, err := scanDecodeFailure(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.DiagnosticRepo.List: scan: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.DiagnosticRepo.List: rows: %w", err)
	}

	return failures, total, nil
}

// Prune deletes failures recorded before cutoff.
func (r *pgDiagnosticRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM decode_failures WHERE created_at < @cutoff`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"cutoff": cutoff})
	if err != nil {
		return 0, fmt.Errorf("repo.DiagnosticRepo.Prune: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing
// scanDecodeFailure to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanDecodeFailure maps a single database row into a domain.DecodeFailure.
func scanDecodeFailure(s scanner) (domain.DecodeFailure, error) {
	var (
		f  domain.DecodeFailure
		id pgtype.UUID
	)

	err := s.Scan(&id, &f.Entity, &f.ErrorKind, &f.Message, &f.RawBody, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DecodeFailure{}, domain.ErrNotFound
		}
		return domain.DecodeFailure{}, err
	}

	f.ID = uuid.UUID(id.Bytes)
	return f, nil
}
