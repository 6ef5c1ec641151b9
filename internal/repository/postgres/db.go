package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"wanderlust/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

const uniqueViolation = "23505"

// schema is applied by Migrate. Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		username      TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL DEFAULT '',
		bio           TEXT NOT NULL DEFAULT '',
		avatar        TEXT NOT NULL DEFAULT '',
		followers     INTEGER NOT NULL DEFAULT 0,
		following     INTEGER NOT NULL DEFAULT 0,
		saved_trips   TEXT[] NOT NULL DEFAULT '{}',
		liked_trips   TEXT[] NOT NULL DEFAULT '{}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image       TEXT NOT NULL DEFAULT '',
		distance    DOUBLE PRECISION NOT NULL DEFAULT 0,
		duration    DOUBLE PRECISION NOT NULL DEFAULT 0,
		location    TEXT NOT NULL DEFAULT '',
		difficulty  TEXT NOT NULL DEFAULT 'Moderate',
		author_id   TEXT NOT NULL,
		stops       JSONB NOT NULL DEFAULT '[]',
		likes       TEXT[] NOT NULL DEFAULT '{}',
		share_count INTEGER NOT NULL DEFAULT 0 CHECK (share_count >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS trips_author_id_idx ON trips (author_id)`,
	`CREATE INDEX IF NOT EXISTS trips_created_at_idx ON trips (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL,
		user_id    TEXT,
		rating     DOUBLE PRECISION NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ratings_trip_id_idx ON ratings (trip_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		trip_id    TEXT NOT NULL,
		user_id    TEXT,
		comment    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS comments_trip_id_idx ON comments (trip_id)`,
}

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
