// Package storage persists digest runs into Postgres.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
)

// PostgresArchive records each published digest in the digest_runs table.
type PostgresArchive struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.DigestArchive = (*PostgresArchive)(nil)

// NewPostgresArchive wires a sql.DB implementation.
func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres with the given DSN and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SaveRun inserts one digest run snapshot.
func (a *PostgresArchive) SaveRun(ctx context.Context, digest domain.Digest, payload []byte) error {
	if a.db == nil {
		return nil
	}

	query, args, err := a.builder.
		Insert("digest_runs").
		Columns("id", "generated_at", "item_count", "payload").
		Values(uuid.NewString(), digest.GeneratedAt, digest.TotalItems(), payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert digest run: %w", err)
	}

	return nil
}
