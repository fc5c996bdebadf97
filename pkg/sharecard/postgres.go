package sharecard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads share records directly from the share service's
// read replica. Use this when the web tier shares a network with the share
// database; otherwise prefer HTTPSource.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a Source over the given pool.
// The pool is owned by the caller; this source never writes.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Record selects one share record. IDs in the share database are UUIDs;
// a syntactically invalid ID maps to ErrNotFound without touching the
// database, since no record can exist behind it.
func (s *PostgresSource) Record(ctx context.Context, id string) (Record, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return Record{}, ErrNotFound
	}

	var (
		title     string
		caption   string
		createdAt time.Time
	)

	row := s.pool.QueryRow(ctx,
		`SELECT title, caption, created_at FROM share_cards WHERE id = $1`,
		recordID,
	)
	if err := row.Scan(&title, &caption, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	return Record{
		ID:        recordID.String(),
		Title:     title,
		Caption:   caption,
		CreatedAt: createdAt,
	}, nil
}
