package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS transcript_exports (
	id         BIGSERIAL PRIMARY KEY,
	video_id   TEXT NOT NULL,
	title      TEXT NOT NULL,
	language   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	path       TEXT NOT NULL,
	segments   INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres stores exports in a shared database.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pgx pool and ensures the exports table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Record inserts one export.
func (p *Postgres) Record(ctx context.Context, e Export) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO transcript_exports (video_id, title, language, kind, path, segments, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.VideoID, e.Title, e.Language, e.Kind, e.Path, e.Segments, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// List returns the most recent exports first.
func (p *Postgres) List(ctx context.Context, limit int) ([]Export, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, video_id, title, language, kind, path, segments, created_at
		 FROM transcript_exports ORDER BY id DESC LIMIT $1`,
		normLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Export, error) {
		var e Export
		err := row.Scan(&e.ID, &e.VideoID, &e.Title, &e.Language, &e.Kind, &e.Path, &e.Segments, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("history: scan: %w", err)
	}
	return out, nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
