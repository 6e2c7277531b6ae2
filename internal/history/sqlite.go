package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite stores exports in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the history database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("history: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS exports (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		language   TEXT NOT NULL,
		kind       TEXT NOT NULL,
		path       TEXT NOT NULL,
		segments   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record inserts one export.
func (s *SQLite) Record(ctx context.Context, e Export) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (video_id, title, language, kind, path, segments, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.VideoID, e.Title, e.Language, e.Kind, e.Path, e.Segments,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: insert: %w", err)
	}
	return nil
}

// List returns the most recent exports first.
func (s *SQLite) List(ctx context.Context, limit int) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, title, language, kind, path, segments, created_at
		 FROM exports ORDER BY id DESC LIMIT ?`,
		normLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var e Export
		var created string
		if err := rows.Scan(&e.ID, &e.VideoID, &e.Title, &e.Language, &e.Kind,
			&e.Path, &e.Segments, &created); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
