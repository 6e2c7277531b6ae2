// Package history records every transcript file written, so earlier exports
// can be listed later. Recording is opt-in: HISTORY_DB names a local SQLite
// file, DATABASE_URL a shared Postgres database.
package history

import (
	"context"
	"time"
)

// Export is one written transcript file.
type Export struct {
	ID        int64     `json:"id"`
	VideoID   string    `json:"video_id"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	Segments  int       `json:"segments"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists exports.
type Store interface {
	Record(ctx context.Context, e Export) error
	List(ctx context.Context, limit int) ([]Export, error)
	Close() error
}

// DefaultLimit caps List when the caller passes no limit.
const DefaultLimit = 50

// Open picks the backend: Postgres when databaseURL is set, else SQLite at
// sqlitePath, else a store that records nothing.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	switch {
	case databaseURL != "":
		pg, err := OpenPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case sqlitePath != "":
		lite, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return Nop{}, nil
	}
}

// Nop discards exports.
type Nop struct{}

func (Nop) Record(context.Context, Export) error        { return nil }
func (Nop) List(context.Context, int) ([]Export, error) { return nil, nil }
func (Nop) Close() error                                { return nil }

func normLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return DefaultLimit
	}
	return limit
}
