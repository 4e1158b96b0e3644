// Package cache persists game-metadata lookups in SQLite so autocomplete
// does not hit the game database once per keystroke.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/masoumim/reddit-game-posts/pkg/games"
)

// Cache is a SQLite-backed store of past game searches.
type Cache struct {
	db  *sqlx.DB
	ttl time.Duration
}

type row struct {
	Query     string    `db:"query"`
	Results   string    `db:"results"`
	FetchedAt time.Time `db:"fetched_at"`
}

// New opens the cache database and runs migrations. A zero TTL keeps
// entries for 24 hours.
func New(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached results for a query. The second return value is
// false when the query is absent or its entry has expired.
func (c *Cache) Get(ctx context.Context, query string) ([]games.Game, bool, error) {
	var r row
	err := c.db.GetContext(ctx, &r,
		`SELECT query, results, fetched_at FROM game_lookups WHERE query = ?`, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached lookup %q: %w", query, err)
	}

	if time.Since(r.FetchedAt) > c.ttl {
		return nil, false, nil
	}

	var results []games.Game
	if err := json.Unmarshal([]byte(r.Results), &results); err != nil {
		return nil, false, fmt.Errorf("decode cached results for %q: %w", query, err)
	}
	return results, true, nil
}

// Put stores the results for a query, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, query string, results []games.Game) error {
	encoded, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results for %q: %w", query, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO game_lookups (query, results, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			results = excluded.results,
			fetched_at = excluded.fetched_at
	`, query, string(encoded), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store lookup %q: %w", query, err)
	}
	return nil
}

// Prune removes expired entries.
func (c *Cache) Prune(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-c.ttl)
	if _, err := c.db.ExecContext(ctx,
		`DELETE FROM game_lookups WHERE fetched_at < ?`, cutoff); err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	return nil
}
