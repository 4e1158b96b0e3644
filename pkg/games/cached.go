package games

import (
	"context"
	"strings"
)

// MetadataCache stores past search results keyed by query string.
// internal/cache provides the SQLite implementation.
type MetadataCache interface {
	Get(ctx context.Context, query string) ([]Game, bool, error)
	Put(ctx context.Context, query string, games []Game) error
}

// Searcher is the lookup surface shared by Client and CachedClient.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Game, error)
	Lookup(ctx context.Context, title string) (*Game, error)
}

// CachedClient wraps a Searcher with a metadata cache. Autocomplete hits the
// database once per query per cache window instead of once per keystroke.
type CachedClient struct {
	inner Searcher
	cache MetadataCache
}

// NewCached wraps client with cache.
func NewCached(inner Searcher, cache MetadataCache) *CachedClient {
	return &CachedClient{inner: inner, cache: cache}
}

// Search serves from the cache when possible. Cache read and write failures
// degrade to a plain fetch rather than failing the search.
func (c *CachedClient) Search(ctx context.Context, query string) ([]Game, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	if cached, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	games, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	_ = c.cache.Put(ctx, key, games)
	return games, nil
}

// Lookup mirrors Client.Lookup on top of the cached search.
func (c *CachedClient) Lookup(ctx context.Context, title string) (*Game, error) {
	results, err := c.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	for i := range results {
		if strings.EqualFold(results[i].Name, title) {
			return &results[i], nil
		}
	}
	return &results[0], nil
}
