package games

import (
	"context"
	"errors"
	"testing"
)

type countingSearcher struct {
	results []Game
	err     error
	calls   int
}

func (s *countingSearcher) Search(ctx context.Context, query string) ([]Game, error) {
	s.calls++
	return s.results, s.err
}

func (s *countingSearcher) Lookup(ctx context.Context, title string) (*Game, error) {
	results, err := s.Search(ctx, title)
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return &results[0], nil
}

type mapCache struct {
	entries map[string][]Game
	getErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]Game)}
}

func (m *mapCache) Get(ctx context.Context, query string) ([]Game, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	games, ok := m.entries[query]
	return games, ok, nil
}

func (m *mapCache) Put(ctx context.Context, query string, games []Game) error {
	m.entries[query] = games
	return nil
}

func TestCachedSearchHitsUpstreamOnce(t *testing.T) {
	inner := &countingSearcher{results: []Game{{Name: "Doom"}}}
	c := NewCached(inner, newMapCache())

	for i := 0; i < 3; i++ {
		results, err := c.Search(context.Background(), "Doom")
		if err != nil {
			t.Fatalf("Search returned error: %v", err)
		}
		if len(results) != 1 || results[0].Name != "Doom" {
			t.Fatalf("results = %+v", results)
		}
	}

	if inner.calls != 1 {
		t.Errorf("upstream called %d times, want 1", inner.calls)
	}
}

func TestCachedSearchNormalizesKey(t *testing.T) {
	inner := &countingSearcher{results: []Game{{Name: "Doom"}}}
	c := NewCached(inner, newMapCache())

	for _, q := range []string{"Doom", "doom", "  DOOM "} {
		if _, err := c.Search(context.Background(), q); err != nil {
			t.Fatalf("Search(%q) returned error: %v", q, err)
		}
	}

	if inner.calls != 1 {
		t.Errorf("upstream called %d times, want 1: keys should be case-folded", inner.calls)
	}
}

func TestCachedSearchCacheFailureDegradesToFetch(t *testing.T) {
	inner := &countingSearcher{results: []Game{{Name: "Doom"}}}
	cache := newMapCache()
	cache.getErr = errors.New("disk trouble")
	c := NewCached(inner, cache)

	results, err := c.Search(context.Background(), "Doom")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %+v", results)
	}
	if inner.calls != 1 {
		t.Errorf("upstream called %d times, want 1", inner.calls)
	}
}

func TestCachedLookup(t *testing.T) {
	inner := &countingSearcher{results: []Game{
		{Name: "Street Fighter II Turbo"},
		{Name: "Street Fighter II"},
	}}
	c := NewCached(inner, newMapCache())

	game, err := c.Lookup(context.Background(), "street fighter ii")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if game == nil || game.Name != "Street Fighter II" {
		t.Errorf("game = %+v, want the exact match", game)
	}
}
