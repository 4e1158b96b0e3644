package relevance

import "strings"

// GameTerms is the generic gaming vocabulary every corpus starts from.
var GameTerms = []string{
	"game", "gaming", "videogame", "video game", "sega", "nintendo",
	"xbox", "playstation", "console", "controller", "backlog", "steam",
	"playtime", "nostalgia",
}

// Corpus is a deduplicated, case-normalized term set. Iteration order is
// insertion order so weight accumulation stays reproducible.
type Corpus struct {
	terms []string
	seen  map[string]struct{}
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{seen: make(map[string]struct{})}
}

// Add lowercases and inserts a term. Duplicates and empty strings are
// ignored.
func (c *Corpus) Add(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return
	}
	if _, ok := c.seen[term]; ok {
		return
	}
	c.seen[term] = struct{}{}
	c.terms = append(c.terms, term)
}

// Contains reports set membership. Terms are pre-lowercased on insertion so
// no case folding happens here.
func (c *Corpus) Contains(term string) bool {
	_, ok := c.seen[strings.ToLower(term)]
	return ok
}

// Terms returns the terms in insertion order.
func (c *Corpus) Terms() []string {
	return c.terms
}

// Len returns the number of distinct terms.
func (c *Corpus) Len() int {
	return len(c.terms)
}

// BuildCorpus merges the generic vocabulary with game tags, platform names
// and their aliases, both title forms, and the release year if present.
func BuildCorpus(title NormalizedTitle, tags, platforms []string) *Corpus {
	c := NewCorpus()
	for _, t := range GameTerms {
		c.Add(t)
	}
	for _, t := range tags {
		c.Add(t)
	}
	for _, p := range platforms {
		c.Add(p)
		for _, alias := range PlatformAliases(p) {
			c.Add(alias)
		}
	}
	c.Add(title.Lowercase)
	c.Add(title.Compact)
	if title.ReleaseYear != "" {
		c.Add(title.ReleaseYear)
	}
	return c
}
