package relevance

import (
	"context"
	"errors"
	"testing"
)

// fakeDictionary marks the listed words as having definitions. Words in
// failWords return an error instead.
type fakeDictionary struct {
	known     map[string]bool
	failWords map[string]bool
	lookups   int
}

func (d *fakeDictionary) HasDefinition(ctx context.Context, word string) (bool, error) {
	d.lookups++
	if d.failWords[word] {
		return false, errors.New("lookup failed")
	}
	return d.known[word], nil
}

func fixtureCorpus() *Corpus {
	c := NewCorpus()
	for _, term := range []string{
		"game", "gaming", "videogame", "video game", "sega", "nintendo",
		"xbox", "playstation", "console", "controller", "backlog", "steam",
		"playtime", "nostalgia", "singleplayer", "2 players", "pc",
		"playstation 3", "wii u", "wii", "game boy", "snes",
		"commodore / amiga", "atari st", "genesis", "3do",
		"street fighter ii: the world warrior", "streetfighter", "1991",
	} {
		c.Add(term)
	}
	return c
}

func TestDetermineTitleWeightsStreetFighter(t *testing.T) {
	dict := &fakeDictionary{known: map[string]bool{
		"street": true, "fighter": true, "the": true, "world": true, "warrior": true,
	}}
	title := NormalizeTitle("street fighter ii: the world warrior")

	got := DetermineTitleWeights(context.Background(), dict, title, fixtureCorpus())

	// Five common words plus the numbering bonus; "street" and "fighter"
	// are the only words contained in "streetfighter".
	if got.Title != 6 {
		t.Errorf("Title weight = %d, want 6", got.Title)
	}
	if got.Compact != 2 {
		t.Errorf("Compact weight = %d, want 2", got.Compact)
	}
}

func TestDetermineTitleWeightsRareWords(t *testing.T) {
	dict := &fakeDictionary{known: map[string]bool{"the": true, "of": true, "legend": true, "time": true, "ocarina": true}}
	title := NormalizeTitle("The Legend of Zelda: Ocarina of Time")

	c := NewCorpus()
	c.Add(title.Lowercase)
	c.Add(title.Compact)

	got := DetermineTitleWeights(context.Background(), dict, title, c)

	// the(1) legend(1) of(1) zelda(2) ocarina(1) of(1) time(1) = 8, no numbering.
	if got.Title != 8 {
		t.Errorf("Title weight = %d, want 8", got.Title)
	}
}

func TestDetermineTitleWeightsSingleWordNoDoubleCount(t *testing.T) {
	dict := &fakeDictionary{known: map[string]bool{"doom": true}}
	title := NormalizeTitle("Doom")

	c := NewCorpus()
	c.Add(title.Lowercase)
	c.Add(title.Compact)

	got := DetermineTitleWeights(context.Background(), dict, title, c)
	if got.Title != 1 {
		t.Errorf("Title weight = %d, want 1", got.Title)
	}
	if got.Compact != 0 {
		t.Errorf("Compact weight = %d, want 0: identical forms must not be double-weighted", got.Compact)
	}
}

func TestDetermineTitleWeightsLookupFailureCountsAsRare(t *testing.T) {
	dict := &fakeDictionary{
		known:     map[string]bool{"spot": true},
		failWords: map[string]bool{"cool": true},
	}
	title := NormalizeTitle("Cool Spot")

	c := NewCorpus()
	c.Add(title.Lowercase)
	c.Add(title.Compact)

	got := DetermineTitleWeights(context.Background(), dict, title, c)

	// cool fails (2) + spot found (1); no numbering.
	if got.Title != 3 {
		t.Errorf("Title weight = %d, want 3", got.Title)
	}
}

func TestDetermineTitleWeightsNilDictionary(t *testing.T) {
	title := NormalizeTitle("Cool Spot")

	c := NewCorpus()
	c.Add(title.Lowercase)
	c.Add(title.Compact)

	got := DetermineTitleWeights(context.Background(), nil, title, c)
	if got.Title != 4 {
		t.Errorf("Title weight = %d, want 4: every word rare without a dictionary", got.Title)
	}
}
