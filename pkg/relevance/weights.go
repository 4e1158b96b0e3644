package relevance

import (
	"context"
	"strings"
)

// Definer reports whether a word has a dictionary definition. Words without
// one are likely distinctive proper nouns ("zelda") and carry double weight
// as a relevance signal.
type Definer interface {
	HasDefinition(ctx context.Context, word string) (bool, error)
}

// TitleWeights is how much evidence a title match is worth. Computed once
// per search and reused for every post in the batch.
type TitleWeights struct {
	Title   int
	Compact int
}

const (
	commonWordPoints = 1
	rareWordPoints   = 2
	numberingBonus   = 1
)

// DetermineTitleWeights scores the title's words by commonality. A failed
// dictionary lookup counts the word as rare rather than aborting the batch.
//
// The compact title only accumulates weight when it differs from the full
// title and is present in the corpus; otherwise a single-word title would be
// counted twice.
func DetermineTitleWeights(ctx context.Context, dict Definer, title NormalizedTitle, corpus *Corpus) TitleWeights {
	weighCompact := title.Lowercase != title.Compact && corpus.Contains(title.Compact)

	var w TitleWeights
	for _, word := range TitleWords(title.Lowercase) {
		points := rareWordPoints
		if dict != nil {
			if found, err := dict.HasDefinition(ctx, word); err == nil && found {
				points = commonWordPoints
			}
		}
		w.Title += points
		if weighCompact && strings.Contains(title.Compact, word) {
			w.Compact += points
		}
	}

	if title.HasNumbering {
		w.Title += numberingBonus
	}
	return w
}
