// Package relevance decides which Reddit posts are plausibly about a given
// video game and how strongly, using deterministic text heuristics.
package relevance

import (
	"regexp"
	"strings"
	"unicode"
)

// romanNumerals covers numbered sequels from I through XX.
var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true,
	"vi": true, "vii": true, "viii": true, "ix": true, "x": true,
	"xi": true, "xii": true, "xiii": true, "xiv": true, "xv": true,
	"xvi": true, "xvii": true, "xviii": true, "xix": true, "xx": true,
}

// Some databases append the release year in parentheses, mainly for retro
// games ("Street Fighter II (1991)").
var yearSuffix = regexp.MustCompile(`\((\d{4})\)`)

var embeddedYear = regexp.MustCompile(`\d{4}`)

// NormalizedTitle is the canonical comparable form of a game title.
type NormalizedTitle struct {
	// Lowercase is the trimmed, lowercased title with any release-year
	// suffix removed.
	Lowercase string
	// Compact resembles a subreddit name: numbering, subtitle, punctuation
	// and whitespace stripped. "street fighter ii: the world warrior"
	// compacts to "streetfighter", matching r/streetfighter.
	Compact string
	// HasNumbering is true when the title contains a digit or ends in a
	// roman numeral.
	HasNumbering bool
	// ReleaseYear holds the extracted year suffix, or "".
	ReleaseYear string
}

// NormalizeTitle converts a free-text game title into its comparable forms.
// Empty input yields empty outputs.
func NormalizeTitle(raw string) NormalizedTitle {
	var year string
	title := raw
	if m := yearSuffix.FindStringSubmatch(title); m != nil {
		year = m[1]
		title = yearSuffix.ReplaceAllString(title, "")
	}

	lower := strings.ToLower(strings.TrimSpace(title))
	hasNumbering := strings.ContainsFunc(lower, unicode.IsDigit)

	compact := lower
	if i := strings.IndexFunc(compact, unicode.IsDigit); i >= 0 {
		compact = compact[:i]
	}
	if i := strings.IndexByte(compact, ':'); i >= 0 {
		compact = compact[:i]
	}
	compact = strings.NewReplacer("'", "", "(", "", ")", "").Replace(compact)

	fields := strings.Fields(compact)
	if n := len(fields); n > 0 && romanNumerals[fields[n-1]] {
		hasNumbering = true
		fields = fields[:n-1]
	}
	compact = strings.Join(fields, "")

	// All-digit titles like "1942" would otherwise compact to nothing.
	if compact == "" {
		compact = strings.Join(strings.Fields(lower), "")
	}

	return NormalizedTitle{
		Lowercase:    lower,
		Compact:      compact,
		HasNumbering: hasNumbering,
		ReleaseYear:  year,
	}
}

// TitleWords splits a normalized title into its constituent words, dropping
// embedded years, stray single-digit tokens, punctuation and roman numerals.
func TitleWords(lowercaseTitle string) []string {
	cleaned := embeddedYear.ReplaceAllString(lowercaseTitle, " ")
	cleaned = strings.NewReplacer(":", " ", "-", " ", ".", " ").Replace(cleaned)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if romanNumerals[w] {
			continue
		}
		if len(w) == 1 && unicode.IsDigit(rune(w[0])) {
			continue
		}
		words = append(words, w)
	}
	return words
}
