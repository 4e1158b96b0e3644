package relevance

import (
	"strings"

	"github.com/masoumim/reddit-game-posts/pkg/reddit"
)

// DefaultThreshold is the validity score at which a post is accepted under
// term scoring.
const DefaultThreshold = 4

// PlatformThreshold is the acceptance score for the bounded platform-alias
// mode, whose scores range 0-5.
const PlatformThreshold = 3

// ScoredPost pairs a candidate post with its validity score.
type ScoredPost struct {
	Post  reddit.Post
	Score int
}

// ScorePost computes how likely a post is to be about the game. Every corpus
// term is checked for case-insensitive containment in the post title, the
// community name and the body text independently.
//
// A term matching the full game title contributes the title weight, at most
// once across title and body. A term matching the compact title contributes
// the compact weight when found in the community name. Any other match
// contributes one point per field.
func ScorePost(post reddit.Post, corpus *Corpus, weights TitleWeights, title NormalizedTitle) int {
	postTitle := strings.ToLower(post.Title)
	community := strings.ToLower(post.Subreddit)
	body := strings.ToLower(post.SelfText)

	score := 0
	titleWeightAdded := false

	for _, term := range corpus.Terms() {
		if strings.Contains(postTitle, term) {
			switch {
			case term == title.Lowercase && weights.Title > 0:
				if !titleWeightAdded {
					score += weights.Title
					titleWeightAdded = true
				}
			default:
				score++
			}
		}

		if strings.Contains(community, term) {
			switch {
			case term == title.Compact && weights.Compact > 0:
				score += weights.Compact
			default:
				score++
			}
		}

		if body != "" && strings.Contains(body, term) {
			switch {
			case term == title.Lowercase && weights.Title > 0:
				if !titleWeightAdded {
					score += weights.Title
					titleWeightAdded = true
				}
			default:
				score++
			}
		}
	}

	return score
}

// PlatformScore is the bounded 0-5 scoring mode used when a selected
// platform replaces generic term matching. Each condition is checked
// independently; the community-name conditions are mutually exclusive.
func PlatformScore(post reddit.Post, title NormalizedTitle, platform string) int {
	words := TitleWords(title.Lowercase)
	postTitle := strings.ToLower(post.Title)
	community := strings.ToLower(post.Subreddit)
	body := strings.ToLower(post.SelfText)

	score := 0
	if containsMostWords(postTitle, words) {
		score++
	}
	if containsPlatformAlias(postTitle, platform) {
		score++
	}

	switch {
	case containsPlatformAlias(community, platform):
		score++
	case community == title.Compact:
		score++
	case containsAnyWord(community, words):
		score++
	case isGamingCommunity(community):
		score++
	}

	if body != "" {
		if containsMostWords(body, words) {
			score++
		}
		if containsPlatformAlias(body, platform) {
			score++
		}
	}

	return score
}

// ScorePosts scores every post with the same precomputed weights and keeps
// those at or above the threshold, in input order.
func ScorePosts(posts []reddit.Post, corpus *Corpus, weights TitleWeights, title NormalizedTitle, threshold int) []ScoredPost {
	var accepted []ScoredPost
	for _, post := range posts {
		if score := ScorePost(post, corpus, weights, title); score >= threshold {
			accepted = append(accepted, ScoredPost{Post: post, Score: score})
		}
	}
	return accepted
}

// ScorePostsByPlatform is the platform-alias counterpart of ScorePosts.
func ScorePostsByPlatform(posts []reddit.Post, title NormalizedTitle, platform string, threshold int) []ScoredPost {
	var accepted []ScoredPost
	for _, post := range posts {
		if score := PlatformScore(post, title, platform); score >= threshold {
			accepted = append(accepted, ScoredPost{Post: post, Score: score})
		}
	}
	return accepted
}

// containsMostWords reports whether at least three quarters of the title's
// words appear in text.
func containsMostWords(text string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	found := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			found++
		}
	}
	return float64(found) >= 0.75*float64(len(words))
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
