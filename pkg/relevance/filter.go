package relevance

import (
	"strings"

	"github.com/masoumim/reddit-game-posts/pkg/reddit"
)

// blockedCommunities are marketplace, piracy and deal subreddits whose posts
// are never discussion of the game itself.
var blockedCommunities = []string{
	"gamecollecting", "gameswap", "gamesale", "emulation",
	"vitahacks", "vitapiracy", "greatxboxdeals",
}

// FilterPosts drops posts from blocked communities. The comparison is
// case-insensitive. Extra community names extend the built-in denylist.
func FilterPosts(posts []reddit.Post, extra []string) []reddit.Post {
	blocked := make(map[string]bool, len(blockedCommunities)+len(extra))
	for _, name := range blockedCommunities {
		blocked[name] = true
	}
	for _, name := range extra {
		blocked[strings.ToLower(name)] = true
	}

	kept := make([]reddit.Post, 0, len(posts))
	for _, post := range posts {
		if blocked[strings.ToLower(post.Subreddit)] {
			continue
		}
		kept = append(kept, post)
	}
	return kept
}
