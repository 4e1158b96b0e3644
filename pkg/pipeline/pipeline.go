// Package pipeline turns a game search into ranked, display-ready Reddit
// posts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/masoumim/reddit-game-posts/pkg/games"
	"github.com/masoumim/reddit-game-posts/pkg/reddit"
	"github.com/masoumim/reddit-game-posts/pkg/relevance"
)

// ErrGameNotFound is returned when the game database has no entry for the
// searched title.
var ErrGameNotFound = errors.New("game not found")

// GameDB looks up game metadata.
type GameDB interface {
	Lookup(ctx context.Context, title string) (*games.Game, error)
}

// SearchSource returns candidate posts for a query.
type SearchSource interface {
	SearchPosts(ctx context.Context, q reddit.SearchQuery) ([]reddit.Post, error)
}

// CommentSource fetches the top comment of a post. A nil comment with a nil
// error means the post has no comments.
type CommentSource interface {
	TopComment(ctx context.Context, subreddit, postID string) (*reddit.Comment, error)
}

// Query is one search as submitted by the user.
type Query struct {
	Title        string
	Platform     string
	MatchExactly bool
}

// Options tune a Pipeline.
type Options struct {
	// Threshold overrides the acceptance score. Zero keeps the default of
	// the active scoring mode.
	Threshold int
	// UsePlatformScoring switches to the bounded 0-5 platform-alias mode
	// for queries that carry a platform.
	UsePlatformScoring bool
	// BlockedCommunities extends the built-in denylist.
	BlockedCommunities []string
	// MaxConcurrentComments bounds the comment-fetch fan-out. Zero means 10.
	MaxConcurrentComments int
}

// Pipeline sequences normalization, corpus building, weighting, search,
// filtering, scoring, comment enrichment and formatting. It holds no mutable
// state across runs, so concurrent searches are safe.
type Pipeline struct {
	games    GameDB
	search   SearchSource
	comments CommentSource
	dict     relevance.Definer
	log      *slog.Logger
	opts     Options
}

// New creates a Pipeline. comments may be nil, in which case every post
// carries the no-comments placeholder. dict may be nil, in which case every
// title word counts as rare.
func New(gameDB GameDB, search SearchSource, comments CommentSource, dict relevance.Definer, log *slog.Logger, opts Options) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if opts.MaxConcurrentComments <= 0 {
		opts.MaxConcurrentComments = 10
	}
	return &Pipeline{
		games:    gameDB,
		search:   search,
		comments: comments,
		dict:     dict,
		log:      log,
		opts:     opts,
	}
}

// Run executes one search end to end and returns posts sorted by rank
// descending, ties in fetch order. An empty result after a well-formed
// search is a normal outcome, not an error.
func (p *Pipeline) Run(ctx context.Context, q Query) ([]FormattedPost, error) {
	game, err := p.games.Lookup(ctx, q.Title)
	if err != nil {
		return nil, fmt.Errorf("lookup game %q: %w", q.Title, err)
	}
	if game == nil {
		return nil, fmt.Errorf("lookup game %q: %w", q.Title, ErrGameNotFound)
	}

	title := relevance.NormalizeTitle(game.Name)
	corpus := relevance.BuildCorpus(title, game.Tags, game.Platforms)

	// Weights are computed exactly once per query, before any post is
	// scored, and shared read-only across the batch.
	weights := relevance.DetermineTitleWeights(ctx, p.dict, title, corpus)

	posts, err := p.search.SearchPosts(ctx, reddit.SearchQuery{
		Title:        title.Lowercase,
		Platform:     q.Platform,
		MatchExactly: q.MatchExactly,
	})
	if err != nil {
		return nil, fmt.Errorf("search posts for %q: %w", q.Title, err)
	}

	posts = relevance.FilterPosts(posts, p.opts.BlockedCommunities)

	var accepted []relevance.ScoredPost
	if p.opts.UsePlatformScoring && q.Platform != "" {
		accepted = relevance.ScorePostsByPlatform(posts, title, q.Platform, p.threshold(relevance.PlatformThreshold))
	} else {
		accepted = relevance.ScorePosts(posts, corpus, weights, title, p.threshold(relevance.DefaultThreshold))
	}

	p.log.Info("scored posts",
		"game", game.Name,
		"candidates", len(posts),
		"accepted", len(accepted))

	comments := p.fetchTopComments(ctx, accepted)

	formatted := make([]FormattedPost, len(accepted))
	for i, sp := range accepted {
		formatted[i] = FormatPost(sp, comments[i])
	}

	sort.SliceStable(formatted, func(i, j int) bool {
		return formatted[i].Rank > formatted[j].Rank
	})
	return formatted, nil
}

func (p *Pipeline) threshold(def int) int {
	if p.opts.Threshold > 0 {
		return p.opts.Threshold
	}
	return def
}

// fetchTopComments dispatches one fetch per accepted post concurrently,
// bounded by a semaphore, and joins them. A failed fetch leaves a nil
// comment for that post rather than dropping it.
func (p *Pipeline) fetchTopComments(ctx context.Context, accepted []relevance.ScoredPost) []*reddit.Comment {
	comments := make([]*reddit.Comment, len(accepted))
	if p.comments == nil {
		return comments
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.opts.MaxConcurrentComments)

	for i, sp := range accepted {
		wg.Add(1)
		go func(i int, post reddit.Post) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			comment, err := p.comments.TopComment(ctx, post.Subreddit, post.ID)
			if err != nil {
				p.log.Warn("top comment fetch failed",
					"post", post.ID, "subreddit", post.Subreddit, "error", err)
				return
			}
			comments[i] = comment
		}(i, sp.Post)
	}

	wg.Wait()
	return comments
}
