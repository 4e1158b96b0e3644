package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultFeedURL = "https://www.reddit.com"

// FeedSearch queries Reddit's public search feed. It needs no OAuth
// credentials, which makes it a fallback when the app is not registered,
// at the cost of missing vote counts and body text.
type FeedSearch struct {
	client    *http.Client
	parser    *gofeed.Parser
	baseURL   string
	userAgent string
}

// NewFeedSearch creates an unauthenticated search source.
func NewFeedSearch(userAgent string) *FeedSearch {
	if userAgent == "" {
		userAgent = "reddit-game-posts/1.0"
	}
	return &FeedSearch{
		client:    &http.Client{Timeout: 30 * time.Second},
		parser:    gofeed.NewParser(),
		baseURL:   defaultFeedURL,
		userAgent: userAgent,
	}
}

// SearchPosts implements the same contract as Client.SearchPosts over the
// public RSS search feed.
func (f *FeedSearch) SearchPosts(ctx context.Context, q SearchQuery) ([]Post, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	title := q.Title
	if q.MatchExactly {
		title = `"` + title + `"`
	}
	terms := title
	if q.Platform != "" {
		terms += " " + q.Platform
	}

	params := url.Values{
		"q":     {terms},
		"limit": {fmt.Sprintf("%d", limit)},
	}
	reqURL := f.baseURL + "/search.rss?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search feed status %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search feed: %w", err)
	}

	var posts []Post
	for _, entry := range feed.Items {
		post := Post{
			ID:           feedEntryID(entry.Link),
			Title:        entry.Title,
			Subreddit:    subredditFromLink(entry.Link),
			SelfTextHTML: entry.Content,
			URL:          entry.Link,
			Permalink:    entry.Link,
		}
		if entry.Author != nil {
			post.Author = strings.TrimPrefix(entry.Author.Name, "/u/")
		}
		if entry.PublishedParsed != nil {
			post.CreatedUTC = entry.PublishedParsed.Unix()
		}
		if u, err := url.Parse(entry.Link); err == nil {
			post.Domain = u.Host
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// subredditFromLink extracts the community name from a permalink of the form
// https://www.reddit.com/r/<subreddit>/comments/<id>/<slug>/.
func subredditFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "r" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func feedEntryID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "comments" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return link
}
