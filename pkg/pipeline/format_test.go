package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/masoumim/reddit-game-posts/pkg/reddit"
	"github.com/masoumim/reddit-game-posts/pkg/relevance"
)

func TestClassifyMedia(t *testing.T) {
	cases := []struct {
		name     string
		post     reddit.Post
		wantURL  string
		wantType MediaType
	}{
		{
			name:     "youtube short link",
			post:     reddit.Post{Domain: "youtu.be", URL: "https://youtu.be/abc"},
			wantURL:  "https://youtu.be/abc",
			wantType: MediaYouTube,
		},
		{
			name:     "twitter",
			post:     reddit.Post{Domain: "mobile.twitter.com", URL: "https://mobile.twitter.com/x"},
			wantURL:  "https://mobile.twitter.com/x",
			wantType: MediaTwitter,
		},
		{
			name:     "imgur image",
			post:     reddit.Post{Domain: "i.imgur.com", URL: "https://i.imgur.com/a.png"},
			wantURL:  "https://i.imgur.com/a.png",
			wantType: MediaImage,
		},
		{
			name: "reddit hosted video uses fallback URL",
			post: reddit.Post{
				Domain:   "v.redd.it",
				URL:      "https://v.redd.it/xyz",
				VideoURL: "https://v.redd.it/xyz/DASH_720.mp4",
			},
			wantURL:  "https://v.redd.it/xyz/DASH_720.mp4",
			wantType: MediaVideo,
		},
		{
			name:     "unknown host is a plain link",
			post:     reddit.Post{Domain: "example.com", URL: "https://example.com/article"},
			wantURL:  "https://example.com/article",
			wantType: MediaLink,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url, mediaType := classifyMedia(tc.post)
			if url != tc.wantURL {
				t.Errorf("url = %q, want %q", url, tc.wantURL)
			}
			if mediaType != tc.wantType {
				t.Errorf("mediaType = %q, want %q", mediaType, tc.wantType)
			}
		})
	}
}

func TestFormatPostWithComment(t *testing.T) {
	now := time.Now().Add(-2 * time.Hour).Unix()
	sp := relevance.ScoredPost{
		Post: reddit.Post{
			ID:         "abc",
			Title:      "Chrono Trigger appreciation",
			Subreddit:  "jrpg",
			SelfText:   "best rpg ever made",
			Author:     "poster",
			Ups:        42,
			CreatedUTC: now,
			Domain:     "self.jrpg",
			Permalink:  "/r/jrpg/comments/abc",
			Archived:   true,
		},
		Score: 7,
	}
	comment := &reddit.Comment{
		Author:     "commenter",
		Body:       "agreed",
		Ups:        9,
		CreatedUTC: now,
	}

	got := FormatPost(sp, comment)

	if got.Rank != 7 {
		t.Errorf("Rank = %d, want 7", got.Rank)
	}
	if got.Text != "best rpg ever made" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.TopCommentText != "agreed" || got.TopCommentAuthor != "commenter" || got.TopCommentUpvotes != 9 {
		t.Errorf("comment fields = %q/%q/%d", got.TopCommentText, got.TopCommentAuthor, got.TopCommentUpvotes)
	}
	if got.RelativeDate == "" || got.TopCommentRelativeDate == "" {
		t.Error("relative dates should be set")
	}
	if !got.Archived {
		t.Error("Archived flag lost")
	}
}

func TestFormatPostNoComment(t *testing.T) {
	sp := relevance.ScoredPost{Post: reddit.Post{ID: "abc"}, Score: 4}

	got := FormatPost(sp, nil)
	if got.TopCommentText != NoCommentsPlaceholder {
		t.Errorf("TopCommentText = %q, want %q", got.TopCommentText, NoCommentsPlaceholder)
	}
	if got.TopCommentAuthor != "" || got.TopCommentUpvotes != 0 {
		t.Error("comment fields should be zero without a comment")
	}
	if got.RelativeDate != "" {
		t.Errorf("RelativeDate = %q, want empty for zero timestamp", got.RelativeDate)
	}
}

func TestPostTextPrefersHTML(t *testing.T) {
	post := reddit.Post{
		SelfText:     "raw *markdown* body",
		SelfTextHTML: "<div><p>rendered <strong>body</strong> text</p></div>",
	}

	got := postText(post)
	if !strings.Contains(got, "rendered body text") {
		t.Errorf("postText = %q, want plain text from HTML", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("postText = %q still contains markup", got)
	}
}

func TestPostTextFallsBackToRaw(t *testing.T) {
	post := reddit.Post{SelfText: "plain body"}
	if got := postText(post); got != "plain body" {
		t.Errorf("postText = %q, want %q", got, "plain body")
	}
}
