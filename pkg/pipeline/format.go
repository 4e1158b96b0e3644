package pipeline

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"

	"github.com/masoumim/reddit-game-posts/pkg/reddit"
	"github.com/masoumim/reddit-game-posts/pkg/relevance"
)

// MediaType classifies a post's linked media.
type MediaType string

const (
	MediaImage   MediaType = "image"
	MediaVideo   MediaType = "video"
	MediaYouTube MediaType = "youtube"
	MediaTwitter MediaType = "twitter"
	MediaLink    MediaType = "link"
)

// mediaHosts maps a post's source host to its media type. Unlisted hosts are
// plain links.
var mediaHosts = map[string]MediaType{
	"youtu.be":           MediaYouTube,
	"youtube.com":        MediaYouTube,
	"twitter.com":        MediaTwitter,
	"mobile.twitter.com": MediaTwitter,
	"i.redd.it":          MediaImage,
	"i.reddit.com":       MediaImage,
	"i.imgur.com":        MediaImage,
	"v.redd.it":          MediaVideo,
}

// NoCommentsPlaceholder fills the top-comment text of posts that have no
// comments, so the caller never needs a null check.
const NoCommentsPlaceholder = "no comments"

// FormattedPost is the display-ready record handed to the caller. Immutable
// once built.
type FormattedPost struct {
	ID                     string    `json:"id"`
	Rank                   int       `json:"rank"`
	Title                  string    `json:"title"`
	Subreddit              string    `json:"subreddit"`
	Author                 string    `json:"author"`
	Upvotes                int       `json:"upvotes"`
	RelativeDate           string    `json:"relative_date"`
	Text                   string    `json:"text"`
	TopCommentText         string    `json:"top_comment_text"`
	TopCommentAuthor       string    `json:"top_comment_author"`
	TopCommentUpvotes      int       `json:"top_comment_upvotes"`
	TopCommentRelativeDate string    `json:"top_comment_relative_date"`
	MediaURL               string    `json:"media_url"`
	MediaType              MediaType `json:"media_type"`
	Archived               bool      `json:"archived"`
	Permalink              string    `json:"permalink"`
}

// FormatPost builds the display record for a scored post. The rank is the
// validity score. comment may be nil.
func FormatPost(sp relevance.ScoredPost, comment *reddit.Comment) FormattedPost {
	post := sp.Post
	mediaURL, mediaType := classifyMedia(post)

	fp := FormattedPost{
		ID:             post.ID,
		Rank:           sp.Score,
		Title:          post.Title,
		Subreddit:      post.Subreddit,
		Author:         post.Author,
		Upvotes:        post.Ups,
		RelativeDate:   relativeDate(post.CreatedUTC),
		Text:           postText(post),
		TopCommentText: NoCommentsPlaceholder,
		MediaURL:       mediaURL,
		MediaType:      mediaType,
		Archived:       post.Archived,
		Permalink:      post.Permalink,
	}

	if comment != nil {
		fp.TopCommentText = comment.Body
		fp.TopCommentAuthor = comment.Author
		fp.TopCommentUpvotes = comment.Ups
		fp.TopCommentRelativeDate = relativeDate(comment.CreatedUTC)
	}
	return fp
}

// classifyMedia picks the media URL and type from the post's source host.
// Reddit-hosted video needs the fallback URL because the post URL itself is
// not playable.
func classifyMedia(post reddit.Post) (string, MediaType) {
	mediaType, ok := mediaHosts[post.Domain]
	if !ok {
		return post.URL, MediaLink
	}
	if mediaType == MediaVideo && post.VideoURL != "" {
		return post.VideoURL, MediaVideo
	}
	return post.URL, mediaType
}

// postText returns the post body as plain text, preferring the HTML form
// when present since it survives Reddit's markdown rendering.
func postText(post reddit.Post) string {
	if post.SelfTextHTML == "" {
		return post.SelfText
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(post.SelfTextHTML))
	if err != nil {
		return post.SelfText
	}
	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return post.SelfText
	}
	return text
}

func relativeDate(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return humanize.Time(time.Unix(epoch, 0))
}
