package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL   = "https://oauth.reddit.com"
	defaultAuthURL  = "https://www.reddit.com/api/v1/authorize"
)

// Client talks to the Reddit API. The zero credential pair still works for
// endpoints reached with a user token set via SetToken.
type Client struct {
	client       *http.Client
	tokenURL     string
	apiURL       string
	authURL      string
	clientID     string
	clientSecret string
	userAgent    string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a Reddit API client.
func NewClient(clientID, clientSecret, userAgent string) *Client {
	if userAgent == "" {
		userAgent = "reddit-game-posts/1.0"
	}
	return &Client{
		client:       &http.Client{Timeout: 30 * time.Second},
		tokenURL:     defaultTokenURL,
		apiURL:       defaultAPIURL,
		authURL:      defaultAuthURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
	}
}

// AuthURL returns the URL a user visits to grant this app access to their
// Reddit account.
func (c *Client) AuthURL(state, redirectURI string) string {
	q := url.Values{
		"client_id":     {c.clientID},
		"response_type": {"code"},
		"state":         {state},
		"redirect_uri":  {redirectURI},
		"duration":      {"temporary"},
		"scope":         {"identity read submit"},
	}
	return c.authURL + "?" + q.Encode()
}

// SetToken installs an externally obtained access token.
func (c *Client) SetToken(token string, expiry time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenExpiry = expiry
}

// ExchangeCode trades an authorization code from the user grant redirect for
// an access token and installs it on the client.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) error {
	data := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}
	return c.fetchToken(ctx, data)
}

// authenticate obtains an app-only token via the client_credentials grant.
// It is a no-op while a previously fetched token is still valid.
func (c *Client) authenticate(ctx context.Context) error {
	c.mu.Lock()
	valid := c.token != "" && time.Now().Before(c.tokenExpiry)
	c.mu.Unlock()
	if valid {
		return nil
	}
	return c.fetchToken(ctx, url.Values{"grant_type": {"client_credentials"}})
}

func (c *Client) fetchToken(ctx context.Context, data url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("reddit token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit auth status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("decode reddit token: %w", err)
	}

	c.mu.Lock()
	c.token = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	c.mu.Unlock()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body string) (*http.Response, error) {
	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return c.client.Do(req)
}

// SearchPosts searches Reddit for posts matching the query's title and
// platform. MatchExactly wraps the title in quotes so Reddit treats it as an
// exact phrase.
func (c *Client) SearchPosts(ctx context.Context, q SearchQuery) ([]Post, error) {
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
		"q":           {terms},
		"limit":       {fmt.Sprintf("%d", limit)},
		"restrict_sr": {"false"},
	}

	resp, err := c.do(ctx, http.MethodGet, "/search?"+params.Encode(), "")
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit search status %d", resp.StatusCode)
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	var posts []Post
	for _, child := range l.Data.Children {
		if child.Data.Stickied {
			continue
		}
		posts = append(posts, child.Data.toPost())
	}
	return posts, nil
}

// TopComment returns the highest ranked comment of a post, or nil when the
// post has no comments.
func (c *Client) TopComment(ctx context.Context, subreddit, postID string) (*Comment, error) {
	path := fmt.Sprintf("/r/%s/comments/%s/?sort=top", url.PathEscape(subreddit), url.PathEscape(postID))
	resp, err := c.do(ctx, http.MethodGet, path, "")
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", postID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit comments status %d", resp.StatusCode)
	}

	// The endpoint returns a two element array: the post listing followed by
	// its comment listing.
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode comments for %s: %w", postID, err)
	}
	if len(payload) < 2 {
		return nil, nil
	}

	var comments commentListing
	if err := json.Unmarshal(payload[1], &comments); err != nil {
		return nil, fmt.Errorf("decode comment listing for %s: %w", postID, err)
	}

	for _, child := range comments.Data.Children {
		wc := child.Data
		if wc.Stickied || wc.Body == "" {
			continue
		}
		return &Comment{
			Author:     wc.Author,
			Body:       wc.Body,
			Ups:        wc.Ups,
			CreatedUTC: int64(wc.CreatedUTC),
		}, nil
	}
	return nil, nil
}

// SubmitComment posts a comment on a Reddit post. Requires a user token.
func (c *Client) SubmitComment(ctx context.Context, postID, text string) error {
	body := url.Values{
		"thing_id": {"t3_" + postID},
		"text":     {text},
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/comment", body.Encode())
	if err != nil {
		return fmt.Errorf("submit comment on %s: %w", postID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit comment status %d", resp.StatusCode)
	}
	return nil
}

// Username returns the Reddit username tied to the current token.
func (c *Client) Username(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/me", "")
	if err != nil {
		return "", fmt.Errorf("fetch identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reddit identity status %d", resp.StatusCode)
	}

	var me struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return "", fmt.Errorf("decode identity: %w", err)
	}
	return me.Name, nil
}
