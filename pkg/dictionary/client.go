// Package dictionary checks word commonality against the Merriam-Webster
// collegiate dictionary API.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

// Client queries the dictionary API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a dictionary client.
func NewClient(apiKey string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

// HasDefinition reports whether the word has a dictionary definition. When
// the word is unknown the API returns spelling suggestions as bare strings
// instead of entry objects, so only an object carrying shortdef counts.
//
// Callers treat an error as "no definition"; a single failed lookup must not
// block a whole search.
func (c *Client) HasDefinition(ctx context.Context, word string) (bool, error) {
	reqURL := fmt.Sprintf("%s/%s?key=%s", c.baseURL, url.PathEscape(word), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("dictionary lookup %q: %w", word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("dictionary status %d for %q", resp.StatusCode, word)
	}

	var entries []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return false, fmt.Errorf("decode dictionary response for %q: %w", word, err)
	}
	if len(entries) == 0 {
		return false, nil
	}

	var entry struct {
		ShortDef []string `json:"shortdef"`
	}
	if err := json.Unmarshal(entries[0], &entry); err != nil {
		// A bare-string suggestion, not a definition entry.
		return false, nil
	}
	return len(entry.ShortDef) > 0, nil
}
