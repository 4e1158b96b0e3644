// Package games looks up game metadata in the RAWG video game database.
package games

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.rawg.io/api"

// Game is one database entry with platform and tag lists flattened.
type Game struct {
	Name       string   `json:"name"`
	Released   string   `json:"released,omitempty"`
	Platforms  []string `json:"platforms"`
	Tags       []string `json:"tags"`
	Metacritic int      `json:"metacritic,omitempty"`
}

// Client queries the RAWG API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a RAWG client.
func NewClient(apiKey string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
}

type wireGame struct {
	Name      string `json:"name"`
	Released  string `json:"released"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Metacritic int `json:"metacritic"`
}

func (w wireGame) toGame() Game {
	g := Game{
		Name:       w.Name,
		Released:   w.Released,
		Metacritic: w.Metacritic,
	}
	for _, p := range w.Platforms {
		g.Platforms = append(g.Platforms, p.Platform.Name)
	}
	for _, t := range w.Tags {
		g.Tags = append(g.Tags, t.Name)
	}
	return g
}

// Search returns the games matching a query, best match first. An empty
// result is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Game, error) {
	params := url.Values{
		"key":    {c.apiKey},
		"search": {query},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("games search status %d", resp.StatusCode)
	}

	var payload struct {
		Results []wireGame `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode games search: %w", err)
	}

	games := make([]Game, 0, len(payload.Results))
	for _, w := range payload.Results {
		games = append(games, w.toGame())
	}
	return games, nil
}

// Lookup returns the game whose name matches the title, preferring an exact
// case-insensitive match over the first search result. A nil game with a nil
// error means no game was found.
func (c *Client) Lookup(ctx context.Context, title string) (*Game, error) {
	results, err := c.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	for i := range results {
		if strings.EqualFold(results[i].Name, title) {
			return &results[i], nil
		}
	}
	return &results[0], nil
}
