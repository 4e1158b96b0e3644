package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Reddit.UserAgent == "" {
		t.Error("default user agent is empty")
	}
	if cfg.Scoring.MaxConcurrentComments != 10 {
		t.Errorf("MaxConcurrentComments = %d, want 10", cfg.Scoring.MaxConcurrentComments)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if got := cfg.Cache.ParseTTL(); got != 24*time.Hour {
		t.Errorf("ParseTTL() = %v, want 24h", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
reddit:
  client_id: rid
  client_secret: rsecret
games:
  api_key: gkey
scoring:
  threshold: 5
  use_platform_scoring: true
  blocked_communities: [spammy]
cache:
  ttl: 1h
server:
  port: 9090
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Reddit.ClientID != "rid" || cfg.Reddit.ClientSecret != "rsecret" {
		t.Errorf("reddit config = %+v", cfg.Reddit)
	}
	if cfg.Games.APIKey != "gkey" {
		t.Errorf("games api key = %q", cfg.Games.APIKey)
	}
	if cfg.Scoring.Threshold != 5 || !cfg.Scoring.UsePlatformScoring {
		t.Errorf("scoring config = %+v", cfg.Scoring)
	}
	if len(cfg.Scoring.BlockedCommunities) != 1 || cfg.Scoring.BlockedCommunities[0] != "spammy" {
		t.Errorf("BlockedCommunities = %v", cfg.Scoring.BlockedCommunities)
	}
	if got := cfg.Cache.ParseTTL(); got != time.Hour {
		t.Errorf("ParseTTL() = %v, want 1h", got)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}

	// Values the file leaves out keep their defaults.
	if cfg.Reddit.UserAgent != Default().Reddit.UserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.Reddit.UserAgent)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GAMEPOSTS_REDDIT_CLIENT_ID", "env-id")
	t.Setenv("GAMEPOSTS_RAWG_API_KEY", "env-games")
	t.Setenv("GAMEPOSTS_SERVER_PORT", "7070")
	t.Setenv("GAMEPOSTS_SCORING_THRESHOLD", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Reddit.ClientID != "env-id" {
		t.Errorf("ClientID = %q, want env-id", cfg.Reddit.ClientID)
	}
	if cfg.Games.APIKey != "env-games" {
		t.Errorf("games api key = %q", cfg.Games.APIKey)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Scoring.Threshold != 3 {
		t.Errorf("Threshold = %d, want 3", cfg.Scoring.Threshold)
	}
}

func TestEnvOverrideIgnoresBadPort(t *testing.T) {
	t.Setenv("GAMEPOSTS_SERVER_PORT", "not-a-port")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestParseTTLFallsBack(t *testing.T) {
	c := CacheConfig{TTL: "garbage"}
	if got := c.ParseTTL(); got != 24*time.Hour {
		t.Errorf("ParseTTL() = %v, want 24h fallback", got)
	}
}
