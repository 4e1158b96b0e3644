package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Reddit     RedditConfig     `yaml:"reddit"`
	Games      GamesConfig      `yaml:"games"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Cache      CacheConfig      `yaml:"cache"`
	Server     ServerConfig     `yaml:"server"`
}

// RedditConfig holds Reddit API credentials. With an empty client ID the app
// falls back to the unauthenticated search feed.
type RedditConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	UserAgent    string `yaml:"user_agent"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// GamesConfig holds the game database API key.
type GamesConfig struct {
	APIKey string `yaml:"api_key"`
}

// DictionaryConfig holds the dictionary API key.
type DictionaryConfig struct {
	APIKey string `yaml:"api_key"`
}

// ScoringConfig tunes post relevance scoring.
type ScoringConfig struct {
	// Threshold overrides the acceptance score; 0 keeps the mode default.
	Threshold int `yaml:"threshold"`
	// UsePlatformScoring switches to the bounded platform-alias mode when a
	// platform is selected.
	UsePlatformScoring bool `yaml:"use_platform_scoring"`
	// BlockedCommunities extends the built-in subreddit denylist.
	BlockedCommunities []string `yaml:"blocked_communities"`
	// MaxConcurrentComments bounds the comment-fetch fan-out.
	MaxConcurrentComments int `yaml:"max_concurrent_comments"`
}

// CacheConfig configures the game-metadata lookup cache.
type CacheConfig struct {
	Path string `yaml:"path"`
	TTL  string `yaml:"ttl"`
}

// ParseTTL returns the cache TTL as a duration.
func (c CacheConfig) ParseTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Reddit: RedditConfig{
			UserAgent: "reddit-game-posts/1.0",
		},
		Scoring: ScoringConfig{
			MaxConcurrentComments: 10,
		},
		Cache: CacheConfig{
			Path: "./gameposts.db",
			TTL:  "24h",
		},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GAMEPOSTS_REDDIT_CLIENT_ID"); v != "" {
		cfg.Reddit.ClientID = v
	}
	if v := os.Getenv("GAMEPOSTS_REDDIT_CLIENT_SECRET"); v != "" {
		cfg.Reddit.ClientSecret = v
	}
	if v := os.Getenv("GAMEPOSTS_REDDIT_USER_AGENT"); v != "" {
		cfg.Reddit.UserAgent = v
	}
	if v := os.Getenv("GAMEPOSTS_REDDIT_REDIRECT_URI"); v != "" {
		cfg.Reddit.RedirectURI = v
	}
	if v := os.Getenv("GAMEPOSTS_RAWG_API_KEY"); v != "" {
		cfg.Games.APIKey = v
	}
	if v := os.Getenv("GAMEPOSTS_DICTIONARY_API_KEY"); v != "" {
		cfg.Dictionary.APIKey = v
	}
	if v := os.Getenv("GAMEPOSTS_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("GAMEPOSTS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GAMEPOSTS_SCORING_THRESHOLD"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Threshold = threshold
		}
	}
}
