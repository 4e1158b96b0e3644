package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/masoumim/reddit-game-posts/internal/cache"
	"github.com/masoumim/reddit-game-posts/internal/config"
	"github.com/masoumim/reddit-game-posts/internal/scheduler"
	"github.com/masoumim/reddit-game-posts/pkg/dictionary"
	"github.com/masoumim/reddit-game-posts/pkg/games"
	"github.com/masoumim/reddit-game-posts/pkg/pipeline"
	"github.com/masoumim/reddit-game-posts/pkg/reddit"
	"github.com/masoumim/reddit-game-posts/pkg/relevance"
	"github.com/masoumim/reddit-game-posts/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// buildGameDB wires the RAWG client behind the SQLite lookup cache. The
// caller closes the returned cache.
func buildGameDB(cfg *config.Config) (games.Searcher, *cache.Cache, error) {
	client := games.NewClient(cfg.Games.APIKey)

	db, err := cache.New(cfg.Cache.Path, cfg.Cache.ParseTTL())
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	return games.NewCached(client, db), db, nil
}

// buildPipeline assembles the search pipeline from config. Without Reddit
// credentials it degrades to the public search feed, which cannot fetch
// comments.
func buildPipeline(cfg *config.Config, log *slog.Logger) (*pipeline.Pipeline, games.Searcher, *cache.Cache, error) {
	gameDB, db, err := buildGameDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		search   pipeline.SearchSource
		comments pipeline.CommentSource
	)
	if cfg.Reddit.ClientID != "" {
		client := reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.UserAgent)
		search = client
		comments = client
	} else {
		log.Warn("no reddit credentials configured, using the public search feed")
		search = reddit.NewFeedSearch(cfg.Reddit.UserAgent)
	}

	var dict relevance.Definer
	if cfg.Dictionary.APIKey != "" {
		dict = dictionary.NewClient(cfg.Dictionary.APIKey)
	}

	p := pipeline.New(gameDB, search, comments, dict, log, pipeline.Options{
		Threshold:             cfg.Scoring.Threshold,
		UsePlatformScoring:    cfg.Scoring.UsePlatformScoring,
		BlockedCommunities:    cfg.Scoring.BlockedCommunities,
		MaxConcurrentComments: cfg.Scoring.MaxConcurrentComments,
	})
	return p, gameDB, db, nil
}

func runSearch(args []string, platform string, exact, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger()
	p, _, db, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	posts, err := p.Run(ctx, pipeline.Query{
		Title:        strings.Join(args, " "),
		Platform:     platform,
		MatchExactly: exact,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(posts)
	}

	if len(posts) == 0 {
		fmt.Println("no matching posts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSUBREDDIT\tUPVOTES\tPOSTED\tTITLE")
	for _, post := range posts {
		fmt.Fprintf(w, "%d\tr/%s\t%d\t%s\t%s\n",
			post.Rank, post.Subreddit, post.Upvotes, post.RelativeDate, truncate(post.Title, 70))
	}
	return w.Flush()
}

func runGames(args []string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gameDB, db, err := buildGameDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := gameDB.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matching games")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRELEASED\tPLATFORMS")
	for _, g := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Name, g.Released, strings.Join(g.Platforms, ", "))
	}
	return w.Flush()
}

// runComment walks the user grant flow and posts a comment. The redirect URI
// from config must point at a local address this process can listen on.
func runComment(postID string, words []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Reddit.ClientID == "" {
		return fmt.Errorf("commenting requires reddit credentials")
	}
	if cfg.Reddit.RedirectURI == "" {
		return fmt.Errorf("commenting requires reddit.redirect_uri in config")
	}

	client := reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.UserAgent)
	state := uuid.NewString()

	codeCh, shutdown, err := listenForCode(cfg.Reddit.RedirectURI, state)
	if err != nil {
		return err
	}
	defer shutdown()

	fmt.Println("open this URL in a browser to authorize:")
	fmt.Println("  " + client.AuthURL(state, cfg.Reddit.RedirectURI))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for authorization")
	}

	if err := client.ExchangeCode(ctx, code, cfg.Reddit.RedirectURI); err != nil {
		return err
	}

	name, err := client.Username(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("authorized as u/%s\n", name)

	if err := client.SubmitComment(ctx, postID, strings.Join(words, " ")); err != nil {
		return err
	}
	fmt.Println("comment submitted")
	return nil
}

// listenForCode serves the OAuth redirect locally and delivers the
// authorization code at most once.
func listenForCode(redirectURI, state string) (<-chan string, func() error, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redirect_uri: %w", err)
	}

	codeCh := make(chan string, 1)
	path := u.Path
	if path == "" {
		path = "/"
	}

	mux := http.NewServeMux()
	mux.Handle(path, codeHandler(state, codeCh))

	srv := &http.Server{Addr: u.Host, Handler: mux}
	go srv.ListenAndServe()
	return codeCh, srv.Close, nil
}

// codeHandler accepts the grant redirect, checks the state parameter and
// hands the authorization code to the waiting command.
func codeHandler(state string, codeCh chan<- string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if denied := r.URL.Query().Get("error"); denied != "" {
			http.Error(w, "authorization declined: "+denied, http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "authorized, you can close this tab")
		select {
		case codeCh <- r.URL.Query().Get("code"):
		default:
		}
	}
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	log := newLogger()
	p, gameDB, db, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.New(db, log, 0).Run(ctx)

	return server.New(p, gameDB, log, cfg.Server.Port).ListenAndServe()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
