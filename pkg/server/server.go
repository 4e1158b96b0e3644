// Package server exposes the search pipeline over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/masoumim/reddit-game-posts/pkg/games"
	"github.com/masoumim/reddit-game-posts/pkg/pipeline"
)

// PostSearcher runs one game search end to end.
type PostSearcher interface {
	Run(ctx context.Context, q pipeline.Query) ([]pipeline.FormattedPost, error)
}

// GameSearcher serves the title autocomplete.
type GameSearcher interface {
	Search(ctx context.Context, query string) ([]games.Game, error)
}

// Server provides the HTTP API.
type Server struct {
	posts PostSearcher
	games GameSearcher
	log   *slog.Logger
	port  int
}

// New creates a new HTTP server.
func New(posts PostSearcher, gameDB GameSearcher, log *slog.Logger, port int) *Server {
	if port == 0 {
		port = 8080
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		posts: posts,
		games: gameDB,
		log:   log,
		port:  port,
	}
}

// Handler returns the route map.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/games", s.withRequestID(s.handleGames))
	mux.HandleFunc("/api/v1/posts", s.withRequestID(s.handlePosts))
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// withRequestID tags each request with an ID for log correlation.
func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next(w, r)
		s.log.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing q parameter"})
		return
	}

	results, err := s.games.Search(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  results,
		"count": len(results),
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing title parameter"})
		return
	}

	q := pipeline.Query{
		Title:        title,
		Platform:     r.URL.Query().Get("platform"),
		MatchExactly: r.URL.Query().Get("exact") == "true",
	}

	posts, err := s.posts.Run(r.Context(), q)
	if err != nil {
		if errors.Is(err, pipeline.ErrGameNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  posts,
		"count": len(posts),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
