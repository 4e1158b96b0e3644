// Package scheduler runs periodic cache maintenance while the server is up.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Pruner removes expired entries from a cache.
type Pruner interface {
	Prune(ctx context.Context) error
}

// Scheduler prunes the lookup cache on a fixed interval.
type Scheduler struct {
	pruner   Pruner
	log      *slog.Logger
	interval time.Duration
}

// New creates a new scheduler. A zero interval prunes hourly.
func New(pruner Pruner, log *slog.Logger, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		pruner:   pruner,
		log:      log,
		interval: interval,
	}
}

// Run starts the prune loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run immediately on start.
	s.prune(ctx)
	s.log.Info("cache pruner running", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("cache pruner stopped")
			return ctx.Err()
		case <-ticker.C:
			s.prune(ctx)
		}
	}
}

func (s *Scheduler) prune(ctx context.Context) {
	if err := s.pruner.Prune(ctx); err != nil {
		s.log.Warn("cache prune failed", "error", err)
	}
}
