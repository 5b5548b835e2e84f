package core

// janitor.go expires idle browser sessions.
//
// Session backends that cannot expire entries themselves implement Sweeper.
// The janitor runs once on start, then every Interval, and stops when its
// context is cancelled. A failed sweep is logged and retried next tick.

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by session stores that need periodic cleanup.
type Sweeper interface {
	// Sweep removes sessions untouched for longer than idle and returns
	// the ids it removed.
	Sweep(ctx context.Context, idle time.Duration) ([]string, error)
}

// JanitorConfig holds configuration for the session janitor.
type JanitorConfig struct {
	IdleTTL  time.Duration // Sessions idle this long are removed (default: 24h)
	Interval time.Duration // How often to sweep (default: 10m)
}

const (
	DefaultSessionIdleTTL = 24 * time.Hour
	DefaultSweepInterval  = 10 * time.Minute
)

// StartSessionJanitor sweeps idle sessions until ctx is cancelled. It is a
// no-op when the session store does not implement Sweeper.
func (s *Service) StartSessionJanitor(ctx context.Context, cfg JanitorConfig) {
	sweeper, ok := s.sessions.(Sweeper)
	if !ok {
		slog.Debug("session store expires entries itself, janitor not started")
		return
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultSessionIdleTTL
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSweepInterval
	}

	slog.Info("session janitor started", "idle_ttl", cfg.IdleTTL, "interval", cfg.Interval)

	s.runSweep(ctx, sweeper, cfg.IdleTTL)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx, sweeper, cfg.IdleTTL)
		}
	}
}

func (s *Service) runSweep(ctx context.Context, sweeper Sweeper, idle time.Duration) {
	start := time.Now()
	removed, err := sweeper.Sweep(ctx, idle)
	if err != nil {
		slog.Error("session sweep failed", "error", err)
		return
	}
	for _, id := range removed {
		s.forgetLock(id)
	}
	slog.Debug("session sweep completed",
		"removed", len(removed),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
