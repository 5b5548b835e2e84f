package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/JonMunkholm/hrpanel/internal/config"
	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/logging"
	"github.com/JonMunkholm/hrpanel/internal/recordstore"
	"github.com/JonMunkholm/hrpanel/internal/session"
	"github.com/JonMunkholm/hrpanel/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	store, err := recordstore.New(cfg.RecordStore.URL, recordstore.WithTimeout(cfg.RecordStore.Timeout))
	if err != nil {
		slog.Error("failed to create record store client", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"record_store", store.BaseURL(),
		"session_backend", cfg.Session.Backend,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	sessions, closeSessions, err := openSessions(cfg)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	service := core.NewService(store, sessions, core.Options{
		MaxImportSize:        cfg.Import.MaxFileSize,
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
	})

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	// Expire idle in-memory sessions; redis keys expire on their own.
	go service.StartSessionJanitor(jobCtx, core.JanitorConfig{
		IdleTTL:  cfg.Session.TTL,
		Interval: cfg.Session.SweepInterval,
	})

	server, err := web.NewServer(jobCtx, service, cfg)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active imports to complete (with timeout)
		importStatus := service.ImportStatus()
		if importStatus.Active > 0 {
			slog.Info("waiting for imports to complete", "active", importStatus.Active)
			if err := service.WaitForImports(shutdownCtx); err != nil {
				slog.Warn("imports did not complete in time", "error", err)
			} else {
				slog.Info("all imports completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSessions builds the configured session backend. The returned func
// releases its connections.
func openSessions(cfg *config.Config) (core.SessionStore, func(), error) {
	if strings.ToLower(cfg.Session.Backend) != config.SessionBackendRedis {
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := session.NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.Session.TTL)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.ConnectTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	slog.Info("connected to redis", "addr", cfg.Redis.Addr(), "db", cfg.Redis.DB)

	return store, func() {
		if err := client.Close(); err != nil {
			slog.Warn("closing redis client", "error", err)
		}
	}, nil
}
