// Package web provides the HTTP server and handlers for the employee panel.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/hrpanel/internal/config"
	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/web/middleware"
)

// errRateLimited is what a limited request reports to respondError.
var errRateLimited = errors.New("rate limit exceeded")

// Server is the HTTP server for the employee panel.
type Server struct {
	service    *core.Service
	cfg        *config.Config
	validate   *validator.Validate
	translator ut.Translator
	router     *chi.Mux
	server     *http.Server
}

// NewServer creates a Server. ctx bounds the background cleanup of the rate
// limiters.
func NewServer(ctx context.Context, service *core.Service, cfg *config.Config) (*Server, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	s := &Server{
		service:    service,
		cfg:        cfg,
		validate:   validate,
		translator: trans,
		router:     chi.NewRouter(),
	}
	s.setupMiddleware(ctx)
	s.setupRoutes(ctx)
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware(ctx context.Context) {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Session(middleware.SessionOptions{
		CookieName: s.cfg.Session.CookieName,
		Secure:     s.cfg.Session.SecureCookie,
		TTL:        s.cfg.Session.TTL,
	}))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := middleware.NewRateLimiter(ctx, s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.Limit(s.rateLimited))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(ctx context.Context) {
	s.router.Get("/healthz", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleDashboard)

	s.router.Route("/employees", func(r chi.Router) {
		r.Get("/", s.handleEmployees)
		r.Get("/table", s.handleEmployeeTable)
		r.Get("/new", s.handleNewEmployee)
		r.Post("/", s.handleCreateEmployee)

		// Export
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/export.pdf", s.handleExportPDF)

		// Import has its own, tighter budget.
		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				limiter := middleware.NewRateLimiter(ctx, s.cfg.Rate.ImportLimit, time.Minute)
				r.Use(limiter.Limit(s.rateLimited))
			}
			r.Post("/import", s.handleImport)
		})

		r.Get("/{id}/edit", s.handleEditEmployee)
		r.Post("/{id}", s.handleUpdateEmployee)
		r.Delete("/{id}", s.handleDeleteEmployee)
		r.Post("/{id}/delete", s.handleConfirmDelete)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
}

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "ok",
		"imports": s.service.ImportStatus(),
	})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
