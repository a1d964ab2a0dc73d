// Package api exposes the browsing session over HTTP for consumers:
// current catalog, navigation operations, and prefetch readiness.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mstefano/lightbox/internal/logger"
	"github.com/mstefano/lightbox/pkg/metrics"
	"github.com/mstefano/lightbox/pkg/session"
)

// Config holds API server configuration.
type Config struct {
	// Listen is the address to bind, e.g. ":8480".
	Listen string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server serves the browsing API.
type Server struct {
	cfg     Config
	session *session.Session
	httpSrv *http.Server
}

// NewServer creates an API server over the given session.
func NewServer(cfg Config, s *session.Session) *Server {
	srv := &Server{cfg: cfg, session: s}
	srv.httpSrv = &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Routes builds the router. Exposed for tests.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/catalog/refresh", s.handleRefresh)
		r.Get("/position", s.handlePosition)
		r.Post("/step", s.handleStep)
		r.Post("/jump", s.handleJump)
		r.Post("/select", s.handleSelect)
		r.Get("/ready", s.handleReady)
	})
	return r
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", "addr", s.cfg.Listen)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("api shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}
