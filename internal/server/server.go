// Package server wires the router, middleware and static assets.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"buswatch/internal/config"
	"buswatch/internal/delay"
	"buswatch/internal/handler"
	"buswatch/internal/metrics"
	"buswatch/web"
)

// Server is the HTTP server for buswatch.
type Server struct {
	srv    *http.Server
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, resolver *delay.Resolver, m *metrics.Metrics, logger *slog.Logger) *Server {
	h := handler.New(resolver, cfg, logger)

	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Use(requestLogger(logger))
	r.Use(recoverJSON(logger))
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/api/health", h.Health)
	r.Get("/api/delays", h.Delays)
	r.Get("/api/delays/{stopID}", h.DelayByStop)
	r.Get("/api/stops", h.Stops)
	r.Get("/api/summary", h.Summary)
	r.Get("/api/search", h.Search)

	r.Method("GET", "/metrics", m.Handler())

	// Status page — served from the embedded FS.
	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
