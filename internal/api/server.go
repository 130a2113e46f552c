// Package api exposes the export pipeline over HTTP.
//
// The server is a thin shell around export.Runner and registry.Registry:
// it decodes options, runs exports, and maps engine errors to coded JSON
// responses. Routes:
//
//	POST /api/export  generate code for a group (body = export options)
//	GET  /api/groups  list the registry's group names
//	PUT  /api/groups  upload a library of group snapshots
//	GET  /healthz     liveness probe
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/groupgen/groupgen/pkg/export"
	"github.com/groupgen/groupgen/pkg/registry"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server handles HTTP requests against a registry and an export runner.
type Server struct {
	reg    registry.Registry
	runner *export.Runner
	logger *log.Logger
	router *chi.Mux
}

// New creates a Server with its routes registered. A nil logger is
// replaced with the default logger.
func New(reg registry.Registry, runner *export.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		reg:    reg,
		runner: runner,
		logger: logger,
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestID)

	s.router.Post("/api/export", s.handleExport)
	s.router.Get("/api/groups", s.handleGroups)
	s.router.Put("/api/groups", s.handleUpload)
	s.router.Get("/healthz", s.handleHealth)

	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
