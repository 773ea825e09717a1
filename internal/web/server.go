// Package web serves the Star-Seeker HTTP API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/app"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/config"
)

// Server is the HTTP API front end over the application service.
type Server struct {
	app    *app.App
	cfg    *config.Config
	logger *slog.Logger
	router chi.Router
}

// NewServer builds the server and its routes.
func NewServer(a *app.App, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:    a,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Router returns the HTTP handler, exposed for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/{username}/fetch", s.handleFetch)
		r.Get("/users/{username}/search", s.handleSearch)
		r.Get("/sessions", s.handleSessions)
		r.Get("/metrics", s.handleMetrics)
	})
	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
// A stars-file watcher runs alongside when enabled so out-of-process
// data changes evict stale engines.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", slog.String("addr", s.cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if s.cfg.Server.WatchStars {
		g.Go(func() error {
			return watchStars(gctx, s.cfg.DataDir, s.app, s.logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
