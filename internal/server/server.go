// Package server exposes the operation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/viktori/matteray/pkg/pipeline"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// strictJSON rejects request fields the API does not know.
	strictJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		DisallowUnknownFields:  true,
	}.Froze()
)

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxBodyBytes caps request bodies. Zero uses 8 MiB.
	MaxBodyBytes int64

	// Concurrency bounds the workers of one batch request.
	Concurrency int
}

// Server is the matteray HTTP API.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 8 << 20
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = pipeline.DefaultConcurrency
	}

	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		logger: logger,
		opts:   opts,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(requestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/version", s.handleVersion)

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Get("/ops", s.handleListOperations)
		r.Post("/ops/{op}", s.handleOperation)
		r.Post("/batch", s.handleBatch)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
