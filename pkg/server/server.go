// Package server exposes resolution, validation and projections over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/tokens                     resolved values of the store's merged document
//	GET  /v1/projection/{namespace}     ?root=&format=json|css&selector=
//	POST /v1/validate                   body: token document, 422 when errors exist
//	POST /v1/resolve                    body: {sources, fallbacks, overrides, namespace, root}
//
// Every pass goes through a [pipeline.Runner], so repeated requests over an
// unchanged store are served from its cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/darianrosebrook/portfolio-sub007/pkg/observability"
	"github.com/darianrosebrook/portfolio-sub007/pkg/pipeline"
	"github.com/darianrosebrook/portfolio-sub007/pkg/store"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 8 << 20

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves the token API for one store.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router

	// StrictUnits applies to validation and to passes over the store.
	StrictUnits bool
}

// New creates a server. A nil runner gets an uncached one and a nil logger
// the default logger.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{store: st, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tokens", s.handleTokens)
		r.Get("/projection/{namespace}", s.handleProjection)
		r.Post("/validate", s.handleValidate)
		r.Post("/resolve", s.handleResolve)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const requestIDHeader = "X-Request-ID"

// requestID echoes the caller's request ID or assigns a fresh one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// instrument reports every request to the registered HTTP hooks, keyed by
// route pattern rather than raw path.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
