// Package webserver exposes feature generation over HTTP: a JSON API for
// listing endpoints and generating features, plus an embedded single-page
// form for driving the same API from a browser.
//
// The server holds one loaded project context for its whole lifetime. The
// context is immutable, so handlers share it without locking; each
// generation request runs its own Scaffolder against the project root.
package webserver

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
)

//go:embed index.html
var indexHTML []byte

// Server serves the generation API for one loaded project.
type Server struct {
	cfg    Config
	proj   *project.Context
	logger extractor.Logger
}

// New creates a Server for the loaded project. A nil logger disables
// logging.
func New(proj *project.Context, cfg Config, logger extractor.Logger) *Server {
	if logger == nil {
		logger = extractor.NopLogger{}
	}
	return &Server{cfg: cfg, proj: proj, logger: logger}
}

// Handler returns the full route table:
//
//	GET  /               embedded selection form
//	GET  /api/endpoints  endpoint listing, filterable by tag and method
//	POST /api/generate   run feature generation
//	GET  /api/health     liveness and version
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/endpoints", s.handleEndpoints)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return s.logRequests(mux)
}

// Run serves the API until ctx is cancelled, then drains in-flight
// requests for at most Config.ShutdownTimeout. It returns nil on a clean
// shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening",
			"addr", s.cfg.Addr, "project", s.proj.Name, "spec", s.proj.SpecPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("web server shutting down", "timeout", s.cfg.ShutdownTimeout.String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// statusRecorder captures the status code written by a handler so the
// request log line can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}
