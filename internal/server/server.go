// Package server exposes hanoitower over HTTP.
//
// Stateless endpoints render a solution on demand through the shared
// pipeline runner. Live runs play a solution in wall-clock time on the
// server and stream every completed move to subscribers as server-sent
// events.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/observability"
	"github.com/matzehuels/hanoitower/pkg/pipeline"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

// Defaults for Options fields left zero.
const (
	DefaultMaxDisks       = 12
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRuns        = 64
)

// Options configures a Server.
type Options struct {
	// MaxDisks caps the disks query parameter.
	MaxDisks int
	// DefaultDisks is used when a request names no disk count.
	DefaultDisks int
	// RequestTimeout bounds non-streaming requests.
	RequestTimeout time.Duration
	// MaxRuns caps concurrent live runs.
	MaxRuns int
	// Pipeline holds the timing and scene settings applied to every request.
	Pipeline pipeline.Options
	// Stats, when set, is served at /api/stats.
	Stats *observability.Stats
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	runs   *runStore
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxDisks <= 0 || opts.MaxDisks > solver.MaxDisks {
		opts.MaxDisks = DefaultMaxDisks
	}
	if opts.DefaultDisks <= 0 {
		opts.DefaultDisks = pipeline.DefaultDisks
	}
	if opts.DefaultDisks > opts.MaxDisks {
		opts.DefaultDisks = opts.MaxDisks
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.MaxRuns <= 0 {
		opts.MaxRuns = DefaultMaxRuns
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
		opts:   opts,
		runs:   newRunStore(opts.MaxRuns),
	}
}

// Handler returns the router with all routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	// Event streams stay open for the whole run, so only the other routes
	// get a timeout.
	r.Get("/api/runs/{id}/events", s.runEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))

		r.Get("/healthz", s.health)
		r.Get("/api/stats", s.stats)
		r.Get("/api/moves", s.moves)
		r.Get("/api/timeline", s.timeline)
		r.Get("/animation.svg", s.animationSVG)
		r.Get("/recursion.svg", s.recursionSVG)

		r.Post("/api/runs", s.createRun)
		r.Get("/api/runs", s.listRuns)
		r.Get("/api/runs/{id}", s.getRun)
		r.Delete("/api/runs/{id}", s.deleteRun)
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and cancels every live run.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0, // SSE
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Close cancels every live run.
func (s *Server) Close() {
	s.runs.closeAll()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Request helpers
// =============================================================================

// disksParam reads the disks query parameter, falling back to the default.
func (s *Server) disksParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("disks")
	if raw == "" {
		return s.opts.DefaultDisks, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "disks must be an integer, got %q", raw)
	}
	return s.checkDisks(n)
}

func (s *Server) checkDisks(n int) (int, error) {
	if n < 0 || n > s.opts.MaxDisks {
		return 0, errors.New(errors.ErrCodeInvalidInput, "disks must be between 0 and %d, got %d", s.opts.MaxDisks, n)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// pipelineOptions copies the server's pipeline settings for one request.
func (s *Server) pipelineOptions(disks int, formats ...string) pipeline.Options {
	opts := s.opts.Pipeline
	opts.Disks = disks
	opts.Formats = formats
	opts.Logger = s.logger
	return opts
}

// =============================================================================
// Response helpers
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfiguration,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMove, errors.ErrCodeIndexOutOfRange:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
