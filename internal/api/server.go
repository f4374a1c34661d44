// Package api serves the import and render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  build info
//	POST /v1/import?source=NAME    construction summary and diagnostics
//	POST /v1/render?format=FORMAT  rendered artifact
//
// Request bodies are Intergeo documents, either bare XML or .i2g archives.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/intergeo/pkg/httputil"
	"github.com/matzehuels/intergeo/pkg/intergeo"
	"github.com/matzehuels/intergeo/pkg/pipeline"
	"github.com/matzehuels/intergeo/pkg/render/canvas"
)

// DefaultMaxBody is the default request body limit.
const DefaultMaxBody = 8 << 20

// Config holds the defaults applied to every request.
type Config struct {
	Dependent intergeo.Style
	Canvas    canvas.Options
	TTL       time.Duration

	// MaxBody caps request bodies. Zero means DefaultMaxBody.
	MaxBody int64
}

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
}

// NewServer creates a server running imports through runner.
func NewServer(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if cfg.MaxBody == 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, cfg: cfg, logger: logger.WithPrefix("api")}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(httputil.LimitBody(s.cfg.MaxBody))
		r.Post("/import", s.handleImport)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
