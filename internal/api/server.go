package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/echoscribe/engine/internal/config"
	"github.com/echoscribe/engine/internal/events"
	"github.com/echoscribe/engine/internal/metrics"
	"github.com/echoscribe/engine/internal/pipeline"
)

type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// Options wires the server's collaborators.
type Options struct {
	Config    *config.Config
	Processor *pipeline.Processor
	History   *pipeline.History
	Bus       *events.Bus
	Watcher   WatcherSource
	Version   string
	StartTime time.Time
	Log       zerolog.Logger
}

func NewServer(opts Options) *Server {
	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(CORS)
	r.Use(Logger(opts.Log))
	r.Use(metrics.InstrumentHandler)

	// Health and metrics stay open.
	health := NewHealthHandler(opts.History, opts.Watcher, opts.Config.GeminiModel, opts.Version, opts.StartTime)
	r.Get("/api/v1/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(opts.Config.AuthToken))
		NewProcessHandler(opts.Processor, opts.Log).Routes(r)
		NewResultsHandler(opts.History).Routes(r)
		NewEventsHandler(opts.Bus).Routes(r)
	})

	return &Server{
		http: &http.Server{
			Addr:         opts.Config.HTTPAddr,
			Handler:      r,
			ReadTimeout:  opts.Config.ReadTimeout,
			WriteTimeout: opts.Config.WriteTimeout,
			IdleTimeout:  opts.Config.IdleTimeout,
		},
		log: opts.Log,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}
