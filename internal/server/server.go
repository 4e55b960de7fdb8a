// Package server exposes fragment rendering over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leapfrag/internal/mapping"
	"github.com/leapstack-labs/leapfrag/pkg/core"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the HTTP server.
type Config struct {
	Addr string
	// Dialect is used when a request does not name one.
	Dialect string
	// Types are extra type names applied to every render.
	Types []string
	// Store records renders when set.
	Store core.Store
	// Mapping is a mapping file served at /mapping and watched for changes.
	Mapping string
	Workers int
	Logger  *slog.Logger
}

// Server serves the render API.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	notifier *notifier
	renderer *mapping.Renderer

	mu       sync.RWMutex
	snapshot *snapshot
}

// snapshot is the latest rendering of the mapping file.
type snapshot struct {
	Generation uint64           `json:"generation"`
	Path       string           `json:"path"`
	RenderedAt time.Time        `json:"rendered_at"`
	Results    []mapping.Result `json:"results,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// New creates a server. A nil logger discards output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		notifier: newNotifier(),
		renderer: &mapping.Renderer{
			Dialect: cfg.Dialect,
			Types:   cfg.Types,
			Workers: cfg.Workers,
			Logger:  logger,
		},
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/dialects", s.handleDialects)
	r.Post("/render", s.handleRender)
	r.Post("/columns", s.handleColumns)
	r.Post("/transform", s.handleTransform)
	r.Get("/mapping", s.handleMapping)
	r.Get("/events", s.handleEvents)
	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", slog.String("addr", s.cfg.Addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Mapping != "" {
		eg.Go(func() error {
			return mapping.Watch(egctx, s.cfg.Mapping, s.logger, func(doc *mapping.Document, err error) {
				s.reload(egctx, doc, err)
			})
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// reload renders a freshly loaded mapping document and publishes it.
func (s *Server) reload(ctx context.Context, doc *mapping.Document, loadErr error) {
	snap := &snapshot{Path: s.cfg.Mapping, RenderedAt: time.Now().UTC()}

	err := loadErr
	if err == nil {
		err = doc.Validate()
	}
	if err == nil {
		snap.Results, err = s.renderer.RenderAll(ctx, doc)
	}
	if err != nil {
		s.logger.Error("mapping reload failed", slog.String("path", s.cfg.Mapping), slog.Any("error", err))
		snap.Error = err.Error()
	}

	s.mu.Lock()
	if s.snapshot != nil {
		snap.Generation = s.snapshot.Generation
	}
	snap.Generation++
	s.snapshot = snap
	s.mu.Unlock()

	s.logger.Info("mapping rendered",
		slog.Uint64("generation", snap.Generation),
		slog.Int("fragments", len(snap.Results)))
	s.notifier.broadcast(snap.Generation)
}

func (s *Server) currentSnapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("took", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}
