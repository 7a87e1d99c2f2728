package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Version is reported by GET /.
const Version = "1.0.0"

// Config holds the HTTP server settings.
type Config struct {
	Port          string
	CORSOrigins   []string
	MaxConcurrent int // 0 means unlimited
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the routes for scraper.
func NewServer(cfg Config, scraper Scraper, baseLogger *slog.Logger) (*Server, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to load request schemas: %w", err)
	}
	h := &handlers{scraper: scraper, schemas: schemas, version: Version}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           newRouter(cfg, h, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}, nil
}

func newRouter(cfg Config, h *handlers, baseLogger *slog.Logger) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", traceHeader},
		ExposedHeaders: []string{traceHeader},
		MaxAge:         300,
	}))

	r.Get("/", h.root)
	r.Get("/healthz", h.health)

	r.Group(func(r chi.Router) {
		if cfg.MaxConcurrent > 0 {
			r.Use(middleware.Throttle(cfg.MaxConcurrent))
		}
		r.Post("/scrape-airbnb", h.scrapeStep)
		r.Post("/scrape-airbnb-complete", h.scrapeComplete)
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", "error", err)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop waits for in-flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...")
	return s.httpServer.Shutdown(ctx)
}
