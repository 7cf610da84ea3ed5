// Package api serves the PickScout HTTP API over PostgreSQL-backed stores.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/config"
	"github.com/yourusername/pickscout/internal/logger"
	"github.com/yourusername/pickscout/internal/metrics"
)

const serviceName = "PickScout API"

// Config holds server configuration
type Config struct {
	Server      config.ServerConfig
	Leaderboard config.LeaderboardConfig
	Metrics     config.MetricsConfig
	Logger      *logrus.Logger
	Cappers     CapperStore
	Picks       PickStore
	Profiles    ProfileStore
	// Probes, when set, is mounted at /health, /live and /ready.
	Probes http.Handler
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      *logrus.Entry
	audit    *logger.AuditLogger
	limits   config.LeaderboardConfig
	cappers  CapperStore
	picks    PickStore
	profiles ProfileStore
	now      func() time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	base := cfg.Logger
	if base == nil {
		base = logger.Discard()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		router:   chi.NewRouter(),
		log:      base.WithField("component", "api"),
		audit:    logger.NewAuditLogger(base),
		limits:   cfg.Leaderboard,
		cappers:  cfg.Cappers,
		picks:    cfg.Picks,
		profiles: cfg.Profiles,
		now:      now,
	}

	s.setupMiddleware(cfg.Server.AllowedOrigins)
	s.setupRoutes(cfg.Metrics, cfg.Probes)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  seconds(cfg.Server.ReadTimeoutSeconds, 15),
		WriteTimeout: seconds(cfg.Server.WriteTimeoutSeconds, 15),
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes(metricsCfg config.MetricsConfig, probes http.Handler) {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/cappers/leaderboard", s.handleLeaderboard)

		r.Route("/picks", func(r chi.Router) {
			r.Get("/today", s.handleTodaysPicks)
			r.Get("/recent", s.handleRecentPicks)
		})

		r.Post("/users/profile", s.handleSaveProfile)
	})

	if probes != nil {
		s.router.Handle("/health", probes)
		s.router.Handle("/live", probes)
		s.router.Handle("/ready", probes)
	}

	if metricsCfg.Enabled {
		path := metricsCfg.Path
		if path == "" {
			path = "/metrics"
		}
		s.router.Handle(path, metrics.Handler())
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.RecordAPIRequest(route, status, elapsed.Seconds())

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("HTTP request")
	})
}
