// Package api exposes the leaderboard snapshot over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/aiready/internal/domain/catalog"
	"github.com/okian/aiready/internal/domain/model"
	"github.com/okian/aiready/internal/domain/scoring"
	"github.com/okian/aiready/pkg/logger"
	"github.com/okian/aiready/pkg/metrics"
)

// Dependencies are the read-only lookups the handlers need.
type Dependencies interface {
	Loaded() bool
	All() []model.Repository
	BySlug(slug string) (model.Repository, error)
	Slugs() []string
	LastUpdated() time.Time
	OrgName() string
	OrgStats() model.OrgStats
}

// Server wires HTTP routes for the leaderboard API.
type Server struct {
	deps     Dependencies
	catalog  *catalog.Catalog
	bands    []scoring.Band
	metrics  *metrics.Manager
	gatherer prometheus.Gatherer
	logger   logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMetrics sets the metrics manager requests are recorded on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBands sets the level bands published on /catalog.
func WithBands(bands []scoring.Band) Option {
	return func(s *Server) {
		if len(bands) > 0 {
			s.bands = bands
		}
	}
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, c *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		deps:     deps,
		catalog:  c,
		bands:    scoring.DefaultBands(),
		metrics:  metrics.Default(),
		gatherer: metrics.GetRegistry(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns a chi router with all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.metrics, s.HandleHealth, "healthz"))
	r.Handle("/metrics", metricsHandler(s.gatherer))

	r.Get("/repositories", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleListRepositories), "repositories"))
	r.Get("/repositories/{slug}", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleGetRepository), "repository"))
	r.Get("/slugs", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleSlugs), "slugs"))
	r.Get("/languages", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleLanguages), "languages"))
	r.Get("/last-updated", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleLastUpdated), "last_updated"))
	r.Get("/stats", MetricsMiddleware(s.metrics, s.requireSnapshot(s.HandleStats), "stats"))
	r.Get("/catalog", MetricsMiddleware(s.metrics, s.HandleCatalog, "catalog"))

	return r
}

// requireSnapshot answers 503 until the first snapshot is loaded.
func (s *Server) requireSnapshot(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.deps.Loaded() {
			writeError(w, http.StatusServiceUnavailable, "not_loaded", ErrNotLoaded)
			return
		}
		next(w, r)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
