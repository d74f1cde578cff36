// Package server exposes the recommendation engine and plan catalog over
// HTTP, with RFC 7807 problem responses and Prometheus instrumentation.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BiiZti/5GRecommendationTool/internal/catalog"
	"github.com/BiiZti/5GRecommendationTool/internal/config"
	"github.com/BiiZti/5GRecommendationTool/internal/engine"
	"github.com/BiiZti/5GRecommendationTool/internal/version"
)

// Server is the GRec HTTP server. Engine defaults start from the loaded
// configuration and may be adjusted at runtime through the config
// endpoints; changes live for the process lifetime only.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *zap.Logger
	catalog    *catalog.Manager
	validate   *validator.Validate
	limiter    *rate.Limiter

	maxBodyBytes int64
	corsOrigins  []string

	mu       sync.RWMutex
	defaults engine.Config
}

// New creates a Server from loaded configuration. Engine defaults are
// validated here so a bad deployment fails at startup rather than on the
// first request.
func New(cfg *config.Config, manager *catalog.Manager, logger *zap.Logger) (*Server, error) {
	defaults := engine.Config{
		FunctionalWeight: cfg.GetFloat64("engine.functional_weight"),
		PriceWeight:      cfg.GetFloat64("engine.price_weight"),
		MaxResults:       cfg.GetInt("engine.max_results"),
	}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("engine defaults: %w", err)
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:          mux,
		logger:       logger,
		catalog:      manager,
		validate:     newValidator(),
		maxBodyBytes: cfg.GetInt64("server.max_body_bytes"),
		corsOrigins:  cfg.GetStringSlice("server.cors_origins"),
		defaults:     defaults,
	}
	if limit := cfg.GetFloat64("server.rate_limit"); limit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(limit), cfg.GetInt("server.rate_burst"))
	}

	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler(),
		ReadTimeout:  cfg.GetDuration("server.read_timeout"),
		WriteTimeout: cfg.GetDuration("server.write_timeout"),
		IdleTimeout:  cfg.GetDuration("server.idle_timeout"),
	}

	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/carriers", s.handleCarriers)
	s.mux.HandleFunc("GET /api/v1/plans", s.handlePlans)
	s.mux.HandleFunc("POST /api/v1/plans/validate", s.handleValidatePlans)
	s.mux.HandleFunc("POST /api/v1/recommend", s.handleRecommend)
	s.mux.HandleFunc("POST /api/v1/recommend/batch", s.handleRecommendBatch)
	s.mux.HandleFunc("GET /api/v1/config", s.handleGetConfig)
	s.mux.HandleFunc("PUT /api/v1/config", s.handleUpdateConfig)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// handler wraps the mux with the middleware chain.
func (s *Server) handler() http.Handler {
	var h http.Handler = s.mux
	h = s.withBodyLimit(h)
	h = s.withRateLimit(h)
	h = s.withCORS(h)
	h = s.withMetrics(h)
	h = s.withLogging(h)
	h = s.withRequestID(h)
	return h
}

// Addr returns the address the server will listen on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// engineDefaults returns a copy of the current engine defaults.
func (s *Server) engineDefaults() engine.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// setEngineDefaults swaps the engine defaults. The caller must have
// validated the new configuration.
func (s *Server) setEngineDefaults(cfg engine.Config) {
	s.mu.Lock()
	s.defaults = cfg
	s.mu.Unlock()
}

// handleHealth returns the server health status.
//
//	@Summary		Health check
//	@Description	Report service liveness and build information.
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]any	"Service status"
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-GRec-Version", version.Short())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "grec",
		"version": version.Map(),
	})
}
