package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tallyworks/wipengine/internal/adapter/http/handler"
	"github.com/tallyworks/wipengine/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WipHandler    *handler.WipHandler
	CacheHandler  *handler.CacheHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health and telemetry endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/{kind}/{id}", func(r chi.Router) {
			r.Get("/wip", cfg.WipHandler.GetSnapshot)
			r.Get("/profitability", cfg.WipHandler.GetProfitability)
			r.Get("/aging", cfg.WipHandler.GetAging)
		})

		r.Route("/cache", func(r chi.Router) {
			r.Post("/invalidate", cfg.CacheHandler.Invalidate)
			r.Get("/health", cfg.CacheHandler.Health)
		})
	})

	return r
}
