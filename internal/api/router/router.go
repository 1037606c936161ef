package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leadpipe/leadpipe/internal/http/handlers"
)

// Config holds router configuration
type Config struct {
	LeadsHandler   *handlers.LeadsHandler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/health", cfg.LeadsHandler.HealthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/leads", cfg.LeadsHandler.ProcessLead)
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
