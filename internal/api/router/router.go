// Package router wires the HTTP surface of the ingestion service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/Adilkhan6644/webhook-service/internal/http/middleware"
	"github.com/Adilkhan6644/webhook-service/internal/webhooks"
	"github.com/Adilkhan6644/webhook-service/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	WebhookHandler *webhooks.Handler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/", root)
	r.Get("/health", health)

	r.Route("/v1/webhooks/{tenant}/{provider}", func(r chi.Router) {
		r.Get("/", cfg.WebhookHandler.Alive)
		r.Post("/", cfg.WebhookHandler.Ingest)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, `{"message": "Webhook Lead Ingestion Service", "status": "running"}`)
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, `{"status": "healthy", "service": "webhook-ingestion"}`)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
