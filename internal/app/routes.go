package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"sms-ingest/internal/common/ratelimit"
	"sms-ingest/internal/handlers"
	"sms-ingest/internal/metrics"
	"sms-ingest/internal/middleware"
)

// SetupRoutes configures all HTTP routes for the application
func SetupRoutes(router *mux.Router, h *handlers.Handlers, m *metrics.Metrics, rateLimiter ratelimit.Limiter) {
	router.Use(middleware.Logging(m))

	// Ingestion. Rate limiting, when enabled, applies only here: the read
	// endpoints and probes stay unthrottled.
	webhook := http.Handler(http.HandlerFunc(h.Webhook))
	if rateLimiter != nil {
		webhook = ratelimit.HTTPMiddleware(rateLimiter, ratelimit.ClientIPKey)(webhook)
	}
	router.Handle("/webhook", webhook).Methods("POST")

	// Read endpoints
	router.HandleFunc("/messages", h.ListMessages).Methods("GET")
	router.HandleFunc("/stats", h.GetStats).Methods("GET")

	// Probes and metrics
	router.HandleFunc("/health/live", h.Liveness).Methods("GET")
	router.HandleFunc("/health/ready", h.Readiness).Methods("GET")
	router.Handle("/metrics", m.Handler()).Methods("GET")
}
