// Package metrics exposes Prometheus counters and histograms for the
// ingestion service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook outcome labels recorded on webhook_requests_total.
const (
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeValidationError  = "validation_error"
	OutcomeCreated          = "created"
	OutcomeDuplicate        = "duplicate"
	OutcomeStorageError     = "storage_error"
)

// Metrics holds the service's collectors bound to a dedicated registry so
// tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	webhookOutcomes *prometheus.CounterVec
	latency         prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"path", "status"}),
		webhookOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Webhook processing outcomes",
		}, []string{"result"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "request_latency_ms",
			Help:    "Request latency in ms",
			Buckets: []float64{100, 500},
		}),
	}

	registry.MustRegister(m.httpRequests, m.webhookOutcomes, m.latency)
	return m
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(path string, status int, latencyMS float64) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	m.latency.Observe(latencyMS)
}

// CountWebhookOutcome records the result of one webhook delivery.
func (m *Metrics) CountWebhookOutcome(result string) {
	m.webhookOutcomes.WithLabelValues(result).Inc()
}

// Handler returns the exposition-format HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
