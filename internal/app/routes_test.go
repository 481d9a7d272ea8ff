package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sms-ingest/internal/common/ratelimit"
	"sms-ingest/internal/config"
	"sms-ingest/internal/handlers"
	"sms-ingest/internal/metrics"
	"sms-ingest/internal/payload"
	"sms-ingest/internal/signature"
	"sms-ingest/internal/storage/sqlite"
)

const testSecret = "routes-test-secret"

func newTestRouter(t *testing.T, limiter ratelimit.Limiter) *mux.Router {
	t.Helper()

	adapter, err := sqlite.NewAdapter(&sqlite.Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	cfg := &config.Config{WebhookSecret: testSecret}
	m := metrics.New()
	h := handlers.New(adapter, signature.NewVerifier(testSecret), payload.NewValidator(), cfg, m)

	router := mux.NewRouter()
	SetupRoutes(router, h, m, limiter)
	return router
}

func signedWebhookRequest(body string) *http.Request {
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader([]byte(body)))
	req.Header.Set(handlers.SignatureHeader, signature.NewVerifier(testSecret).Compute([]byte(body)))
	return req
}

func TestRoutes_WebhookRoundTrip(t *testing.T) {
	router := newTestRouter(t, nil)
	body := `{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":"hi"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, signedWebhookRequest(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/messages", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message_id":"m1"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_messages":1`)

	// The outcome counters are visible on the metrics endpoint.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `webhook_requests_total{result="created"} 1`)
}

func TestRoutes_MethodsRestricted(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/webhook"},
		{"POST", "/messages"},
		{"POST", "/stats"},
		{"POST", "/health/live"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestRoutes_HealthProbes(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRoutes_WebhookRateLimited(t *testing.T) {
	limiter, err := ratelimit.NewLocalLimiter(ratelimit.Config{
		Enabled:     true,
		MaxRequests: 1,
		Window:      time.Minute,
	})
	require.NoError(t, err)

	router := newTestRouter(t, limiter)
	body := `{"message_id":"m1","from":"+111","to":"+222","ts":"2025-01-15T10:00:00Z","text":"hi"}`

	first := httptest.NewRecorder()
	router.ServeHTTP(first, signedWebhookRequest(body))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, signedWebhookRequest(body))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.True(t, strings.Contains(second.Body.String(), "rate limit exceeded"))

	// Read endpoints are never throttled.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/messages", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
