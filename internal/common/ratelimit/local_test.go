package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"disabled skips validation", Config{Enabled: false}, false},
		{"valid local", Config{Enabled: true, MaxRequests: 10, Window: time.Minute}, false},
		{"zero max requests", Config{Enabled: true, MaxRequests: 0, Window: time.Minute}, true},
		{"unknown backend", Config{Enabled: true, MaxRequests: 10, Window: time.Minute, Type: "bogus"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_Defaults(t *testing.T) {
	config := Config{Enabled: true, MaxRequests: 10, Window: time.Minute}
	require.NoError(t, config.Validate())

	assert.Equal(t, BackendLocal, config.Type)
	assert.Equal(t, 10000, config.MaxKeys)
	assert.Equal(t, 5*time.Minute, config.CleanupPeriod)
}

func TestLocalLimiter_KeyedLimits(t *testing.T) {
	limiter, err := NewLocalLimiter(Config{
		Enabled:     true,
		MaxRequests: 3,
		Window:      time.Minute,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.TryAcquireForKey("1.2.3.4"), "request %d within burst should pass", i)
	}
	assert.False(t, limiter.TryAcquireForKey("1.2.3.4"), "request over the window allowance should be rejected")

	// A different key has its own allowance.
	assert.True(t, limiter.TryAcquireForKey("5.6.7.8"))
}

func TestLocalLimiter_Disabled(t *testing.T) {
	limiter, err := NewLocalLimiter(Config{Enabled: false})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.TryAcquireForKey("1.2.3.4"))
	}
}

func TestHTTPMiddleware(t *testing.T) {
	limiter, err := NewLocalLimiter(Config{
		Enabled:     true,
		MaxRequests: 2,
		Window:      time.Minute,
	})
	require.NoError(t, err)

	handler := HTTPMiddleware(limiter, ClientIPKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest("POST", "/webhook", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("1.2.3.4:1111"))
	assert.Equal(t, http.StatusOK, do("1.2.3.4:2222"))
	assert.Equal(t, http.StatusTooManyRequests, do("1.2.3.4:3333"))
	assert.Equal(t, http.StatusOK, do("9.9.9.9:1111"), "other clients are unaffected")
}

func TestClientIPKey(t *testing.T) {
	req := httptest.NewRequest("POST", "/webhook", nil)
	req.RemoteAddr = "1.2.3.4:5678"
	assert.Equal(t, "1.2.3.4", ClientIPKey(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	assert.Equal(t, "10.0.0.1", ClientIPKey(req))
}
