package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
)

// New creates a new rate limiter based on the configuration
func New(config Config, redisClient RedisInterface) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case BackendDistributed:
		return NewDistributedLimiter(config, redisClient)
	default:
		return NewLocalLimiter(config)
	}
}

// ClientIPKey extracts the client IP from a request for per-IP limiting
func ClientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HTTPMiddleware creates an HTTP middleware for rate limiting
func HTTPMiddleware(limiter Limiter, keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var allowed bool
			if key := keyFunc(r); key != "" {
				allowed = limiter.TryAcquireForKey(key)
			} else {
				allowed = limiter.TryAcquire()
			}

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"detail": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
