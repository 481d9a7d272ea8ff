// Package ratelimit provides keyed rate limiting for the webhook endpoint,
// either process-local or Redis-backed for multi-replica deployments.
package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the main interface for rate limiting
type Limiter interface {
	// TryAcquire attempts to acquire a token for the global limit
	TryAcquire() bool

	// TryAcquireForKey attempts to acquire a token for a specific key,
	// e.g. a client IP
	TryAcquireForKey(key string) bool

	// Health reports whether the limiter backend is reachable
	Health() error
}

// RedisInterface defines the minimal Redis interface needed for rate limiting
type RedisInterface interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
	Health() error
}
