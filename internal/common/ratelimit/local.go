package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// localLimiter implements rate limiting using golang.org/x/time/rate
type localLimiter struct {
	mu       sync.Mutex
	config   Config
	limiters map[string]*limiterEntry

	// Global limiter for non-keyed operations
	globalLimiter *rate.Limiter

	lastCleanup time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// NewLocalLimiter creates a new in-process rate limiter
func NewLocalLimiter(config Config) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rl := &localLimiter{
		config:        config,
		limiters:      make(map[string]*limiterEntry),
		globalLimiter: newRateLimiter(config),
		lastCleanup:   time.Now(),
	}

	return rl, nil
}

// newRateLimiter converts the window-based config into a token bucket:
// refill spread over the window, burst of the full window allowance.
func newRateLimiter(config Config) *rate.Limiter {
	perSecond := float64(config.MaxRequests) / config.Window.Seconds()
	return rate.NewLimiter(rate.Limit(perSecond), config.MaxRequests)
}

func (rl *localLimiter) TryAcquire() bool {
	if !rl.config.Enabled {
		return true
	}
	return rl.globalLimiter.Allow()
}

func (rl *localLimiter) TryAcquireForKey(key string) bool {
	if !rl.config.Enabled {
		return true
	}
	return rl.getLimiterForKey(key).Allow()
}

// Health always succeeds for the in-process backend
func (rl *localLimiter) Health() error {
	return nil
}

// getLimiterForKey gets or creates a rate limiter for a specific key
func (rl *localLimiter) getLimiterForKey(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) > rl.config.CleanupPeriod {
		rl.cleanup()
	}

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: newRateLimiter(rl.config)}
		rl.limiters[key] = entry
	}
	entry.lastUsed = time.Now()

	return entry.limiter
}

// cleanup evicts idle entries; caller must hold the mutex.
func (rl *localLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupPeriod)
	for key, entry := range rl.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}

	// Hard cap to bound memory if eviction did not free enough
	if len(rl.limiters) > rl.config.MaxKeys {
		rl.limiters = make(map[string]*limiterEntry)
	}

	rl.lastCleanup = time.Now()
}
