package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// distributedLimiter implements Redis-backed distributed rate limiting
type distributedLimiter struct {
	config      Config
	redisClient RedisInterface
}

// NewDistributedLimiter creates a new distributed rate limiter
func NewDistributedLimiter(config Config, redisClient RedisInterface) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required for distributed rate limiter")
	}

	return &distributedLimiter{
		config:      config,
		redisClient: redisClient,
	}, nil
}

func (rl *distributedLimiter) TryAcquire() bool {
	return rl.TryAcquireForKey("global")
}

func (rl *distributedLimiter) TryAcquireForKey(key string) bool {
	if !rl.config.Enabled {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	redisKey := rl.config.KeyPrefix + key

	allowed, _, err := rl.redisClient.CheckRateLimit(ctx, redisKey, rl.config.MaxRequests, rl.config.Window)
	if err != nil {
		// Fail open: an unreachable Redis must not take the webhook
		// endpoint down with it.
		return true
	}

	return allowed
}

func (rl *distributedLimiter) Health() error {
	return rl.redisClient.Health()
}
