package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	counts  map[string]int
	err     error
	healthy bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{counts: make(map[string]int), healthy: true}
}

func (f *fakeRedis) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	if f.err != nil {
		return false, 0, f.err
	}
	count := f.counts[key]
	f.counts[key] = count + 1
	return count < limit, count, nil
}

func (f *fakeRedis) Health() error {
	if !f.healthy {
		return errors.New("redis down")
	}
	return nil
}

func TestDistributedLimiter_KeyedLimits(t *testing.T) {
	rdb := newFakeRedis()
	limiter, err := NewDistributedLimiter(Config{
		Enabled:     true,
		MaxRequests: 2,
		Window:      time.Minute,
		Type:        BackendDistributed,
		KeyPrefix:   "rl:",
	}, rdb)
	require.NoError(t, err)

	assert.True(t, limiter.TryAcquireForKey("1.2.3.4"))
	assert.True(t, limiter.TryAcquireForKey("1.2.3.4"))
	assert.False(t, limiter.TryAcquireForKey("1.2.3.4"))

	// Keys are prefixed before reaching Redis.
	assert.Contains(t, rdb.counts, "rl:1.2.3.4")
}

func TestDistributedLimiter_FailsOpen(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("connection refused")

	limiter, err := NewDistributedLimiter(Config{
		Enabled:     true,
		MaxRequests: 1,
		Window:      time.Minute,
		Type:        BackendDistributed,
	}, rdb)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.TryAcquireForKey("1.2.3.4"), "redis errors must not reject traffic")
	}
}

func TestDistributedLimiter_RequiresClient(t *testing.T) {
	_, err := NewDistributedLimiter(Config{
		Enabled:     true,
		MaxRequests: 1,
		Window:      time.Minute,
		Type:        BackendDistributed,
	}, nil)
	assert.Error(t, err)
}

func TestDistributedLimiter_Health(t *testing.T) {
	rdb := newFakeRedis()
	limiter, err := NewDistributedLimiter(Config{
		Enabled:     true,
		MaxRequests: 1,
		Window:      time.Minute,
		Type:        BackendDistributed,
	}, rdb)
	require.NoError(t, err)

	assert.NoError(t, limiter.Health())

	rdb.healthy = false
	assert.Error(t, limiter.Health())
}
