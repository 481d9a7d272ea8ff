package ratelimit

import (
	"fmt"
	"time"
)

// BackendType defines the rate limiter backend
type BackendType string

const (
	BackendLocal       BackendType = "local"
	BackendDistributed BackendType = "distributed"
)

// Config represents rate limiter configuration. Limits are expressed as
// MaxRequests per Window, mirroring the RATE_LIMIT_DEFAULT and
// RATE_LIMIT_WINDOW environment settings.
type Config struct {
	Enabled     bool          `json:"enabled"`
	MaxRequests int           `json:"max_requests"`
	Window      time.Duration `json:"window"`
	Type        BackendType   `json:"type"`

	// Distributed backend settings
	KeyPrefix string `json:"key_prefix,omitempty"`

	// Cleanup settings for local limiters
	MaxKeys       int           `json:"max_keys,omitempty"`
	CleanupPeriod time.Duration `json:"cleanup_period,omitempty"`
}

// Validate validates the rate limiter configuration and fills defaults.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive")
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}

	if c.Type == "" {
		c.Type = BackendLocal
	}

	switch c.Type {
	case BackendLocal:
		if c.MaxKeys <= 0 {
			c.MaxKeys = 10000
		}
		if c.CleanupPeriod <= 0 {
			c.CleanupPeriod = 5 * time.Minute
		}
	case BackendDistributed:
		if c.KeyPrefix == "" {
			c.KeyPrefix = "ratelimit:"
		}
	default:
		return fmt.Errorf("unsupported rate limiter backend type: %s", c.Type)
	}

	return nil
}
