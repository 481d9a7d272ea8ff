package app

import (
	"strconv"
	"time"

	"sms-ingest/internal/common/logging"
	"sms-ingest/internal/common/ratelimit"
)

// initializeRateLimiter builds the webhook rate limiter from configuration.
// It returns nil when rate limiting is disabled. With Redis configured the
// limit is shared across replicas; otherwise it is process-local.
func (app *App) initializeRateLimiter() ratelimit.Limiter {
	if !app.Config.RateLimitEnabled {
		return nil
	}

	maxRequests, _ := strconv.Atoi(app.Config.RateLimitDefault)
	if maxRequests <= 0 {
		maxRequests = 100
	}

	window, _ := time.ParseDuration(app.Config.RateLimitWindow)
	if window <= 0 {
		window = time.Minute
	}

	cfg := ratelimit.Config{
		Enabled:     true,
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "ratelimit:webhook:",
	}

	if app.RedisClient != nil {
		cfg.Type = ratelimit.BackendDistributed
		if limiter, err := ratelimit.New(cfg, app.RedisClient); err == nil {
			app.Logger.Info("Rate limiting: distributed",
				logging.Field{Key: "limit", Value: maxRequests},
				logging.Field{Key: "window", Value: window.String()},
			)
			return limiter
		}
		app.Logger.Warn("Distributed rate limiter unavailable, falling back to local")
	}

	cfg.Type = ratelimit.BackendLocal
	limiter, err := ratelimit.New(cfg, nil)
	if err != nil {
		app.Logger.Warn("Rate limiter initialization failed, continuing without rate limiting",
			logging.Field{Key: "error", Value: err.Error()})
		return nil
	}

	app.Logger.Info("Rate limiting: local",
		logging.Field{Key: "limit", Value: maxRequests},
		logging.Field{Key: "window", Value: window.String()},
	)
	return limiter
}
