// Package app wires configuration, storage, Redis and the HTTP surface
// together and owns process startup and shutdown.
package app

import (
	"sms-ingest/internal/common/logging"
	"sms-ingest/internal/config"
	"sms-ingest/internal/metrics"
	"sms-ingest/internal/payload"
	"sms-ingest/internal/redis"
	"sms-ingest/internal/signature"
	"sms-ingest/internal/storage"
)

// App holds all the application dependencies
type App struct {
	Config      *config.Config
	Storage     storage.Storage
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Verifier    *signature.Verifier
	Validator   *payload.Validator
	Logger      logging.Logger
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		Metrics:   metrics.New(),
		Verifier:  signature.NewVerifier(cfg.WebhookSecret),
		Validator: payload.NewValidator(),
		Logger:    logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	if err := app.initializeStorage(); err != nil {
		return nil, err
	}

	if err := app.initializeRedis(); err != nil {
		// Redis only backs distributed rate limiting; the ingestion path
		// works without it.
		app.Logger.Warn("Redis initialization failed, continuing without Redis",
			logging.Field{Key: "error", Value: err.Error()})
	}

	return app, nil
}

// Cleanup releases all resources
func (app *App) Cleanup() {
	if app.Storage != nil {
		app.Storage.Close()
	}
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
