package app

import (
	"fmt"
	"net/url"

	"sms-ingest/internal/common/logging"
	"sms-ingest/internal/storage"

	// Register the storage backends.
	_ "sms-ingest/internal/storage/postgres"
	_ "sms-ingest/internal/storage/sqlite"
)

func (app *App) initializeStorage() error {
	store, err := storage.NewStorage(app.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.Logger.Info("Storage initialized", logging.Field{Key: "url", Value: redactDatabaseURL(app.Config.DatabaseURL)})
	app.Storage = store
	return nil
}

// redactDatabaseURL strips credentials before the URL reaches a log line.
func redactDatabaseURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	return parsed.String()
}
