package storage

import (
	"strings"

	"sms-ingest/internal/common/errors"
)

// GenericConfig is a simple map-based implementation of StorageConfig used
// to hand backend-agnostic settings to a registered factory.
type GenericConfig map[string]interface{}

func (gc GenericConfig) Validate() error {
	return nil
}

func (gc GenericConfig) GetType() string {
	if t, ok := gc["type"].(string); ok {
		return t
	}
	return "unknown"
}

func (gc GenericConfig) GetConnectionString() string {
	if cs, ok := gc["connection_string"].(string); ok {
		return cs
	}
	return ""
}

// NewStorage creates a storage adapter for the given DATABASE_URL. A
// "sqlite://" URL selects the SQLite backend with the remainder as file
// path; "postgres://" and "postgresql://" URLs select PostgreSQL. The
// backend package must be imported so its factory registers itself.
func NewStorage(databaseURL string) (Storage, error) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return Create("sqlite", GenericConfig{
			"type":              "sqlite",
			"connection_string": strings.TrimPrefix(databaseURL, "sqlite://"),
		})

	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Create("postgres", GenericConfig{
			"type":              "postgres",
			"connection_string": databaseURL,
		})

	default:
		return nil, errors.ConfigError("unsupported DATABASE_URL: " + databaseURL)
	}
}
