package postgres

import (
	"fmt"
	"net/url"
)

type Config struct {
	URL string
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("PostgreSQL URL is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid PostgreSQL URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("PostgreSQL URL must use the postgres:// scheme")
	}

	return nil
}

func (c *Config) GetType() string {
	return "postgres"
}

func (c *Config) GetConnectionString() string {
	return c.URL
}
