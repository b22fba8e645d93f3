package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	StoragePath     string        `env:"STORAGE_PATH" envDefault:"storefront.db"`
	CatalogPath     string        `env:"CATALOG_PATH"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Parse reads configuration from the environment, applying defaults.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
