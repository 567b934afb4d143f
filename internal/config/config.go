// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// Config is the server configuration, parsed from environment variables.
// A .env file is honored via godotenv autoload in main.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"./data/quicksplit.db"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenDuration string `env:"TOKEN_DURATION" envDefault:"24h"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Default split policy for new receipts. Rates are decimal strings so
	// the policy enters the engine without float conversion.
	DefaultTaxEnabled bool   `env:"DEFAULT_TAX_ENABLED" envDefault:"true"`
	DefaultTaxRate    string `env:"DEFAULT_TAX_RATE" envDefault:"0.08"`
	DefaultTipRate    string `env:"DEFAULT_TIP_RATE" envDefault:"0.15"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// SplitDefaults converts the configured default policy into the domain form.
func (c Config) SplitDefaults() (models.SplitConfig, error) {
	taxRate, err := decimal.NewFromString(c.DefaultTaxRate)
	if err != nil {
		return models.SplitConfig{}, fmt.Errorf("invalid DEFAULT_TAX_RATE %q: %w", c.DefaultTaxRate, err)
	}
	tipRate, err := decimal.NewFromString(c.DefaultTipRate)
	if err != nil {
		return models.SplitConfig{}, fmt.Errorf("invalid DEFAULT_TIP_RATE %q: %w", c.DefaultTipRate, err)
	}
	return models.SplitConfig{
		TaxEnabled: c.DefaultTaxEnabled,
		TaxRate:    taxRate,
		TipRate:    tipRate,
	}, nil
}
