// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSecretLength = 32

// Config is the server configuration.
type Config struct {
	Addr        string        `env:"SANTA_ADDR"         envDefault:":8080"`
	DBPath      string        `env:"SANTA_DB_PATH"      envDefault:"./data/santa.db"`
	JWTSecret   string        `env:"SANTA_JWT_SECRET"`
	SessionTTL  time.Duration `env:"SANTA_SESSION_TTL"  envDefault:"24h"`
	AdminSecret string        `env:"SANTA_ADMIN_SECRET"`
	MetricsPath string        `env:"SANTA_METRICS_PATH" envDefault:"/metrics"`
	CORSOrigin  string        `env:"SANTA_CORS_ORIGIN"  envDefault:"*"`
	LogLevel    string        `env:"LOG_LEVEL"          envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT"         envDefault:"tint"`
}

// Load reads an optional .env file, then parses the environment.
// Variables already set in the environment win over .env entries.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f) // missing files are fine
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("SANTA_ADDR is required"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("SANTA_DB_PATH is required"))
	}
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("SANTA_JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if c.AdminSecret != "" && len(c.AdminSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("SANTA_ADMIN_SECRET must be empty or at least %d characters", minSecretLength))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SANTA_SESSION_TTL must be positive"))
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, errors.New("SANTA_METRICS_PATH must start with /"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "tint", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be tint or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
