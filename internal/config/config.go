// Package config reads application configuration from the environment,
// with an optional .env file for development.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTExpire   time.Duration
	Environment string

	// Optional SSO login. Disabled unless all OIDC fields are set.
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from environment variables. A .env file is
// honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        getEnv("ADDR", ":5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTExpire:   24 * time.Hour,
		Environment: getEnv("ENVIRONMENT", "development"),

		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	if v := os.Getenv("JWT_EXPIRE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("JWT_EXPIRE must be a duration like 24h")
		}
		cfg.JWTExpire = d
	}

	return cfg, nil
}

// Development reports whether internal error detail may be exposed.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// SSOEnabled reports whether the optional OIDC login is configured.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
