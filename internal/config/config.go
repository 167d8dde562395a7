// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings for the server.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"./data/cartmates.db"`

	// JWTSecret signs session tokens. Must be set in production.
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`

	// TokenTTL is how long issued session tokens remain valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"720h"`

	// CORSOrigin is the allowed browser origin for the API.
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// AppBaseURL is the client base URL embedded in password reset links.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// SMTP settings. When SMTPHost is empty, outgoing mail is logged instead
	// of sent (development mode).
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM" envDefault:"no-reply@cartmates.local"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
