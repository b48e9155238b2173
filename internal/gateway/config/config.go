package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the gateway module.
type Config struct {
	// MongoDB configuration
	MongoDBURI   string `env:"MONGODB_URI"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"gateway"`

	// Static bearer-token allowlist, comma-separated.
	APITokens []string `env:"API_TOKENS" envSeparator:","`

	// HTTP server configuration
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         string        `env:"SERVER_PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load gateway configuration from environment: " + err.Error())
	}

	// Trim whitespace around tokens so "a, b" and "a,b" behave the same.
	tokens := cfg.APITokens[:0]
	for _, token := range cfg.APITokens {
		if t := strings.TrimSpace(token); t != "" {
			tokens = append(tokens, t)
		}
	}
	cfg.APITokens = tokens

	if cfg.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI environment variable is not set")
	}
	if len(cfg.APITokens) == 0 {
		return nil, errors.New("API_TOKENS environment variable is not set")
	}

	return cfg, nil
}

// ListenAddr returns the host:port address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.Host + ":" + c.Port
}
