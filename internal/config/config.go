package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Remote assistant collaborator
	AssistantURL     string        `env:"ASSISTANT_URL,required"`
	AssistantAPIKey  string        `env:"ASSISTANT_API_KEY"`
	AssistantTimeout time.Duration `env:"ASSISTANT_TIMEOUT" envDefault:"30s"`

	// Session lifecycle
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CORS
	FrontendURL string `env:"FRONTEND_URL" envDefault:"*"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// HasDatabase reports whether a persistent store was configured. Without one
// the service runs on the in-memory store only.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
