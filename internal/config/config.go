// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the townhall server.
type Config struct {
	Addr   string `env:"TOWNHALL_ADDR" envDefault:":8080"`
	DBPath string `env:"TOWNHALL_DB_PATH" envDefault:"data/townhall.db"`

	// AnthropicAPIKey enables real AI responses; when empty the
	// orchestrator degrades to placeholder dialogue.
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	MaxRounds        int     `env:"TOWNHALL_MAX_ROUNDS" envDefault:"8"`
	EventProbability float64 `env:"TOWNHALL_EVENT_PROBABILITY" envDefault:"0.25"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.MaxRounds < 1 {
		return nil, fmt.Errorf("TOWNHALL_MAX_ROUNDS must be >= 1, got %d", cfg.MaxRounds)
	}
	if cfg.EventProbability < 0 || cfg.EventProbability > 1 {
		return nil, fmt.Errorf("TOWNHALL_EVENT_PROBABILITY must be in [0,1], got %g", cfg.EventProbability)
	}
	return cfg, nil
}
