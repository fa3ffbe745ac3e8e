// Copyright (c) 2026 Fedorgrin Lab
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"CLOUD_DB_PATH" envDefault:"./data/cloud.db"`
	SessionSecret string `env:"CLOUD_SESSION_SECRET,required"`
	ServerHost    string `env:"CLOUD_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CLOUD_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CLOUD_ENV" envDefault:"development"`
	LogLevel      string `env:"CLOUD_LOG_LEVEL" envDefault:"info"`

	// AI suggestion configuration. When the API key is absent the
	// suggestion endpoint fails closed rather than returning empty results.
	GeminiAPIKey string `env:"CLOUD_GEMINI_API_KEY"`
	GeminiModel  string `env:"CLOUD_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SuggestionsEnabled returns true if an AI API credential is configured.
func (c Config) SuggestionsEnabled() bool {
	return c.GeminiAPIKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("CLOUD_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
