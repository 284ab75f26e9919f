// Copyright (c) 2026 Atimus. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, TokenService) via constructors.
  - Lenient secrets: JWT_SECRET and RESET_TOKEN_PEPPER are optional at boot;
    their absence only fails the operations that need them.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the edital API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis) — anti-flood counters for login/reset endpoints.
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic secrets. Deliberately NOT required: a process without them
	// must still boot, and only the operations that need them fail (with a
	// CONFIGURATION_ERROR) when they are missing.
	JWTSecret   string `env:"JWT_SECRET"`
	ResetPepper string `env:"RESET_TOKEN_PEPPER"`

	// Public URLs used to compose links in outbound emails and responses.
	BaseAPIURL       string `env:"BASE_API_URL"        envDefault:"http://127.0.0.1:8000"`
	FrontendURL      string `env:"FRONTEND_URL"        envDefault:"https://editais.atimus.agr.br/index.html?id="`
	FrontendLoginURL string `env:"FRONTEND_LOGIN_URL"  envDefault:"https://login.atimus.agr.br/index.html"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma separated). The production frontend domain is always allowed.
func (c *Config) AllowedOrigins() []string {
	if strings.TrimSpace(c.ExtraOrigins) == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
