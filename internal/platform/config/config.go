// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Storage selection:

  - DATABASE_URL empty: catalogue, board and users live in process memory.
  - REDIS_URL empty: sessions live in process memory.

Both in-memory modes lose all state on restart.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Credential schemes accepted by PASSWORD_SCHEME.
const (
	// PasswordSchemePlain stores and compares passwords verbatim.
	// Parity only: never deploy with it.
	PasswordSchemePlain = "plain"

	// PasswordSchemeBcrypt stores bcrypt hashes.
	PasswordSchemeBcrypt = "bcrypt"
)

// minSecretLength is the shortest SESSION_SECRET accepted for HS256 signing.
const minSecretLength = 16

// # Configuration Schema

// Config holds all runtime configuration for the Bookhub API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL). Optional.
	DatabaseURL string `env:"DATABASE_URL"`

	// Key-Value Cache (Redis). Optional, holds sessions when set.
	RedisURL string `env:"REDIS_URL"`

	// Session token signing and lifetime
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// PasswordScheme selects how credentials are stored and compared.
	PasswordScheme string `env:"PASSWORD_SCHEME" envDefault:"plain"`

	// SeedFixtures loads the static books, users and discussions at startup.
	SeedFixtures bool `env:"SEED_FIXTURES" envDefault:"true"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"bookhub.app"`
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < minSecretLength {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d characters", minSecretLength)
	}

	switch c.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("config: unknown PASSWORD_SCHEME %q", c.PasswordScheme)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the domain suffix trusted by the CORS middleware.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}

// UsesPostgres reports whether a relational store is configured.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// UsesRedis reports whether sessions are kept in Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}
