// Package config handles configuration for the server component, including
// defaults, JSON overlay, environment overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Storage backend names accepted in StorageBackend.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds runtime settings for the office-tools account server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - StorageBackend: which credential-store backend to use (file, sqlite, postgres).
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN, depending on the backend.
//   - FileStoragePath: path of the JSON user file for the file backend.
//   - HashCost: bcrypt work factor; values below 10 are raised to 10.
//   - RequestTimeout: per-request deadline applied at the HTTP boundary.
type Config struct {
	EndpointAddr    string
	StorageBackend  string
	DatabaseDSN     string
	FileStoragePath string
	HashCost        int
	RequestTimeout  time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3088"
	c.StorageBackend = BackendSQLite
	c.DatabaseDSN = "users.db"
	c.FileStoragePath = "users.json"
	c.HashCost = 10
	c.RequestTimeout = 10 * time.Second
}

// Validate rejects configurations the app cannot start with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
