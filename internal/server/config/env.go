package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	EndpointAddr          string `env:"ADDRESS"`
	StorageBackend        string `env:"STORAGE_BACKEND"`
	DatabaseDSN           string `env:"DATABASE_DSN"`
	FileStoragePath       string `env:"FILE_STORAGE_PATH"`
	HashCost              int    `env:"HASH_COST"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS"`
}

// parseEnv overlays configuration values from environment variables. Unset
// variables keep the previous values.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.StorageBackend != "" {
		config.StorageBackend = c.StorageBackend
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.FileStoragePath != "" {
		config.FileStoragePath = c.FileStoragePath
	}
	if c.HashCost != 0 {
		config.HashCost = c.HashCost
	}
	if c.RequestTimeoutSeconds != 0 {
		config.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	}
}
