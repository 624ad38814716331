package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/guluwater/officetools-server/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Timeouts are given as integer seconds. After unmarshalling, the set
// fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string `json:"endpoint_addr"`
	StorageBackend        string `json:"storage_backend"`
	DatabaseDSN           string `json:"database_dsn"`
	FileStoragePath       string `json:"file_storage_path"`
	HashCost              int    `json:"hash_cost"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, nothing is loaded. Fields absent from the file keep their
// previous values. An unreadable or invalid file panics: a config file that
// was explicitly pointed at must be usable.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
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
