package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":6060")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("FILE_STORAGE_PATH", "/tmp/users.json")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, c.EndpointAddr, ":6060")
	assert.Equal(t, c.StorageBackend, BackendFile)
	assert.Equal(t, c.FileStoragePath, "/tmp/users.json")
	assert.Equal(t, c.RequestTimeout, 3*time.Second)

	// untouched fields keep defaults
	assert.Equal(t, c.DatabaseDSN, "users.db")
	assert.Equal(t, c.HashCost, 10)
}

func TestParseEnv_UnsetIsNoop(t *testing.T) {
	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, c.EndpointAddr, ":3088")
	assert.Equal(t, c.StorageBackend, BackendSQLite)
}
