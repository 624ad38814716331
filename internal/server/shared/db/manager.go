// Package db wires the credential store to a concrete storage backend and
// owns the migration step that must complete before the server starts
// serving requests.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guluwater/officetools-server/internal/server/config"
	"github.com/guluwater/officetools-server/internal/server/users"
)

// RepositoryManager owns a storage backend: its handle, its repositories and
// its migrations. RunMigrations must be called (and succeed) before any
// request is served.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn exposes the raw handle for out-of-band tooling (the importer).
	// The file backend has no handle and returns nil.
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}

// NewRepositoryManager selects the backend from configuration. Service logic
// never branches on the active backend; this is the single switch point.
func NewRepositoryManager(cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return NewFileRepositoryManager(cfg.FileStoragePath)
	case config.BackendSQLite:
		return NewSQLiteRepositoryManager(cfg.DatabaseDSN)
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
