package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guluwater/officetools-server/internal/filex"
	"github.com/guluwater/officetools-server/internal/server/users"
)

type FileRepositoryManager struct {
	repo *users.FileRepository
}

func (m *FileRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *FileRepositoryManager) Users() users.Repository {
	return m.repo
}

// Close is a no-op: the file backend holds no handle between operations.
func (m *FileRepositoryManager) Close() error {
	return nil
}

// RunMigrations backfills default emails into records written by the
// pre-email schema. Idempotent.
func (m *FileRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.repo.Migrate(ctx)
}

func NewFileRepositoryManager(path string) (*FileRepositoryManager, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	repo, err := users.NewFileRepository(path)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}
	return &FileRepositoryManager{repo: repo}, nil
}
