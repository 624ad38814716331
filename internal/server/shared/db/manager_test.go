package db

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guluwater/officetools-server/internal/server/config"
	"github.com/guluwater/officetools-server/internal/server/migrations"
	"github.com/guluwater/officetools-server/internal/server/users"
)

func TestNewRepositoryManager_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"file", func(c *config.Config) {
			c.StorageBackend = config.BackendFile
			c.FileStoragePath = filepath.Join(dir, "users.json")
		}, false},
		{"sqlite", func(c *config.Config) {
			c.StorageBackend = config.BackendSQLite
			c.DatabaseDSN = filepath.Join(dir, "users.db")
		}, false},
		{"unknown", func(c *config.Config) {
			c.StorageBackend = "cassandra"
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c config.Config
			c.LoadDefaults()
			tc.mutate(&c)

			m, err := NewRepositoryManager(&c)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, m.Users())
			m.Close()
		})
	}
}

func TestSQLiteManager_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLiteRepositoryManager(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.RunMigrations(ctx))

	_, err = m.Users().Create(ctx, &users.User{
		Username: "alice", Email: "alice@x.com", PasswordHash: "hash",
	})
	require.NoError(t, err)

	list, err := m.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// A database stopped at the pre-email schema version gets the email column
// added and backfilled on the next run, exactly once.
func TestSQLiteMigration_BackfillsLegacyRows(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLiteRepositoryManager(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	defer m.Close()

	sub, err := fs.Sub(migrations.Migrations, "sqlite")
	require.NoError(t, err)
	goose.SetBaseFS(sub)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpToContext(ctx, m.Conn(), ".", 1))

	_, err = m.Conn().ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, "legacy", "old-hash")
	require.NoError(t, err)

	require.NoError(t, m.RunMigrations(ctx))

	user, err := m.Users().GetByIdentifier(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "legacy@example.com", user.Email)
	assert.Equal(t, "old-hash", user.PasswordHash)

	// running again changes nothing
	require.NoError(t, m.RunMigrations(ctx))
	list, err := m.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFileManager_MigrateOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	m, err := NewFileRepositoryManager(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	require.NoError(t, m.RunMigrations(ctx))
	assert.Nil(t, m.Conn())
	require.NoError(t, m.Close())
}
