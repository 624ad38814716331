package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guluwater/officetools-server/internal/logging"
	"github.com/guluwater/officetools-server/internal/server/shared/db"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestDB(t *testing.T) *db.SQLiteRepositoryManager {
	t.Helper()
	m, err := db.NewSQLiteRepositoryManager(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return m
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImporter_Run(t *testing.T) {
	ctx := context.Background()
	m := newTestDB(t)

	src := writeSource(t, `[
		{"username": "alice", "email": "alice@x.com", "password": "hash-a",
		 "created_at": "2023-04-01T10:00:00Z"},
		{"username": "bob", "password": "hash-b",
		 "createdAt": "2023-05-02T11:30:00Z"}
	]`)

	imp := NewSQLiteImporter(m.Conn(), testLogger())
	n, err := imp.Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	alice, err := m.Users().GetByIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", alice.Email)
	assert.Equal(t, "hash-a", alice.PasswordHash)
	assert.Equal(t, time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC), alice.CreatedAt.UTC())

	// missing email gets the deterministic default, camelCase timestamp is read
	bob, err := m.Users().GetByIdentifier(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", bob.Email)
	assert.Equal(t, time.Date(2023, 5, 2, 11, 30, 0, 0, time.UTC), bob.CreatedAt.UTC())
}

func TestImporter_RunTwiceDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	m := newTestDB(t)

	src := writeSource(t, `[
		{"username": "alice", "email": "alice@x.com", "password": "hash-a",
		 "created_at": "2023-04-01T10:00:00Z"}
	]`)

	imp := NewSQLiteImporter(m.Conn(), testLogger())
	for range 2 {
		_, err := imp.Run(ctx, src)
		require.NoError(t, err)
	}

	list, err := m.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC), list[0].CreatedAt.UTC())
}

func TestImporter_ReplacesExistingRow(t *testing.T) {
	ctx := context.Background()
	m := newTestDB(t)

	imp := NewSQLiteImporter(m.Conn(), testLogger())

	first := writeSource(t, `[
		{"username": "alice", "email": "old@x.com", "password": "old-hash",
		 "created_at": "2023-01-01T00:00:00Z"}
	]`)
	_, err := imp.Run(ctx, first)
	require.NoError(t, err)

	second := writeSource(t, `[
		{"username": "alice", "email": "new@x.com", "password": "new-hash",
		 "created_at": "2024-06-15T12:00:00Z"}
	]`)
	_, err = imp.Run(ctx, second)
	require.NoError(t, err)

	alice, err := m.Users().GetByIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", alice.Email)
	assert.Equal(t, "new-hash", alice.PasswordHash)
	assert.Equal(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), alice.CreatedAt.UTC())

	list, err := m.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestImporter_BadInput(t *testing.T) {
	ctx := context.Background()
	m := newTestDB(t)
	imp := NewSQLiteImporter(m.Conn(), testLogger())

	t.Run("missing file", func(t *testing.T) {
		_, err := imp.Run(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := imp.Run(ctx, writeSource(t, `{not json`))
		assert.Error(t, err)
	})

	t.Run("record without username", func(t *testing.T) {
		_, err := imp.Run(ctx, writeSource(t, `[{"password": "x"}]`))
		assert.Error(t, err)
	})
}
