package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/guluwater/officetools-server/internal/filex"
	"github.com/guluwater/officetools-server/internal/server/migrations"
	"github.com/guluwater/officetools-server/internal/server/users"
)

type SQLiteRepositoryManager struct {
	db    *sql.DB
	users users.Repository
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	sub, err := fs.Sub(migrations.Migrations, "sqlite")
	if err != nil {
		return err
	}

	goose.SetBaseFS(sub)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewSQLiteRepositoryManager opens (or creates) the SQLite database file.
// WAL and a busy timeout keep concurrent request handlers from tripping over
// each other on the single database file.
func NewSQLiteRepositoryManager(path string) (*SQLiteRepositoryManager, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	repo, err := users.NewSQLiteRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	return &SQLiteRepositoryManager{db: db, users: repo}, nil
}
