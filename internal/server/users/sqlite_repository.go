package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/guluwater/officetools-server/internal/common"
	"github.com/guluwater/officetools-server/internal/dbx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository persists users in an embedded SQLite database. Uniqueness
// of username and email is enforced by the schema, so duplicate registrations
// fail inside the insert even under concurrency.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) (*SQLiteRepository, error) {
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (username, email, password, created_at)
         VALUES (?, ?, ?, ?)`

	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, now.Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted id: %w", err)
	}

	user.ID = strconv.FormatInt(id, 10)
	user.CreatedAt = now
	return user, nil
}

func (r *SQLiteRepository) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	query :=
		`SELECT id, username, email, password, created_at FROM users
		 WHERE username = ? OR email = ?`

	var (
		id        int64
		createdAt string
	)
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, identifier, identifier).
		Scan(&id, &user.Username, &user.Email, &user.PasswordHash, &createdAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	user.ID = strconv.FormatInt(id, 10)
	user.CreatedAt = parseSQLiteTime(createdAt)
	return user, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*User, error) {
	query :=
		`SELECT id, username, email, created_at FROM users
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*User
	for rows.Next() {
		var (
			id        int64
			createdAt string
		)
		user := &User{}
		if err := rows.Scan(&id, &user.Username, &user.Email, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		user.ID = strconv.FormatInt(id, 10)
		user.CreatedAt = parseSQLiteTime(createdAt)
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}

// parseSQLiteTime accepts the formats a users.db may contain: RFC3339 written
// by this code and the "YYYY-MM-DD HH:MM:SS" produced by CURRENT_TIMESTAMP in
// databases created by earlier schema versions.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT ||
		code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
