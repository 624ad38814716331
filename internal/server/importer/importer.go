// Package importer moves user records from the legacy JSON file store into a
// relational backend. The whole import runs in one transaction, and writes
// are insert-or-replace keyed by username, so a re-run (or an import of an
// already imported file) neither fails on duplicates nor duplicates rows.
package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guluwater/officetools-server/internal/dbx"
	"github.com/guluwater/officetools-server/internal/logging"
)

const sqliteUpsertQuery = `
INSERT INTO users (username, email, password, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (username) DO UPDATE SET
    email = excluded.email,
    password = excluded.password,
    created_at = excluded.created_at`

const postgresUpsertQuery = `
INSERT INTO users (username, email, password, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (username) DO UPDATE SET
    email = excluded.email,
    password = excluded.password,
    created_at = excluded.created_at`

// legacyUser mirrors one element of the JSON user file. Both created-at key
// spellings that occur in the wild are accepted.
type legacyUser struct {
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	CreatedAt      *time.Time `json:"created_at"`
	CreatedAtCamel *time.Time `json:"createdAt"`
}

func (u legacyUser) createdAt() time.Time {
	if u.CreatedAt != nil {
		return *u.CreatedAt
	}
	if u.CreatedAtCamel != nil {
		return *u.CreatedAtCamel
	}
	return time.Now().UTC()
}

// Importer upserts legacy file-store records into a relational destination.
type Importer struct {
	db          *sql.DB
	upsertQuery string
	encodeTime  func(time.Time) any
	logger      logging.Logger
}

// NewSQLiteImporter targets an SQLite destination. Timestamps are stored in
// the same text format the SQLite repository writes.
func NewSQLiteImporter(db *sql.DB, logger logging.Logger) *Importer {
	return &Importer{
		db:          db,
		upsertQuery: sqliteUpsertQuery,
		encodeTime:  func(t time.Time) any { return t.UTC().Format(time.RFC3339Nano) },
		logger:      logger.With("module", "importer"),
	}
}

// NewPostgresImporter targets a PostgreSQL destination.
func NewPostgresImporter(db *sql.DB, logger logging.Logger) *Importer {
	return &Importer{
		db:          db,
		upsertQuery: postgresUpsertQuery,
		encodeTime:  func(t time.Time) any { return t.UTC() },
		logger:      logger.With("module", "importer"),
	}
}

// Run reads every record from the JSON file at path and upserts it into the
// destination, preserving the original password hash and creation timestamp.
// Records without an email get the deterministic default the column-addition
// migration uses. Returns the number of imported records.
func (i *Importer) Run(ctx context.Context, path string) (int, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading source file: %w", err)
	}

	var records []legacyUser
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("error parsing source file: %w", err)
	}

	err = dbx.WithTx(ctx, i.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for n, rec := range records {
			if rec.Username == "" {
				return fmt.Errorf("record %d has no username", n)
			}

			email := rec.Email
			if email == "" {
				email = rec.Username + "@example.com"
			}

			_, err := tx.ExecContext(ctx, i.upsertQuery,
				rec.Username, email, rec.Password, i.encodeTime(rec.createdAt()))
			if err != nil {
				return fmt.Errorf("error importing user %q: %w", rec.Username, err)
			}

			i.logger.Info(ctx, "imported user", "username", rec.Username)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}
