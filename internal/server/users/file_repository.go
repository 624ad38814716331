package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/guluwater/officetools-server/internal/common"
)

// FileRepository stores the whole user collection as one JSON array in a
// single file. A process-wide mutex serializes every read-modify-write, and
// writes go through a temp file plus rename, so concurrent registrations
// cannot clobber each other.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

type fileUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("file storage path is required")
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) load() ([]fileUser, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []fileUser{}, nil
		}
		return nil, fmt.Errorf("error reading user file: %w", err)
	}

	var records []fileUser
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing user file: %w", err)
	}
	return records, nil
}

func (r *FileRepository) save(records []fileUser) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding user file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing user file: %w", err)
	}
	return nil
}

func (r *FileRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == user.Username || (user.Email != "" && rec.Email == user.Email) {
			return nil, common.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	rec := fileUser{
		ID:        strconv.FormatInt(now.UnixNano(), 10),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.PasswordHash,
		CreatedAt: now,
	}

	records = append(records, rec)
	if err := r.save(records); err != nil {
		return nil, err
	}

	user.ID = rec.ID
	user.CreatedAt = rec.CreatedAt
	return user, nil
}

func (r *FileRepository) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.Username == identifier || (rec.Email != "" && rec.Email == identifier) {
			return &User{
				ID:           rec.ID,
				Username:     rec.Username,
				Email:        rec.Email,
				PasswordHash: rec.Password,
				CreatedAt:    rec.CreatedAt,
			}, nil
		}
	}

	return nil, common.ErrNotFound
}

func (r *FileRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	result := make([]*User, 0, len(records))
	for _, rec := range records {
		result = append(result, &User{
			ID:        rec.ID,
			Username:  rec.Username,
			Email:     rec.Email,
			CreatedAt: rec.CreatedAt,
		})
	}
	return result, nil
}

// Migrate backfills a deterministic default email for records written by the
// pre-email schema. The file is rewritten only when something changed, so a
// second run is a no-op.
func (r *FileRepository) Migrate(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	changed := false
	for i := range records {
		if records[i].Email == "" {
			records[i].Email = records[i].Username + "@example.com"
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return r.save(records)
}
