// Package users implements the credential store: the user model, the storage
// interface with its file, SQLite and PostgreSQL backends, and the service
// exposing register/login/list operations on top of it.
package users

import (
	"context"
)

// Repository is the persistence contract for user records. All three backends
// implement it; the service never depends on which one is active.
//
// Duplicate detection happens inside the repository, under its uniqueness
// guarantee (unique constraint or check under lock), so concurrent
// registrations cannot both succeed.
type Repository interface {
	// Create persists a new user, assigning ID and CreatedAt.
	// Returns common.ErrAlreadyExists if the username or email is taken.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByIdentifier finds a user whose username or email exactly equals
	// identifier. Returns common.ErrNotFound on a miss.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)

	// List returns all users in insertion order. The password hash is not
	// included in the projection.
	List(ctx context.Context) ([]*User, error)
}
