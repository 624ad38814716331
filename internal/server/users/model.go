package users

import "time"

// User is a single account record. PasswordHash always holds a bcrypt hash,
// never the plaintext password. ID and CreatedAt are assigned by the
// repository on create and are immutable afterwards.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
