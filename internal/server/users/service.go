package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/guluwater/officetools-server/internal/common"
)

// minHashCost is the lowest accepted bcrypt work factor.
const minHashCost = 10

// dummyHash keeps the bcrypt comparison cost on the login path even when the
// identifier is unknown, so the two failure modes are not distinguishable by
// timing either.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service exposes register/login/list operations over a Repository. It is
// stateless per request: no sessions or tokens are issued, every call carries
// its own credentials.
type Service struct {
	repo     Repository
	hashCost int
}

func NewService(repo Repository, hashCost int) *Service {
	if hashCost < minHashCost {
		hashCost = minHashCost
	}
	return &Service{repo: repo, hashCost: hashCost}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash. The duplicate pre-check yields a field-specific error; the storage
// uniqueness guarantee remains the backstop for concurrent registrations.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {

	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	if err := s.checkTaken(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) checkTaken(ctx context.Context, username, email string) error {
	if existing, err := s.repo.GetByIdentifier(ctx, username); err == nil {
		if existing.Username == username {
			return common.ErrUsernameExists
		}
		return common.ErrEmailExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error checking username: %w", err)
	}

	if existing, err := s.repo.GetByIdentifier(ctx, email); err == nil {
		if existing.Email == email {
			return common.ErrEmailExists
		}
		return common.ErrUsernameExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error checking email: %w", err)
	}

	return nil
}

// Login verifies credentials. The identifier may be a username or an email.
// An unknown identifier and a wrong password both return
// common.ErrInvalidCredentials, never revealing which one it was.
func (s *Service) Login(ctx context.Context, identifier, password string) (*User, error) {

	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// List returns every account in insertion order. Password hashes never leave
// the repository projection.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}
