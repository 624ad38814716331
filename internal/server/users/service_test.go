package users

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guluwater/officetools-server/internal/common"
)

// fakeRepo is an in-memory Repository with the same uniqueness semantics as
// the real backends.
type fakeRepo struct {
	records []*User
	nextID  int64

	createErr error
	getErr    error
}

func (f *fakeRepo) Create(ctx context.Context, user *User) (*User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range f.records {
		if r.Username == user.Username || r.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	f.nextID++
	user.ID = strconv.FormatInt(f.nextID, 10)
	user.CreatedAt = time.Now().UTC()
	f.records = append(f.records, user)
	return user, nil
}

func (f *fakeRepo) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.Username == identifier || r.Email == identifier {
			return r, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*User, error) {
	result := make([]*User, 0, len(f.records))
	for _, r := range f.records {
		result = append(result, &User{
			ID: r.ID, Username: r.Username, Email: r.Email, CreatedAt: r.CreatedAt,
		})
	}
	return result, nil
}

func TestRegisterThenLogin_SameID(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{}, 10)

	created, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loggedIn, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)

	// email works as the login identifier too
	viaEmail, err := s.Login(ctx, "alice@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, viaEmail.ID)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{}, 10)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"no username", "", "a@x.com", "pw"},
		{"no email", "bob", "", "pw"},
		{"no password", "bob", "b@x.com", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestRegister_DuplicateUsername_FieldSpecific(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	s := NewService(repo, 10)

	_, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice", "other@x.com", "secret123")
	assert.ErrorIs(t, err, common.ErrUsernameExists)

	_, err = s.Register(ctx, "someoneelse", "alice@x.com", "secret123")
	assert.ErrorIs(t, err, common.ErrEmailExists)

	// exactly one record for alice
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)
}

func TestLogin_FailuresIndistinguishable(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{}, 10)

	_, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, wrongPw := s.Login(ctx, "alice", "wrong")
	_, noUser := s.Login(ctx, "ghost", "whatever")

	require.Error(t, wrongPw)
	require.Error(t, noUser)
	assert.ErrorIs(t, wrongPw, common.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestRegister_PasswordStoredHashed(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	s := NewService(repo, 10)

	_, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	stored := repo.records[0].PasswordHash
	assert.NotEqual(t, "secret123", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret123")))

	cost, err := bcrypt.Cost([]byte(stored))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 10)
}

func TestNewService_RaisesLowHashCost(t *testing.T) {
	s := NewService(&fakeRepo{}, 4)
	assert.Equal(t, 10, s.hashCost)
}

func TestRegister_StorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	s := NewService(&fakeRepo{getErr: boom}, 10)

	_, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrValidation)
	assert.NotErrorIs(t, err, common.ErrAlreadyExists)
}

func TestList_ExcludesPasswordHash(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeRepo{}, 10)

	_, err := s.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)
}
