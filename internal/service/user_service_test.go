package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskvault/internal/auth"
	dom "taskvault/internal/domain"
)

// testBcryptCost keeps hashing fast in tests; production uses 12.
const testBcryptCost = 4

// fakeUserRepo is an in-memory UserRepo for service tests.
type fakeUserRepo struct {
	users map[uuid.UUID]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]dom.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (dom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u dom.User) (dom.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), testBcryptCost)
		u, err := svc.Create(ctx, "alice", "pw1", "Alice")
		require.NoError(t, err)
		assert.NotEqual(t, "pw1", u.PasswordHash)
		assert.True(t, auth.CheckPassword(u.PasswordHash, "pw1"))
	})

	t.Run("duplicate username fails regardless of password", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), testBcryptCost)
		_, err := svc.Create(ctx, "alice", "pw1", "Alice")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "alice", "pw2", "Other Alice")
		require.ErrorIs(t, err, ErrUserExists)
		assert.Equal(t, "User already exists.", err.Error())
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		// The unique index uses the default collation, so "Alice" and
		// "alice" are distinct accounts.
		svc := NewUserService(newFakeUserRepo(), testBcryptCost)
		_, err := svc.Create(ctx, "alice", "pw1", "")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "Alice", "pw2", "")
		assert.NoError(t, err)
	})

	t.Run("blank credentials are rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), testBcryptCost)
		_, err := svc.Create(ctx, "   ", "pw", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
		_, err = svc.Create(ctx, "bob", "", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestUserService_CheckCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), testBcryptCost)
	created, err := svc.Create(ctx, "alice", "correct horse", "Alice")
	require.NoError(t, err)

	t.Run("valid credentials resolve the user", func(t *testing.T) {
		u, err := svc.CheckCredentials(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.CheckCredentials(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user yields the same error as a wrong password", func(t *testing.T) {
		_, err := svc.CheckCredentials(ctx, "mallory", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*UserService, dom.User) {
		t.Helper()
		svc := NewUserService(newFakeUserRepo(), testBcryptCost)
		u, err := svc.Create(ctx, "alice", "pw1", "Alice")
		require.NoError(t, err)
		return svc, u
	}

	t.Run("not found", func(t *testing.T) {
		svc, _ := seed(t)
		_, err := svc.Update(ctx, uuid.New(), UserPatch{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("blank password keeps the stored hash", func(t *testing.T) {
		svc, u := seed(t)
		blank := "   "
		name := "Alice B."
		updated, err := svc.Update(ctx, u.ID, UserPatch{Password: &blank, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, u.PasswordHash, updated.PasswordHash)
		assert.Equal(t, "Alice B.", updated.Name)
	})

	t.Run("non-blank password is re-hashed", func(t *testing.T) {
		svc, u := seed(t)
		newPw := "pw2"
		updated, err := svc.Update(ctx, u.ID, UserPatch{Password: &newPw})
		require.NoError(t, err)
		assert.NotEqual(t, u.PasswordHash, updated.PasswordHash)
		assert.True(t, auth.CheckPassword(updated.PasswordHash, "pw2"))
		assert.False(t, auth.CheckPassword(updated.PasswordHash, "pw1"))
	})

	t.Run("nil fields are untouched", func(t *testing.T) {
		svc, u := seed(t)
		updated, err := svc.Update(ctx, u.ID, UserPatch{})
		require.NoError(t, err)
		assert.Equal(t, u.Username, updated.Username)
		assert.Equal(t, u.Name, updated.Name)
		assert.Equal(t, u.PasswordHash, updated.PasswordHash)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), testBcryptCost)
	u, err := svc.Create(ctx, "alice", "pw1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrUserNotFound)
	_, err = svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
