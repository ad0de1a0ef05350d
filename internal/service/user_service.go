package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskvault/internal/auth"
	dom "taskvault/internal/domain"
	"taskvault/internal/repo"
	"taskvault/internal/utils"
)

// UserService handles account registration, lookup and credential checks.
type UserService struct {
	repo       repo.UserRepo
	bcryptCost int
}

// NewUserService returns a new UserService hashing passwords at cost.
func NewUserService(repo repo.UserRepo, cost int) *UserService {
	if cost <= 0 {
		cost = auth.DefaultBcryptCost
	}
	return &UserService{repo: repo, bcryptCost: cost}
}

// UserPatch is the explicit allow-list of user fields a client may change.
type UserPatch struct {
	Username *string
	Password *string
	Name     *string
}

// Create registers a new user with a hashed password.
// A taken username fails with ErrUserExists.
func (s *UserService) Create(ctx context.Context, username, password, name string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrMissingCredentials
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return dom.User{}, ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	})
	if err != nil {
		// Concurrent registration of the same username loses the race here.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUserExists
		}
		return dom.User{}, err
	}
	return u, nil
}

// CheckCredentials resolves username/password to the user record.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) CheckCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the user or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// Update merges the non-nil patch fields into the stored user. The password
// is re-hashed only when the patch carries a non-blank value; otherwise the
// stored hash is retained.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (dom.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, err
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username != "" {
			u.Username = username
		}
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = hash
	}
	out, err := s.repo.Update(ctx, u)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUserExists
		}
		return dom.User{}, err
	}
	return out, nil
}

// Delete removes a user; their tasks cascade at the schema level.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}
