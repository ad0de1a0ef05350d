package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "taskvault/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.User, error)
	Update(ctx context.Context, u dom.User) (dom.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, username, password_hash, name, created_at`

// Create inserts a new user and returns it with server-assigned fields.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.Username, u.PasswordHash, u.Name).Scan(
		&out.ID, &out.Username, &out.PasswordHash, &out.Name, &out.CreatedAt,
	)
	return out, err
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

// GetByID returns the user by ID.
func (r *PGUserRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.CreatedAt)
	return u, err
}

// Update overwrites username, password_hash and name for the given user.
func (r *PGUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users SET username = $2, password_hash = $3, name = $4
		WHERE id = $1
		RETURNING ` + userColumns
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.ID, u.Username, u.PasswordHash, u.Name).Scan(
		&out.ID, &out.Username, &out.PasswordHash, &out.Name, &out.CreatedAt,
	)
	return out, err
}

// Delete removes a user by ID. Tasks cascade at the schema level.
// Returns false when no row matched.
func (r *PGUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
