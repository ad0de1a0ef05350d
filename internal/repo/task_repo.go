package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "taskvault/internal/domain"
)

// TaskRepo provides task persistence. GetByID is deliberately not scoped to
// an owner: the service distinguishes "task not found" from "not yours".
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dom.Task, error)
	ListByUserAndPriority(ctx context.Context, userID uuid.UUID, priority string) ([]dom.Task, error)
	Update(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, user_id, title, description, priority, start_at, end_at, created_at, updated_at`

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, priority, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	var out dom.Task
	err := r.db.QueryRow(ctx, query,
		t.UserID, t.Title, t.Description, t.Priority, t.StartAt, t.EndAt,
	).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Priority,
		&out.StartAt, &out.EndAt, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.Task, error) {
	var t dom.Task
	err := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority,
		&t.StartAt, &t.EndAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]dom.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *PGTaskRepo) ListByUserAndPriority(ctx context.Context, userID uuid.UUID, priority string) ([]dom.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = $1 AND priority = $2 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID, priority)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Update overwrites the mutable columns. user_id is not in the SET list:
// ownership never changes after creation.
func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, start_at = $5, end_at = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	var out dom.Task
	err := r.db.QueryRow(ctx, query,
		t.ID, t.Title, t.Description, t.Priority, t.StartAt, t.EndAt,
	).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Priority,
		&out.StartAt, &out.EndAt, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

// Delete removes a task by ID. Returns false when no row matched.
func (r *PGTaskRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type taskRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTasks(rows taskRows) ([]dom.Task, error) {
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority,
			&t.StartAt, &t.EndAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
