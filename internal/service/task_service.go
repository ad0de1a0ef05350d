package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"taskvault/internal/cache"
	dom "taskvault/internal/domain"
	"taskvault/internal/notify"
	"taskvault/internal/repo"
)

// TaskService owns the task lifecycle: window validation at creation,
// per-request ownership checks, explicit non-nil merges on update.
type TaskService struct {
	repo     repo.TaskRepo
	cache    *cache.TaskCache
	notifier notify.Notifier
	sf       singleflight.Group
}

// NewTaskService creates a TaskService. A nil cache disables caching; a nil
// notifier disables notifications.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache, n notify.Notifier) *TaskService {
	return &TaskService{repo: r, cache: c, notifier: n}
}

// TaskPatch is the explicit allow-list of task fields a client may change.
// Ownership is not here on purpose.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	StartAt     *time.Time
	EndAt       *time.Time
}

// validateWindow checks a proposed task window against now. The future check
// runs before the ordering check: a window fully in the past that is also
// inverted reports ErrWindowPast, not ErrWindowOrder.
func validateWindow(start, end, now time.Time) error {
	if now.After(start) || now.After(end) {
		return ErrWindowPast
	}
	if start.After(end) {
		return ErrWindowOrder
	}
	return nil
}

// Create persists a new task owned by requesterID. The owner is always the
// authenticated requester, never a client-supplied value. The "task created"
// notification is best effort: a failure is logged and swallowed.
func (s *TaskService) Create(ctx context.Context, requesterID uuid.UUID, title, description, priority string, startAt, endAt time.Time) (dom.Task, error) {
	if err := validateWindow(startAt, endAt, time.Now().UTC()); err != nil {
		return dom.Task{}, err
	}

	t, err := s.repo.Create(ctx, dom.Task{
		UserID:      requesterID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Priority:    strings.TrimSpace(priority),
		StartAt:     startAt,
		EndAt:       endAt,
	})
	if err != nil {
		return dom.Task{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.TaskCreated(ctx, requesterID, t.ID); err != nil {
			log.Printf("task created notification failed: %v", err)
		}
	}
	s.invalidateCache(ctx, requesterID)
	return t, nil
}

// List returns all tasks owned by requesterID.
func (s *TaskService) List(ctx context.Context, requesterID uuid.UUID) ([]dom.Task, error) {
	if s.cache == nil {
		return s.repo.ListByUser(ctx, requesterID)
	}
	key := "list:" + requesterID.String()
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, requesterID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByUser(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, requesterID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// ListByPriority returns the requester's tasks with an exact priority match.
func (s *TaskService) ListByPriority(ctx context.Context, requesterID uuid.UUID, priority string) ([]dom.Task, error) {
	priority = strings.TrimSpace(priority)
	if s.cache == nil {
		return s.repo.ListByUserAndPriority(ctx, requesterID, priority)
	}
	key := "prio:" + requesterID.String() + ":" + strings.ToLower(priority)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetByPriority(ctx, requesterID, priority); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByUserAndPriority(ctx, requesterID, priority)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetByPriority(ctx, requesterID, priority, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// Get returns a task after the not-found and ownership checks.
func (s *TaskService) Get(ctx context.Context, requesterID, taskID uuid.UUID) (dom.Task, error) {
	return s.getOwned(ctx, requesterID, taskID)
}

// Update merges the non-nil patch fields into the stored task and persists.
// The window is deliberately not revalidated here: an update may move a task
// into the past or invert its window, matching create-time-only validation.
func (s *TaskService) Update(ctx context.Context, requesterID, taskID uuid.UUID, patch TaskPatch) (dom.Task, error) {
	t, err := s.getOwned(ctx, requesterID, taskID)
	if err != nil {
		return dom.Task{}, err
	}
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		t.Priority = strings.TrimSpace(*patch.Priority)
	}
	if patch.StartAt != nil {
		t.StartAt = *patch.StartAt
	}
	if patch.EndAt != nil {
		t.EndAt = *patch.EndAt
	}
	out, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrTaskNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, requesterID)
	return out, nil
}

// Complete sets the task's end timestamp to the current time, without
// revalidating the window — even if this puts the end before the start.
func (s *TaskService) Complete(ctx context.Context, requesterID, taskID uuid.UUID) (dom.Task, error) {
	t, err := s.getOwned(ctx, requesterID, taskID)
	if err != nil {
		return dom.Task{}, err
	}
	t.EndAt = time.Now().UTC()
	out, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrTaskNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, requesterID)
	return out, nil
}

// Delete removes a task after the not-found and ownership checks. The
// "task deleted" notification is best effort, like creation.
func (s *TaskService) Delete(ctx context.Context, requesterID, taskID uuid.UUID) error {
	t, err := s.getOwned(ctx, requesterID, taskID)
	if err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, t.ID); err != nil {
		return err
	}
	if s.notifier != nil {
		if err := s.notifier.TaskDeleted(ctx, requesterID, t.ID); err != nil {
			log.Printf("task deleted notification failed: %v", err)
		}
	}
	s.invalidateCache(ctx, requesterID)
	return nil
}

// getOwned fetches a task by ID and asserts ownership. Not-found always wins
// over forbidden: the existence check runs before the owner comparison.
func (s *TaskService) getOwned(ctx context.Context, requesterID, taskID uuid.UUID) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrTaskNotFound
		}
		return dom.Task{}, err
	}
	if t.UserID != requesterID {
		return dom.Task{}, ErrTaskForbidden
	}
	return t, nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
