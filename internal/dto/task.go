package dto

import (
	"time"

	"github.com/google/uuid"

	dom "taskvault/internal/domain"
)

// CreateTaskRequest is the JSON body for POST /tasks/.
// Timestamps are RFC3339: "2026-09-01T10:00:00Z".
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=50"`
	Description string    `json:"description" binding:"max=1000"`
	Priority    string    `json:"priority" binding:"max=50"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
}

// UpdateTaskRequest is the JSON body for PUT /tasks/:taskId.
// Nil fields are left untouched. There is deliberately no owner field:
// ownership is immutable after creation.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=50"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Priority    *string    `json:"priority" binding:"omitempty,max=50"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

// TaskToResponse maps a domain task to its response shape.
func TaskToResponse(t dom.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		StartAt:     t.StartAt,
		EndAt:       t.EndAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TasksToResponses maps a slice of domain tasks.
func TasksToResponses(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = TaskToResponse(list[i])
	}
	return out
}
