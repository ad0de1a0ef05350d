package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is the domain entity for a task.
// UserID is the owner and is assigned once at creation; no mutation path
// ever rewrites it.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Priority    string
	StartAt     time.Time
	EndAt       time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
