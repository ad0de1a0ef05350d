package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity for an account.
// PasswordHash never leaves the service layer; response DTOs carry only
// id, username and name.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
