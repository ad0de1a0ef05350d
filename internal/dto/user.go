package dto

import (
	"time"

	"github.com/google/uuid"

	dom "taskvault/internal/domain"
)

// CreateUserRequest is the JSON body for POST /users/.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
	Name     string `json:"name" binding:"max=120"`
}

// UpdateUserRequest is the JSON body for PUT /users/:userId.
// Nil fields are left untouched; a blank password keeps the stored hash.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=120"`
	Password *string `json:"password"`
	Name     *string `json:"name" binding:"omitempty,max=120"`
}

// UserResponse is the outward shape of a user. The password hash is
// stripped here and never serialized.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserToResponse maps a domain user to its response shape.
func UserToResponse(u dom.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
