package service

import "errors"

// Sentinel errors carry the exact client-facing messages; handlers map them
// to status codes and pass err.Error() through as the response body.
var (
	ErrUserExists         = errors.New("User already exists.")
	ErrUserNotFound       = errors.New("User not found.")
	ErrTaskNotFound       = errors.New("Task not found.")
	ErrTaskForbidden      = errors.New("You do not have permission to update this task.")
	ErrWindowPast         = errors.New("Start date and End date must be in the future.")
	ErrWindowOrder        = errors.New("Start date must be before End date.")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = errors.New("username and password required")
)
