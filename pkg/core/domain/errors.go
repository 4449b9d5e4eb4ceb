package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across service and repository layers.
// Handlers map these to HTTP statuses; anything else becomes a generic 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ValidationError marks missing or malformed input rejected before it
// reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
