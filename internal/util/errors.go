// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input provided")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidToken    = errors.New("invalid token")
	ErrDuplicateEntry  = errors.New("duplicate entry") // For cases like registering an existing username
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
)

// IsError reports whether err matches the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
