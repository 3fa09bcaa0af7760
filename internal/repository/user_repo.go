// internal/repository/user_repo.go
package repository

import (
	"context"

	"messagely/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user to the database using the provided DBExecutor.
	// Returns util.ErrDuplicateEntry if the username is already taken.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByUsername retrieves the full user row, including the password
	// hash, using the provided DBExecutor. Returns util.ErrNotFound if absent.
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// TouchLastLogin sets last_login_at to the current time.
	// Returns util.ErrNotFound if the username does not exist.
	TouchLastLogin(ctx context.Context, q DBExecutor, username string) error
	// ListUsers returns summaries of all users ordered by username ascending.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.UserSummary, error)
}
