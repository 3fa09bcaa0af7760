// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"messagely/internal/domain"
	"messagely/internal/repository"
	"messagely/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewUserRepository creates a new UserRepository.
// The db parameter is not stored in the struct, but passed to methods.
// This constructor is now mainly for type assertion and consistency.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user into the database using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (username, password, first_name, last_name, phone, join_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName, user.Phone, user.JoinAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername retrieves the full user row, including the password hash.
func (r *UserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT username, password, first_name, last_name, phone, join_at, last_login_at
              FROM users WHERE username = $1`
	err := q.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username '%s': %w", username, err)
	}
	return &user, nil
}

// TouchLastLogin sets last_login_at to the current time.
func (r *UserRepository) TouchLastLogin(ctx context.Context, q repository.DBExecutor, username string) error {
	query := `UPDATE users SET last_login_at = now() WHERE username = $1`
	result, err := q.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("failed to update last login for '%s': %w", username, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListUsers returns summaries of all users ordered by username ascending.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.UserSummary, error) {
	users := []domain.UserSummary{}
	query := `SELECT username, first_name, last_name FROM users ORDER BY username`
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// compile-time interface check
var _ repository.UserRepository = (*UserRepository)(nil)
