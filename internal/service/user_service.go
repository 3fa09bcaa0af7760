// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messagely/internal/auth"
	"messagely/internal/domain"
	"messagely/internal/repository"
	"messagely/internal/util"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	// Register creates a new user with a hashed password and returns the
	// created user together with a signed session token.
	Register(ctx context.Context, username, password, firstName, lastName, phone string) (*domain.User, string, error)
	// Authenticate reports whether the username/password pair is valid.
	// An unknown username yields (false, nil), not an error.
	Authenticate(ctx context.Context, username, password string) (bool, error)
	// Login authenticates, updates last_login_at and issues a token.
	// Invalid credentials yield util.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (string, error)
	// All returns summaries of all users ordered by username ascending.
	All(ctx context.Context) ([]domain.UserSummary, error)
	// Get returns the user with the given username, or util.ErrNotFound.
	Get(ctx context.Context, username string) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	dbExecutor repository.DBExecutor // For queries outside transactions (e.g., *sqlx.DB)
	userRepo   repository.UserRepository
	secretKey  []byte
	bcryptCost int
	tokenTTL   time.Duration
}

// NewUserService creates a new instance of UserService.
// The token secret, bcrypt cost and token TTL come from the application
// configuration and are fixed for the lifetime of the service.
func NewUserService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	secretKey string,
	bcryptCost int,
	tokenTTL time.Duration,
) UserService {
	return &userService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		secretKey:  []byte(secretKey),
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
	}
}

// Register creates a new user and returns it with a session token.
func (s *userService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", util.ErrInvalidInput
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(username, hash, firstName, lastName, phone)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		if errors.Is(err, util.ErrDuplicateEntry) {
			return nil, "", util.ErrDuplicateEntry
		}
		return nil, "", fmt.Errorf("register: failed to create user '%s': %w", username, err)
	}

	token, err := auth.GenerateToken(username, s.secretKey, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to generate token: %w", err)
	}

	return user, token, nil
}

// Authenticate reports whether the username/password pair is valid.
// When the username is unknown a dummy bcrypt comparison is performed so
// the two failure paths do comparable work.
func (s *userService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			auth.CheckDummyPassword(password)
			return false, nil
		}
		return false, fmt.Errorf("authenticate: failed to look up user '%s': %w", username, err)
	}

	return auth.CheckPassword(password, user.Password), nil
}

// Login authenticates, updates last_login_at and issues a token.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", util.ErrUnauthorized
	}

	if err := s.userRepo.TouchLastLogin(ctx, s.dbExecutor, username); err != nil {
		return "", fmt.Errorf("login: failed to update last login for '%s': %w", username, err)
	}

	token, err := auth.GenerateToken(username, s.secretKey, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("login: failed to generate token: %w", err)
	}

	return token, nil
}

// All returns summaries of all users ordered by username ascending.
func (s *userService) All(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("all: failed to list users: %w", err)
	}
	return users, nil
}

// Get returns the user with the given username.
func (s *userService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get: failed to get user '%s': %w", username, err)
	}
	return user, nil
}
