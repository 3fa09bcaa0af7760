// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"messagely/pkg/db" // Import db package for its Config struct

	"golang.org/x/crypto/bcrypt"
)

// AppConfig holds all application-wide configurations.
// The token secret and bcrypt cost live here so that no component
// reads them from ambient global state.
type AppConfig struct {
	ServerPort string
	DB         db.Config
	SecretKey  string
	BcryptCost int
	TokenTTL   time.Duration
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "messagely" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	secretKey := os.Getenv("SECRET_KEY")
	if secretKey == "" {
		secretKey = "dev-secret" // Default secret for local development only
	}

	bcryptCost := bcrypt.DefaultCost
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		bcryptCost, err = strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST out of range [%d, %d]: %d", bcrypt.MinCost, bcrypt.MaxCost, bcryptCost)
		}
	}

	tokenTTL := 24 * time.Hour
	if ttlStr := os.Getenv("TOKEN_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %q", ttlStr)
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		SecretKey:  secretKey,
		BcryptCost: bcryptCost,
		TokenTTL:   tokenTTL,
	}, nil
}
