// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "messagely/internal/api"
	"messagely/internal/api/handler"
	"messagely/internal/config"
	"messagely/internal/repository"
	"messagely/internal/repository/postgres"
	"messagely/internal/service"
	"messagely/internal/util"
	"messagely/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository    repository.UserRepository
	MessageRepository repository.MessageRepository

	// Services
	UserService    service.UserService
	MessageService service.MessageService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger first so initialization failures are loggable
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Apply schema migrations
	if err := db.RunMigrations(app.Config.DB.URL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database migrations applied.")

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.MessageRepository = postgres.NewMessageRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.UserService = service.NewUserService(
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.Config.SecretKey,
		app.Config.BcryptCost,
		app.Config.TokenTTL,
	)
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.MessageService = service.NewMessageService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.MessageRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	authHandler := handler.NewAuthHandler(app.UserService, app.Logger)
	userHandler := handler.NewUserHandler(app.UserService, app.MessageService, app.Logger)
	messageHandler := handler.NewMessageHandler(app.MessageService, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, userHandler, messageHandler, []byte(app.Config.SecretKey), app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
