// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"messagely/internal/api/handler"
	"messagely/internal/api/middleware"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	secretKey []byte,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)                       // Add a request ID to the context
	r.Use(chimiddleware.RealIP)                          // Use the real IP address
	r.Use(chimiddleware.Logger)                          // Log HTTP requests
	r.Use(chimiddleware.Recoverer)                       // Recover from panics and return 500
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Auth routes are open
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Everything else requires a valid token
	authenticator := middleware.NewAuthenticator(secretKey)

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", userHandler.List)
		r.Route("/{username}", func(r chi.Router) {
			r.Use(middleware.RequireSameUser)
			r.Get("/", userHandler.Get)
			r.Get("/to", userHandler.MessagesTo)
			r.Get("/from", userHandler.MessagesFrom)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", messageHandler.Send)
		r.Get("/{id}", messageHandler.Get)
		r.Post("/{id}/read", messageHandler.MarkRead)
	})

	return r
}
