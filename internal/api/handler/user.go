// internal/api/handler/user.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"messagely/internal/service"
)

// UserHandler handles HTTP requests related to user queries.
type UserHandler struct {
	userService    service.UserService
	messageService service.MessageService
	logger         *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userSvc service.UserService, messageSvc service.MessageService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService:    userSvc,
		messageService: messageSvc,
		logger:         logger,
	}
}

// List handles the user listing request.
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All(r.Context())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// Get handles the user detail request.
// GET /users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.Get(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	// The User JSON projection excludes the password hash.
	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// MessagesTo handles the inbound message listing request.
// GET /users/{username}/to
func (h *UserHandler) MessagesTo(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	messages, err := h.messageService.MessagesTo(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// MessagesFrom handles the outbound message listing request.
// GET /users/{username}/from
func (h *UserHandler) MessagesFrom(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	messages, err := h.messageService.MessagesFrom(r.Context(), username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}
