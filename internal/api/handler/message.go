// internal/api/handler/message.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"messagely/internal/api/middleware"
	"messagely/internal/service"
	"messagely/internal/util"
)

// MessageHandler handles HTTP requests related to individual messages.
type MessageHandler struct {
	service service.MessageService
	logger  *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		service: svc,
		logger:  logger,
	}
}

// SendRequest represents the request body for sending a message.
type SendRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// Send handles the send message request. The sender is always the
// authenticated user.
// POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if req.ToUsername == "" || req.Body == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	message, err := h.service.Send(r.Context(), username, req.ToUsername, req.Body)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"message": message,
	})
}

// Get handles the message detail request.
// GET /messages/{id}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	message, err := h.service.Get(r.Context(), id, username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"message": message,
	})
}

// MarkRead handles the mark-read request. Only the recipient may mark a
// message as read.
// POST /messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.UsernameFromContext(r.Context())
	if err != nil {
		respondWithError(h.logger, w, util.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	readAt, err := h.service.MarkRead(r.Context(), id, username)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"read_at": readAt,
	})
}
