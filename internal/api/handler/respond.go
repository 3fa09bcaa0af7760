// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"messagely/internal/util"
)

// DefaultTimeout bounds request handling time at the router level.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps application errors to status codes and sends a
// generic message. Internal detail is never surfaced to the caller.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid input"
	case util.IsError(err, util.ErrUnauthorized), util.IsError(err, util.ErrInvalidToken):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized"
	case util.IsError(err, util.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "Forbidden"
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrUserNotFound), util.IsError(err, util.ErrMessageNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Username already taken"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}
