// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"messagely/internal/auth"
)

// contextKey is a type-safe key for values stored in the request context.
type contextKey string

// usernameContextKey carries the authenticated username through the request context.
var usernameContextKey = contextKey("username")

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. The token's username claim is
// injected into the request context; requests without a valid token get 401.
func NewAuthenticator(secretKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondUnauthorized(w)
				return
			}

			username, err := auth.GetUsernameFromToken(token, secretKey)
			if err != nil {
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), usernameContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSameUser rejects with 403 unless the authenticated username equals
// the "username" URL parameter. It must run after the authenticator.
func RequireSameUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := UsernameFromContext(r.Context())
		if err != nil {
			respondUnauthorized(w)
			return
		}

		if chi.URLParam(r, "username") != username {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UsernameFromContext returns the authenticated username from the request
// context. Valid only for requests that passed the authenticator.
func UsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(usernameContextKey).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}

// ContextWithUsername injects a username into the context.
// Used by tests and non-middleware context construction.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
