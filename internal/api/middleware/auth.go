package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
)

type contextKey string

const (
	callerIDKey   contextKey = "callerID"
	callerRoleKey contextKey = "callerRole"
)

// AuthMiddleware verifies the bearer token and injects the caller's
// identity into the request context. Requests without a valid token are
// rejected before reaching a handler.
func AuthMiddleware(issuer *tokens.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w, "authorization header required (Bearer <token>)")
				return
			}

			claims, err := issuer.Parse(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), callerIDKey, claims.UserID)
			ctx = context.WithValue(ctx, callerRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerID extracts the authenticated caller's user ID from the request
// context. Empty when the request did not pass AuthMiddleware.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerIDKey).(string)
	return id
}

// CallerRole extracts the authenticated caller's role from the request
// context.
func CallerRole(ctx context.Context) entities.Role {
	role, _ := ctx.Value(callerRoleKey).(entities.Role)
	return role
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
