// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	userIDKey    ContextKey = "userID"
	companyIDKey ContextKey = "companyID"
)

// TokenValidator validates a bearer token and returns its identity claims.
// The interface keeps the middleware decoupled from the JWT implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

// Identity carries the authenticated user and the company it belongs to.
// Every data access downstream is scoped by the company ID.
type Identity interface {
	GetUserID() uuid.UUID
	GetCompanyID() uuid.UUID
}

// Auth returns middleware that validates the Authorization bearer token and
// stores the authenticated identity on the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, identity.GetUserID())
			ctx = context.WithValue(ctx, companyIDKey, identity.GetCompanyID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header. The "Bearer"
// prefix is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// GetCompanyID extracts the authenticated company ID from the request context.
func GetCompanyID(r *http.Request) (uuid.UUID, error) {
	companyID, ok := r.Context().Value(companyIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("company ID not found in request context")
	}
	return companyID, nil
}

// WithIdentity returns a context carrying the given identity, used by tests
// to exercise handlers without a real token.
func WithIdentity(ctx context.Context, userID, companyID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, companyIDKey, companyID)
}
