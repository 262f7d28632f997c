// Package server provides the HTTP REST API for the talent ranker.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniel/talent-ranker/internal/analysis"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/sourcing"
	"github.com/daniel/talent-ranker/internal/types"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrCandidateNotFound indicates the candidate is not in the company's pool.
type ErrCandidateNotFound struct {
	CandidateID uuid.UUID
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.CandidateID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to the HTTP status code it should produce.
func HTTPStatus(err error) int {
	var (
		invalidStatus *types.InvalidStatusError
		parseErr      *parsing.ValidationError
		notFound      *analysis.CandidateNotFoundError
		genErr        *analysis.GenerationError
		fetchErr      *sourcing.FetchError
	)
	switch {
	case errors.As(err, new(*ErrEmailAlreadyExists)):
		return http.StatusConflict
	case errors.As(err, new(*ErrInvalidCredentials)):
		return http.StatusUnauthorized
	case errors.As(err, new(*ErrCandidateNotFound)), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, new(*ErrValidation)), errors.As(err, &invalidStatus), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &genErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
