package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/daniel/talent-ranker/internal/analysis"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/sourcing"
	"github.com/daniel/talent-ranker/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "email exists", err: &ErrEmailAlreadyExists{Email: "a@b.co"}, want: http.StatusConflict},
		{name: "bad credentials", err: &ErrInvalidCredentials{}, want: http.StatusUnauthorized},
		{name: "candidate missing", err: &ErrCandidateNotFound{CandidateID: uuid.New()}, want: http.StatusNotFound},
		{name: "analysis candidate missing", err: &analysis.CandidateNotFoundError{CandidateID: uuid.New()}, want: http.StatusNotFound},
		{name: "validation", err: &ErrValidation{Field: "email", Message: "required"}, want: http.StatusBadRequest},
		{name: "invalid status", err: &types.InvalidStatusError{Status: "PROMOTED"}, want: http.StatusBadRequest},
		{name: "parsing validation", err: &parsing.ValidationError{Message: "schema mismatch"}, want: http.StatusBadRequest},
		{name: "generation failure", err: &analysis.GenerationError{Message: "overloaded"}, want: http.StatusBadGateway},
		{name: "sourcing failure", err: &sourcing.FetchError{URL: "u", Message: "down"}, want: http.StatusBadGateway},
		{name: "wrapped", err: fmt.Errorf("outer: %w", &ErrInvalidCredentials{}), want: http.StatusUnauthorized},
		{name: "unknown", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrEmailAlreadyExists{Email: "a@b.co"}).Error(), "a@b.co")
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())

	id := uuid.New()
	assert.Contains(t, (&ErrCandidateNotFound{CandidateID: id}).Error(), id.String())
	assert.Contains(t, (&ErrValidation{Field: "email", Message: "required"}).Error(), "email")
}
