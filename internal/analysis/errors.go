package analysis

import (
	"fmt"

	"github.com/google/uuid"
)

// CandidateNotFoundError indicates the candidate does not exist in the
// requesting company's pool.
type CandidateNotFoundError struct {
	CandidateID uuid.UUID
}

func (e *CandidateNotFoundError) Error() string {
	return fmt.Sprintf("candidate %s not found", e.CandidateID)
}

// GenerationError wraps a failure of the AI analysis generator. Nothing is
// persisted when generation fails.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
