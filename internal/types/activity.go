package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity types recorded in the activity log.
const (
	ActivityCandidateCreated = "CANDIDATE_CREATED"
	ActivityResumeParsed     = "RESUME_PARSED"
	ActivityStatusChanged    = "STATUS_CHANGED"
	ActivityRankingRun       = "RANKING_RUN"
	ActivityAnalysisCreated  = "ANALYSIS_CREATED"
	ActivityProfileSourced   = "PROFILE_SOURCED"
)

// ActivityRecord is one row in the per-company activity log. Details is an
// arbitrary JSON object describing the event.
type ActivityRecord struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	UserID       uuid.UUID       `json:"user_id"`
	ActivityType string          `json:"activity_type"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StatusChange is one row in a candidate's status history.
type StatusChange struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	UserID      uuid.UUID `json:"user_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
