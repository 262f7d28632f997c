package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateAnalysis is the structured body of an AI candidate analysis.
type CandidateAnalysis struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	FitScore    int      `json:"fit_score"`
	Recommended bool     `json:"recommended"`
}

// AnalysisRecord is a persisted candidate analysis, keyed by the candidate,
// the requesting company, and a content hash of the job description. Records
// are immutable: a repeat request with the same key returns the stored record
// even if the underlying candidate data has changed since.
type AnalysisRecord struct {
	ID          uuid.UUID         `json:"id"`
	CandidateID uuid.UUID         `json:"candidate_id"`
	CompanyID   uuid.UUID         `json:"company_id"`
	JDHash      string            `json:"jd_hash"`
	Analysis    CandidateAnalysis `json:"analysis"`
	CreatedAt   time.Time         `json:"created_at"`
}
