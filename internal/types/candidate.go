// Package types provides type definitions for structured data used throughout the talent-ranker system.
package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Candidate status values tracked through the hiring funnel.
const (
	StatusNew         = "NEW"
	StatusReviewing   = "REVIEWING"
	StatusShortlisted = "SHORTLISTED"
	StatusInterview   = "INTERVIEW"
	StatusSelected    = "SELECTED"
	StatusRejected    = "REJECTED"
)

// ValidStatuses lists every accepted candidate status.
var ValidStatuses = []string{
	StatusNew, StatusReviewing, StatusShortlisted,
	StatusInterview, StatusSelected, StatusRejected,
}

// IsValidStatus reports whether s is a known candidate status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Experience is one entry in a candidate's work history. Either date may be
// absent: an absent start excludes the entry from duration math, an absent
// end means the role is ongoing.
type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// Project is a candidate project entry used by the analysis profile document.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CandidateSnapshot is the read-only projection of a candidate consumed by the
// scorer. It carries only what scoring needs; the full DB row stays in db.
type CandidateSnapshot struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Skills      []string     `json:"skills"`
	Experiences []Experience `json:"experiences"`
	Location    string       `json:"location,omitempty"`
	LinkedInURL string       `json:"linkedin_url,omitempty"`
}

// ResolvedLocation returns the candidate's location, falling back to the
// LinkedIn URL when no location is on file. The fallback is a weak signal but
// is kept for compatibility with historical scoring output.
func (c *CandidateSnapshot) ResolvedLocation() string {
	if strings.TrimSpace(c.Location) != "" {
		return c.Location
	}
	return c.LinkedInURL
}

// CandidateBundle is the full structured view of a candidate, used to build
// the analysis profile document when no resume text is stored.
type CandidateBundle struct {
	Snapshot    CandidateSnapshot
	Phone       string
	GitHubURL   string
	ResumeText  string
	Projects    []Project
	CompanyID   uuid.UUID
	Status      string
	UpdatedAt   time.Time
}

// CreateCandidateRequest is the payload for manual candidate creation.
type CreateCandidateRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GitHubURL   string `json:"github_url,omitempty" validate:"omitempty,url"`
	Location    string `json:"location,omitempty"`
}

// UpdateStatusRequest is the payload for candidate status transitions.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate checks the requested status against the known set.
func (r *UpdateStatusRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !IsValidStatus(r.Status) {
		return &InvalidStatusError{Status: r.Status}
	}
	return nil
}

// InvalidStatusError indicates an unknown candidate status value.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return "invalid candidate status: " + e.Status
}
