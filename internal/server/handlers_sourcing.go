package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/types"
)

// sourceProfileRequest asks for a candidate to be imported from a public
// LinkedIn profile URL.
type sourceProfileRequest struct {
	ProfileURL string `json:"profile_url"`
}

// handleSourceProfile fetches a profile through the scraping provider and
// upserts it as a candidate. Scraped profiles rarely expose an email, so a
// placeholder derived from the profile URL keys the upsert.
func (s *Server) handleSourceProfile(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	if s.sourcer == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "profile sourcing is not configured")
		return
	}

	var req sourceProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ProfileURL) == "" {
		s.errorResponse(w, http.StatusBadRequest, "profile_url is required")
		return
	}

	profile, err := s.sourcer.FetchProfile(r.Context(), req.ProfileURL)
	if err != nil {
		s.log.Error("profile sourcing failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		email = placeholderEmail(req.ProfileURL)
	}

	candidate, err := s.db.UpsertCandidate(r.Context(), &db.Candidate{
		CompanyID:   companyID,
		CreatedBy:   userID,
		Name:        profile.FullName,
		Email:       email,
		LinkedInURL: req.ProfileURL,
		Location:    profile.Location,
	})
	if err != nil {
		s.log.Error("failed to store sourced candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store sourced candidate")
		return
	}

	if len(profile.Experiences) > 0 {
		if err := s.db.ReplaceExperiences(r.Context(), candidate.ID, profile.WorkHistory()); err != nil {
			s.log.Error("failed to store sourced experiences", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "failed to store sourced experiences")
			return
		}
	}
	if len(profile.Skills) > 0 {
		if err := s.db.ReplaceSkills(r.Context(), candidate.ID, parsing.NormalizeSkills(profile.Skills)); err != nil {
			s.log.Error("failed to store sourced skills", zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "failed to store sourced skills")
			return
		}
	}

	s.recordActivity(r, companyID, userID, types.ActivityProfileSourced, map[string]any{
		"candidate_id": candidate.ID,
		"profile_url":  req.ProfileURL,
	})
	s.jsonResponse(w, http.StatusCreated, candidate)
}

// placeholderEmail builds a stable synthetic address from the profile URL so
// repeated sourcing of the same profile hits the same candidate row.
func placeholderEmail(profileURL string) string {
	slug := strings.Trim(profileURL, "/")
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		slug = slug[i+1:]
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = "unknown"
	}
	return fmt.Sprintf("%s@sourced.invalid", slug)
}
