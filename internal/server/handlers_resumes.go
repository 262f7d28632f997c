package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/types"
)

// uploadResumeRequest carries raw resume text for structured extraction.
type uploadResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

// handleUploadResume parses resume text with the LLM and folds the result
// into the candidate: profile fields are upserted, experiences, skills and
// projects replaced wholesale.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	var req uploadResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}

	candidate, err := s.db.GetCandidate(r.Context(), id, companyID)
	if err != nil {
		s.log.Error("failed to get candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get candidate")
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrCandidateNotFound{CandidateID: id}).Error())
		return
	}

	profile, err := parsing.ParseResume(r.Context(), s.llm, req.ResumeText)
	if err != nil {
		s.log.Error("resume parsing failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// Parsed fields fill gaps; the stored email stays authoritative so the
	// upsert hits the same row.
	updated, err := s.db.UpsertCandidate(r.Context(), &db.Candidate{
		CompanyID:   companyID,
		CreatedBy:   candidate.CreatedBy,
		Name:        firstNonEmpty(profile.Name, candidate.Name),
		Email:       candidate.Email,
		Phone:       firstNonEmpty(profile.Phone, candidate.Phone),
		LinkedInURL: firstNonEmpty(profile.LinkedInURL, candidate.LinkedInURL),
		GitHubURL:   firstNonEmpty(profile.GitHubURL, candidate.GitHubURL),
		Location:    firstNonEmpty(profile.Location, candidate.Location),
		ResumeText:  req.ResumeText,
	})
	if err != nil {
		s.log.Error("failed to store parsed candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store parsed candidate")
		return
	}

	if err := s.db.ReplaceExperiences(r.Context(), updated.ID, profile.Experiences); err != nil {
		s.log.Error("failed to store experiences", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store experiences")
		return
	}
	if err := s.db.ReplaceSkills(r.Context(), updated.ID, profile.Skills); err != nil {
		s.log.Error("failed to store skills", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store skills")
		return
	}
	if err := s.db.ReplaceProjects(r.Context(), updated.ID, profile.Projects); err != nil {
		s.log.Error("failed to store projects", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store projects")
		return
	}

	s.recordActivity(r, companyID, userID, types.ActivityResumeParsed, map[string]any{
		"candidate_id": updated.ID,
		"skills":       len(profile.Skills),
		"experiences":  len(profile.Experiences),
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate": updated,
		"parsed": map[string]any{
			"skills":      profile.Skills,
			"experiences": profile.Experiences,
			"projects":    profile.Projects,
		},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
