package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/server/middleware"
	"github.com/daniel/talent-ranker/internal/types"
)

// identity pulls the authenticated user and company from the request. The
// auth middleware guarantees both are present on protected routes.
func (s *Server) identity(w http.ResponseWriter, r *http.Request) (userID, companyID uuid.UUID, ok bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	companyID, err = middleware.GetCompanyID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, companyID, true
}

// pathUUID parses the {id} path segment.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleCreateCandidate creates or updates a candidate by (company, email).
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidate, err := s.db.UpsertCandidate(r.Context(), &db.Candidate{
		CompanyID:   companyID,
		CreatedBy:   userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		LinkedInURL: req.LinkedInURL,
		GitHubURL:   req.GitHubURL,
		Location:    req.Location,
	})
	if err != nil {
		s.log.Error("failed to create candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create candidate")
		return
	}

	s.recordActivity(r, companyID, userID, types.ActivityCandidateCreated, map[string]any{
		"candidate_id": candidate.ID,
		"name":         candidate.Name,
	})
	s.jsonResponse(w, http.StatusCreated, candidate)
}

// handleListCandidates lists the company's candidates, optionally filtered
// by ?status=.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !types.IsValidStatus(status) {
		s.errorResponse(w, http.StatusBadRequest, "invalid status filter: "+status)
		return
	}

	candidates, err := s.db.ListCandidates(r.Context(), companyID, status)
	if err != nil {
		s.log.Error("failed to list candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}
	if candidates == nil {
		candidates = []db.Candidate{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": candidates})
}

// handleGetCandidate returns the full structured candidate view.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	bundle, err := s.db.GetCandidateBundle(r.Context(), id, companyID)
	if err != nil {
		s.log.Error("failed to get candidate", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get candidate")
		return
	}
	if bundle == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrCandidateNotFound{CandidateID: id}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":          bundle.Snapshot.ID,
		"name":        bundle.Snapshot.Name,
		"email":       bundle.Snapshot.Email,
		"phone":       bundle.Phone,
		"location":    bundle.Snapshot.Location,
		"linkedin_url": bundle.Snapshot.LinkedInURL,
		"github_url":  bundle.GitHubURL,
		"status":      bundle.Status,
		"skills":      bundle.Snapshot.Skills,
		"experiences": bundle.Snapshot.Experiences,
		"projects":    bundle.Projects,
		"updated_at":  bundle.UpdatedAt,
	})
}

// handleUpdateStatus transitions a candidate through the hiring funnel and
// records the change in the status log.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidate, err := s.db.UpdateCandidateStatus(r.Context(), id, companyID, userID, req.Status, req.Notes)
	if err != nil {
		s.log.Error("failed to update status", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrCandidateNotFound{CandidateID: id}).Error())
		return
	}

	s.recordActivity(r, companyID, userID, types.ActivityStatusChanged, map[string]any{
		"candidate_id": candidate.ID,
		"status":       candidate.Status,
	})
	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleStatusLog returns a candidate's status history.
func (s *Server) handleStatusLog(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	// Ownership check before exposing the log.
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

	changes, err := s.db.ListStatusLog(r.Context(), id)
	if err != nil {
		s.log.Error("failed to list status log", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list status log")
		return
	}
	if changes == nil {
		changes = []types.StatusChange{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"status_log": changes})
}

// recordActivity inserts an activity log entry. Logging failures are not
// surfaced to the client; the primary operation already succeeded.
func (s *Server) recordActivity(r *http.Request, companyID, userID uuid.UUID, activityType string, details any) {
	if err := s.db.InsertActivity(r.Context(), companyID, userID, activityType, details); err != nil {
		s.log.Warn("failed to record activity",
			zap.String("activity_type", activityType), zap.Error(err))
	}
}
