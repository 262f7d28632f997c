package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/types"
)

// createAnalysisRequest carries the job description an analysis is keyed on.
type createAnalysisRequest struct {
	JDText string `json:"jd_text"`
}

// handleCreateAnalysis returns the cached analysis for (candidate, company,
// JD hash) or generates and persists one. Repeat calls with the same JD are
// cache hits and never touch the LLM.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.JDText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "jd_text is required")
		return
	}

	record, err := s.analyses.GetOrCreate(r.Context(), id, companyID, req.JDText)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("analysis failed", zap.Error(err))
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.recordActivity(r, companyID, userID, types.ActivityAnalysisCreated, map[string]any{
		"candidate_id": id,
		"jd_hash":      record.JDHash,
	})
	s.jsonResponse(w, http.StatusOK, record)
}

// handleListAnalyses returns every cached analysis for a candidate.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r)
	if !ok {
		return
	}

	records, err := s.db.ListAnalyses(r.Context(), id, companyID)
	if err != nil {
		s.log.Error("failed to list analyses", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}
	if records == nil {
		records = []types.AnalysisRecord{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": records})
}
