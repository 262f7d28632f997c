package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/db"
	"github.com/daniel/talent-ranker/internal/types"
)

// handleDashboard returns the company overview: candidate counts per status,
// the newest activity entries and the most recently touched candidates.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}

	counts, err := s.db.StatusCounts(r.Context(), companyID)
	if err != nil {
		s.log.Error("failed to count statuses", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	// Every status shows up, zero or not.
	for _, status := range types.ValidStatuses {
		if _, present := counts[status]; !present {
			counts[status] = 0
		}
	}

	activity, err := s.db.ListRecentActivity(r.Context(), companyID, 20)
	if err != nil {
		s.log.Error("failed to list activity", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	if activity == nil {
		activity = []types.ActivityRecord{}
	}

	recent, err := s.db.RecentlyUpdatedCandidates(r.Context(), companyID, 10)
	if err != nil {
		s.log.Error("failed to list recent candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	if recent == nil {
		recent = []db.Candidate{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status_counts":     counts,
		"recent_activity":   activity,
		"recent_candidates": recent,
	})
}
