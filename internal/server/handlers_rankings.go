package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/daniel/talent-ranker/internal/logger"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/ranking"
	"github.com/daniel/talent-ranker/internal/types"
)

// createRankingRequest carries the job description to rank against. When
// Rerank is set, an advisory LLM pass reorders the deterministic result.
type createRankingRequest struct {
	JDText string `json:"jd_text"`
	Rerank bool   `json:"rerank,omitempty"`
}

type createRankingResponse struct {
	Requirement *types.RequirementRecord `json:"requirement"`
	Candidates  []types.RankedCandidate  `json:"candidates"`
	Rerank      *types.RerankResult      `json:"rerank,omitempty"`
}

// handleCreateRanking extracts requirements from the JD, scores the
// company's whole pool deterministically and optionally asks the LLM for an
// advisory reorder. Rerank failure degrades to the deterministic order
// instead of failing the request.
func (s *Server) handleCreateRanking(w http.ResponseWriter, r *http.Request) {
	userID, companyID, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req createRankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.JDText) == "" {
		s.errorResponse(w, http.StatusBadRequest, "jd_text is required")
		return
	}

	s.log.Debug("ranking requested",
		zap.String("jd_text", logger.TruncateForLog(req.JDText, 200)),
		zap.Bool("rerank", req.Rerank))

	requirement, err := parsing.ExtractRequirements(r.Context(), s.llm, req.JDText)
	if err != nil {
		s.log.Error("requirement extraction failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	snapshots, err := s.db.ListCandidateSnapshots(r.Context(), companyID)
	if err != nil {
		s.log.Error("failed to load candidate pool", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load candidate pool")
		return
	}

	result := ranking.Rank(requirement, snapshots, time.Now())

	response := createRankingResponse{
		Requirement: requirement,
		Candidates:  result.Candidates,
	}
	if response.Candidates == nil {
		response.Candidates = []types.RankedCandidate{}
	}

	if req.Rerank {
		rerank, err := ranking.Rerank(r.Context(), s.llm, req.JDText, result)
		if err != nil {
			s.log.Warn("rerank failed, keeping deterministic order", zap.Error(err))
		} else {
			response.Rerank = rerank
		}
	}

	s.recordActivity(r, companyID, userID, types.ActivityRankingRun, map[string]any{
		"pool_size": len(snapshots),
		"reranked":  response.Rerank != nil,
	})
	s.jsonResponse(w, http.StatusOK, response)
}
