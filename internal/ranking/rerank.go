package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daniel/talent-ranker/internal/llm"
	"github.com/daniel/talent-ranker/internal/prompts"
	"github.com/daniel/talent-ranker/internal/schemas"
	"github.com/daniel/talent-ranker/internal/types"
)

// rerankResponse is the wire shape of the LLM re-ranking output. Candidate
// ids arrive as strings and are parsed after schema validation.
type rerankResponse struct {
	Order []struct {
		CandidateID string `json:"candidate_id"`
		Summary     string `json:"summary"`
	} `json:"order"`
}

// Rerank asks the LLM for an advisory ordering of an already-scored
// candidate list. The deterministic ranking stays the source of truth:
// callers surface the advisory order alongside it and degrade to the
// deterministic order when this call fails. Entries referencing unknown
// candidate ids are dropped rather than failing the whole pass.
func Rerank(ctx context.Context, client llm.Client, jdText string, ranked *types.RankingResult) (*types.RerankResult, error) {
	if len(ranked.Candidates) == 0 {
		return &types.RerankResult{Order: []types.RerankEntry{}}, nil
	}

	template := prompts.MustGet("ranking.json", "rerank-candidates")
	prompt := prompts.Format(template, map[string]string{
		"JDText":     jdText,
		"Candidates": formatCandidates(ranked),
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("rerank generation failed: %w", err)
	}

	if err := schemas.Validate(schemas.RerankResult, responseText); err != nil {
		return nil, fmt.Errorf("rerank response rejected: %w", err)
	}

	var response rerankResponse
	if err := json.Unmarshal([]byte(responseText), &response); err != nil {
		return nil, fmt.Errorf("failed to parse rerank response: %w", err)
	}

	known := make(map[uuid.UUID]bool, len(ranked.Candidates))
	for _, rc := range ranked.Candidates {
		known[rc.Candidate.ID] = true
	}

	result := &types.RerankResult{Order: make([]types.RerankEntry, 0, len(response.Order))}
	for _, entry := range response.Order {
		id, err := uuid.Parse(entry.CandidateID)
		if err != nil || !known[id] {
			continue
		}
		result.Order = append(result.Order, types.RerankEntry{
			CandidateID: id,
			Summary:     entry.Summary,
		})
	}

	return result, nil
}

// formatCandidates renders the scored candidates as a compact evidence list
// for the re-ranking prompt.
func formatCandidates(ranked *types.RankingResult) string {
	var sb strings.Builder
	for i, rc := range ranked.Candidates {
		sb.WriteString(fmt.Sprintf("%d. candidate_id: %s\n", i+1, rc.Candidate.ID))
		sb.WriteString(fmt.Sprintf("   name: %s\n", rc.Candidate.Name))
		sb.WriteString(fmt.Sprintf("   deterministic_score: %.1f\n", rc.Breakdown.TotalScore))
		if len(rc.Breakdown.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("   matched_skills: %s\n", strings.Join(rc.Breakdown.MatchedSkills, ", ")))
		}
		sb.WriteString(fmt.Sprintf("   experience: %s (required %s)\n",
			rc.Breakdown.CandidateExperience, rc.Breakdown.RequiredExperience))
		if len(rc.Candidate.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("   skills: %s\n", strings.Join(rc.Candidate.Skills, ", ")))
		}
	}
	return sb.String()
}
