// Package ranking scores candidate pools against extracted job requirements
// and produces a deterministic ordering, with an optional AI advisory pass.
package ranking

import (
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/daniel/talent-ranker/internal/scoring"
	"github.com/daniel/talent-ranker/internal/types"
)

// maxConcurrentScores bounds the parallel scoring fan-out.
const maxConcurrentScores = 8

// Rank scores every candidate against the requirement and returns them
// sorted by total score descending. The sort is stable: candidates with
// equal totals keep their input order. An empty candidate slice yields an
// empty result; Rank itself never fails, so callers must report upstream
// extraction errors separately instead of passing a zero requirement.
func Rank(req *types.RequirementRecord, candidates []types.CandidateSnapshot, today time.Time) *types.RankingResult {
	ranked := make([]types.RankedCandidate, len(candidates))

	var g errgroup.Group
	g.SetLimit(maxConcurrentScores)
	for i := range candidates {
		g.Go(func() error {
			ranked[i] = types.RankedCandidate{
				Candidate: candidates[i],
				Breakdown: *scoring.Score(&candidates[i], req, today),
			}
			return nil
		})
	}
	_ = g.Wait() // scoring is pure and never errors

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.TotalScore > ranked[j].Breakdown.TotalScore
	})

	return &types.RankingResult{
		Requirement: req,
		Candidates:  ranked,
	}
}
