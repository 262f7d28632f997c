package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/daniel/talent-ranker/internal/types"
)

// Score evaluates a candidate against a requirement record and returns the
// full factor breakdown. The function is pure: identical inputs (including
// today) always produce an identical breakdown. Absent requirement fields are
// handled per factor; skills default to full credit while role, location and
// keywords default to zero.
func Score(candidate *types.CandidateSnapshot, req *types.RequirementRecord, today time.Time) *types.ScoreBreakdown {
	b := &types.ScoreBreakdown{
		MatchedSkills:   []string{},
		MatchedRoles:    []string{},
		MatchedKeywords: []string{},
	}

	scoreSkills(b, candidate, req)
	scoreExperience(b, candidate, req, today)
	scoreRole(b, candidate, req)
	scoreLocation(b, candidate, req)
	scoreKeywords(b, candidate, req)

	b.TotalScore = b.SkillScore + b.ExperienceScore + b.RoleScore + b.LocationScore + b.KeywordScore
	return b
}

// scoreSkills awards up to 30 points for the fraction of required skills the
// candidate holds. A requirement with no skills awards full credit.
func scoreSkills(b *types.ScoreBreakdown, candidate *types.CandidateSnapshot, req *types.RequirementRecord) {
	if !req.HasSkills() {
		b.SkillScore = types.SkillWeight
		return
	}

	have := make(map[string]bool, len(candidate.Skills))
	for _, s := range candidate.Skills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	for _, want := range req.Skills {
		if have[strings.ToLower(strings.TrimSpace(want))] {
			b.MatchedSkills = append(b.MatchedSkills, want)
		}
	}

	b.SkillScore = float64(len(b.MatchedSkills)) / float64(len(req.Skills)) * types.SkillWeight
}

// scoreExperience awards up to 25 points by banding the gap between the
// candidate's total years and the required years, then applies flat overfit
// and underfit penalties outside the comfortable range. The post-penalty
// score is not clamped at zero.
func scoreExperience(b *types.ScoreBreakdown, candidate *types.CandidateSnapshot, req *types.RequirementRecord, today time.Time) {
	years := TotalYears(candidate.Experiences, today)
	b.CandidateExperience = fmt.Sprintf("%.2f years", years)

	if req.ExperienceYears == nil {
		b.ExperienceScore = types.ExperienceWeight
		b.RequiredExperience = "N/A"
		return
	}

	required := *req.ExperienceYears
	b.RequiredExperience = fmt.Sprintf("%d years", required)

	diff := years - float64(required)
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	var score float64
	switch {
	case abs <= 1:
		score = 25
	case abs <= 3:
		score = 15
	default:
		score = 5
	}

	if diff > 5 {
		score -= 5
		overfit := true
		b.Overfit = &overfit
	}
	if diff < -3 {
		score -= 5
		underfit := true
		b.Underfit = &underfit
	}

	b.ExperienceScore = score
}

// scoreRole awards 20 points for an exact case-insensitive title match, 10
// when any candidate role merely contains the required role, and 0 otherwise.
// The containment check runs one way only: the candidate's title must contain
// the requirement, so "Senior Engineer" matches a required "Engineer" but not
// the reverse. No required role means no role credit.
func scoreRole(b *types.ScoreBreakdown, candidate *types.CandidateSnapshot, req *types.RequirementRecord) {
	if req.Role == nil {
		return
	}

	want := strings.ToLower(strings.TrimSpace(*req.Role))
	if want == "" {
		return
	}

	exact := false
	for _, exp := range candidate.Experiences {
		roleLower := strings.ToLower(exp.Role)
		if strings.Contains(roleLower, want) {
			b.MatchedRoles = append(b.MatchedRoles, exp.Role)
			if roleLower == want {
				exact = true
			}
		}
	}

	switch {
	case exact:
		b.RoleScore = types.RoleWeight
	case len(b.MatchedRoles) > 0:
		b.RoleScore = 10
	}
}

// scoreLocation awards 10 points for an exact case-insensitive location
// match and 5 when the required location appears inside the candidate's.
// The candidate location falls back to the LinkedIn URL when unset, which
// can only produce the substring tier.
func scoreLocation(b *types.ScoreBreakdown, candidate *types.CandidateSnapshot, req *types.RequirementRecord) {
	if req.Location == nil {
		return
	}

	want := strings.ToLower(strings.TrimSpace(*req.Location))
	have := strings.ToLower(strings.TrimSpace(candidate.ResolvedLocation()))
	if want == "" || have == "" {
		return
	}

	switch {
	case have == want:
		b.LocationScore = types.LocationWeight
	case strings.Contains(have, want):
		b.LocationScore = 5
	}
}

// scoreKeywords awards up to 15 points for the fraction of keywords found in
// a corpus built from the candidate's skills, role titles and location. The
// corpus is a flat lowercase string, so keyword hits are substring hits.
func scoreKeywords(b *types.ScoreBreakdown, candidate *types.CandidateSnapshot, req *types.RequirementRecord) {
	if !req.HasKeywords() {
		return
	}

	parts := make([]string, 0, len(candidate.Skills)+len(candidate.Experiences)+1)
	parts = append(parts, candidate.Skills...)
	for _, exp := range candidate.Experiences {
		parts = append(parts, exp.Role)
	}
	parts = append(parts, candidate.ResolvedLocation())
	corpus := strings.ToLower(strings.Join(parts, " "))

	for _, kw := range req.Keywords {
		if strings.Contains(corpus, strings.ToLower(strings.TrimSpace(kw))) {
			b.MatchedKeywords = append(b.MatchedKeywords, kw)
		}
	}

	b.KeywordScore = float64(len(b.MatchedKeywords)) / float64(len(req.Keywords)) * types.KeywordWeight
}
