package types

import "github.com/google/uuid"

// Score weights. The five factors sum to 100.
const (
	SkillWeight      = 30.0
	ExperienceWeight = 25.0
	RoleWeight       = 20.0
	LocationWeight   = 10.0
	KeywordWeight    = 15.0
)

// ScoreBreakdown is the full per-candidate scoring output: the total, the five
// factor scores, and the evidence behind each factor. Overfit and Underfit are
// pointers so they only appear in JSON when the experience penalty fired.
type ScoreBreakdown struct {
	TotalScore float64 `json:"total_score"`

	SkillScore    float64  `json:"skill_score"`
	MatchedSkills []string `json:"matched_skills"`

	ExperienceScore     float64 `json:"experience_score"`
	CandidateExperience string  `json:"candidate_experience"`
	RequiredExperience  string  `json:"required_experience"`
	Overfit             *bool   `json:"overfit,omitempty"`
	Underfit            *bool   `json:"underfit,omitempty"`

	RoleScore    float64  `json:"role_score"`
	MatchedRoles []string `json:"matched_roles"`

	LocationScore float64 `json:"location_score"`

	KeywordScore    float64  `json:"keyword_score"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// RankedCandidate pairs a candidate with its score breakdown.
type RankedCandidate struct {
	Candidate CandidateSnapshot `json:"candidate"`
	Breakdown ScoreBreakdown    `json:"breakdown"`
}

// RankingResult is the ordered output of the ranking pipeline. Candidates are
// sorted by TotalScore descending; ties keep input order.
type RankingResult struct {
	Requirement *RequirementRecord `json:"requirement"`
	Candidates  []RankedCandidate  `json:"candidates"`
}

// RerankEntry is one candidate's position in an advisory AI re-ranking.
type RerankEntry struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Summary     string    `json:"summary"`
}

// RerankResult is the advisory output of the AI re-ranking pass. It never
// replaces the deterministic ordering; callers surface it alongside.
type RerankResult struct {
	Order []RerankEntry `json:"order"`
}
