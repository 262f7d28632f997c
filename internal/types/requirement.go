package types

// RequirementRecord holds the structured requirements extracted from a job
// description. Every field is optional: a nil pointer or nil slice means the
// JD did not state that requirement, and the scorer treats absence per factor.
type RequirementRecord struct {
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Role            *string  `json:"role,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Education       *string  `json:"education,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	ProjectKeywords []string `json:"project_keywords,omitempty"`
}

// HasSkills reports whether the record carries at least one required skill.
func (r *RequirementRecord) HasSkills() bool {
	return len(r.Skills) > 0
}

// HasKeywords reports whether the record carries at least one keyword.
func (r *RequirementRecord) HasKeywords() bool {
	return len(r.Keywords) > 0
}
