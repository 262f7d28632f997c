package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/daniel/talent-ranker/internal/llm"
	"github.com/daniel/talent-ranker/internal/prompts"
	"github.com/daniel/talent-ranker/internal/schemas"
	"github.com/daniel/talent-ranker/internal/types"
)

// ResumeProfile is the structured output of resume parsing. Dates arrive as
// free-form strings and decode leniently: anything unparseable becomes an
// absent date rather than a failure.
type ResumeProfile struct {
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone,omitempty"`
	Location    string             `json:"location,omitempty"`
	LinkedInURL string             `json:"linkedin_url,omitempty"`
	GitHubURL   string             `json:"github_url,omitempty"`
	Skills      []string           `json:"skills,omitempty"`
	Experiences []types.Experience `json:"experiences,omitempty"`
	Projects    []types.Project    `json:"projects,omitempty"`
}

// ParseResume extracts a candidate profile from raw resume text. The LLM
// response is schema-validated before unmarshalling; name and email are the
// only hard requirements.
func ParseResume(ctx context.Context, client llm.Client, resumeText string) (*ResumeProfile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ValidationError{Message: "resume text is empty"}
	}

	template := prompts.MustGet("parsing.json", "parse-resume")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to parse resume",
			Cause:   err,
		}
	}

	if err := schemas.Validate(schemas.ResumeProfile, responseText); err != nil {
		return nil, &ValidationError{
			Message: "resume extraction did not match schema",
			Cause:   err,
		}
	}

	var profile ResumeProfile
	if err := json.Unmarshal([]byte(responseText), &profile); err != nil {
		return nil, &ParseError{
			Message: "failed to parse resume JSON",
			Cause:   err,
		}
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	profile.Skills = NormalizeSkills(profile.Skills)

	return &profile, nil
}
