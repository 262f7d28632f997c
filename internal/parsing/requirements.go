// Package parsing extracts structured records from job descriptions and
// resumes using LLM extraction with JSON Schema validation.
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

// ExtractRequirements extracts a structured RequirementRecord from job
// description text. The LLM response must satisfy the embedded requirement
// schema; a violation is an extraction failure, never a silently empty
// record. Every field of the result is optional by contract.
func ExtractRequirements(ctx context.Context, client llm.Client, jdText string) (*types.RequirementRecord, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, &ValidationError{Message: "job description text is empty"}
	}

	template := prompts.MustGet("parsing.json", "extract-requirements")
	prompt := prompts.Format(template, map[string]string{
		"JDText": jdText,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to extract job requirements",
			Cause:   err,
		}
	}

	if err := schemas.Validate(schemas.RequirementRecord, responseText); err != nil {
		return nil, &ValidationError{
			Message: "requirement extraction did not match schema",
			Cause:   err,
		}
	}

	var record types.RequirementRecord
	if err := json.Unmarshal([]byte(responseText), &record); err != nil {
		return nil, &ParseError{
			Message: "failed to parse requirement JSON",
			Cause:   err,
		}
	}

	postProcessRequirements(&record)
	return &record, nil
}

// postProcessRequirements canonicalizes list fields and drops empty optional
// values so that absence is always represented as nil.
func postProcessRequirements(record *types.RequirementRecord) {
	record.Skills = NormalizeSkills(record.Skills)
	record.Keywords = NormalizeKeywords(record.Keywords)
	record.ProjectKeywords = NormalizeKeywords(record.ProjectKeywords)

	record.Role = trimOrNil(record.Role)
	record.Location = trimOrNil(record.Location)
	record.Education = trimOrNil(record.Education)
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
