package analysis

import (
	"context"
	"encoding/json"

	"github.com/daniel/talent-ranker/internal/llm"
	"github.com/daniel/talent-ranker/internal/prompts"
	"github.com/daniel/talent-ranker/internal/schemas"
	"github.com/daniel/talent-ranker/internal/types"
)

// NewGenerator returns a GeneratorFunc backed by the LLM client. Output is
// schema-validated before it is accepted; an invalid response is a
// generation failure, not a partially stored analysis.
func NewGenerator(client llm.Client) GeneratorFunc {
	return func(ctx context.Context, profileDoc, jdText string) (*types.CandidateAnalysis, error) {
		template := prompts.MustGet("analysis.json", "analyze-candidate")
		prompt := prompts.Format(template, map[string]string{
			"Profile": profileDoc,
			"JDText":  jdText,
		})

		responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			return nil, err
		}

		if err := schemas.Validate(schemas.CandidateAnalysis, responseText); err != nil {
			return nil, err
		}

		var result types.CandidateAnalysis
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			return nil, err
		}
		return &result, nil
	}
}
