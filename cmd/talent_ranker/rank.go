package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/ingestion"
	"github.com/daniel/talent-ranker/internal/llm"
	"github.com/daniel/talent-ranker/internal/observability"
	"github.com/daniel/talent-ranker/internal/parsing"
	"github.com/daniel/talent-ranker/internal/ranking"
	"github.com/daniel/talent-ranker/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a candidate pool against a job description",
	Long:  "Extract requirements from a job description (file or URL), score a candidate pool with the deterministic scorer, and print the ranking. Optionally adds an advisory AI re-ranking pass.",
	RunE:  runRank,
}

var (
	rankJDFile     string
	rankJDURL      string
	rankCandidates string
	rankRerank     bool
	rankJSON       bool
	rankUseBrowser bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJDFile, "jd-file", "f", "", "Path to a job description text file")
	rankCmd.Flags().StringVarP(&rankJDURL, "jd-url", "u", "", "URL of a job posting to ingest")
	rankCmd.Flags().StringVarP(&rankCandidates, "candidates", "c", "", "Path to a JSON file with the candidate pool (required)")
	rankCmd.Flags().BoolVar(&rankRerank, "rerank", false, "Add an advisory AI re-ranking pass")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Print the full result as JSON")
	rankCmd.Flags().BoolVar(&rankUseBrowser, "use-browser", false, "Fall back to headless browser rendering for JS-heavy postings")

	_ = rankCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(rankCmd)
}

// rankOutput is the JSON shape printed with --json.
type rankOutput struct {
	Requirement *types.RequirementRecord `json:"requirement"`
	Candidates  []types.RankedCandidate  `json:"candidates"`
	Rerank      *types.RerankResult      `json:"rerank,omitempty"`
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankJDFile == "" && rankJDURL == "" {
		return fmt.Errorf("either --jd-file or --jd-url must be provided")
	}
	if rankJDFile != "" && rankJDURL != "" {
		return fmt.Errorf("--jd-file and --jd-url are mutually exclusive; provide only one")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var jdText string
	if rankJDFile != "" {
		jdText, err = ingestion.JDFromFile(rankJDFile)
	} else {
		jdText, err = ingestion.JDFromURL(ctx, rankJDURL, rankUseBrowser || cfg.UseBrowser)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job description: %w", err)
	}

	snapshots, err := loadCandidates(rankCandidates)
	if err != nil {
		return err
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return executeRank(ctx, client, jdText, snapshots, rankRerank, rankJSON, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// loadCandidates reads a candidate pool from a JSON file.
func loadCandidates(path string) ([]types.CandidateSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var snapshots []types.CandidateSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to parse candidates JSON: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("candidates file %s contains no candidates", path)
	}
	return snapshots, nil
}

// executeRank runs extraction, deterministic ranking and the optional rerank
// pass, then writes the result. A rerank failure keeps the deterministic
// order and is reported on errOut rather than failing the command.
func executeRank(ctx context.Context, client llm.Client, jdText string, snapshots []types.CandidateSnapshot, rerank bool, asJSON bool, out io.Writer, errOut io.Writer) error {
	requirement, err := parsing.ExtractRequirements(ctx, client, jdText)
	if err != nil {
		return fmt.Errorf("failed to extract requirements: %w", err)
	}

	result := ranking.Rank(requirement, snapshots, time.Now())

	var rerankResult *types.RerankResult
	if rerank {
		rerankResult, err = ranking.Rerank(ctx, client, jdText, result)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: rerank failed, keeping deterministic order: %v\n", err)
			rerankResult = nil
		}
	}

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rankOutput{
			Requirement: result.Requirement,
			Candidates:  result.Candidates,
			Rerank:      rerankResult,
		})
	}

	printer := observability.NewPrinter(out)
	printer.PrintRequirement(result.Requirement)
	printer.PrintRanking(result)
	printer.PrintRerank(rerankResult, result)
	return nil
}
