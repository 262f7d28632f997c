package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest-jd",
	Short: "Ingest a job description from a text file or URL",
	Long:  "Fetch a job description from a text file or URL, strip boilerplate, and print the cleaned text.",
	RunE:  runIngest,
}

var (
	ingestFile       string
	ingestURL        string
	ingestOut        string
	ingestUseBrowser bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "text-file", "t", "", "Path to text file containing the job description")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job description from")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write cleaned text to this file instead of stdout")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Fall back to headless browser rendering for JS-heavy postings")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var cleaned string
	if ingestFile != "" {
		cleaned, err = ingestion.JDFromFile(ingestFile)
	} else {
		cleaned, err = ingestion.JDFromURL(ctx, ingestURL, ingestUseBrowser || cfg.UseBrowser)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job description: %w", err)
	}

	if ingestOut != "" {
		if err := os.WriteFile(ingestOut, []byte(cleaned+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleaned job description written to %s\n", ingestOut)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cleaned)
	return nil
}
