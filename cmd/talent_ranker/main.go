// Package main provides the entry point for the Talent Ranker CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_ranker",
	Short: "Talent Ranker applicant tracking backend",
	Long:  "Talent Ranker scores and ranks candidates against job descriptions using a deterministic scorer with an optional AI re-ranking pass, exposed via REST API and CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
