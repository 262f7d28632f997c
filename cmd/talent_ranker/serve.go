package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/logger"
	"github.com/daniel/talent-ranker/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for candidate management, ranking and analysis.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg *config.Config
	var err error

	if serveConfigPath != "" {
		cfg, err = config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
	} else {
		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
