// Package config provides configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application configuration. Values load from a JSON file,
// from environment variables, or both; the file acts as defaults and the
// environment wins. API keys are carried here and injected into
// constructors, never read from package globals.
type Config struct {
	// Server
	Port    int  `json:"port,omitempty"`
	LogJSON bool `json:"log_json,omitempty"`
	Debug   bool `json:"debug,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"`

	// External services
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`
	ScrapingDogAPIKey string `json:"scrapingdog_api_key,omitempty"`

	// JD ingestion
	UseBrowser bool `json:"use_browser,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Callers load .env
// beforehand (godotenv in main). Missing values stay zero; Validate decides
// what a given command actually requires.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		ScrapingDogAPIKey: os.Getenv("SCRAPINGDOG_API_KEY"),
		LogJSON:           os.Getenv("LOG_JSON") == "true",
		Debug:             os.Getenv("DEBUG") == "true",
		UseBrowser:        os.Getenv("USE_BROWSER") == "true",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// ApplyEnv overlays environment values on top of file-loaded config.
func (c *Config) ApplyEnv() error {
	env, err := FromEnv()
	if err != nil {
		return err
	}

	if env.Port != 0 {
		c.Port = env.Port
	}
	if env.DatabaseURL != "" {
		c.DatabaseURL = env.DatabaseURL
	}
	if env.GeminiAPIKey != "" {
		c.GeminiAPIKey = env.GeminiAPIKey
	}
	if env.ScrapingDogAPIKey != "" {
		c.ScrapingDogAPIKey = env.ScrapingDogAPIKey
	}
	if env.LogJSON {
		c.LogJSON = true
	}
	if env.Debug {
		c.Debug = true
	}
	if env.UseBrowser {
		c.UseBrowser = true
	}
	return nil
}

// ValidateServe checks the settings the HTTP server requires.
func (c *Config) ValidateServe() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	return nil
}

// PortOrDefault returns the configured port, defaulting to 8080.
func (c *Config) PortOrDefault() int {
	if c.Port == 0 {
		return 8080
	}
	return c.Port
}
