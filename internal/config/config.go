// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/seo-article-writer/internal/schemas"
	"github.com/jonathan/seo-article-writer/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Article
	Language string `json:"language,omitempty"`                             // Target language
	MinWords int    `json:"min_words,omitempty" validate:"omitempty,gte=1"` // Minimum word count
	MaxWords int    `json:"max_words,omitempty" validate:"omitempty,gte=1"` // Maximum word count
	Format   string `json:"format,omitempty"`                               // HTML, Markdown, md or GitHub
	FileName string `json:"file_name,omitempty"`                            // Output file name (defaults to the topic)

	// Service
	Provider    string   `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai"` // Generative service provider
	Model       string   `json:"model,omitempty"`                                             // Model override for article generation
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`      // Article generation temperature
	APIKey      string   `json:"api_key,omitempty"`                                           // Service API key
	BaseURL     string   `json:"base_url,omitempty" validate:"omitempty,url"`                 // OpenAI-compatible endpoint

	// Enrichment
	ImageBaseURL      string `json:"image_base_url,omitempty" validate:"omitempty,url"`              // Placeholder image prefix
	ImageHeadingLevel int    `json:"image_heading_level,omitempty" validate:"omitempty,min=1,max=6"` // Heading depth that gets images

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the values used for anything neither the config file nor a flag sets.
func Defaults() Config {
	return Config{
		Language:          types.DefaultLanguage,
		Format:            string(types.FormatHTML),
		Provider:          "gemini",
		ImageHeadingLevel: 1,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read, parsed, or has unknown fields.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

	if err := schemas.Validate(schemas.Config, string(data)); err != nil {
		return nil, fmt.Errorf("config error: %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that a word bound is present since that is handled
// by request validation after merging with flags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.MinWords > 0 && c.MaxWords > 0 && c.MinWords > c.MaxWords {
		return fmt.Errorf("config error: 'min_words' (%d) must not exceed 'max_words' (%d)", c.MinWords, c.MaxWords)
	}

	if c.Format != "" {
		if _, err := types.ParseOutputFormat(c.Format); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if strings.TrimSpace(result.Language) == "" {
		result.Language = defaults.Language
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.FileName == "" {
		result.FileName = defaults.FileName
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.ImageBaseURL == "" {
		result.ImageBaseURL = defaults.ImageBaseURL
	}

	// Int fields: use default if zero
	if result.MinWords == 0 {
		result.MinWords = defaults.MinWords
	}
	if result.MaxWords == 0 {
		result.MaxWords = defaults.MaxWords
	}
	if result.ImageHeadingLevel == 0 {
		result.ImageHeadingLevel = defaults.ImageHeadingLevel
	}

	if result.Temperature == nil && defaults.Temperature != nil {
		t := *defaults.Temperature
		result.Temperature = &t
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// OutputFormat parses the configured format.
func (c *Config) OutputFormat() (types.OutputFormat, error) {
	return types.ParseOutputFormat(c.Format)
}
