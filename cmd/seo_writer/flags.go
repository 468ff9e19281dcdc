package main

import (
	"fmt"

	"github.com/jonathan/seo-article-writer/internal/config"
	"github.com/jonathan/seo-article-writer/internal/types"
	"github.com/spf13/cobra"
)

// requestFlags are shared by every command that builds a GenerationRequest.
type requestFlags struct {
	configPath   string
	minWords     int
	maxWords     int
	language     string
	format       string
	githubReadme bool
	verbose      bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().IntVar(&f.minWords, "min-words", 0, "Minimum number of words")
	cmd.Flags().IntVar(&f.maxWords, "max-words", 0, "Maximum number of words")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Target language (default English)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: HTML, Markdown, md or GitHub (default HTML)")
	cmd.Flags().BoolVar(&f.githubReadme, "github-readme", false, "Reformat the article as a GitHub README (forces --format GitHub)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// load reads the config file, if any, and applies only the flags that were explicitly set.
func (f *requestFlags) load(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loadedCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if f.verbose {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded config from: %s\n", f.configPath)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("min-words") {
		cfg.MinWords = f.minWords
	}
	if flags.Changed("max-words") {
		cfg.MaxWords = f.maxWords
	}
	if flags.Changed("language") {
		cfg.Language = f.language
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, nil
}

// finish merges defaults, applies --github-readme and validates.
func (f *requestFlags) finish(cfg config.Config) (config.Config, error) {
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if f.githubReadme {
		cfg.Format = string(types.FormatGitHub)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// request builds and validates the GenerationRequest for topic.
func request(topic string, cfg config.Config) (types.GenerationRequest, error) {
	if cfg.MinWords == 0 && cfg.MaxWords == 0 {
		return types.GenerationRequest{}, fmt.Errorf("at least one of --min-words or --max-words must be provided (via flag or config)")
	}

	req := types.NewGenerationRequest(topic, cfg.Language, positive(cfg.MinWords), positive(cfg.MaxWords))
	if err := req.Validate(); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

func positive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
