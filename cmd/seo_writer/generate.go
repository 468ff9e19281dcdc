package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/config"
	"github.com/jonathan/seo-article-writer/internal/enrich"
	"github.com/jonathan/seo-article-writer/internal/generation"
	"github.com/jonathan/seo-article-writer/internal/llm"
	"github.com/jonathan/seo-article-writer/internal/pipeline"
	"github.com/spf13/cobra"
)

// newClient is swapped in tests for a mock service.
var newClient = llm.NewClient

type generateFlags struct {
	requestFlags

	fileName          string
	outDir            string
	apiKey            string
	provider          string
	model             string
	baseURL           string
	imageBaseURL      string
	imageHeadingLevel int
	temperature       float64
}

func newGenerateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate an SEO article for a topic and save it",
		Long: `Generate composes a prompt for the topic, streams the article from the
generative service (retrying transient failures), normalizes its headings,
derives keywords, a meta description and images, and writes the result.`,
		Example: `  seo_writer generate "Electric Bicycles" --min-words 800
  seo_writer generate "Electric Bicycles" --max-words 1500 -f Markdown -o bikes
  seo_writer generate "Electric Bicycles" --config config.json --github-readme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f, args[0])
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.fileName, "file-name", "o", "", "Output file name without extension (defaults to the topic)")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "Directory to write the article into (defaults to the current directory)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Service API key (overrides GEMINI_API_KEY / OPENAI_API_KEY)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Generative service provider: gemini or openai (default gemini)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model used for article generation")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "OpenAI-compatible endpoint")
	cmd.Flags().StringVar(&f.imageBaseURL, "image-base-url", "", "Placeholder image URL prefix (default "+enrich.DefaultImageBaseURL+")")
	cmd.Flags().IntVar(&f.imageHeadingLevel, "image-heading-level", 0, "Heading level that receives an image (1-6, default 1)")
	cmd.Flags().Float64Var(&f.temperature, "temperature", 0, "Article generation temperature (0-2)")

	return cmd
}

func (f *generateFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := f.requestFlags.load(cmd)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("file-name") {
		cfg.FileName = f.fileName
	}
	if flags.Changed("provider") {
		cfg.Provider = f.provider
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("image-base-url") {
		cfg.ImageBaseURL = f.imageBaseURL
	}
	if flags.Changed("image-heading-level") {
		cfg.ImageHeadingLevel = f.imageHeadingLevel
	}
	if flags.Changed("temperature") {
		t := f.temperature
		cfg.Temperature = &t
	}

	return f.finish(cfg)
}

func runGenerate(cmd *cobra.Command, f *generateFlags, topic string) error {
	cfg, err := f.load(cmd)
	if err != nil {
		return err
	}

	req, err := request(topic, cfg)
	if err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	apiKey, err := config.ResolveAPIKey(f.apiKey, cfg.APIKey, cfg.Provider)
	if err != nil {
		return err
	}

	llmConfig, err := llm.ConfigFor(cfg.Provider)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Model) != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}
	llmConfig.BaseURL = cfg.BaseURL

	ctx := cmd.Context()
	client, err := newClient(ctx, llmConfig, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var genOpts []generation.Option
	if cfg.Temperature != nil {
		genOpts = append(genOpts, generation.WithTemperature(float32(*cfg.Temperature)))
	}
	var enrichOpts []enrich.Option
	if cfg.ImageBaseURL != "" {
		enrichOpts = append(enrichOpts, enrich.WithImageBaseURL(cfg.ImageBaseURL))
	}
	enrichOpts = append(enrichOpts, enrich.WithHeadingLevel(cfg.ImageHeadingLevel))

	p := pipeline.New(client, pipeline.Options{
		Out:              cmd.OutOrStdout(),
		Verbose:          cfg.Verbose,
		GeneratorOptions: genOpts,
		EnricherOptions:  enrichOpts,
	})

	_, err = p.Run(ctx, req, pipeline.Target{
		Format:   format,
		FileName: cfg.FileName,
		Dir:      f.outDir,
	})
	return err
}
