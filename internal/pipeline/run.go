// Package pipeline provides the high-level orchestration for article generation:
// compose, generate, normalize, enrich, render. Stages run strictly in sequence.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seo-article-writer/internal/compose"
	"github.com/jonathan/seo-article-writer/internal/enrich"
	"github.com/jonathan/seo-article-writer/internal/generation"
	"github.com/jonathan/seo-article-writer/internal/llm"
	"github.com/jonathan/seo-article-writer/internal/normalize"
	"github.com/jonathan/seo-article-writer/internal/observability"
	"github.com/jonathan/seo-article-writer/internal/pipeline/steps"
	"github.com/jonathan/seo-article-writer/internal/rendering"
	"github.com/jonathan/seo-article-writer/internal/types"
	"github.com/jonathan/seo-article-writer/internal/validation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Out        io.Writer // step lines and warnings; stdout when nil
	Verbose    bool
	OnProgress ProgressCallback

	GeneratorOptions []generation.Option
	EnricherOptions  []enrich.Option
}

// Target describes where and how the article is written.
type Target struct {
	Format   types.OutputFormat
	FileName string // defaults to the topic
	Dir      string // joined with relative file names; current directory when empty
}

// Pipeline runs one article generation at a time against a single client.
type Pipeline struct {
	out        io.Writer
	verbose    bool
	onProgress ProgressCallback
	printer    *observability.Printer
	generator  *generation.Generator
	enricher   *enrich.Enricher
}

// New creates a Pipeline. The client is owned by the caller.
func New(client llm.Client, opts Options) *Pipeline {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	genOpts := append([]generation.Option{generation.WithOutput(out)}, opts.GeneratorOptions...)

	return &Pipeline{
		out:        out,
		verbose:    opts.Verbose,
		onProgress: opts.OnProgress,
		printer:    observability.NewPrinter(out),
		generator:  generation.New(client, genOpts...),
		enricher:   enrich.New(client, out, opts.EnricherOptions...),
	}
}

// Run generates, enriches and writes one article. On a fatal error no file is written.
func (p *Pipeline) Run(ctx context.Context, req types.GenerationRequest, target Target) (*types.RenderedOutput, error) {
	summary, err := p.RunWithSummary(ctx, req, target)
	if err != nil {
		return nil, err
	}
	return summary.Output, nil
}

// runState carries artifacts between stages.
type runState struct {
	summary   *types.RunSummary
	completed map[string]bool

	prompt  string
	raw     string
	article string
	bundle  types.EnrichmentBundle
}

// stageOutcome is what a stage reports back for progress events and the summary.
type stageOutcome struct {
	message  string
	content  any
	degraded []string
}

// RunWithSummary is Run, also returning per-stage results. The summary is returned
// even when the run fails.
func (p *Pipeline) RunWithSummary(ctx context.Context, req types.GenerationRequest, target Target) (*types.RunSummary, error) {
	state := &runState{
		summary: &types.RunSummary{
			RunID: uuid.New().String(),
			Topic: req.Topic,
		},
		completed: make(map[string]bool),
	}

	if err := req.Validate(); err != nil {
		return state.summary, fmt.Errorf("invalid request: %w", err)
	}
	if target.Format == "" {
		target.Format = types.FormatHTML
	}

	validation.WarnIfSuspicious(p.out, validation.CheckBasicHeuristics(req.Topic), "topic")
	if p.verbose {
		p.printer.PrintRequest(&req, target.Format)
	}

	err := p.runStages(ctx, state, req, target)
	if p.verbose {
		p.printer.PrintRunSummary(state.summary)
	}
	if err != nil {
		return state.summary, err
	}

	_, _ = fmt.Fprintf(p.out, "Article generated and saved to %s\n", state.summary.Output.FilePath)
	return state.summary, nil
}

func (p *Pipeline) runStages(ctx context.Context, state *runState, req types.GenerationRequest, target Target) error {
	if err := p.runStage(state, steps.StageCompose, func() (stageOutcome, error) {
		state.prompt = compose.BuildPrompt(req)
		return stageOutcome{message: fmt.Sprintf("Composed prompt for %q", req.Topic)}, nil
	}); err != nil {
		return err
	}

	if err := p.runStage(state, steps.StageGeneration, func() (stageOutcome, error) {
		raw, err := p.generator.Generate(ctx, state.prompt)
		if err != nil {
			return stageOutcome{}, err
		}
		state.raw = raw
		return stageOutcome{message: fmt.Sprintf("Generated %d characters", len(raw))}, nil
	}); err != nil {
		return err
	}

	if err := p.runStage(state, steps.StageNormalize, func() (stageOutcome, error) {
		state.article = normalize.Article(state.raw, req.Topic)
		if p.verbose {
			p.printer.PrintOutline(state.article)
		}
		return stageOutcome{message: "Normalized heading structure", content: state.article}, nil
	}); err != nil {
		return err
	}

	state.bundle = enrich.Fallback(state.article, req.Topic)
	if err := p.runStage(state, steps.StageEnrichment, func() (stageOutcome, error) {
		state.bundle = p.enricher.Enrich(ctx, state.article, req.Topic, target.Format)
		if p.verbose {
			p.printer.PrintEnrichment(&state.bundle)
		}
		return stageOutcome{
			message:  fmt.Sprintf("Enriched article (%d fallbacks)", len(state.bundle.Fallbacks)),
			content:  state.bundle,
			degraded: state.bundle.Fallbacks,
		}, nil
	}); err != nil {
		return err
	}

	return p.runStage(state, steps.StageRender, func() (stageOutcome, error) {
		output, err := rendering.Render(
			state.bundle.FinalMarkdown(),
			target.Format,
			state.bundle.Description,
			state.bundle.Keywords,
			req.Topic,
			outputName(target, req.Topic),
		)
		if err != nil {
			return stageOutcome{}, err
		}
		state.summary.Output = output
		return stageOutcome{message: fmt.Sprintf("Wrote %s", output.FilePath), content: output}, nil
	})
}

// runStage checks dependencies, prints the step line, times fn and records the result.
// A failing non-fatal stage is recorded as degraded and the run continues without it.
func (p *Pipeline) runStage(state *runState, name string, fn func() (stageOutcome, error)) error {
	def := steps.StageRegistry[name]
	if err := steps.ValidateDependencies(state.completed, name); err != nil {
		return err
	}
	skipped := steps.MissingOptional(state.completed, name)

	_, _ = fmt.Fprintf(p.out, "Step %d/%d: %s...\n", def.Position, len(steps.StageRegistry), def.Description)

	start := time.Now()
	outcome, err := safeRun(fn)
	result := types.StageResult{
		Stage:    name,
		Status:   types.StatusOK,
		Duration: time.Since(start),
		Degraded: append(skipped, outcome.degraded...),
	}

	if err != nil {
		result.Error = err.Error()
		if def.Fatal {
			result.Status = types.StatusFailed
			state.summary.Stages = append(state.summary.Stages, result)
			p.emit(state.summary.RunID, def, "Failed: "+err.Error(), nil)
			return fmt.Errorf("%s stage: %w", name, err)
		}

		_, _ = fmt.Fprintf(p.out, "Warning: %s stage failed, continuing without it: %v\n", name, err)
		result.Status = types.StatusDegraded
		result.Degraded = append(result.Degraded, name)
		state.summary.Stages = append(state.summary.Stages, result)
		p.emit(state.summary.RunID, def, "Skipped: "+err.Error(), nil)
		return nil
	}

	if len(result.Degraded) > 0 {
		result.Status = types.StatusDegraded
	}
	state.summary.Stages = append(state.summary.Stages, result)
	state.completed[name] = true
	p.emit(state.summary.RunID, def, outcome.message, outcome.content)
	return nil
}

// safeRun calls fn, turning a panic into an error.
func safeRun(fn func() (stageOutcome, error)) (outcome stageOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return fn()
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(runID string, def steps.StageDefinition, message string, content any) {
	if p.onProgress == nil {
		return
	}
	p.onProgress(ProgressEvent{
		Step:     def.Name,
		Category: def.Category,
		Message:  message,
		RunID:    runID,
		Content:  content,
	})
}

// outputName resolves the file name (without extension) relative to the target directory.
func outputName(target Target, topic string) string {
	name := strings.TrimSpace(target.FileName)
	if name == "" {
		name = topic
	}
	if target.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(target.Dir, name)
}
