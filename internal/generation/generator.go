// Package generation streams the article from the generative service with a bounded retry.
package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/seo-article-writer/internal/llm"
	"github.com/jonathan/seo-article-writer/internal/retry"
)

// Retry and sampling defaults for article generation.
const (
	DefaultMaxAttempts         = 3
	DefaultDelay               = 2 * time.Second
	DefaultTemperature float32 = 0.3
)

// Generator turns a prompt into a RawArticle.
type Generator struct {
	client      llm.Client
	tier        llm.ModelTier
	temperature float32
	maxAttempts int
	delay       time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	out         io.Writer
}

// Option configures a Generator.
type Option func(*Generator)

// WithTier selects the model tier used for the article.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(g *Generator) { g.temperature = t }
}

// WithRetry overrides the attempt budget and the fixed delay.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(g *Generator) {
		g.maxAttempts = maxAttempts
		g.delay = delay
	}
}

// WithSleep replaces the inter-attempt wait; tests use it to avoid real delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Generator) { g.sleep = sleep }
}

// WithOutput sets where retry warnings are written.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// New creates a Generator bound to client.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:      client,
		tier:        llm.TierStandard,
		temperature: DefaultTemperature,
		maxAttempts: DefaultMaxAttempts,
		delay:       DefaultDelay,
		out:         io.Discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate streams the article for prompt, retrying the whole call on any failure.
// It returns *GenerationError once every attempt has failed.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	policy := retry.Policy{
		MaxAttempts: g.maxAttempts,
		Delay:       g.delay,
		Sleep:       g.sleep,
		Retryable:   isRetryable,
		OnRetry: func(attempt int, err error) {
			_, _ = fmt.Fprintf(g.out, "Warning: generation attempt %d/%d failed: %v (retrying in %s)\n",
				attempt, g.maxAttempts, err, g.delay)
		},
	}

	raw, err := retry.Do(ctx, policy, func(ctx context.Context, _ int) (string, error) {
		return g.stream(ctx, prompt)
	})
	if err != nil {
		attempts := g.maxAttempts
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			attempts = exhausted.Attempts
			err = exhausted.Last
		}
		return "", &GenerationError{Attempts: attempts, Cause: err}
	}

	return raw, nil
}

// stream consumes one streamed response in arrival order, keeping only text events.
func (g *Generator) stream(ctx context.Context, prompt string) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stream consumption panicked: %v", r)
		}
	}()

	temperature := g.temperature
	var sb strings.Builder
	for event, streamErr := range g.client.StreamContent(ctx, prompt, g.tier, llm.StreamOptions{Temperature: &temperature}) {
		if streamErr != nil {
			return "", streamErr
		}
		if event.Kind != llm.EventTextGeneration {
			continue
		}
		sb.WriteString(event.Text)
	}

	return sb.String(), nil
}

// isRetryable treats every failure as transient except caller cancellation.
func isRetryable(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
