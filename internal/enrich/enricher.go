// Package enrich derives best-effort SEO metadata and illustrations from a normalized article.
// Every sub-operation makes a single attempt; on failure it writes a warning and
// substitutes a documented fallback value instead of returning an error.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/llm"
	"github.com/jonathan/seo-article-writer/internal/schemas"
	"github.com/jonathan/seo-article-writer/internal/types"
)

// Fallback defaults
const (
	DefaultKeywords     = "blog, SEO, article"
	DefaultImageBaseURL = "https://loremflickr.com/1280/720/"
	DefaultHeadingLevel = 1
)

// Sub-operation names, as recorded in EnrichmentBundle.Fallbacks.
const (
	OpKeywords    = "keywords"
	OpDescription = "description"
	OpImage       = "image"
	OpReadme      = "readme"
)

// Enricher runs the enrichment sub-operations against one client.
type Enricher struct {
	client       llm.Client
	out          io.Writer
	tier         llm.ModelTier
	imageBaseURL string
	headingLevel int
	pick         func(n int) int
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithTier selects the model tier used for every enrichment call.
func WithTier(tier llm.ModelTier) Option {
	return func(e *Enricher) { e.tier = tier }
}

// WithImageBaseURL sets the placeholder image service prefix.
func WithImageBaseURL(base string) Option {
	return func(e *Enricher) {
		if base != "" {
			e.imageBaseURL = base
		}
	}
}

// WithHeadingLevel sets which heading depth receives an image.
func WithHeadingLevel(level int) Option {
	return func(e *Enricher) {
		if level >= 1 && level <= 6 {
			e.headingLevel = level
		}
	}
}

// WithPicker replaces the pseudo-random topic picker. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(e *Enricher) {
		if pick != nil {
			e.pick = pick
		}
	}
}

// New creates an Enricher. Warnings go to out (stdout when nil).
func New(client llm.Client, out io.Writer, opts ...Option) *Enricher {
	if out == nil {
		out = os.Stdout
	}
	e := &Enricher{
		client:       client,
		out:          out,
		tier:         llm.TierLite,
		imageBaseURL: DefaultImageBaseURL,
		headingLevel: DefaultHeadingLevel,
		pick:         rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich runs the sub-operations in a fixed order: keywords and description from the
// normalized text, then image insertion, then the README reformat of the illustrated
// document when format is GitHub. It never fails.
func (e *Enricher) Enrich(ctx context.Context, normalized, topic string, format types.OutputFormat) types.EnrichmentBundle {
	var bundle types.EnrichmentBundle

	keywords, err := e.keywords(ctx, normalized)
	if err != nil {
		e.warn("keyword extraction", DefaultKeywords, err)
		keywords = DefaultKeywords
		bundle.Fallbacks = append(bundle.Fallbacks, OpKeywords)
	}
	bundle.Keywords = keywords

	description, err := e.description(ctx, normalized)
	if err != nil {
		e.warn("meta description", topic, err)
		description = topic
		bundle.Fallbacks = append(bundle.Fallbacks, OpDescription)
	}
	bundle.Description = description

	illustrated, failed := e.insertImages(ctx, normalized)
	if failed > 0 {
		bundle.Fallbacks = append(bundle.Fallbacks, OpImage)
	}
	bundle.IllustratedMarkdown = illustrated

	if format == types.FormatGitHub {
		readme, err := e.readme(ctx, illustrated)
		if err != nil {
			e.warn("README reformat", "the unmodified document", err)
			readme = illustrated
			bundle.Fallbacks = append(bundle.Fallbacks, OpReadme)
		}
		bundle.ReadmeMarkdown = readme
	}

	return bundle
}

// Fallback is the bundle used when enrichment cannot run at all: every field takes its
// documented fallback and the document is left unillustrated.
func Fallback(normalized, topic string) types.EnrichmentBundle {
	return types.EnrichmentBundle{
		Keywords:            DefaultKeywords,
		Description:         topic,
		IllustratedMarkdown: normalized,
		Fallbacks:           []string{OpKeywords, OpDescription, OpImage},
	}
}

func (e *Enricher) warn(what, fallback string, err error) {
	_, _ = fmt.Fprintf(e.out, "Warning: %s failed, using %q: %v\n", what, fallback, err)
}

// decodeJSON cleans a structured response, checks it against the named schema and unmarshals it.
func decodeJSON(raw, schemaName string, v any) error {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemaName, cleaned); err != nil {
		return err
	}
	return json.Unmarshal([]byte(cleaned), v)
}

// cleanList trims entries, drops blanks and removes case-insensitive duplicates, keeping order.
func cleanList(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.Join(strings.Fields(item), " ")
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}
	return result
}
