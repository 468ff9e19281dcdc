// Package types provides type definitions for structured data used throughout the article writer.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultLanguage is used when a request does not name a target language.
const DefaultLanguage = "English"

// GenerationRequest describes one article to generate.
// At least one of MinWords/MaxWords must be present.
type GenerationRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Language string `json:"language,omitempty"`
	MinWords *int   `json:"min_words,omitempty" validate:"omitempty,gte=1"`
	MaxWords *int   `json:"max_words,omitempty" validate:"omitempty,gte=1"`
}

// NewGenerationRequest builds a request, defaulting the language to English.
func NewGenerationRequest(topic, language string, minWords, maxWords *int) GenerationRequest {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return GenerationRequest{
		Topic:    topic,
		Language: language,
		MinWords: minWords,
		MaxWords: maxWords,
	}
}

// Validate checks field constraints and that the word bounds are ordered.
func (r *GenerationRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("topic must not be blank")
	}
	if r.MinWords == nil && r.MaxWords == nil {
		return fmt.Errorf("at least one of min_words or max_words is required")
	}
	if r.MinWords != nil && r.MaxWords != nil && *r.MinWords > *r.MaxWords {
		return fmt.Errorf("min_words (%d) must not exceed max_words (%d)", *r.MinWords, *r.MaxWords)
	}
	return nil
}

// OutputFormat is the representation the Renderer writes.
type OutputFormat string

// Output formats
const (
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
	FormatGitHub   OutputFormat = "github"
)

// ParseOutputFormat maps user input (HTML, Markdown, md, GitHub; any case) to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "github", "gfm":
		return FormatGitHub, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected HTML, Markdown, md or GitHub)", s)
	}
}

// Extension returns the file extension (without dot) written for the format.
func (f OutputFormat) Extension() string {
	if f == FormatHTML {
		return "html"
	}
	return "md"
}

// EnrichmentBundle holds best-effort metadata derived from the article.
// Every field has its own fallback; an empty ReadmeMarkdown means no reformat was requested.
type EnrichmentBundle struct {
	Keywords            string `json:"keywords"`
	Description         string `json:"description"`
	IllustratedMarkdown string `json:"illustrated_markdown"`
	ReadmeMarkdown      string `json:"readme_markdown,omitempty"`
	// Fallbacks names the sub-operations that substituted their fallback value.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// Degraded reports whether any sub-operation fell back.
func (b EnrichmentBundle) Degraded() bool {
	return len(b.Fallbacks) > 0
}

// FinalMarkdown returns the document the Renderer should write.
func (b EnrichmentBundle) FinalMarkdown() string {
	if b.ReadmeMarkdown != "" {
		return b.ReadmeMarkdown
	}
	return b.IllustratedMarkdown
}

// RenderedOutput describes the file written by the Renderer.
type RenderedOutput struct {
	Format       OutputFormat `json:"format"`
	FilePath     string       `json:"file_path"`
	BytesWritten int          `json:"bytes_written"`
}
