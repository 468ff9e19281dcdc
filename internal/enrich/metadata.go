package enrich

import (
	"context"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/prompts"
	"github.com/jonathan/seo-article-writer/internal/schemas"
	"github.com/jonathan/seo-article-writer/internal/validation"
)

// Keywords extracts a comma-separated keyword string from the article, or DefaultKeywords.
func (e *Enricher) Keywords(ctx context.Context, article string) string {
	keywords, err := e.keywords(ctx, article)
	if err != nil {
		e.warn("keyword extraction", DefaultKeywords, err)
		return DefaultKeywords
	}
	return keywords
}

// Description generates a meta description for the article, or returns topic.
func (e *Enricher) Description(ctx context.Context, article, topic string) string {
	description, err := e.description(ctx, article)
	if err != nil {
		e.warn("meta description", topic, err)
		return topic
	}
	return description
}

func (e *Enricher) keywords(ctx context.Context, article string) (_ string, err error) {
	defer recoverAs(OpKeywords, &err)

	prompt, err := prompts.Render(prompts.EnrichmentFile, "extract-keywords", map[string]string{
		"Article": validation.QuoteContent(article, "article"),
	})
	if err != nil {
		return "", &Error{Op: OpKeywords, Message: "failed to build prompt", Cause: err}
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return "", &Error{Op: OpKeywords, Message: "service call failed", Cause: err}
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := decodeJSON(raw, schemas.Keywords, &parsed); err != nil {
		return "", &Error{Op: OpKeywords, Message: "unexpected response", Cause: err}
	}

	keywords := cleanList(parsed.Keywords)
	if len(keywords) == 0 {
		return "", &Error{Op: OpKeywords, Message: "no keywords returned"}
	}
	return strings.Join(keywords, ", "), nil
}

func (e *Enricher) description(ctx context.Context, article string) (_ string, err error) {
	defer recoverAs(OpDescription, &err)

	prompt, err := prompts.Render(prompts.EnrichmentFile, "meta-description", map[string]string{
		"Article": validation.QuoteContent(article, "article"),
	})
	if err != nil {
		return "", &Error{Op: OpDescription, Message: "failed to build prompt", Cause: err}
	}

	text, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return "", &Error{Op: OpDescription, Message: "service call failed", Cause: err}
	}

	description := strings.Trim(strings.Join(strings.Fields(text), " "), `"'`)
	if description == "" {
		return "", &Error{Op: OpDescription, Message: "empty description returned"}
	}
	return description, nil
}
