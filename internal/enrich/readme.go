package enrich

import (
	"context"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/prompts"
	"github.com/jonathan/seo-article-writer/internal/validation"
)

// Readme reformats the document for display as a repository README,
// returning the document unchanged on failure.
func (e *Enricher) Readme(ctx context.Context, document string) string {
	readme, err := e.readme(ctx, document)
	if err != nil {
		e.warn("README reformat", "the unmodified document", err)
		return document
	}
	return readme
}

func (e *Enricher) readme(ctx context.Context, document string) (_ string, err error) {
	defer recoverAs(OpReadme, &err)

	prompt, err := prompts.Render(prompts.EnrichmentFile, "readme-reformat", map[string]string{
		"Document": validation.QuoteContent(document, "document"),
	})
	if err != nil {
		return "", &Error{Op: OpReadme, Message: "failed to build prompt", Cause: err}
	}

	text, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return "", &Error{Op: OpReadme, Message: "service call failed", Cause: err}
	}

	readme := strings.TrimSpace(unwrapFence(text))
	if readme == "" {
		return "", &Error{Op: OpReadme, Message: "empty document returned"}
	}
	return readme, nil
}

// unwrapFence removes a single code fence wrapped around the whole reply.
func unwrapFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return text
	}
	fences := 0
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.HasPrefix(line, "```") {
			fences++
		}
	}
	_, body, found := strings.Cut(trimmed, "\n")
	if !found || fences != 2 {
		return text
	}
	return strings.TrimSuffix(strings.TrimRight(body, " \t\n"), "```")
}
