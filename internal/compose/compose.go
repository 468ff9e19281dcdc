// Package compose builds the article-generation prompt from a GenerationRequest.
package compose

import (
	"fmt"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/prompts"
	"github.com/jonathan/seo-article-writer/internal/types"
)

// TargetWords is the article length the prompt asks for.
const TargetWords = 2000

// MinHeadings is the minimum heading/subheading count the prompt asks for.
const MinHeadings = 15

// BuildPrompt returns the instruction block for one article.
// Word-bound directives are appended after the template, maximum first.
func BuildPrompt(req types.GenerationRequest) string {
	language := req.Language
	if strings.TrimSpace(language) == "" {
		language = types.DefaultLanguage
	}

	template := prompts.MustGet(prompts.ArticleFile, "compose-article")
	var sb strings.Builder
	sb.WriteString(prompts.Format(template, map[string]string{
		"Language": language,
		"Topic":    req.Topic,
	}))

	if req.MaxWords != nil {
		sb.WriteString(fmt.Sprintf("\nMaximum Words: %d", *req.MaxWords))
	}
	if req.MinWords != nil {
		sb.WriteString(fmt.Sprintf("\nMinimum Words: %d", *req.MinWords))
	}

	return sb.String()
}
