package enrich

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/normalize"
	"github.com/jonathan/seo-article-writer/internal/prompts"
	"github.com/jonathan/seo-article-writer/internal/schemas"
)

// ImageRef is a placeholder image keyed on a keyword.
type ImageRef struct {
	Keyword string
	URL     string
}

// Markdown returns the image embed line.
func (r ImageRef) Markdown() string {
	alt := strings.NewReplacer("[", "", "]", "").Replace(r.Keyword)
	return "![" + alt + "](" + r.URL + ")"
}

// ImageFor derives an image reference for one heading using two chained service calls:
// illustrative topics for the heading, then a search keyword for one topic picked at
// random. On any failure the heading text itself becomes the keyword.
func (e *Enricher) ImageFor(ctx context.Context, heading string) ImageRef {
	ref, err := e.imageFor(ctx, heading)
	if err != nil {
		e.warn("image reference for "+heading, heading, err)
		return e.imageRef(heading)
	}
	return ref
}

// InsertImages splices an image line directly after every heading at the configured
// level. Each heading gets its own pair of service calls, including repeated headings.
// Headings inside fenced code blocks are ignored.
func (e *Enricher) InsertImages(ctx context.Context, markdown string) string {
	illustrated, _ := e.insertImages(ctx, markdown)
	return illustrated
}

func (e *Enricher) insertImages(ctx context.Context, markdown string) (string, int) {
	lines := strings.Split(markdown, "\n")
	result := make([]string, 0, len(lines)+8)
	fence := "" // marker of the open code block
	failed := 0

	for _, line := range lines {
		result = append(result, line)

		if marker, rest := fenceMarker(line); marker != "" {
			switch {
			case fence == "":
				fence = marker
			case closes(fence, marker, rest):
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}

		level, text, ok := normalize.HeadingLevel(line)
		if !ok || level != e.headingLevel || text == "" {
			continue
		}

		ref, err := e.imageFor(ctx, text)
		if err != nil {
			e.warn("image reference for "+text, text, err)
			ref = e.imageRef(text)
			failed++
		}
		result = append(result, ref.Markdown())
	}

	return strings.Join(result, "\n"), failed
}

func (e *Enricher) imageFor(ctx context.Context, heading string) (_ ImageRef, err error) {
	defer recoverAs(OpImage, &err)

	prompt, err := prompts.Render(prompts.EnrichmentFile, "image-topics", map[string]string{"Heading": heading})
	if err != nil {
		return ImageRef{}, &Error{Op: OpImage, Message: "failed to build prompt", Cause: err}
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return ImageRef{}, &Error{Op: OpImage, Message: "topic call failed", Cause: err}
	}

	var parsed struct {
		Topics []string `json:"topics"`
	}
	if err := decodeJSON(raw, schemas.ImageTopics, &parsed); err != nil {
		return ImageRef{}, &Error{Op: OpImage, Message: "unexpected topic response", Cause: err}
	}
	topics := cleanList(parsed.Topics)
	if len(topics) == 0 {
		return ImageRef{}, &Error{Op: OpImage, Message: "no topics returned"}
	}

	i := e.pick(len(topics))
	if i < 0 || i >= len(topics) {
		i = 0
	}

	prompt, err = prompts.Render(prompts.EnrichmentFile, "image-query", map[string]string{"Topic": topics[i]})
	if err != nil {
		return ImageRef{}, &Error{Op: OpImage, Message: "failed to build prompt", Cause: err}
	}

	query, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return ImageRef{}, &Error{Op: OpImage, Message: "keyword call failed", Cause: err}
	}

	keyword := cleanQuery(query)
	if keyword == "" {
		return ImageRef{}, &Error{Op: OpImage, Message: "empty keyword returned"}
	}
	return e.imageRef(keyword), nil
}

func (e *Enricher) imageRef(keyword string) ImageRef {
	return ImageRef{
		Keyword: keyword,
		URL:     e.imageBaseURL + url.PathEscape(keyword),
	}
}

// cleanQuery keeps the first line of a free-text reply, lowercased and without surrounding punctuation.
func cleanQuery(text string) string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	query := strings.Trim(strings.TrimSpace(firstLine), "\"'`.,;:!?")
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// fenceMarker returns the run of three or more backticks or tildes opening line,
// and whatever follows it.
func fenceMarker(line string) (marker, rest string) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
		return "", ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == trimmed[0] {
		n++
	}
	if n < 3 {
		return "", ""
	}
	return trimmed[:n], trimmed[n:]
}

// closes reports whether marker ends the block opened by open: same character,
// at least as long, and no info string.
func closes(open, marker, rest string) bool {
	return marker[0] == open[0] && len(marker) >= len(open) && strings.TrimSpace(rest) == ""
}
