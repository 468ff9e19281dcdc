// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/seo-article-writer/internal/normalize"
	"github.com/jonathan/seo-article-writer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintRequest outputs the generation request and the output format.
func (p *Printer) PrintRequest(req *types.GenerationRequest, format types.OutputFormat) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:     %s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("Language:  %s\n", req.Language))
	if req.MinWords != nil {
		sb.WriteString(fmt.Sprintf("Min words: %d\n", *req.MinWords))
	}
	if req.MaxWords != nil {
		sb.WriteString(fmt.Sprintf("Max words: %d\n", *req.MaxWords))
	}
	sb.WriteString(fmt.Sprintf("Format:    %s", format))

	p.printBox("GENERATION REQUEST", sb.String())
}

// PrintOutline outputs the heading structure of the normalized article.
func (p *Printer) PrintOutline(article string) {
	var headings []string
	words := 0
	for _, line := range strings.Split(article, "\n") {
		if level, text, ok := normalize.HeadingLevel(line); ok {
			headings = append(headings, strings.Repeat("  ", level-1)+"• "+text)
			continue
		}
		words += len(strings.Fields(line))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Headings: %d   Body words: %d\n\n", len(headings), words))

	limit := maxItemsToShow * 3
	count := min(len(headings), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(headings[i] + "\n")
	}
	if len(headings) > limit {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(headings)-limit))
	}

	p.printBox("ARTICLE OUTLINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnrichment outputs the enrichment bundle, marking fallbacks.
func (p *Printer) PrintEnrichment(bundle *types.EnrichmentBundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Description: %s\n", bundle.Description))
	sb.WriteString("\n")

	keywords := strings.Split(bundle.Keywords, ", ")
	sb.WriteString("Keywords:\n")
	count := min(len(keywords), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", keywords[i]))
	}
	if len(keywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(keywords)-maxItemsToShow))
	}

	images := 0
	for _, line := range strings.Split(bundle.IllustratedMarkdown, "\n") {
		if strings.HasPrefix(line, "![") {
			images++
		}
	}
	sb.WriteString(fmt.Sprintf("\nImages:      %d\n", images))
	if bundle.ReadmeMarkdown != "" {
		sb.WriteString("README:      reformatted\n")
	}

	if bundle.Degraded() {
		sb.WriteString(fmt.Sprintf("\n⚠ Fallbacks: %s\n", strings.Join(bundle.Fallbacks, ", ")))
	}

	p.printBox("ENRICHMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs one line per stage with its duration.
func (p *Printer) PrintRunSummary(summary *types.RunSummary) {
	if summary == nil || len(summary.Stages) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run: %s\n\n", summary.RunID))

	for _, stage := range summary.Stages {
		mark := "✓"
		switch stage.Status {
		case types.StatusDegraded:
			mark = "⚠"
		case types.StatusFailed:
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %-10s %-9s %8s\n", mark, stage.Stage, stage.Status, stage.Duration.Round(time.Millisecond)))
		if len(stage.Degraded) > 0 {
			sb.WriteString(fmt.Sprintf("    fell back: %s\n", strings.Join(stage.Degraded, ", ")))
		}
		if stage.Error != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", stage.Error))
		}
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %s", summary.TotalDuration().Round(time.Millisecond)))
	if summary.Output != nil {
		sb.WriteString(fmt.Sprintf("\nOutput: %s (%d bytes)", summary.Output.FilePath, summary.Output.BytesWritten))
	}

	p.printBox("RUN SUMMARY", sb.String())
}
