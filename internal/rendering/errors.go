// Package rendering writes the final article as a Markdown file or a self-contained HTML page.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing the HTML page template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure to produce the output file. It is terminal for the run.
type RenderError struct {
	Path    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("render error: %s %s: %v", e.Message, e.Path, e.Cause)
		}
		return fmt.Sprintf("render error: %s %s", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
