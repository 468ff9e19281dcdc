package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/seo-article-writer/internal/types"
)

// OutputPath returns "<fileName or topic>.<ext>". A name that already ends in the
// format's extension is not given a second one. Characters invalid for the host
// filesystem are not rewritten.
func OutputPath(topic, fileName string, format types.OutputFormat) string {
	name := strings.TrimSpace(fileName)
	if name == "" {
		name = topic
	}
	ext := "." + format.Extension()
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

// Render writes the article to OutputPath(topic, fileName, format).
// HTML output is a full page around the Markdown body; Markdown and GitHub output
// is the Markdown text byte for byte. The file is replaced atomically, so a failed
// write leaves any previous file intact.
func Render(markdown string, format types.OutputFormat, description, keywords, topic, fileName string) (*types.RenderedOutput, error) {
	var content string
	switch format {
	case types.FormatHTML:
		page, err := HTMLDocument(markdown, description, keywords, topic)
		if err != nil {
			return nil, &RenderError{Message: "failed to build HTML page", Cause: err}
		}
		content = page
	case types.FormatMarkdown, types.FormatGitHub:
		content = markdown
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unsupported output format %q", format)}
	}

	path := OutputPath(topic, fileName, format)
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return nil, err
	}

	return &types.RenderedOutput{
		Format:       format,
		FilePath:     path,
		BytesWritten: len(content),
	}, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".seo-writer-*")
	if err != nil {
		return &RenderError{Path: path, Message: "failed to create", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &RenderError{Path: path, Message: "failed to write", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &RenderError{Path: path, Message: "failed to write", Cause: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return &RenderError{Path: path, Message: "failed to set permissions on", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &RenderError{Path: path, Message: "failed to replace", Cause: err}
	}
	return nil
}
