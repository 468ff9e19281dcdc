package rendering

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/seo-article-writer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const markdown = "# Electric Bicycles\n![bike](https://loremflickr.com/1280/720/bike)\n\nRange & <speed> matter.\n\n## FAQs"

func parseHTML(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		topic    string
		fileName string
		format   types.OutputFormat
		want     string
	}{
		{"topic html", "Electric Bicycles", "", types.FormatHTML, "Electric Bicycles.html"},
		{"topic markdown", "Electric Bicycles", "", types.FormatMarkdown, "Electric Bicycles.md"},
		{"topic github", "Electric Bicycles", "", types.FormatGitHub, "Electric Bicycles.md"},
		{"explicit name", "Electric Bicycles", "bikes", types.FormatHTML, "bikes.html"},
		{"blank name falls back", "Electric Bicycles", "  ", types.FormatMarkdown, "Electric Bicycles.md"},
		{"extension not doubled", "Electric Bicycles", "README.md", types.FormatGitHub, "README.md"},
		{"extension case-insensitive", "Electric Bicycles", "Page.HTML", types.FormatHTML, "Page.HTML"},
		{"other extension kept", "Electric Bicycles", "notes.txt", types.FormatMarkdown, "notes.txt.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.topic, tt.fileName, tt.format))
		})
	}
}

func TestHTMLDocument(t *testing.T) {
	page, err := HTMLDocument(markdown, `Ride "further"`, "electric bicycles, e-bike range", "Bikes & Batteries")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<markdown>\n"+markdown+"\n</markdown>", "body is embedded verbatim")
	assert.Contains(t, page, `<script src="`+MarkdownRendererURL+`"></script>`)
	assert.Contains(t, page, "mdonhtml();")

	doc := parseHTML(t, page)
	assert.Equal(t, "Bikes & Batteries", doc.Find("title").Text())

	description, ok := doc.Find(`meta[name="description"]`).Attr("content")
	require.True(t, ok)
	assert.Equal(t, `Ride "further"`, description)

	keywords, ok := doc.Find(`meta[name="keywords"]`).Attr("content")
	require.True(t, ok)
	assert.Equal(t, "electric bicycles, e-bike range", keywords)

	_, ok = doc.Find(`meta[charset]`).Attr("charset")
	assert.True(t, ok)
	_, ok = doc.Find(`meta[name="viewport"]`).Attr("content")
	assert.True(t, ok)
}

func TestHTMLDocument_EscapesHead(t *testing.T) {
	page, err := HTMLDocument("# x", `"><script>alert(1)</script>`, "a, b", "</title><b>")
	require.NoError(t, err)

	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.NotContains(t, page, "</title><b>")
	assert.Equal(t, 2, strings.Count(page, "<script"), "only the renderer script and the load hook")
}

func TestRender_MarkdownRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []types.OutputFormat{types.FormatMarkdown, types.FormatGitHub} {
		t.Run(string(format), func(t *testing.T) {
			out, err := Render(markdown, format, "desc", "kw", "Electric Bicycles", filepath.Join(dir, string(format)))
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(dir, string(format)+".md"), out.FilePath)
			assert.Equal(t, format, out.Format)
			assert.Equal(t, len(markdown), out.BytesWritten)

			data, err := os.ReadFile(out.FilePath)
			require.NoError(t, err)
			assert.Equal(t, markdown, string(data))
		})
	}
}

func TestRender_HTML(t *testing.T) {
	dir := t.TempDir()

	out, err := Render(markdown, types.FormatHTML, "desc", "electric bicycles", "Electric Bicycles", filepath.Join(dir, "page"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page.html"), out.FilePath)

	data, err := os.ReadFile(out.FilePath)
	require.NoError(t, err)
	assert.Equal(t, len(data), out.BytesWritten)

	doc := parseHTML(t, string(data))
	keywords, _ := doc.Find(`meta[name="keywords"]`).Attr("content")
	assert.Equal(t, "electric bicycles", keywords)

	info, err := os.Stat(out.FilePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestRender_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "article.md")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new one"), 0644))

	_, err := Render("# New", types.FormatMarkdown, "", "", "topic", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# New", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestRender_WriteFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "article")

	out, err := Render("# A", types.FormatMarkdown, "", "", "topic", missing)
	require.Error(t, err)
	assert.Nil(t, out)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, missing+".md", renderErr.Path)
	assert.NoFileExists(t, missing+".md")
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := Render("# A", types.OutputFormat("pdf"), "", "", "topic", filepath.Join(t.TempDir(), "a"))
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestParseTemplate_Invalid(t *testing.T) {
	_, err := parseTemplate("{{.Title")
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestErrors(t *testing.T) {
	cause := errors.New("disk full")

	err := &RenderError{Path: "a.md", Message: "failed to write", Cause: cause}
	assert.Equal(t, "render error: failed to write a.md: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "render error: boom", (&RenderError{Message: "boom"}).Error())
	assert.Equal(t, "template error: bad: disk full", (&TemplateError{Message: "bad", Cause: cause}).Error())
}
