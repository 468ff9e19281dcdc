package rendering

import (
	_ "embed"
	"html"
	"strings"
	"text/template"
)

// MarkdownRendererURL is the client-side script that turns the <markdown> element into HTML.
const MarkdownRendererURL = "https://cdn.jsdelivr.net/gh/OCEANOFANYTHINGOFFICIAL/mdonhtml.js/scripts/mdonhtml.min.js"

//go:embed templates/article.html.tmpl
var pageTemplate string

// PageData is passed to the HTML page template.
// Markdown is written verbatim; the other fields are escaped by the template.
type PageData struct {
	Title       string
	Description string
	Keywords    string
	Markdown    string
	RendererURL string
}

// HTMLDocument wraps the Markdown body in a complete HTML page with SEO meta tags.
func HTMLDocument(markdown, description, keywords, topic string) (string, error) {
	tmpl, err := parseTemplate(pageTemplate)
	if err != nil {
		return "", err
	}

	data := PageData{
		Title:       topic,
		Description: description,
		Keywords:    keywords,
		Markdown:    markdown,
		RendererURL: MarkdownRendererURL,
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func parseTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("article").Funcs(template.FuncMap{
		"escape": html.EscapeString,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}
