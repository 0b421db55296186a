// Package web holds the embedded HTML templates and static assets.
//
// Go Pattern: go:embed compiles the templates and JS into the binary, so
// deployment stays a single file — no template directory to ship alongside.
package web

import (
	"embed"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded templates with the markdown helper attached.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
	}).ParseFS(templatesFS, "templates/*.html")
}

// StaticFS exposes the embedded static assets (stripe.js).
func StaticFS() embed.FS { return staticFS }

// renderMarkdown converts LLM-written markdown prose (detailed analysis,
// improvement advice) to HTML for the analysis view.
//
// Parser instances are single-use, so we build one per call.
func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}
