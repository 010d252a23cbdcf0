// Package render turns a built report context into HTML, and into PDF when
// the host has the conversion tool installed.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer produces report bytes from a template name and context fields.
type Renderer interface {
	Render(name string, fields map[string]any) ([]byte, error)
}

// HTMLRenderer renders the embedded per-platform report templates.
type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &HTMLRenderer{templates: tpl}, nil
}

func (r *HTMLRenderer) Render(name string, fields map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, fields); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
