package collab

import (
	"fmt"
	"strings"
	"text/template"
)

// TemplateRenderer implements Renderer using text/template. Template sources
// are supplied by name; pipelines typically keep them alongside the tool that
// owns the output document.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the named template sources. Parse failures are
// caller errors and surface immediately rather than at render time.
func NewTemplateRenderer(sources map[string]string) (*TemplateRenderer, error) {
	root := template.New("")
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
	}
	return &TemplateRenderer{templates: root}, nil
}

// Render implements Renderer.
func (r *TemplateRenderer) Render(name string, data any) (string, error) {
	var buf strings.Builder
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %q: %w", name, err)
	}
	return buf.String(), nil
}
