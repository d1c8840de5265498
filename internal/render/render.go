package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates
var embedded embed.FS

const templateExt = ".html"

// Renderer turns a named template and its data into HTML
type Renderer struct {
	templates map[string]*template.Template
}

// New creates a renderer with the embedded templates
func New() (*Renderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}
	return NewFromFS(sub)
}

// NewFromFS parses every *.html file of fsys. A template is named by its
// path without extension, e.g. "checkout/summary-body".
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return err
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		name := strings.TrimSuffix(path, templateExt)
		tmpl, err := template.New(name).Funcs(funcs).Parse(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		r.templates[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the named template
func (r *Renderer) Render(name string, data any) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"price": func(value float64, currency string) string {
		return fmt.Sprintf("%.2f %s", value, currency)
	},
}
