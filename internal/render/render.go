// Package render adapts the pongo2 template engine, whose Jinja-like syntax matches the
// blueprint format ({{ name }}, {% if flag %}...{% endif %}).
package render

import (
	"fmt"
	"sync"

	"github.com/aretw0/kopye/pkg/domain"
	"github.com/flosch/pongo2/v6"
)

// Engine renders a template string against a context.
type Engine interface {
	Render(src string, data map[string]any) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(src string, data map[string]any) (string, error)

func (f EngineFunc) Render(src string, data map[string]any) (string, error) {
	return f(src, data)
}

var disableEscaping sync.Once

// Pongo renders templates with pongo2. Output is never HTML-escaped: blueprints produce
// source files, not markup.
type Pongo struct {
	set *pongo2.TemplateSet
}

// NewPongo creates an engine whose {% include %} and {% import %} tags resolve relative to
// baseDir. An empty baseDir disables file loading.
func NewPongo(baseDir string) (*Pongo, error) {
	disableEscaping.Do(func() { pongo2.SetAutoescape(false) })

	if baseDir == "" {
		return &Pongo{set: pongo2.NewSet("kopye")}, nil
	}
	loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
	if err != nil {
		return nil, fmt.Errorf("template loader for %s: %w", baseDir, err)
	}
	return &Pongo{set: pongo2.NewSet("kopye", loader)}, nil
}

// Render compiles and executes src. Syntax and execution failures are *domain.RenderError.
func (p *Pongo) Render(src string, data map[string]any) (string, error) {
	tpl, err := p.set.FromString(src)
	if err != nil {
		return "", &domain.RenderError{Template: src, Context: data, Err: err}
	}
	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", &domain.RenderError{Template: src, Context: data, Err: err}
	}
	return out, nil
}
