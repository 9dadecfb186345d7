package openapi

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer exposes Document through the render.Renderer contract so the
// schema can be exported next to the HTML preview.
type Renderer struct {
	options Options
	format  string
}

// NewRenderer builds a renderer that encodes documents as format ("json" or
// "yaml").
func NewRenderer(options Options, format string) *Renderer {
	return &Renderer{options: options, format: format}
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "openapi" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	if r.format == "yaml" || r.format == "yml" {
		return "application/yaml"
	}
	return "application/json"
}

// Render implements render.Renderer. The tree is unused: the document
// describes the form, not its current values.
func (r *Renderer) Render(ctx context.Context, compiled compiler.CompiledForm, _ *form.Tree, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docOptions := r.options
	if docOptions.Title == "" {
		docOptions.Title = options.Title
	}
	doc, err := Document(ctx, compiled, docOptions)
	if err != nil {
		return nil, err
	}
	return Marshal(doc, r.format)
}

var _ render.Renderer = (*Renderer)(nil)
