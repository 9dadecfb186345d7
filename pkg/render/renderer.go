package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Renderer converts a compiled form and its live control tree into a byte
// representation (HTML preview, API schema, JSON snapshot).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, compiled compiler.CompiledForm, tree *form.Tree, options RenderOptions) ([]byte, error)
}
