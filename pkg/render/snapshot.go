package render

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
)

// SnapshotRenderer encodes the compiled form together with its current
// values and failures as indented JSON.
type SnapshotRenderer struct{}

type snapshot struct {
	Title  string                `json:"title,omitempty"`
	Form   compiler.CompiledForm `json:"form"`
	Values map[string]any        `json:"values"`
	Valid  bool                  `json:"valid"`
	Errors *ErrorMapping         `json:"errors,omitempty"`
}

// Name implements Renderer.
func (SnapshotRenderer) Name() string { return "json" }

// ContentType implements Renderer.
func (SnapshotRenderer) ContentType() string { return "application/json" }

// Render implements Renderer.
func (SnapshotRenderer) Render(_ context.Context, compiled compiler.CompiledForm, tree *form.Tree, options RenderOptions) ([]byte, error) {
	out := snapshot{
		Title:  options.Title,
		Form:   compiled,
		Values: tree.Value(),
		Valid:  tree.Valid(),
	}
	mapping := options.Errors
	if options.ShowErrors {
		mapping = MergeMappings(mapping, MapFailures(tree))
	}
	if !mapping.Empty() {
		out.Errors = &mapping
	}
	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: encode snapshot: %w", err)
	}
	return payload, nil
}
