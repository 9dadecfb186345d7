package formbuilder

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
)

// RenderOptions describes per-request overrides renderers use to surface a
// title and server-side validation errors.
type RenderOptions = render.RenderOptions

// Submission aliases render.Submission for callers handling submitted values.
type Submission = render.Submission

// CompiledForm aliases compiler.CompiledForm.
type CompiledForm = compiler.CompiledForm

// NewBuilder exposes the builder constructor from the top-level module.
func NewBuilder(options ...builder.Option) *builder.Builder {
	return builder.New(options...)
}

// Build drops the named field templates and action kinds, in order, onto a
// fresh builder and renders it. It is the programmatic counterpart of a
// design session.
func Build(fields []string, actions []model.ActionKind, options ...builder.Option) (*builder.Builder, error) {
	b := builder.New(options...)
	for _, name := range fields {
		idx, err := paletteIndex(b, name)
		if err != nil {
			return nil, err
		}
		if err := b.DropOnFields(builder.DropEvent{
			Source:        builder.ContainerFieldPalette,
			Target:        builder.ContainerFields,
			PreviousIndex: idx,
			CurrentIndex:  b.Selection().FieldCount(),
		}); err != nil {
			return nil, err
		}
	}
	for _, kind := range actions {
		idx, err := actionIndex(b, kind)
		if err != nil {
			return nil, err
		}
		if err := b.DropOnActions(builder.DropEvent{
			Source:        builder.ContainerActionPalette,
			Target:        builder.ContainerActions,
			PreviousIndex: idx,
			CurrentIndex:  b.Selection().ActionCount(),
		}); err != nil {
			return nil, err
		}
	}
	if err := b.RenderForm(); err != nil {
		return nil, err
	}
	return b, nil
}

func paletteIndex(b *builder.Builder, name string) (int, error) {
	for idx, tpl := range b.Catalog().Fields() {
		if tpl.Name == name {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", catalog.ErrUnknownField, name)
}

func actionIndex(b *builder.Builder, kind model.ActionKind) (int, error) {
	for idx, tpl := range b.Catalog().Actions() {
		if tpl.Kind == kind {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", catalog.ErrUnknownAction, kind)
}

type exportConfig struct {
	selector      theme.ThemeSelector
	themeName     string
	variant       string
	openapi       openapi.Options
	openapiFormat string
	logger        *zap.Logger
}

// ExportOption configures NewRegistry.
type ExportOption func(*exportConfig)

// WithTheme sets the theme selector and selection used by the HTML preview.
func WithTheme(selector theme.ThemeSelector, name, variant string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.variant = variant
	}
}

// WithOpenAPI configures the schema export and its encoding.
func WithOpenAPI(options openapi.Options, format string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.openapi = options
		cfg.openapiFormat = format
	}
}

// WithLogger sets the logger handed to renderers.
func WithLogger(logger *zap.Logger) ExportOption {
	return func(cfg *exportConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewRegistry returns a registry holding the built-in export formats: the
// themed "html" preview, the "json" snapshot and the "openapi" schema.
func NewRegistry(options ...ExportOption) (*render.Registry, error) {
	cfg := exportConfig{
		selector:      html.NewStaticSelector(html.DefaultManifest()),
		themeName:     html.DefaultManifest().Name,
		openapiFormat: "json",
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	preview, err := html.New(
		html.WithTheme(cfg.selector, cfg.themeName, cfg.variant),
		html.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: html renderer: %w", err)
	}
	return render.NewRegistry(
		preview,
		render.SnapshotRenderer{},
		openapi.NewRenderer(cfg.openapi, cfg.openapiFormat),
	)
}

// Export renders the builder's current form with the named renderer,
// rendering the selection first when no compile has succeeded yet.
func Export(ctx context.Context, registry *render.Registry, name string, b *builder.Builder, options RenderOptions) ([]byte, string, error) {
	if registry == nil {
		return nil, "", errors.New("formbuilder: registry is required")
	}
	if b == nil {
		return nil, "", errors.New("formbuilder: builder is required")
	}
	if !b.Rendered() {
		if err := b.RenderForm(); err != nil {
			return nil, "", err
		}
	}
	return registry.Render(ctx, name, b.Compiled(), b.Tree(), options)
}
