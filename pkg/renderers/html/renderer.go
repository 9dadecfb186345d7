package html

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

//go:embed templates/*.tpl
var defaultTemplates embed.FS

const defaultTemplate = "templates/form.tpl"

// TemplatesFS exposes the embedded templates so callers can copy or extend
// them before passing a replacement through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return defaultTemplates
}

// Renderer produces a standalone HTML preview of a compiled form.
type Renderer struct {
	engine    *engine
	template  string
	sanitizer *bluemonday.Policy
	widgets   *widgets.Registry
	selector  theme.ThemeSelector
	themeName string
	variant   string
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the HTML renderer.
type Option func(*Renderer) error

// WithTemplatesFS replaces the embedded templates. The filesystem must
// provide the template named by WithTemplate (templates/form.tpl by default).
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) error {
		e, err := newEngine(files)
		if err != nil {
			return err
		}
		r.engine = e
		return nil
	}
}

// WithTemplate selects the entry template inside the templates filesystem.
func WithTemplate(name string) Option {
	return func(r *Renderer) error {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			r.template = trimmed
		}
		return nil
	}
}

// WithSanitizer overrides the policy applied to labels and messages. The
// default strips every tag.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) error {
		if policy != nil {
			r.sanitizer = policy
		}
		return nil
	}
}

// WithWidgets sets the registry used for fields the compiler did not
// decorate.
func WithWidgets(registry *widgets.Registry) Option {
	return func(r *Renderer) error {
		if registry != nil {
			r.widgets = registry
		}
		return nil
	}
}

// WithTheme resolves name and variant through selector on every render and
// exposes the resulting tokens as CSS custom properties.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) error {
		r.selector = selector
		r.themeName = strings.TrimSpace(name)
		r.variant = strings.TrimSpace(variant)
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// New constructs a Renderer using the embedded template unless overridden.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		template:  defaultTemplate,
		sanitizer: bluemonday.StrictPolicy(),
		widgets:   widgets.NewRegistry(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.engine == nil {
		e, err := newEngine(defaultTemplates)
		if err != nil {
			return nil, err
		}
		r.engine = e
	}
	return r, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "html" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render implements render.Renderer. Values come from tree; failures are
// shown when options.ShowErrors is set or options.Errors carries messages.
func (r *Renderer) Render(ctx context.Context, compiled compiler.CompiledForm, tree *form.Tree, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapping := options.Errors
	if options.ShowErrors {
		mapping = render.MergeMappings(mapping, render.MapFailures(tree))
	}

	data := pongo2.Context{
		"title":       r.title(options.Title),
		"fields":      r.fieldViews(compiled.Fields, tree, mapping),
		"actions":     r.actionViews(compiled.Actions),
		"form_errors": r.clean(mapping.Form),
	}

	if r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.variant)
		if err != nil {
			return nil, fmt.Errorf("html: select theme: %w", err)
		}
		if selection != nil {
			data["theme"] = selection.Theme
			data["variant"] = selection.Variant
			data["css_vars"] = cssVarsStyle(themeTokens(selection))
		}
	}

	out, err := r.engine.render(r.template, data)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("html preview rendered", zap.Int("fields", len(compiled.Fields)), zap.Int("bytes", len(out)))
	return out, nil
}

func (r *Renderer) title(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Form preview"
	}
	return title
}

func (r *Renderer) sanitize(text string) string {
	return strings.TrimSpace(r.sanitizer.Sanitize(text))
}

func (r *Renderer) clean(messages []string) []string {
	var out []string
	for _, message := range messages {
		if cleaned := r.sanitize(message); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func (r *Renderer) fieldViews(fields []model.Field, tree *form.Tree, mapping render.ErrorMapping) []map[string]any {
	views := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		widget, _ := r.widgets.Resolve(field)
		current := currentValues(tree, field.Name)

		view := map[string]any{
			"id":          "field-" + field.Name,
			"name":        field.Name,
			"label":       r.sanitize(field.Label),
			"widget":      widget,
			"placeholder": model.Deref(field.Placeholder),
			"inline":      field.Inline != nil && *field.Inline,
			"multiple":    field.IsMultiple(),
			"errors":      r.clean(mapping.Fields[field.Name]),
			"input_type":  "radio",
		}
		if field.Type == model.FieldTypeCheckbox {
			view["input_type"] = "checkbox"
		}
		if len(current) > 0 {
			view["value"] = current[0]
		}

		for _, rule := range field.EnabledRules() {
			switch rule.Kind {
			case model.ValidationRequired:
				view["required"] = true
			case model.ValidationMinLength:
				if rule.Bound != nil {
					view["min_length"] = *rule.Bound
				}
			case model.ValidationMaxLength:
				if rule.Bound != nil {
					view["max_length"] = *rule.Bound
				}
			}
		}

		options := make([]map[string]any, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, map[string]any{
				"label":    r.sanitize(option.Label),
				"value":    option.Value,
				"checked":  contains(current, option.Value),
				"disabled": option.IsDisabled(),
			})
		}
		view["options"] = options
		views = append(views, view)
	}
	return views
}

func (r *Renderer) actionViews(actions []model.Action) []map[string]any {
	views := make([]map[string]any, 0, len(actions))
	for _, action := range actions {
		buttonType := "button"
		if action.Kind == model.ActionSubmit {
			buttonType = "submit"
		}
		views = append(views, map[string]any{
			"kind":  string(action.Kind),
			"label": r.sanitize(action.Label),
			"type":  buttonType,
		})
	}
	return views
}

// currentValues flattens a control value into its non-null strings.
func currentValues(tree *form.Tree, name string) []string {
	control, ok := tree.Get(name)
	if !ok {
		return nil
	}
	if control.Kind() == form.KindScalar {
		if value := control.Scalar(); !value.IsNull() {
			return []string{value.String()}
		}
		return nil
	}
	var out []string
	for _, value := range control.Values() {
		if !value.IsNull() {
			out = append(out, value.String())
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
