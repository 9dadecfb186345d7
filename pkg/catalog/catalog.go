package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrUnknownField is returned when a palette index or name does not match
	// any field template.
	ErrUnknownField = errors.New("catalog: unknown field template")
	// ErrUnknownAction is returned when a palette index or kind does not match
	// any action template.
	ErrUnknownAction = errors.New("catalog: unknown action template")
)

// Catalog holds the palette of field and action templates. The zero value is
// an empty palette; use Default for the built-in templates.
type Catalog struct {
	fields  []model.FieldTemplate
	actions []model.ActionTemplate
}

// New builds a catalog from the supplied templates after validating them.
// Templates are cloned so later edits by the caller do not reach the palette.
func New(fields []model.FieldTemplate, actions []model.ActionTemplate) (*Catalog, error) {
	c := &Catalog{}
	seen := make(map[string]struct{}, len(fields))
	for idx, tpl := range fields {
		if err := validateFieldTemplate(tpl); err != nil {
			return nil, fmt.Errorf("catalog: field %d: %w", idx, err)
		}
		if _, exists := seen[tpl.Name]; exists {
			return nil, fmt.Errorf("catalog: duplicate field template %q", tpl.Name)
		}
		seen[tpl.Name] = struct{}{}
		c.fields = append(c.fields, tpl.Clone())
	}
	kinds := make(map[model.ActionKind]struct{}, len(actions))
	for idx, tpl := range actions {
		if err := validateActionTemplate(tpl); err != nil {
			return nil, fmt.Errorf("catalog: action %d: %w", idx, err)
		}
		if _, exists := kinds[tpl.Kind]; exists {
			return nil, fmt.Errorf("catalog: duplicate action template %q", tpl.Kind)
		}
		kinds[tpl.Kind] = struct{}{}
		c.actions = append(c.actions, tpl)
	}
	return c, nil
}

// Default returns the built-in palette: a text field, a radio group, a
// checkbox group and a select, plus submit and cancel buttons. Validations
// are enabled by default.
func Default() *Catalog {
	c, err := New(defaultFields(), defaultActions())
	if err != nil {
		// The built-in templates are static; a failure here is a programming error.
		panic(err)
	}
	return c
}

// Fields returns clones of every field template in palette order.
func (c *Catalog) Fields() []model.FieldTemplate {
	if c == nil || len(c.fields) == 0 {
		return nil
	}
	out := make([]model.FieldTemplate, len(c.fields))
	for i, tpl := range c.fields {
		out[i] = tpl.Clone()
	}
	return out
}

// Actions returns the action templates in palette order.
func (c *Catalog) Actions() []model.ActionTemplate {
	if c == nil || len(c.actions) == 0 {
		return nil
	}
	return append([]model.ActionTemplate(nil), c.actions...)
}

// Field returns a clone of the template at palette index idx.
func (c *Catalog) Field(idx int) (model.FieldTemplate, error) {
	if c == nil || idx < 0 || idx >= len(c.fields) {
		return model.FieldTemplate{}, fmt.Errorf("%w: index %d", ErrUnknownField, idx)
	}
	return c.fields[idx].Clone(), nil
}

// FieldByName returns a clone of the template with the given base name.
func (c *Catalog) FieldByName(name string) (model.FieldTemplate, error) {
	if c != nil {
		trimmed := strings.TrimSpace(name)
		for _, tpl := range c.fields {
			if tpl.Name == trimmed {
				return tpl.Clone(), nil
			}
		}
	}
	return model.FieldTemplate{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Action returns the action template at palette index idx.
func (c *Catalog) Action(idx int) (model.ActionTemplate, error) {
	if c == nil || idx < 0 || idx >= len(c.actions) {
		return model.ActionTemplate{}, fmt.Errorf("%w: index %d", ErrUnknownAction, idx)
	}
	return c.actions[idx], nil
}

// ActionByKind returns the action template of the given kind.
func (c *Catalog) ActionByKind(kind model.ActionKind) (model.ActionTemplate, error) {
	if c != nil {
		for _, tpl := range c.actions {
			if tpl.Kind == kind {
				return tpl, nil
			}
		}
	}
	return model.ActionTemplate{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
}

// Merge returns a new catalog where templates from other replace templates
// with the same name (fields) or kind (actions); new entries are appended.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{}
	if c != nil {
		out.fields = c.Fields()
		out.actions = c.Actions()
	}
	if other == nil {
		return out
	}
	for _, tpl := range other.fields {
		replaced := false
		for i := range out.fields {
			if out.fields[i].Name == tpl.Name {
				out.fields[i] = tpl.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			out.fields = append(out.fields, tpl.Clone())
		}
	}
	for _, tpl := range other.actions {
		replaced := false
		for i := range out.actions {
			if out.actions[i].Kind == tpl.Kind {
				out.actions[i] = tpl
				replaced = true
				break
			}
		}
		if !replaced {
			out.actions = append(out.actions, tpl)
		}
	}
	return out
}

func validateFieldTemplate(tpl model.FieldTemplate) error {
	if !tpl.Type.Valid() {
		return fmt.Errorf("unsupported field type %q", tpl.Type)
	}
	if strings.TrimSpace(tpl.Name) == "" {
		return errors.New("name is required")
	}
	for idx, rule := range tpl.Validations {
		switch rule.Kind {
		case model.ValidationRequired:
		case model.ValidationMinLength, model.ValidationMaxLength:
			if rule.Bound == nil || *rule.Bound < 0 {
				return fmt.Errorf("validation %d (%s) requires a non-negative bound", idx, rule.Kind)
			}
		default:
			return fmt.Errorf("validation %d: unsupported kind %q", idx, rule.Kind)
		}
	}
	return nil
}

func validateActionTemplate(tpl model.ActionTemplate) error {
	switch tpl.Kind {
	case model.ActionSubmit, model.ActionCancel:
		return nil
	default:
		return fmt.Errorf("unsupported action kind %q", tpl.Kind)
	}
}
