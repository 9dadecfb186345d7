package model

import "strings"

// FieldType enumerates the field widgets a user can drop into a form.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeRadio, FieldTypeCheckbox, FieldTypeSelect:
		return true
	default:
		return false
	}
}

// ValidationKind identifies a toggleable validation constraint.
type ValidationKind string

const (
	ValidationRequired  ValidationKind = "required"
	ValidationMinLength ValidationKind = "minLength"
	ValidationMaxLength ValidationKind = "maxLength"
)

// ActionKind enumerates the form-level buttons.
type ActionKind string

const (
	ActionSubmit ActionKind = "submit"
	ActionCancel ActionKind = "cancel"
)

// Option is a single choice of a radio, checkbox or select field. Selected and
// Disabled are tri-state: a nil pointer means the key was never set, which
// matters for checkbox options that never carry either flag.
type Option struct {
	Label    string `json:"label" yaml:"label"`
	Value    string `json:"value" yaml:"value"`
	Selected *bool  `json:"selected,omitempty" yaml:"selected,omitempty"`
	Disabled *bool  `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// IsSelected reports whether the option carries a true selected flag.
func (o Option) IsSelected() bool { return o.Selected != nil && *o.Selected }

// IsDisabled reports whether the option carries a true disabled flag.
func (o Option) IsDisabled() bool { return o.Disabled != nil && *o.Disabled }

// Clone returns a copy that shares no pointers with o.
func (o Option) Clone() Option {
	out := Option{Label: o.Label, Value: o.Value}
	if o.Selected != nil {
		out.Selected = Bool(*o.Selected)
	}
	if o.Disabled != nil {
		out.Disabled = Bool(*o.Disabled)
	}
	return out
}

// ValidationRule is a constraint attached to a field template. Bound carries
// the length threshold for minLength/maxLength rules. Enabled is the template
// default; field instances override it through Field.RuleOverrides.
type ValidationRule struct {
	Kind    ValidationKind `json:"kind" yaml:"kind"`
	Bound   *int           `json:"bound,omitempty" yaml:"bound,omitempty"`
	Message string         `json:"message" yaml:"message"`
	Enabled bool           `json:"enabled" yaml:"enabled"`
}

// Clone returns a copy that shares no pointers with r.
func (r ValidationRule) Clone() ValidationRule {
	out := r
	if r.Bound != nil {
		out.Bound = Int(*r.Bound)
	}
	return out
}

// FieldTemplate describes a palette entry. Templates stored in a catalog are
// never handed out directly; callers receive clones.
type FieldTemplate struct {
	Type         FieldType        `json:"type" yaml:"type"`
	Label        string           `json:"label" yaml:"label"`
	Name         string           `json:"name" yaml:"name"`
	DefaultValue *string          `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Placeholder  *string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Multiple     *bool            `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Inline       *bool            `json:"inline,omitempty" yaml:"inline,omitempty"`
	Options      []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	Validations  []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Clone returns a structural deep copy of the template.
func (t FieldTemplate) Clone() FieldTemplate {
	out := FieldTemplate{
		Type:  t.Type,
		Label: t.Label,
		Name:  t.Name,
	}
	if t.DefaultValue != nil {
		out.DefaultValue = String(*t.DefaultValue)
	}
	if t.Placeholder != nil {
		out.Placeholder = String(*t.Placeholder)
	}
	if t.Multiple != nil {
		out.Multiple = Bool(*t.Multiple)
	}
	if t.Inline != nil {
		out.Inline = Bool(*t.Inline)
	}
	if t.Options != nil {
		out.Options = make([]Option, len(t.Options))
		for i, option := range t.Options {
			out.Options[i] = option.Clone()
		}
	}
	if t.Validations != nil {
		out.Validations = make([]ValidationRule, len(t.Validations))
		for i, rule := range t.Validations {
			out.Validations[i] = rule.Clone()
		}
	}
	return out
}

// IsMultiple reports whether a select template allows several values.
func (t FieldTemplate) IsMultiple() bool { return t.Multiple != nil && *t.Multiple }

// Field is a template instance living in a selection. ID is stable across
// renames; Name is what the compiled form keys its controls by.
type Field struct {
	FieldTemplate `yaml:",inline"`

	ID            string                  `json:"id" yaml:"id"`
	Editing       bool                    `json:"editing,omitempty" yaml:"editing,omitempty"`
	RuleOverrides map[ValidationKind]bool `json:"ruleOverrides,omitempty" yaml:"ruleOverrides,omitempty"`
	Metadata      map[string]string       `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a structural deep copy of the field.
func (f Field) Clone() Field {
	out := Field{
		FieldTemplate: f.FieldTemplate.Clone(),
		ID:            f.ID,
		Editing:       f.Editing,
	}
	if f.RuleOverrides != nil {
		out.RuleOverrides = make(map[ValidationKind]bool, len(f.RuleOverrides))
		for kind, enabled := range f.RuleOverrides {
			out.RuleOverrides[kind] = enabled
		}
	}
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for key, value := range f.Metadata {
			out.Metadata[key] = value
		}
	}
	return out
}

// RuleEnabled resolves whether rule participates in compilation for this
// instance. Overrides win over the template default.
func (f Field) RuleEnabled(rule ValidationRule) bool {
	if enabled, ok := f.RuleOverrides[rule.Kind]; ok {
		return enabled
	}
	return rule.Enabled
}

// EnabledRules returns the rules that participate in compilation, in
// declaration order.
func (f Field) EnabledRules() []ValidationRule {
	var out []ValidationRule
	for _, rule := range f.Validations {
		if f.RuleEnabled(rule) {
			out = append(out, rule.Clone())
		}
	}
	return out
}

// SingleValued reports whether at most one option may be chosen: radio
// groups and selects without the multiple flag.
func (f Field) SingleValued() bool {
	switch f.Type {
	case FieldTypeRadio:
		return true
	case FieldTypeSelect:
		return !f.IsMultiple()
	default:
		return false
	}
}

// ActionTemplate describes a palette button.
type ActionTemplate struct {
	Kind  ActionKind `json:"kind" yaml:"kind"`
	Label string     `json:"label" yaml:"label"`
}

// Action is a button instance living in a selection.
type Action struct {
	ActionTemplate `yaml:",inline"`

	ID string `json:"id" yaml:"id"`
}

// Clone returns a copy of the action.
func (a Action) Clone() Action { return a }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Deref returns the pointed-to string or the empty string.
func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// NormalizeName trims a user supplied field name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
