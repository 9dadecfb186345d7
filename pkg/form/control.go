package form

// Kind distinguishes single-value controls from ordered multi-value ones.
type Kind string

const (
	KindScalar Kind = "scalar"
	KindArray  Kind = "array"
)

// Control holds the live value of one compiled field plus its validators.
type Control struct {
	name       string
	kind       Kind
	scalar     Value
	values     []Value
	dropNulls  bool
	validators []Validator
}

// NewScalar returns a single-value control seeded with initial.
func NewScalar(name string, initial Value, validators ...Validator) *Control {
	return &Control{
		name:       name,
		kind:       KindScalar,
		scalar:     initial,
		validators: compact(validators),
	}
}

// NewArray returns a multi-value control seeded with initial.
func NewArray(name string, initial []Value, validators ...Validator) *Control {
	return &Control{
		name:       name,
		kind:       KindArray,
		values:     append([]Value{}, initial...),
		validators: compact(validators),
	}
}

// NewSelect returns an array control that treats null entries as a
// bootstrapping placeholder: every value change drops them.
func NewSelect(name string, initial []Value, validators ...Validator) *Control {
	c := NewArray(name, initial, validators...)
	c.dropNulls = true
	return c
}

// Name returns the field name the control is keyed by.
func (c *Control) Name() string { return c.name }

// Kind reports whether the control is scalar or array valued.
func (c *Control) Kind() Kind { return c.kind }

// Scalar returns the value of a scalar control.
func (c *Control) Scalar() Value { return c.scalar }

// Values returns a copy of the entries of an array control.
func (c *Control) Values() []Value { return append([]Value{}, c.values...) }

// Validators returns the attached validator set.
func (c *Control) Validators() []Validator { return append([]Validator(nil), c.validators...) }

// SetValue replaces the value of a scalar control.
func (c *Control) SetValue(value string) error {
	if c.kind != KindScalar {
		return ErrKindMismatch
	}
	c.scalar = Of(value)
	return nil
}

// SetValues replaces the entries of an array control.
func (c *Control) SetValues(values ...string) error {
	if c.kind != KindArray {
		return ErrKindMismatch
	}
	c.values = Values(values...)
	c.cleanup()
	return nil
}

// Toggle adds value to an array control when checked, or removes its first
// occurrence when unchecked.
func (c *Control) Toggle(value string, checked bool) error {
	if c.kind != KindArray {
		return ErrKindMismatch
	}
	if checked {
		c.values = append(c.values, Of(value))
	} else {
		for i, entry := range c.values {
			if !entry.IsNull() && entry.String() == value {
				c.values = append(c.values[:i], c.values[i+1:]...)
				break
			}
		}
	}
	c.cleanup()
	return nil
}

// Interface returns the serialisable value: nil or a string for scalar
// controls, a slice with nil for null entries for array controls.
func (c *Control) Interface() any {
	if c.kind == KindScalar {
		return c.scalar.Interface()
	}
	out := make([]any, len(c.values))
	for i, entry := range c.values {
		out[i] = entry.Interface()
	}
	return out
}

// Errors runs every validator and returns the failures in validator order.
func (c *Control) Errors() []Failure {
	var out []Failure
	for _, validate := range c.validators {
		if failure := validate(c); failure != nil {
			out = append(out, *failure)
		}
	}
	return out
}

// Valid reports whether no validator fails.
func (c *Control) Valid() bool {
	for _, validate := range c.validators {
		if validate(c) != nil {
			return false
		}
	}
	return true
}

func (c *Control) isEmpty() bool {
	if c.kind == KindScalar {
		return c.scalar.IsNull() || c.scalar.String() == ""
	}
	return len(c.values) == 0
}

// length is measured in characters for scalars and entries for arrays.
func (c *Control) length() int {
	if c.kind == KindScalar {
		return len([]rune(c.scalar.String()))
	}
	return len(c.values)
}

func (c *Control) hasNull() bool {
	if c.kind == KindScalar {
		return c.scalar.IsNull()
	}
	for _, entry := range c.values {
		if entry.IsNull() {
			return true
		}
	}
	return false
}

func (c *Control) cleanup() {
	if !c.dropNulls {
		return
	}
	kept := c.values[:0]
	for _, entry := range c.values {
		if !entry.IsNull() {
			kept = append(kept, entry)
		}
	}
	c.values = kept
}

func compact(validators []Validator) []Validator {
	var out []Validator
	for _, validate := range validators {
		if validate != nil {
			out = append(out, validate)
		}
	}
	return out
}
