package form

import "fmt"

// Tree is the compiled control set of a form, keyed by field name and kept
// in field order.
type Tree struct {
	order    []string
	controls map[string]*Control
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{controls: make(map[string]*Control)}
}

// Add registers a control under its name.
func (t *Tree) Add(c *Control) error {
	if c == nil {
		return fmt.Errorf("form: control is required")
	}
	if _, exists := t.controls[c.name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateControl, c.name)
	}
	t.controls[c.name] = c
	t.order = append(t.order, c.name)
	return nil
}

// Get returns the control for name.
func (t *Tree) Get(name string) (*Control, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.controls[name]
	return c, ok
}

// Names returns the control names in field order.
func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// Controls returns the controls in field order.
func (t *Tree) Controls() []*Control {
	if t == nil {
		return nil
	}
	out := make([]*Control, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.controls[name])
	}
	return out
}

// Len reports the number of controls.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Valid reports the aggregate validity of every control.
func (t *Tree) Valid() bool {
	if t == nil {
		return true
	}
	for _, name := range t.order {
		if !t.controls[name].Valid() {
			return false
		}
	}
	return true
}

// Errors returns the failures of every invalid control, keyed by name.
func (t *Tree) Errors() map[string][]Failure {
	out := make(map[string][]Failure)
	if t == nil {
		return out
	}
	for _, name := range t.order {
		if failures := t.controls[name].Errors(); len(failures) > 0 {
			out[name] = failures
		}
	}
	return out
}

// Value returns the serialisable value of every control keyed by name.
func (t *Tree) Value() map[string]any {
	out := make(map[string]any)
	if t == nil {
		return out
	}
	for _, name := range t.order {
		out[name] = t.controls[name].Interface()
	}
	return out
}

// SetValue replaces the value of the named scalar control.
func (t *Tree) SetValue(name, value string) error {
	c, err := t.lookup(name)
	if err != nil {
		return err
	}
	if err := c.SetValue(value); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	return nil
}

// SetValues replaces the entries of the named array control.
func (t *Tree) SetValues(name string, values ...string) error {
	c, err := t.lookup(name)
	if err != nil {
		return err
	}
	if err := c.SetValues(values...); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	return nil
}

// Toggle adds or removes a value on the named array control.
func (t *Tree) Toggle(name, value string, checked bool) error {
	c, err := t.lookup(name)
	if err != nil {
		return err
	}
	if err := c.Toggle(value, checked); err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	return nil
}

func (t *Tree) lookup(name string) (*Control, error) {
	c, ok := t.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	return c, nil
}
