package form

import "errors"

var (
	// ErrUnknownControl is returned when a field name has no control.
	ErrUnknownControl = errors.New("form: unknown control")
	// ErrDuplicateControl is returned when adding a second control under an
	// existing name.
	ErrDuplicateControl = errors.New("form: duplicate control")
	// ErrKindMismatch is returned when a scalar edit targets an array control
	// or the other way around.
	ErrKindMismatch = errors.New("form: control kind mismatch")
)
