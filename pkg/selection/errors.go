package selection

import "errors"

var (
	// ErrIndexOutOfRange is returned when a field, action or option index does
	// not address an existing entry.
	ErrIndexOutOfRange = errors.New("selection: index out of range")
	// ErrActionRejected is returned when an action of the same kind is already
	// selected or both action slots are taken.
	ErrActionRejected = errors.New("selection: action rejected")
	// ErrNoOptions is returned when an option operation targets a field type
	// that has no options (text fields).
	ErrNoOptions = errors.New("selection: field does not support options")
	// ErrUnknownRule is returned when toggling a validation kind the field does
	// not declare.
	ErrUnknownRule = errors.New("selection: field does not declare validation")
	// ErrEmptyName is returned when renaming a field to a blank name.
	ErrEmptyName = errors.New("selection: field name is required")
	// ErrNotSelect is returned when a select-only edit targets another type.
	ErrNotSelect = errors.New("selection: field is not a select")
	// ErrOptionDisabled is returned when pre-selecting an option that the
	// single-selection rule has disabled.
	ErrOptionDisabled = errors.New("selection: option is disabled")
)
