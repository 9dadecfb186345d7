package form

import "github.com/goccy/go-json"

// Value is a single entry held by a control. The zero Value is the null
// sentinel select controls are seeded with until the user picks something.
type Value struct {
	str string
	set bool
}

// Null returns the null sentinel.
func Null() Value { return Value{} }

// Of wraps a concrete string, including the empty string.
func Of(s string) Value { return Value{str: s, set: true} }

// IsNull reports whether v is the null sentinel.
func (v Value) IsNull() bool { return !v.set }

// String returns the wrapped string, or "" for the sentinel.
func (v Value) String() string { return v.str }

// Interface returns nil for the sentinel and the string otherwise.
func (v Value) Interface() any {
	if !v.set {
		return nil
	}
	return v.str
}

// MarshalJSON encodes the sentinel as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Values wraps every string with Of.
func Values(items ...string) []Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = Of(item)
	}
	return out
}
