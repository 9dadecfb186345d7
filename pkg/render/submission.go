package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Format selects how a Submission is encoded.
type Format string

const (
	FormatJSON       Format = "json"
	FormatURLEncoded Format = "form"
)

// Submission is the value of a valid form at submit time, keyed by field
// name in compiled order. Scalars are strings or nil; multi-valued fields are
// slices whose null entries are nil.
type Submission struct {
	names  []string
	values map[string]any
}

// NewSubmission snapshots the current value of tree.
func NewSubmission(tree *form.Tree) Submission {
	return Submission{
		names:  tree.Names(),
		values: tree.Value(),
	}
}

// Names returns the field names in compiled order.
func (s Submission) Names() []string { return append([]string(nil), s.names...) }

// Get returns the submitted value for name.
func (s Submission) Get(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns a copy of the submitted values.
func (s Submission) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// MarshalJSON encodes the submission as a JSON object.
func (s Submission) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values)
}

// URLValues flattens the submission into form values. Null entries are
// omitted; a null scalar becomes an empty value so the key is still sent.
func (s Submission) URLValues() url.Values {
	out := make(url.Values, len(s.names))
	for _, name := range s.names {
		switch value := s.values[name].(type) {
		case nil:
			out.Set(name, "")
		case string:
			out.Set(name, value)
		case []any:
			out[name] = []string{}
			for _, entry := range value {
				if str, ok := entry.(string); ok {
					out.Add(name, str)
				}
			}
		default:
			out.Set(name, fmt.Sprint(value))
		}
	}
	return out
}

// Encode renders the submission in the requested format and returns the
// matching content type.
func (s Submission) Encode(format Format) ([]byte, string, error) {
	switch Format(strings.ToLower(strings.TrimSpace(string(format)))) {
	case "", FormatJSON:
		payload, err := s.MarshalJSON()
		if err != nil {
			return nil, "", fmt.Errorf("render: encode submission: %w", err)
		}
		return payload, "application/json", nil
	case FormatURLEncoded:
		return []byte(s.URLValues().Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", fmt.Errorf("render: unsupported submission format %q", format)
	}
}
