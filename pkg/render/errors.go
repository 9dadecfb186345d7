package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

var (
	// ErrFormInvalid is returned by OnSubmit while any control fails a
	// validator.
	ErrFormInvalid = errors.New("render: form is not valid")
	// ErrCancelRequested is returned by OnCancel. Nothing is mutated.
	ErrCancelRequested = errors.New("render: cancel requested")
	// ErrNoForm is returned when the handler has no compiled control tree.
	ErrNoForm = errors.New("render: no compiled form")
)

// ErrorMapping splits validation feedback into field-level messages keyed by
// field name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MergeMappings combines two mappings into a new one. Neither input is
// modified.
func MergeMappings(base, extra ErrorMapping) ErrorMapping {
	out := ErrorMapping{Form: MergeFormErrors(base.Form, extra.Form...)}
	for _, source := range []map[string][]string{base.Fields, extra.Fields} {
		for name, messages := range source {
			if out.Fields == nil {
				out.Fields = make(map[string][]string)
			}
			combined := append(append([]string(nil), out.Fields[name]...), messages...)
			if normalized := normalizeMessages(combined); len(normalized) > 0 {
				out.Fields[name] = normalized
			}
		}
	}
	return out
}

// MapFailures collects the failing validators of every control in tree into
// an ErrorMapping. Failures without a message fall back to their signal name.
// An invalid tree always yields the form-level "Form is not valid" message.
func MapFailures(tree *form.Tree) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for name, failures := range tree.Errors() {
		messages := make([]string, 0, len(failures))
		for _, failure := range failures {
			message := failure.Message
			if strings.TrimSpace(message) == "" {
				message = failure.Signal
			}
			messages = append(messages, message)
		}
		if normalized := normalizeMessages(messages); len(normalized) > 0 {
			mapping.Fields[name] = normalized
		}
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
		return mapping
	}
	mapping.Form = []string{"Form is not valid"}
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
