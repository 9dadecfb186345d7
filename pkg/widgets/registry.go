package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput         = "input"
	WidgetRadioGroup    = "radio-group"
	WidgetCheckboxGroup = "checkbox-group"
	WidgetSelect        = "select"
	WidgetMultiSelect   = "multi-select"
)

// MetadataKey is the field metadata entry the decorator writes and
// presentation layers read.
const MetadataKey = "widget"

// Matcher decides whether a widget should present the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit metadata or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget entry in
// the field metadata is honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Metadata[MetadataKey]); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved widgets are stored under
// Metadata["widget"]; existing entries are preserved.
func (r *Registry) Decorate(fields []model.Field) error {
	if r == nil {
		return nil
	}
	for idx := range fields {
		widget, ok := r.Resolve(fields[idx])
		if !ok || widget == "" {
			continue
		}
		if fields[idx].Metadata == nil {
			fields[idx].Metadata = make(map[string]string)
		}
		if fields[idx].Metadata[MetadataKey] == "" {
			fields[idx].Metadata[MetadataKey] = widget
		}
	}
	return nil
}

// Of returns the widget recorded on a decorated field, falling back to the
// built-in resolution for undecorated ones.
func Of(field model.Field) string {
	if widget := strings.TrimSpace(field.Metadata[MetadataKey]); widget != "" {
		return widget
	}
	widget, _ := defaultRegistry.Resolve(field)
	return widget
}

var defaultRegistry = NewRegistry()

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMultiSelect, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect && field.IsMultiple()
	})
	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect
	})
	r.Register(WidgetCheckboxGroup, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeCheckbox
	})
	r.Register(WidgetRadioGroup, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeRadio
	})
	r.Register(WidgetInput, 0, func(model.Field) bool {
		return true
	})
}
