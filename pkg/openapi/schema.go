package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

// WidgetExtension is the vendor extension carrying the resolved widget.
const WidgetExtension = "x-formbuilder-widget"

// Schema builds the object schema of the submission payload. Every field is
// a property; fields with an enabled required rule are listed as required.
func Schema(compiled compiler.CompiledForm) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range compiled.Fields {
		schema.WithProperty(field.Name, fieldSchema(field))
		if hasRule(field, model.ValidationRequired) {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeText:
		schema = openapi3.NewStringSchema()
		applyLength(schema, field, false)
		schema.Description = model.Deref(field.Placeholder)
	case model.FieldTypeRadio:
		schema = withEnum(openapi3.NewStringSchema(), optionValues(field, !hasRule(field, model.ValidationRequired)))
	default:
		items := withEnum(openapi3.NewStringSchema(), optionValues(field, false))
		if field.Type == model.FieldTypeSelect && !hasRule(field, model.ValidationRequired) {
			// an empty select submits a single null entry
			items.Nullable = true
		}
		schema = openapi3.NewArraySchema().WithItems(items)
		if field.Type == model.FieldTypeSelect && !field.IsMultiple() {
			schema.WithMaxItems(1)
		}
		applyLength(schema, field, true)
	}

	schema.Title = field.Label
	if widget := widgets.Of(field); widget != "" {
		schema.Extensions = map[string]any{WidgetExtension: widget}
	}
	return schema
}

func applyLength(schema *openapi3.Schema, field model.Field, array bool) {
	for _, rule := range field.EnabledRules() {
		switch rule.Kind {
		case model.ValidationRequired:
			if array {
				schema.WithMinItems(1)
			} else if schema.MinLength == 0 {
				schema.WithMinLength(1)
			}
		case model.ValidationMinLength:
			if rule.Bound == nil {
				continue
			}
			if array {
				schema.WithMinItems(int64(*rule.Bound))
			} else {
				schema.WithMinLength(int64(*rule.Bound))
			}
		case model.ValidationMaxLength:
			if rule.Bound == nil {
				continue
			}
			if array {
				schema.WithMaxItems(int64(*rule.Bound))
			} else {
				schema.WithMaxLength(int64(*rule.Bound))
			}
		}
	}
}

func withEnum(schema *openapi3.Schema, values []any) *openapi3.Schema {
	if len(values) == 0 {
		return schema
	}
	return schema.WithEnum(values...)
}

func optionValues(field model.Field, withEmpty bool) []any {
	values := make([]any, 0, len(field.Options)+1)
	seen := make(map[string]struct{}, len(field.Options))
	for _, option := range field.Options {
		if _, ok := seen[option.Value]; ok {
			continue
		}
		seen[option.Value] = struct{}{}
		values = append(values, option.Value)
	}
	if _, ok := seen[""]; withEmpty && !ok {
		values = append(values, "")
	}
	return values
}

func hasRule(field model.Field, kind model.ValidationKind) bool {
	for _, rule := range field.EnabledRules() {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}
