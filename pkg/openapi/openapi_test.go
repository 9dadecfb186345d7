package openapi_test

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/widgets"
)

func compileDefaults(t *testing.T) compiler.CompiledForm {
	t.Helper()
	sel := testsupport.DefaultSelection(t)
	// the radio group is optional in this form
	if err := sel.SetRuleEnabled(1, model.ValidationRequired, false); err != nil {
		t.Fatalf("toggle rule: %v", err)
	}
	compiled, _ := testsupport.Compile(t, sel)
	return compiled
}

func TestSchema_MapsFieldsAndRules(t *testing.T) {
	t.Parallel()

	schema := openapi.Schema(compileDefaults(t))

	if diff := cmp.Diff([]string{"text", "checkbox-group", "select"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	text := schema.Properties["text"].Value
	if !text.Type.Is(openapi3.TypeString) {
		t.Fatalf("text should be a string, got %v", text.Type)
	}
	if text.MinLength != 10 || text.MaxLength == nil || *text.MaxLength != 50 {
		t.Fatalf("unexpected text bounds: min=%d max=%v", text.MinLength, text.MaxLength)
	}
	if text.Title != "Text Field" {
		t.Fatalf("expected label as title, got %q", text.Title)
	}

	radio := schema.Properties["radio-group"].Value
	if diff := cmp.Diff([]any{"option-1", "option-2", "option-3", ""}, radio.Enum); diff != "" {
		t.Fatalf("optional radio should accept the empty value (-want +got):\n%s", diff)
	}

	selectSchema := schema.Properties["select"].Value
	if !selectSchema.Type.Is(openapi3.TypeArray) {
		t.Fatalf("select should be an array, got %v", selectSchema.Type)
	}
	if selectSchema.MaxItems == nil || *selectSchema.MaxItems != 1 || selectSchema.MinItems != 1 {
		t.Fatalf("single required select should hold exactly one item: min=%d max=%v", selectSchema.MinItems, selectSchema.MaxItems)
	}
	if got := selectSchema.Extensions[openapi.WidgetExtension]; got != widgets.WidgetSelect {
		t.Fatalf("expected widget extension %q, got %v", widgets.WidgetSelect, got)
	}

	checkbox := schema.Properties["checkbox-group"].Value
	if checkbox.MinItems != 1 || checkbox.MaxItems != nil {
		t.Fatalf("unexpected checkbox bounds: min=%d max=%v", checkbox.MinItems, checkbox.MaxItems)
	}
}

func TestSchema_AcceptsValidSubmission(t *testing.T) {
	t.Parallel()

	schema := openapi.Schema(compileDefaults(t))

	valid := map[string]any{
		"text":           "Hello forms",
		"radio-group":    "",
		"checkbox-group": []any{"option-1"},
		"select":         []any{"option-2"},
	}
	if err := schema.VisitJSON(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	tooShort := map[string]any{
		"text":           "short",
		"radio-group":    "option-1",
		"checkbox-group": []any{"option-1"},
		"select":         []any{"option-2"},
	}
	if err := schema.VisitJSON(tooShort); err == nil {
		t.Fatalf("expected minLength violation")
	}

	twoSelected := map[string]any{
		"text":           "Hello forms",
		"radio-group":    "option-1",
		"checkbox-group": []any{"option-1"},
		"select":         []any{"option-1", "option-2"},
	}
	if err := schema.VisitJSON(twoSelected); err == nil {
		t.Fatalf("expected maxItems violation on a single select")
	}
}

func TestDocument_Validates(t *testing.T) {
	t.Parallel()

	doc, err := openapi.Document(testsupport.Context(), compileDefaults(t), openapi.Options{
		Title: "Contact",
		Path:  "contact",
	})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Info.Version != "1.0.0" {
		t.Fatalf("expected default version, got %q", doc.Info.Version)
	}

	item := doc.Paths.Find("/contact")
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST /contact")
	}
	if item.Post.OperationID != "submitForm" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	body := item.Post.RequestBody.Value
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if body.Content.Get(mediaType) == nil {
			t.Fatalf("missing %s body", mediaType)
		}
	}
	if item.Post.Responses.Status(204) == nil {
		t.Fatalf("expected a 204 response")
	}
}

func TestMarshal_Formats(t *testing.T) {
	t.Parallel()

	doc, err := openapi.Document(testsupport.Context(), compileDefaults(t), openapi.Options{})
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	rawJSON, err := openapi.Marshal(doc, "json")
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(rawJSON, &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}

	rawYAML, err := openapi.Marshal(doc, "yaml")
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(rawYAML, &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}

	for name, decoded := range map[string]map[string]any{"json": fromJSON, "yaml": fromYAML} {
		if decoded["openapi"] != "3.0.3" {
			t.Fatalf("%s: unexpected openapi version %v", name, decoded["openapi"])
		}
		paths, _ := decoded["paths"].(map[string]any)
		if _, ok := paths["/submissions"]; !ok {
			t.Fatalf("%s: expected default path, got %v", name, paths)
		}
	}

	if _, err := openapi.Marshal(doc, "toml"); !errors.Is(err, openapi.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRenderer_ThroughRegistry(t *testing.T) {
	t.Parallel()

	registry, err := render.NewRegistry(openapi.NewRenderer(openapi.Options{}, "yaml"))
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	out, contentType, err := registry.Render(testsupport.Context(), "OpenAPI", compileDefaults(t), nil, render.RenderOptions{Title: "Survey"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if contentType != "application/yaml" {
		t.Fatalf("unexpected content type %q", contentType)
	}

	var decoded struct {
		Info struct {
			Title string `yaml:"title"`
		} `yaml:"info"`
	}
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Info.Title != "Survey" {
		t.Fatalf("expected render title to reach the document, got %q", decoded.Info.Title)
	}
}
