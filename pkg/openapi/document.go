package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/compiler"
)

// ErrUnsupportedFormat is returned by Marshal for unknown encodings.
var ErrUnsupportedFormat = errors.New("openapi: unsupported format")

const (
	defaultTitle       = "Form submission"
	defaultVersion     = "1.0.0"
	defaultPath        = "/submissions"
	defaultOperationID = "submitForm"
)

// Options shape the generated document. Zero values fall back to defaults.
type Options struct {
	Title       string
	Version     string
	Path        string
	OperationID string
	Summary     string
}

func (o Options) normalized() Options {
	if strings.TrimSpace(o.Title) == "" {
		o.Title = defaultTitle
	}
	if strings.TrimSpace(o.Version) == "" {
		o.Version = defaultVersion
	}
	if o.Path == "" {
		o.Path = defaultPath
	}
	if !strings.HasPrefix(o.Path, "/") {
		o.Path = "/" + o.Path
	}
	if o.OperationID == "" {
		o.OperationID = defaultOperationID
	}
	return o
}

// Document wraps the submission schema into a single POST operation that
// accepts JSON and urlencoded bodies. The result is validated before it is
// returned.
func Document(ctx context.Context, compiled compiler.CompiledForm, options Options) (*openapi3.T, error) {
	options = options.normalized()
	schema := Schema(compiled)

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(schema)
	body.Content["application/x-www-form-urlencoded"] = openapi3.NewMediaType().WithSchema(schema)

	operation := openapi3.NewOperation()
	operation.OperationID = options.OperationID
	operation.Summary = options.Summary
	operation.RequestBody = &openapi3.RequestBodyRef{Value: body}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(204, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Form submitted"),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Form is not valid"),
		}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   options.Title,
			Version: options.Version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(options.Path, &openapi3.PathItem{Post: operation})),
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// Marshal encodes doc as "json" (indented) or "yaml".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}

	format = strings.ToLower(format)
	switch format {
	case "", "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	if format == "yaml" || format == "yml" {
		return yaml.Marshal(generic)
	}
	return json.MarshalIndent(generic, "", "  ")
}
