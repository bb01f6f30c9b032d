// Package apispec holds the OpenAPI contract of the JSON print endpoint and
// validates request bodies against it.
package apispec

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// PrintPath is the route of the JSON print endpoint.
const PrintPath = "/api/print"

const jsonMediaType = "application/json"

//go:embed openapi.yaml
var document []byte

// Raw returns the contract as YAML.
func Raw() []byte {
	return bytes.Clone(document)
}

// ErrMalformed reports a body that is not a JSON document.
var ErrMalformed = errors.New("apispec: malformed request body")

// ValidationError carries schema violations keyed by form field.
type ValidationError struct {
	Mapping render.ErrorMapping
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Mapping.Fields)+len(e.Mapping.Form))
	for _, field := range render.FieldNames {
		for _, msg := range e.Mapping.Fields[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	parts = append(parts, e.Mapping.Form...)
	return "apispec: invalid request: " + strings.Join(parts, "; ")
}

// PrintRequest is the decoded body of the print endpoint.
type PrintRequest struct {
	form.Snapshot
	Catalog string `json:"catalog,omitempty"`
}

// Contract is the loaded and validated OpenAPI document.
type Contract struct {
	doc         *openapi3.T
	printSchema *openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apispec: validate document: %w", err)
	}

	schema, err := requestSchema(doc, PrintPath)
	if err != nil {
		return nil, err
	}
	return &Contract{doc: doc, printSchema: schema}, nil
}

// Document exposes the parsed OpenAPI document.
func (c *Contract) Document() *openapi3.T {
	return c.doc
}

// DecodePrintRequest validates body against the request schema and decodes
// it. It returns ErrMalformed for non-JSON bodies and *ValidationError for
// schema violations.
func (c *Contract) DecodePrintRequest(body []byte) (PrintRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return PrintRequest{}, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return PrintRequest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := c.printSchema.VisitJSON(generic, openapi3.MultiErrors()); err != nil {
		return PrintRequest{}, &ValidationError{Mapping: render.MapErrorPayload(schemaErrors(err))}
	}

	var req PrintRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return PrintRequest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return req, nil
}

func requestSchema(doc *openapi3.T, path string) (*openapi3.Schema, error) {
	if doc.Paths == nil {
		return nil, errors.New("apispec: document has no paths")
	}
	item := doc.Paths.Map()[path]
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("apispec: no POST operation for %s", path)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("apispec: POST %s has no request body", path)
	}
	media, ok := body.Value.Content[jsonMediaType]
	if !ok || media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("apispec: POST %s has no %s schema", path, jsonMediaType)
	}
	return media.Schema.Value, nil
}

// schemaErrors flattens kin-openapi errors into pointer-keyed messages.
func schemaErrors(err error) map[string][]string {
	out := make(map[string][]string)
	var collect func(error)
	collect = func(err error) {
		var multi openapi3.MultiError
		if errors.As(err, &multi) {
			for _, inner := range multi {
				collect(inner)
			}
			return
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			pointer := render.PointerPath(schemaErr.JSONPointer())
			out[pointer] = append(out[pointer], schemaErr.Reason)
			return
		}
		out[""] = append(out[""], err.Error())
	}
	collect(err)
	return out
}
