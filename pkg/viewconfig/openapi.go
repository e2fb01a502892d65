package viewconfig

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FieldsFromOpenAPI derives a field list from a named component schema in an
// OpenAPI 3 document. String formats map onto the specialised built-in types
// (email, url, date, datetime), arrays of objects become repeaters, and
// enum values become field options. Properties whose type has no storable
// counterpart (bare objects, refs without a resolvable object) are skipped.
func FieldsFromOpenAPI(ctx context.Context, data []byte, schemaName string) ([]FieldConfig, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("viewconfig: load openapi document: %w", err)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("viewconfig: document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("viewconfig: schema %q not found", schemaName)
	}

	fields := fieldsFromSchema(ref.Value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("viewconfig: schema %q yields no usable fields", schemaName)
	}
	return fields, nil
}

func fieldsFromSchema(src *openapi3.Schema) []FieldConfig {
	if src == nil || len(src.Properties) == 0 {
		return nil
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FieldConfig, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := fieldFromProperty(name, ref.Value)
		if !ok {
			continue
		}
		_, field.Required = required[name]
		out = append(out, field)
	}
	return out
}

func fieldFromProperty(name string, src *openapi3.Schema) (FieldConfig, bool) {
	field := FieldConfig{
		Name:        name,
		Description: src.Description,
		Default:     src.Default,
	}
	if src.Title != "" {
		field.Label = src.Title
	}
	for _, value := range src.Enum {
		if s, ok := value.(string); ok {
			field.Options = append(field.Options, s)
		}
	}

	switch schemaType(src) {
	case "string":
		field.Type = stringFieldType(src.Format)
	case "integer", "number":
		field.Type = "integer"
	case "boolean":
		field.Type = "boolean"
	case "array":
		if src.Items == nil || src.Items.Value == nil {
			return FieldConfig{}, false
		}
		sub := fieldsFromSchema(src.Items.Value)
		if len(sub) == 0 {
			return FieldConfig{}, false
		}
		field.Type = "repeater"
		field.SubFields = sub
	default:
		return FieldConfig{}, false
	}
	return field, true
}

func stringFieldType(format string) string {
	switch format {
	case "email":
		return "email"
	case "uri", "url":
		return "url"
	case "date":
		return "date"
	case "date-time":
		return "datetime"
	case "textarea":
		return "text"
	default:
		return "string"
	}
}

func schemaType(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	values := src.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
