package viewconfig

import (
	"context"
	"testing"
)

const openapiDoc = `
openapi: 3.0.3
info:
  title: Library
  version: 1.0.0
paths: {}
components:
  schemas:
    Book:
      type: object
      required: [title]
      properties:
        title:
          type: string
          title: Title
        contact:
          type: string
          format: email
        homepage:
          type: string
          format: uri
        published_on:
          type: string
          format: date
        copies:
          type: integer
        in_print:
          type: boolean
        genre:
          type: string
          enum: [fiction, nonfiction]
        chapters:
          type: array
          items:
            type: object
            properties:
              heading:
                type: string
              pages:
                type: integer
`

func TestFieldsFromOpenAPI(t *testing.T) {
	fields, err := FieldsFromOpenAPI(context.Background(), []byte(openapiDoc), "Book")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	byName := make(map[string]FieldConfig, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	checks := map[string]string{
		"title":        "string",
		"contact":      "email",
		"homepage":     "url",
		"published_on": "date",
		"copies":       "integer",
		"in_print":     "boolean",
		"genre":        "string",
		"chapters":     "repeater",
	}
	for name, wantType := range checks {
		field, ok := byName[name]
		if !ok {
			t.Fatalf("field %q missing", name)
		}
		if field.Type != wantType {
			t.Fatalf("field %q: want type %q, got %q", name, wantType, field.Type)
		}
	}

	if !byName["title"].Required {
		t.Fatal("title should be required")
	}
	if byName["title"].Label != "Title" {
		t.Fatalf("title label: %q", byName["title"].Label)
	}
	if len(byName["genre"].Options) != 2 {
		t.Fatalf("genre options: %+v", byName["genre"].Options)
	}
	if len(byName["chapters"].SubFields) != 2 {
		t.Fatalf("chapters sub fields: %+v", byName["chapters"].SubFields)
	}
}

func TestFieldsFromOpenAPI_MissingSchema(t *testing.T) {
	if _, err := FieldsFromOpenAPI(context.Background(), []byte(openapiDoc), "Missing"); err == nil {
		t.Fatal("missing schema accepted")
	}
}
