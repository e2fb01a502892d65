package fieldtype

import "github.com/tangibleinc/dataview/pkg/schema"

// Built-in type names seeded into every new registry.
const (
	TypeString   = "string"
	TypeText     = "text"
	TypeEmail    = "email"
	TypeURL      = "url"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeDateTime = "datetime"
	TypeRepeater = "repeater"
)

func (r *Registry) registerBuiltins() {
	varchar := schema.ColumnSpec{Type: "varchar", Length: 255}

	builtins := map[string]Type{
		TypeString: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeTextline,
			Column:    varchar,
			Input:     "text",
		},
		TypeText: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeText,
			Column:    schema.ColumnSpec{Type: "text"},
			Input:     "textarea",
		},
		TypeEmail: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeTextline,
			Column:    varchar,
			Input:     "email",
		},
		TypeURL: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeTextline,
			Column:    varchar,
			Input:     "url",
		},
		TypeInteger: {
			Dataset:   DatasetInteger,
			Sanitizer: SanitizeInteger,
			Column:    schema.ColumnSpec{Type: "bigint", Length: 20, Default: 0},
			Input:     "number",
		},
		TypeBoolean: {
			Dataset:   DatasetBoolean,
			Sanitizer: SanitizeBoolean,
			Column:    schema.ColumnSpec{Type: "tinyint", Length: 1, Default: 0},
			Input:     "checkbox",
		},
		TypeDate: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeDate,
			Column:    schema.ColumnSpec{Type: "date"},
			Input:     "date",
		},
		TypeDateTime: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeDateTime,
			Column:    schema.ColumnSpec{Type: "datetime"},
			Input:     "datetime-local",
		},
		TypeRepeater: {
			Dataset:   DatasetString,
			Sanitizer: SanitizeRepeater,
			Column:    schema.ColumnSpec{Type: "longtext"},
			Input:     "repeater",
		},
	}

	for name, t := range builtins {
		// Built-in definitions are complete; Register cannot fail here.
		_ = r.Register(name, t)
	}
}
