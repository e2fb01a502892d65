package schema

import "fmt"

// ColumnSpec describes one persisted column. Length is only meaningful for
// sized types; Default is the literal applied when a row omits the column.
type ColumnSpec struct {
	Type          string `json:"type" yaml:"type"`
	Length        int    `json:"length,omitempty" yaml:"length,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	AutoIncrement bool   `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	Default       any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Column pairs a column name with its spec, preserving declaration order so
// storage adapters emit deterministic DDL.
type Column struct {
	Name string
	Spec ColumnSpec
}

// Field names one data attribute and the registered field type that drives
// its column spec.
type Field struct {
	Name string
	Type string
}

// ColumnSource resolves the column spec registered for a field type name.
// *fieldtype.Registry satisfies it.
type ColumnSource interface {
	Column(typeName string) (ColumnSpec, error)
}

// IDColumn is the synthetic primary key prepended to every generated table.
func IDColumn() ColumnSpec {
	return ColumnSpec{
		Type:          "bigint",
		Length:        20,
		PrimaryKey:    true,
		AutoIncrement: true,
	}
}

// Columns derives the full column list for a field set. The id column always
// comes first; the remaining columns follow field declaration order.
func Columns(fields []Field, source ColumnSource) ([]Column, error) {
	if source == nil {
		return nil, fmt.Errorf("schema: column source is required")
	}

	out := make([]Column, 0, len(fields)+1)
	out = append(out, Column{Name: "id", Spec: IDColumn()})

	for _, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("schema: field with empty name")
		}
		spec, err := source.Column(field.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", field.Name, err)
		}
		out = append(out, Column{Name: field.Name, Spec: spec})
	}
	return out, nil
}

// Settings is the declarative descriptor handed to storage adapters. Version
// lets an adapter track migrations; no migration logic lives here.
type Settings struct {
	Version int                   `json:"version" yaml:"version"`
	Schema  map[string]ColumnSpec `json:"schema" yaml:"schema"`
}

// GenerateSettings wraps Columns in a versioned descriptor. A version of zero
// or below is normalised to 1.
func GenerateSettings(fields []Field, source ColumnSource, version int) (Settings, error) {
	columns, err := Columns(fields, source)
	if err != nil {
		return Settings{}, err
	}
	if version <= 0 {
		version = 1
	}

	out := Settings{
		Version: version,
		Schema:  make(map[string]ColumnSpec, len(columns)),
	}
	for _, column := range columns {
		out.Schema[column.Name] = column.Spec
	}
	return out, nil
}
