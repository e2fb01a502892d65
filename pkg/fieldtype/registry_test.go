package fieldtype

import (
	"errors"
	"testing"

	"github.com/tangibleinc/dataview/pkg/schema"
)

func TestRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	builtins := []string{
		TypeString, TypeText, TypeEmail, TypeURL, TypeInteger,
		TypeBoolean, TypeDate, TypeDateTime, TypeRepeater,
	}
	for _, name := range builtins {
		if !reg.Has(name) {
			t.Fatalf("expected built-in type %q", name)
		}
		if _, err := reg.Dataset(name); err != nil {
			t.Fatalf("dataset %s: %v", name, err)
		}
		if _, err := reg.Sanitizer(name); err != nil {
			t.Fatalf("sanitizer %s: %v", name, err)
		}
		if _, err := reg.Column(name); err != nil {
			t.Fatalf("column %s: %v", name, err)
		}
		if _, err := reg.Input(name); err != nil {
			t.Fatalf("input %s: %v", name, err)
		}
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := NewRegistry()

	if reg.Has("nope") {
		t.Fatal("unregistered type reported as present")
	}
	if _, err := reg.Dataset("nope"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("dataset: want ErrUnknownType, got %v", err)
	}
	if _, err := reg.Sanitizer("nope"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("sanitizer: want ErrUnknownType, got %v", err)
	}
	if _, err := reg.Column("nope"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("column: want ErrUnknownType, got %v", err)
	}
	if _, err := reg.Input("nope"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("input: want ErrUnknownType, got %v", err)
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	reg := NewRegistry()

	complete := Type{
		Dataset:   DatasetString,
		Sanitizer: SanitizeText,
		Column:    schema.ColumnSpec{Type: "varchar", Length: 64},
		Input:     "text",
	}

	cases := []struct {
		name string
		t    Type
	}{
		{name: "missing dataset", t: Type{Sanitizer: complete.Sanitizer, Column: complete.Column, Input: "text"}},
		{name: "missing sanitizer", t: Type{Dataset: DatasetString, Column: complete.Column, Input: "text"}},
		{name: "missing column", t: Type{Dataset: DatasetString, Sanitizer: complete.Sanitizer, Input: "text"}},
		{name: "missing input", t: Type{Dataset: DatasetString, Sanitizer: complete.Sanitizer, Column: complete.Column}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := reg.Register("slug", tc.t); !errors.Is(err, ErrInvalidType) {
				t.Fatalf("want ErrInvalidType, got %v", err)
			}
		})
	}

	if err := reg.Register("slug", complete); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := NewRegistry()

	custom := Type{
		Dataset:   DatasetInteger,
		Sanitizer: SanitizeInteger,
		Column:    schema.ColumnSpec{Type: "int", Length: 11},
		Input:     "number",
	}
	if err := reg.Register(TypeString, custom); err != nil {
		t.Fatalf("overwrite register: %v", err)
	}

	dataset, err := reg.Dataset(TypeString)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	if dataset != DatasetInteger {
		t.Fatalf("overwrite lost: dataset %q", dataset)
	}
}

func TestRegistry_SatisfiesColumnSource(t *testing.T) {
	var _ schema.ColumnSource = NewRegistry()
}
