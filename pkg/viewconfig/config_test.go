package viewconfig

import (
	"errors"
	"strings"
	"testing"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
)

func validMap() map[string]any {
	return map[string]any{
		"slug":  "books",
		"label": "Book",
		"fields": map[string]any{
			"title": "string",
			"count": map[string]any{"type": "integer", "label": "Copies"},
		},
	}
}

func TestParseMap_Normalises(t *testing.T) {
	cfg, err := ParseMap(validMap())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Slug != "books" {
		t.Fatalf("slug: %q", cfg.Slug)
	}
	if cfg.Label.Singular != "Book" {
		t.Fatalf("label: %+v", cfg.Label)
	}

	// map input sorts fields by name
	if len(cfg.Fields) != 2 || cfg.Fields[0].Name != "count" || cfg.Fields[1].Name != "title" {
		t.Fatalf("fields: %+v", cfg.Fields)
	}
	if cfg.Fields[1].Type != "string" {
		t.Fatalf("bare type name not normalised: %+v", cfg.Fields[1])
	}
	if cfg.Fields[0].Label != "Copies" {
		t.Fatalf("record field lost label: %+v", cfg.Fields[0])
	}
}

func TestParseMap_MissingRequiredKeys(t *testing.T) {
	cases := []struct {
		name string
		drop string
	}{
		{name: "slug", drop: "slug"},
		{name: "label", drop: "label"},
		{name: "fields", drop: "fields"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validMap()
			delete(raw, tc.drop)
			_, err := ParseMap(raw)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("want ErrMissingField, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.drop) {
				t.Fatalf("error %q does not name %q", err.Error(), tc.drop)
			}
		})
	}
}

func TestParseMap_LabelRecordRequiresSingular(t *testing.T) {
	raw := validMap()
	raw["label"] = map[string]any{"plural": "Books"}
	_, err := ParseMap(raw)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}

func TestParseMap_FieldRecordRequiresType(t *testing.T) {
	raw := validMap()
	raw["fields"] = map[string]any{
		"title": map[string]any{"label": "Title"},
	}
	_, err := ParseMap(raw)
	if !errors.Is(err, ErrInvalidFieldDefinition) {
		t.Fatalf("want ErrInvalidFieldDefinition, got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg, err := ParseMap(validMap())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg.ApplyDefaults()

	if cfg.Storage != StorageCPT {
		t.Fatalf("storage default: %q", cfg.Storage)
	}
	if cfg.Mode != ModePlural {
		t.Fatalf("mode default: %q", cfg.Mode)
	}
	if cfg.Capability != DefaultCapability {
		t.Fatalf("capability default: %q", cfg.Capability)
	}
	if cfg.UI.MenuPage != "books" {
		t.Fatalf("menu page default: %q", cfg.UI.MenuPage)
	}
	if cfg.UI.Icon != DefaultIcon {
		t.Fatalf("icon default: %q", cfg.UI.Icon)
	}
	if cfg.MenuLabel() != "Book" {
		t.Fatalf("menu label: %q", cfg.MenuLabel())
	}
}

func TestValidate(t *testing.T) {
	reg := fieldtype.NewRegistry()

	base := func() Config {
		cfg, err := ParseMap(validMap())
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		cfg.ApplyDefaults()
		return cfg
	}

	if err := base().Validate(reg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	t.Run("bad slug", func(t *testing.T) {
		cfg := base()
		cfg.Slug = "Invalid-Slug!"
		if err := cfg.Validate(reg); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("bad storage", func(t *testing.T) {
		cfg := base()
		cfg.Storage = "invalid_storage"
		if err := cfg.Validate(reg); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("bad mode", func(t *testing.T) {
		cfg := base()
		cfg.Mode = "invalid_mode"
		if err := cfg.Validate(reg); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown field type", func(t *testing.T) {
		cfg := base()
		cfg.Fields = append(cfg.Fields, FieldConfig{Name: "blob", Type: "mystery"})
		if err := cfg.Validate(reg); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("empty fields", func(t *testing.T) {
		cfg := base()
		cfg.Fields = nil
		if err := cfg.Validate(reg); !errors.Is(err, ErrMissingField) {
			t.Fatalf("want ErrMissingField, got %v", err)
		}
	})
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"published_at": "Published At",
		"maxItems":     "Max Items",
		"title":        "Title",
		"site-name":    "Site Name",
	}
	for in, want := range cases {
		if got := Humanize(in); got != want {
			t.Fatalf("humanize %q: want %q, got %q", in, want, got)
		}
	}
}
