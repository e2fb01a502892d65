// Package viewconfig validates and normalises the declarative configuration
// a data view is built from.
package viewconfig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tangibleinc/dataview/pkg/schema"
)

// Storage backend identifiers. StorageCPT selects the embedded content
// store; the token is kept so configurations written against the content-
// type vocabulary keep loading unchanged.
const (
	StorageCPT      = "cpt"
	StorageDatabase = "database"
	StorageOption   = "option"
)

// View modes: a plural view manages a collection with full CRUD, a singular
// view manages one settings-like record with read/update only.
const (
	ModePlural   = "plural"
	ModeSingular = "singular"
)

// DefaultCapability gates the admin surface unless the configuration says
// otherwise.
const DefaultCapability = "manage_options"

// DefaultIcon is the menu icon token used when none is configured.
const DefaultIcon = "generic"

var slugPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Sentinel errors for the three configuration failure classes.
var (
	ErrMissingField           = fmt.Errorf("viewconfig: missing required field")
	ErrInvalidFieldDefinition = fmt.Errorf("viewconfig: invalid field definition")
	ErrInvalidArgument        = fmt.Errorf("viewconfig: invalid argument")
)

// Label carries the singular noun and an optional explicit plural.
type Label struct {
	Singular string `json:"singular" yaml:"singular"`
	Plural   string `json:"plural,omitempty" yaml:"plural,omitempty"`
}

// UI configures admin menu placement. Zero values fall back to slug-derived
// defaults; Position zero means no explicit ordering.
type UI struct {
	MenuPage  string `json:"menu_page,omitempty" yaml:"menu_page,omitempty"`
	MenuLabel string `json:"menu_label,omitempty" yaml:"menu_label,omitempty"`
	Parent    string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Position  int    `json:"position,omitempty" yaml:"position,omitempty"`
}

// Validator is a caller-supplied per-field check run during CRUD validation.
// It receives the sanitized value and returns a user-facing message via its
// error.
type Validator func(value any) error

// FieldConfig is the canonical per-field record every component operates on.
// Authors may write a bare type name in configuration files; ParseMap turns
// that into a FieldConfig with only Type set.
type FieldConfig struct {
	Name        string        `json:"name" yaml:"name"`
	Type        string        `json:"type" yaml:"type"`
	Label       string        `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any           `json:"default,omitempty" yaml:"default,omitempty"`
	Required    bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string      `json:"options,omitempty" yaml:"options,omitempty"`
	SubFields   []FieldConfig `json:"sub_fields,omitempty" yaml:"sub_fields,omitempty"`
	Validators  []Validator   `json:"-" yaml:"-"`
}

// Config is the validated aggregate for one data view. Treat it as read-only
// once Validate has accepted it.
type Config struct {
	Slug           string         `json:"slug" yaml:"slug"`
	Label          Label          `json:"label" yaml:"label"`
	Fields         []FieldConfig  `json:"fields" yaml:"fields"`
	Storage        string         `json:"storage,omitempty" yaml:"storage,omitempty"`
	Mode           string         `json:"mode,omitempty" yaml:"mode,omitempty"`
	Capability     string         `json:"capability,omitempty" yaml:"capability,omitempty"`
	UI             UI             `json:"ui,omitempty" yaml:"ui,omitempty"`
	StorageOptions map[string]any `json:"storage_options,omitempty" yaml:"storage_options,omitempty"`
}

// TypeSet is the part of the field type registry validation needs.
type TypeSet interface {
	Has(name string) bool
}

// ApplyDefaults fills the optional knobs: storage, mode, capability, menu
// page, and icon.
func (c *Config) ApplyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageCPT
	}
	if c.Mode == "" {
		c.Mode = ModePlural
	}
	if c.Capability == "" {
		c.Capability = DefaultCapability
	}
	if c.UI.MenuPage == "" {
		c.UI.MenuPage = c.Slug
	}
	if c.UI.Icon == "" {
		c.UI.Icon = DefaultIcon
	}
}

// Validate checks the aggregate against the configured rules. Field types
// are resolved against the supplied registry; every failure wraps one of the
// package sentinels and names the offending rule.
func (c Config) Validate(types TypeSet) error {
	if c.Slug == "" {
		return fmt.Errorf("%w: slug", ErrMissingField)
	}
	if c.Label.Singular == "" {
		return fmt.Errorf("%w: label", ErrMissingField)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: fields", ErrMissingField)
	}
	if !slugPattern.MatchString(c.Slug) {
		return fmt.Errorf("%w: slug %q must match %s", ErrInvalidArgument, c.Slug, slugPattern.String())
	}

	switch c.Storage {
	case StorageCPT, StorageDatabase, StorageOption:
	default:
		return fmt.Errorf("%w: storage %q is not one of cpt, database, option", ErrInvalidArgument, c.Storage)
	}

	switch c.Mode {
	case ModePlural, ModeSingular:
	default:
		return fmt.Errorf("%w: mode %q is not one of plural, singular", ErrInvalidArgument, c.Mode)
	}

	seen := make(map[string]struct{}, len(c.Fields))
	for _, field := range c.Fields {
		if field.Name == "" {
			return fmt.Errorf("%w: field with empty name", ErrInvalidFieldDefinition)
		}
		if field.Type == "" {
			return fmt.Errorf("%w: field %q has no type", ErrInvalidFieldDefinition, field.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidFieldDefinition, field.Name)
		}
		seen[field.Name] = struct{}{}
		if types != nil && !types.Has(field.Type) {
			return fmt.Errorf("%w: field %q uses unregistered type %q", ErrInvalidArgument, field.Name, field.Type)
		}
	}
	return nil
}

// Field returns the config for a field name.
func (c Config) Field(name string) (FieldConfig, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldConfig{}, false
}

// FieldNames returns the field names in declaration order.
func (c Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, field := range c.Fields {
		names = append(names, field.Name)
	}
	return names
}

// SchemaFields maps the field list into the shape the schema generator
// consumes.
func (c Config) SchemaFields() []schema.Field {
	out := make([]schema.Field, 0, len(c.Fields))
	for _, field := range c.Fields {
		out = append(out, schema.Field{Name: field.Name, Type: field.Type})
	}
	return out
}

// MenuLabel resolves the display label for menu placement: explicit UI
// override first, then plural, then singular.
func (c Config) MenuLabel() string {
	if c.UI.MenuLabel != "" {
		return c.UI.MenuLabel
	}
	if c.Label.Plural != "" {
		return c.Label.Plural
	}
	return c.Label.Singular
}

// Singular reports whether the view manages one settings-like record.
func (c Config) Singular() bool {
	return c.Mode == ModeSingular
}

// FieldLabel resolves the display label for one field: explicit label first,
// else a humanized form of the name.
func (f FieldConfig) FieldLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return Humanize(f.Name)
}

// Humanize converts a field name like "published_at" or "maxItems" into a
// title-cased label.
func Humanize(name string) string {
	if name == "" {
		return ""
	}
	parts := splitWords(name)
	for i, part := range parts {
		lower := strings.ToLower(part)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

func splitWords(name string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case i > 0 && r >= 'A' && r <= 'Z' && runes[i-1] >= 'a' && runes[i-1] <= 'z':
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	if len(words) == 0 {
		return []string{name}
	}
	return words
}
