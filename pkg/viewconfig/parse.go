package viewconfig

import (
	"fmt"
	"sort"
)

// ParseMap normalises the loose map shape configuration files and embedding
// applications hand over. Field entries may be a bare type name or a full
// record; labels may be a bare singular string. The result still needs
// ApplyDefaults and Validate before use.
//
// Field order is not preserved by the map shape, so fields are sorted by
// name to keep downstream output deterministic. Use Config literals when
// declaration order matters.
func ParseMap(raw map[string]any) (Config, error) {
	var cfg Config

	slug, ok := stringValue(raw["slug"])
	if !ok || slug == "" {
		return Config{}, fmt.Errorf("%w: slug", ErrMissingField)
	}
	cfg.Slug = slug

	label, err := parseLabel(raw["label"])
	if err != nil {
		return Config{}, err
	}
	cfg.Label = label

	fields, err := parseFields(raw["fields"])
	if err != nil {
		return Config{}, err
	}
	cfg.Fields = fields

	cfg.Storage, _ = stringValue(raw["storage"])
	cfg.Mode, _ = stringValue(raw["mode"])
	cfg.Capability, _ = stringValue(raw["capability"])

	if ui, ok := raw["ui"].(map[string]any); ok {
		cfg.UI.MenuPage, _ = stringValue(ui["menu_page"])
		cfg.UI.MenuLabel, _ = stringValue(ui["menu_label"])
		cfg.UI.Parent, _ = stringValue(ui["parent"])
		cfg.UI.Icon, _ = stringValue(ui["icon"])
		cfg.UI.Position = intValue(ui["position"])
	}

	if opts, ok := raw["storage_options"].(map[string]any); ok {
		cfg.StorageOptions = opts
	}

	return cfg, nil
}

func parseLabel(raw any) (Label, error) {
	switch v := raw.(type) {
	case nil:
		return Label{}, fmt.Errorf("%w: label", ErrMissingField)
	case string:
		if v == "" {
			return Label{}, fmt.Errorf("%w: label", ErrMissingField)
		}
		return Label{Singular: v}, nil
	case map[string]any:
		singular, _ := stringValue(v["singular"])
		if singular == "" {
			return Label{}, fmt.Errorf("%w: label singular", ErrMissingField)
		}
		plural, _ := stringValue(v["plural"])
		return Label{Singular: singular, Plural: plural}, nil
	default:
		return Label{}, fmt.Errorf("%w: label must be a string or a record, got %T", ErrInvalidArgument, raw)
	}
}

func parseFields(raw any) ([]FieldConfig, error) {
	entries, ok := raw.(map[string]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("%w: fields", ErrMissingField)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FieldConfig, 0, len(names))
	for _, name := range names {
		field, err := parseField(name, entries[name])
		if err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, nil
}

func parseField(name string, raw any) (FieldConfig, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return FieldConfig{}, fmt.Errorf("%w: field %q has an empty type name", ErrInvalidFieldDefinition, name)
		}
		return FieldConfig{Name: name, Type: v}, nil
	case map[string]any:
		typeName, _ := stringValue(v["type"])
		if typeName == "" {
			return FieldConfig{}, fmt.Errorf("%w: field %q is missing a type", ErrInvalidFieldDefinition, name)
		}
		field := FieldConfig{Name: name, Type: typeName}
		field.Label, _ = stringValue(v["label"])
		field.Placeholder, _ = stringValue(v["placeholder"])
		field.Description, _ = stringValue(v["description"])
		field.Default = v["default"]
		field.Required = boolValue(v["required"])
		field.Options = stringSlice(v["options"])
		if sub, ok := v["sub_fields"].(map[string]any); ok {
			subFields, err := parseFields(sub)
			if err != nil {
				return FieldConfig{}, fmt.Errorf("%w: field %q sub_fields: %v", ErrInvalidFieldDefinition, name, err)
			}
			field.SubFields = subFields
		}
		return field, nil
	default:
		return FieldConfig{}, fmt.Errorf("%w: field %q must be a type name or a record, got %T", ErrInvalidFieldDefinition, name, raw)
	}
}

func stringValue(raw any) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

func boolValue(raw any) bool {
	b, ok := raw.(bool)
	return ok && b
}

func intValue(raw any) int {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func stringSlice(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
