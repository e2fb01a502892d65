package viewconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses every JSON/YAML view
// configuration file into a normalised Config. Defaults are applied;
// validation against a type registry stays with the caller so applications
// can register custom types first. Results are keyed by slug and duplicate
// slugs across files are an error.
func LoadFS(fsys fs.FS) (map[string]Config, error) {
	out := make(map[string]Config)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("viewconfig: read %s: %w", path, err)
		}

		raw, err := decodeDocument(data, path)
		if err != nil {
			return err
		}

		cfg, err := ParseMap(raw)
		if err != nil {
			return fmt.Errorf("viewconfig: file %s: %w", path, err)
		}
		cfg.ApplyDefaults()

		if _, exists := out[cfg.Slug]; exists {
			return fmt.Errorf("viewconfig: duplicate slug %q (file %s)", cfg.Slug, path)
		}
		out[cfg.Slug] = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile parses one JSON/YAML view configuration file from the host
// filesystem, defaults applied.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("viewconfig: read %s: %w", path, err)
	}
	raw, err := decodeDocument(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseMap(raw)
	if err != nil {
		return Config{}, fmt.Errorf("viewconfig: file %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func decodeDocument(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("viewconfig: file %s is empty", source)
	}

	var viaJSON map[string]any
	if err := json.Unmarshal(data, &viaJSON); err == nil {
		return viaJSON, nil
	}

	var viaYAML map[string]any
	if err := yaml.Unmarshal(data, &viaYAML); err == nil {
		return normalizeYAML(viaYAML), nil
	}

	return nil, fmt.Errorf("viewconfig: parse %s: invalid JSON or YAML", source)
}

// normalizeYAML rewrites nested map[any]any values (produced by some YAML
// shapes) into map[string]any so ParseMap sees one canonical form.
func normalizeYAML(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeYAMLValue(value)
	}
	return out
}

func normalizeYAMLValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeYAML(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAMLValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAMLValue(item)
		}
		return out
	default:
		return value
	}
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
