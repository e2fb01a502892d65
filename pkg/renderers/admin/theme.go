package admin

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

func themeClass(cfg *theme.RendererConfig) string {
	var classes []string
	if cfg.Theme != "" {
		classes = append(classes, "theme-"+cfg.Theme)
	}
	if cfg.Variant != "" {
		classes = append(classes, "theme-variant-"+cfg.Variant)
	}
	return strings.Join(classes, " ")
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
