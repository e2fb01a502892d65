package fieldtype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func htmlStripper() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText coerces the value to a string and strips every HTML element
// from it. Non-string scalars are rendered with their default formatting;
// nil becomes the empty string.
func SanitizeText(value any) any {
	return stripTags(coerceString(value))
}

// SanitizeTextline behaves like SanitizeText and additionally collapses the
// result onto a single trimmed line.
func SanitizeTextline(value any) any {
	cleaned := stripTags(coerceString(value))
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return strings.TrimSpace(cleaned)
}

// SanitizeInteger coerces the value to int64. Unparseable input becomes 0.
func SanitizeInteger(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return int64(0)
		}
		return parsed
	default:
		return int64(0)
	}
}

// SanitizeBoolean accepts booleans as-is and recognises the usual affirmative
// form tokens. Numbers are true when non-zero. Any other type sanitizes to
// false.
func SanitizeBoolean(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// SanitizeDate keeps only values that parse as YYYY-MM-DD.
func SanitizeDate(value any) any {
	raw := strings.TrimSpace(coerceString(value))
	if raw == "" {
		return ""
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return ""
	}
	return parsed.Format("2006-01-02")
}

// SanitizeDateTime keeps only values that parse as a datetime-local stamp,
// with or without seconds.
func SanitizeDateTime(value any) any {
	raw := strings.TrimSpace(coerceString(value))
	if raw == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("2006-01-02T15:04:05")
		}
	}
	return ""
}

// EmptyRepeater is the serialized form of a repeater with no rows, and the
// result of sanitizing anything that does not decode to a row list.
const EmptyRepeater = "[]"

// SanitizeRepeater normalises a repeater submission into a JSON array of
// flat rows. Input may be a JSON string (optionally backslash-escaped by the
// transport) or an already-decoded []any. Rows that are not objects become
// empty objects. Within a row the "key" entry is kept as a sanitized string,
// string values are HTML-stripped, numbers, bools and nulls pass through,
// and anything nested is dropped so a row can never smuggle structure.
func SanitizeRepeater(value any) any {
	rows, ok := decodeRepeater(value)
	if !ok {
		return EmptyRepeater
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			out = append(out, map[string]any{})
			continue
		}
		clean := make(map[string]any, len(fields))
		for name, item := range fields {
			switch v := item.(type) {
			case string:
				if name == "key" {
					clean[name] = SanitizeTextline(v)
				} else {
					clean[name] = stripTags(v)
				}
			case float64, int, int64, bool, nil:
				clean[name] = v
			default:
				// nested array or object: dropped
			}
		}
		out = append(out, clean)
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return EmptyRepeater
	}
	return string(encoded)
}

func decodeRepeater(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, false
		}
		var rows []any
		if err := json.Unmarshal([]byte(trimmed), &rows); err == nil {
			return rows, true
		}
		if err := json.Unmarshal([]byte(stripSlashes(trimmed)), &rows); err == nil {
			return rows, true
		}
		return nil, false
	case []map[string]any:
		rows := make([]any, len(v))
		for i, row := range v {
			rows[i] = row
		}
		return rows, true
	default:
		return nil, false
	}
}

func stripTags(raw string) string {
	if raw == "" {
		return ""
	}
	return htmlStripper().Sanitize(raw)
}

// stripSlashes undoes transport-level backslash escaping of quotes, the form
// many host stacks apply to request bodies before handing them over.
func stripSlashes(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	escaped := false
	for _, r := range raw {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
