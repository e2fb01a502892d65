package admin

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/tangibleinc/dataview/pkg/render"
)

// inputType maps a field's input hint onto the HTML input type used for the
// single-line control path.
var inputType = map[string]string{
	"text":     "text",
	"email":    "email",
	"url":      "url",
	"number":   "number",
	"date":     "date",
	"datetime": "datetime-local",
}

func fieldsMarkup(fields []render.FieldView) string {
	var b strings.Builder
	for _, field := range fields {
		writeField(&b, field)
	}
	return b.String()
}

func writeField(b *strings.Builder, field render.FieldView) {
	name := html.EscapeString(field.Name)
	label := html.EscapeString(field.Label)

	rowClass := "dataview-field dataview-field-" + name
	if len(field.Errors) > 0 {
		rowClass += " has-errors"
	}
	fmt.Fprintf(b, "<div class=\"%s\">\n", rowClass)

	if field.Input == "checkbox" {
		writeCheckbox(b, field, name, label)
	} else {
		fmt.Fprintf(b, "<label for=\"field-%s\">%s%s</label>\n", name, label, requiredMark(field))
		writeControl(b, field, name)
	}

	if field.Description != "" {
		fmt.Fprintf(b, "<p class=\"dataview-description\">%s</p>\n", html.EscapeString(field.Description))
	}
	for _, msg := range field.Errors {
		fmt.Fprintf(b, "<p class=\"dataview-error\">%s</p>\n", html.EscapeString(msg))
	}
	b.WriteString("</div>\n")
}

func writeCheckbox(b *strings.Builder, field render.FieldView, name, label string) {
	checked := ""
	if truthy(field.Value) {
		checked = " checked"
	}
	fmt.Fprintf(b,
		"<label for=\"field-%s\"><input type=\"checkbox\" id=\"field-%s\" name=\"%s\" value=\"1\"%s> %s</label>\n",
		name, name, name, checked, label,
	)
}

func writeControl(b *strings.Builder, field render.FieldView, name string) {
	value := html.EscapeString(valueString(field.Value))

	switch {
	case len(field.Options) > 0:
		fmt.Fprintf(b, "<select id=\"field-%s\" name=\"%s\"%s>\n", name, name, requiredAttr(field))
		b.WriteString("<option value=\"\"></option>\n")
		for _, option := range field.Options {
			selected := ""
			if option == valueString(field.Value) {
				selected = " selected"
			}
			escaped := html.EscapeString(option)
			fmt.Fprintf(b, "<option value=\"%s\"%s>%s</option>\n", escaped, selected, escaped)
		}
		b.WriteString("</select>\n")
	case field.Input == "textarea":
		fmt.Fprintf(b, "<textarea id=\"field-%s\" name=\"%s\" rows=\"5\"%s%s>%s</textarea>\n",
			name, name, placeholderAttr(field), requiredAttr(field), value)
	case field.Input == "repeater":
		// rows are edited as their JSON serialization; the sanitizer
		// normalises whatever comes back
		fmt.Fprintf(b, "<textarea id=\"field-%s\" name=\"%s\" rows=\"5\" class=\"dataview-repeater\" data-repeater=\"true\">%s</textarea>\n",
			name, name, value)
	default:
		kind, ok := inputType[field.Input]
		if !ok {
			kind = "text"
		}
		fmt.Fprintf(b, "<input type=%q id=\"field-%s\" name=\"%s\" value=\"%s\"%s%s>\n",
			kind, name, name, value, placeholderAttr(field), requiredAttr(field))
	}
}

func requiredMark(field render.FieldView) string {
	if field.Required {
		return " <span class=\"dataview-required\">*</span>"
	}
	return ""
}

func requiredAttr(field render.FieldView) string {
	if field.Required {
		return " required"
	}
	return ""
}

func placeholderAttr(field render.FieldView) string {
	if field.Placeholder == "" {
		return ""
	}
	return fmt.Sprintf(" placeholder=\"%s\"", html.EscapeString(field.Placeholder))
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case int64:
		return v != 0
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
