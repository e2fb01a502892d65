package router

import (
	"net/http"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

// PostData extracts the configured fields from a form submission. Absent
// boolean fields read as false and absent repeaters as an empty row list,
// matching how browsers omit unchecked boxes and empty collections. Any
// other absent field stays absent so partial updates do not blank values.
func PostData(r *http.Request, cfg *viewconfig.Config, types *fieldtype.Registry) map[string]any {
	_ = r.ParseForm()

	input := make(map[string]any, len(cfg.Fields))
	for _, field := range cfg.Fields {
		if values, ok := r.PostForm[field.Name]; ok && len(values) > 0 {
			input[field.Name] = values[0]
			continue
		}

		dataset, err := types.Dataset(field.Type)
		if err == nil && dataset == fieldtype.DatasetBoolean {
			input[field.Name] = false
			continue
		}
		if inputHint, err := types.Input(field.Type); err == nil && inputHint == "repeater" {
			input[field.Name] = fieldtype.EmptyRepeater
		}
	}
	return input
}
