// Package template declares the engine seam page renderers draw on.
package template

import "io"

// TemplateRenderer renders named or inline templates against arbitrary data.
// The optional writers receive the rendered output in addition to the return
// value.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
