// Package admin renders the built-in HTML admin surface: a list table and a
// form page per view, with optional theme chrome.
package admin

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/tangibleinc/dataview/pkg/render"
	"github.com/tangibleinc/dataview/pkg/render/template"
	"github.com/tangibleinc/dataview/pkg/render/template/pongo"
)

// Name identifies this renderer in the render registry.
const Name = "admin"

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine swaps the template engine. The default engine loads the
// embedded page templates.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTheme attaches resolved theme chrome: body classes, CSS variables and
// a stylesheet link resolved through the theme's asset URL.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) { r.theme = cfg }
}

// Renderer implements render.Renderer with server-rendered HTML pages.
type Renderer struct {
	engine template.TemplateRenderer
	theme  *theme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a Renderer backed by the embedded templates unless an
// engine override is supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.engine == nil {
		engine, err := pongo.New(pongo.WithFS(templatesFS))
		if err != nil {
			return nil, fmt.Errorf("admin: build template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name returns the registry name.
func (r *Renderer) Name() string { return Name }

// ContentType returns the response content type for every page.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// RenderList renders the list table page.
func (r *Renderer) RenderList(_ context.Context, data render.ListData) ([]byte, error) {
	rows := make([]map[string]any, 0, len(data.Rows))
	for _, row := range data.Rows {
		rows = append(rows, map[string]any{
			"cells":      row.Cells,
			"edit_url":   row.EditURL,
			"delete_url": row.DeleteURL,
		})
	}

	ctx := map[string]any{
		"slug":          data.Slug,
		"title":         data.Title,
		"columns":       data.Columns,
		"rows":          rows,
		"add_new_url":   data.AddNewURL,
		"add_new_label": data.AddNewLabel,
		"empty_state":   data.EmptyState,
		"notice":        data.Notice,
	}
	r.applyTheme(ctx)

	page, err := r.engine.RenderTemplate("templates/list", ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: render list for %s: %w", data.Slug, err)
	}
	return []byte(page), nil
}

// RenderForm renders a create, edit or settings form page. Field controls
// are assembled in Go and passed to the page template as finished markup.
func (r *Renderer) RenderForm(_ context.Context, data render.FormData) ([]byte, error) {
	ctx := map[string]any{
		"slug":         data.Slug,
		"title":        data.Title,
		"action":       data.Action,
		"nonce_field":  data.NonceField,
		"nonce":        data.Nonce,
		"fields":       fieldsMarkup(data.Fields),
		"submit_label": data.SubmitLabel,
		"back_url":     data.BackURL,
		"back_label":   data.BackLabel,
		"notice":       data.Notice,
	}
	r.applyTheme(ctx)

	page, err := r.engine.RenderTemplate("templates/form", ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: render form for %s: %w", data.Slug, err)
	}
	return []byte(page), nil
}

func (r *Renderer) applyTheme(ctx map[string]any) {
	if r.theme == nil {
		return
	}
	ctx["theme_class"] = themeClass(r.theme)
	ctx["css_vars_style"] = cssVarsStyle(r.theme.CSSVars)
	if r.theme.AssetURL != nil {
		ctx["stylesheet"] = r.theme.AssetURL("admin.css")
	}
}
