// Package router dispatches admin requests for one data view: list, create,
// edit and delete for record collections, or a single settings form. Every
// state-changing request must carry a valid action-scoped nonce, and an
// optional guard gates the whole surface.
package router

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/tangibleinc/dataview/pkg/adminurl"
	"github.com/tangibleinc/dataview/pkg/crud"
	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/labels"
	"github.com/tangibleinc/dataview/pkg/nonce"
	"github.com/tangibleinc/dataview/pkg/render"
	"github.com/tangibleinc/dataview/pkg/storage"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

// GuardFunc decides whether a request may reach the view at all. A non-nil
// error stops the request with 403 before any processing.
type GuardFunc func(r *http.Request) error

// Option configures a Handler.
type Option func(*Handler)

// WithGuard installs the capability check.
func WithGuard(guard GuardFunc) Option {
	return func(h *Handler) { h.guard = guard }
}

// WithBasePath mounts the view's URLs somewhere other than "/".
func WithBasePath(basePath string) Option {
	return func(h *Handler) { h.basePath = basePath }
}

// WithLogger attaches a logger for dispatch diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// Handler serves one data view over HTTP.
type Handler struct {
	cfg      *viewconfig.Config
	labels   labels.Set
	types    *fieldtype.Registry
	svc      *crud.Service
	renderer render.Renderer
	nonces   *nonce.Service
	guard    GuardFunc
	basePath string
	urls     adminurl.Builder
	log      *zap.SugaredLogger
}

// New constructs a Handler. All collaborators except guard and logger are
// required.
func New(cfg *viewconfig.Config, set labels.Set, types *fieldtype.Registry, svc *crud.Service, renderer render.Renderer, nonces *nonce.Service, options ...Option) (*Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("router: nil config")
	}
	if types == nil {
		return nil, fmt.Errorf("router: nil type registry")
	}
	if svc == nil {
		return nil, fmt.Errorf("router: nil crud service")
	}
	if renderer == nil {
		return nil, fmt.Errorf("router: nil renderer")
	}
	if nonces == nil {
		return nil, fmt.Errorf("router: nil nonce service")
	}

	h := &Handler{
		cfg:      cfg,
		labels:   set,
		types:    types,
		svc:      svc,
		renderer: renderer,
		nonces:   nonces,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	h.urls = adminurl.New(h.basePath, cfg.Slug)
	return h, nil
}

// BasePath returns the path the handler's URLs are built against.
func (h *Handler) BasePath() string { return h.urls.BasePath }

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.guard != nil {
		if err := h.guard(r); err != nil {
			h.log.Infow("guard rejected request", "view", h.cfg.Slug, "path", r.URL.Path)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
	}

	if h.cfg.Singular() {
		h.serveSettings(w, r)
		return
	}

	action := h.urls.CurrentAction(r)
	id := h.urls.CurrentID(r)

	switch action {
	case adminurl.ActionList:
		h.serveList(w, r)
	case adminurl.ActionCreate:
		h.serveCreate(w, r)
	case adminurl.ActionEdit:
		h.serveEdit(w, r, id)
	case adminurl.ActionDelete:
		h.serveDelete(w, r, id)
	}
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, "list records", err)
		return
	}

	rows := make([]render.Row, 0, len(records))
	for _, record := range records {
		id, _ := record["id"].(int64)
		rows = append(rows, render.Row{
			ID:        id,
			Cells:     h.cells(record),
			EditURL:   h.urls.URL(adminurl.ActionEdit, id, nil),
			DeleteURL: h.urls.URLWithNonce(adminurl.ActionDelete, id, h.nonces.Mint(h.urls.NonceAction(adminurl.ActionDelete, id))),
		})
	}

	var notice string
	if adminurl.Notice(r) == adminurl.FlagDeleted {
		notice = h.labels.ItemDeleted
	}

	body, err := h.renderer.RenderList(r.Context(), render.ListData{
		Slug:        h.cfg.Slug,
		Title:       h.labels.ListTitle,
		Columns:     h.columns(),
		Rows:        rows,
		AddNewURL:   h.urls.URL(adminurl.ActionCreate, 0, nil),
		AddNewLabel: h.labels.AddNewItem,
		EmptyState:  h.labels.EmptyState,
		Notice:      notice,
	})
	if err != nil {
		h.fail(w, "render list", err)
		return
	}
	h.write(w, body)
}

func (h *Handler) serveCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderCreateForm(w, r, h.defaults(), nil)
		return
	}

	if !h.verifyNonce(w, r, adminurl.ActionCreate, 0) {
		return
	}
	input := PostData(r, h.cfg, h.types)
	id, verrs, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.fail(w, "create record", err)
		return
	}
	if !verrs.Empty() {
		h.renderCreateForm(w, r, h.svc.Sanitize(input), verrs)
		return
	}
	http.Redirect(w, r, h.urls.NoticeURL(adminurl.ActionEdit, id, adminurl.FlagCreated), http.StatusSeeOther)
}

func (h *Handler) serveEdit(w http.ResponseWriter, r *http.Request, id int64) {
	if id == 0 {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodGet {
		record, err := h.svc.Get(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			h.fail(w, "load record", err)
			return
		}

		var notice string
		switch adminurl.Notice(r) {
		case adminurl.FlagCreated:
			notice = h.labels.ItemCreated
		case adminurl.FlagUpdated:
			notice = h.labels.ItemUpdated
		}
		h.renderEditForm(w, r, id, record, nil, notice)
		return
	}

	if !h.verifyNonce(w, r, adminurl.ActionEdit, id) {
		return
	}
	input := PostData(r, h.cfg, h.types)
	verrs, err := h.svc.Update(r.Context(), id, input)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "update record", err)
		return
	}
	if !verrs.Empty() {
		h.renderEditForm(w, r, id, h.svc.Sanitize(input), verrs, "")
		return
	}
	http.Redirect(w, r, h.urls.NoticeURL(adminurl.ActionEdit, id, adminurl.FlagUpdated), http.StatusSeeOther)
}

func (h *Handler) serveDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if id == 0 {
		http.NotFound(w, r)
		return
	}
	if !h.verifyNonce(w, r, adminurl.ActionDelete, id) {
		return
	}

	err := h.svc.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, "delete record", err)
		return
	}
	http.Redirect(w, r, h.urls.NoticeURL(adminurl.ActionList, 0, adminurl.FlagDeleted), http.StatusFound)
}

func (h *Handler) serveSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		record, err := h.svc.ReadSettings(r.Context())
		if err != nil {
			h.fail(w, "load settings", err)
			return
		}
		var notice string
		if adminurl.Notice(r) == adminurl.FlagUpdated {
			notice = h.labels.SettingsSaved
		}
		h.renderSettingsForm(w, r, record, nil, notice)
		return
	}

	if !h.verifyNonce(w, r, adminurl.ActionEdit, 0) {
		return
	}
	input := PostData(r, h.cfg, h.types)
	verrs, err := h.svc.WriteSettings(r.Context(), input)
	if err != nil {
		h.fail(w, "save settings", err)
		return
	}
	if !verrs.Empty() {
		h.renderSettingsForm(w, r, h.svc.Sanitize(input), verrs, "")
		return
	}
	http.Redirect(w, r, h.urls.NoticeURL(adminurl.ActionList, 0, adminurl.FlagUpdated), http.StatusSeeOther)
}

func (h *Handler) renderCreateForm(w http.ResponseWriter, r *http.Request, values storage.Record, verrs crud.ValidationErrors) {
	h.renderForm(w, r, formPage{
		title:       h.labels.AddNewItem,
		action:      adminurl.ActionCreate,
		submitLabel: h.labels.CreateItem,
		values:      values,
		errors:      verrs,
		backToList:  true,
	})
}

func (h *Handler) renderEditForm(w http.ResponseWriter, r *http.Request, id int64, values storage.Record, verrs crud.ValidationErrors, notice string) {
	h.renderForm(w, r, formPage{
		title:       h.labels.EditItem,
		action:      adminurl.ActionEdit,
		id:          id,
		submitLabel: h.labels.UpdateItem,
		values:      values,
		errors:      verrs,
		notice:      notice,
		backToList:  true,
	})
}

func (h *Handler) renderSettingsForm(w http.ResponseWriter, r *http.Request, values storage.Record, verrs crud.ValidationErrors, notice string) {
	h.renderForm(w, r, formPage{
		title:       h.cfg.MenuLabel(),
		action:      adminurl.ActionEdit,
		submitLabel: h.labels.SaveItem,
		values:      values,
		errors:      verrs,
		notice:      notice,
	})
}

type formPage struct {
	title       string
	action      string
	id          int64
	submitLabel string
	values      storage.Record
	errors      crud.ValidationErrors
	notice      string
	backToList  bool
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, page formPage) {
	data := render.FormData{
		Slug:        h.cfg.Slug,
		Title:       page.title,
		Action:      h.urls.URL(page.action, page.id, nil),
		NonceField:  adminurl.ParamNonce,
		Nonce:       h.nonces.Mint(h.urls.NonceAction(page.action, page.id)),
		Fields:      h.fieldViews(page.values, page.errors.ByField()),
		SubmitLabel: page.submitLabel,
		Notice:      page.notice,
	}
	if page.backToList {
		data.BackURL = h.urls.URL(adminurl.ActionList, 0, nil)
		data.BackLabel = h.labels.BackToList
	}

	body, err := h.renderer.RenderForm(r.Context(), data)
	if err != nil {
		h.fail(w, "render form", err)
		return
	}
	h.write(w, body)
}

func (h *Handler) fieldViews(values storage.Record, errs map[string][]string) []render.FieldView {
	views := make([]render.FieldView, 0, len(h.cfg.Fields))
	for _, field := range h.cfg.Fields {
		input, err := h.types.Input(field.Type)
		if err != nil {
			input = "text"
		}
		views = append(views, render.FieldView{
			Name:        field.Name,
			Label:       field.FieldLabel(),
			Input:       input,
			Placeholder: field.Placeholder,
			Description: field.Description,
			Value:       values[field.Name],
			Options:     field.Options,
			Required:    field.Required,
			Errors:      errs[field.Name],
		})
	}
	return views
}

func (h *Handler) columns() []string {
	columns := make([]string, 0, len(h.cfg.Fields))
	for _, field := range h.cfg.Fields {
		columns = append(columns, field.FieldLabel())
	}
	return columns
}

func (h *Handler) cells(record storage.Record) []string {
	cells := make([]string, 0, len(h.cfg.Fields))
	for _, field := range h.cfg.Fields {
		cells = append(cells, displayValue(record[field.Name]))
	}
	return cells
}

// defaults seeds the create form with each field's configured default.
func (h *Handler) defaults() storage.Record {
	values := make(storage.Record)
	for _, field := range h.cfg.Fields {
		if field.Default != nil {
			values[field.Name] = field.Default
		}
	}
	return values
}

func (h *Handler) verifyNonce(w http.ResponseWriter, r *http.Request, action string, id int64) bool {
	token := r.URL.Query().Get(adminurl.ParamNonce)
	if token == "" {
		if err := r.ParseForm(); err == nil {
			token = r.PostForm.Get(adminurl.ParamNonce)
		}
	}
	if !h.nonces.Verify(token, h.urls.NonceAction(action, id)) {
		h.log.Infow("nonce check failed", "view", h.cfg.Slug, "action", action, "id", id)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.log.Errorw(op+" failed", "view", h.cfg.Slug, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) write(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
