package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/tangibleinc/dataview/pkg/crud"
	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/labels"
	"github.com/tangibleinc/dataview/pkg/nonce"
	"github.com/tangibleinc/dataview/pkg/renderers/admin"
	"github.com/tangibleinc/dataview/pkg/storage/memstore"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

func newBooksHandler(t *testing.T, options ...Option) (*Handler, *nonce.Service) {
	t.Helper()

	cfg := &viewconfig.Config{
		Slug:  "books",
		Label: viewconfig.Label{Singular: "Book"},
		Fields: []viewconfig.FieldConfig{
			{Name: "title", Type: "string", Required: true},
			{Name: "count", Type: "integer"},
			{Name: "featured", Type: "boolean"},
		},
	}
	cfg.ApplyDefaults()

	store, err := memstore.New()
	if err != nil {
		t.Fatalf("memstore: %v", err)
	}
	svc, err := crud.New(cfg, fieldtype.NewRegistry(), store)
	if err != nil {
		t.Fatalf("crud: %v", err)
	}
	renderer, err := admin.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	nonces := nonce.New(nonce.WithSecret("test-secret"))

	h, err := New(cfg, labels.Generate("Book", ""), fieldtype.NewRegistry(), svc, renderer, nonces, options...)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return h, nonces
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPluralLifecycle(t *testing.T) {
	h, nonces := newBooksHandler(t)

	// empty list
	rec := get(h, "/?page=books")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No books yet.") {
		t.Fatal("empty state missing")
	}

	// create
	rec = postForm(h, "/?page=books&action=create", url.Values{
		"_nonce": {nonces.Mint("books_create")},
		"title":  {"Test Item"},
		"count":  {"5"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	created, err := url.Parse(location)
	if err != nil {
		t.Fatalf("redirect location %q: %v", location, err)
	}
	if created.Query().Get("action") != "edit" || created.Query().Get("created") != "1" {
		t.Fatalf("redirect location %q", location)
	}
	id, err := strconv.ParseInt(created.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		t.Fatalf("redirect id %q", created.Query().Get("id"))
	}

	// edit form shows the one-shot notice and the stored values
	rec = get(h, location)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Book created.") {
		t.Fatal("created notice missing")
	}
	if !strings.Contains(body, `value="Test Item"`) {
		t.Fatal("stored title missing from form")
	}

	// update, with the unchecked box omitted from the submission
	rec = postForm(h, "/?page=books&action=edit&id="+strconv.FormatInt(id, 10), url.Values{
		"_nonce": {nonces.Mint("books_edit_" + strconv.FormatInt(id, 10))},
		"title":  {"Updated Item"},
		"count":  {"10"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Location"), "updated=1") {
		t.Fatalf("update redirect %q", rec.Header().Get("Location"))
	}

	rec = get(h, "/?page=books")
	body = rec.Body.String()
	if !strings.Contains(body, "Updated Item") {
		t.Fatal("updated title missing from list")
	}
	if !strings.Contains(body, "<td>No</td>") {
		t.Fatal("absent checkbox did not persist as false")
	}

	// delete via nonce-carrying link
	token := nonces.Mint("books_delete_" + strconv.FormatInt(id, 10))
	rec = get(h, "/?page=books&action=delete&id="+strconv.FormatInt(id, 10)+"&_nonce="+token)
	if rec.Code != http.StatusFound {
		t.Fatalf("delete status %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "deleted=1") {
		t.Fatalf("delete redirect %q", rec.Header().Get("Location"))
	}

	rec = get(h, rec.Header().Get("Location"))
	body = rec.Body.String()
	if !strings.Contains(body, "Book deleted.") {
		t.Fatal("deleted notice missing")
	}
	if !strings.Contains(body, "No books yet.") {
		t.Fatal("list not empty after delete")
	}
}

func TestNonceFailures(t *testing.T) {
	h, nonces := newBooksHandler(t)

	rec := postForm(h, "/?page=books&action=create", url.Values{"title": {"X"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing nonce: status %d", rec.Code)
	}

	// a token minted for another action scope must not pass
	rec = postForm(h, "/?page=books&action=create", url.Values{
		"_nonce": {nonces.Mint("books_edit_1")},
		"title":  {"X"},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong scope: status %d", rec.Code)
	}

	rec = get(h, "/?page=books&action=delete&id=1&_nonce=forged")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("forged delete: status %d", rec.Code)
	}
}

func TestValidationReRendersForm(t *testing.T) {
	h, nonces := newBooksHandler(t)

	rec := postForm(h, "/?page=books&action=create", url.Values{
		"_nonce": {nonces.Mint("books_create")},
		"count":  {"5"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want re-rendered form", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Title is required") {
		t.Fatal("validation message missing")
	}
	if !strings.Contains(body, `value="5"`) {
		t.Fatal("submitted count not preserved")
	}
}

func TestGuardStopsEverything(t *testing.T) {
	h, nonces := newBooksHandler(t, WithGuard(func(*http.Request) error {
		return http.ErrNoCookie
	}))

	if rec := get(h, "/?page=books"); rec.Code != http.StatusForbidden {
		t.Fatalf("list status %d", rec.Code)
	}
	rec := postForm(h, "/?page=books&action=create", url.Values{
		"_nonce": {nonces.Mint("books_create")},
		"title":  {"X"},
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("create status %d", rec.Code)
	}
}

func TestUnknownRecordIs404(t *testing.T) {
	h, nonces := newBooksHandler(t)

	if rec := get(h, "/?page=books&action=edit&id=99"); rec.Code != http.StatusNotFound {
		t.Fatalf("edit status %d", rec.Code)
	}
	if rec := get(h, "/?page=books&action=edit"); rec.Code != http.StatusNotFound {
		t.Fatalf("edit without id: status %d", rec.Code)
	}
	token := nonces.Mint("books_delete_99")
	if rec := get(h, "/?page=books&action=delete&id=99&_nonce="+token); rec.Code != http.StatusNotFound {
		t.Fatalf("delete status %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newBooksHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/?page=books", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestSingularSettings(t *testing.T) {
	cfg := &viewconfig.Config{
		Slug:  "site_settings",
		Label: viewconfig.Label{Singular: "Setting"},
		Mode:  viewconfig.ModeSingular,
		Fields: []viewconfig.FieldConfig{
			{Name: "site_name", Type: "string"},
			{Name: "max_items", Type: "integer"},
			{Name: "enabled", Type: "boolean"},
		},
	}
	cfg.ApplyDefaults()

	settings, err := memstore.NewSettings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	svc, err := crud.New(cfg, fieldtype.NewRegistry(), nil, crud.WithSettings(settings))
	if err != nil {
		t.Fatalf("crud: %v", err)
	}
	renderer, err := admin.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	nonces := nonce.New(nonce.WithSecret("test-secret"))
	h, err := New(cfg, labels.Generate("Setting", "Settings"), fieldtype.NewRegistry(), svc, renderer, nonces)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := get(h, "/?page=site_settings")
	if rec.Code != http.StatusOK {
		t.Fatalf("form status %d", rec.Code)
	}

	rec = postForm(h, "/?page=site_settings", url.Values{
		"_nonce":    {nonces.Mint("site_settings_edit")},
		"site_name": {"My Site"},
		"max_items": {"50"},
		"enabled":   {"1"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("save status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Location"), "updated=1") {
		t.Fatalf("save redirect %q", rec.Header().Get("Location"))
	}

	rec = get(h, rec.Header().Get("Location"))
	body := rec.Body.String()
	if !strings.Contains(body, "Settings saved.") {
		t.Fatal("saved notice missing")
	}
	if !strings.Contains(body, `value="My Site"`) {
		t.Fatal("saved site name missing")
	}
	if !strings.Contains(body, `value="50"`) {
		t.Fatal("saved max items missing")
	}
	if !strings.Contains(body, "checked") {
		t.Fatal("saved checkbox state missing")
	}
}
