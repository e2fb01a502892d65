package adminurl

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestURL(t *testing.T) {
	b := New("/admin", "books")

	list := b.URL(ActionList, 0, nil)
	if !strings.Contains(list, "page=books") {
		t.Fatalf("list url missing page: %q", list)
	}
	if strings.Contains(list, "action=") {
		t.Fatalf("list url should omit action: %q", list)
	}

	create := b.URL(ActionCreate, 0, nil)
	if !strings.Contains(create, "action=create") {
		t.Fatalf("create url: %q", create)
	}

	edit := b.URL(ActionEdit, 42, nil)
	if !strings.Contains(edit, "action=edit") || !strings.Contains(edit, "id=42") {
		t.Fatalf("edit url: %q", edit)
	}
}

func TestURL_ExtraParamsOverride(t *testing.T) {
	b := New("/admin", "books")

	extra := url.Values{}
	extra.Set("page", "other")
	extra.Set("highlight", "3")
	got := b.URL(ActionList, 0, extra)

	if !strings.Contains(got, "page=other") {
		t.Fatalf("extras should override: %q", got)
	}
	if !strings.Contains(got, "highlight=3") {
		t.Fatalf("extras should merge: %q", got)
	}
}

func TestNonceAction(t *testing.T) {
	b := New("/admin", "books")

	if got := b.NonceAction(ActionEdit, 42); got != "books_edit_42" {
		t.Fatalf("nonce action with id: %q", got)
	}
	if got := b.NonceAction(ActionCreate, 0); got != "books_create" {
		t.Fatalf("nonce action without id: %q", got)
	}
}

func TestCurrentActionAndID(t *testing.T) {
	b := New("/admin", "books")

	r := httptest.NewRequest("GET", "/admin?page=books", nil)
	if got := b.CurrentAction(r); got != ActionList {
		t.Fatalf("default action: %q", got)
	}
	if got := b.CurrentID(r); got != 0 {
		t.Fatalf("absent id: %d", got)
	}

	r = httptest.NewRequest("GET", "/admin?page=books&action=edit&id=42", nil)
	if got := b.CurrentAction(r); got != ActionEdit {
		t.Fatalf("edit action: %q", got)
	}
	if got := b.CurrentID(r); got != 42 {
		t.Fatalf("id: %d", got)
	}

	r = httptest.NewRequest("GET", "/admin?page=books&action=bogus&id=junk", nil)
	if got := b.CurrentAction(r); got != ActionList {
		t.Fatalf("bogus action should fall back to list: %q", got)
	}
	if got := b.CurrentID(r); got != 0 {
		t.Fatalf("junk id: %d", got)
	}
}

func TestNotice(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin?page=books&updated=1", nil)
	if got := Notice(r); got != FlagUpdated {
		t.Fatalf("notice: %q", got)
	}
	r = httptest.NewRequest("GET", "/admin?page=books", nil)
	if got := Notice(r); got != "" {
		t.Fatalf("unexpected notice: %q", got)
	}
}
