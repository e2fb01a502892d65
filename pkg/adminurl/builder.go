// Package adminurl builds and parses the query-string navigation scheme of
// the admin surface: every request names a page, an action, and optionally a
// record id plus a nonce token.
package adminurl

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Admin actions. List is the default when a request carries no action.
const (
	ActionList   = "list"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Query parameter names shared by URL building and request parsing.
const (
	ParamPage   = "page"
	ParamAction = "action"
	ParamID     = "id"
	ParamNonce  = "_nonce"
)

// One-shot notice flags appended after successful writes.
const (
	FlagCreated = "created"
	FlagUpdated = "updated"
	FlagDeleted = "deleted"
)

// Builder derives admin URLs for one page identifier mounted at BasePath.
type Builder struct {
	BasePath string
	Page     string
}

// New constructs a Builder. An empty basePath mounts at "/".
func New(basePath, page string) Builder {
	if basePath == "" {
		basePath = "/"
	}
	return Builder{BasePath: basePath, Page: page}
}

// URL builds an admin URL. The page parameter is always present; the action
// parameter is omitted for list; id is included only when positive. Extra
// query parameters merge last, so callers can override anything.
func (b Builder) URL(action string, id int64, extra url.Values) string {
	query := url.Values{}
	query.Set(ParamPage, b.Page)
	if action != "" && action != ActionList {
		query.Set(ParamAction, action)
	}
	if id > 0 {
		query.Set(ParamID, strconv.FormatInt(id, 10))
	}
	for key, values := range extra {
		query.Del(key)
		for _, value := range values {
			query.Add(key, value)
		}
	}
	return b.BasePath + "?" + query.Encode()
}

// URLWithNonce builds an admin URL carrying a pre-minted nonce token.
func (b Builder) URLWithNonce(action string, id int64, token string) string {
	extra := url.Values{}
	extra.Set(ParamNonce, token)
	return b.URL(action, id, extra)
}

// NoticeURL builds the post-write redirect target: the given action URL plus
// a one-shot notice flag.
func (b Builder) NoticeURL(action string, id int64, flag string) string {
	extra := url.Values{}
	extra.Set(flag, "1")
	return b.URL(action, id, extra)
}

// NonceAction derives the token scope for an action, optionally bound to a
// record id. Minting and verification must both use this derivation.
func (b Builder) NonceAction(action string, id int64) string {
	if id > 0 {
		return fmt.Sprintf("%s_%s_%d", b.Page, action, id)
	}
	return fmt.Sprintf("%s_%s", b.Page, action)
}

// CurrentAction parses the request's action, defaulting to list.
func (b Builder) CurrentAction(r *http.Request) string {
	switch action := r.URL.Query().Get(ParamAction); action {
	case ActionCreate, ActionEdit, ActionDelete:
		return action
	default:
		return ActionList
	}
}

// CurrentID parses the request's record id; zero means absent.
func (b Builder) CurrentID(r *http.Request) int64 {
	raw := r.URL.Query().Get(ParamID)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// Notice returns the active one-shot flag on a request, if any.
func Notice(r *http.Request) string {
	for _, flag := range []string{FlagCreated, FlagUpdated, FlagDeleted} {
		if r.URL.Query().Get(flag) == "1" {
			return flag
		}
	}
	return ""
}
