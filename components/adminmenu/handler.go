package adminmenu

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
)

type feedResponse struct {
	Data []Entry `json:"data"`
}

// HTTPError lets guards carry their own status code.
type HTTPError interface {
	error
	StatusCode() int
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		var entries []Entry
		if opts.Registry != nil {
			entries = opts.Registry.Entries()
		}
		if entries == nil {
			entries = []Entry{}
		}

		if r.URL.Query().Get(opts.FormatParam) == "html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			if r.Method == http.MethodHead {
				return
			}
			_, _ = w.Write([]byte(navMarkup(entries)))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(feedResponse{Data: entries})
	})
}

// navMarkup renders the entries as a nested nav list. Children attach under
// the entry whose slug matches their Parent; orphans render at the top
// level.
func navMarkup(entries []Entry) string {
	children := make(map[string][]Entry)
	var top []Entry
	slugs := make(map[string]bool, len(entries))
	for _, entry := range entries {
		slugs[entry.Slug] = true
	}
	for _, entry := range entries {
		if entry.Parent != "" && slugs[entry.Parent] {
			children[entry.Parent] = append(children[entry.Parent], entry)
			continue
		}
		top = append(top, entry)
	}

	var b strings.Builder
	b.WriteString("<nav class=\"dataview-menu\">\n<ul>\n")
	for _, entry := range top {
		writeItem(&b, entry, children[entry.Slug])
	}
	b.WriteString("</ul>\n</nav>\n")
	return b.String()
}

func writeItem(b *strings.Builder, entry Entry, children []Entry) {
	fmt.Fprintf(b, "<li class=\"dataview-menu-item dataview-menu-%s\" data-icon=%q>",
		html.EscapeString(entry.Slug), html.EscapeString(entry.Icon))
	fmt.Fprintf(b, "<a href=%q>%s</a>", entry.URL, html.EscapeString(entry.Label))
	if len(children) > 0 {
		b.WriteString("\n<ul>\n")
		for _, child := range children {
			writeItem(b, child, nil)
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</li>\n")
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	http.Error(w, http.StatusText(code), code)
}
