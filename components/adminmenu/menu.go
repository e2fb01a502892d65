// Package adminmenu collects the menu placements of registered data views
// and serves them as a JSON feed or as ready-made navigation markup, so a
// host shell can build its sidebar without knowing about individual views.
package adminmenu

import (
	"sort"
	"sync"

	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

// Entry is one menu item. Position orders entries; ties break on Label.
type Entry struct {
	Slug     string `json:"slug"`
	Label    string `json:"label"`
	Parent   string `json:"parent,omitempty"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
	URL      string `json:"url"`
}

// EntryFromConfig derives a menu entry from a view configuration and the URL
// its admin surface lives at.
func EntryFromConfig(cfg viewconfig.Config, url string) Entry {
	return Entry{
		Slug:     cfg.Slug,
		Label:    cfg.MenuLabel(),
		Parent:   cfg.UI.Parent,
		Icon:     cfg.UI.Icon,
		Position: cfg.UI.Position,
		URL:      url,
	}
}

// Registry accumulates menu entries. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Add records an entry, replacing any previous entry for the same slug.
func (r *Registry) Add(entry Entry) {
	if entry.Slug == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Slug] = entry
}

// Remove drops an entry by slug.
func (r *Registry) Remove(slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, slug)
}

// Entries returns the registered entries sorted by position, then label.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Label < out[j].Label
	})
	return out
}
