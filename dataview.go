package dataview

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/tangibleinc/dataview/pkg/crud"
	"github.com/tangibleinc/dataview/pkg/labels"
	"github.com/tangibleinc/dataview/pkg/render"
	"github.com/tangibleinc/dataview/pkg/renderers/admin"
	"github.com/tangibleinc/dataview/pkg/router"
	"github.com/tangibleinc/dataview/pkg/schema"
	"github.com/tangibleinc/dataview/pkg/storage"
	"github.com/tangibleinc/dataview/pkg/storage/memstore"
	"github.com/tangibleinc/dataview/pkg/storage/pgstore"
	"github.com/tangibleinc/dataview/pkg/viewconfig"
)

// View is a fully wired data view: configuration, labels, schema, storage,
// validation and the HTTP handler that serves its admin surface.
type View struct {
	cfg     viewconfig.Config
	labels  labels.Set
	columns []schema.Column
	store   storage.Adapter
	handler *router.Handler
}

// New validates a configuration and assembles every collaborator around it.
// The zero-option call gives a memory-backed view rendered by the built-in
// admin surface.
func New(cfg viewconfig.Config, opts ...Option) (*View, error) {
	o := newOptions(opts...)

	cfg.ApplyDefaults()
	if err := cfg.Validate(o.types); err != nil {
		return nil, fmt.Errorf("dataview: %w", err)
	}

	set := labels.Generate(cfg.Label.Singular, cfg.Label.Plural)
	columns, err := schema.Columns(cfg.SchemaFields(), o.types)
	if err != nil {
		return nil, fmt.Errorf("dataview: %w", err)
	}

	view := &View{cfg: cfg, labels: set, columns: columns}

	crudOpts := []crud.Option{crud.WithLogger(o.log)}
	if cfg.Singular() {
		settings, err := o.settingsAdapter(cfg)
		if err != nil {
			return nil, err
		}
		crudOpts = append(crudOpts, crud.WithSettings(settings))
	} else {
		view.store, err = o.recordAdapter(cfg, columns)
		if err != nil {
			return nil, err
		}
	}

	svc, err := crud.New(&view.cfg, o.types, view.store, crudOpts...)
	if err != nil {
		return nil, fmt.Errorf("dataview: %w", err)
	}

	renderer := o.renderer
	if renderer == nil {
		renderer, err = o.resolveRenderer()
		if err != nil {
			return nil, fmt.Errorf("dataview: %w", err)
		}
	}

	routerOpts := []router.Option{
		router.WithBasePath(o.basePath),
		router.WithLogger(o.log),
	}
	if o.guard != nil {
		routerOpts = append(routerOpts, router.WithGuard(o.guard))
	}
	view.handler, err = router.New(&view.cfg, set, o.types, svc, renderer, o.nonces, routerOpts...)
	if err != nil {
		return nil, fmt.Errorf("dataview: %w", err)
	}
	return view, nil
}

// resolveRenderer looks the renderer up by name in the configured registry,
// seeding the registry with the built-in admin renderer when absent.
func (o *options) resolveRenderer() (render.Renderer, error) {
	registry := o.renderers
	if registry == nil {
		registry = render.NewRegistry()
	}
	if !registry.Has(admin.Name) {
		fallback, err := admin.New(admin.WithTheme(o.theme))
		if err != nil {
			return nil, err
		}
		if err := registry.Register(fallback); err != nil {
			return nil, err
		}
	}
	name := o.rendererName
	if name == "" {
		name = admin.Name
	}
	return registry.Get(name)
}

func (o *options) recordAdapter(cfg viewconfig.Config, columns []schema.Column) (storage.Adapter, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch cfg.Storage {
	case viewconfig.StorageDatabase:
		if o.pool == nil {
			return nil, fmt.Errorf("dataview: storage %q needs a database pool: %w", cfg.Storage, storage.ErrUnavailable)
		}
		return pgstore.New(o.pool, cfg.Slug, columns, pgstore.WithLogger(o.log))
	default:
		var memOpts []memstore.Option
		if o.snapshotDir != "" {
			memOpts = append(memOpts, memstore.WithSnapshotFile(filepath.Join(o.snapshotDir, cfg.Slug+".json")))
		}
		store, err := memstore.New(memOpts...)
		if err != nil {
			return nil, fmt.Errorf("dataview: %w", err)
		}
		return store, nil
	}
}

func (o *options) settingsAdapter(cfg viewconfig.Config) (storage.SettingsAdapter, error) {
	if o.settings != nil {
		return o.settings, nil
	}
	var memOpts []memstore.Option
	if o.snapshotDir != "" {
		memOpts = append(memOpts, memstore.WithSnapshotFile(filepath.Join(o.snapshotDir, cfg.Slug+".json")))
	}
	settings, err := memstore.NewSettings(memOpts...)
	if err != nil {
		return nil, fmt.Errorf("dataview: %w", err)
	}
	return settings, nil
}

// Config returns the validated configuration, defaults applied.
func (v *View) Config() viewconfig.Config { return v.cfg }

// Labels returns the derived UI strings.
func (v *View) Labels() labels.Set { return v.labels }

// Columns returns the generated persistence schema, id column included.
func (v *View) Columns() []schema.Column { return v.columns }

// Handler returns the HTTP handler serving this view's admin surface.
func (v *View) Handler() *router.Handler { return v.handler }

// tableCreator is satisfied by adapters that can set up their own backing
// store, pgstore among them.
type tableCreator interface {
	EnsureTable(ctx context.Context) error
}

// EnsureStorage prepares the backing store when the adapter supports it.
// Memory-backed views need no preparation and return nil.
func (v *View) EnsureStorage(ctx context.Context) error {
	if creator, ok := v.store.(tableCreator); ok {
		return creator.EnsureTable(ctx)
	}
	return nil
}

// Mux is the minimal interface needed to mount a view. *http.ServeMux
// satisfies it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// RegisterRoutes mounts the view's handler at its configured base path and
// returns the pattern used.
func (v *View) RegisterRoutes(mux Mux) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("dataview: missing mux")
	}
	pattern := v.handler.BasePath()
	mux.Handle(pattern, v.handler)
	return pattern, nil
}
