package dataview

import (
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/tangibleinc/dataview/pkg/fieldtype"
	"github.com/tangibleinc/dataview/pkg/nonce"
	"github.com/tangibleinc/dataview/pkg/render"
	"github.com/tangibleinc/dataview/pkg/router"
	"github.com/tangibleinc/dataview/pkg/storage"
	"github.com/tangibleinc/dataview/pkg/storage/pgstore"
)

// Option configures New.
type Option func(*options)

type options struct {
	types        *fieldtype.Registry
	renderer     render.Renderer
	renderers    *render.Registry
	rendererName string
	theme        *theme.RendererConfig
	nonces       *nonce.Service
	guard        router.GuardFunc
	basePath     string
	log          *zap.SugaredLogger
	pool         pgstore.Querier
	snapshotDir  string
	store        storage.Adapter
	settings     storage.SettingsAdapter
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.types == nil {
		o.types = fieldtype.NewRegistry()
	}
	if o.nonces == nil {
		o.nonces = nonce.New()
	}
	if o.log == nil {
		o.log = zap.NewNop().Sugar()
	}
	return o
}

// WithTypes supplies a field type registry, typically one extended with
// application types beyond the built-ins.
func WithTypes(types *fieldtype.Registry) Option {
	return func(o *options) {
		if types != nil {
			o.types = types
		}
	}
}

// WithRenderer swaps the built-in admin renderer for a specific instance,
// bypassing registry lookup.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *options) { o.renderer = renderer }
}

// WithRenderers supplies the registry the view resolves its renderer from.
// The built-in admin renderer is registered on it when absent.
func WithRenderers(registry *render.Registry) Option {
	return func(o *options) {
		if registry != nil {
			o.renderers = registry
		}
	}
}

// WithRendererName selects a renderer from the registry by name. Defaults to
// the built-in admin renderer.
func WithRendererName(name string) Option {
	return func(o *options) { o.rendererName = name }
}

// WithTheme applies theme chrome to the built-in admin renderer. Ignored
// when WithRenderer is also given.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *options) { o.theme = cfg }
}

// WithNonceService shares one token service across views so tokens survive
// handler reconstruction.
func WithNonceService(nonces *nonce.Service) Option {
	return func(o *options) {
		if nonces != nil {
			o.nonces = nonces
		}
	}
}

// WithNonceSecret pins the token signing secret on a view-local service.
func WithNonceSecret(secret string) Option {
	return func(o *options) {
		if secret != "" {
			o.nonces = nonce.New(nonce.WithSecret(secret))
		}
	}
}

// WithGuard installs the capability check run before every request.
func WithGuard(guard router.GuardFunc) Option {
	return func(o *options) { o.guard = guard }
}

// WithBasePath mounts the view somewhere other than "/".
func WithBasePath(basePath string) Option {
	return func(o *options) { o.basePath = basePath }
}

// WithLogger attaches a logger shared by every collaborator.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithPool supplies the database pool views with database storage persist
// through.
func WithPool(pool pgstore.Querier) Option {
	return func(o *options) { o.pool = pool }
}

// WithSnapshotDir makes memory-backed views persist JSON snapshots under
// the given directory, one file per view slug.
func WithSnapshotDir(dir string) Option {
	return func(o *options) { o.snapshotDir = dir }
}

// WithStorage overrides adapter selection entirely.
func WithStorage(store storage.Adapter) Option {
	return func(o *options) { o.store = store }
}

// WithSettingsStorage overrides the settings adapter used in singular mode.
func WithSettingsStorage(settings storage.SettingsAdapter) Option {
	return func(o *options) { o.settings = settings }
}
