package adminmenu

import "net/http"

// GuardFunc decides whether a request may read the menu.
type GuardFunc func(r *http.Request) error

// Options configure the menu handler.
type Options struct {
	RoutePath   string
	FormatParam string
	Guard       GuardFunc

	Registry *Registry
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline configuration.
func DefaultOptions() Options {
	return Options{
		RoutePath:   "/api/admin-menu",
		FormatParam: "format",
	}
}

// NewOptions applies overrides on top of the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/admin-menu"
	}
	if opts.FormatParam == "" {
		opts.FormatParam = "format"
	}
	return opts
}

// WithRoutePath overrides the mount path.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithFormatParam overrides the query parameter selecting the response
// format.
func WithFormatParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormatParam = name
	}
}

// WithGuard installs an access check.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRegistry supplies the entry source. Required for a useful handler.
func WithRegistry(registry *Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}
