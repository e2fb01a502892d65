package fieldtype

import (
	"fmt"
	"sync"

	"github.com/tangibleinc/dataview/pkg/schema"
)

// Dataset kinds describe how a field's sanitized value is stored.
const (
	DatasetString  = "string"
	DatasetInteger = "integer"
	DatasetBoolean = "boolean"
)

// ErrUnknownType is wrapped by every lookup against an unregistered name.
var ErrUnknownType = fmt.Errorf("fieldtype: unknown type")

// ErrInvalidType is wrapped when a registration misses one of its parts.
var ErrInvalidType = fmt.Errorf("fieldtype: invalid type definition")

// Sanitizer normalises one raw submitted value into its storable form.
type Sanitizer func(value any) any

// Type bundles the behaviours resolved for one field type name.
type Type struct {
	Dataset   string
	Sanitizer Sanitizer
	Column    schema.ColumnSpec
	Input     string
}

// Registry maps field type names to their behaviour bundles. Construct one
// per process with NewRegistry and pass it explicitly to every component
// that resolves types; there is no ambient default.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry constructs a registry seeded with the built-in types.
func NewRegistry() *Registry {
	reg := &Registry{types: make(map[string]Type)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a type. Later registrations for the same name
// overwrite earlier ones without comment, which is how applications extend
// or retune the built-ins.
func (r *Registry) Register(name string, t Type) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidType)
	}
	if t.Dataset == "" {
		return fmt.Errorf("%w: type %q has no dataset kind", ErrInvalidType, name)
	}
	if t.Sanitizer == nil {
		return fmt.Errorf("%w: type %q has no sanitizer", ErrInvalidType, name)
	}
	if t.Column.Type == "" {
		return fmt.Errorf("%w: type %q has no column spec", ErrInvalidType, name)
	}
	if t.Input == "" {
		return fmt.Errorf("%w: type %q has no input hint", ErrInvalidType, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
	return nil
}

// Has reports whether a type name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

func (r *Registry) lookup(name string) (Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Dataset returns the storage value kind for a type name.
func (r *Registry) Dataset(name string) (string, error) {
	t, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return t.Dataset, nil
}

// Sanitizer returns the sanitizer for a type name.
func (r *Registry) Sanitizer(name string) (Sanitizer, error) {
	t, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return t.Sanitizer, nil
}

// Column returns the persistence column spec for a type name. It satisfies
// schema.ColumnSource.
func (r *Registry) Column(name string) (schema.ColumnSpec, error) {
	t, err := r.lookup(name)
	if err != nil {
		return schema.ColumnSpec{}, err
	}
	return t.Column, nil
}

// Input returns the form input hint for a type name.
func (r *Registry) Input(name string) (string, error) {
	t, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return t.Input, nil
}

// Names returns the registered type names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}
