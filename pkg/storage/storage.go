// Package storage defines the persistence contract data views delegate to.
// Adapters own how records live; the core only maps field values in and out.
package storage

import (
	"context"
	"errors"
)

// Record is one entity's field values keyed by field name. Adapters returning
// collection records include the assigned id under "id".
type Record map[string]any

// ErrNotFound reports a lookup for an id the backend does not hold.
var ErrNotFound = errors.New("storage: record not found")

// ErrUnavailable reports a backend that is not reachable or not configured.
// A missing backend is a hard error, never silently empty results.
var ErrUnavailable = errors.New("storage: backend unavailable")

// Adapter persists a collection of records for a plural-mode view.
type Adapter interface {
	Create(ctx context.Context, record Record) (int64, error)
	Get(ctx context.Context, id int64) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, id int64, record Record) error
	Delete(ctx context.Context, id int64) error
}

// SettingsAdapter persists the one record of a singular-mode view. Read on
// an empty store returns an empty Record, not ErrNotFound.
type SettingsAdapter interface {
	Read(ctx context.Context) (Record, error)
	Write(ctx context.Context, record Record) error
}

// Clone copies a record one level deep so adapters never hand out aliased
// maps.
func Clone(record Record) Record {
	if record == nil {
		return nil
	}
	out := make(Record, len(record))
	for key, value := range record {
		out[key] = value
	}
	return out
}
