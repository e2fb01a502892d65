// Package dataview assembles declarative admin CRUD surfaces. A single
// configuration names a record type and its fields; from it the package
// derives UI labels, a persistence schema, sanitization and validation
// rules, and an HTTP handler serving the list and form pages.
//
// The root package is a facade over the pkg/ tree: viewconfig for
// configuration, fieldtype for the type registry, labels and schema for
// derivation, storage for persistence adapters, crud for the write path,
// and router plus renderers/admin for the HTTP surface. Each layer can be
// used on its own; New wires them together with sane defaults.
package dataview
