// Package atlas addresses and transforms values inside heterogeneous,
// arbitrarily nested object graphs without requiring the two sides of a
// transformation to share a type.
//
// An Accessor is a single addressing step: a struct field, a key or
// position, a method call, or a best-effort Fallback that tries each of
// those in turn. A Path composes accessors into an immutable route that can
// fetch from or place into live data, materializing missing intermediate
// containers through per-accessor factories.
//
// Discovery is layered on top. A Compass enumerates the accessors one value
// exposes, and a Surveyor applies its compasses recursively to chart every
// reachable (path, value) pair under a root. A Cartographer then moves data
// between two roots, guided by explicit Coordinate directives, a surveyor's
// chart, or both.
package atlas
