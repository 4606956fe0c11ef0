// Package jsonpath bridges JSONPath expressions and atlas paths, so routes
// through JSON-shaped data (map[string]any, []any) can be exchanged with
// tooling that speaks JSONPath notation.
//
// Only singular expressions translate: wildcards, descents, filters,
// slices, and unions address many locations and have no path form.
package jsonpath

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/agentic-research/atlas"
)

// ToPath converts a JSONPath expression into a path of Index accessors.
func ToPath(expr string) (atlas.Path, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return atlas.Path{}, fmt.Errorf("invalid jsonpath %q: %w", expr, err)
	}
	parts := make([]any, 0, len(x))
	for _, frag := range x {
		switch f := frag.(type) {
		case jp.Root, jp.At, jp.Bracket:
			// anchors and notation markers carry no step
		case jp.Child:
			parts = append(parts, atlas.NewIndex(string(f)))
		case jp.Nth:
			parts = append(parts, atlas.NewIndex(int(f)))
		default:
			return atlas.Path{}, fmt.Errorf("jsonpath fragment %T in %q does not address a single location", frag, expr)
		}
	}
	return atlas.New(parts...), nil
}

// FromPath renders a path as a JSONPath expression. Every accessor must be
// an Index or a Fallback with a string or integer name; attribute and call
// accessors have no JSONPath form.
func FromPath(p atlas.Path) (string, error) {
	x := jp.R()
	for _, acc := range p.Accessors() {
		switch acc.Kind() {
		case atlas.KindIndex, atlas.KindFallback:
		default:
			return "", fmt.Errorf("%s accessor %s has no jsonpath form", acc.Kind(), acc)
		}
		switch name := acc.Name().(type) {
		case string:
			x = x.C(name)
		case int:
			x = x.N(name)
		default:
			return "", fmt.Errorf("accessor name %v (%T) has no jsonpath form", name, name)
		}
	}
	return x.String(), nil
}
