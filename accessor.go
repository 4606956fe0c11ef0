package atlas

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Kind discriminators for the built-in accessor variants.
const (
	KindIndex    = "index"
	KindAttr     = "attr"
	KindCall     = "call"
	KindFallback = "fallback"
)

// Accessor is a single addressing step against one runtime value.
// Implementations are immutable values; configuring methods such as
// WithFactory return copies.
type Accessor interface {
	// Kind identifies the variant, for equality and ordering.
	Kind() string
	// Name is the key, position, field, or method the accessor addresses.
	Name() any
	// Fetch reads the addressed value from target.
	Fetch(target any) (any, error)
	// Place writes value at the addressed location on target.
	Place(target, value any) error
	// InitFactory instantiates the accessor's factory, used to materialize
	// a missing intermediate container during a structural write. Without a
	// configured factory it returns a TypeMismatchError.
	InitFactory() (any, error)
	// String renders the accessor in path shorthand.
	String() string
}

// FactoryPlacer is implemented by accessors whose placement of a freshly
// generated container differs from an ordinary value write. Path.Place
// prefers PlaceFactory over Place when attaching factory output.
type FactoryPlacer interface {
	PlaceFactory(target, value any) error
}

// Equal reports whether two accessors address the same step: their names
// must match, and their kinds must match or either side must be a Fallback
// whose pool includes the other's kind. Two fallbacks with equal names are
// always equal.
func Equal(a, b Accessor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.DeepEqual(a.Name(), b.Name()) {
		return false
	}
	if a.Kind() == b.Kind() {
		return true
	}
	if fb, ok := a.(Fallback); ok && fb.poolHas(b.Kind()) {
		return true
	}
	if fb, ok := b.(Fallback); ok && fb.poolHas(a.Kind()) {
		return true
	}
	return false
}

// Less defines the canonical accessor order: variant rank (Index, then
// Attr, then Call, then custom variants, then Fallback), then kind name,
// then the name's type, then the name value.
func Less(a, b Accessor) bool {
	return compareAccessors(a, b) < 0
}

// SortAccessors sorts accs in place into the canonical order.
func SortAccessors(accs []Accessor) {
	slices.SortStableFunc(accs, compareAccessors)
}

func compareAccessors(a, b Accessor) int {
	if r := kindRank(a.Kind()) - kindRank(b.Kind()); r != 0 {
		return r
	}
	if r := strings.Compare(a.Kind(), b.Kind()); r != 0 {
		return r
	}
	return compareNames(a.Name(), b.Name())
}

func kindRank(kind string) int {
	switch kind {
	case KindIndex:
		return 0
	case KindAttr:
		return 1
	case KindCall:
		return 2
	case KindFallback:
		return 4
	}
	return 3
}

// compareNames orders arbitrary accessor names: by type name first, then
// numerically or lexically within a type.
func compareNames(a, b any) int {
	at, bt := fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)
	if r := strings.Compare(at, bt); r != 0 {
		return r
	}
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch {
		case av.Int() < bv.Int():
			return -1
		case av.Int() > bv.Int():
			return 1
		}
		return 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch {
		case av.Uint() < bv.Uint():
			return -1
		case av.Uint() > bv.Uint():
			return 1
		}
		return 0
	case reflect.Float32, reflect.Float64:
		switch {
		case av.Float() < bv.Float():
			return -1
		case av.Float() > bv.Float():
			return 1
		}
		return 0
	case reflect.String:
		return strings.Compare(av.String(), bv.String())
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
