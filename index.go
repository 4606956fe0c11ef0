package atlas

import (
	"fmt"
	"reflect"
)

// Index addresses a key of a mapping or a position of a sequence. Negative
// positions count from the end. Shorthand: "[name]".
type Index struct {
	name    any
	factory func() any
}

// NewIndex returns an index accessor for the given key or position.
func NewIndex(name any) Index {
	return Index{name: name}
}

// WithFactory returns a copy carrying a factory for materializing missing
// intermediate containers during structural writes.
func (x Index) WithFactory(f func() any) Index {
	x.factory = f
	return x
}

func (x Index) Kind() string { return KindIndex }

func (x Index) Name() any { return x.name }

func (x Index) String() string { return fmt.Sprintf("[%v]", x.name) }

func (x Index) InitFactory() (any, error) { return initFactory(x.factory) }

// Fetch reads the key or position from a map, slice, or array target.
func (x Index) Fetch(target any) (any, error) {
	rv := indirect(reflect.ValueOf(target))
	switch rv.Kind() {
	case reflect.Map:
		key, ok := x.mapKey(rv.Type())
		if !ok {
			return nil, notFound(x)
		}
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, notFound(x)
		}
		return v.Interface(), nil
	case reflect.Slice, reflect.Array:
		i, err := x.position(rv.Len())
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= rv.Len() {
			return nil, notFound(x)
		}
		return rv.Index(i).Interface(), nil
	}
	return nil, mismatch("%T is not indexable", target)
}

// Place writes value at the key or position. Writing past the end of a
// sequence requires a pointer to the slice, so the extension (nil padding
// up to the position, then append) stays visible to the caller.
func (x Index) Place(target, value any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Slice {
		return x.placeSlice(rv.Elem(), value, true)
	}
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return mismatch("cannot place into a nil map")
		}
		key, ok := x.mapKey(rv.Type())
		if !ok {
			return mismatch("cannot use %v (%T) as %s key", x.name, x.name, rv.Type())
		}
		elem := reflect.New(rv.Type().Elem()).Elem()
		if err := setValue(elem, value); err != nil {
			return err
		}
		rv.SetMapIndex(key, elem)
		return nil
	case reflect.Slice:
		return x.placeSlice(rv, value, false)
	}
	return mismatch("%T does not support indexed assignment", target)
}

func (x Index) placeSlice(sl reflect.Value, value any, growable bool) error {
	i, err := x.position(sl.Len())
	if err != nil {
		return err
	}
	if i < 0 {
		return notFound(x)
	}
	if i < sl.Len() {
		return setValue(sl.Index(i), value)
	}
	if !growable {
		return notFound(x)
	}
	for sl.Len() < i {
		sl.Set(reflect.Append(sl, reflect.Zero(sl.Type().Elem())))
	}
	elem := reflect.New(sl.Type().Elem()).Elem()
	if err := setValue(elem, value); err != nil {
		return err
	}
	sl.Set(reflect.Append(sl, elem))
	return nil
}

// position resolves the accessor name to a sequence index, counting
// negative names back from length.
func (x Index) position(length int) (int, error) {
	i, ok := intName(x.name)
	if !ok {
		return 0, mismatch("sequence index must be an integer, got %T", x.name)
	}
	if i < 0 {
		i += length
	}
	return i, nil
}

// mapKey adapts the accessor name to the map's key type. Conversions stay
// within a kind class so an integer name never becomes a rune string.
func (x Index) mapKey(t reflect.Type) (reflect.Value, bool) {
	kv := reflect.ValueOf(x.name)
	if !kv.IsValid() {
		return reflect.Value{}, false
	}
	kt := t.Key()
	if kv.Type().AssignableTo(kt) {
		return kv, true
	}
	if kv.Type().ConvertibleTo(kt) && sameKindClass(kv.Kind(), kt.Kind()) {
		return kv.Convert(kt), true
	}
	return reflect.Value{}, false
}

func sameKindClass(a, b reflect.Kind) bool {
	return kindClass(a) != 0 && kindClass(a) == kindClass(b)
}

func kindClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	case reflect.String:
		return 3
	}
	return 0
}
