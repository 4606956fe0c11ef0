package atlas

import "reflect"

// Attr addresses a named member of a value: an exported struct field, or a
// bound method value when no field matches. Shorthand: "@name".
type Attr struct {
	name    string
	factory func() any
}

// NewAttr returns an attribute accessor for the given member name.
func NewAttr(name string) Attr {
	return Attr{name: name}
}

// WithFactory returns a copy carrying a factory for materializing missing
// intermediate containers during structural writes.
func (a Attr) WithFactory(f func() any) Attr {
	a.factory = f
	return a
}

func (a Attr) Kind() string { return KindAttr }

func (a Attr) Name() any { return a.name }

func (a Attr) String() string { return "@" + a.name }

func (a Attr) InitFactory() (any, error) { return initFactory(a.factory) }

// Fetch returns the member's current value. Pointers are followed. A name
// matching no field falls back to the target's method set, so a fetched
// method value can travel a path like any other value.
func (a Attr) Fetch(target any) (any, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() {
		return nil, notFound(a)
	}
	elem := indirect(rv)
	if elem.Kind() == reflect.Struct {
		if sf, ok := elem.Type().FieldByName(a.name); ok && sf.IsExported() {
			return elem.FieldByName(a.name).Interface(), nil
		}
	}
	if m := rv.MethodByName(a.name); m.IsValid() {
		return m.Interface(), nil
	}
	return nil, notFound(a)
}

// Place sets the member. The target must be a pointer to a struct so the
// write is visible to the caller, and a member holding a callable is never
// overwritten.
func (a Attr) Place(target, value any) error {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() {
		return notFound(a)
	}
	elem := indirect(rv)
	if elem.Kind() != reflect.Struct {
		return mismatch("attr accessor needs a struct target, got %T", target)
	}
	sf, ok := elem.Type().FieldByName(a.name)
	if !ok || !sf.IsExported() {
		return notFound(a)
	}
	field := elem.FieldByName(a.name)
	cur := field
	if cur.Kind() == reflect.Interface && !cur.IsNil() {
		cur = cur.Elem()
	}
	if cur.Kind() == reflect.Func && !cur.IsNil() {
		return mismatch("member %s of %T is callable and cannot be overwritten", a.name, target)
	}
	if !field.CanSet() {
		return mismatch("cannot set %s on %T: pass a pointer", a.name, target)
	}
	return setValue(field, value)
}
