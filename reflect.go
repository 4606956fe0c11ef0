package atlas

import "reflect"

// indirect unwraps pointers and interfaces down to the concrete value,
// stopping at nils.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

// setValue assigns value into dst without implicit conversions, so a
// mistyped write surfaces as a TypeMismatchError instead of silent
// coercion.
func setValue(dst reflect.Value, value any) error {
	if value == nil {
		switch dst.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			dst.SetZero()
			return nil
		}
		return mismatch("cannot store nil in %s", dst.Type())
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(dst.Type()) {
		return mismatch("cannot store %T in %s", value, dst.Type())
	}
	dst.Set(v)
	return nil
}

// intName extracts an integer position from an accessor name.
func intName(name any) (int, bool) {
	switch v := reflect.ValueOf(name); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), true
	}
	return 0, false
}

func initFactory(f func() any) (any, error) {
	if f == nil {
		return nil, mismatch("no factory configured")
	}
	return f(), nil
}
