package atlas

import "reflect"

// ValueArg marks the argument slot where Place substitutes the placed
// value. Without it, Place prepends the value to the configured arguments.
var ValueArg = valueArg{}

type valueArg struct{}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Call addresses a named method or func-typed field. Fetch invokes it with
// the configured arguments and returns the first result; Place invokes it
// with the placed value substituted in. A trailing error result aborts the
// operation when non-nil. Shorthand: "name()".
type Call struct {
	name    string
	args    []any
	factory func() any
}

// NewCall returns a call accessor for the named method, invoked with the
// given arguments.
func NewCall(name string, args ...any) Call {
	return Call{name: name, args: args}
}

// WithFactory returns a copy carrying a factory for materializing missing
// intermediate containers during structural writes.
func (c Call) WithFactory(f func() any) Call {
	c.factory = f
	return c
}

func (c Call) Kind() string { return KindCall }

func (c Call) Name() any { return c.name }

func (c Call) String() string { return c.name + "()" }

func (c Call) InitFactory() (any, error) { return initFactory(c.factory) }

func (c Call) Fetch(target any) (any, error) {
	m, err := c.method(target)
	if err != nil {
		return nil, err
	}
	return c.invoke(m, c.args)
}

func (c Call) Place(target, value any) error {
	m, err := c.method(target)
	if err != nil {
		return err
	}
	_, err = c.invoke(m, c.withValue(value))
	return err
}

func (c Call) method(target any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() {
		return reflect.Value{}, notFound(c)
	}
	if m := rv.MethodByName(c.name); m.IsValid() {
		return m, nil
	}
	elem := indirect(rv)
	if elem.Kind() == reflect.Struct {
		if sf, ok := elem.Type().FieldByName(c.name); ok && sf.IsExported() {
			f := elem.FieldByName(c.name)
			if f.Kind() == reflect.Interface && !f.IsNil() {
				f = f.Elem()
			}
			if f.Kind() == reflect.Func && !f.IsNil() {
				return f, nil
			}
		}
	}
	return reflect.Value{}, notFound(c)
}

func (c Call) invoke(m reflect.Value, args []any) (any, error) {
	in, err := c.buildArgs(m.Type(), args)
	if err != nil {
		return nil, err
	}
	out := m.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func (c Call) buildArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, mismatch("%s takes at least %d arguments, got %d", c.name, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, mismatch("%s takes %d arguments, got %d", c.name, fixed, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if i < fixed {
			pt = t.In(i)
		} else {
			pt = t.In(fixed).Elem()
		}
		pv := reflect.New(pt).Elem()
		if err := setValue(pv, arg); err != nil {
			return nil, err
		}
		in[i] = pv
	}
	return in, nil
}

// withValue substitutes the placed value into each ValueArg slot, or
// prepends it when no slot is marked.
func (c Call) withValue(value any) []any {
	args := make([]any, 0, len(c.args)+1)
	substituted := false
	for _, a := range c.args {
		if _, ok := a.(valueArg); ok {
			args = append(args, value)
			substituted = true
			continue
		}
		args = append(args, a)
	}
	if !substituted {
		args = append([]any{value}, args...)
	}
	return args
}
