package atlas

import (
	"errors"
	"reflect"
	"slices"
)

// A Reading pairs an accessor with the value it currently resolves to on
// some target.
type Reading struct {
	Accessor Accessor
	Value    any
}

// Compass enumerates the accessors a value exposes, guiding discovery.
type Compass interface {
	// Navigable reports whether the compass can read this target.
	Navigable(target any) bool
	// Readings returns every (accessor, value) pair valid on target. It
	// fails with an UnnavigableError when Navigable is false.
	Readings(target any) ([]Reading, error)
}

// Enumerator yields the readings of one capability category. Enumerators
// that do not apply to a target return ErrNotSupported, which Readings
// skips silently.
type Enumerator func(target any) ([]Reading, error)

// ErrNotSupported marks an enumerator as not applicable to a target.
var ErrNotSupported = errors.New("enumerator does not support target")

// ObjectCompass is the default compass over plain Go values. It reads
// exported struct fields, map keys, and sequence positions; reading
// zero-argument methods is off unless enabled, since calls may have side
// effects.
type ObjectCompass struct {
	types     []reflect.Type
	navigable func(any) bool
	attrs     allowList
	items     allowList
	calls     allowList
	enums     []Enumerator
}

type allowList struct {
	enabled bool
	names   []any
}

func (l allowList) allows(name any) bool {
	if !l.enabled {
		return false
	}
	if l.names == nil {
		return true
	}
	for _, n := range l.names {
		if reflect.DeepEqual(n, name) {
			return true
		}
	}
	return false
}

// CompassOption configures an ObjectCompass.
type CompassOption func(*ObjectCompass, *[]Enumerator)

// WithTargetTypes restricts Navigable to values of the given types.
// Interface types match by implementation.
func WithTargetTypes(types ...reflect.Type) CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) { c.types = types }
}

// WithNavigableFunc replaces the navigability policy entirely.
func WithNavigableFunc(f func(any) bool) CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) { c.navigable = f }
}

// WithAttrs restricts attribute readings to the named fields.
func WithAttrs(names ...string) CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) {
		c.attrs.names = make([]any, len(names))
		for i, n := range names {
			c.attrs.names[i] = n
		}
	}
}

// WithoutAttrs disables attribute readings.
func WithoutAttrs() CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) { c.attrs.enabled = false }
}

// WithItems restricts item readings to the given keys or positions.
func WithItems(keys ...any) CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) { c.items.names = slices.Clone(keys) }
}

// WithoutItems disables item readings.
func WithoutItems() CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) { c.items.enabled = false }
}

// WithCalls enables call readings for the named zero-argument methods.
func WithCalls(names ...string) CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) {
		c.calls.enabled = true
		c.calls.names = make([]any, len(names))
		for i, n := range names {
			c.calls.names[i] = n
		}
	}
}

// WithAllCalls enables call readings for every exported zero-argument
// method.
func WithAllCalls() CompassOption {
	return func(c *ObjectCompass, _ *[]Enumerator) {
		c.calls.enabled = true
		c.calls.names = nil
	}
}

// WithEnumerator registers an additional capability enumerator, consulted
// after the built-in three.
func WithEnumerator(e Enumerator) CompassOption {
	return func(_ *ObjectCompass, extra *[]Enumerator) { *extra = append(*extra, e) }
}

// NewObjectCompass builds a compass over plain values. With no options it
// navigates anything, reading all fields and items and no calls.
func NewObjectCompass(opts ...CompassOption) *ObjectCompass {
	c := &ObjectCompass{
		attrs: allowList{enabled: true},
		items: allowList{enabled: true},
	}
	var extra []Enumerator
	for _, opt := range opts {
		opt(c, &extra)
	}
	// the enumerator set is fixed once, at construction
	c.enums = append([]Enumerator{c.attrReadings, c.itemReadings, c.callReadings}, extra...)
	return c
}

func (c *ObjectCompass) Navigable(target any) bool {
	if c.navigable != nil {
		return c.navigable(target)
	}
	if len(c.types) == 0 {
		return true
	}
	tt := reflect.TypeOf(target)
	if tt == nil {
		return false
	}
	for _, t := range c.types {
		if t.Kind() == reflect.Interface {
			if tt.Implements(t) {
				return true
			}
			continue
		}
		if tt == t {
			return true
		}
	}
	return false
}

func (c *ObjectCompass) Readings(target any) ([]Reading, error) {
	if !c.Navigable(target) {
		return nil, &UnnavigableError{Target: target}
	}
	var out []Reading
	for _, enum := range c.enums {
		rs, err := enum(target)
		if errors.Is(err, ErrNotSupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

func (c *ObjectCompass) attrReadings(target any) ([]Reading, error) {
	if !c.attrs.enabled {
		return nil, ErrNotSupported
	}
	rv := indirect(reflect.ValueOf(target))
	if rv.Kind() != reflect.Struct {
		return nil, ErrNotSupported
	}
	t := rv.Type()
	var out []Reading
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || !c.attrs.allows(sf.Name) {
			continue
		}
		out = append(out, Reading{Accessor: NewAttr(sf.Name), Value: rv.Field(i).Interface()})
	}
	return out, nil
}

// itemReadings enumerates map entries in sorted key order, so charts stay
// deterministic across runs.
func (c *ObjectCompass) itemReadings(target any) ([]Reading, error) {
	if !c.items.enabled {
		return nil, ErrNotSupported
	}
	rv := indirect(reflect.ValueOf(target))
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortStableFunc(keys, func(a, b reflect.Value) int {
			return compareNames(a.Interface(), b.Interface())
		})
		var out []Reading
		for _, k := range keys {
			name := k.Interface()
			if !c.items.allows(name) {
				continue
			}
			out = append(out, Reading{Accessor: NewIndex(name), Value: rv.MapIndex(k).Interface()})
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		var out []Reading
		for i := 0; i < rv.Len(); i++ {
			if !c.items.allows(i) {
				continue
			}
			out = append(out, Reading{Accessor: NewIndex(i), Value: rv.Index(i).Interface()})
		}
		return out, nil
	}
	return nil, ErrNotSupported
}

func (c *ObjectCompass) callReadings(target any) ([]Reading, error) {
	if !c.calls.enabled {
		return nil, ErrNotSupported
	}
	rv := reflect.ValueOf(target)
	if !rv.IsValid() {
		return nil, ErrNotSupported
	}
	t := rv.Type()
	var out []Reading
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() || !c.calls.allows(m.Name) {
			continue
		}
		if rv.Method(i).Type().NumIn() != 0 {
			continue
		}
		value, err := NewCall(m.Name).Fetch(target)
		if err != nil {
			return nil, err
		}
		out = append(out, Reading{Accessor: NewCall(m.Name), Value: value})
	}
	return out, nil
}
