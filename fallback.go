package atlas

import "fmt"

// Fallback tries each concrete variant in its pool until one resolves, for
// callers that know a name but not the shape it will meet at runtime.
// Shorthand: any bare text.
type Fallback struct {
	name    any
	pool    []Variant
	factory func() any
}

// NewFallback returns a best-effort accessor dispatching over the default
// pool: Index, then Call, then Attr. The pool is resolved lazily so this
// constructor can appear inside variant definitions.
func NewFallback(name any) Fallback {
	return Fallback{name: name}
}

// WithPool returns a copy dispatching over the given variants. Fallback
// variants in the list are discarded.
func (f Fallback) WithPool(pool []Variant) Fallback {
	f.pool = concreteVariants(pool)
	return f
}

// WithFactory returns a copy carrying a factory for materializing missing
// intermediate containers during structural writes.
func (f Fallback) WithFactory(fac func() any) Fallback {
	f.factory = fac
	return f
}

func (f Fallback) Kind() string { return KindFallback }

func (f Fallback) Name() any { return f.name }

func (f Fallback) String() string { return fmt.Sprint(f.name) }

func (f Fallback) InitFactory() (any, error) { return initFactory(f.factory) }

// dispatchPool returns the explicit pool when one was set, else the concrete
// default variants.
func (f Fallback) dispatchPool() []Variant {
	if f.pool != nil {
		return f.pool
	}
	return concreteVariants(DefaultVariants)
}

// Fetch tries each pool variant in order, swallowing misses and shape
// mismatches. Any other failure aborts the dispatch immediately.
func (f Fallback) Fetch(target any) (any, error) {
	for _, v := range f.dispatchPool() {
		acc, err := v.Cast(f.name)
		if err != nil {
			continue
		}
		value, err := acc.Fetch(target)
		if err == nil {
			return value, nil
		}
		if !dispatchable(err) {
			return nil, err
		}
	}
	return nil, notFound(f)
}

// Place tries each pool variant in order, like Fetch.
func (f Fallback) Place(target, value any) error {
	for _, v := range f.dispatchPool() {
		acc, err := v.Cast(f.name)
		if err != nil {
			continue
		}
		err = acc.Place(target, value)
		if err == nil {
			return nil
		}
		if !dispatchable(err) {
			return err
		}
	}
	return notFound(f)
}

func (f Fallback) poolHas(kind string) bool {
	for _, v := range f.dispatchPool() {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func concreteVariants(pool []Variant) []Variant {
	out := make([]Variant, 0, len(pool))
	for _, v := range pool {
		if v.Kind == KindFallback {
			continue
		}
		out = append(out, v)
	}
	return out
}
