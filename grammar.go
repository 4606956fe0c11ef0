package atlas

import (
	"regexp"
)

// Variant describes one accessor variant to a Grammar: how to recognize its
// shorthand and how to build an accessor from a raw name. Custom variants
// implement these two functions and join a grammar, which also seeds the
// pools of the fallbacks that grammar builds.
type Variant struct {
	// Kind discriminates accessors built by this variant.
	Kind string
	// Parse extracts a name from shorthand text. It returns a ParseError
	// when the text does not match the variant's convention.
	Parse func(text string) (any, error)
	// Cast builds an accessor from a raw name. It returns a
	// TypeMismatchError when the name's type is unsupported.
	Cast func(name any) (Accessor, error)
}

var (
	indexShorthand = regexp.MustCompile(`^\[(.+)\]$`)
	callShorthand  = regexp.MustCompile(`^(.+?)\(\)$`)
	attrShorthand  = regexp.MustCompile(`^@(.+)$`)
)

// IndexVariant, CallVariant, AttrVariant, and FallbackVariant describe the
// built-in accessors. Their order in DefaultVariants is the dispatch order
// used both for interpreting raw parts and inside default fallback pools.
var (
	IndexVariant = Variant{
		Kind:  KindIndex,
		Parse: regexpName(KindIndex, indexShorthand),
		Cast: func(name any) (Accessor, error) {
			return NewIndex(name), nil
		},
	}

	CallVariant = Variant{
		Kind:  KindCall,
		Parse: regexpName(KindCall, callShorthand),
		Cast: func(name any) (Accessor, error) {
			s, ok := name.(string)
			if !ok {
				return nil, mismatch("call accessor name must be a string, got %T", name)
			}
			return NewCall(s), nil
		},
	}

	AttrVariant = Variant{
		Kind:  KindAttr,
		Parse: regexpName(KindAttr, attrShorthand),
		Cast: func(name any) (Accessor, error) {
			s, ok := name.(string)
			if !ok {
				return nil, mismatch("attr accessor name must be a string, got %T", name)
			}
			return NewAttr(s), nil
		},
	}

	FallbackVariant = Variant{
		Kind: KindFallback,
		Parse: func(text string) (any, error) {
			if text == "" {
				return nil, &ParseError{Kind: KindFallback, Text: text}
			}
			return text, nil
		},
		Cast: func(name any) (Accessor, error) {
			return NewFallback(name), nil
		},
	}
)

// DefaultVariants lists the built-in variants in dispatch order.
var DefaultVariants = []Variant{IndexVariant, CallVariant, AttrVariant, FallbackVariant}

func regexpName(kind string, re *regexp.Regexp) func(string) (any, error) {
	return func(text string) (any, error) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil, &ParseError{Kind: kind, Text: text}
		}
		return m[1], nil
	}
}

// Grammar is an ordered variant list used to interpret raw path parts. The
// default grammar understands the four built-in variants; extension
// packages prepend their own.
type Grammar struct {
	variants []Variant
}

// DefaultGrammar interprets parts using only the built-in variants.
var DefaultGrammar = &Grammar{variants: DefaultVariants}

// NewGrammar returns a grammar with extra variants dispatched ahead of the
// built-ins.
func NewGrammar(extra ...Variant) *Grammar {
	variants := make([]Variant, 0, len(extra)+len(DefaultVariants))
	variants = append(variants, extra...)
	variants = append(variants, DefaultVariants...)
	return &Grammar{variants: variants}
}

// Variants returns a copy of the grammar's variant list.
func (g *Grammar) Variants() []Variant {
	out := make([]Variant, len(g.variants))
	copy(out, g.variants)
	return out
}

// Root returns the empty path bound to this grammar.
func (g *Grammar) Root() Path {
	return Path{grammar: g}
}

// Accessor interprets name as a single accessor. Existing accessors pass
// through unchanged. Strings are matched against each variant's shorthand
// in dispatch order. Other values are cast directly by the first variant
// that accepts them. A fallback built here carries the grammar's concrete
// variants as its pool.
func (g *Grammar) Accessor(name any) (Accessor, error) {
	if acc, ok := name.(Accessor); ok {
		return acc, nil
	}
	text, isText := name.(string)
	var lastErr error
	for _, v := range g.variants {
		var raw any = name
		if isText && v.Parse != nil {
			parsed, err := v.Parse(text)
			if err != nil {
				lastErr = err
				continue
			}
			raw = parsed
		}
		acc, err := v.Cast(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if fb, ok := acc.(Fallback); ok {
			acc = fb.WithPool(g.concrete())
		}
		return acc, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, mismatch("no variant accepts %v (%T)", name, name)
}

// concrete returns the grammar's variants minus fallback kinds: the pool a
// grammar-built fallback dispatches over.
func (g *Grammar) concrete() []Variant {
	out := make([]Variant, 0, len(g.variants))
	for _, v := range g.variants {
		if v.Kind == KindFallback {
			continue
		}
		out = append(out, v)
	}
	return out
}

// NewAccessor interprets name under the default grammar.
func NewAccessor(name any) (Accessor, error) {
	return DefaultGrammar.Accessor(name)
}
