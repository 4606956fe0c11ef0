// Package xmlnav extends atlas over XML documents: an accessor that
// addresses child elements by tag and occurrence, plus a matching grammar,
// compass, and surveyor for etree element trees.
package xmlnav

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/agentic-research/atlas"
)

// KindElem discriminates element accessors.
const KindElem = "elem"

// ElemName names a child element: a tag plus the occurrence index among
// same-tag siblings.
type ElemName struct {
	Tag   string
	Index int
}

// Elem addresses the Index-th child element carrying the given tag on an
// *etree.Element. Shorthand: "<tag>" or "<tag, 2>".
type Elem struct {
	name    ElemName
	factory func() any
}

// NewElem returns an element accessor for the index-th child tagged tag.
func NewElem(tag string, index int) Elem {
	return Elem{name: ElemName{Tag: tag, Index: index}}
}

// WithFactory returns a copy carrying a factory for materializing missing
// intermediate elements during structural writes.
func (e Elem) WithFactory(f func() any) Elem {
	e.factory = f
	return e
}

func (e Elem) Kind() string { return KindElem }

func (e Elem) Name() any { return e.name }

func (e Elem) String() string {
	if e.name.Index == 0 {
		return "<" + e.name.Tag + ">"
	}
	return fmt.Sprintf("<%s, %d>", e.name.Tag, e.name.Index)
}

// InitFactory returns a fresh element carrying the accessor's tag when no
// explicit factory is configured, so structural writes can grow a document
// without per-step setup.
func (e Elem) InitFactory() (any, error) {
	if e.factory != nil {
		return e.factory(), nil
	}
	return etree.NewElement(e.name.Tag), nil
}

func (e Elem) Fetch(target any) (any, error) {
	el, err := element(target)
	if err != nil {
		return nil, err
	}
	children := el.SelectElements(e.name.Tag)
	if e.name.Index < 0 || e.name.Index >= len(children) {
		return nil, &atlas.NameNotFoundError{Accessor: e.String()}
	}
	return children[e.name.Index], nil
}

// Place appends value as a child of the element this accessor addresses on
// target.
func (e Elem) Place(target, value any) error {
	child, err := element(value)
	if err != nil {
		return err
	}
	fetched, ferr := e.Fetch(target)
	if ferr != nil {
		return ferr
	}
	fetched.(*etree.Element).AddChild(child)
	return nil
}

// PlaceFactory attaches a generated element directly under target, so a
// structural write builds one missing document level per step instead of
// nesting it a level too deep.
func (e Elem) PlaceFactory(target, value any) error {
	el, err := element(target)
	if err != nil {
		return err
	}
	child, cerr := element(value)
	if cerr != nil {
		return cerr
	}
	el.AddChild(child)
	return nil
}

func element(v any) (*etree.Element, error) {
	el, ok := v.(*etree.Element)
	if !ok {
		return nil, &atlas.TypeMismatchError{Reason: fmt.Sprintf("%T is not an xml element", v)}
	}
	return el, nil
}

var elemShorthand = regexp.MustCompile(`^<(.+)>$`)

// Variant lets Elem participate in grammars and fallback pools.
var Variant = atlas.Variant{
	Kind: KindElem,
	Parse: func(text string) (any, error) {
		m := elemShorthand.FindStringSubmatch(text)
		if m == nil {
			return nil, &atlas.ParseError{Kind: KindElem, Text: text}
		}
		return parseName(m[1], text)
	},
	Cast: func(name any) (atlas.Accessor, error) {
		switch n := name.(type) {
		case ElemName:
			return Elem{name: n}, nil
		case string:
			return NewElem(n, 0), nil
		}
		return nil, &atlas.TypeMismatchError{
			Reason: fmt.Sprintf("element name must be a tag or ElemName, got %T", name),
		}
	},
}

func parseName(body, text string) (any, error) {
	tag, idx, found := strings.Cut(body, ",")
	if !found {
		return ElemName{Tag: strings.TrimSpace(body)}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return nil, &atlas.ParseError{Kind: KindElem, Text: text}
	}
	return ElemName{Tag: strings.TrimSpace(tag), Index: n}, nil
}

// Grammar parses path parts with element shorthand dispatched ahead of the
// built-ins, so bare text still becomes a fallback whose pool includes
// elements.
var Grammar = atlas.NewGrammar(Variant)

// New builds a path under Grammar. It panics on parts the grammar cannot
// interpret, like atlas.New.
func New(parts ...any) atlas.Path {
	p, err := Grammar.Path(parts...)
	if err != nil {
		panic("xmlnav: " + err.Error())
	}
	return p
}
