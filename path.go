package atlas

import (
	"errors"
	"strings"
)

// Path is an immutable, ordered sequence of accessors describing a route
// through nested data. The zero value is the empty path; every method
// returning a Path returns a new value and leaves the receiver untouched.
type Path struct {
	steps   []Accessor
	grammar *Grammar
}

// Root is the empty path under the default grammar.
var Root Path

// New builds a path under the default grammar. Parts may be accessors,
// other paths (spliced in), shorthand strings ("/"-delimited, one accessor
// per segment), or raw values, which become Index accessors. New panics
// when a part cannot be interpreted, which under the default grammar only
// happens for an empty string segment.
func New(parts ...any) Path {
	p, err := DefaultGrammar.Path(parts...)
	if err != nil {
		panic("atlas: " + err.Error())
	}
	return p
}

// Path builds a path from parts under g. Unlike New it reports
// interpretation failures instead of panicking, which matters for grammars
// without a catch-all variant.
func (g *Grammar) Path(parts ...any) (Path, error) {
	steps, err := g.cast(parts)
	if err != nil {
		return Path{}, err
	}
	return Path{steps: steps, grammar: g}, nil
}

func (g *Grammar) cast(parts []any) ([]Accessor, error) {
	var steps []Accessor
	for _, part := range parts {
		switch v := part.(type) {
		case Path:
			steps = append(steps, v.steps...)
		case Accessor:
			steps = append(steps, v)
		case string:
			for _, segment := range strings.Split(v, "/") {
				acc, err := g.Accessor(segment)
				if err != nil {
					return nil, err
				}
				steps = append(steps, acc)
			}
		default:
			acc, err := g.Accessor(part)
			if err != nil {
				return nil, err
			}
			steps = append(steps, acc)
		}
	}
	return steps, nil
}

func (p Path) gram() *Grammar {
	if p.grammar != nil {
		return p.grammar
	}
	return DefaultGrammar
}

// Grammar returns the grammar the path's parts are interpreted under.
func (p Path) Grammar() *Grammar { return p.gram() }

// Len returns the number of accessors in the path.
func (p Path) Len() int { return len(p.steps) }

// At returns the accessor at position i. Negative positions count from the
// end.
func (p Path) At(i int) Accessor {
	if i < 0 {
		i += len(p.steps)
	}
	return p.steps[i]
}

// Accessors returns a copy of the path's accessor sequence.
func (p Path) Accessors() []Accessor {
	out := make([]Accessor, len(p.steps))
	copy(out, p.steps)
	return out
}

// Slice returns the sub-path covering [i, j). Negative bounds count from
// the end; out-of-range bounds clamp.
func (p Path) Slice(i, j int) Path {
	i = p.bound(i)
	j = p.bound(j)
	if j < i {
		j = i
	}
	return Path{steps: p.steps[i:j], grammar: p.grammar}
}

func (p Path) bound(i int) int {
	if i < 0 {
		i += len(p.steps)
	}
	if i < 0 {
		return 0
	}
	if i > len(p.steps) {
		return len(p.steps)
	}
	return i
}

// Join returns a new path with parts appended, interpreted under the
// path's grammar. It panics on parts the grammar cannot interpret, like
// New.
func (p Path) Join(parts ...any) Path {
	steps, err := p.gram().cast(parts)
	if err != nil {
		panic("atlas: " + err.Error())
	}
	joined := make([]Accessor, 0, len(p.steps)+len(steps))
	joined = append(joined, p.steps...)
	joined = append(joined, steps...)
	return Path{steps: joined, grammar: p.grammar}
}

// String renders the path in shorthand, one accessor per "/"-separated
// segment.
func (p Path) String() string {
	segments := make([]string, len(p.steps))
	for i, acc := range p.steps {
		segments[i] = acc.String()
	}
	return strings.Join(segments, "/")
}

// Equal reports pairwise accessor equality; see Equal on accessors for the
// fallback matching rule.
func (p Path) Equal(other Path) bool {
	if len(p.steps) != len(other.steps) {
		return false
	}
	for i := range p.steps {
		if !Equal(p.steps[i], other.steps[i]) {
			return false
		}
	}
	return true
}

// Parent returns the path minus its final accessor. The parent of the
// empty path is the empty path.
func (p Path) Parent() Path {
	if len(p.steps) == 0 {
		return p
	}
	return Path{steps: p.steps[:len(p.steps)-1], grammar: p.grammar}
}

// End returns the final accessor, or nil for the empty path.
func (p Path) End() Accessor {
	if len(p.steps) == 0 {
		return nil
	}
	return p.steps[len(p.steps)-1]
}

// WithEnd returns a copy with the final accessor swapped for part.
func (p Path) WithEnd(part any) Path {
	return p.Parent().Join(part)
}

// StartsWith reports whether the path begins with the given prefix, which
// is interpreted under the path's grammar like a Join part.
func (p Path) StartsWith(part any) bool {
	sub := p.sub(part)
	if sub.Len() > p.Len() {
		return false
	}
	return p.Slice(0, sub.Len()).Equal(sub)
}

// EndsWith reports whether the path ends with the given suffix.
func (p Path) EndsWith(part any) bool {
	sub := p.sub(part)
	if sub.Len() > p.Len() {
		return false
	}
	return p.Slice(p.Len()-sub.Len(), p.Len()).Equal(sub)
}

// Contains reports whether part occurs as a contiguous run of accessors
// anywhere in the path.
func (p Path) Contains(part any) bool {
	sub := p.sub(part)
	n := sub.Len()
	for i := 0; i+n <= p.Len(); i++ {
		if p.Slice(i, i+n).Equal(sub) {
			return true
		}
	}
	return false
}

func (p Path) sub(part any) Path {
	if sp, ok := part.(Path); ok {
		return sp
	}
	steps, err := p.gram().cast([]any{part})
	if err != nil {
		panic("atlas: " + err.Error())
	}
	return Path{steps: steps, grammar: p.grammar}
}

// ReplaceAt returns a copy with the accessor at position i substituted.
// Negative positions count from the end.
func (p Path) ReplaceAt(i int, part any) Path {
	if i < 0 {
		i += len(p.steps)
	}
	return p.Replace(i, i+1, part)
}

// Replace returns a copy with the [i, j) range substituted by part, which
// may itself span multiple accessors. Negative bounds count from the end;
// bounds beyond [-Len, Len] clamp rather than wrap.
func (p Path) Replace(i, j int, part any) Path {
	i = p.bound(i)
	j = p.bound(j)
	if j < i {
		j = i
	}
	steps, err := p.gram().cast([]any{part})
	if err != nil {
		panic("atlas: " + err.Error())
	}
	out := make([]Accessor, 0, len(p.steps)-(j-i)+len(steps))
	out = append(out, p.steps[:i]...)
	out = append(out, steps...)
	out = append(out, p.steps[j:]...)
	return Path{steps: out, grammar: p.grammar}
}

// Fetch applies each accessor in turn and returns the value at the end of
// the path. Fetching the empty path returns target itself.
func (p Path) Fetch(target any) (any, error) {
	for _, acc := range p.steps {
		v, err := acc.Fetch(target)
		if err != nil {
			return nil, err
		}
		target = v
	}
	return target, nil
}

// FetchOr is Fetch with a default: a NameNotFound anywhere along the path
// yields def instead of an error. Other failures still propagate.
func (p Path) FetchOr(target, def any) (any, error) {
	v, err := p.Fetch(target)
	if err != nil {
		var nf *NameNotFoundError
		if errors.As(err, &nf) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// Place walks the path's parent accessors, materializing missing or nil
// intermediates through accessor factories, then places value at the final
// accessor. Accessors implementing FactoryPlacer attach generated
// containers through PlaceFactory instead of Place.
func (p Path) Place(target, value any) error {
	if len(p.steps) == 0 {
		return mismatch("cannot place on the empty path")
	}
	for _, acc := range p.steps[:len(p.steps)-1] {
		next, ferr := acc.Fetch(target)
		if ferr != nil {
			var nf *NameNotFoundError
			if !errors.As(ferr, &nf) {
				return ferr
			}
		}
		if ferr == nil && next != nil {
			target = next
			continue
		}
		node, facErr := acc.InitFactory()
		if facErr != nil {
			if ferr != nil {
				return ferr
			}
			// fetched nil with no factory to fill it; the next
			// accessor reports the miss
			target = next
			continue
		}
		if fp, ok := acc.(FactoryPlacer); ok {
			if err := fp.PlaceFactory(target, node); err != nil {
				return err
			}
		} else if err := acc.Place(target, node); err != nil {
			return err
		}
		target = node
	}
	return p.steps[len(p.steps)-1].Place(target, value)
}
