package atlas

import (
	"errors"
	"fmt"
	"slices"
)

// NoDefault marks an origin slot in Coordinate.Defaults as having no
// default, so a failed fetch on that origin stays an error.
var NoDefault = noDefault{}

type noDefault struct{}

// PathHook rewrites an origin or destination path before it is used. Hooks
// may consult and populate the run's cache.
type PathHook func(p Path, coord *Coordinate, run *Run) (Path, error)

// ValueHook rewrites a fetched value before it is placed.
type ValueHook func(value any, coord *Coordinate, run *Run) (any, error)

// Coordinate is one mapping directive: where to fetch, how to transform,
// where to place. Coordinates are read-only during a run, so the same
// directive list can drive any number of Map calls, concurrently included.
type Coordinate struct {
	// Origins are fetched from the origin root. A single origin yields its
	// value as-is; several yield a []any aligned with this list.
	Origins []Path
	// Dests receive the value. When nil, each origin is mirrored onto the
	// destination with its accessors cast to fallbacks. A zero Path entry
	// is a no-op slot, discarding its share of the value.
	Dests []Path
	// CleanOrigin, CleanDest, and CleanValue override the engine's hooks
	// for this coordinate only.
	CleanOrigin PathHook
	CleanDest   PathHook
	CleanValue  ValueHook
	// Defaults, when non-nil, must align with Origins; entries other than
	// NoDefault replace a failed fetch on their origin.
	Defaults []any
}

// NewCoordinate is shorthand for the common single-origin directive. A
// zero dest means "mirror the origin".
func NewCoordinate(origin, dest Path) *Coordinate {
	c := &Coordinate{Origins: []Path{origin}}
	if dest.Len() > 0 {
		c.Dests = []Path{dest}
	}
	return c
}

// Run is the scratch state of one Map call. Cache is shared by every hook
// in the run, letting coordinates pass intermediate values to each other;
// it never outlives the run.
type Run struct {
	Cache  map[string]any
	states map[*Coordinate]*coordState
}

type coordState struct {
	origins  []Path
	dests    []Path
	defaults []any
	value    any
	resolved bool
}

// Cartographer maps data between two object graphs. The zero value maps
// with identity hooks; the hook fields act as run-wide defaults that
// per-coordinate hooks override.
type Cartographer struct {
	CleanOrigin PathHook
	CleanDest   PathHook
	CleanValue  ValueHook
}

// Map fetches values along each coordinate's origins from origin, cleans
// them, and places them along the destinations onto dest, which is mutated
// in place. When surveyor is non-nil, origin paths not covered by an
// explicit coordinate are discovered and mirrored best effort, deepest
// paths first, so a mapped leaf suppresses its ancestors. With suppress
// true, missing names and unnavigable values are collected and returned
// together as one AggregateError after every directive has been attempted;
// other failures abort immediately in either mode.
func (c *Cartographer) Map(origin, dest any, coords []*Coordinate, surveyor *Surveyor, suppress bool) error {
	run := &Run{Cache: map[string]any{}, states: map[*Coordinate]*coordState{}}
	for _, coord := range coords {
		st, err := newCoordState(coord)
		if err != nil {
			return err
		}
		run.states[coord] = st
	}

	var failures []error
	var mapped []Path

	for _, coord := range coords {
		if err := c.mapCoordinate(run, coord, origin, dest); err != nil {
			if !suppress || !suppressible(err) {
				return err
			}
			failures = append(failures, err)
			continue
		}
		mapped = append(mapped, run.states[coord].origins[0])
	}

	if surveyor != nil {
		surveyFailures, err := c.mapSurvey(run, origin, dest, surveyor, suppress, mapped)
		if err != nil {
			return err
		}
		failures = append(failures, surveyFailures...)
	}

	if len(failures) > 0 {
		return &AggregateError{Errors: failures}
	}
	return nil
}

func newCoordState(coord *Coordinate) (*coordState, error) {
	if len(coord.Origins) == 0 {
		return nil, fmt.Errorf("coordinate has no origin paths")
	}
	if coord.Defaults != nil && len(coord.Defaults) != len(coord.Origins) {
		return nil, fmt.Errorf("coordinate defaults (%d) do not align with origins (%d)",
			len(coord.Defaults), len(coord.Origins))
	}
	st := &coordState{
		origins:  slices.Clone(coord.Origins),
		dests:    slices.Clone(coord.Dests),
		defaults: slices.Clone(coord.Defaults),
	}
	if st.defaults == nil {
		st.defaults = make([]any, len(st.origins))
		for i := range st.defaults {
			st.defaults[i] = NoDefault
		}
	}
	return st, nil
}

func (c *Cartographer) mapCoordinate(run *Run, coord *Coordinate, origin, dest any) error {
	st := run.states[coord]

	if !st.resolved {
		if err := c.fetchOrigin(run, coord, st, origin); err != nil {
			return err
		}
	}

	cleanValue := coord.CleanValue
	if cleanValue == nil {
		cleanValue = c.CleanValue
	}
	if cleanValue != nil {
		v, err := cleanValue(st.value, coord, run)
		if err != nil {
			return err
		}
		st.value = v
	}

	return c.placeDest(run, coord, st, dest)
}

func (c *Cartographer) fetchOrigin(run *Run, coord *Coordinate, st *coordState, origin any) error {
	hook := coord.CleanOrigin
	if hook == nil {
		hook = c.CleanOrigin
	}
	if hook != nil {
		for i, p := range st.origins {
			cleaned, err := hook(p, coord, run)
			if err != nil {
				return err
			}
			st.origins[i] = cleaned
		}
	}

	values := make([]any, len(st.origins))
	for i, p := range st.origins {
		var v any
		var err error
		if _, none := st.defaults[i].(noDefault); none {
			v, err = p.Fetch(origin)
		} else {
			v, err = p.FetchOr(origin, st.defaults[i])
		}
		if err != nil {
			return err
		}
		values[i] = v
	}
	if len(values) == 1 {
		st.value = values[0]
	} else {
		st.value = values
	}
	st.resolved = true
	return nil
}

func (c *Cartographer) placeDest(run *Run, coord *Coordinate, st *coordState, dest any) error {
	dests := st.dests
	if dests == nil {
		dests = make([]Path, len(st.origins))
		for i, org := range st.origins {
			dests[i] = mirror(org)
		}
	}
	hook := coord.CleanDest
	if hook == nil {
		hook = c.CleanDest
	}
	if hook != nil {
		for i, p := range dests {
			cleaned, err := hook(p, coord, run)
			if err != nil {
				return err
			}
			dests[i] = cleaned
		}
	}

	values := []any{st.value}
	if len(dests) > 1 {
		vs, ok := st.value.([]any)
		if !ok {
			return mismatch("%d destinations need a []any value, got %T", len(dests), st.value)
		}
		values = vs
	}

	for i, dst := range dests {
		if i >= len(values) {
			break
		}
		if dst.Len() == 0 {
			continue
		}
		if err := dst.Place(dest, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cartographer) mapSurvey(run *Run, origin, dest any, surveyor *Surveyor, suppress bool, mapped []Path) ([]error, error) {
	chart, err := surveyor.Chart(origin, suppress)
	var failures []error
	if err != nil {
		var agg *AggregateError
		if !errors.As(err, &agg) {
			return nil, err
		}
		failures = append(failures, agg.Errors...)
		chart = agg.Chart
	}

	// deepest first, so a leaf mapping claims its ancestors too
	slices.SortStableFunc(chart, func(a, b Entry) int {
		return b.Path.Len() - a.Path.Len()
	})

	for _, entry := range chart {
		if covered(entry.Path, mapped) {
			continue
		}
		coord := &Coordinate{Origins: []Path{entry.Path}}
		st, err := newCoordState(coord)
		if err != nil {
			return nil, err
		}
		st.value = entry.Value
		st.resolved = true
		run.states[coord] = st

		if err := c.mapCoordinate(run, coord, origin, dest); err != nil {
			if !suppress || !suppressible(err) {
				return nil, err
			}
			failures = append(failures, err)
		}
		mapped = append(mapped, entry.Path)
	}
	return failures, nil
}

// covered reports whether p overlaps any already-mapped path, in either
// containment direction.
func covered(p Path, mapped []Path) bool {
	for _, m := range mapped {
		if m.Contains(p) || p.Contains(m) {
			return true
		}
	}
	return false
}

// mirror casts every accessor of p to a fallback: the engine's default
// destination for an unmapped origin.
func mirror(p Path) Path {
	parts := make([]any, p.Len())
	for i, acc := range p.Accessors() {
		parts[i] = NewFallback(acc.Name())
	}
	return New(parts...)
}

func suppressible(err error) bool {
	var nf *NameNotFoundError
	return errors.As(err, &nf)
}
