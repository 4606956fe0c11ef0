package atlas

import "reflect"

// Entry is one discovered (path, value) pair of a chart.
type Entry struct {
	Path  Path
	Value any
}

// Surveyor charts data structures: it applies its compasses recursively to
// a root value and yields every reachable (path, value) pair. Surveyors
// hold no per-chart state and are safe to reuse.
type Surveyor struct {
	compasses []Compass
	endPoint  func(any) bool
	grammar   *Grammar
}

// SurveyorOption configures a Surveyor.
type SurveyorOption func(*surveyorConfig)

type surveyorConfig struct {
	replace  []Compass
	extra    []Compass
	endTypes []reflect.Type
	endFunc  func(any) bool
	grammar  *Grammar
}

// WithCompasses replaces the default compass list.
func WithCompasses(compasses ...Compass) SurveyorOption {
	return func(c *surveyorConfig) { c.replace = compasses }
}

// WithExtraCompasses consults the given compasses ahead of the defaults.
func WithExtraCompasses(compasses ...Compass) SurveyorOption {
	return func(c *surveyorConfig) { c.extra = append(c.extra, compasses...) }
}

// WithEndPoints adds terminal types on top of the defaults: values of
// these types are charted but never descended into.
func WithEndPoints(types ...reflect.Type) SurveyorOption {
	return func(c *surveyorConfig) { c.endTypes = append(c.endTypes, types...) }
}

// WithEndPointFunc replaces the terminal-value policy entirely.
func WithEndPointFunc(f func(any) bool) SurveyorOption {
	return func(c *surveyorConfig) { c.endFunc = f }
}

// WithGrammar binds charted paths to g, so joining onto them keeps an
// extension's dialect.
func WithGrammar(g *Grammar) SurveyorOption {
	return func(c *surveyorConfig) { c.grammar = g }
}

// NewSurveyor builds a surveyor. Without options it uses a single
// unrestricted ObjectCompass and treats strings, booleans, numbers, and
// reflect.Type values as terminal.
func NewSurveyor(opts ...SurveyorOption) *Surveyor {
	var cfg surveyorConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	base := cfg.replace
	if base == nil {
		base = []Compass{NewObjectCompass()}
	}
	s := &Surveyor{
		compasses: append(cfg.extra, base...),
		grammar:   cfg.grammar,
	}
	switch {
	case cfg.endFunc != nil:
		s.endPoint = cfg.endFunc
	case len(cfg.endTypes) > 0:
		s.endPoint = func(v any) bool {
			if defaultEndPoint(v) {
				return true
			}
			t := reflect.TypeOf(v)
			for _, et := range cfg.endTypes {
				if t == et {
					return true
				}
			}
			return false
		}
	default:
		s.endPoint = defaultEndPoint
	}
	return s
}

// defaultEndPoint reports the default terminal values: strings, booleans,
// numbers, and reflect.Type values have no structure worth descending
// into.
func defaultEndPoint(v any) bool {
	if _, ok := v.(reflect.Type); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// Chart enumerates every (path, value) pair reachable from root, depth
// first in reading order. With suppress false, the first value no compass
// accepts aborts the chart. With suppress true, such values are recorded
// and skipped; the partial chart is returned along with an AggregateError
// carrying the failures (and the same partial chart).
func (s *Surveyor) Chart(root any, suppress bool) ([]Entry, error) {
	w := &survey{surveyor: s, visited: map[visitKey]bool{}}
	w.mark(root)
	if err := w.walk(root, s.rootPath(), suppress); err != nil {
		return nil, err
	}
	if len(w.errs) > 0 {
		return w.chart, &AggregateError{Errors: w.errs, Chart: w.chart}
	}
	return w.chart, nil
}

func (s *Surveyor) rootPath() Path {
	if s.grammar != nil {
		return s.grammar.Root()
	}
	return Root
}

// compass returns the first compass that accepts target.
func (s *Surveyor) compass(target any) (Compass, bool) {
	for _, c := range s.compasses {
		if c.Navigable(target) {
			return c, true
		}
	}
	return nil, false
}

type visitKey struct {
	kind reflect.Kind
	ptr  uintptr
}

type survey struct {
	surveyor *Surveyor
	chart    []Entry
	errs     []error
	visited  map[visitKey]bool
}

func (w *survey) walk(target any, at Path, suppress bool) error {
	compass, ok := w.surveyor.compass(target)
	if !ok {
		err := &UnnavigableError{Target: target}
		if !suppress {
			return err
		}
		w.errs = append(w.errs, err)
		return nil
	}
	readings, err := compass.Readings(target)
	if err != nil {
		return err
	}
	for _, r := range readings {
		entry := Entry{Path: at.Join(r.Accessor), Value: r.Value}
		w.chart = append(w.chart, entry)
		if r.Value == nil || w.surveyor.endPoint(r.Value) {
			continue
		}
		if !w.mark(r.Value) {
			continue
		}
		if err := w.walk(r.Value, entry.Path, suppress); err != nil {
			return err
		}
	}
	return nil
}

// mark records reference-typed values by identity and reports whether the
// walk should descend. Revisiting a marked container would recurse
// forever on cyclic data.
func (w *survey) mark(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return false
		}
		k := visitKey{kind: rv.Kind(), ptr: rv.Pointer()}
		if w.visited[k] {
			return false
		}
		w.visited[k] = true
	}
	return true
}
