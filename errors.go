package atlas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// NameNotFoundError reports that an accessor's name did not resolve on the
// target it was applied to. Container-native miss conditions (absent map
// key, out of range position, unknown field or method) are all normalized
// to this type.
type NameNotFoundError struct {
	// Accessor is the shorthand form of the accessor that missed.
	Accessor string
}

func (e *NameNotFoundError) Error() string {
	return "name not found: " + e.Accessor
}

// TypeMismatchError reports that a target's shape is structurally
// incompatible with an accessor, or that a write would violate a variant
// rule such as overwriting a callable member.
type TypeMismatchError struct {
	Reason string
}

func (e *TypeMismatchError) Error() string {
	return "type mismatch: " + e.Reason
}

// ParseError reports shorthand text that does not match a variant's
// convention.
type ParseError struct {
	Kind string
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s accessor", e.Text, e.Kind)
}

// UnnavigableError reports a value no compass accepted during discovery.
type UnnavigableError struct {
	Target any
}

func (e *UnnavigableError) Error() string {
	return "no compass can navigate " + spew.Sprintf("%#v", e.Target)
}

// AggregateError collects the failures of a suppressed discovery or mapping
// run, raised once after every step has been attempted. Errors holds the
// individual failures in occurrence order. For discovery, Chart holds the
// partial chart accumulated alongside the failures.
type AggregateError struct {
	Errors []error
	Chart  []Entry
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return "1 error suppressed: " + e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors suppressed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

func notFound(a Accessor) error {
	return &NameNotFoundError{Accessor: a.String()}
}

func mismatch(format string, args ...any) error {
	return &TypeMismatchError{Reason: fmt.Sprintf(format, args...)}
}

// dispatchable reports whether err is a condition a Fallback may swallow
// while trying the next variant in its pool.
func dispatchable(err error) bool {
	var nf *NameNotFoundError
	var tm *TypeMismatchError
	var pe *ParseError
	return errors.As(err, &nf) || errors.As(err, &tm) || errors.As(err, &pe)
}
