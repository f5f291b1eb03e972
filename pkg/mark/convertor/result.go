package convertor

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one element of an error path: a flat or list index, or a key.
type Step struct {
	Index int
	Key   string
	IsKey bool
}

// IndexStep returns a path step for a numeric index.
func IndexStep(i int) Step {
	return Step{Index: i}
}

// KeyStep returns a path step for a field name.
func KeyStep(key string) Step {
	return Step{Key: key, IsKey: true}
}

// String renders the step as its index or key.
func (s Step) String() string {
	if s.IsKey {
		return s.Key
	}
	return strconv.Itoa(s.Index)
}

// Path is the ordered list of steps from the row root to a value.
type Path []Step

// Append returns a new path extended by step. The receiver is not modified.
func (p Path) Append(step Step) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, step)
}

// String renders the path with steps joined by '.'.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, step := range p {
		parts[i] = step.String()
	}
	return strings.Join(parts, ".")
}

// ConvertError describes one validation failure inside a row.
type ConvertError struct {
	Message string
	Path    Path
	Raw     interface{} // Offending input value
	Cause   error       // Optional underlying error
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	var sb strings.Builder
	if len(e.Path) > 0 {
		sb.WriteString(e.Path.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Raw != nil {
		sb.WriteString(fmt.Sprintf(" (got %#v)", e.Raw))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// Result is the outcome of validating one value.
// A nil Value with OK set means the input collapsed to an absent value.
// Structure results carry their Entries as Value even when they fail.
type Result struct {
	OK     bool
	Value  interface{}
	Errors []*ConvertError
}

// Options control a single validation call.
type Options struct {
	// FailFast makes Convert return an error for a failing result.
	FailFast bool

	// Path is prepended to every error path.
	Path Path
}

// withPath returns a copy of the options with the path extended by step.
func (o Options) withPath(step Step) Options {
	o.Path = o.Path.Append(step)
	return o
}

// Convertor validates and converts raw input values.
// Validate never panics and never returns nil.
type Convertor interface {
	Validate(v interface{}, opts Options) *Result
}

// FailFastError is returned by Convert when FailFast is set and validation
// failed. It carries the complete error list.
type FailFastError struct {
	Message string
	Errors  []*ConvertError
}

// Error implements the error interface. It reports the first failure.
func (e *FailFastError) Error() string {
	if len(e.Errors) > 1 {
		return fmt.Sprintf("%s (and %d more)", e.Message, len(e.Errors)-1)
	}
	return e.Message
}

// Convert validates v with c. Without FailFast it never returns an error;
// callers inspect Result.OK instead.
func Convert(c Convertor, v interface{}, opts Options) (*Result, error) {
	result := c.Validate(v, opts)
	if result.OK || !opts.FailFast {
		return result, nil
	}

	message := "conversion failed"
	if len(result.Errors) > 0 {
		message = result.Errors[0].Error()
	}
	return result, &FailFastError{Message: message, Errors: result.Errors}
}

func ok(value interface{}) *Result {
	return &Result{OK: true, Value: value}
}

func fail(message string, raw interface{}, path Path) *Result {
	return &Result{
		Errors: []*ConvertError{{Message: message, Path: path, Raw: raw}},
	}
}

// IsEmpty reports whether a value counts as absent: nil or a blank string.
func IsEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// isFalsy reports whether a value should be treated as "nothing given"
// by the array template: nil, false, zero, or the empty string.
func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	}
	if f, ok := numberOf(v); ok {
		return f == 0
	}
	return false
}
