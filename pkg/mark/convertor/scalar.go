package convertor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// integerTolerance is how far a number may sit from the nearest integer and
// still count as one.
const integerTolerance = 1e-13

// truthyWords are the strings the boolean coercer reads as true.
var truthyWords = map[string]bool{
	"true": true,
	"t":    true,
	"yes":  true,
	"y":    true,
	"on":   true,
	"ok":   true,
}

// ScalarFunc adapts a plain function to the Convertor interface.
type ScalarFunc func(v interface{}, opts Options) *Result

// Validate implements Convertor.
func (f ScalarFunc) Validate(v interface{}, opts Options) *Result {
	return f(v, opts)
}

// String accepts anything but an absent value and renders it as text.
func String(v interface{}, opts Options) *Result {
	if v == nil {
		return fail("string required", v, opts.Path)
	}
	return ok(toString(v))
}

// Undefined accepts only empty input and converts it to nil.
func Undefined(v interface{}, opts Options) *Result {
	if IsEmpty(v) {
		return ok(nil)
	}
	return fail("must be empty or undefined", v, opts.Path)
}

// Float parses numbers and numeric strings into float64.
func Float(v interface{}, opts Options) *Result {
	if IsEmpty(v) {
		return fail("number required", v, opts.Path)
	}
	f, valid := toNumber(v)
	if !valid {
		return fail("invalid number", v, opts.Path)
	}
	return ok(f)
}

// UFloat is Float restricted to values >= 0.
func UFloat(v interface{}, opts Options) *Result {
	pre := Float(v, opts)
	if !pre.OK {
		return pre
	}
	if pre.Value.(float64) < 0 {
		return fail("must be >= 0", v, opts.Path)
	}
	return pre
}

// Int parses integral numbers into int64.
func Int(v interface{}, opts Options) *Result {
	pre := Float(v, opts)
	if !pre.OK {
		return pre
	}
	f := pre.Value.(float64)
	rounded := math.Round(f)
	if math.Abs(rounded-f) >= integerTolerance {
		return fail("must be integer", v, opts.Path)
	}
	if rounded < math.MinInt64 || rounded >= math.MaxInt64 {
		return fail("integer out of range", v, opts.Path)
	}
	return ok(int64(rounded))
}

// UInt parses non-negative integral numbers into uint64.
func UInt(v interface{}, opts Options) *Result {
	pre := Int(v, opts)
	if !pre.OK {
		return pre
	}
	i := pre.Value.(int64)
	if i < 0 {
		return fail("must be unsigned integer", v, opts.Path)
	}
	return ok(uint64(i))
}

// Boolean reads booleans, numbers (true when > 0) and truthy words.
func Boolean(v interface{}, opts Options) *Result {
	switch t := v.(type) {
	case bool:
		return ok(t)
	case string:
		return ok(truthyWords[strings.ToLower(strings.TrimSpace(t))])
	}
	if f, isNum := numberOf(v); isNum {
		return ok(f > 0)
	}
	return fail("boolean required", v, opts.Path)
}

// Any passes every value through unchanged.
func Any(v interface{}, _ Options) *Result {
	return ok(v)
}

// numberOf converts Go numeric types to float64.
func numberOf(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toNumber converts a value to a finite float64. Strings are trimmed and
// lowercased; base prefixes (0x, 0o, 0b) are accepted.
func toNumber(v interface{}) (float64, bool) {
	if f, isNum := numberOf(v); isNum {
		return f, !math.IsNaN(f)
	}

	switch t := v.(type) {
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		return parseNumber(strings.ToLower(strings.TrimSpace(t)))
	}
	return 0, false
}

// decimalNumber is a plain decimal literal: optional sign, digits with an
// optional fraction, optional exponent. No underscores, no hex floats.
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)(e[+-]?\d+)?$`)

// parseNumber reads a lower-cased, trimmed cell. Besides decimals it accepts
// unsigned 0x, 0o and 0b integer literals.
func parseNumber(s string) (float64, bool) {
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xob", rune(s[1])) {
		if strings.ContainsRune(s, '_') {
			return 0, false
		}
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(u), true
	}

	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, !math.IsInf(f, 0)
}

// toString renders a value the way a spreadsheet cell would show it.
func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
