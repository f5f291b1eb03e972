package logging

import (
	"fmt"
	"regexp"
	"sort"

	"mercator-hq/rowmark/pkg/config"
)

// Redactor masks personal data in logged values. Cell values of failing
// rows are logged verbatim otherwise.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternEmail      = "email"
	PatternCreditCard = "credit_card"
	PatternPhone      = "phone"
	PatternSSN        = "ssn"
)

var defaultPatterns = map[string]struct {
	regex       string
	replacement string
}{
	PatternEmail: {
		regex:       `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		replacement: "***@***",
	},
	PatternCreditCard: {
		regex:       `\b(?:\d[ -]?){12,15}\d\b`,
		replacement: "****-****-****-****",
	},
	PatternSSN: {
		regex:       `\b\d{3}-\d{2}-\d{4}\b`,
		replacement: "***-**-****",
	},
	PatternPhone: {
		regex:       `\+?\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`,
		replacement: "***-***-****",
	},
}

// NewRedactor creates a Redactor with the built-in patterns followed by the
// custom ones. Built-ins run in name order so output is deterministic.
func NewRedactor(custom []config.RedactPattern) (*Redactor, error) {
	r := &Redactor{}

	names := make([]string, 0, len(defaultPatterns))
	for name := range defaultPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := defaultPatterns[name]
		r.patterns = append(r.patterns, &redactPattern{
			name:        name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}

	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("redact pattern %q: %w", p.Name, err)
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r, nil
}

// RedactString masks every pattern match in value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactValue masks strings, and strings nested in slices, leaving other
// values as they are.
func (r *Redactor) RedactValue(value any) any {
	switch v := value.(type) {
	case string:
		return r.RedactString(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = r.RedactValue(item)
		}
		return out
	case fmt.Stringer:
		return r.RedactString(v.String())
	}
	return value
}

// RedactArgs redacts the values of key/value log arguments.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}
	redacted := make([]any, len(args))
	copy(redacted, args)
	for i := 1; i < len(redacted); i += 2 {
		redacted[i] = r.RedactValue(redacted[i])
	}
	return redacted
}
