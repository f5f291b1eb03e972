package errors

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// ErrorType categorizes the type of error encountered while building a schema.
type ErrorType string

const (
	ErrorTypeSyntax       ErrorType = "syntax"       // Malformed mark or token stream
	ErrorTypeConstruction ErrorType = "construction" // Schema references an unsupported type
	ErrorTypeDefinition   ErrorType = "definition"   // Invalid sheet definition document
	ErrorTypeIO           ErrorType = "io"           // File I/O error
)

// Error represents a rich error with location, context, and suggestions.
// Row validation failures are not Errors; they are reported as data by the
// convertor package.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Token position of the offending mark
	Context    string       // Surrounding tokens
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// NewSyntaxError creates a parse error for a malformed mark.
func NewSyntaxError(message string, location ast.Location) *Error {
	return &Error{Type: ErrorTypeSyntax, Message: message, Location: location}
}

// Syntaxf creates a parse error with a formatted message.
func Syntaxf(location ast.Location, format string, args ...interface{}) *Error {
	return NewSyntaxError(fmt.Sprintf(format, args...), location)
}

// NewConstructionError creates an error for a schema the engine cannot build.
func NewConstructionError(message string) *Error {
	return &Error{Type: ErrorTypeConstruction, Message: message, Location: ast.NoLocation}
}

// IsParseError reports whether err is, or wraps, a syntax error.
func IsParseError(err error) bool {
	return hasType(err, ErrorTypeSyntax)
}

// IsConstructionError reports whether err is, or wraps, a construction error.
func IsConstructionError(err error) bool {
	return hasType(err, ErrorTypeConstruction)
}

func hasType(err error, errType ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == errType
	}
	var el *ErrorList
	if errors.As(err, &el) {
		return el.HasErrorType(errType)
	}
	return false
}

// ErrorList represents a collection of errors encountered during parsing.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}
	if el.Count() == 1 {
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
