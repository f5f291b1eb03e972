package ast

import "fmt"

// Location identifies a mark inside a schema definition for error reporting.
type Location struct {
	Source string // Path or name of the schema definition
	Token  int    // Index of the mark in the token list (0-based, -1 if unknown)
	Column int    // Character offset inside the mark text (1-based, 0 if unknown)
}

// NoLocation is used for marks parsed outside of a token list.
var NoLocation = Location{Token: -1}

// String returns a human-readable representation of the location.
// Format: "source:token:column"
func (l Location) String() string {
	source := l.Source
	if source == "" {
		source = "<marks>"
	}
	if l.Token < 0 {
		return source
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", source, l.Token, l.Column)
	}
	return fmt.Sprintf("%s:%d", source, l.Token)
}

// IsValid returns true if the location points at a token.
func (l Location) IsValid() bool {
	return l.Token >= 0
}
