package errors

import (
	"fmt"
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// ExtractContext renders the tokens surrounding the given location for
// error display. The offending token is marked with "->".
func ExtractContext(tokens []string, location ast.Location, contextTokens int) string {
	if !location.IsValid() || location.Token >= len(tokens) {
		return ""
	}

	start := location.Token - contextTokens
	end := location.Token + contextTokens
	if start < 0 {
		start = 0
	}
	if end >= len(tokens) {
		end = len(tokens) - 1
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", end))

	for i := start; i <= end; i++ {
		prefix := "  "
		if i == location.Token {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i, tokens[i]))

		if i == location.Token && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), padding))
		}
	}

	return sb.String()
}

// AddContextToError fills in the token context of err if it is empty.
func AddContextToError(err *Error, tokens []string) *Error {
	if err.Context == "" {
		err.Context = ExtractContext(tokens, err.Location, 2)
	}
	return err
}
