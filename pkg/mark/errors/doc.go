// Package errors provides rich error types for schema parsing and construction.
//
// The error types include token location, context, and suggestions to help
// users quickly identify and fix malformed marks.
//
// # Error Types
//
// ErrorTypeSyntax: Malformed marks (unbalanced brackets, bad begin tokens)
//
// ErrorTypeConstruction: Schemas referencing a type the engine cannot coerce
//
// ErrorTypeDefinition: Invalid sheet definition documents
//
// ErrorTypeIO: File I/O errors
//
// # Basic Usage
//
// Create an error with location:
//
//	err := errors.Syntaxf(ast.Location{Token: 4}, "unexpected begin token %q", token)
//
// Add context from the token list:
//
//	err = errors.AddContextToError(err, tokens)
//	fmt.Println(err.Error())
//
// Test error categories, including wrapped errors:
//
//	if errors.IsParseError(err) {
//	    // fix the marks
//	}
//
// Suggest a known type for a typo:
//
//	errors.SuggestTypeName("unt") // "Did you mean 'uint'?"
package errors
