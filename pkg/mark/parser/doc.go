// Package parser turns schema marks into type and structure trees.
//
// A mark is one token of a schema. Leaf marks describe a type:
//
//	Mark        := Decorators? TypeSegment
//	Decorators  := ('$' Identity)+
//	TypeSegment := TypeGroup? '?'?
//	TypeGroup   := Type ('|' Type)*
//	Type        := TypeName ('<' TypeGroup '>')?
//
// Structure is driven by the token stream: a token ending in '{' or '['
// opens an object or array scope (decorators may prefix the bracket in the
// same token), a token ending in '}' or ']' closes the innermost scope, and
// any other token is a leaf mark. The outermost scope is implicit, and a
// scope left open when the tokens run out is closed implicitly.
//
// # Basic Usage
//
// Parse a single mark:
//
//	tdm, err := parser.ParseMark("$oneof array<pair<uint|str?>>", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tdm.SchemaString())
//
// Parse a whole schema:
//
//	tokens := []string{"uint", "$ghost {", "str", "enum<Element>", "}"}
//	root, err := parser.ParseStructure(tokens, ctx)
//	if err != nil {
//	    log.Fatal(err) // every malformed mark is reported
//	}
//
// # Configuration
//
// Configure parser limits:
//
//	p := parser.NewParser().
//	    WithSource("hero.yaml"). // Reported in error locations
//	    WithMaxTokens(1024).     // Max marks per schema
//	    WithMaxDepth(8)          // Max generic and scope nesting
package parser
