// Package mark provides parsing and validation for schema marks.
//
// Marks are compact type annotations, one per column of a flat row, that
// describe how the row maps onto a typed, nested value:
//
//	uint   $ghost {   str   array<pair<uint|str?>>   }   enum<Element>
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: Type and structure trees (TNode, TSeg, TDM, SDM)
// - parser: Mark grammar and token-stream structure parsing
// - convertor: Row validation and conversion over the trees
// - errors: Rich error types with location and suggestions
// - lint: Warnings for marks that parse but are probably wrong
//
// # Basic Usage
//
// Compile a schema once and validate many rows:
//
//	schema, err := mark.Compile([]string{"uint", "$ghost [", "int", "int", "]"}, nil)
//	if err != nil {
//	    log.Fatal(err) // parse or construction error
//	}
//
//	for _, row := range rows {
//	    result := schema.Validate(row, convertor.Options{})
//	    if !result.OK {
//	        for _, e := range result.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
// Use a custom coercer registry:
//
//	reg := convertor.DefaultRegistry()
//	reg.RegisterFunc(ast.TypeString, trimmedString)
//	schema, err := mark.NewCompiler().WithRegistry(reg).Compile(tokens, ctx)
package mark
