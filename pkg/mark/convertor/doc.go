// Package convertor validates flat rows against parsed schema trees.
//
// Convertors mirror the trees built by the parser package. On the type
// side a TNodeConvertor picks one strategy per type reference (a scalar
// coercer from the Registry, a TemplateConvertor for array and pair, or an
// EnumConvertor), and a UnionConvertor tries the members of a union in
// order. On the structure side an SDMConvertor validates every child
// against the same flat row and then applies the $ghost and $strict
// policies.
//
// # Results
//
// Validation never panics and never returns an error. Every call yields a
// *Result with OK, the converted Value, and every ConvertError found, each
// carrying the path from the row root (flat indices, list indices and the
// "val" step of a pair). Convert adds an opt-in fail-fast mode that turns a
// failing result into a *FailFastError holding the full error list.
//
// # Basic Usage
//
//	root, err := parser.ParseStructure([]string{"uint", "$ghost [", "int", "int", "]"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, err := convertor.NewSchemaConvertor(root, convertor.DefaultRegistry())
//	if err != nil {
//	    log.Fatal(err) // construction error: unregistered type
//	}
//
//	result := conv.ValidateRow([]interface{}{"3", "", ""}, convertor.Options{})
//	// result.OK == true; the ghost array at index 1 collapsed to nil
//
// # Structure Policies
//
//	decorators  kind     all empty            some empty, rest ok   any present-but-bad
//	(none)      Arr      ok, full map         ok, full map          fail
//	$strict     Arr      fail unless passed   fail unless passed    fail
//	$ghost      Arr/Obj  ok, nil              normal rule           normal rule
//
// # Concurrency
//
// A convertor tree may be shared between goroutines. Child convertors are
// built once under a lock; validation itself holds no state.
package convertor
