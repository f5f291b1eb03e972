// Package ast provides the tree definitions for schema marks.
//
// A schema is a flat list of tokens ("marks") that describes how to turn one
// row of flat values into a nested, typed structure. Parsing produces a tree
// of marks; the convertor package walks that tree to validate rows.
//
// # Core Types
//
// TNode: A single type reference such as "uint" or "array<int|str>"
//
// TSeg: An ordered union of TNodes ("int|string"), tried front to back
//
// TDM: Type description mark, a decorated TSeg bound to one flat index
//
// SDM: Structure description mark, an object "{...}" or array "[...]" whose
// children are TDMs or nested SDMs
//
// Decorators: The "$name" flags attached to a mark ($ghost, $strict, ...)
//
// Context: Parse-time data (enum tables) shared by every node of a schema
//
// # Type Names
//
// Every type reference resolves through a closed, case-insensitive alias
// table to a canonical TypeName. Unknown names resolve to TypeNone and keep
// their spelling in TNode.RawName, which is how enum members are written:
//
//	enum<Fire|Water>   -> enum with args [none("Fire"), none("Water")]
//	Uint8?             -> [uint, undefined]
//
// # Flat Indices
//
// Each TDM consumes exactly one flat value at MarkInd. A structure has no
// value of its own; its MarkInd is the position of its first child, which
// is also where a label for the structure is expected in a header row.
//
// # Traversal
//
//	type leafCounter struct{ n int }
//
//	func (c *leafCounter) VisitSDM(*ast.SDM) error     { return nil }
//	func (c *leafCounter) VisitTDM(*ast.TDM) error     { c.n++; return nil }
//	func (c *leafCounter) VisitTNode(*ast.TNode) error { return nil }
//
//	counter := &leafCounter{}
//	_ = ast.Walk(root, counter)
package ast
