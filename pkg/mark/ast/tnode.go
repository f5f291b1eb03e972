package ast

import "strings"

// TNode is a single type reference, possibly generic.
//
//	uint            -> TNode{Name: uint}
//	array<uint|str> -> TNode{Name: array, Args: [uint, string]}
//	enum<Element>   -> TNode{Name: enum, Args: [TNode{Name: none, RawName: "Element"}]}
type TNode struct {
	Name    TypeName // Canonical name, TypeNone if the alias is unknown
	RawName string   // Name as written, case preserved (used for enum matching)
	Args    TSeg     // Template arguments, empty for plain types
	Context *Context // Parse context, consulted lazily by enum resolution
}

// NewTNode creates a plain type reference.
func NewTNode(name TypeName) *TNode {
	return &TNode{Name: name, RawName: string(name)}
}

// ArgCount returns the number of template arguments.
func (n *TNode) ArgCount() int {
	return n.Args.Len()
}

// Arg returns the template argument at index i.
func (n *TNode) Arg(i int) *TNode {
	return n.Args.Get(i)
}

// IsOptionalMarker reports whether the node is the undefined branch the
// parser appends for a trailing '?'. Such a node has no raw spelling.
func (n *TNode) IsOptionalMarker() bool {
	return n.Name == TypeUndefined && n.RawName == ""
}

// SchemaString renders the node in re-parseable form.
// Unknown type names keep their raw spelling, and enum members are always
// rendered as written since they name context tables.
func (n *TNode) SchemaString() string {
	name := string(n.Name)
	if n.Name == TypeNone {
		name = n.RawName
	}
	if args := n.argString(); args != "" {
		return name + "<" + args + ">"
	}
	return name
}

// rawString renders the node with its raw spelling.
func (n *TNode) rawString() string {
	if args := n.argString(); args != "" {
		return n.RawName + "<" + args + ">"
	}
	return n.RawName
}

func (n *TNode) argString() string {
	if n.Name == TypeEnum {
		return n.Args.memberString()
	}
	return n.Args.SchemaString()
}

// SchemaJSON returns a plain structure describing the node.
func (n *TNode) SchemaJSON() map[string]interface{} {
	ret := map[string]interface{}{
		"type": string(n.Name),
	}
	if n.Name == TypeNone {
		ret["raw"] = n.RawName
	}
	if n.Args.Len() > 0 {
		ret["args"] = n.Args.SchemaJSON()
	}
	return ret
}

// TSeg is an ordered union of type references.
// Order is the try-order during validation: the first match wins.
type TSeg struct {
	Nodes []*TNode
}

// Len returns the number of union members.
func (s TSeg) Len() int {
	return len(s.Nodes)
}

// Get returns the member at index i.
func (s TSeg) Get(i int) *TNode {
	return s.Nodes[i]
}

// IsOptional reports whether the union ends with an undefined branch,
// which is how a trailing '?' is represented.
func (s TSeg) IsOptional() bool {
	return len(s.Nodes) > 0 && s.Nodes[len(s.Nodes)-1].Name == TypeUndefined
}

// SchemaString renders the union with members joined by '|'.
// A trailing undefined member is rendered as '?'.
func (s TSeg) SchemaString() string {
	nodes := s.Nodes
	suffix := ""
	if len(nodes) > 1 && s.IsOptional() {
		nodes = nodes[:len(nodes)-1]
		suffix = "?"
	}

	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.SchemaString()
	}
	return strings.Join(parts, "|") + suffix
}

// memberString renders enum members as written. Only the parser's
// optional marker becomes '?'.
func (s TSeg) memberString() string {
	parts := make([]string, 0, len(s.Nodes))
	suffix := ""
	for _, node := range s.Nodes {
		if node.IsOptionalMarker() {
			suffix = "?"
			continue
		}
		parts = append(parts, node.rawString())
	}
	return strings.Join(parts, "|") + suffix
}

// SchemaJSON returns the members as plain structures.
func (s TSeg) SchemaJSON() []interface{} {
	ret := make([]interface{}, len(s.Nodes))
	for i, node := range s.Nodes {
		ret[i] = node.SchemaJSON()
	}
	return ret
}
