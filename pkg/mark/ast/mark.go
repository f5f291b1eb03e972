package ast

import "strings"

// MarkType discriminates the two kinds of schema marks.
type MarkType int

const (
	// MarkTypeSDM is a structure (object or array) over flat indices.
	MarkTypeSDM MarkType = iota
	// MarkTypeTDM is a leaf consuming exactly one flat value.
	MarkTypeTDM
)

// String returns a readable name for the mark type.
func (t MarkType) String() string {
	if t == MarkTypeSDM {
		return "sdm"
	}
	return "tdm"
}

// Mark is a child of a structure: either a *TDM leaf or a nested *SDM.
type Mark interface {
	// MarkType returns the discriminant.
	MarkType() MarkType

	// MarkInd returns the absolute flat-array position of the mark.
	// For a structure it is the position of its first child.
	MarkInd() int

	// SchemaString renders the mark in canonical form.
	SchemaString() string

	// SchemaJSON returns a plain structure for inspection.
	SchemaJSON() map[string]interface{}
}

// TDM (type description mark) is a decorated union bound to one flat index.
type TDM struct {
	Decorators Decorators
	Seg        TSeg
	Index      int
}

// MarkType implements Mark.
func (m *TDM) MarkType() MarkType { return MarkTypeTDM }

// MarkInd implements Mark.
func (m *TDM) MarkInd() int { return m.Index }

// SchemaString renders the decorators followed by the union.
func (m *TDM) SchemaString() string {
	if m.Decorators.Len() == 0 {
		return m.Seg.SchemaString()
	}
	return m.Decorators.String() + " " + m.Seg.SchemaString()
}

// SchemaJSON implements Mark.
func (m *TDM) SchemaJSON() map[string]interface{} {
	ret := map[string]interface{}{
		"markInd": m.Index,
		"types":   m.Seg.SchemaJSON(),
	}
	if m.Decorators.Len() > 0 {
		ret["mds"] = m.Decorators.Names()
	}
	return ret
}

// SDMKind is the shape of a structure.
type SDMKind int

const (
	// KindObj is an object scope, opened by '{'.
	KindObj SDMKind = iota
	// KindArr is an array scope, opened by '['.
	KindArr
)

// String returns "obj" or "arr".
func (k SDMKind) String() string {
	if k == KindArr {
		return "arr"
	}
	return "obj"
}

// Open returns the bracket that opens the scope.
func (k SDMKind) Open() string {
	if k == KindArr {
		return "["
	}
	return "{"
}

// Close returns the bracket that closes the scope.
func (k SDMKind) Close() string {
	if k == KindArr {
		return "]"
	}
	return "}"
}

// SDM (structure description mark) is an object or array shape whose
// children are leaves (TDM) or nested structures (SDM).
// Begin and End delimit its span in the token list as [Begin, End):
// Begin is the index after the opening token and End is the index of the
// closing token, or the list length when the stream ran out.
type SDM struct {
	Kind       SDMKind
	Decorators Decorators
	Children   []Mark
	Begin      int
	End        int

	// Implicit is set on the outermost structure of a schema, which has no
	// opening or closing token of its own.
	Implicit bool
}

// MarkType implements Mark.
func (m *SDM) MarkType() MarkType { return MarkTypeSDM }

// MarkInd implements Mark.
func (m *SDM) MarkInd() int { return m.Begin }

// SchemaString renders the structure as "$dec { child, child }".
func (m *SDM) SchemaString() string {
	parts := make([]string, 0, 4)
	if m.Decorators.Len() > 0 {
		parts = append(parts, m.Decorators.String())
	}
	parts = append(parts, m.Kind.Open())

	children := make([]string, len(m.Children))
	for i, child := range m.Children {
		children[i] = child.SchemaString()
	}
	if len(children) > 0 {
		parts = append(parts, strings.Join(children, ", "))
	}

	parts = append(parts, m.Kind.Close())
	return strings.Join(parts, " ")
}

// SchemaJSON implements Mark.
func (m *SDM) SchemaJSON() map[string]interface{} {
	children := make([]interface{}, len(m.Children))
	for i, child := range m.Children {
		children[i] = child.SchemaJSON()
	}

	ret := map[string]interface{}{
		"kind":     m.Kind.String(),
		"fromTo":   []int{m.Begin, m.End},
		"children": children,
	}
	if m.Decorators.Len() > 0 {
		ret["mds"] = m.Decorators.Names()
	}
	return ret
}

// Tokens returns a token list that parses back into the same structure.
func (m *SDM) Tokens() []string {
	tokens := make([]string, 0, len(m.Children)+2)
	if !m.Implicit {
		open := m.Kind.Open()
		if m.Decorators.Len() > 0 {
			open = m.Decorators.String() + " " + open
		}
		tokens = append(tokens, open)
	}

	for _, child := range m.Children {
		switch c := child.(type) {
		case *SDM:
			tokens = append(tokens, c.Tokens()...)
		default:
			tokens = append(tokens, c.SchemaString())
		}
	}

	if !m.Implicit {
		tokens = append(tokens, m.Kind.Close())
	}
	return tokens
}

// Leaves returns every TDM under the structure in tree order.
func (m *SDM) Leaves() []*TDM {
	var leaves []*TDM
	for _, child := range m.Children {
		switch c := child.(type) {
		case *TDM:
			leaves = append(leaves, c)
		case *SDM:
			leaves = append(leaves, c.Leaves()...)
		}
	}
	return leaves
}
