package convertor

import (
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// EnumConvertor matches values against the members of enum<A|B|...>.
//
// Each member either names a table in the parse context, whose entries are
// copied in order, or stands for itself (key and value both the raw name).
// The '?' marker, and an undefined member with no table of that name, make
// the enum accept empty values.
// A value matches an entry when it equals the entry value or when its
// trimmed text equals the key, ignoring case. The first match wins.
type EnumConvertor struct {
	node     *ast.TNode
	entries  []ast.EnumEntry
	optional bool
}

// NewEnumConvertor resolves the enum members of node into a lookup table.
func NewEnumConvertor(node *ast.TNode) *EnumConvertor {
	c := &EnumConvertor{node: node}
	index := make(map[string]int)

	add := func(key string, value interface{}) {
		if i, dup := index[key]; dup {
			c.entries[i].Value = value
			return
		}
		index[key] = len(c.entries)
		c.entries = append(c.entries, ast.EnumEntry{Key: key, Value: value})
	}

	for _, member := range node.Args.Nodes {
		if member.IsOptionalMarker() {
			c.optional = true
			continue
		}
		if table, found := member.Context.Enum(member.RawName); found {
			for _, entry := range table {
				add(entry.Key, entry.Canonical())
			}
			continue
		}
		if member.Name == ast.TypeUndefined {
			c.optional = true
			continue
		}
		add(member.RawName, member.RawName)
	}
	return c
}

// Entries returns the resolved table in match order.
func (c *EnumConvertor) Entries() []ast.EnumEntry {
	return append([]ast.EnumEntry(nil), c.entries...)
}

// Validate implements Convertor.
func (c *EnumConvertor) Validate(v interface{}, opts Options) *Result {
	text := ""
	if v != nil {
		text = strings.TrimSpace(toString(v))
	}

	for _, entry := range c.entries {
		if valuesEqual(v, entry.Value) || strings.EqualFold(text, entry.Key) {
			return ok(entry.Value)
		}
	}

	if c.optional && IsEmpty(v) {
		return ok(nil)
	}
	return fail("enum value not found", v, opts.Path)
}

// valuesEqual compares scalars, treating all numeric types as numbers.
func valuesEqual(a, b interface{}) bool {
	if fa, isNum := numberOf(a); isNum {
		fb, bothNum := numberOf(b)
		return bothNum && fa == fb
	}

	switch ta := a.(type) {
	case string:
		tb, same := b.(string)
		return same && ta == tb
	case bool:
		tb, same := b.(bool)
		return same && ta == tb
	}
	return false
}
