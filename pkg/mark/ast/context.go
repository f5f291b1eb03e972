package ast

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Context carries parse-time information that the type tree needs later,
// currently the enum tables referenced by enum<...> marks.
// A Context is shared by every node parsed with it and must not be mutated
// after parsing.
type Context struct {
	Enums map[string]EnumTable `yaml:"enums"`
}

// Enum returns the table registered under name.
func (c *Context) Enum(name string) (EnumTable, bool) {
	if c == nil || c.Enums == nil {
		return nil, false
	}
	table, ok := c.Enums[name]
	return table, ok
}

// EnumEntry is one key of an enum table. Value is a scalar or a list of
// scalars (any slice or array type); for a list the first element is the
// canonical value.
type EnumEntry struct {
	Key   string
	Value interface{}
}

// Canonical returns the value an enum match resolves to.
func (e EnumEntry) Canonical() interface{} {
	if e.Value == nil {
		return nil
	}
	list := reflect.ValueOf(e.Value)
	if kind := list.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return e.Value
	}
	if list.Len() == 0 {
		return nil
	}
	return list.Index(0).Interface()
}

// EnumTable is an insertion-ordered key -> value table.
// Order matters: matching scans entries front to back.
type EnumTable []EnumEntry

// UnmarshalYAML decodes a YAML mapping while keeping document order.
func (t *EnumTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: enum table must be a mapping", node.Line)
	}

	table := make(EnumTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: enum value for %q: %w", valueNode.Line, keyNode.Value, err)
		}
		table = append(table, EnumEntry{Key: keyNode.Value, Value: value})
	}

	*t = table
	return nil
}

// MarshalYAML encodes the table as an ordered mapping.
func (t EnumTable) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range t {
		var value yaml.Node
		if err := value.Encode(entry.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: entry.Key},
			&value,
		)
	}
	return node, nil
}
