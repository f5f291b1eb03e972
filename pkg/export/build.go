package export

import (
	"fmt"

	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/convertor"
	"mercator-hq/rowmark/pkg/mark/lint"
)

// KeyError is returned when an object member has no label to use as its key.
type KeyError struct {
	Index  int    // Label index that was looked up
	Column string // Column label of that index
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("key in object not found; column %s", e.Column)
}

// Build turns the entries of a passing structure into plain values:
// objects become map[string]interface{} keyed by labels, arrays become
// []interface{}.
//
// Object members take their key from labels at the member's label index
// (the leaf column, or the column of the opening bracket for a nested
// structure). Members without a value are left out of objects. Arrays skip
// absent items unless the array is $strict.
func Build(sdm *ast.SDM, entries convertor.Entries, labels []string) (interface{}, error) {
	b := builder{labels: labels}
	return b.build(sdm, entries)
}

type builder struct {
	labels []string
	desc   Descriptor
}

func (b builder) build(sdm *ast.SDM, entries convertor.Entries) (interface{}, error) {
	if sdm.Kind == ast.KindArr {
		return b.buildArr(sdm, entries)
	}
	return b.buildObj(sdm, entries)
}

func (b builder) buildObj(sdm *ast.SDM, entries convertor.Entries) (interface{}, error) {
	obj := make(map[string]interface{}, len(sdm.Children))
	for _, child := range sdm.Children {
		key, err := b.key(child)
		if err != nil {
			return nil, err
		}
		value, err := b.value(child, entries[child.MarkInd()])
		if err != nil {
			return nil, err
		}
		if value != nil {
			obj[key] = value
		}
	}
	return obj, nil
}

func (b builder) buildArr(sdm *ast.SDM, entries convertor.Entries) (interface{}, error) {
	strict := sdm.Decorators.Has(ast.FlagStrict)
	arr := make([]interface{}, 0, len(sdm.Children))
	for _, child := range sdm.Children {
		value, err := b.value(child, entries[child.MarkInd()])
		if err != nil {
			return nil, err
		}
		if value != nil || strict {
			arr = append(arr, value)
		}
	}
	return arr, nil
}

// value returns the plain value of one child. Failed (soft-omitted)
// entries and collapsed structures are absent.
func (b builder) value(child ast.Mark, result *convertor.Result) (interface{}, error) {
	if result == nil || !result.OK || result.Value == nil {
		return nil, nil
	}
	sdm, isSDM := child.(*ast.SDM)
	if !isSDM {
		return result.Value, nil
	}
	entries, ok := result.Value.(convertor.Entries)
	if !ok {
		return nil, fmt.Errorf("structure at %d has value %T", sdm.MarkInd(), result.Value)
	}
	return b.build(sdm, entries)
}

func (b builder) key(child ast.Mark) (string, error) {
	i := lint.LabelIndex(child)
	if i < 0 || i >= len(b.labels) || b.labels[i] == "" {
		return "", &KeyError{Index: i, Column: b.desc.ColumnLabel(i)}
	}
	return b.labels[i], nil
}
