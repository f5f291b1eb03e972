package convertor

import (
	"fmt"
	"sort"
	"sync"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// Entries is the value of a structure result: one result per child, keyed
// by the child's flat index.
type Entries map[int]*Result

// Indices returns the keys in ascending order, which is tree order.
func (e Entries) Indices() []int {
	indices := make([]int, 0, len(e))
	for i := range e {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// SDMConvertor validates a flat row against a structure. Every child reads
// from the same row: leaves at their own flat index, nested structures
// recursively. Child convertors are built on first use and cached.
type SDMConvertor struct {
	sdm *ast.SDM
	reg *Registry

	mu       sync.Mutex
	children []Convertor
}

// NewSDMConvertor creates the convertor for sdm. Every type referenced under
// sdm is checked against reg up front, so construction errors surface here
// rather than during validation.
func NewSDMConvertor(sdm *ast.SDM, reg *Registry) (*SDMConvertor, error) {
	reg = orDefault(reg)
	if err := Preflight(sdm, reg); err != nil {
		return nil, err
	}
	return newSDMConvertor(sdm, reg), nil
}

func newSDMConvertor(sdm *ast.SDM, reg *Registry) *SDMConvertor {
	return &SDMConvertor{
		sdm:      sdm,
		reg:      reg,
		children: make([]Convertor, len(sdm.Children)),
	}
}

// SDM returns the structure this convertor validates against.
func (c *SDMConvertor) SDM() *ast.SDM {
	return c.sdm
}

// child returns the cached convertor for child i, building it if needed.
func (c *SDMConvertor) child(i int) (Convertor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if conv := c.children[i]; conv != nil {
		return conv, nil
	}

	var conv Convertor
	switch mark := c.sdm.Children[i].(type) {
	case *ast.SDM:
		conv = newSDMConvertor(mark, c.reg)
	case *ast.TDM:
		union, err := NewUnionConvertor(mark.Seg, c.reg)
		if err != nil {
			return nil, err
		}
		conv = union
	default:
		return nil, fmt.Errorf("unknown mark type %T", mark)
	}

	c.children[i] = conv
	return conv, nil
}

// Validate implements Convertor. v must be the flat row as []interface{};
// positions past the end of the row read as absent.
func (c *SDMConvertor) Validate(v interface{}, opts Options) *Result {
	row, isRow := v.([]interface{})
	if !isRow && v != nil {
		return fail("structure requires a row of values", v, opts.Path)
	}
	return c.ValidateRow(row, opts)
}

// ValidateRow validates every child against row and applies the structure's
// decorators:
//
//   - $ghost: when every entry is empty the structure collapses to nil.
//   - arrays without $strict: entries that failed only because they are
//     empty do not fail the array.
//   - otherwise the structure passes only if every entry passed.
//
// The value of a non-collapsed result is always the full Entries map.
func (c *SDMConvertor) ValidateRow(row []interface{}, opts Options) *Result {
	entries := make(Entries, len(c.sdm.Children))

	allPassed, allEmpty, allUnpassedEmpty := true, true, true
	var errs []*ConvertError

	for i, mark := range c.sdm.Children {
		markInd := mark.MarkInd()
		childOpts := opts.withPath(IndexStep(markInd))

		conv, err := c.child(i)
		if err != nil {
			entries[markInd] = &Result{Errors: []*ConvertError{{Message: "convertor unavailable", Path: childOpts.Path, Cause: err}}}
			allPassed, allEmpty, allUnpassedEmpty = false, false, false
			errs = append(errs, entries[markInd].Errors...)
			continue
		}

		var result *Result
		var empty bool
		switch mark.MarkType() {
		case ast.MarkTypeSDM:
			result = conv.(*SDMConvertor).ValidateRow(row, childOpts)
			// a failing substructure is never treated as omitted
			empty = result.OK && IsEmpty(result.Value)
		default:
			raw := cell(row, markInd)
			result = conv.Validate(raw, childOpts)
			if result.OK {
				empty = IsEmpty(result.Value)
			} else {
				empty = IsEmpty(raw)
			}
		}
		entries[markInd] = result

		allPassed = allPassed && result.OK
		allEmpty = allEmpty && empty
		allUnpassedEmpty = allUnpassedEmpty && (result.OK || empty)
		if !result.OK {
			errs = append(errs, result.Errors...)
		}
	}

	ghost := c.sdm.Decorators.Has(ast.FlagGhost)
	switch c.sdm.Kind {
	case ast.KindArr:
		if ghost && allEmpty {
			return ok(nil)
		}
		if !c.sdm.Decorators.Has(ast.FlagStrict) && allUnpassedEmpty {
			return ok(entries)
		}
	case ast.KindObj:
		if ghost && allEmpty {
			return ok(nil)
		}
	}

	if allPassed {
		return ok(entries)
	}
	return &Result{Value: entries, Errors: errs}
}

// cell returns row[i], or nil when the row is too short.
func cell(row []interface{}, i int) interface{} {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}
