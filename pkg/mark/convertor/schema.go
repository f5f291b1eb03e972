package convertor

import (
	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

// SchemaConvertor is the entry point for validating whole rows against a
// parsed schema. It behaves exactly like the SDMConvertor of the schema's
// outermost structure.
type SchemaConvertor struct {
	*SDMConvertor
}

// NewSchemaConvertor creates the row convertor for root. A nil registry
// means DefaultRegistry().
func NewSchemaConvertor(root *ast.SDM, reg *Registry) (*SchemaConvertor, error) {
	sdm, err := NewSDMConvertor(root, reg)
	if err != nil {
		return nil, err
	}
	return &SchemaConvertor{SDMConvertor: sdm}, nil
}

// Convert validates row and, when opts.FailFast is set, returns a
// *FailFastError for a failing row.
func (c *SchemaConvertor) Convert(row []interface{}, opts Options) (*Result, error) {
	return Convert(c.SDMConvertor, row, opts)
}

// Preflight checks that every type referenced under root can be built with
// reg. All problems are reported together, located at their mark.
func Preflight(root *ast.SDM, reg *Registry) error {
	reg = orDefault(reg)
	errs := markErrors.NewErrorList()
	for _, leaf := range root.Leaves() {
		checkSeg(leaf.Seg, reg, ast.Location{Token: leaf.MarkInd()}, errs)
	}
	return errs.ToError()
}

func checkSeg(seg ast.TSeg, reg *Registry, loc ast.Location, errs *markErrors.ErrorList) {
	for _, node := range seg.Nodes {
		switch {
		case node.Name.IsEnum():
			// members are enum keys, not types
		case node.Name.IsTemplate():
			if node.ArgCount() == 0 {
				checkName(ast.TypeAny, reg, loc, errs)
			}
			checkSeg(node.Args, reg, loc, errs)
		default:
			checkName(node.Name, reg, loc, errs)
		}
	}
}

func checkName(name ast.TypeName, reg *Registry, loc ast.Location, errs *markErrors.ErrorList) {
	if _, found := reg.Lookup(name); found {
		return
	}
	err := noCoercerError(reg, name)
	err.Location = loc
	errs.Add(err)
}
