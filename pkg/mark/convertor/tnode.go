package convertor

import (
	"fmt"
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

// TNodeConvertor validates values against a single type reference. The
// strategy is fixed at construction: template (array, pair), enum, or the
// registered scalar coercer.
type TNodeConvertor struct {
	node *ast.TNode
	use  Convertor
}

// NewTNodeConvertor builds the convertor for node. It fails with a
// construction error if a referenced plain type has no registered coercer.
func NewTNodeConvertor(node *ast.TNode, reg *Registry) (*TNodeConvertor, error) {
	reg = orDefault(reg)
	var (
		use Convertor
		err error
	)

	switch {
	case node.Name.IsTemplate():
		use, err = NewTemplateConvertor(node, reg)
	case node.Name.IsEnum():
		use = NewEnumConvertor(node)
	default:
		use, err = lookupCoercer(reg, node.Name)
	}
	if err != nil {
		return nil, err
	}

	return &TNodeConvertor{node: node, use: use}, nil
}

// Node returns the type reference this convertor validates against.
func (c *TNodeConvertor) Node() *ast.TNode {
	return c.node
}

// Validate implements Convertor.
func (c *TNodeConvertor) Validate(v interface{}, opts Options) *Result {
	return c.use.Validate(v, opts)
}

func lookupCoercer(reg *Registry, name ast.TypeName) (Convertor, error) {
	if c, found := reg.Lookup(name); found {
		return c, nil
	}
	return nil, noCoercerError(reg, name)
}

func noCoercerError(reg *Registry, name ast.TypeName) *markErrors.Error {
	err := markErrors.NewConstructionError(fmt.Sprintf("no convertor for type %s", name))
	names := reg.Names()
	if len(names) == 0 {
		err.Suggestion = "the coercer registry is empty, start from DefaultRegistry()"
		return err
	}
	registered := make([]string, len(names))
	for i, n := range names {
		registered[i] = string(n)
	}
	err.Suggestion = "registered types: " + strings.Join(registered, ", ")
	return err
}

// UnionConvertor tries each member of a union in declared order and
// returns the first passing result. If every member fails, the errors of
// all members are reported.
type UnionConvertor struct {
	seg     ast.TSeg
	members []Convertor
}

// NewUnionConvertor builds one TNodeConvertor per union member.
func NewUnionConvertor(seg ast.TSeg, reg *Registry) (*UnionConvertor, error) {
	reg = orDefault(reg)
	members := make([]Convertor, 0, seg.Len())
	for _, node := range seg.Nodes {
		member, err := NewTNodeConvertor(node, reg)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return &UnionConvertor{seg: seg, members: members}, nil
}

// Validate implements Convertor.
func (c *UnionConvertor) Validate(v interface{}, opts Options) *Result {
	var errs []*ConvertError
	for _, member := range c.members {
		result := member.Validate(v, opts)
		if result.OK {
			return result
		}
		errs = append(errs, result.Errors...)
	}

	if len(errs) == 0 {
		return fail("no union branch matched", v, opts.Path)
	}
	return &Result{Errors: errs}
}
