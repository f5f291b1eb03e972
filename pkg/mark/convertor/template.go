package convertor

import (
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// Pair is the converted value of a pair<T> cell such as "hp: 100".
type Pair struct {
	Key string      `json:"key" yaml:"key"`
	Val interface{} `json:"val" yaml:"val"`
}

// TemplateConvertor validates array<T> and pair<T> values. Element values
// go through a delegate chosen by the number of template arguments: none
// falls back to the any coercer, one uses that type, more form a union.
type TemplateConvertor struct {
	node     *ast.TNode
	delegate Convertor
}

// NewTemplateConvertor builds the convertor for an array or pair node.
func NewTemplateConvertor(node *ast.TNode, reg *Registry) (*TemplateConvertor, error) {
	reg = orDefault(reg)
	var (
		delegate Convertor
		err      error
	)

	switch node.ArgCount() {
	case 0:
		delegate, err = lookupCoercer(reg, ast.TypeAny)
	case 1:
		delegate, err = NewTNodeConvertor(node.Arg(0), reg)
	default:
		delegate, err = NewUnionConvertor(node.Args, reg)
	}
	if err != nil {
		return nil, err
	}

	return &TemplateConvertor{node: node, delegate: delegate}, nil
}

// Validate implements Convertor.
func (c *TemplateConvertor) Validate(v interface{}, opts Options) *Result {
	switch c.node.Name {
	case ast.TypeArray:
		return c.validateArray(v, opts)
	case ast.TypePair:
		return c.validatePair(v, opts)
	}
	return fail("unsupported template", v, opts.Path)
}

// arrayItems normalizes an array cell into its items: nothing for a falsy
// value, the '|'-separated pieces of a string containing '|', or the value
// itself as a single item.
func arrayItems(v interface{}) []interface{} {
	if isFalsy(v) {
		return []interface{}{}
	}
	s, isString := v.(string)
	if !isString || !strings.Contains(s, "|") {
		return []interface{}{v}
	}

	pieces := strings.Split(s, "|")
	items := make([]interface{}, len(pieces))
	for i, piece := range pieces {
		items[i] = strings.TrimSpace(piece)
	}
	return items
}

// validateArray validates every item, without stopping at the first failure.
func (c *TemplateConvertor) validateArray(v interface{}, opts Options) *Result {
	items := arrayItems(v)
	values := make([]interface{}, len(items))

	passed := true
	var errs []*ConvertError
	for i, item := range items {
		result := c.delegate.Validate(item, opts.withPath(IndexStep(i)))
		if !result.OK {
			passed = false
			errs = append(errs, result.Errors...)
			continue
		}
		values[i] = result.Value
	}

	if !passed {
		return &Result{Errors: errs}
	}
	return ok(values)
}

// validatePair splits "key:val" on the first ':' and validates val.
func (c *TemplateConvertor) validatePair(v interface{}, opts Options) *Result {
	s, isString := v.(string)
	if !isString {
		return fail("pair requires string input", v, opts.Path)
	}

	key, val, found := strings.Cut(s, ":")
	if !found {
		return fail("pair value must contain ':'", v, opts.Path)
	}

	result := c.delegate.Validate(strings.TrimSpace(val), opts.withPath(KeyStep("val")))
	if !result.OK {
		return &Result{Errors: result.Errors}
	}
	return ok(Pair{Key: strings.TrimSpace(key), Val: result.Value})
}
