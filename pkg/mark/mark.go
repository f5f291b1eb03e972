package mark

import (
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/convertor"
	"mercator-hq/rowmark/pkg/mark/parser"
)

// Schema is a parsed token list together with its row convertor.
// It is immutable and safe for concurrent use.
type Schema struct {
	Root    *ast.SDM
	Tokens  []string
	Context *ast.Context

	conv *convertor.SchemaConvertor
}

// Validate checks one flat row against the schema. It never fails with an
// error; inspect Result.OK.
func (s *Schema) Validate(row []interface{}, opts convertor.Options) *convertor.Result {
	return s.conv.ValidateRow(row, opts)
}

// Convert is Validate with support for opts.FailFast.
func (s *Schema) Convert(row []interface{}, opts convertor.Options) (*convertor.Result, error) {
	return s.conv.Convert(row, opts)
}

// Convertor returns the underlying schema convertor.
func (s *Schema) Convertor() *convertor.SchemaConvertor {
	return s.conv
}

// String returns the canonical rendering of the schema.
func (s *Schema) String() string {
	return s.Root.SchemaString()
}

// Compiler parses token lists and builds their convertors.
type Compiler struct {
	parser   *parser.Parser
	registry *convertor.Registry
}

// NewCompiler creates a compiler with the default parser and coercers.
func NewCompiler() *Compiler {
	return &Compiler{
		parser:   parser.NewParser(),
		registry: convertor.DefaultRegistry(),
	}
}

// WithParser sets the parser used for token lists.
func (c *Compiler) WithParser(p *parser.Parser) *Compiler {
	c.parser = p
	return c
}

// WithRegistry sets the scalar coercers used by the convertors.
func (c *Compiler) WithRegistry(reg *convertor.Registry) *Compiler {
	c.registry = reg
	return c
}

// Compile parses tokens and builds the row convertor. Parse errors and
// construction errors are both reported here.
func (c *Compiler) Compile(tokens []string, ctx *ast.Context) (*Schema, error) {
	root, err := c.parser.ParseStructure(tokens, ctx)
	if err != nil {
		return nil, err
	}

	conv, err := convertor.NewSchemaConvertor(root, c.registry)
	if err != nil {
		return nil, err
	}

	return &Schema{
		Root:    root,
		Tokens:  append([]string(nil), tokens...),
		Context: ctx,
		conv:    conv,
	}, nil
}

// Compile parses and builds a schema with the default compiler.
func Compile(tokens []string, ctx *ast.Context) (*Schema, error) {
	return NewCompiler().Compile(tokens, ctx)
}

// ParseSchema parses a token list without building a convertor.
// Use this if you want to inspect the tree first.
func ParseSchema(tokens []string, ctx *ast.Context) (*ast.SDM, error) {
	return parser.ParseStructure(tokens, ctx)
}

// ParseMark parses a single type-side mark.
func ParseMark(mark string) (*ast.TDM, error) {
	return parser.ParseMark(mark, nil)
}

// SplitTokens splits a one-line schema such as "uint, $ghost {, str, }"
// into tokens. Commas inside '<...>' do not split. A blank token between
// commas is kept so that the parser reports it at its index; only a single
// trailing comma is ignored.
func SplitTokens(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	var tokens []string
	depth, start := 0, 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(line[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(line[start:]); last != "" {
		tokens = append(tokens, last)
	}
	return tokens
}
