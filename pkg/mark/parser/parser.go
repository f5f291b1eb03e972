package parser

import (
	"fmt"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

// Parser parses schema marks into type and structure trees.
// A Parser is stateless apart from its configuration and may be shared.
type Parser struct {
	// Configuration
	source    string // Name reported in error locations
	maxTokens int    // Maximum number of tokens in a structure (default: 4096)
	maxDepth  int    // Maximum generic and structure nesting depth (default: 32)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxTokens: 4096,
		maxDepth:  32,
	}
}

// WithSource sets the name used in error locations.
func (p *Parser) WithSource(source string) *Parser {
	p.source = source
	return p
}

// WithMaxTokens sets the maximum number of tokens a structure may contain.
func (p *Parser) WithMaxTokens(n int) *Parser {
	p.maxTokens = n
	return p
}

// WithMaxDepth sets the maximum nesting depth of generics and structures.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// ParseMark parses a single type-side mark such as "$oneof int|str?".
// The resulting TDM is bound to flat index 0.
func (p *Parser) ParseMark(mark string, ctx *ast.Context) (*ast.TDM, error) {
	tdm, err := p.parseTDM(mark, 0, ctx)
	if err != nil {
		setLocation(err, ast.Location{Source: p.source, Token: -1})
		return nil, err
	}
	return tdm, nil
}

// ParseStructure parses a flat token list into the schema's outermost
// structure, an implicit object spanning the whole list.
func (p *Parser) ParseStructure(tokens []string, ctx *ast.Context) (*ast.SDM, error) {
	if err := p.checkTokens(tokens); err != nil {
		return nil, err
	}

	sp := newStructureParser(p, tokens, ctx)
	root := sp.parse(ast.KindObj, ast.Decorators{}, 0, 0, true)
	if err := sp.err(); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseSDM parses an explicit structure of the given kind whose children
// start at tokens[begin]. The returned SDM's End is the index of its closing
// token, or len(tokens) if the stream ran out first.
func (p *Parser) ParseSDM(kind ast.SDMKind, decorators ast.Decorators, tokens []string, begin int, ctx *ast.Context) (*ast.SDM, error) {
	if err := p.checkTokens(tokens); err != nil {
		return nil, err
	}
	if begin < 0 || begin > len(tokens) {
		return nil, markErrors.Syntaxf(ast.Location{Source: p.source, Token: -1},
			"begin index %d out of range [0, %d]", begin, len(tokens))
	}

	sp := newStructureParser(p, tokens, ctx)
	sdm := sp.parse(kind, decorators, begin, 1, false)
	if err := sp.err(); err != nil {
		return nil, err
	}
	return sdm, nil
}

func (p *Parser) checkTokens(tokens []string) error {
	if p.maxTokens > 0 && len(tokens) > p.maxTokens {
		return &markErrors.Error{
			Type:       markErrors.ErrorTypeSyntax,
			Message:    fmt.Sprintf("schema has %d marks, exceeds maximum %d", len(tokens), p.maxTokens),
			Location:   ast.Location{Source: p.source, Token: -1},
			Suggestion: "split the sheet or raise the parser token limit",
		}
	}
	return nil
}

// setLocation fills in the location of a parse error produced without one.
func setLocation(err error, loc ast.Location) {
	if e, ok := err.(*markErrors.Error); ok && !e.Location.IsValid() {
		e.Location = loc
	}
}

var defaultParser = NewParser()

// ParseMark parses a single type-side mark with the default parser.
func ParseMark(mark string, ctx *ast.Context) (*ast.TDM, error) {
	return defaultParser.ParseMark(mark, ctx)
}

// ParseStructure parses a token list with the default parser.
func ParseStructure(tokens []string, ctx *ast.Context) (*ast.SDM, error) {
	return defaultParser.ParseStructure(tokens, ctx)
}

// ParseSDM parses an explicit structure with the default parser.
func ParseSDM(kind ast.SDMKind, decorators ast.Decorators, tokens []string, begin int, ctx *ast.Context) (*ast.SDM, error) {
	return defaultParser.ParseSDM(kind, decorators, tokens, begin, ctx)
}

// ParseTDM parses one leaf mark bound to flat index markInd.
func ParseTDM(mark string, markInd int, ctx *ast.Context) (*ast.TDM, error) {
	tdm, err := defaultParser.parseTDM(mark, markInd, ctx)
	if err != nil {
		return nil, err
	}
	return tdm, nil
}

// ParseTSeg parses a union such as "int|array<str>?".
// An empty string yields an empty TSeg.
func ParseTSeg(seg string, ctx *ast.Context) (ast.TSeg, error) {
	return defaultParser.parseTSeg(seg, ctx, 0)
}

// ParseTNode parses a single, possibly generic, type reference.
func ParseTNode(node string, ctx *ast.Context) (*ast.TNode, error) {
	return defaultParser.parseTNode(node, ctx, 0)
}
