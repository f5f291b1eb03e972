package parser

import (
	"regexp"
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

var decoratorPattern = regexp.MustCompile(`\$[a-zA-Z0-9_]+`)

// ExtractDecorators splits a mark into its decorators and the remaining
// grammar text, trimmed. Decorator order and duplicates are preserved.
func ExtractDecorators(mark string) (ast.Decorators, string) {
	names := decoratorPattern.FindAllString(mark, -1)
	rest := strings.TrimSpace(decoratorPattern.ReplaceAllString(mark, ""))
	return ast.NewDecorators(names...), rest
}

// SplitUnion splits a type segment on top-level '|' only, so that
// "array<a|b>|c" yields ["array<a|b>", "c"]. A trailing '?' is removed and
// reported as optional. Pieces are trimmed.
func SplitUnion(seg string) ([]string, bool, error) {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return nil, false, nil
	}

	optional := false
	if strings.HasSuffix(seg, "?") {
		optional = true
		seg = strings.TrimSpace(seg[:len(seg)-1])
		if seg == "" {
			return nil, false, markErrors.NewSyntaxError("type segment missing", ast.NoLocation)
		}
	}

	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, false, unbalanced(seg)
			}
		case '|':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(seg[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false, unbalanced(seg)
	}
	parts = append(parts, strings.TrimSpace(seg[start:]))

	for _, part := range parts {
		if part == "" {
			return nil, false, &markErrors.Error{
				Type:       markErrors.ErrorTypeSyntax,
				Message:    "empty union member in " + quote(seg),
				Location:   ast.NoLocation,
				Suggestion: "remove the doubled or dangling '|'",
			}
		}
	}
	return parts, optional, nil
}

func (p *Parser) parseTSeg(seg string, ctx *ast.Context, depth int) (ast.TSeg, error) {
	parts, optional, err := SplitUnion(seg)
	if err != nil {
		return ast.TSeg{}, err
	}

	nodes := make([]*ast.TNode, 0, len(parts)+1)
	for _, part := range parts {
		node, err := p.parseTNode(part, ctx, depth)
		if err != nil {
			return ast.TSeg{}, err
		}
		nodes = append(nodes, node)
	}
	if optional {
		// no RawName: the branch was not written, see TNode.IsOptionalMarker
		nodes = append(nodes, &ast.TNode{Name: ast.TypeUndefined, Context: ctx})
	}
	return ast.TSeg{Nodes: nodes}, nil
}

func (p *Parser) parseTNode(node string, ctx *ast.Context, depth int) (*ast.TNode, error) {
	node = strings.TrimSpace(node)
	open := strings.IndexByte(node, '<')
	closed := strings.HasSuffix(node, ">")

	switch {
	case open < 0 && !closed:
		return &ast.TNode{Name: ast.LookupTypeName(node), RawName: node, Context: ctx}, nil
	case open < 0 || !closed:
		return nil, unbalanced(node)
	}

	if p.maxDepth > 0 && depth >= p.maxDepth {
		return nil, markErrors.Syntaxf(ast.NoLocation, "generic nesting deeper than %d in %s", p.maxDepth, quote(node))
	}

	raw := strings.TrimSpace(node[:open])
	args, err := p.parseTSeg(node[open+1:len(node)-1], ctx, depth+1)
	if err != nil {
		return nil, err
	}
	return &ast.TNode{Name: ast.LookupTypeName(raw), RawName: raw, Args: args, Context: ctx}, nil
}

func (p *Parser) parseTDM(mark string, markInd int, ctx *ast.Context) (*ast.TDM, error) {
	decorators, rest := ExtractDecorators(mark)
	if rest == "" {
		return nil, &markErrors.Error{
			Type:       markErrors.ErrorTypeSyntax,
			Message:    "type segment missing in mark " + quote(mark),
			Location:   ast.Location{Source: p.source, Token: markInd},
			Suggestion: "a mark needs at least one type, e.g. 'any'",
		}
	}

	seg, err := p.parseTSeg(rest, ctx, 0)
	if err != nil {
		setLocation(err, ast.Location{Source: p.source, Token: markInd})
		return nil, err
	}
	return &ast.TDM{Decorators: decorators, Seg: seg, Index: markInd}, nil
}

func unbalanced(text string) error {
	return &markErrors.Error{
		Type:       markErrors.ErrorTypeSyntax,
		Message:    "angle brackets unbalanced in " + quote(text),
		Location:   ast.NoLocation,
		Suggestion: "every '<' needs a matching '>' at the end of the type",
	}
}

func quote(s string) string {
	return "'" + s + "'"
}
