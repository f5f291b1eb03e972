package parser

import (
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

// structureParser walks a token list once, building nested SDMs.
// Errors are accumulated so one pass reports every malformed mark.
type structureParser struct {
	p      *Parser
	tokens []string
	ctx    *ast.Context
	errs   *markErrors.ErrorList
}

func newStructureParser(p *Parser, tokens []string, ctx *ast.Context) *structureParser {
	return &structureParser{
		p:      p,
		tokens: tokens,
		ctx:    ctx,
		errs:   markErrors.NewErrorList(),
	}
}

// isBeginToken reports whether a token opens an object or array scope.
func isBeginToken(token string) bool {
	return strings.HasSuffix(token, "{") || strings.HasSuffix(token, "[")
}

// isEndToken reports whether a token closes an object or array scope.
func isEndToken(token string) bool {
	return strings.HasSuffix(token, "}") || strings.HasSuffix(token, "]")
}

func kindOf(bracket byte) ast.SDMKind {
	if bracket == '[' || bracket == ']' {
		return ast.KindArr
	}
	return ast.KindObj
}

// parse consumes children starting at tokens[begin] until a closing token
// or the end of the stream.
func (sp *structureParser) parse(kind ast.SDMKind, decorators ast.Decorators, begin, depth int, implicit bool) *ast.SDM {
	sdm := &ast.SDM{
		Kind:       kind,
		Decorators: decorators,
		Begin:      begin,
		Implicit:   implicit,
	}

	i := begin
	for i < len(sp.tokens) {
		token := strings.TrimSpace(sp.tokens[i])

		switch {
		case isBeginToken(token):
			child := sp.parseChild(token, i, depth)
			sdm.Children = append(sdm.Children, child)
			i = child.End + 1

		case isEndToken(token):
			if implicit {
				sp.errorf(i, "unexpected closing bracket %s with no open scope", quote(token))
				i++
				continue
			}
			sp.checkEnd(kind, token, i)
			sdm.End = i
			return sdm

		default:
			tdm, err := sp.p.parseTDM(sp.tokens[i], i, sp.ctx)
			if err != nil {
				sp.add(err)
			} else {
				sdm.Children = append(sdm.Children, tdm)
			}
			i++
		}
	}

	sdm.End = len(sp.tokens)
	return sdm
}

// parseChild parses the scope opened by tokens[at].
func (sp *structureParser) parseChild(token string, at, depth int) *ast.SDM {
	decorators, rest := ExtractDecorators(token)
	bracket := token[len(token)-1]
	if len(rest) != 1 {
		sp.add(&markErrors.Error{
			Type:       markErrors.ErrorTypeSyntax,
			Message:    "begin mark " + quote(token) + " may only contain decorators and the opening bracket",
			Location:   sp.location(at),
			Suggestion: "put the type marks in their own tokens after the bracket",
		})
	}
	if sp.p.maxDepth > 0 && depth >= sp.p.maxDepth {
		sp.errorf(at, "structure nesting deeper than %d", sp.p.maxDepth)
	}
	return sp.parse(kindOf(bracket), decorators, at+1, depth+1, false)
}

// checkEnd validates a closing token against the scope it closes.
func (sp *structureParser) checkEnd(kind ast.SDMKind, token string, at int) {
	if token != "}" && token != "]" {
		sp.errorf(at, "end mark %s may only contain the closing bracket", quote(token))
		return
	}
	if kindOf(token[0]) != kind {
		sp.add(&markErrors.Error{
			Type:       markErrors.ErrorTypeSyntax,
			Message:    "malformed bracket nesting: " + quote(token) + " closes a " + kind.String() + " scope",
			Location:   sp.location(at),
			Suggestion: markErrors.SuggestBracket(kind.Open(), kind.Close()),
		})
	}
}

func (sp *structureParser) location(at int) ast.Location {
	return ast.Location{Source: sp.p.source, Token: at}
}

func (sp *structureParser) errorf(at int, format string, args ...interface{}) {
	sp.add(markErrors.Syntaxf(sp.location(at), format, args...))
}

func (sp *structureParser) add(err error) {
	e, ok := err.(*markErrors.Error)
	if !ok {
		e = markErrors.NewSyntaxError(err.Error(), ast.NoLocation)
	}
	sp.errs.Add(markErrors.AddContextToError(e, sp.tokens))
}

// err returns the accumulated errors, or nil.
func (sp *structureParser) err() error {
	return sp.errs.ToError()
}
