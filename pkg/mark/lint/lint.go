package lint

import (
	"fmt"
	"strings"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

// Rule identifiers reported in warnings.
const (
	RuleUnknownType          = "unknown-type"
	RuleUnknownDecorator     = "unknown-decorator"
	RuleIneffectiveDecorator = "ineffective-decorator"
	RuleEnumTableCase        = "enum-table-case"
	RuleMissingLabel         = "missing-label"
	RuleDuplicateLabel       = "duplicate-label"
	RuleEmptyStructure       = "empty-structure"
)

// knownDecorators are the decorators with a meaning to the engine or its
// consumers.
var knownDecorators = []string{
	ast.DecoratorGhost,
	ast.DecoratorStrict,
	ast.DecoratorOneOf,
	ast.DecoratorConst,
}

// Warning is a mark that parses and converts but is probably not what the
// author meant.
type Warning struct {
	Rule       string       `json:"rule"`
	Message    string       `json:"message"`
	Location   ast.Location `json:"-"`
	Token      int          `json:"token"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// String formats the warning on one line.
func (w Warning) String() string {
	s := fmt.Sprintf("%s: [%s] %s", w.Location, w.Rule, w.Message)
	if w.Suggestion != "" {
		s += " (" + w.Suggestion + ")"
	}
	return s
}

// Linter inspects a parsed schema for suspicious marks.
type Linter struct {
	source string
	labels []string
	ctx    *ast.Context

	// per-run state
	warnings    []Warning
	current     int
	enumMembers map[*ast.TNode]bool
}

// NewLinter creates a linter with no labels or enum context.
func NewLinter() *Linter {
	return &Linter{}
}

// WithSource sets the name reported in warning locations.
func (l *Linter) WithSource(source string) *Linter {
	l.source = source
	return l
}

// WithLabels sets the column labels used as object keys on export.
// Without labels the label checks are skipped.
func (l *Linter) WithLabels(labels []string) *Linter {
	l.labels = labels
	return l
}

// WithContext sets the enum context the schema was parsed with.
func (l *Linter) WithContext(ctx *ast.Context) *Linter {
	l.ctx = ctx
	return l
}

// Lint walks root and returns every warning in tree order.
func (l *Linter) Lint(root *ast.SDM) []Warning {
	l.warnings = nil
	l.current = root.MarkInd()
	l.enumMembers = make(map[*ast.TNode]bool)

	// the visitor never fails
	_ = ast.Walk(root, l)
	return l.warnings
}

// VisitSDM implements ast.Visitor.
func (l *Linter) VisitSDM(sdm *ast.SDM) error {
	at := sdm.Begin - 1
	if sdm.Implicit {
		at = -1
	}
	l.checkDecorators(sdm.Decorators, at)

	if sdm.Kind == ast.KindObj && sdm.Decorators.Has(ast.FlagStrict) {
		l.warn(RuleIneffectiveDecorator, at, "$strict has no effect on an object", "use $strict on arrays only")
	}
	if len(sdm.Children) == 0 {
		l.warn(RuleEmptyStructure, at, fmt.Sprintf("empty %s structure", sdm.Kind), "")
	}
	if sdm.Kind == ast.KindObj && l.labels != nil {
		l.checkLabels(sdm)
	}
	return nil
}

// VisitTDM implements ast.Visitor.
func (l *Linter) VisitTDM(tdm *ast.TDM) error {
	l.current = tdm.MarkInd()
	l.checkDecorators(tdm.Decorators, tdm.MarkInd())

	for _, flag := range []struct {
		flag ast.Flag
		name string
	}{{ast.FlagGhost, ast.DecoratorGhost}, {ast.FlagStrict, ast.DecoratorStrict}} {
		if tdm.Decorators.Has(flag.flag) {
			l.warn(RuleIneffectiveDecorator, tdm.MarkInd(),
				flag.name+" has no effect on a leaf mark", "use '?' to make a leaf optional")
		}
	}
	return nil
}

// VisitTNode implements ast.Visitor.
func (l *Linter) VisitTNode(node *ast.TNode) error {
	if node.Name.IsEnum() {
		for _, member := range node.Args.Nodes {
			l.enumMembers[member] = true
			l.checkEnumMember(member)
		}
		return nil
	}
	if l.enumMembers[node] || node.Name != ast.TypeNone {
		return nil
	}

	l.warn(RuleUnknownType, l.current,
		fmt.Sprintf("unknown type %q is treated as none", node.RawName),
		markErrors.SuggestTypeName(node.RawName))
	return nil
}

func (l *Linter) checkDecorators(decorators ast.Decorators, at int) {
	for _, name := range decorators.Names() {
		if isKnownDecorator(name) {
			continue
		}
		l.warn(RuleUnknownDecorator, at,
			fmt.Sprintf("decorator %s is ignored by the engine", name),
			markErrors.SuggestName(strings.ToLower(name), knownDecorators))
	}
}

func isKnownDecorator(name string) bool {
	for _, known := range knownDecorators {
		if name == known {
			return true
		}
	}
	return false
}

// checkEnumMember flags a member that would have named a context table if
// its case matched.
func (l *Linter) checkEnumMember(member *ast.TNode) {
	if member.IsOptionalMarker() || l.ctx == nil {
		return
	}
	if _, found := l.ctx.Enum(member.RawName); found {
		return
	}
	for name := range l.ctx.Enums {
		if strings.EqualFold(name, member.RawName) {
			l.warn(RuleEnumTableCase, l.current,
				fmt.Sprintf("enum member %q is self-mapped but table %q exists", member.RawName, name),
				fmt.Sprintf("Did you mean '%s'?", name))
			return
		}
	}
}

// checkLabels verifies every child of an object has a usable, unique key.
func (l *Linter) checkLabels(sdm *ast.SDM) {
	seen := make(map[string]int)
	for _, child := range sdm.Children {
		at := LabelIndex(child)
		label := ""
		if at >= 0 && at < len(l.labels) {
			label = strings.TrimSpace(l.labels[at])
		}

		if label == "" {
			l.warn(RuleMissingLabel, at, "object field has no label", "add a column label, or the field cannot be exported")
			continue
		}
		if first, dup := seen[label]; dup {
			l.warn(RuleDuplicateLabel, at,
				fmt.Sprintf("label %q already used at mark %d", label, first),
				"later fields overwrite earlier ones on export")
			continue
		}
		seen[label] = at
	}
}

// LabelIndex returns the column whose label names mark inside an object:
// a leaf's own column, or the opening-bracket column of a structure.
func LabelIndex(mark ast.Mark) int {
	if mark.MarkType() == ast.MarkTypeSDM {
		return mark.MarkInd() - 1
	}
	return mark.MarkInd()
}

func (l *Linter) warn(rule string, at int, message, suggestion string) {
	l.warnings = append(l.warnings, Warning{
		Rule:       rule,
		Message:    message,
		Location:   ast.Location{Source: l.source, Token: at},
		Token:      at,
		Suggestion: suggestion,
	})
}
