package lint

import (
	"strings"
	"testing"

	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/parser"
)

func lintTokens(t *testing.T, linter *Linter, tokens ...string) []Warning {
	t.Helper()
	root, err := parser.ParseStructure(tokens, linter.ctx)
	if err != nil {
		t.Fatalf("ParseStructure() error = %v", err)
	}
	return linter.Lint(root)
}

func rules(warnings []Warning) []string {
	ret := make([]string, len(warnings))
	for i, w := range warnings {
		ret[i] = w.Rule
	}
	return ret
}

func TestLint_Clean(t *testing.T) {
	warnings := lintTokens(t, NewLinter(), "uint", "$ghost [", "int?", "enum<Fire|Water>", "]")
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestLint_Rules(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantRule string
		wantTok  int
		wantHint string
	}{
		{"unknown type", []string{"uint", "unt"}, RuleUnknownType, 1, "uint"},
		{"unknown nested type", []string{"array<strng>"}, RuleUnknownType, 0, "string"},
		{"ghost on leaf", []string{"$ghost uint"}, RuleIneffectiveDecorator, 0, "?"},
		{"strict on object", []string{"int", "$strict {", "int", "}"}, RuleIneffectiveDecorator, 1, "arrays"},
		{"unknown decorator", []string{"$ghots [", "int", "]"}, RuleUnknownDecorator, 0, "$ghost"},
		{"empty structure", []string{"[", "]"}, RuleEmptyStructure, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := lintTokens(t, NewLinter(), tt.tokens...)
			if len(warnings) != 1 {
				t.Fatalf("warnings = %v, want one %s", warnings, tt.wantRule)
			}
			w := warnings[0]
			if w.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", w.Rule, tt.wantRule)
			}
			if w.Token != tt.wantTok {
				t.Errorf("Token = %d, want %d", w.Token, tt.wantTok)
			}
			if !strings.Contains(w.Suggestion, tt.wantHint) {
				t.Errorf("Suggestion = %q, want it to mention %q", w.Suggestion, tt.wantHint)
			}
		})
	}
}

func TestLint_EnumMembersAreNotTypes(t *testing.T) {
	ctx := &ast.Context{Enums: map[string]ast.EnumTable{"Element": {{Key: "FIRE", Value: 1}}}}

	warnings := lintTokens(t, NewLinter().WithContext(ctx), "enum<Element>", "enum<A|B?>")
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}

	warnings = lintTokens(t, NewLinter().WithContext(ctx), "enum<element>")
	if got := rules(warnings); len(got) != 1 || got[0] != RuleEnumTableCase {
		t.Errorf("rules = %v, want [%s]", got, RuleEnumTableCase)
	}
}

func TestLint_Labels(t *testing.T) {
	labels := []string{"id", "stats", "hp", "", "id", "tags"}
	linter := NewLinter().WithLabels(labels).WithSource("hero.csv")

	warnings := lintTokens(t, linter, "uint", "{", "uint", "uint", "}", "[", "str", "]")
	got := rules(warnings)
	want := []string{RuleMissingLabel}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rules = %v, want %v (%v)", got, want, warnings)
	}
	if warnings[0].Token != 3 {
		t.Errorf("Token = %d, want 3", warnings[0].Token)
	}
	if !strings.HasPrefix(warnings[0].String(), "hero.csv:3: [missing-label]") {
		t.Errorf("String() = %q", warnings[0].String())
	}

	warnings = lintTokens(t, NewLinter().WithLabels([]string{"id", "id"}), "uint", "uint")
	if got := rules(warnings); len(got) != 1 || got[0] != RuleDuplicateLabel {
		t.Errorf("rules = %v, want [%s]", got, RuleDuplicateLabel)
	}
}

func TestLabelIndex(t *testing.T) {
	root, err := parser.ParseStructure([]string{"uint", "{", "int", "}"}, nil)
	if err != nil {
		t.Fatalf("ParseStructure() error = %v", err)
	}
	if got := LabelIndex(root.Children[0]); got != 0 {
		t.Errorf("leaf LabelIndex = %d, want 0", got)
	}
	if got := LabelIndex(root.Children[1]); got != 1 {
		t.Errorf("structure LabelIndex = %d, want 1", got)
	}
}
