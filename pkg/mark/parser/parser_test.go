package parser

import (
	"reflect"
	"strings"
	"testing"

	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

func TestExtractDecorators(t *testing.T) {
	tests := []struct {
		mark      string
		wantNames []string
		wantRest  string
	}{
		{"uint", nil, "uint"},
		{"$ghost uint?", []string{"$ghost"}, "uint?"},
		{"$ghost $strict {", []string{"$ghost", "$strict"}, "{"},
		{"$a $a  str ", []string{"$a", "$a"}, "str"},
		{"$STRICT[", []string{"$STRICT"}, "["},
		{"  int  ", nil, "int"},
	}

	for _, tt := range tests {
		t.Run(tt.mark, func(t *testing.T) {
			decorators, rest := ExtractDecorators(tt.mark)
			if got := decorators.Names(); len(got) != len(tt.wantNames) || (len(got) > 0 && !reflect.DeepEqual(got, tt.wantNames)) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestSplitUnion(t *testing.T) {
	tests := []struct {
		seg          string
		wantParts    []string
		wantOptional bool
		wantErr      bool
	}{
		{seg: "", wantParts: nil},
		{seg: "int", wantParts: []string{"int"}},
		{seg: "int | str", wantParts: []string{"int", "str"}},
		{seg: "array<a|b>|c", wantParts: []string{"array<a|b>", "c"}},
		{seg: "pair<array<x|y>|z>?", wantParts: []string{"pair<array<x|y>|z>"}, wantOptional: true},
		{seg: "uint8?", wantParts: []string{"uint8"}, wantOptional: true},
		{seg: "?", wantErr: true},
		{seg: "int||str", wantErr: true},
		{seg: "array<int", wantErr: true},
		{seg: "int>|<str", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.seg, func(t *testing.T) {
			parts, optional, err := SplitUnion(tt.seg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitUnion(%q) expected error", tt.seg)
				}
				if !markErrors.IsParseError(err) {
					t.Errorf("error %v is not a parse error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitUnion(%q) error = %v", tt.seg, err)
			}
			if !reflect.DeepEqual(parts, tt.wantParts) {
				t.Errorf("parts = %q, want %q", parts, tt.wantParts)
			}
			if optional != tt.wantOptional {
				t.Errorf("optional = %v, want %v", optional, tt.wantOptional)
			}
		})
	}
}

func TestParseTNode(t *testing.T) {
	node, err := ParseTNode("Array<Pair<uint|str?>>", nil)
	if err != nil {
		t.Fatalf("ParseTNode() error = %v", err)
	}
	if node.Name != ast.TypeArray || node.RawName != "Array" {
		t.Errorf("node = %s/%q, want array/\"Array\"", node.Name, node.RawName)
	}
	if node.ArgCount() != 1 || node.Arg(0).Name != ast.TypePair {
		t.Fatalf("args = %s", node.Args.SchemaString())
	}
	inner := node.Arg(0).Args
	if inner.Len() != 3 || inner.Get(0).Name != ast.TypeUInt || inner.Get(1).Name != ast.TypeString || inner.Get(2).Name != ast.TypeUndefined {
		t.Errorf("inner = %s", inner.SchemaString())
	}

	empty, err := ParseTNode("array<>", nil)
	if err != nil {
		t.Fatalf("ParseTNode(array<>) error = %v", err)
	}
	if empty.ArgCount() != 0 {
		t.Errorf("array<> args = %d, want 0", empty.ArgCount())
	}

	unknown, err := ParseTNode("Element", nil)
	if err != nil {
		t.Fatalf("ParseTNode(Element) error = %v", err)
	}
	if unknown.Name != ast.TypeNone || unknown.RawName != "Element" {
		t.Errorf("unknown = %s/%q", unknown.Name, unknown.RawName)
	}
}

func TestParseTNode_Unbalanced(t *testing.T) {
	for _, s := range []string{"array<int", "arrayint>", "a<b>c"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseTNode(s, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "angle brackets unbalanced") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestParseTSeg(t *testing.T) {
	seg, err := ParseTSeg("uint8?", nil)
	if err != nil {
		t.Fatalf("ParseTSeg() error = %v", err)
	}
	if seg.Len() != 2 || seg.Get(1).Name != ast.TypeUndefined {
		t.Errorf("uint8? = %s, want [uint, undefined]", seg.SchemaString())
	}

	seg, err = ParseTSeg("array<a|b>|c", nil)
	if err != nil {
		t.Fatalf("ParseTSeg() error = %v", err)
	}
	if seg.Len() != 2 {
		t.Errorf("len = %d, want 2", seg.Len())
	}

	seg, err = ParseTSeg("", nil)
	if err != nil || seg.Len() != 0 {
		t.Errorf("empty seg = %v, %v", seg, err)
	}
}

func TestParseTDM(t *testing.T) {
	ctx := &ast.Context{}
	tdm, err := ParseTDM("$oneof $const int|str?", 7, ctx)
	if err != nil {
		t.Fatalf("ParseTDM() error = %v", err)
	}
	if tdm.MarkInd() != 7 {
		t.Errorf("MarkInd() = %d, want 7", tdm.MarkInd())
	}
	if !tdm.Decorators.Has(ast.FlagOneOf) || !tdm.Decorators.Has(ast.FlagConst) {
		t.Errorf("decorators = %q", tdm.Decorators.String())
	}
	for _, node := range tdm.Seg.Nodes {
		if node.Context != ctx {
			t.Errorf("node %s lost the parse context", node.Name)
		}
	}
	if got := tdm.SchemaString(); got != "$oneof $const int|string?" {
		t.Errorf("SchemaString() = %q", got)
	}
}

func TestParseTDM_Errors(t *testing.T) {
	for _, mark := range []string{"", "$ghost", "?", "$strict ?", "   "} {
		t.Run(mark, func(t *testing.T) {
			_, err := ParseTDM(mark, 3, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !markErrors.IsParseError(err) {
				t.Errorf("error %v is not a parse error", err)
			}
			if !strings.Contains(err.Error(), "type segment missing") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestParseMark_RoundTrip(t *testing.T) {
	marks := []string{
		"uint",
		"Uint8?",
		"$ghost int|str?",
		"array<array<pair<uint>>>",
		"array<pair<uint|str?>>|undefined",
		"enum<Fire|Water>",
		"enum<Number|Object?>",
		"enum<Fire|Undefined>",
		"$oneof pair<enum<Element>>?",
		"array",
		"undefined",
		"unknownThing|@",
	}

	for _, mark := range marks {
		t.Run(mark, func(t *testing.T) {
			first, err := ParseMark(mark, nil)
			if err != nil {
				t.Fatalf("ParseMark(%q) error = %v", mark, err)
			}
			rendered := first.SchemaString()

			second, err := ParseMark(rendered, nil)
			if err != nil {
				t.Fatalf("ParseMark(%q) error = %v", rendered, err)
			}
			if again := second.SchemaString(); again != rendered {
				t.Errorf("round trip unstable: %q -> %q -> %q", mark, rendered, again)
			}
			if !reflect.DeepEqual(first.SchemaJSON(), second.SchemaJSON()) {
				t.Errorf("structure changed across round trip of %q", mark)
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	tokens := []string{"uint", "$ghost {", "str", "[", "int", "int", "]", "}", "bool"}
	root, err := ParseStructure(tokens, nil)
	if err != nil {
		t.Fatalf("ParseStructure() error = %v", err)
	}

	if !root.Implicit || root.Kind != ast.KindObj {
		t.Errorf("root = %+v, want implicit obj", root)
	}
	if root.Begin != 0 || root.End != len(tokens) {
		t.Errorf("root span = [%d, %d)", root.Begin, root.End)
	}
	if len(root.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(root.Children))
	}

	obj, ok := root.Children[1].(*ast.SDM)
	if !ok {
		t.Fatalf("child 1 is %T, want *ast.SDM", root.Children[1])
	}
	if !obj.Decorators.Has(ast.FlagGhost) {
		t.Error("$ghost lost on nested object")
	}
	if obj.Begin != 2 || obj.End != 7 || obj.MarkInd() != 2 {
		t.Errorf("obj span = [%d, %d) markInd %d, want [2, 7) markInd 2", obj.Begin, obj.End, obj.MarkInd())
	}

	arr := obj.Children[1].(*ast.SDM)
	if arr.Kind != ast.KindArr || arr.Begin != 4 || arr.End != 6 {
		t.Errorf("arr = %s [%d, %d)", arr.Kind, arr.Begin, arr.End)
	}
	if arr.MarkInd() != arr.Children[0].MarkInd() {
		t.Error("structure markInd must equal first child markInd")
	}

	last := root.Children[2]
	if last.MarkType() != ast.MarkTypeTDM || last.MarkInd() != 8 {
		t.Errorf("last child = %v at %d", last.MarkType(), last.MarkInd())
	}
}

func TestParseStructure_ImplicitClose(t *testing.T) {
	root, err := ParseStructure([]string{"uint", "[", "int", "int"}, nil)
	if err != nil {
		t.Fatalf("ParseStructure() error = %v", err)
	}
	arr := root.Children[1].(*ast.SDM)
	if arr.End != 4 {
		t.Errorf("arr.End = %d, want 4", arr.End)
	}
	if len(arr.Children) != 2 {
		t.Errorf("len(arr.Children) = %d, want 2", len(arr.Children))
	}
}

func TestParseStructure_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		wantMsg string
	}{
		{"begin token content", []string{"uint {"}, "may only contain decorators"},
		{"mismatched close", []string{"{", "int", "]"}, "malformed bracket nesting"},
		{"stray close", []string{"int", "}"}, "unexpected closing bracket"},
		{"empty leaf", []string{"int", "$ghost"}, "type segment missing"},
		{"bad template", []string{"array<int"}, "angle brackets unbalanced"},
		{"end token content", []string{"[", "int", "int ]"}, "may only contain the closing bracket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructure(tt.tokens, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !markErrors.IsParseError(err) {
				t.Errorf("error %v is not a parse error", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseStructure_AccumulatesErrors(t *testing.T) {
	_, err := NewParser().WithSource("hero.yaml").ParseStructure([]string{"?", "uint", "array<", "}"}, nil)
	list, ok := err.(*markErrors.ErrorList)
	if !ok {
		t.Fatalf("error is %T, want *errors.ErrorList", err)
	}
	if list.Count() != 3 {
		t.Errorf("Count() = %d, want 3: %v", list.Count(), err)
	}
	if got := list.Errors[2].Location.String(); got != "hero.yaml:3" {
		t.Errorf("location = %q, want hero.yaml:3", got)
	}
}

func TestParseStructure_TokensRoundTrip(t *testing.T) {
	tokens := []string{"uint", "$ghost $strict [", "Int8?", "pair<str>", "]", "{", "enum<A|B>", "}"}
	first, err := ParseStructure(tokens, nil)
	if err != nil {
		t.Fatalf("ParseStructure() error = %v", err)
	}

	second, err := ParseStructure(first.Tokens(), nil)
	if err != nil {
		t.Fatalf("ParseStructure(Tokens()) error = %v", err)
	}
	if first.SchemaString() != second.SchemaString() {
		t.Errorf("SchemaString() %q != %q", first.SchemaString(), second.SchemaString())
	}
	if !reflect.DeepEqual(first.SchemaJSON(), second.SchemaJSON()) {
		t.Error("SchemaJSON changed across round trip")
	}
}

func TestParser_Limits(t *testing.T) {
	p := NewParser().WithMaxTokens(2)
	if _, err := p.ParseStructure([]string{"a", "b", "c"}, nil); err == nil {
		t.Error("expected token limit error")
	}

	p = NewParser().WithMaxDepth(2)
	if _, err := p.ParseMark("array<array<array<int>>>", nil); err == nil {
		t.Error("expected generic depth error")
	}
	if _, err := p.ParseStructure([]string{"[", "[", "[", "int"}, nil); err == nil {
		t.Error("expected structure depth error")
	}
	if _, err := p.ParseStructure([]string{"[", "int"}, nil); err != nil {
		t.Errorf("shallow structure error = %v", err)
	}
}

func TestParseSDM(t *testing.T) {
	tokens := []string{"{", "int", "str", "}", "uint"}
	sdm, err := ParseSDM(ast.KindObj, ast.NewDecorators("$ghost"), tokens, 1, nil)
	if err != nil {
		t.Fatalf("ParseSDM() error = %v", err)
	}
	if sdm.End != 3 || len(sdm.Children) != 2 {
		t.Errorf("sdm = [%d, %d) with %d children", sdm.Begin, sdm.End, len(sdm.Children))
	}
	if sdm.Implicit {
		t.Error("ParseSDM result should be explicit")
	}

	if _, err := ParseSDM(ast.KindObj, ast.Decorators{}, tokens, 9, nil); err == nil {
		t.Error("expected out-of-range error")
	}
}
