package mark

import (
	"errors"
	"reflect"
	"testing"

	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/convertor"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
)

func TestCompile(t *testing.T) {
	ctx := &ast.Context{Enums: map[string]ast.EnumTable{
		"Element": {{Key: "FIRE", Value: 1}, {Key: "WATER", Value: 2}},
	}}
	schema, err := Compile([]string{"uint", "str", "enum<Element>", "$ghost [", "pair<uint>", "pair<uint>", "]"}, ctx)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if got, want := schema.String(), "{ uint, string, enum<Element>, $ghost [ pair<uint>, pair<uint> ] }"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	result := schema.Validate([]interface{}{"7", "hero", "water", nil, "hp:10", ""}, convertor.Options{})
	if !result.OK {
		t.Fatalf("Validate() failed: %v", result.Errors)
	}
	entries := result.Value.(convertor.Entries)
	if entries[2].Value != 2 {
		t.Errorf("enum = %#v, want 2", entries[2].Value)
	}

	_, err = schema.Convert([]interface{}{"x"}, convertor.Options{FailFast: true})
	if err == nil {
		t.Error("Convert() with fail-fast should return an error")
	}
}

func TestCompile_Errors(t *testing.T) {
	if _, err := Compile([]string{"uint {"}, nil); !markErrors.IsParseError(err) {
		t.Errorf("error = %v, want parse error", err)
	}

	_, err := NewCompiler().WithRegistry(convertor.NewRegistry()).Compile([]string{"uint"}, nil)
	if !markErrors.IsConstructionError(err) {
		t.Errorf("error = %v, want construction error", err)
	}

	_, err = Compile(SplitTokens("uint, , str"), nil)
	var list *markErrors.ErrorList
	if !errors.As(err, &list) || len(list.Errors) != 1 || list.Errors[0].Location.Token != 1 {
		t.Errorf("error = %v, want one syntax error at token 1", err)
	}
}

func TestCompile_EnumTokensRoundTrip(t *testing.T) {
	ctx := &ast.Context{Enums: map[string]ast.EnumTable{
		"Number": {{Key: "ONE", Value: 1}, {Key: "TWO", Value: 2}},
	}}
	tokens := []string{"enum<Number>", "enum<Fire|Object?>", "enum<Fire|Undefined>"}

	first, err := Compile(tokens, ctx)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := first.Root.Tokens(); !reflect.DeepEqual(got, tokens) {
		t.Fatalf("Tokens() = %q, want %q", got, tokens)
	}

	second, err := Compile(first.Root.Tokens(), ctx)
	if err != nil {
		t.Fatalf("Compile(Tokens()) error = %v", err)
	}

	row := []interface{}{"two", "object", ""}
	want := first.Validate(row, convertor.Options{})
	got := second.Validate(row, convertor.Options{})
	if !want.OK || !got.OK {
		t.Fatalf("Validate() ok = %v before and %v after the round trip: %v", want.OK, got.OK, got.Errors)
	}
	if !reflect.DeepEqual(got.Value, want.Value) {
		t.Errorf("Validate() = %#v after the round trip, want %#v", got.Value, want.Value)
	}
	if v := got.Value.(convertor.Entries)[0].Value; v != 2 {
		t.Errorf("enum<Number> = %#v, want 2", v)
	}
}

func TestParseMark(t *testing.T) {
	tdm, err := ParseMark("array<a|b>|c")
	if err != nil {
		t.Fatalf("ParseMark() error = %v", err)
	}
	if tdm.Seg.Len() != 2 {
		t.Errorf("len = %d, want 2", tdm.Seg.Len())
	}
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"uint, str", []string{"uint", "str"}},
		{"uint, $ghost {, pair<a,b>, }, ", []string{"uint", "$ghost {", "pair<a,b>", "}"}},
		{"  ", nil},
		{"uint, , str", []string{"uint", "", "str"}},
		{", uint", []string{"", "uint"}},
		{"uint,,", []string{"uint", ""}},
		{"uint, a>b, int, str", []string{"uint", "a>b", "int", "str"}},
		{"pair<a,b>>, int", []string{"pair<a,b>>", "int"}},
	}
	for _, tt := range tests {
		if got := SplitTokens(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTokens(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
