package ast

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLookupTypeName(t *testing.T) {
	tests := []struct {
		alias string
		want  TypeName
	}{
		{"uint8", TypeUInt},
		{"UInt8", TypeUInt},
		{" @ ", TypeUInt},
		{"str", TypeString},
		{"Number", TypeFloat},
		{"count", TypeUFloat},
		{"long", TypeInt},
		{"onoff", TypeBoolean},
		{"dynamic", TypeAny},
		{"Array", TypeArray},
		{"pair", TypePair},
		{"enum", TypeEnum},
		{"undefined", TypeUndefined},
		{"Element", TypeNone},
		{"", TypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			if got := LookupTypeName(tt.alias); got != tt.want {
				t.Errorf("LookupTypeName(%q) = %q, want %q", tt.alias, got, tt.want)
			}
		})
	}
}

func TestTypeName_Kinds(t *testing.T) {
	if !TypeArray.IsTemplate() || !TypePair.IsTemplate() {
		t.Error("array and pair should be templates")
	}
	if TypeEnum.IsTemplate() {
		t.Error("enum should not be a template")
	}
	if !TypeEnum.IsEnum() {
		t.Error("enum should report IsEnum")
	}
	for _, name := range PlainTypeNames() {
		if name.IsTemplate() || name.IsEnum() {
			t.Errorf("%s listed as plain type", name)
		}
	}
}

func TestDecorators(t *testing.T) {
	d := NewDecorators("$ghost", "$custom", "$strict")

	if !d.Has(FlagGhost) || !d.Has(FlagStrict) {
		t.Errorf("flags not set: %q", d.String())
	}
	if d.Has(FlagOneOf) {
		t.Error("unexpected $oneof flag")
	}
	if !d.HasName("$custom") {
		t.Error("unknown decorator should be kept by name")
	}
	if d.String() != "$ghost $custom $strict" {
		t.Errorf("String() = %q", d.String())
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}

	names := d.Names()
	names[0] = "$mutated"
	if !d.HasName("$ghost") {
		t.Error("Names() should return a copy")
	}
}

func TestTSeg_SchemaString(t *testing.T) {
	elem := &TNode{Name: TypeNone, RawName: "Element"}
	tests := []struct {
		name string
		seg  TSeg
		want string
	}{
		{
			name: "single",
			seg:  TSeg{Nodes: []*TNode{NewTNode(TypeUInt)}},
			want: "uint",
		},
		{
			name: "optional",
			seg:  TSeg{Nodes: []*TNode{NewTNode(TypeUInt), NewTNode(TypeUndefined)}},
			want: "uint?",
		},
		{
			name: "lone undefined",
			seg:  TSeg{Nodes: []*TNode{NewTNode(TypeUndefined)}},
			want: "undefined",
		},
		{
			name: "generic",
			seg: TSeg{Nodes: []*TNode{
				{Name: TypeArray, RawName: "array", Args: TSeg{Nodes: []*TNode{NewTNode(TypeInt), NewTNode(TypeString)}}},
				NewTNode(TypeString),
			}},
			want: "array<int|string>|string",
		},
		{
			name: "enum members spelled like types",
			seg: TSeg{Nodes: []*TNode{{Name: TypeEnum, RawName: "enum", Args: TSeg{Nodes: []*TNode{
				{Name: TypeFloat, RawName: "Number"},
				{Name: TypeAny, RawName: "Object"},
				{Name: TypeUndefined},
			}}}}},
			want: "enum<Number|Object?>",
		},
		{
			name: "enum member named undefined",
			seg: TSeg{Nodes: []*TNode{{Name: TypeEnum, RawName: "enum", Args: TSeg{Nodes: []*TNode{
				{Name: TypeNone, RawName: "Fire"},
				{Name: TypeUndefined, RawName: "Undefined"},
			}}}}},
			want: "enum<Fire|Undefined>",
		},
		{
			name: "optional marker outside enum",
			seg:  TSeg{Nodes: []*TNode{NewTNode(TypeInt), {Name: TypeUndefined}}},
			want: "int?",
		},
		{
			name: "raw name kept",
			seg:  TSeg{Nodes: []*TNode{{Name: TypeEnum, RawName: "enum", Args: TSeg{Nodes: []*TNode{elem}}}}},
			want: "enum<Element>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.SchemaString(); got != tt.want {
				t.Errorf("SchemaString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func testTree() *SDM {
	// { uint, $ghost [ int, str? ] }
	inner := &SDM{
		Kind:       KindArr,
		Decorators: NewDecorators("$ghost"),
		Begin:      2,
		End:        4,
		Children: []Mark{
			&TDM{Seg: TSeg{Nodes: []*TNode{NewTNode(TypeInt)}}, Index: 2},
			&TDM{Seg: TSeg{Nodes: []*TNode{NewTNode(TypeString), NewTNode(TypeUndefined)}}, Index: 3},
		},
	}
	return &SDM{
		Kind:     KindObj,
		Begin:    0,
		End:      5,
		Implicit: true,
		Children: []Mark{
			&TDM{Seg: TSeg{Nodes: []*TNode{NewTNode(TypeUInt)}}, Index: 0},
			inner,
		},
	}
}

func TestSDM_Render(t *testing.T) {
	root := testTree()

	if got, want := root.SchemaString(), "{ uint, $ghost [ int, string? ] }"; got != want {
		t.Errorf("SchemaString() = %q, want %q", got, want)
	}

	wantTokens := []string{"uint", "$ghost [", "int", "string?", "]"}
	if got := root.Tokens(); !reflect.DeepEqual(got, wantTokens) {
		t.Errorf("Tokens() = %q, want %q", got, wantTokens)
	}

	if got := (&SDM{Kind: KindArr}).SchemaString(); got != "[ ]" {
		t.Errorf("empty SchemaString() = %q", got)
	}
}

func TestSDM_MarkInd(t *testing.T) {
	root := testTree()
	inner := root.Children[1]
	if inner.MarkType() != MarkTypeSDM {
		t.Fatalf("MarkType() = %v, want sdm", inner.MarkType())
	}
	if inner.MarkInd() != 2 {
		t.Errorf("MarkInd() = %d, want 2", inner.MarkInd())
	}

	json := root.SchemaJSON()
	if json["kind"] != "obj" {
		t.Errorf("kind = %v", json["kind"])
	}
	if got := json["fromTo"].([]int); got[0] != 0 || got[1] != 5 {
		t.Errorf("fromTo = %v", got)
	}
}

type countingVisitor struct {
	sdms, tdms, nodes int
}

func (v *countingVisitor) VisitSDM(*SDM) error     { v.sdms++; return nil }
func (v *countingVisitor) VisitTDM(*TDM) error     { v.tdms++; return nil }
func (v *countingVisitor) VisitTNode(*TNode) error { v.nodes++; return nil }

func TestWalk(t *testing.T) {
	root := testTree()
	v := &countingVisitor{}
	if err := Walk(root, v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if v.sdms != 2 || v.tdms != 3 || v.nodes != 4 {
		t.Errorf("counts = %+v, want 2 sdms, 3 tdms, 4 nodes", *v)
	}
	if got := len(root.Leaves()); got != 3 {
		t.Errorf("Leaves() = %d, want 3", got)
	}
}

func TestEnumTable_YAMLOrder(t *testing.T) {
	src := `
enums:
  Element:
    FIRE: 1
    WATER: [2, "aqua"]
    AIR: air
`
	var ctx Context
	if err := yaml.Unmarshal([]byte(src), &ctx); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	table, ok := ctx.Enum("Element")
	if !ok {
		t.Fatal("Element table missing")
	}
	keys := make([]string, len(table))
	for i, entry := range table {
		keys[i] = entry.Key
	}
	if want := []string{"FIRE", "WATER", "AIR"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	if got := table[1].Canonical(); got != 2 {
		t.Errorf("Canonical() = %v, want 2", got)
	}

	var nilCtx *Context
	if _, ok := nilCtx.Enum("Element"); ok {
		t.Error("nil context should not resolve enums")
	}
}

func TestEnumEntry_Canonical(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"scalar", 3, 3},
		{"nil", nil, nil},
		{"yaml list", []interface{}{2, "alt"}, 2},
		{"string slice", []string{"red", "crimson"}, "red"},
		{"int slice", []int{7, 8}, 7},
		{"array", [2]float64{1.5, 2}, 1.5},
		{"empty slice", []string{}, nil},
		{"string", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (EnumEntry{Key: "k", Value: tt.value}).Canonical(); got != tt.want {
				t.Errorf("Canonical() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEnumTable_RejectsSequence(t *testing.T) {
	var ctx Context
	err := yaml.Unmarshal([]byte("enums:\n  Bad: [1, 2]\n"), &ctx)
	if err == nil {
		t.Fatal("expected error for sequence enum table")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{NoLocation, "<marks>"},
		{Location{Source: "s.yaml", Token: 3}, "s.yaml:3"},
		{Location{Token: 2, Column: 7}, "<marks>:2:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
