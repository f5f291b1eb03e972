package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mercator-hq/rowmark/pkg/mark/convertor"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
	"mercator-hq/rowmark/pkg/mark/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseDefinition_Marks(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want Marks
	}{
		{
			name: "single line",
			yaml: `marks: "uint, array<int|str>, {, str, }"`,
			want: Marks{"uint", "array<int|str>", "{", "str", "}"},
		},
		{
			name: "blank column kept",
			yaml: `marks: "uint, , str,"`,
			want: Marks{"uint", "", "str"},
		},
		{
			name: "sequence",
			yaml: "marks:\n  - uint\n  - ' str? '\n  - '$ghost {'\n  - '}'\n",
			want: Marks{"uint", "str?", "$ghost {", "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDefinition([]byte(tt.yaml), "")
			if err != nil {
				t.Fatalf("ParseDefinition() error = %v", err)
			}
			if !reflect.DeepEqual(def.Marks, tt.want) {
				t.Errorf("Marks = %q, want %q", def.Marks, tt.want)
			}
		})
	}
}

func TestParseDefinition_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing marks", "name: x\n", "at least one mark"},
		{"negative header rows", "marks: uint\nheader_rows: -1\n", "header_rows"},
		{"empty enum", "marks: uint\nenums:\n  E: {}\n", "enums.E"},
		{"marks mapping", "marks:\n  a: b\n", "string or a list"},
		{"enum not a mapping", "marks: uint\nenums:\n  E: [1, 2]\n", "must be a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDefinition([]byte(tt.yaml), "defs/x.yaml")
			if err == nil {
				t.Fatal("ParseDefinition() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseDefinition_SyntaxErrorIsDefinitionType(t *testing.T) {
	_, err := ParseDefinition([]byte("marks: [uint"), "bad.yaml")
	var markErr *markErrors.Error
	if !errors.As(err, &markErr) {
		t.Fatalf("error = %T %v, want *errors.Error", err, err)
	}
	if markErr.Type != markErrors.ErrorTypeDefinition {
		t.Errorf("Type = %s, want %s", markErr.Type, markErrors.ErrorTypeDefinition)
	}
	if markErr.Location.Source != "bad.yaml" {
		t.Errorf("Source = %q, want bad.yaml", markErr.Location.Source)
	}
}

func TestDefinition_CompileWithEnums(t *testing.T) {
	def, err := ParseDefinition([]byte(`
name: heroes
marks: "uint, enum<Element>"
enums:
  Element:
    Fire: 1
    Water: 2
`), "")
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}

	keys := make([]string, 0, len(def.Enums["Element"]))
	for _, entry := range def.Enums["Element"] {
		keys = append(keys, entry.Key)
	}
	if !reflect.DeepEqual(keys, []string{"Fire", "Water"}) {
		t.Errorf("enum keys = %v, want document order", keys)
	}

	schema, err := def.Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	res := schema.Validate([]interface{}{"3", "water"}, convertor.Options{})
	if !res.OK {
		t.Fatalf("Validate() errors = %v", res.Errors)
	}
	entries := res.Value.(convertor.Entries)
	if entries[0].Value != uint64(3) || entries[1].Value != 2 {
		t.Errorf("Value = %v, %v, want 3, 2", entries[0].Value, entries[1].Value)
	}
}

func TestDefinition_CompileReportsSource(t *testing.T) {
	def := &Definition{Marks: Marks{"uint", "}"}, Source: "defs/broken.yaml"}
	_, err := def.Compile(parser.NewParser())
	if err == nil {
		t.Fatal("Compile() expected error for stray closing bracket")
	}
	if !strings.Contains(err.Error(), "defs/broken.yaml") {
		t.Errorf("error = %q, want it to name the source", err.Error())
	}
}

func TestDefinition_CompileBlankMark(t *testing.T) {
	def, err := ParseDefinition([]byte(`marks: "uint, , str"`), "gaps.yaml")
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}
	_, err = def.Compile(nil)
	if !markErrors.IsParseError(err) {
		t.Fatalf("Compile() error = %v, want a parse error", err)
	}
	if !strings.Contains(err.Error(), "gaps.yaml:1") {
		t.Errorf("error = %q, want it located at token 1", err.Error())
	}
}

func TestDefinition_HelperDefaults(t *testing.T) {
	two := 2
	def := &Definition{
		Marks:      Marks{"uint", "{", "str", "}"},
		Labels:     []string{"id", "info"},
		HeaderRows: &two,
		Data:       "rows.csv",
		Source:     filepath.Join("defs", "heroes.yaml"),
	}

	if got := def.HeaderRowCount(1); got != 2 {
		t.Errorf("HeaderRowCount() = %d, want 2", got)
	}
	if got := (&Definition{}).HeaderRowCount(1); got != 1 {
		t.Errorf("HeaderRowCount() fallback = %d, want 1", got)
	}
	if got, want := def.DataPath(), filepath.Join("defs", "rows.csv"); got != want {
		t.Errorf("DataPath() = %q, want %q", got, want)
	}
	if got, want := def.ResolveLabels([]string{"x"}), []string{"id", "info", "", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveLabels() = %q, want %q", got, want)
	}

	def.Labels = nil
	if got, want := def.ResolveLabels([]string{" a ", "b"}), []string{"a", "b", "", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveLabels(header) = %q, want %q", got, want)
	}
}

func TestReadCSV(t *testing.T) {
	input := "id,name,info,age\n1, Hero,,30\n\n2,\"Mage, the\",,\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{HeaderRows: 1})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if got, want := table.Labels(), []string{"id", "name", "info", "age"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %q, want %q", got, want)
	}
	wantRows := [][]interface{}{
		{"1", "Hero", nil, "30"},
		{"2", "Mage, the", nil, nil},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("Rows = %#v, want %#v", table.Rows, wantRows)
	}
	if got, want := table.RowLabels(), []string{"line 2", "line 4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RowLabels() = %q, want %q", got, want)
	}
}

func TestReadCSV_Delimiters(t *testing.T) {
	input := "# comment\na\tb\n"
	table, err := ReadCSV(strings.NewReader(input), CSVOptions{Comma: '\t', Comment: '#'})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(table.Header) != 0 {
		t.Errorf("Header = %v, want none", table.Header)
	}
	if want := [][]interface{}{{"a", "b"}}; !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %#v, want %#v", table.Rows, want)
	}
}

func TestReadSheet(t *testing.T) {
	input := strings.Join([]string{
		"id,name,tags,,",
		"uint,str?,[,str,]",
		"1,Hero,,a,",
		"2,,,,",
	}, "\n")

	s, err := ReadSheet(strings.NewReader(input), "heroes", CSVOptions{})
	if err != nil {
		t.Fatalf("ReadSheet() error = %v", err)
	}
	if got, want := []string(s.Definition.Marks), []string{"uint", "str?", "[", "str", "]"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Marks = %q, want %q", got, want)
	}
	if got, want := s.Labels, []string{"id", "name", "tags", "", ""}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels = %q, want %q", got, want)
	}
	if len(s.Table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(s.Table.Rows))
	}

	desc := s.Descriptor()
	if desc.RowLabel(1) != "line 4" || desc.ColumnLabel(2) != "tags" {
		t.Errorf("Descriptor = %+v", desc)
	}

	schema, err := s.Definition.Compile(nil)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	res := schema.Validate(s.Table.Rows[0], convertor.Options{})
	if !res.OK {
		t.Fatalf("Validate() errors = %v", res.Errors)
	}
}

func TestReadSheet_MissingMarkRow(t *testing.T) {
	_, err := ReadSheet(strings.NewReader("id,name\n"), "x", CSVOptions{})
	if err == nil {
		t.Fatal("ReadSheet() expected error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "heroes.csv", "id,name\n1,Hero\n2,Mage\n")
	defPath := writeFile(t, dir, "heroes.yaml", "marks: uint, str\ndata: heroes.csv\n")

	s, err := Load(defPath, "", 1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Definition.Name != "heroes" {
		t.Errorf("Name = %q, want heroes", s.Definition.Name)
	}
	if got, want := s.Labels, []string{"id", "name"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels = %q, want %q", got, want)
	}
	if len(s.Table.Rows) != 2 {
		t.Errorf("len(Rows) = %d, want 2", len(s.Table.Rows))
	}

	tsv := writeFile(t, dir, "other.tsv", "1\tHero\n")
	s, err = Load(defPath, tsv, 0)
	if err != nil {
		t.Fatalf("Load(override) error = %v", err)
	}
	if want := [][]interface{}{{"1", "Hero"}}; !reflect.DeepEqual(s.Table.Rows, want) {
		t.Errorf("Rows = %#v, want %#v", s.Table.Rows, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	defPath := writeFile(t, dir, "nodata.yaml", "marks: uint\n")

	if _, err := Load(defPath, "", 1); err == nil || !strings.Contains(err.Error(), "no data file") {
		t.Errorf("Load() error = %v, want no data file", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml"), "", 1); err == nil {
		t.Error("Load() expected error for missing definition")
	}
	if _, err := Load(defPath, filepath.Join(dir, "missing.csv"), 1); err == nil {
		t.Error("Load() expected error for missing data")
	}
}
