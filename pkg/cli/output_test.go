package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

type diagTable [][]string

func (d diagTable) Header() []string { return []string{"token", "message"} }
func (d diagTable) Rows() [][]string { return d }

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewFormatter(FormatText).FormatTo(buf, "uint, str"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "uint, str\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	data := map[string]interface{}{"kind": "obj", "children": []int{1, 2}}
	if err := NewFormatter(FormatJSON).FormatTo(buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["kind"] != "obj" {
		t.Errorf("kind = %v, want obj", decoded["kind"])
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Error("expected indented output")
	}
}

func TestCSVFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	data := diagTable{{"2", "unknown type \"strr\""}, {"5", "stray, bracket"}}
	if err := NewFormatter(FormatCSV).FormatTo(buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	expected := "token,message\n2,\"unknown type \"\"strr\"\"\"\n5,\"stray, bracket\"\n"
	if buf.String() != expected {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), expected)
	}
}

func TestCSVFormatter_NotTabular(t *testing.T) {
	if err := NewFormatter(FormatCSV).FormatTo(&bytes.Buffer{}, 42); err == nil {
		t.Error("expected error for non-tabular data")
	}
}
