package logging

import (
	"testing"

	"mercator-hq/rowmark/pkg/config"
)

func TestRedactor_RedactString(t *testing.T) {
	r, err := NewRedactor(nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "email", input: "contact bob@example.com", want: "contact ***@***"},
		{name: "phone", input: "call 555-123-4567", want: "call ***-***-****"},
		{name: "ssn", input: "ssn 123-45-6789", want: "ssn ***-**-****"},
		{name: "card", input: "4111 1111 1111 1111", want: "****-****-****-****"},
		{name: "plain", input: "Hero", want: "Hero"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_CustomPattern(t *testing.T) {
	r, err := NewRedactor([]config.RedactPattern{
		{Name: "hero", Pattern: `Hero\d+`, Replacement: "Hero#"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := r.RedactString("Hero42 joined"); got != "Hero# joined" {
		t.Errorf("unexpected redaction: %q", got)
	}
}

func TestRedactor_RedactValue(t *testing.T) {
	r, _ := NewRedactor(nil)

	got := r.RedactValue([]any{"a@b.io", 7})
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected list, got %#v", got)
	}
	if list[0] != "***@***" || list[1] != 7 {
		t.Errorf("unexpected list: %#v", list)
	}

	args := r.RedactArgs("raw", "a@b.io", "row")
	if args[1] != "***@***" || args[2] != "row" {
		t.Errorf("unexpected args: %#v", args)
	}
}
