package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"mercator-hq/rowmark/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "json", config: Config{Level: "info", Format: "json"}},
		{name: "text", config: Config{Level: "debug", Format: "text"}},
		{name: "console", config: Config{Level: "warn", Format: "console"}},
		{name: "defaults", config: Config{}},
		{name: "invalid level", config: Config{Level: "loud"}, wantErr: true},
		{name: "invalid format", config: Config{Format: "xml"}, wantErr: true},
		{
			name: "invalid redact pattern",
			config: Config{
				RedactValues:   true,
				RedactPatterns: []config.RedactPattern{{Name: "bad", Pattern: "("}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithSchema(ctx, "heroes")
	logger.InfoContext(ctx, "run finished", "records", 2)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if record["run_id"] != "run-1" {
		t.Errorf("expected run_id, got %v", record["run_id"])
	}
	if record["schema"] != "heroes" {
		t.Errorf("expected schema, got %v", record["schema"])
	}
	if record["records"] != float64(2) {
		t.Errorf("expected records 2, got %v", record["records"])
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Config{Format: "text", Writer: &buf})

	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("empty context should return the same logger")
	}

	logger.WithContext(WithSource(context.Background(), "data.csv")).Info("read")
	if !strings.Contains(buf.String(), "source=data.csv") {
		t.Errorf("expected source field: %s", buf.String())
	}
}

func TestLogger_ConsoleOmitsTime(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Config{Format: "console", Writer: &buf})
	logger.Info("hello")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console format should not print time: %s", buf.String())
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Config{Format: "text", RedactValues: true, Writer: &buf})

	logger.Warn("row failed", "raw", "bob@example.com", "count", 3)

	out := buf.String()
	if strings.Contains(out, "bob@example.com") {
		t.Errorf("email should be redacted: %s", out)
	}
	if !strings.Contains(out, "count=3") {
		t.Errorf("non-string values should pass through: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	if logger.Enabled(0) {
		t.Error("discard logger should not be enabled")
	}
}
