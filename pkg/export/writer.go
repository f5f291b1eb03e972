package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteOptions control how a report is serialized.
type WriteOptions struct {
	// Indent is the JSON indentation. Empty writes compact JSON.
	Indent string

	// IncludeFailures writes {"run_id", "records", "failures"} instead of
	// the bare record array.
	IncludeFailures bool

	// Compression is the gzip level for ".gz" files; 0 means the default.
	Compression int
}

// document is the JSON layout used with IncludeFailures.
type document struct {
	RunID    string        `json:"run_id"`
	Schema   string        `json:"schema,omitempty"`
	Records  []interface{} `json:"records"`
	Failures []RowFailure  `json:"failures"`
}

// Write encodes the report to w. By default only the record array is
// written, with nil for failing rows.
func Write(w io.Writer, report *Report, opts WriteOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", opts.Indent)

	records := report.Records
	if records == nil {
		records = []interface{}{}
	}

	if !opts.IncludeFailures {
		return enc.Encode(records)
	}

	failures := report.Failures
	if failures == nil {
		failures = []RowFailure{}
	}
	return enc.Encode(document{
		RunID:    report.RunID,
		Schema:   report.Schema,
		Records:  records,
		Failures: failures,
	})
}

// WriteFile writes the report to path, gzip-compressed when the path ends
// in ".gz". A path of "-" writes to stdout.
func WriteFile(path string, report *Report, opts WriteOptions) (err error) {
	if path == "-" {
		return Write(os.Stdout, report, opts)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	buf := bufio.NewWriter(f)
	if err := writeMaybeCompressed(buf, path, report, opts); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return buf.Flush()
}

func writeMaybeCompressed(w io.Writer, path string, report *Report, opts WriteOptions) error {
	if !strings.HasSuffix(path, ".gz") {
		return Write(w, report, opts)
	}

	level := opts.Compression
	if level == 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return err
	}
	if err := Write(zw, report, opts); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
