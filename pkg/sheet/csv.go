package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVOptions controls how a data file is read.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// Comment starts a comment line when non-zero.
	Comment rune

	// HeaderRows is the number of leading records kept as header instead
	// of data. The first header record supplies default labels.
	HeaderRows int
}

// Table is a data file split into header records and flat rows.
type Table struct {
	Header [][]string
	Rows   [][]interface{}

	// Lines holds the 1-based file line each row started on.
	Lines []int
}

// Labels returns the first header record, or nil without a header.
func (t *Table) Labels() []string {
	if len(t.Header) == 0 {
		return nil
	}
	return t.Header[0]
}

// RowLabels names each row by its line in the file.
func (t *Table) RowLabels() []string {
	labels := make([]string, len(t.Lines))
	for i, line := range t.Lines {
		labels[i] = fmt.Sprintf("line %d", line)
	}
	return labels
}

// ReadCSV reads delimited records into a Table. Blank cells become nil so
// that optional marks treat them as absent; other cells stay strings and
// are coerced by the schema.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}

	table := &Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}

		if len(table.Header) < opts.HeaderRows {
			table.Header = append(table.Header, record)
			continue
		}

		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, flatRow(record))
		table.Lines = append(table.Lines, line)
	}
	return table, nil
}

// ReadCSVFile opens path and reads it with ReadCSV. A path of "-" reads
// standard input.
func ReadCSVFile(path string, opts CSVOptions) (*Table, error) {
	if path == "-" {
		return ReadCSV(os.Stdin, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func flatRow(record []string) []interface{} {
	row := make([]interface{}, len(record))
	for i, cell := range record {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		row[i] = cell
	}
	return row
}
