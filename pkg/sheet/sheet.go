package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mercator-hq/rowmark/pkg/export"
)

// Sheet is a definition paired with the data it describes.
type Sheet struct {
	Definition *Definition
	Labels     []string
	Table      *Table
}

// Descriptor returns row and column labels for failure reports.
func (s *Sheet) Descriptor() export.Descriptor {
	return export.Descriptor{
		Rows:    s.Table.RowLabels(),
		Columns: s.Labels,
	}
}

// Load reads a definition and its data file. dataPath overrides the path
// named in the definition. headerRows is used when the definition does not
// set header_rows.
func Load(defPath, dataPath string, headerRows int) (*Sheet, error) {
	def, err := LoadDefinition(defPath)
	if err != nil {
		return nil, err
	}
	return LoadData(def, dataPath, headerRows)
}

// LoadData reads the data file for an already loaded definition.
func LoadData(def *Definition, dataPath string, headerRows int) (*Sheet, error) {
	if dataPath == "" {
		dataPath = def.DataPath()
	}
	if dataPath == "" {
		return nil, fmt.Errorf("sheet %s: no data file given", def.displayName())
	}

	table, err := ReadCSVFile(dataPath, CSVOptions{
		Comma:      commaFor(dataPath),
		HeaderRows: def.HeaderRowCount(headerRows),
	})
	if err != nil {
		return nil, err
	}

	return &Sheet{
		Definition: def,
		Labels:     def.ResolveLabels(table.Labels()),
		Table:      table,
	}, nil
}

// ReadSheet reads a self-describing sheet: the first record holds labels,
// the second holds marks, and every later record is data.
func ReadSheet(r io.Reader, name string, opts CSVOptions) (*Sheet, error) {
	opts.HeaderRows = 2
	table, err := ReadCSV(r, opts)
	if err != nil {
		return nil, err
	}
	if len(table.Header) < 2 {
		return nil, errors.New("sheet needs a label row and a mark row")
	}

	def := &Definition{
		Name:   name,
		Marks:  markRow(table.Header[1]),
		Labels: table.Header[0],
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &Sheet{
		Definition: def,
		Labels:     def.ResolveLabels(nil),
		Table:      table,
	}, nil
}

// ReadSheetFile opens path and reads it with ReadSheet.
func ReadSheetFile(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer f.Close()

	s, err := ReadSheet(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), CSVOptions{Comma: commaFor(path)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Definition.Source = path
	return s, nil
}

// markRow trims the mark cells and drops trailing blanks. Blank cells in the
// middle are kept so that the parser reports them at their column.
func markRow(record []string) []string {
	marks := make([]string, len(record))
	for i, cell := range record {
		marks[i] = strings.TrimSpace(cell)
	}
	for len(marks) > 0 && marks[len(marks)-1] == "" {
		marks = marks[:len(marks)-1]
	}
	return marks
}

func commaFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}
