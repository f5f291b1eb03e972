package export

import (
	"fmt"
	"strings"
	"time"

	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/convertor"
	"mercator-hq/rowmark/pkg/mark/lint"
)

// Descriptor names rows and columns in failure reports.
// Missing names fall back to "ROW:i" and "COL:i".
type Descriptor struct {
	Rows    []string
	Columns []string
}

// RowLabel returns the name of row i.
func (d Descriptor) RowLabel(i int) string {
	if i >= 0 && i < len(d.Rows) && d.Rows[i] != "" {
		return d.Rows[i]
	}
	return fmt.Sprintf("ROW:%d", i)
}

// ColumnLabel returns the name of column i.
func (d Descriptor) ColumnLabel(i int) string {
	if i >= 0 && i < len(d.Columns) && d.Columns[i] != "" {
		return d.Columns[i]
	}
	return fmt.Sprintf("COL:%d", i)
}

// FieldError is one validation error of a failing row.
type FieldError struct {
	Column  string      `json:"column,omitempty"` // Label of the leaf column
	Path    string      `json:"path"`             // Path with column labels substituted
	Message string      `json:"message"`
	Raw     interface{} `json:"raw,omitempty"`
}

// String renders the error as "path: message".
func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// RowFailure lists the errors of one failing row.
type RowFailure struct {
	Row    int          `json:"row"`
	Label  string       `json:"label"`
	Errors []FieldError `json:"errors"`
}

// Report is the outcome of one export run. Records has one slot per input
// row; failing rows leave nil in their slot.
type Report struct {
	RunID    string        `json:"run_id"`
	Schema   string        `json:"schema,omitempty"`
	Records  []interface{} `json:"records"`
	Failures []RowFailure  `json:"failures,omitempty"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
}

// Failed returns the number of failing rows.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// Passed returns the number of rows that converted.
func (r *Report) Passed() int {
	return len(r.Records) - len(r.Failures)
}

// OK reports whether every row converted.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d rows, %d passed, %d failed", len(r.Records), r.Passed(), r.Failed())
}

// fieldErrors converts convertor errors, naming each structural step by
// its column label. Steps below a leaf (array items, pair members) are kept
// as they are.
func fieldErrors(root *ast.SDM, errs []*convertor.ConvertError, desc Descriptor, limit int) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		if limit > 0 && len(out) >= limit {
			break
		}
		column, path := describePath(root, e.Path, desc)
		out = append(out, FieldError{
			Column:  column,
			Path:    path,
			Message: e.Message,
			Raw:     e.Raw,
		})
	}
	return out
}

func describePath(root *ast.SDM, path convertor.Path, desc Descriptor) (string, string) {
	parts := make([]string, 0, len(path))
	column := ""
	current := root

	for _, step := range path {
		if current == nil || step.IsKey {
			parts = append(parts, step.String())
			continue
		}

		var next ast.Mark
		for _, child := range current.Children {
			if child.MarkInd() == step.Index {
				next = child
				break
			}
		}

		switch mark := next.(type) {
		case *ast.SDM:
			parts = append(parts, desc.ColumnLabel(lint.LabelIndex(mark)))
			current = mark
		case *ast.TDM:
			column = desc.ColumnLabel(mark.Index)
			parts = append(parts, column)
			current = nil
		default:
			parts = append(parts, step.String())
			current = nil
		}
	}

	return column, strings.Join(parts, ".")
}
