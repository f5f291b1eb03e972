package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mercator-hq/rowmark/pkg/mark"
	"mercator-hq/rowmark/pkg/mark/convertor"
	"mercator-hq/rowmark/pkg/telemetry/logging"
	"mercator-hq/rowmark/pkg/telemetry/metrics"
	"mercator-hq/rowmark/pkg/telemetry/tracing"

	"github.com/google/uuid"
)

// Run statuses reported to metrics.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusError   = "error"
)

// RowError is returned when a run stops at a failing row (fail-fast mode).
type RowError struct {
	Row   int
	Label string
	Err   error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %s failed: %v", e.Label, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Progress receives row counts while a run is in flight.
type Progress interface {
	Start(total int64)
	Update(current int64)
	Finish()
}

// Exporter converts rows with a schema and shapes the results into plain
// records. It is safe for concurrent use once configured.
type Exporter struct {
	schema   *mark.Schema
	labels   []string
	desc     Descriptor
	name     string
	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	progress Progress

	failFast  bool
	maxErrors int
}

// NewExporter creates an exporter for schema. labels[i] is the key used
// for the object member at label index i; it is usually the header row.
func NewExporter(schema *mark.Schema, labels []string) *Exporter {
	return &Exporter{
		schema: schema,
		labels: labels,
		logger: logging.Discard(),
	}
}

// WithName sets the schema name used in logs, metrics and spans.
func (e *Exporter) WithName(name string) *Exporter {
	e.name = name
	return e
}

// WithDescriptor sets the row and column names used in failure reports.
func (e *Exporter) WithDescriptor(desc Descriptor) *Exporter {
	e.desc = desc
	return e
}

// WithLogger sets the logger. Failing rows are logged at warn level.
func (e *Exporter) WithLogger(logger *logging.Logger) *Exporter {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// WithMetrics sets the metrics collector.
func (e *Exporter) WithMetrics(c *metrics.Collector) *Exporter {
	e.metrics = c
	return e
}

// WithTracer sets the tracer used for the run span.
func (e *Exporter) WithTracer(t *tracing.Tracer) *Exporter {
	e.tracer = t
	return e
}

// WithProgress reports the number of converted rows to p.
func (e *Exporter) WithProgress(p Progress) *Exporter {
	e.progress = p
	return e
}

// WithFailFast stops the run at the first failing row.
func (e *Exporter) WithFailFast(failFast bool) *Exporter {
	e.failFast = failFast
	return e
}

// WithMaxErrors caps the field errors kept per failing row. 0 keeps all.
func (e *Exporter) WithMaxErrors(n int) *Exporter {
	e.maxErrors = n
	return e
}

// Export converts every row. Failing rows are recorded in the report and
// leave nil in their record slot; the run goes on unless fail-fast is set.
//
// An error is returned when the run cannot finish: the context is done, a
// row failed in fail-fast mode (*RowError), or a record could not be
// shaped (*KeyError). The partial report is returned alongside it.
func (e *Exporter) Export(ctx context.Context, rows [][]interface{}) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Schema:  e.name,
		Records: make([]interface{}, len(rows)),
		Started: time.Now(),
	}

	ctx = logging.WithRunID(ctx, report.RunID)
	if e.name != "" {
		ctx = logging.WithSchema(ctx, e.name)
	}
	ctx, span := e.tracer.Start(ctx, "rowmark.export")
	defer span.End()
	tracing.SetRunAttributes(span, report.RunID, e.name, logging.GetSource(ctx))
	if traceID := tracing.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
	}

	e.logger.DebugContext(ctx, "export started", "rows", len(rows))

	err := e.run(ctx, rows, report)

	report.Duration = time.Since(report.Started)
	tracing.SetResultAttributes(span, len(rows), report.Passed(), report.Failed())
	tracing.SetStatus(span, err)
	e.metrics.RecordRows(e.name, report.Passed(), report.Failed())

	status := StatusOK
	switch {
	case err != nil:
		status = StatusError
		e.logger.ErrorContext(ctx, "export aborted", "error", err, "summary", report.Summary())
	case !report.OK():
		status = StatusPartial
		e.logger.WarnContext(ctx, "export finished with failures", "summary", report.Summary())
	default:
		e.logger.InfoContext(ctx, "export finished", "summary", report.Summary(), "duration", report.Duration)
	}
	e.metrics.RecordRun(e.name, status, report.Duration)

	return report, err
}

func (e *Exporter) run(ctx context.Context, rows [][]interface{}, report *Report) error {
	_, span := e.tracer.Start(ctx, "rowmark.export.rows")
	defer span.End()

	if e.progress != nil {
		e.progress.Start(int64(len(rows)))
		defer e.progress.Finish()
	}

	b := builder{labels: e.labels, desc: e.desc}
	for i, row := range rows {
		if e.progress != nil && i > 0 {
			e.progress.Update(int64(i))
		}
		if err := ctx.Err(); err != nil {
			report.Records = report.Records[:i]
			return err
		}

		result, err := e.schema.Convert(row, convertor.Options{FailFast: e.failFast})
		if !result.OK {
			failure := e.failure(ctx, i, result.Errors)
			report.Failures = append(report.Failures, failure)
			tracing.AddRowFailure(span, failure.Label, len(result.Errors))

			var ff *convertor.FailFastError
			if errors.As(err, &ff) {
				report.Records = report.Records[:i+1]
				return &RowError{Row: i, Label: failure.Label, Err: err}
			}
			continue
		}

		if result.Value == nil {
			continue
		}
		entries, ok := result.Value.(convertor.Entries)
		if !ok {
			report.Records = report.Records[:i]
			return fmt.Errorf("row %s: unexpected value %T", e.desc.RowLabel(i), result.Value)
		}
		record, err := b.build(e.schema.Root, entries)
		if err != nil {
			report.Records = report.Records[:i]
			return fmt.Errorf("row %s: %w", e.desc.RowLabel(i), err)
		}
		report.Records[i] = record
	}
	return nil
}

func (e *Exporter) failure(ctx context.Context, i int, errs []*convertor.ConvertError) RowFailure {
	failure := RowFailure{
		Row:    i,
		Label:  e.desc.RowLabel(i),
		Errors: fieldErrors(e.schema.Root, errs, e.desc, e.maxErrors),
	}

	messages := make([]string, len(failure.Errors))
	for j, fe := range failure.Errors {
		messages[j] = fe.String()
		e.metrics.RecordFieldError(e.name, fe.Message)
	}
	e.logger.WarnContext(ctx, "row failed", "row", failure.Label, "errors", messages)

	for _, fe := range failure.Errors {
		e.logger.DebugContext(ctx, "field error", "row", failure.Label, "column", fe.Column, "path", fe.Path, "raw", fe.Raw)
	}
	return failure
}
