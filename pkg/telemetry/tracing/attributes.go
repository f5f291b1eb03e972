package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on conversion spans.
const (
	AttrRunID       = attribute.Key("rowmark.run_id")
	AttrSchema      = attribute.Key("rowmark.schema")
	AttrSource      = attribute.Key("rowmark.source")
	AttrTokens      = attribute.Key("rowmark.schema.tokens")
	AttrRows        = attribute.Key("rowmark.rows")
	AttrRowsPassed  = attribute.Key("rowmark.rows.passed")
	AttrRowsFailed  = attribute.Key("rowmark.rows.failed")
	AttrRowLabel    = attribute.Key("rowmark.row")
	AttrFieldErrors = attribute.Key("rowmark.field_errors")
	AttrTrigger     = attribute.Key("rowmark.trigger")
)

// SetRunAttributes records what a conversion run works on.
func SetRunAttributes(span trace.Span, runID, schema, source string) {
	attrs := []attribute.KeyValue{AttrRunID.String(runID)}
	if schema != "" {
		attrs = append(attrs, AttrSchema.String(schema))
	}
	if source != "" {
		attrs = append(attrs, AttrSource.String(source))
	}
	span.SetAttributes(attrs...)
}

// SetResultAttributes records the row totals of a finished run.
func SetResultAttributes(span trace.Span, rows, passed, failed int) {
	span.SetAttributes(
		AttrRows.Int(rows),
		AttrRowsPassed.Int(passed),
		AttrRowsFailed.Int(failed),
	)
}

// AddRowFailure adds a span event for a failing row.
func AddRowFailure(span trace.Span, row string, errorCount int) {
	span.AddEvent("row.failed", trace.WithAttributes(
		AttrRowLabel.String(row),
		AttrFieldErrors.Int(errorCount),
	))
}
