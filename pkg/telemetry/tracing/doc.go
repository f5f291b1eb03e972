// Package tracing provides OpenTelemetry tracing for conversion runs.
//
// Each export run gets a "rowmark.export" span carrying the run ID, schema
// name and row totals. Failing rows are added as "row.failed" events.
// Spans are exported over OTLP gRPC.
//
// # Sampling Strategies
//
//   - always: Sample all runs (default)
//   - never: Sample nothing
//   - ratio: Sample a fraction of runs by trace ID
//
// # Usage
//
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "rowmark.export")
//	defer span.End()
//
// When tracing is disabled, New returns a tracer whose spans are noops.
package tracing
