package logging

import "context"

type contextKey string

const (
	// RunIDKey is the context key for conversion run IDs.
	RunIDKey contextKey = "run_id"

	// SchemaKey is the context key for the schema (sheet definition) name.
	SchemaKey contextKey = "schema"

	// SourceKey is the context key for the data source path.
	SourceKey contextKey = "source"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	return stringValue(ctx, RunIDKey)
}

// WithSchema adds a schema name to the context.
func WithSchema(ctx context.Context, schema string) context.Context {
	return context.WithValue(ctx, SchemaKey, schema)
}

// GetSchema retrieves the schema name from the context.
func GetSchema(ctx context.Context) string {
	return stringValue(ctx, SchemaKey)
}

// WithSource adds a data source path to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the data source path from the context.
func GetSource(ctx context.Context) string {
	return stringValue(ctx, SourceKey)
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	return stringValue(ctx, TraceIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// extractContextFields returns the known fields in ctx as key/value args.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range []contextKey{RunIDKey, SchemaKey, SourceKey, TraceIDKey} {
		if v := stringValue(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}
