package config

import "time"

// Config is the root configuration structure for rowmark.
// It contains the settings for the schema parser, row conversion, export
// output, file watching and telemetry.
type Config struct {
	// Parser contains limits applied while parsing schema marks.
	Parser ParserConfig `yaml:"parser"`

	// Convert contains row conversion settings.
	Convert ConvertConfig `yaml:"convert"`

	// Export contains settings for the records written after conversion.
	Export ExportConfig `yaml:"export"`

	// Watch contains settings for re-running conversions when inputs change
	// or on a schedule.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains limits for the schema mark parser.
type ParserConfig struct {
	// MaxTokens is the largest token list a schema may have.
	// Default: 4096
	MaxTokens int `yaml:"max_tokens"`

	// MaxDepth is the deepest nesting allowed for both generic type
	// arguments and structures.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`
}

// ConvertConfig contains row conversion settings.
type ConvertConfig struct {
	// FailFast aborts a run at the first failing row.
	// Default: false
	FailFast bool `yaml:"fail_fast"`

	// HeaderRows is the number of leading data rows skipped when the sheet
	// definition does not say otherwise.
	// Default: 1
	HeaderRows int `yaml:"header_rows"`

	// MaxErrorsPerRow caps the field errors kept per failing row in a report.
	// 0 keeps all of them.
	// Default: 0
	MaxErrorsPerRow int `yaml:"max_errors_per_row"`
}

// ExportConfig contains settings for exported records.
type ExportConfig struct {
	// Indent is the JSON indentation string. Empty writes compact JSON.
	// Default: "  "
	Indent string `yaml:"indent"`

	// Compression is the gzip level used for ".gz" outputs (1-9, or -1 for
	// the library default).
	// Default: -1
	Compression int `yaml:"compression"`

	// IncludeFailures writes the failure list next to the records.
	// Default: false
	IncludeFailures bool `yaml:"include_failures"`
}

// WatchConfig contains settings for re-running conversions.
type WatchConfig struct {
	// Debounce is how long to wait after a file event before re-running.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic runs.
	// Example: "*/5 * * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactValues masks personal data (emails, phone numbers, card
	// numbers) found in cell values before they are logged.
	// Default: false
	RedactValues bool `yaml:"redact_values"`

	// RedactPatterns contains custom redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address of the metrics server. Empty disables
	// the server while still collecting metrics.
	// Example: "127.0.0.1:9090"
	Address string `yaml:"address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "rowmark"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "convert"
	Subsystem string `yaml:"subsystem"`

	// RunDurationBuckets defines histogram buckets for run duration (seconds).
	// Default: [0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30]
	RunDurationBuckets []float64 `yaml:"run_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "rowmark"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
