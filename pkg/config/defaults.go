package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxTokens = 4096
	DefaultParserMaxDepth  = 32

	// Convert defaults
	DefaultConvertHeaderRows = 1

	// Export defaults
	DefaultExportIndent      = "  "
	DefaultExportCompression = -1

	// Watch defaults
	DefaultWatchDebounce = 250 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "rowmark"
	DefaultMetricsSubsystem   = "convert"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "rowmark"
	DefaultTracingTimeout     = 10 * time.Second
)

// DefaultRunDurationBuckets are the run duration histogram buckets in seconds.
var DefaultRunDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for unset fields.
// Boolean fields default to false and are left untouched.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxTokens == 0 {
		cfg.Parser.MaxTokens = DefaultParserMaxTokens
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}

	// Convert defaults
	if cfg.Convert.HeaderRows == 0 {
		cfg.Convert.HeaderRows = DefaultConvertHeaderRows
	}

	// Export defaults
	if cfg.Export.Indent == "" {
		cfg.Export.Indent = DefaultExportIndent
	}
	if cfg.Export.Compression == 0 {
		cfg.Export.Compression = DefaultExportCompression
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(cfg)
}

func applyTelemetryDefaults(cfg *Config) {
	logging := &cfg.Telemetry.Logging
	if logging.Level == "" {
		logging.Level = DefaultLoggingLevel
	}
	if logging.Format == "" {
		logging.Format = DefaultLoggingFormat
	}

	metrics := &cfg.Telemetry.Metrics
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
	if metrics.Namespace == "" {
		metrics.Namespace = DefaultMetricsNamespace
	}
	if metrics.Subsystem == "" {
		metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(metrics.RunDurationBuckets) == 0 {
		metrics.RunDurationBuckets = append([]float64(nil), DefaultRunDurationBuckets...)
	}

	tracing := &cfg.Telemetry.Tracing
	if tracing.Sampler == "" {
		tracing.Sampler = DefaultTracingSampler
	}
	if tracing.SampleRatio == 0 {
		tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if tracing.ServiceName == "" {
		tracing.ServiceName = DefaultTracingServiceName
	}
	if tracing.Timeout == 0 {
		tracing.Timeout = DefaultTracingTimeout
	}
}
