// Package telemetry groups the observability packages used by rowmark.
//
// # Components
//
//   - logging: Structured logging built on log/slog
//   - metrics: Prometheus metrics for conversion runs
//   - tracing: OpenTelemetry spans for conversion runs
//   - health: Liveness and readiness endpoints for watch mode
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
package telemetry
