// Package metrics provides Prometheus metrics for conversion runs.
//
// # Metrics
//
// All metrics are prefixed with the configured namespace and subsystem
// (rowmark_convert_ by default):
//
//   - runs_total{schema,status}
//   - run_duration_seconds{schema}
//   - rows_total{schema,result}
//   - field_errors_total{schema,message}
//   - schema_compiles_total{result}
//   - triggers_total{trigger}
//   - last_run_timestamp_seconds{schema}
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordRun("heroes", "ok", time.Since(start))
//
//	srv := metrics.NewServer(":9090", "/metrics", collector, checker, info)
//	addr, err := srv.Start()
//
// A nil *Collector is valid and records nothing.
package metrics
