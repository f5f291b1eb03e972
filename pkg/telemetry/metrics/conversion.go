package metrics

import (
	"time"

	"mercator-hq/rowmark/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ConversionMetrics tracks conversion runs.
//
// Metrics:
//   - rowmark_convert_runs_total: runs by schema and status
//   - rowmark_convert_run_duration_seconds: run duration histogram
//   - rowmark_convert_rows_total: rows by schema and result
//   - rowmark_convert_field_errors_total: field errors by schema and message
//   - rowmark_convert_schema_compiles_total: schema compilations by result
//   - rowmark_convert_triggers_total: watched runs by trigger
//   - rowmark_convert_last_run_timestamp_seconds: end of the last run per schema
type ConversionMetrics struct {
	runsTotal     *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	rowsTotal     *prometheus.CounterVec
	fieldErrors   *prometheus.CounterVec
	compilesTotal *prometheus.CounterVec
	triggersTotal *prometheus.CounterVec
	lastRun       *prometheus.GaugeVec
}

// NewConversionMetrics creates and registers the conversion metrics.
func NewConversionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ConversionMetrics {
	cm := &ConversionMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of conversion runs",
			},
			[]string{"schema", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of conversion runs in seconds",
				Buckets:   cfg.RunDurationBuckets,
			},
			[]string{"schema"},
		),

		rowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rows_total",
				Help:      "Total number of rows converted",
			},
			[]string{"schema", "result"},
		),

		fieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "field_errors_total",
				Help:      "Total number of field validation errors",
			},
			[]string{"schema", "message"},
		),

		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "schema_compiles_total",
				Help:      "Total number of schema compilations",
			},
			[]string{"result"},
		),

		triggersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "triggers_total",
				Help:      "Total number of watched runs by trigger",
			},
			[]string{"trigger"},
		),

		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time at which the last run finished",
			},
			[]string{"schema"},
		),
	}

	registry.MustRegister(
		cm.runsTotal,
		cm.runDuration,
		cm.rowsTotal,
		cm.fieldErrors,
		cm.compilesTotal,
		cm.triggersTotal,
		cm.lastRun,
	)

	return cm
}

// RecordRun records a finished run.
func (cm *ConversionMetrics) RecordRun(schema, status string, duration time.Duration) {
	cm.runsTotal.WithLabelValues(schema, status).Inc()
	cm.runDuration.WithLabelValues(schema).Observe(duration.Seconds())
	cm.lastRun.WithLabelValues(schema).SetToCurrentTime()
}

// RecordRows adds passed and failed row counts.
func (cm *ConversionMetrics) RecordRows(schema string, passed, failed int) {
	if passed > 0 {
		cm.rowsTotal.WithLabelValues(schema, "passed").Add(float64(passed))
	}
	if failed > 0 {
		cm.rowsTotal.WithLabelValues(schema, "failed").Add(float64(failed))
	}
}

// RecordFieldError counts one field error.
func (cm *ConversionMetrics) RecordFieldError(schema, message string) {
	cm.fieldErrors.WithLabelValues(schema, message).Inc()
}

// RecordCompile counts one schema compilation.
func (cm *ConversionMetrics) RecordCompile(result string) {
	cm.compilesTotal.WithLabelValues(result).Inc()
}

// RecordTrigger counts one watched run.
func (cm *ConversionMetrics) RecordTrigger(trigger string) {
	cm.triggersTotal.WithLabelValues(trigger).Inc()
}
