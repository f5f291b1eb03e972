package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/rowmark/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric recorded by rowmark and hides
// the label bookkeeping from callers. A disabled collector (or a nil one)
// accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	conversion *ConversionMetrics

	// Field error messages are user-controlled, so their label set is capped.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector registering into registry. If registry
// is nil a fresh one is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RunDurationBuckets) == 0 {
		cfg.RunDurationBuckets = append([]float64(nil), config.DefaultRunDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		conversion:         NewConversionMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordRun records a finished conversion run.
//
// Parameters:
//   - schema: sheet definition name
//   - status: "ok", "partial" (some rows failed) or "error" (aborted)
//   - duration: wall time of the run
func (c *Collector) RecordRun(schema, status string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordRun(schema, status, duration)
}

// RecordRows records how many rows passed and failed in a run.
func (c *Collector) RecordRows(schema string, passed, failed int) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordRows(schema, passed, failed)
}

// RecordFieldError records one field-level validation error.
// Messages beyond the cardinality limit are aggregated into "other".
func (c *Collector) RecordFieldError(schema, message string) {
	if !c.enabled() {
		return
	}
	if !c.cardinalityLimiter.Allow(fmt.Sprintf("field_error:%s:%s", schema, message)) {
		message = "other"
	}
	c.conversion.RecordFieldError(schema, message)
}

// RecordCompile records a schema compilation attempt.
//
// Parameters:
//   - result: "ok", "parse_error" or "construction_error"
func (c *Collector) RecordCompile(result string) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordCompile(result)
}

// RecordTrigger records why a watched conversion ran: "file", "schedule"
// or "initial".
func (c *Collector) RecordTrigger(trigger string) {
	if !c.enabled() {
		return
	}
	c.conversion.RecordTrigger(trigger)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct label sets recorded.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter allowing maxCardinality label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already known or still fits.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
