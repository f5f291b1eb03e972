package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mercator-hq/rowmark/pkg/telemetry/logging"
	"mercator-hq/rowmark/pkg/telemetry/metrics"
)

// Trigger names what started a run.
type Trigger string

const (
	TriggerStartup    Trigger = "startup"
	TriggerFileChange Trigger = "file_change"
	TriggerSchedule   Trigger = "schedule"
	TriggerManual     Trigger = "manual"
)

// RunFunc performs one conversion.
type RunFunc func(ctx context.Context, trigger Trigger) error

// Config controls what re-runs a conversion.
type Config struct {
	// Files are watched for changes. Empty disables watching.
	Files []string

	// Debounce is the quiet period after the last file event.
	Debounce time.Duration

	// Schedule is a cron expression. Empty disables scheduling.
	Schedule string
}

// Status is the outcome of the most recent run.
type Status struct {
	Runs     int
	Trigger  Trigger
	Finished time.Time
	Duration time.Duration
	Err      error
}

// Runner re-runs a conversion on file changes and on a schedule. Runs never
// overlap: a trigger that arrives mid-run waits for the current one.
type Runner struct {
	config  Config
	run     RunFunc
	logger  *logging.Logger
	metrics *metrics.Collector

	runMu sync.Mutex

	mu     sync.RWMutex
	status Status
}

// NewRunner creates a runner for run.
func NewRunner(cfg Config, run RunFunc) *Runner {
	return &Runner{
		config: cfg,
		run:    run,
		logger: logging.Discard(),
	}
}

// WithLogger sets the logger.
func (r *Runner) WithLogger(logger *logging.Logger) *Runner {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithMetrics sets the metrics collector.
func (r *Runner) WithMetrics(c *metrics.Collector) *Runner {
	r.metrics = c
	return r
}

// Trigger runs the conversion once and records the outcome.
func (r *Runner) Trigger(ctx context.Context, trigger Trigger) error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.metrics.RecordTrigger(string(trigger))
	r.logger.DebugContext(ctx, "conversion triggered", "trigger", string(trigger))

	start := time.Now()
	err := r.run(ctx, trigger)

	r.mu.Lock()
	r.status = Status{
		Runs:     r.status.Runs + 1,
		Trigger:  trigger,
		Finished: time.Now(),
		Duration: time.Since(start),
		Err:      err,
	}
	r.mu.Unlock()

	if err != nil {
		r.logger.ErrorContext(ctx, "conversion failed", "trigger", string(trigger), "error", err)
	}
	return err
}

// Status returns the outcome of the most recent run.
func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// ErrNoRun is reported by HealthCheck before the first run finishes.
var ErrNoRun = errors.New("no conversion has run yet")

// HealthCheck reports the last run's error. It fits health.CheckFunc.
func (r *Runner) HealthCheck(ctx context.Context) error {
	status := r.Status()
	if status.Runs == 0 {
		return ErrNoRun
	}
	if status.Err != nil {
		return fmt.Errorf("last run (%s) failed: %w", status.Trigger, status.Err)
	}
	return nil
}

// Run performs a startup run, then re-runs on every configured trigger until
// ctx is cancelled. A failing run is logged and does not stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.config.Files) == 0 && r.config.Schedule == "" {
		return errors.New("watch needs files or a schedule")
	}

	_ = r.Trigger(ctx, TriggerStartup)

	if r.config.Schedule != "" {
		sched, err := NewScheduler(r.config.Schedule, r.logger)
		if err != nil {
			return err
		}
		job := func(ctx context.Context) { _ = r.Trigger(ctx, TriggerSchedule) }
		if err := sched.Start(ctx, job); err != nil {
			return err
		}
		defer sched.Stop()
	}

	if len(r.config.Files) == 0 {
		<-ctx.Done()
		return nil
	}

	fw, err := NewFileWatcher(r.config.Files, r.config.Debounce, r.logger)
	if err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	return fw.Watch(ctx, func(path string) {
		r.logger.InfoContext(ctx, "file changed, converting", "path", path)
		_ = r.Trigger(ctx, TriggerFileChange)
	})
}
