package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mercator-hq/rowmark/pkg/telemetry/logging"

	"github.com/robfig/cron/v3"
)

// Scheduler calls back on a standard five-field cron schedule.
//
// Common expressions:
//   - "*/15 * * * *" - every 15 minutes
//   - "0 3 * * *"    - daily at 3 AM
//   - "@hourly"      - at the start of every hour
type Scheduler struct {
	schedule string
	cron     *cron.Cron
	logger   *logging.Logger
	mu       sync.Mutex
	running  bool
}

// NewScheduler validates schedule and creates a scheduler for it.
func NewScheduler(schedule string, logger *logging.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}, nil
}

// Start runs job on every tick until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context, job func(context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { job(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule conversion: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled tick, or nil when not running.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if !s.running || len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
