package health

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Overall states reported by Checker.
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusFailing  = "failing"
)

// CheckFunc reports whether a component is healthy. It returns nil when it is.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"` // "ok" or "failing"
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Status is the body of the health endpoints.
type Status struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime,omitempty"`
	Checks    []CheckResult `json:"checks,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Checker runs the readiness checks of a long-running command, such as
// "the last watched conversion succeeded". Checks run one after another in
// registration order.
type Checker struct {
	mu      sync.RWMutex
	checks  []namedCheck
	started time.Time
	timeout time.Duration
}

// ErrCheckTimeout is reported when a check does not finish in time.
var ErrCheckTimeout = errors.New("health check timeout")

// New creates a checker. A zero timeout means 5 seconds per check.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{started: time.Now(), timeout: timeout}
}

// RegisterCheck adds check under name. Registering an existing name
// replaces the check in place.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.checks {
		if c.checks[i].name == name {
			c.checks[i].check = check
			return
		}
	}
	c.checks = append(c.checks, namedCheck{name: name, check: check})
}

// ListChecks returns the registered check names in registration order.
func (c *Checker) ListChecks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.checks))
	for i, nc := range c.checks {
		names[i] = nc.name
	}
	return names
}

// CheckLiveness reports that the process is running and for how long.
func (c *Checker) CheckLiveness(ctx context.Context) Status {
	return Status{
		Status:    StatusOK,
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now(),
	}
}

// CheckReadiness runs every registered check. The result is not_ready when
// any check fails.
func (c *Checker) CheckReadiness(ctx context.Context) Status {
	c.mu.RLock()
	checks := append([]namedCheck(nil), c.checks...)
	c.mu.RUnlock()

	status := Status{Status: StatusReady, Checks: make([]CheckResult, 0, len(checks))}
	for _, nc := range checks {
		result := c.run(ctx, nc)
		if result.Status != StatusOK {
			status.Status = StatusNotReady
		}
		status.Checks = append(status.Checks, result)
	}
	status.Timestamp = time.Now()
	return status
}

func (c *Checker) run(ctx context.Context, nc namedCheck) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := CheckResult{Name: nc.name, Status: StatusOK}
	start := time.Now()

	done := make(chan error, 1)
	go func() { done <- nc.check(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ErrCheckTimeout
	}

	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusFailing
		result.Message = err.Error()
	}
	return result
}
