// Package watch re-runs a conversion when its inputs change or on a cron
// schedule.
//
// A Runner serializes runs, so a file change during a scheduled run waits
// for it to finish. The outcome of the last run is kept for health checks:
//
//	runner := watch.NewRunner(watch.Config{
//		Files:    []string{"heroes.yaml", "heroes.csv"},
//		Debounce: 250 * time.Millisecond,
//		Schedule: "0 * * * *",
//	}, convert).WithLogger(logger)
//	checker.RegisterCheck("last_run", runner.HealthCheck)
//	err := runner.Run(ctx)
package watch
