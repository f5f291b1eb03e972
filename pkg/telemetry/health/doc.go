// Package health provides liveness and readiness endpoints for the
// long-running rowmark commands (watch and schedule modes).
//
// # Endpoints
//
//   - /health: Liveness probe, always ok while the process runs
//   - /ready: Readiness probe, runs the registered checks
//   - /version: Build information
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("last_run", func(ctx context.Context) error {
//	    return lastRunErr()
//	})
//
//	r := chi.NewRouter()
//	checker.Mount(r, health.VersionInfo{Version: version})
package health
