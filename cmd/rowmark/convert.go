package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"mercator-hq/rowmark/pkg/cli"
	"mercator-hq/rowmark/pkg/config"
	"mercator-hq/rowmark/pkg/export"
	"mercator-hq/rowmark/pkg/telemetry/health"
	"mercator-hq/rowmark/pkg/telemetry/logging"
	"mercator-hq/rowmark/pkg/telemetry/metrics"
	"mercator-hq/rowmark/pkg/telemetry/tracing"
	"mercator-hq/rowmark/pkg/watch"

	"github.com/spf13/cobra"
)

var convertFlags struct {
	source          sourceFlags
	out             string
	failFast        bool
	includeFailures bool
	progress        bool
	quiet           bool
	watch           bool
	schedule        string
	metricsAddr     string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Validate rows and write them as JSON records",
	Long: `Validate every data row against the schema and write the converted records.

Records are written as a JSON array with null for rows that failed. Failing
rows are listed on stderr with their row and column labels. The exit status
is 3 when any row failed.

With --watch the conversion re-runs whenever the definition or the data file
changes, and with --schedule it also re-runs on a cron schedule. Metrics and
health endpoints are served on --metrics-addr while watching.

Examples:
  # Convert to stdout
  rowmark convert --schema heroes.yaml

  # Compressed output with a failure section
  rowmark convert --sheet heroes.csv --out heroes.json.gz --include-failures

  # Stop at the first failing row
  rowmark convert --schema heroes.yaml --data today.csv --fail-fast

  # Keep the output current
  rowmark convert --schema heroes.yaml --out heroes.json --watch --schedule "@hourly"`,
	RunE: convertRows,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertFlags.source.register(convertCmd, true)
	convertCmd.Flags().StringVarP(&convertFlags.out, "out", "o", "-", "output file, \"-\" for stdout, \".gz\" to compress")
	convertCmd.Flags().BoolVar(&convertFlags.failFast, "fail-fast", false, "stop at the first failing row")
	convertCmd.Flags().BoolVar(&convertFlags.includeFailures, "include-failures", false, "write {run_id, records, failures} instead of the bare records")
	convertCmd.Flags().BoolVar(&convertFlags.progress, "progress", false, "draw a progress bar on stderr")
	convertCmd.Flags().BoolVarP(&convertFlags.quiet, "quiet", "q", false, "do not list failing rows")
	convertCmd.Flags().BoolVarP(&convertFlags.watch, "watch", "w", false, "re-run when the inputs change")
	convertCmd.Flags().StringVar(&convertFlags.schedule, "schedule", "", "re-run on a cron schedule (implies --watch)")
	convertCmd.Flags().StringVar(&convertFlags.metricsAddr, "metrics-addr", "", "serve /metrics and health endpoints on this address")
}

func convertRows(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig()
	applyConvertFlags(cfg)
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	job := &convertJob{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		tracer:  tracer,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}

	if !convertFlags.watch && cfg.Watch.Schedule == "" {
		return job.run(ctx)
	}
	return job.watch(ctx)
}

// applyConvertFlags layers the convert flags over the configuration.
func applyConvertFlags(cfg *config.Config) {
	if convertFlags.failFast {
		cfg.Convert.FailFast = true
	}
	if convertFlags.includeFailures {
		cfg.Export.IncludeFailures = true
	}
	if convertFlags.schedule != "" {
		cfg.Watch.Schedule = convertFlags.schedule
	}
	if convertFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.Address = convertFlags.metricsAddr
	}
}

// convertJob performs one conversion per call to run.
type convertJob struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	out     io.Writer
	errOut  io.Writer
}

func (j *convertJob) run(ctx context.Context) error {
	s, err := convertFlags.source.load(j.cfg)
	if err != nil {
		return err
	}

	def := s.Definition
	schema, err := compile(def, j.cfg, j.metrics)
	if err != nil {
		return err
	}

	if def.Source != "" {
		ctx = logging.WithSource(ctx, def.Source)
	}

	exporter := export.NewExporter(schema, s.Labels).
		WithName(def.Name).
		WithDescriptor(s.Descriptor()).
		WithLogger(j.logger).
		WithMetrics(j.metrics).
		WithTracer(j.tracer).
		WithFailFast(j.cfg.Convert.FailFast || def.FailFast).
		WithMaxErrors(j.cfg.Convert.MaxErrorsPerRow)
	if convertFlags.progress {
		exporter.WithProgress(cli.NewRowProgress(j.errOut, def.Name))
	}

	report, err := exporter.Export(ctx, s.Table.Rows)
	if !convertFlags.quiet {
		printFailures(j.errOut, report)
	}
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case err != nil:
		return cli.Invalid(err)
	}

	opts := export.WriteOptions{
		Indent:          j.cfg.Export.Indent,
		IncludeFailures: j.cfg.Export.IncludeFailures,
		Compression:     j.cfg.Export.Compression,
	}
	if convertFlags.out == "" || convertFlags.out == "-" {
		err = export.Write(j.out, report, opts)
	} else {
		err = export.WriteFile(convertFlags.out, report, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if !report.OK() {
		return cli.Invalid(fmt.Errorf("%s: %s", def.Name, report.Summary()))
	}
	return nil
}

// watch re-runs the conversion until ctx is cancelled. The metrics server,
// when enabled, also serves health endpoints reporting the last run.
func (j *convertJob) watch(ctx context.Context) error {
	// A first load finds the files to watch; the runner converts again.
	s, err := convertFlags.source.load(j.cfg)
	if err != nil {
		return err
	}
	files := convertFlags.source.files(s)
	if cfgFile != "" {
		files = append(files, cfgFile)
	}

	runner := watch.NewRunner(watch.Config{
		Files:    files,
		Debounce: j.cfg.Watch.Debounce,
		Schedule: j.cfg.Watch.Schedule,
	}, j.rerun).WithLogger(j.logger).WithMetrics(j.metrics)

	checker := health.New(0)
	checker.RegisterCheck("last_run", runner.HealthCheck)

	if j.cfg.Telemetry.Metrics.Enabled {
		server := metrics.NewServer(j.cfg.Telemetry.Metrics.Address, j.cfg.Telemetry.Metrics.Path, j.metrics, checker, versionInfo())
		addr, err := server.Start()
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		j.logger.Info("metrics server listening", "address", addr, "path", j.cfg.Telemetry.Metrics.Path)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	return runner.Run(ctx)
}

// rerun reloads the configuration when it changed on disk and converts.
func (j *convertJob) rerun(ctx context.Context, trigger watch.Trigger) error {
	if cfgFile != "" && trigger != watch.TriggerStartup {
		if cfg, err := config.ReloadConfig(cfgFile); err != nil {
			j.logger.WarnContext(ctx, "keeping previous configuration", "error", err)
		} else {
			reloaded := *cfg
			applyConvertFlags(&reloaded)
			reloaded.Telemetry = j.cfg.Telemetry
			j.cfg = &reloaded
		}
	}
	return j.run(ctx)
}

// printFailures lists failing rows with their field errors.
func printFailures(w io.Writer, report *export.Report) {
	if report == nil {
		return
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(w, "✗ %s\n", failure.Label)
		for _, fe := range failure.Errors {
			fmt.Fprintf(w, "    %s\n", fe.String())
		}
	}
	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "%s\n", report.Summary())
	}
}
