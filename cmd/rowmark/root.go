package main

import (
	"fmt"
	"io"
	"os"

	"mercator-hq/rowmark/pkg/cli"
	"mercator-hq/rowmark/pkg/config"
	"mercator-hq/rowmark/pkg/mark/parser"
	"mercator-hq/rowmark/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "rowmark",
	Short: "Validate and convert flat rows with schema marks",
	Long: `Rowmark reads tabular data together with a schema of marks, one mark per
column, validates every row and converts it into nested JSON records.

Leaf marks are type unions such as "uint", "int|str?" or "array<int>".
Bracket marks ("{", "}", "[", "]") group the following columns into nested
objects and arrays. Decorators such as $ghost and $strict adjust how empty
values are treated.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(cfgFile); err != nil {
			return cli.NewConfigError("config", err.Error())
		}
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &cli.ExitError{Code: cli.ExitUsage, Err: err}
	})
}

// effectiveConfig returns a copy of the loaded configuration with the
// global flag overrides applied.
func effectiveConfig() *config.Config {
	cfg := *config.GetConfig()
	switch {
	case verbose:
		cfg.Telemetry.Logging.Level = "debug"
	case logLevel != "":
		cfg.Telemetry.Logging.Level = logLevel
	}
	return &cfg
}

// newLogger builds the command logger. Logs always go to w, never to the
// stream that carries records.
func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, w))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// newParser returns a parser with the configured limits.
func newParser(cfg *config.Config) *parser.Parser {
	return parser.NewParser().
		WithMaxTokens(cfg.Parser.MaxTokens).
		WithMaxDepth(cfg.Parser.MaxDepth)
}
