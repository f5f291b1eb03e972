/*
Package cli provides helpers shared by the rowmark commands.

Output Formatting:

Commands print results as text, JSON or CSV. CSV output needs a value
implementing Tabular:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, result)

Progress Reporting:

RowProgress satisfies export.Progress and draws a bar on stderr:

	exporter.WithProgress(cli.NewRowProgress(os.Stderr, "heroes"))

Exit Codes:

Commands return errors and main maps them with ExitCode. Wrap an error with
Invalid when the input was understood but failed validation:

	if !report.OK() {
		return cli.Invalid(fmt.Errorf("%d rows failed", report.Failed()))
	}

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
