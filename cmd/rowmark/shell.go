package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mercator-hq/rowmark/pkg/cli"
	"mercator-hq/rowmark/pkg/export"
	"mercator-hq/rowmark/pkg/mark"
	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/lint"
	"mercator-hq/rowmark/pkg/sheet"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".rowmark_history"
	shellPrompt = "rowmark> "
)

const shellHelp = `Commands:
  schema <marks>    set the schema, e.g. schema uint, str, [, int, ]
  labels <labels>   set the column labels, e.g. labels id, name, tags
  load <file>       load schema, labels and enums from a YAML definition
  mark <mark>       parse one leaf mark and print its tree
  lint              check the current schema
  row <cells>       convert one CSV row (the "row" prefix is optional)
  show              print the current schema and labels
  help              show this help
  quit              leave the shell
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Try marks and rows interactively",
	Long: `Start an interactive shell for experimenting with schemas.

Set a schema with "schema", then type CSV rows to see the records they
convert to, or the field errors they fail with. Type "help" for commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rowmark %s shell. Type \"help\" for commands.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sh := newShell(cmd.Context(), out)
	for {
		line, err := ln.Prompt(shellPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if sh.handle(line) {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// shell holds the state of an interactive session.
type shell struct {
	ctx    context.Context
	out    io.Writer
	def    *sheet.Definition
	schema *mark.Schema
	labels []string
}

func newShell(ctx context.Context, out io.Writer) *shell {
	if ctx == nil {
		ctx = context.Background()
	}
	return &shell{ctx: ctx, out: out}
}

// handle runs one input line and reports whether the session should end.
func (sh *shell) handle(line string) (exit bool) {
	line = strings.TrimSpace(line)
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case "quit", "exit", ":q":
		return true
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "schema":
		sh.setSchema(&sheet.Definition{Marks: mark.SplitTokens(rest), Labels: sh.labels})
	case "labels":
		sh.setLabels(splitList(rest))
	case "load":
		sh.load(rest)
	case "mark":
		sh.parseMark(rest)
	case "lint":
		sh.lint()
	case "show":
		sh.show()
	case "row":
		sh.convert(rest)
	default:
		sh.convert(line)
	}
	return false
}

func (sh *shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) setSchema(def *sheet.Definition) {
	if sh.def != nil && def.Enums == nil {
		def.Enums = sh.def.Enums
	}
	if err := def.Validate(); err != nil {
		sh.printf("%v\n", err)
		return
	}
	schema, err := def.Compile(newParser(effectiveConfig()))
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	sh.def, sh.schema = def, schema
	sh.show()
}

func (sh *shell) setLabels(labels []string) {
	sh.labels = labels
	if sh.def != nil {
		sh.def.Labels = labels
	}
	sh.show()
}

func (sh *shell) load(path string) {
	if path == "" {
		sh.printf("usage: load <file>\n")
		return
	}
	def, err := sheet.LoadDefinition(path)
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	sh.labels = def.Labels
	sh.setSchema(def)
}

func (sh *shell) parseMark(text string) {
	var ctx *ast.Context
	if sh.def != nil {
		ctx = sh.def.Context()
	}
	tdm, err := newParser(effectiveConfig()).ParseMark(text, ctx)
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	_ = cli.NewFormatter(cli.FormatJSON).FormatTo(sh.out, tdm.SchemaJSON())
}

func (sh *shell) lint() {
	if sh.schema == nil {
		sh.printf("no schema; use: schema <marks>\n")
		return
	}
	warnings := lint.NewLinter().
		WithLabels(sh.resolvedLabels()).
		WithContext(sh.def.Context()).
		Lint(sh.schema.Root)
	if len(warnings) == 0 {
		sh.printf("✓ no warnings\n")
		return
	}
	for _, w := range warnings {
		sh.printf("%s\n", w.String())
	}
}

func (sh *shell) show() {
	if sh.schema == nil {
		sh.printf("no schema\n")
		return
	}
	sh.printf("schema: %s\n", strings.Join(sh.schema.Root.Tokens(), ", "))
	if len(sh.labels) > 0 {
		sh.printf("labels: %s\n", strings.Join(sh.labels, ", "))
	}
}

func (sh *shell) convert(line string) {
	if sh.schema == nil {
		sh.printf("no schema; use: schema <marks>\n")
		return
	}

	table, err := sheet.ReadCSV(strings.NewReader(line), sheet.CSVOptions{})
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	if len(table.Rows) == 0 {
		return
	}

	report, err := export.NewExporter(sh.schema, sh.resolvedLabels()).
		WithDescriptor(export.Descriptor{Columns: sh.resolvedLabels()}).
		Export(sh.ctx, table.Rows[:1])
	if err != nil {
		sh.printf("%v\n", err)
		return
	}
	if !report.OK() {
		for _, fe := range report.Failures[0].Errors {
			sh.printf("✗ %s\n", fe.String())
		}
		return
	}
	_ = cli.NewFormatter(cli.FormatJSON).FormatTo(sh.out, report.Records[0])
}

// resolvedLabels pads the labels to the schema width. Without labels each
// column is keyed by its index.
func (sh *shell) resolvedLabels() []string {
	labels := sh.def.ResolveLabels(sh.labels)
	for i, label := range labels {
		if label == "" && len(sh.labels) == 0 {
			labels[i] = fmt.Sprintf("%d", i)
		}
	}
	return labels
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
