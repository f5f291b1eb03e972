package main

import (
	"strconv"
	"strings"

	"mercator-hq/rowmark/pkg/cli"
	"mercator-hq/rowmark/pkg/mark"
	"mercator-hq/rowmark/pkg/mark/ast"
	"mercator-hq/rowmark/pkg/mark/lint"

	"github.com/spf13/cobra"
)

var parseFlags struct {
	source sourceFlags
	mark   string
	format string
}

var parseCmd = &cobra.Command{
	Use:   "parse [marks...]",
	Short: "Parse a schema and print its canonical form",
	Long: `Parse a schema and print it back in canonical form.

Marks can be given as arguments (split on top-level commas), read from a
YAML definition or from the mark row of a self-describing sheet. With
--mark a single leaf mark is parsed instead.

Output formats:
  text  canonical marks, comma separated
  json  the parsed tree
  csv   one line per leaf: token, label, mark

Examples:
  # Canonical form of a schema
  rowmark parse "uint, str?, $ghost [, int, int, ]"

  # Parsed tree of a definition
  rowmark parse --schema heroes.yaml --format json

  # Inspect a single mark
  rowmark parse --mark "$oneof array<int|str>?" --format json`,
	RunE: parseSchema,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseFlags.source.register(parseCmd, false)
	parseCmd.Flags().StringVarP(&parseFlags.mark, "mark", "m", "", "parse a single leaf mark")
	parseCmd.Flags().StringVarP(&parseFlags.format, "format", "f", "text", "output format: text, json, csv")
}

func parseSchema(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(parseFlags.format)
	if err != nil {
		return err
	}
	formatter := cli.NewFormatter(format)
	out := cmd.OutOrStdout()

	if parseFlags.mark != "" {
		tdm, err := mark.ParseMark(parseFlags.mark)
		if err != nil {
			return cli.Invalid(err)
		}
		if format == cli.FormatText {
			return formatter.FormatTo(out, tdm.SchemaString())
		}
		if format == cli.FormatCSV {
			return formatter.FormatTo(out, leafTable{leaves: []*ast.TDM{tdm}})
		}
		return formatter.FormatTo(out, tdm.SchemaJSON())
	}

	def, labels, err := parseFlags.source.definition(args)
	if err != nil {
		return err
	}
	root, err := newParser(effectiveConfig()).WithSource(sourceName(def.Source)).ParseStructure(def.Marks, def.Context())
	if err != nil {
		return cli.Invalid(err)
	}

	switch format {
	case cli.FormatJSON:
		return formatter.FormatTo(out, root.SchemaJSON())
	case cli.FormatCSV:
		return formatter.FormatTo(out, leafTable{leaves: root.Leaves(), labels: labels})
	default:
		return formatter.FormatTo(out, strings.Join(root.Tokens(), ", "))
	}
}

func sourceName(source string) string {
	if source == "" {
		return "<args>"
	}
	return source
}

// leafTable lists the leaf marks of a schema for CSV output.
type leafTable struct {
	leaves []*ast.TDM
	labels []string
}

func (t leafTable) Header() []string {
	return []string{"token", "label", "mark"}
}

func (t leafTable) Rows() [][]string {
	rows := make([][]string, len(t.leaves))
	for i, leaf := range t.leaves {
		label := ""
		if at := lint.LabelIndex(leaf); at < len(t.labels) {
			label = t.labels[at]
		}
		rows[i] = []string{strconv.Itoa(leaf.Index), label, leaf.SchemaString()}
	}
	return rows
}
