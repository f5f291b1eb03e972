package main

import (
	"mercator-hq/rowmark/pkg/cli"
	"mercator-hq/rowmark/pkg/config"
	"mercator-hq/rowmark/pkg/mark"
	"mercator-hq/rowmark/pkg/sheet"
	"mercator-hq/rowmark/pkg/telemetry/metrics"

	"github.com/spf13/cobra"
)

// sourceFlags select where a schema, and optionally its rows, come from.
type sourceFlags struct {
	schema string
	sheet  string
	data   string
}

func (f *sourceFlags) register(cmd *cobra.Command, withData bool) {
	cmd.Flags().StringVarP(&f.schema, "schema", "s", "", "YAML sheet definition")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "self-describing CSV (labels row, marks row, data)")
	if withData {
		cmd.Flags().StringVarP(&f.data, "data", "d", "", "data file, overrides the definition's data path")
	}
}

func (f *sourceFlags) validate(allowArgs bool, args []string) error {
	n := 0
	for _, set := range []bool{f.schema != "", f.sheet != "", allowArgs && len(args) > 0} {
		if set {
			n++
		}
	}
	switch {
	case n == 0 && allowArgs:
		return cli.NewConfigError("flags", "give marks as arguments, --schema or --sheet")
	case n == 0:
		return cli.NewConfigError("flags", "either --schema or --sheet must be specified")
	case n > 1:
		return cli.NewConfigError("flags", "marks, --schema and --sheet are mutually exclusive")
	case f.data != "" && f.schema == "":
		return cli.NewConfigError("flags", "--data needs --schema")
	}
	return nil
}

// definition returns the schema definition and the column labels known
// without reading data rows.
func (f *sourceFlags) definition(args []string) (*sheet.Definition, []string, error) {
	if err := f.validate(true, args); err != nil {
		return nil, nil, err
	}

	switch {
	case len(args) > 0:
		def := &sheet.Definition{Marks: argTokens(args)}
		if err := def.Validate(); err != nil {
			return nil, nil, err
		}
		return def, nil, nil
	case f.sheet != "":
		s, err := sheet.ReadSheetFile(f.sheet)
		if err != nil {
			return nil, nil, err
		}
		return s.Definition, s.Labels, nil
	default:
		def, err := sheet.LoadDefinition(f.schema)
		if err != nil {
			return nil, nil, err
		}
		var labels []string
		if len(def.Labels) > 0 {
			labels = def.ResolveLabels(nil)
		}
		return def, labels, nil
	}
}

// load reads the schema and its rows.
func (f *sourceFlags) load(cfg *config.Config) (*sheet.Sheet, error) {
	if err := f.validate(false, nil); err != nil {
		return nil, err
	}
	if f.sheet != "" {
		return sheet.ReadSheetFile(f.sheet)
	}
	return sheet.Load(f.schema, f.data, cfg.Convert.HeaderRows)
}

// files lists the inputs of s for the watcher.
func (f *sourceFlags) files(s *sheet.Sheet) []string {
	if f.sheet != "" {
		return []string{f.sheet}
	}
	files := []string{f.schema}
	if data := f.data; data != "" {
		files = append(files, data)
	} else if data := s.Definition.DataPath(); data != "" {
		files = append(files, data)
	}
	return files
}

// compile builds the schema with the configured parser limits and counts
// the attempt.
func compile(def *sheet.Definition, cfg *config.Config, collector *metrics.Collector) (*mark.Schema, error) {
	schema, err := def.Compile(newParser(cfg))
	if err != nil {
		collector.RecordCompile("error")
		return nil, cli.Invalid(err)
	}
	collector.RecordCompile("ok")
	return schema, nil
}

// argTokens splits every argument on its own, so "uint," "str" and
// "uint, str" give the same tokens.
func argTokens(args []string) []string {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, mark.SplitTokens(arg)...)
	}
	return tokens
}
