package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/rowmark/pkg/cli"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
	"mercator-hq/rowmark/pkg/mark/lint"
	"mercator-hq/rowmark/pkg/sheet"

	"github.com/spf13/cobra"
)

var lintFlags struct {
	source sourceFlags
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint [marks...]",
	Short: "Check a schema for errors and suspicious marks",
	Long: `Check a schema for errors and for marks that are valid but probably wrong.

Errors are marks that do not parse or name types the engine cannot build.
Warnings include misspelled type names, decorators that have no effect
where they are used, missing object labels and enum tables referenced with
the wrong case.

Examples:
  # Lint a definition
  rowmark lint --schema heroes.yaml

  # Lint the mark row of a sheet, warnings as errors
  rowmark lint --sheet heroes.csv --strict

  # JSON output for CI/CD
  rowmark lint --schema heroes.yaml --format json`,
	RunE: lintSchema,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintFlags.source.register(lintCmd, false)
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVarP(&lintFlags.format, "format", "f", "text", "output format: text, json, csv")
}

// Diagnostic is one lint finding.
type Diagnostic struct {
	Location   string `json:"location"`
	Token      int    `json:"token"`
	Severity   string `json:"severity"`
	Rule       string `json:"rule"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s [%s] %s", d.Location, d.Severity, d.Rule, d.Message)
	if d.Suggestion != "" {
		s += " (" + d.Suggestion + ")"
	}
	return s
}

// LintResult is the outcome of linting one schema.
type LintResult struct {
	Source      string       `json:"source"`
	Valid       bool         `json:"valid"`
	Errors      int          `json:"errors"`
	Warnings    int          `json:"warnings"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r LintResult) String() string {
	var sb strings.Builder
	for _, d := range r.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	if r.Valid && r.Warnings == 0 {
		sb.WriteString(fmt.Sprintf("✓ %s is valid", r.Source))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %d error(s), %d warning(s)", r.Source, r.Errors, r.Warnings))
	}
	return sb.String()
}

func (r LintResult) Header() []string {
	return []string{"location", "token", "severity", "rule", "message", "suggestion"}
}

func (r LintResult) Rows() [][]string {
	rows := make([][]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		rows[i] = []string{d.Location, strconv.Itoa(d.Token), d.Severity, d.Rule, d.Message, d.Suggestion}
	}
	return rows
}

func lintSchema(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(lintFlags.format)
	if err != nil {
		return err
	}

	result := LintResult{Source: sourceName(lintFlags.source.schema + lintFlags.source.sheet), Valid: true}

	def, labels, err := lintFlags.source.definition(args)
	var markErr *markErrors.Error
	switch {
	case errors.As(err, &markErr):
		// the definition document itself is broken
		result.add(errorDiagnostic(markErr))
	case err != nil:
		return err
	default:
		result.lint(def, labels)
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if !result.Valid {
		return cli.Invalid(fmt.Errorf("%s has %d error(s)", result.Source, result.Errors))
	}
	if lintFlags.strict && result.Warnings > 0 {
		return cli.Invalid(fmt.Errorf("%s has %d warning(s) (strict mode)", result.Source, result.Warnings))
	}
	return nil
}

func (r *LintResult) lint(def *sheet.Definition, labels []string) {
	cfg := effectiveConfig()
	source := sourceName(def.Source)

	root, err := newParser(cfg).WithSource(source).ParseStructure(def.Marks, def.Context())
	if err != nil {
		r.add(errorDiagnostics(err)...)
		return
	}

	warnings := lint.NewLinter().
		WithSource(source).
		WithLabels(labels).
		WithContext(def.Context()).
		Lint(root)

	unknown := make(map[int]int)
	for _, w := range warnings {
		if w.Rule == lint.RuleUnknownType {
			unknown[w.Token] = len(r.Diagnostics)
		}
		r.add(Diagnostic{
			Location:   w.Location.String(),
			Token:      w.Token,
			Severity:   severityWarning,
			Rule:       w.Rule,
			Message:    w.Message,
			Suggestion: w.Suggestion,
		})
	}

	if _, err := compile(def, cfg, nil); err != nil {
		for _, d := range errorDiagnostics(err) {
			// an unknown type is already listed with its suggestion
			if i, ok := unknown[d.Token]; ok && d.Rule == string(markErrors.ErrorTypeConstruction) {
				r.promote(i)
				continue
			}
			r.add(d)
		}
	}
}

const (
	severityError   = "error"
	severityWarning = "warning"
)

func (r *LintResult) add(diags ...Diagnostic) {
	for _, d := range diags {
		if d.Severity == severityError {
			r.Errors++
			r.Valid = false
		} else {
			r.Warnings++
		}
		r.Diagnostics = append(r.Diagnostics, d)
	}
}

// promote turns the warning at index i into an error.
func (r *LintResult) promote(i int) {
	if r.Diagnostics[i].Severity == severityError {
		return
	}
	r.Diagnostics[i].Severity = severityError
	r.Warnings--
	r.Errors++
	r.Valid = false
}

// errorDiagnostics flattens schema errors into diagnostics.
func errorDiagnostics(err error) []Diagnostic {
	var list *markErrors.ErrorList
	if errors.As(err, &list) {
		diags := make([]Diagnostic, len(list.Errors))
		for i, e := range list.Errors {
			diags[i] = errorDiagnostic(e)
		}
		return diags
	}

	var markErr *markErrors.Error
	if errors.As(err, &markErr) {
		return []Diagnostic{errorDiagnostic(markErr)}
	}
	return []Diagnostic{{Token: -1, Severity: severityError, Rule: "error", Message: err.Error()}}
}

func errorDiagnostic(e *markErrors.Error) Diagnostic {
	return Diagnostic{
		Location:   e.Location.String(),
		Token:      e.Location.Token,
		Severity:   severityError,
		Rule:       string(e.Type),
		Message:    e.Message,
		Suggestion: e.Suggestion,
	}
}
