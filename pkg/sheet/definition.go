package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mercator-hq/rowmark/pkg/mark"
	"mercator-hq/rowmark/pkg/mark/ast"
	markErrors "mercator-hq/rowmark/pkg/mark/errors"
	"mercator-hq/rowmark/pkg/mark/parser"

	"gopkg.in/yaml.v3"
)

// Marks is a schema token list. In YAML it is either a sequence of tokens
// or a single line such as "uint, str, {, uint, }".
type Marks []string

// UnmarshalYAML accepts a scalar line or a sequence of tokens.
func (m *Marks) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*m = mark.SplitTokens(node.Value)
		return nil
	case yaml.SequenceNode:
		tokens := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: mark must be a string", item.Line)
			}
			tokens = append(tokens, strings.TrimSpace(item.Value))
		}
		*m = tokens
		return nil
	}
	return fmt.Errorf("line %d: marks must be a string or a list", node.Line)
}

// Definition describes one sheet: its schema marks, the labels used as
// object keys, and the enum tables the marks refer to.
//
//	name: heroes
//	marks: "uint, str, enum<Element>, {, uint, uint, }"
//	labels: [id, name, element, stats, hp, mp]
//	enums:
//	  Element:
//	    Fire: 1
//	    Water: [2, "aqua"]
//	header_rows: 1
//	data: heroes.csv
type Definition struct {
	Name       string                   `yaml:"name"`
	Marks      Marks                    `yaml:"marks"`
	Labels     []string                 `yaml:"labels"`
	Enums      map[string]ast.EnumTable `yaml:"enums"`
	HeaderRows *int                     `yaml:"header_rows"`
	FailFast   bool                     `yaml:"fail_fast"`
	Data       string                   `yaml:"data"`

	// Source is the file the definition was loaded from, if any.
	Source string `yaml:"-"`
}

// ParseDefinition decodes a YAML definition. source names it in errors and
// anchors a relative data path.
func ParseDefinition(data []byte, source string) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &markErrors.Error{
			Type:     markErrors.ErrorTypeDefinition,
			Message:  fmt.Sprintf("invalid sheet definition: %v", err),
			Location: ast.Location{Source: source, Token: -1},
		}
	}
	def.Source = source
	if def.Name == "" && source != "" {
		def.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinition reads and decodes the definition at path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &markErrors.Error{
			Type:     markErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("failed to read sheet definition: %v", err),
			Location: ast.Location{Source: path, Token: -1},
		}
	}
	return ParseDefinition(data, path)
}

// Validate checks the fields that do not need the parser.
func (d *Definition) Validate() error {
	var errs []error
	if len(d.Marks) == 0 {
		errs = append(errs, errors.New("marks: at least one mark is required"))
	}
	if d.HeaderRows != nil && *d.HeaderRows < 0 {
		errs = append(errs, fmt.Errorf("header_rows: must not be negative, got %d", *d.HeaderRows))
	}
	for name, table := range d.Enums {
		if len(table) == 0 {
			errs = append(errs, fmt.Errorf("enums.%s: table is empty", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("sheet definition %s: %w", d.displayName(), errors.Join(errs...))
	}
	return nil
}

func (d *Definition) displayName() string {
	if d.Source != "" {
		return d.Source
	}
	if d.Name != "" {
		return d.Name
	}
	return "<inline>"
}

// Context returns the parse context holding the definition's enum tables.
func (d *Definition) Context() *ast.Context {
	if len(d.Enums) == 0 {
		return nil
	}
	return &ast.Context{Enums: d.Enums}
}

// HeaderRowCount returns header_rows, or fallback when it is not set.
func (d *Definition) HeaderRowCount(fallback int) int {
	if d.HeaderRows == nil {
		return fallback
	}
	return *d.HeaderRows
}

// DataPath returns the data file path, resolved against the definition's
// directory when relative. It is empty when the definition names no data.
func (d *Definition) DataPath() string {
	if d.Data == "" || filepath.IsAbs(d.Data) || d.Source == "" {
		return d.Data
	}
	return filepath.Join(filepath.Dir(d.Source), d.Data)
}

// Compile parses the marks and builds the row convertor. p may be nil for
// the default parser limits.
func (d *Definition) Compile(p *parser.Parser) (*mark.Schema, error) {
	if p == nil {
		p = parser.NewParser()
	}
	return mark.NewCompiler().
		WithParser(p.WithSource(d.displayName())).
		Compile(d.Marks, d.Context())
}

// ResolveLabels returns the definition's labels, or header when none are
// given. Missing trailing labels are padded with "" up to the token count.
func (d *Definition) ResolveLabels(header []string) []string {
	labels := d.Labels
	if len(labels) == 0 {
		labels = header
	}
	out := make([]string, len(d.Marks))
	for i := range out {
		if i < len(labels) {
			out[i] = strings.TrimSpace(labels[i])
		}
	}
	if len(labels) > len(out) {
		out = append(out, labels[len(out):]...)
	}
	return out
}
