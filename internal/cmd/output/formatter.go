// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes a value in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(w io.Writer, data any) error

// Format calls f.
func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

// NewFormatter returns the formatter for format. Unknown formats render
// as tables.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return FormatterFunc(writeJSON)
	case FormatYAML:
		return FormatterFunc(writeYAML)
	default:
		return FormatterFunc(writeTable)
	}
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	b, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// writeTable renders Data. Anything else is written as JSON.
func writeTable(w io.Writer, data any) error {
	var d Data
	switch v := data.(type) {
	case Data:
		d = v
	case *Data:
		d = *v
	default:
		return writeJSON(w, data)
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(d.config()))
	if len(d.Headers) > 0 {
		table.Header(toCells(d.Headers)...)
	}
	for _, row := range d.Rows {
		if err := table.Append(toCells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// Align is the alignment of a table column.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var twAligns = map[Align]tw.Align{
	AlignLeft:   tw.AlignLeft,
	AlignCenter: tw.AlignCenter,
	AlignRight:  tw.AlignRight,
}

// Data is a table: headers, rows and optional per-column alignment.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

func (d Data) config() tablewriter.Config {
	var cfg tablewriter.Config
	if len(d.ColumnAlignment) == 0 {
		return cfg
	}
	aligns := make([]tw.Align, len(d.ColumnAlignment))
	for i, a := range d.ColumnAlignment {
		if mapped, ok := twAligns[a]; ok {
			aligns[i] = mapped
		} else {
			aligns[i] = tw.Skip
		}
	}
	cfg.Header.Alignment = tw.CellAlignment{PerColumn: aligns}
	cfg.Row.Alignment = tw.CellAlignment{PerColumn: aligns}
	return cfg
}

var titleCaser = cases.Title(language.English)

// Headers turns snake_case field names into column titles.
func Headers(names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = titleCaser.String(strings.ReplaceAll(name, "_", " "))
	}
	return out
}

// DetectFormat returns the explicit format when one is set. Otherwise a
// terminal gets a table and a pipe gets JSON.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a format name. The empty string is accepted and
// means auto-detect.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML, "":
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: want table, json or yaml", s)
}
