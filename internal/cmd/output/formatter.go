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

// Format names an encoding accepted by --format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(io.Writer, any) error

func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

// NewFormatter picks the formatter for format. Unknown and empty formats
// get the table formatter.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	}
	return &TableFormatter{}
}

type JSONFormatter struct {
	Indent string
}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(data)
}

// YAMLFormatter writes block YAML with sequences flush against their key.
type YAMLFormatter struct{}

func (*YAMLFormatter) Format(w io.Writer, data any) error {
	b, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Align sets how one table column is justified.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

var twAlign = map[Align]tw.Align{
	AlignLeft:   tw.AlignLeft,
	AlignCenter: tw.AlignCenter,
	AlignRight:  tw.AlignRight,
}

// Data is a rendered-ready table. ColumnAlignment may be shorter than
// Headers; missing columns keep the default.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// TableFormatter draws Data with tablewriter. Anything else is written as
// indented JSON.
type TableFormatter struct{}

func (*TableFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case Data:
		return drawTable(w, d)
	case *Data:
		return drawTable(w, *d)
	}
	return NewFormatter(FormatJSON).Format(w, data)
}

func drawTable(w io.Writer, d Data) error {
	var cfg tablewriter.Config
	if n := len(d.ColumnAlignment); n > 0 {
		per := make([]tw.Align, n)
		for i, a := range d.ColumnAlignment {
			al, ok := twAlign[a]
			if !ok {
				al = tw.Skip
			}
			per[i] = al
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: per}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: per}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(d.Headers) > 0 {
		t.Header(cells(d.Headers)...)
	}
	for _, row := range d.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

func cells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

var titleCaser = cases.Title(language.English)

// Title turns a snake_case key into a header, "last_refresh" into
// "Last Refresh".
func Title(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// DetectFormat honours an explicit choice. Otherwise terminals get a table
// and pipes get JSON.
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

// ParseFormat validates a --format value. Empty means auto-detect.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
}

// Render writes table for the table format and raw for the others, so
// machine formats keep the full records.
func Render(w io.Writer, format Format, table Data, raw any) error {
	if format == "" || format == FormatTable {
		return drawTable(w, table)
	}
	return NewFormatter(format).Format(w, raw)
}
