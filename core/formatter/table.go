package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/artpar/yanggen/core/manifest"
	"github.com/artpar/yanggen/core/schema"
)

// TableFormatter formats output as aligned text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Description returns the formatter description.
func (f *TableFormatter) Description() string {
	return "Aligned text table output"
}

// FormatManifest formats a tool manifest as a table. Required parameters
// carry a trailing asterisk.
func (f *TableFormatter) FormatManifest(w io.Writer, m *manifest.Manifest, opts FormatOptions) error {
	if m == nil || len(m.Tools) == 0 {
		fmt.Fprintln(w, "No tools generated.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !opts.NoHeader {
		fmt.Fprintln(tw, "NAME\tOPERATION\tPARAMETERS")
	}

	for _, tool := range m.Tools {
		params := make([]string, 0, len(tool.Parameters))
		for _, p := range tool.Parameters {
			name := p.Name
			if p.Required {
				name += "*"
			}
			params = append(params, name)
		}
		line := truncate(strings.Join(params, ", "), opts.MaxWidth)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tool.Name, tool.Operation, line)
	}

	return tw.Flush()
}

// FormatDiagnostics formats diagnostics as a table.
func (f *TableFormatter) FormatDiagnostics(w io.Writer, diags schema.Diagnostics, opts FormatOptions) error {
	if len(diags) == 0 {
		fmt.Fprintln(w, "No diagnostics.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !opts.NoHeader {
		fmt.Fprintln(tw, "SEVERITY\tKIND\tPATH\tMESSAGE")
	}

	for _, d := range diags {
		path := d.Path
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			d.Severity, d.Kind, path, truncate(d.Message, opts.MaxWidth))
	}

	return tw.Flush()
}

// FormatError formats an error message.
func (f *TableFormatter) FormatError(w io.Writer, err error) error {
	fmt.Fprintf(w, "Error: %s\n", err.Error())
	return nil
}

// truncate shortens a value for display.
func truncate(s string, maxWidth int) string {
	if maxWidth > 3 && len(s) > maxWidth {
		return s[:maxWidth-3] + "..."
	}
	return s
}

func init() {
	Register(NewTableFormatter())
}
