package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/artpar/yanggen/core/manifest"
	"github.com/artpar/yanggen/core/schema"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Description returns the formatter description.
func (f *JSONFormatter) Description() string {
	return "JSON output format"
}

// FormatManifest formats a tool manifest as JSON.
func (f *JSONFormatter) FormatManifest(w io.Writer, m *manifest.Manifest, opts FormatOptions) error {
	return f.encode(w, m, opts.Compact)
}

// FormatDiagnostics formats diagnostics as JSON.
func (f *JSONFormatter) FormatDiagnostics(w io.Writer, diags schema.Diagnostics, opts FormatOptions) error {
	output := map[string]any{
		"count":       len(diags),
		"diagnostics": diags,
	}
	return f.encode(w, output, opts.Compact)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := map[string]any{
		"error": err.Error(),
	}
	return f.encode(w, output, false)
}

// encode writes JSON to the writer.
func (f *JSONFormatter) encode(w io.Writer, data any, compact bool) error {
	encoder := json.NewEncoder(w)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

func init() {
	if err := Register(NewJSONFormatter()); err != nil {
		fmt.Printf("failed to register json formatter: %v\n", err)
	}
}
