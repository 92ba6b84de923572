package formatter

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/artpar/yanggen/core/manifest"
	"github.com/artpar/yanggen/core/schema"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Description returns the formatter description.
func (f *YAMLFormatter) Description() string {
	return "YAML output format"
}

// FormatManifest formats a tool manifest as YAML.
func (f *YAMLFormatter) FormatManifest(w io.Writer, m *manifest.Manifest, opts FormatOptions) error {
	return f.encode(w, m)
}

// FormatDiagnostics formats diagnostics as YAML.
func (f *YAMLFormatter) FormatDiagnostics(w io.Writer, diags schema.Diagnostics, opts FormatOptions) error {
	output := map[string]any{
		"count":       len(diags),
		"diagnostics": diags,
	}
	return f.encode(w, output)
}

// FormatError formats an error as YAML.
func (f *YAMLFormatter) FormatError(w io.Writer, err error) error {
	output := map[string]any{
		"error": err.Error(),
	}
	return f.encode(w, output)
}

// encode writes YAML to the writer.
func (f *YAMLFormatter) encode(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

func init() {
	if err := Register(NewYAMLFormatter()); err != nil {
		fmt.Printf("failed to register yaml formatter: %v\n", err)
	}
}
