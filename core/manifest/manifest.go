// Package manifest builds the language-neutral description of a generated
// tool set. The manifest is the stable artifact other systems consume:
// tool names, operations, and ordered parameter records, optionally with a
// JSON-Schema input contract per tool. Rendering to JSON or YAML is the
// formatter's job; this package only shapes the data.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/toolspec"
)

// Manifest describes one module's generated tools in generator order.
type Manifest struct {
	Module string `json:"module" yaml:"module"`
	Tools  []Tool `json:"tools" yaml:"tools"`
}

// Tool is one tool record.
type Tool struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Operation   string  `json:"operation" yaml:"operation"`
	Parameters  []Param `json:"parameters" yaml:"parameters"`

	// InputSchema is the JSON-Schema contract for the tool's payload,
	// embedded only when requested.
	InputSchema *SchemaObject `json:"input_schema,omitempty" yaml:"input_schema,omitempty"`
}

// Param is one parameter record. Names are the schema names used as payload
// keys, not the sanitized code identifiers.
type Param struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Required bool     `json:"required" yaml:"required"`
	Default  any      `json:"default,omitempty" yaml:"default,omitempty"`
	Choices  []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Range    string   `json:"range,omitempty" yaml:"range,omitempty"`
}

// SchemaObject is a JSON-Schema (draft 2020-12) fragment.
type SchemaObject struct {
	Schema               string                   `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Type                 string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Properties           map[string]*SchemaObject `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string                 `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool                    `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	Enum                 []string                 `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum              *float64                 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum              *float64                 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Default              any                      `json:"default,omitempty" yaml:"default,omitempty"`
}

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

// Option configures Build.
type Option func(*builder)

// WithInputSchemas embeds each tool's derived JSON-Schema in the manifest.
func WithInputSchemas() Option {
	return func(b *builder) { b.embedSchemas = true }
}

type builder struct {
	embedSchemas bool
}

// Build maps the generator's tool list into the manifest shape, preserving
// order.
func Build(module string, tools []*toolspec.Tool, opts ...Option) *Manifest {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	m := &Manifest{
		Module: module,
		Tools:  make([]Tool, 0, len(tools)),
	}
	for _, t := range tools {
		if t == nil {
			continue
		}

		tool := Tool{
			Name:        t.Name,
			Description: t.Description,
			Operation:   string(t.Operation),
			Parameters:  make([]Param, 0, len(t.Params)),
		}
		for _, p := range t.Params {
			tool.Parameters = append(tool.Parameters, Param{
				Name:     p.Name,
				Type:     string(p.Type),
				Required: p.Required,
				Default:  p.Default,
				Choices:  p.Choices,
				Range:    p.Range,
			})
		}
		if b.embedSchemas {
			tool.InputSchema = InputSchema(tool)
		}

		m.Tools = append(m.Tools, tool)
	}
	return m
}

// InputSchema derives the JSON-Schema contract for a tool's payload:
// properties typed from the canonical types, enum from choices, numeric
// bounds from the range expression, a required array, and closed
// additional properties.
func InputSchema(t Tool) *SchemaObject {
	s := &SchemaObject{
		Schema:               draft2020,
		Type:                 "object",
		Properties:           make(map[string]*SchemaObject, len(t.Parameters)),
		AdditionalProperties: boolPtr(false),
	}

	for _, p := range t.Parameters {
		prop := &SchemaObject{Type: p.Type}

		if len(p.Choices) > 0 {
			prop.Enum = p.Choices
		}
		if p.Default != nil {
			prop.Default = p.Default
		}
		if p.Range != "" && (p.Type == string(schema.TypeInteger) || p.Type == string(schema.TypeNumber)) {
			if spec, err := schema.ParseRange(p.Range); err == nil {
				prop.Minimum = spec.Min()
				prop.Maximum = spec.Max()
			}
		}

		s.Properties[p.Name] = prop
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}

	return s
}

// Check compiles every tool's input schema as a generation self-check.
// A schema that fails to compile is a generation invariant violation.
func Check(m *Manifest) schema.Diagnostics {
	var diags schema.Diagnostics
	if m == nil {
		return diags
	}

	for _, t := range m.Tools {
		obj := t.InputSchema
		if obj == nil {
			obj = InputSchema(t)
		}

		raw, err := json.Marshal(obj)
		if err != nil {
			diags.Add(schema.InvariantViolation(
				fmt.Sprintf("tool %q input schema does not marshal: %v", t.Name, err), t.Name))
			continue
		}

		if err := compileSchema(t.Name, raw); err != nil {
			diags.Add(schema.InvariantViolation(
				fmt.Sprintf("tool %q input schema does not compile: %v", t.Name, err), t.Name))
		}
	}
	return diags
}

func compileSchema(name string, raw []byte) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	url := name + ".json"
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		return err
	}
	_, err := c.Compile(url)
	return err
}

func boolPtr(v bool) *bool { return &v }
