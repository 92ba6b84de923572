// Package emit renders tool specifications as Python source. The output
// registers one FastMCP tool per specification and routes every call
// through a single backend boundary.
//
// Emission is a pure function of its input: no timestamps, no environment,
// no map iteration. Identical tool lists yield byte-identical source.
package emit

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/artpar/yanggen/core/toolspec"
	"github.com/artpar/yanggen/pkg/ident"
)

// DefaultBackendModule is the Python module the generated file imports its
// backend from unless configuration overrides it.
const DefaultBackendModule = "yanggen_backend"

// Emitter renders Python tool files.
type Emitter struct {
	backendModule string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithBackendModule overrides the backend import in generated files.
func WithBackendModule(name string) Option {
	return func(e *Emitter) {
		if name != "" {
			e.backendModule = name
		}
	}
}

// New creates an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{backendModule: DefaultBackendModule}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders the complete Python file for a module's tools, in generator
// order. An empty tool list yields the header only, which is still valid
// Python.
func (e *Emitter) Emit(module string, tools []*toolspec.Tool) (string, error) {
	data := fileData{
		Module:        module,
		ModuleLit:     pyString(module),
		BackendModule: e.backendModule,
		Functions:     make([]funcData, 0, len(tools)),
	}
	for _, t := range tools {
		if t == nil {
			continue
		}
		data.Functions = append(data.Functions, buildFunc(t))
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render module %s: %w", module, err)
	}
	return buf.String(), nil
}

// fileData is the template view of one generated file.
type fileData struct {
	Module        string
	ModuleLit     string
	BackendModule string
	Functions     []funcData
}

// funcData is the template view of one generated function. Everything
// position-dependent is prerendered so the template stays layout-only.
type funcData struct {
	Name      string
	Signature string
	Summary   string
	Args      []string
	Payload   []string
	ToolLit   string
}

func buildFunc(t *toolspec.Tool) funcData {
	f := funcData{
		Name:    ident.Sanitize(t.Name),
		Summary: flatten(t.Description),
		ToolLit: pyString(t.Name),
	}

	sig := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		if p.Required {
			sig = append(sig, p.Ident)
		} else {
			sig = append(sig, p.Ident+"="+pyLiteral(p.Default))
		}
		f.Args = append(f.Args, argLine(p))
		f.Payload = append(f.Payload, pyString(p.Name)+": "+p.Ident)
	}
	f.Signature = strings.Join(sig, ", ")

	return f
}

// argLine renders one docstring Args entry: the parameter's description,
// its required/optional flag with any default, and its choices and range
// constraints.
func argLine(p toolspec.Param) string {
	var b strings.Builder
	b.WriteString(p.Ident)
	b.WriteString(":")

	if d := flatten(p.Description); d != "" {
		b.WriteString(" ")
		b.WriteString(d)
	}

	if p.Required {
		if p.Default != nil {
			b.WriteString(" (Required, default: " + pyLiteral(p.Default) + ")")
		} else {
			b.WriteString(" (Required)")
		}
	} else {
		if p.Default != nil {
			b.WriteString(" (Optional, default: " + pyLiteral(p.Default) + ")")
		} else {
			b.WriteString(" (Optional)")
		}
	}

	if len(p.Choices) > 0 {
		b.WriteString(" (choices: " + strings.Join(p.Choices, ", ") + ")")
	}
	if p.Range != "" {
		b.WriteString(" (range: " + p.Range + ")")
	}

	return b.String()
}

// pyLiteral renders a default value as Python source text.
func pyLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return pyString(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return pyString(fmt.Sprintf("%v", x))
	}
}

// pyString renders a single-quoted Python string literal.
func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// flatten folds description text onto one line so it cannot break the
// docstring layout.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var fileTmpl = template.Must(template.New("python").Parse(fileTemplate))

const fileTemplate = `"""Configuration tools generated from module {{.Module}}."""

import logging

from mcp.server.fastmcp import FastMCP

from {{.BackendModule}} import Backend

logger = logging.getLogger(__name__)

mcp = FastMCP({{.ModuleLit}})
_backend = Backend()
{{range .Functions}}

def {{.Name}}({{.Signature}}):
    """{{.Summary}}

    Args:
{{- range .Args}}
        {{.}}
{{- end}}
    """
    try:
        payload = {
{{- range .Payload}}
            {{.}},
{{- end}}
        }
        return _backend.invoke({{.ToolLit}}, payload)
    except Exception as exc:
        logger.error('{{.Name}} failed: %s', exc)
        return {'error': str(exc)}


mcp.tool({{.Name}})
{{end}}`
