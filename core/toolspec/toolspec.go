// Package toolspec derives tool specifications from the schema IR.
// It applies the naming scheme, implicit parameters, and parameter ordering
// conventions; both the code emitter and the manifest builder consume its
// output and add nothing of their own.
//
// Every container yields get, create, update, and delete tools; every list
// yields get, add-item, and delete; every rpc yields invoke. Names are
// scope-qualified with the path from the module down to the entity. Each
// tool's parameter list opens with the identity parameter naming the target
// device, then the entity's required parameters in declaration order, then
// the optional ones in declaration order.
package toolspec

import (
	"errors"
	"fmt"

	"github.com/artpar/yanggen/core/registry"
	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/terminology"
	"github.com/artpar/yanggen/pkg/ident"
)

// DefaultIdentityParam is the name of the implicit first parameter unless
// configuration overrides it.
const DefaultIdentityParam = "router_name"

// Operation identifies what a generated tool does.
type Operation string

const (
	OpGet     Operation = "get"
	OpCreate  Operation = "create"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpAddItem Operation = "add-item"
	OpInvoke  Operation = "invoke"
)

// EntityKind names the IR shape a tool was derived from.
type EntityKind string

const (
	EntityContainer EntityKind = "container"
	EntityList      EntityKind = "list"
	EntityRpc       EntityKind = "rpc"
)

// Param is one ordered tool parameter.
type Param struct {
	// Name is the schema name, used as the payload key on invocation.
	Name string

	// Ident is the sanitized Python identifier used in generated code.
	Ident string

	// Type is the canonical parameter type.
	Type schema.ParamType

	// Description is the docstring text for this parameter.
	Description string

	// Required marks parameters without a fallback.
	Required bool

	// Default is the fallback value for optional parameters.
	Default any

	// Choices restricts string parameters to an enumerated set.
	Choices []string

	// Range is the numeric constraint expression, when declared.
	Range string
}

// Tool is one derived tool specification.
type Tool struct {
	// Name is the scope-qualified tool name. Entity and module text is
	// preserved verbatim, hyphens included; only generated code identifiers
	// are sanitized.
	Name string

	// Description is the tool's docstring summary.
	Description string

	// Operation is the tool's operation kind.
	Operation Operation

	// Scope is the path from the module down to the entity.
	Scope []string

	// Entity is the IR shape the tool was derived from.
	Entity EntityKind

	// Params is the ordered parameter list: identity first, then required
	// parameters in declaration order, then optional ones.
	Params []Param
}

// Option configures a generation pass.
type Option func(*generator)

// WithIdentityParam renames the implicit identity parameter.
func WithIdentityParam(name string) Option {
	return func(g *generator) {
		if name != "" {
			g.identity = name
		}
	}
}

// WithStrict promotes generation invariant violations to a returned error.
func WithStrict(strict bool) Option {
	return func(g *generator) { g.strict = strict }
}

// WithRegistry registers tools into r instead of a fresh registry, so
// several modules can share one name space.
func WithRegistry(r *registry.Registry) Option {
	return func(g *generator) {
		if r != nil {
			g.reg = r
		}
	}
}

// Generate derives the tool list for a module. Invariant violations (name
// conflicts, keyless lists, parameter collisions) become diagnostics and the
// offending tool or parameter is dropped; with WithStrict they additionally
// fail the pass. A nil module is programmer error and returns an error
// immediately.
func Generate(m *schema.Module, opts ...Option) ([]*Tool, schema.Diagnostics, error) {
	if m == nil {
		return nil, nil, errors.New("toolspec: nil module")
	}

	var diags schema.Diagnostics
	g := &generator{
		identity: DefaultIdentityParam,
		diags:    &diags,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.reg == nil {
		g.reg = registry.New()
	}

	path := schema.NewPath(m.Name)
	g.containers(m.Containers, path)
	g.lists(m.Lists, path)
	for _, r := range m.Rpcs {
		g.rpc(r, path)
	}

	if g.strict && g.violations > 0 {
		return g.tools, diags, fmt.Errorf("strict mode: %d generation invariant violation(s)", g.violations)
	}
	return g.tools, diags, nil
}

type generator struct {
	identity   string
	strict     bool
	reg        *registry.Registry
	diags      *schema.Diagnostics
	tools      []*Tool
	violations int
}

// containers emits tools for each container, then its children, depth-first
// in declaration order.
func (g *generator) containers(cs []*schema.Container, parent schema.Path) {
	for _, c := range cs {
		path := parent.Child(c.Name)

		g.add(&Tool{
			Name:        toolName(OpGet, path),
			Description: describe(OpGet, c.Name, c.Description),
			Operation:   OpGet,
			Scope:       path,
			Entity:      EntityContainer,
			Params:      []Param{g.identityParam()},
		}, path)

		for _, op := range []Operation{OpCreate, OpUpdate} {
			g.add(&Tool{
				Name:        toolName(op, path),
				Description: describe(op, c.Name, c.Description),
				Operation:   op,
				Scope:       path,
				Entity:      EntityContainer,
				Params:      g.entityParams(c.Parameters, "", path),
			}, path)
		}

		g.add(&Tool{
			Name:        toolName(OpDelete, path),
			Description: describe(OpDelete, c.Name, c.Description),
			Operation:   OpDelete,
			Scope:       path,
			Entity:      EntityContainer,
			Params:      []Param{g.identityParam(), confirmParam()},
		}, path)

		g.containers(c.Containers, path)
		g.lists(c.Lists, path)
	}
}

// lists emits the three list tools for each list, then recurses into entry
// containers.
func (g *generator) lists(ls []*schema.ListNode, parent schema.Path) {
	for _, l := range ls {
		path := parent.Child(l.Name)

		key := l.Key
		switch {
		case key == "":
			g.violation(fmt.Sprintf("list %q has no key; treated as unkeyed", l.Name), path)
		case l.KeyParameter() == nil:
			g.violation(fmt.Sprintf("list %q key %q names no parameter; treated as unkeyed", l.Name, key), path)
			key = ""
		}

		g.add(&Tool{
			Name:        toolName(OpGet, path),
			Description: describe(OpGet, l.Name, l.Description),
			Operation:   OpGet,
			Scope:       path,
			Entity:      EntityList,
			Params:      []Param{g.identityParam()},
		}, path)

		g.add(&Tool{
			Name:        toolName(OpAddItem, path),
			Description: describe(OpAddItem, l.Name, l.Description),
			Operation:   OpAddItem,
			Scope:       path,
			Entity:      EntityList,
			Params:      g.entityParams(l.Parameters, key, path),
		}, path)

		g.add(&Tool{
			Name:        toolName(OpDelete, path),
			Description: describe(OpDelete, l.Name, l.Description),
			Operation:   OpDelete,
			Scope:       path,
			Entity:      EntityList,
			Params:      []Param{g.identityParam(), confirmParam()},
		}, path)

		g.containers(l.Containers, path)
	}
}

// rpc emits the invoke tool. Output parameters describe the result only and
// never join the signature.
func (g *generator) rpc(r *schema.Rpc, parent schema.Path) {
	path := parent.Child(r.Name)

	g.add(&Tool{
		Name:        toolName(OpInvoke, path),
		Description: describe(OpInvoke, r.Name, r.Description),
		Operation:   OpInvoke,
		Scope:       path,
		Entity:      EntityRpc,
		Params:      g.entityParams(r.Input, "", path),
	}, path)
}

// add registers the tool and keeps it. A name conflict drops the tool with
// a diagnostic.
func (g *generator) add(t *Tool, path schema.Path) {
	err := g.reg.Register(registry.Entry{
		Name:      t.Name,
		Scope:     path.String(),
		Operation: string(t.Operation),
	})
	if err != nil {
		g.violation(err.Error(), path)
		return
	}
	g.tools = append(g.tools, t)
}

func (g *generator) violation(msg string, path schema.Path) {
	g.diags.Add(schema.InvariantViolation(msg, path.String()))
	g.violations++
}

// entityParams builds the ordered parameter list for create, update,
// add-item, and invoke tools: identity, then required parameters in
// declaration order, then optional ones. keyName, when set, forces that
// parameter required. The IR is never mutated; ordering and key forcing
// happen on copies.
func (g *generator) entityParams(params []*schema.Parameter, keyName string, path schema.Path) []Param {
	out := []Param{g.identityParam()}
	seen := map[string]bool{out[0].Ident: true}

	appendParam := func(p *schema.Parameter, required bool) {
		id := ident.Sanitize(p.Name)
		if seen[id] {
			g.violation(
				fmt.Sprintf("parameter %q collides with an earlier parameter as identifier %q; dropped", p.Name, id),
				path)
			return
		}
		seen[id] = true

		cp := Param{
			Name:        p.Name,
			Ident:       id,
			Type:        p.Type,
			Description: p.Description,
			Required:    required,
			Default:     p.Default,
			Choices:     p.Choices,
			Range:       p.Range,
		}
		if required && cp.Default != nil {
			g.violation(
				fmt.Sprintf("required parameter %q carried a default; dropped", p.Name),
				path)
			cp.Default = nil
		}
		out = append(out, cp)
	}

	for _, p := range params {
		if p.Required || p.Name == keyName {
			appendParam(p, true)
		}
	}
	for _, p := range params {
		if !(p.Required || p.Name == keyName) {
			appendParam(p, false)
		}
	}

	return out
}

// identityParam is the implicit first parameter of every tool.
func (g *generator) identityParam() Param {
	return Param{
		Name:        g.identity,
		Ident:       ident.Sanitize(g.identity),
		Type:        schema.TypeString,
		Description: terminology.DescribeIdentity(),
		Required:    true,
	}
}

// confirmParam is the injected delete confirmation. It is the one parameter
// that carries required and a default together; the IR leaf invariant does
// not apply to generator-injected parameters.
func confirmParam() Param {
	return Param{
		Name:        "confirm",
		Ident:       "confirm",
		Type:        schema.TypeBoolean,
		Description: terminology.DescribeConfirm(),
		Required:    true,
		Default:     false,
	}
}

// toolName builds the scope-qualified name. Entity text is preserved
// verbatim; sanitization applies to generated identifiers only.
func toolName(op Operation, path schema.Path) string {
	switch op {
	case OpAddItem:
		return "add_" + path.Join("_") + "_item"
	case OpInvoke:
		return "invoke_" + path.Join("_")
	default:
		return string(op) + "_" + path.Join("_")
	}
}

// describe picks the tool description: the synthesized operation phrase,
// extended with the entity's own description when it declares one.
func describe(op Operation, name, entityDesc string) string {
	d := terminology.Describe(string(op), name)
	if entityDesc != "" {
		d += ". " + entityDesc
	}
	return d
}
