package yang

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/typemap"
)

// DefaultMaxDepth bounds block nesting. Input nested deeper is skipped with
// a diagnostic instead of recursing without bound.
const DefaultMaxDepth = 64

// Parser converts schema description text into the schema IR.
type Parser struct {
	maxDepth int
	types    *typemap.Table
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides the nesting depth limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithTypeTable installs a type table with per-deployment overrides.
func WithTypeTable(t *typemap.Table) Option {
	return func(p *Parser) { p.types = t }
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses schema text into a module. It never fails: structural damage
// is reported through diagnostics and parsing continues with the remaining
// siblings. The returned module is never nil; with no module block in the
// input it is empty and a diagnostic says so.
func (p *Parser) Parse(text string) (*schema.Module, schema.Diagnostics) {
	var diags schema.Diagnostics

	tp := &treeParser{
		lex:      NewLexer(text),
		diags:    &diags,
		maxDepth: p.maxDepth,
	}
	stmts := tp.parseTopLevel()

	b := &builder{diags: &diags, types: p.types}

	var mod *schema.Module
	for _, s := range stmts {
		if s.Keyword() != "module" {
			continue
		}
		if mod != nil {
			diags.Add(schema.Diagnostic{
				Kind:     schema.KindUnsupported,
				Severity: schema.SeverityWarning,
				Message:  fmt.Sprintf("multiple module blocks; only %q is parsed", mod.Name),
				Line:     s.Line,
				Column:   s.Column,
			})
			continue
		}
		mod = b.module(s)
	}

	if mod == nil {
		diags.Add(schema.StructuralError("no module block found", 1, 1))
		mod = &schema.Module{}
	}

	return mod, diags
}

// ParseFile parses one schema file.
func (p *Parser) ParseFile(path string) (*schema.Module, schema.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file %s: %w", path, err)
	}

	mod, diags := p.Parse(string(data))
	return mod, diags, nil
}

// ParseDir parses every .yang file under dir, including subdirectories.
// Files are visited in name order so output is stable across runs.
func (p *Parser) ParseDir(dir string) ([]*schema.Module, schema.Diagnostics, error) {
	var modules []*schema.Module
	var diags schema.Diagnostics

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			subModules, subDiags, err := p.ParseDir(path)
			if err != nil {
				return nil, nil, err
			}
			modules = append(modules, subModules...)
			diags.Merge(subDiags)
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".yang") {
			continue
		}

		mod, fileDiags, err := p.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		modules = append(modules, mod)
		diags.Merge(fileDiags)
	}

	return modules, diags, nil
}

// builder interprets the generic statement tree as schema IR.
type builder struct {
	diags *schema.Diagnostics
	types *typemap.Table
}

func (b *builder) module(s *Statement) *schema.Module {
	m := &schema.Module{Name: s.Arg()}
	if !s.HasArg() {
		b.diags.Add(schema.StructuralError("module block has no name", s.Line, s.Column))
	}

	path := schema.NewPath(m.Name)
	for _, c := range s.Children {
		switch c.Keyword() {
		case "namespace":
			m.Namespace = c.Arg()
		case "prefix":
			m.Prefix = c.Arg()
		case "description":
			m.Description = c.Arg()
		case "leaf":
			if p := b.leaf(c, path, false); p != nil {
				m.Parameters = append(m.Parameters, p)
			}
		case "leaf-list":
			if p := b.leaf(c, path, true); p != nil {
				m.Parameters = append(m.Parameters, p)
			}
		case "container":
			if ct := b.container(c, path); ct != nil {
				m.Containers = append(m.Containers, ct)
			}
		case "list":
			if l := b.list(c, path); l != nil {
				m.Lists = append(m.Lists, l)
			}
		case "rpc":
			if r := b.rpc(c, path); r != nil {
				m.Rpcs = append(m.Rpcs, r)
			}
		case "grouping":
			if g := b.container(c, path); g != nil {
				m.Groupings = append(m.Groupings, g)
			}
		case "uses":
			b.uses(c, path)
		}
	}

	return m
}

func (b *builder) container(s *Statement, parent schema.Path) *schema.Container {
	if !s.HasArg() {
		b.diags.Add(schema.StructuralError(s.Keyword()+" block has no name", s.Line, s.Column))
		return nil
	}

	c := &schema.Container{Name: s.Arg()}
	path := parent.Child(c.Name)

	for _, child := range s.Children {
		switch child.Keyword() {
		case "description":
			c.Description = child.Arg()
		case "leaf":
			if p := b.leaf(child, path, false); p != nil {
				c.Parameters = append(c.Parameters, p)
			}
		case "leaf-list":
			if p := b.leaf(child, path, true); p != nil {
				c.Parameters = append(c.Parameters, p)
			}
		case "container":
			if ct := b.container(child, path); ct != nil {
				c.Containers = append(c.Containers, ct)
			}
		case "list":
			if l := b.list(child, path); l != nil {
				c.Lists = append(c.Lists, l)
			}
		case "uses":
			b.uses(child, path)
		}
	}

	return c
}

func (b *builder) list(s *Statement, parent schema.Path) *schema.ListNode {
	if !s.HasArg() {
		b.diags.Add(schema.StructuralError("list block has no name", s.Line, s.Column))
		return nil
	}

	l := &schema.ListNode{Name: s.Arg()}
	path := parent.Child(l.Name)

	for _, child := range s.Children {
		switch child.Keyword() {
		case "description":
			l.Description = child.Arg()
		case "key":
			key := child.Arg()
			if fields := strings.Fields(key); len(fields) > 1 {
				b.diags.Add(schema.Unsupported(
					fmt.Sprintf("compound key %q not supported; using %q", key, fields[0]),
					path.String()))
				key = fields[0]
			}
			l.Key = key
		case "leaf":
			if p := b.leaf(child, path, false); p != nil {
				l.Parameters = append(l.Parameters, p)
			}
		case "leaf-list":
			if p := b.leaf(child, path, true); p != nil {
				l.Parameters = append(l.Parameters, p)
			}
		case "container":
			if ct := b.container(child, path); ct != nil {
				l.Containers = append(l.Containers, ct)
			}
		case "list":
			b.diags.Add(schema.Unsupported(
				fmt.Sprintf("list %q nests list %q; not representable, skipped", l.Name, child.Arg()),
				path.String()))
		case "uses":
			b.uses(child, path)
		}
	}

	// A list key is mandatory per entry. Mark the parameter required and
	// drop any default it declared; a required parameter has no fallback.
	if kp := l.KeyParameter(); kp != nil {
		kp.Required = true
		if kp.Default != nil {
			b.diags.Add(schema.InvariantViolation(
				fmt.Sprintf("key parameter %q had a default; dropped", kp.Name),
				path.String()))
			kp.Default = nil
		}
	}

	return l
}

func (b *builder) rpc(s *Statement, parent schema.Path) *schema.Rpc {
	if !s.HasArg() {
		b.diags.Add(schema.StructuralError("rpc block has no name", s.Line, s.Column))
		return nil
	}

	r := &schema.Rpc{Name: s.Arg()}
	path := parent.Child(r.Name)

	for _, child := range s.Children {
		switch child.Keyword() {
		case "description":
			r.Description = child.Arg()
		case "input":
			r.Input = b.collectLeafs(child.Children, path.Child("input"))
		case "output":
			r.Output = b.collectLeafs(child.Children, path.Child("output"))
		}
	}

	return r
}

// collectLeafs flattens every leaf and leaf-list beneath stmts, at any
// depth, in document order. Rpc input/output bodies may nest further
// blocks; only the scalar leafs become call parameters.
func (b *builder) collectLeafs(stmts []*Statement, path schema.Path) []*schema.Parameter {
	var out []*schema.Parameter
	for _, s := range stmts {
		switch s.Keyword() {
		case "leaf":
			if p := b.leaf(s, path, false); p != nil {
				out = append(out, p)
			}
		case "leaf-list":
			if p := b.leaf(s, path, true); p != nil {
				out = append(out, p)
			}
		case "container", "list", "choice", "case":
			scope := path
			if s.HasArg() {
				scope = path.Child(s.Arg())
			}
			out = append(out, b.collectLeafs(s.Children, scope)...)
		case "uses":
			b.uses(s, path)
		}
	}
	return out
}

// leaf builds a Parameter from a leaf or leaf-list block.
func (b *builder) leaf(s *Statement, parent schema.Path, isLeafList bool) *schema.Parameter {
	if !s.HasArg() {
		b.diags.Add(schema.StructuralError(s.Keyword()+" block has no name", s.Line, s.Column))
		return nil
	}

	p := &schema.Parameter{Name: s.Arg()}
	path := parent.Child(p.Name)

	var typeToken string
	var defaultText string
	var hasDefault bool

	for _, child := range s.Children {
		switch child.Keyword() {
		case "type":
			typeToken = child.Arg()
			// enum and range clauses may sit inside the type body:
			// type enumeration { enum "a"; enum "b"; }
			for _, tc := range child.Children {
				switch tc.Keyword() {
				case "enum":
					p.Choices = append(p.Choices, tc.Arg())
				case "range":
					p.Range = tc.Arg()
				}
			}
		case "description":
			p.Description = child.Arg()
		case "default":
			defaultText = child.Arg()
			hasDefault = true
		case "mandatory":
			p.Required = child.Arg() == "true"
		case "range":
			p.Range = child.Arg()
		case "enum":
			p.Choices = append(p.Choices, child.Arg())
		case "uses":
			b.uses(child, path)
		}
	}

	p.Type = b.resolveType(typeToken, isLeafList, path)

	if len(p.Choices) > 0 && p.Type != schema.TypeString {
		b.diags.Add(schema.InvariantViolation(
			fmt.Sprintf("parameter %q has choices but type %q; choices dropped", p.Name, p.Type),
			path.String()))
		p.Choices = nil
	}

	if p.Range != "" {
		if _, err := schema.ParseRange(p.Range); err != nil {
			b.diags.Add(schema.InvariantViolation(
				fmt.Sprintf("parameter %q: %v", p.Name, err),
				path.String()))
		}
	}

	if hasDefault {
		if value, ok := b.convertDefault(defaultText, p.Type, path); ok {
			p.Default = value
		}
	}

	// A required parameter has no fallback. Mandatory wins; the default is
	// dropped with a diagnostic.
	if p.Required && p.Default != nil {
		b.diags.Add(schema.InvariantViolation(
			fmt.Sprintf("parameter %q is mandatory and has a default; default dropped", p.Name),
			path.String()))
		p.Default = nil
	}

	return p
}

// resolveType maps a source type token to a canonical type, recording
// diagnostics for missing and unknown tokens. Leaf-lists are always arrays
// regardless of their element type.
func (b *builder) resolveType(token string, isLeafList bool, path schema.Path) schema.ParamType {
	if isLeafList {
		return schema.TypeArray
	}

	if token == "" {
		b.diags.Add(schema.Diagnostic{
			Kind:     schema.KindUnknownType,
			Severity: schema.SeverityWarning,
			Message:  "leaf has no type; defaulting to string",
			Path:     path.String(),
		})
		return schema.TypeString
	}

	t, known := b.types.Canonical(token)
	if !known {
		b.diags.Add(schema.UnknownType(token, path.String()))
	}
	return t
}

// convertDefault converts default clause text to the parameter's canonical
// type. An inconvertible default is dropped with a diagnostic rather than
// stored with the wrong type.
func (b *builder) convertDefault(text string, t schema.ParamType, path schema.Path) (any, bool) {
	switch t {
	case schema.TypeBoolean:
		v, err := strconv.ParseBool(text)
		if err != nil {
			b.dropDefault(text, t, path)
			return nil, false
		}
		return v, true
	case schema.TypeInteger:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			b.dropDefault(text, t, path)
			return nil, false
		}
		return v, true
	case schema.TypeNumber:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			b.dropDefault(text, t, path)
			return nil, false
		}
		return v, true
	default:
		return text, true
	}
}

func (b *builder) dropDefault(text string, t schema.ParamType, path schema.Path) {
	b.diags.Add(schema.InvariantViolation(
		fmt.Sprintf("default %q is not a valid %s; dropped", text, t),
		path.String()))
}

// uses records the diagnostic for an unexpanded grouping reference.
func (b *builder) uses(s *Statement, path schema.Path) {
	name := s.Arg()
	if name == "" {
		name = "(unnamed)"
	}
	b.diags.Add(schema.Unsupported(
		fmt.Sprintf("uses %q: grouping expansion is not supported", name),
		path.String()))
}
