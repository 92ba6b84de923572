// Package analyze builds the schema IR by walking an instantiated
// configuration tree through the capability.Node contract.
//
// Each child of a node is classified by its capability set: keyed nodes
// supporting create are lists, nodes with children are containers, nodes
// with a scalar value are parameters, and anything else is skipped with a
// diagnostic. Container and list fragments are additionally labeled service
// or config; what counts as a service is a predicate, not a hard rule, so
// deployments can match their backend's conventions.
//
// The walk never fails. Every per-node probe or read error is recorded as a
// diagnostic and the walk continues with the remaining siblings; the result
// always carries whatever was discovered.
package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/yanggen/core/capability"
	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/typemap"
)

// DefaultMaxDepth bounds tree depth, matching the parser's limit. Nodes
// deeper than this are skipped with a diagnostic instead of recursing
// without bound.
const DefaultMaxDepth = 64

// FragmentKind labels a discovered container or list fragment.
type FragmentKind string

const (
	// FragmentService marks fragments whose capability set satisfies the
	// service predicate.
	FragmentService FragmentKind = "service"

	// FragmentConfig marks every other container or list fragment.
	FragmentConfig FragmentKind = "config"
)

// Predicate decides whether a fragment's capability set makes it
// service-like.
type Predicate func(capability.Set) bool

// DefaultServicePredicate treats fragments supporting both create and
// delete as services.
func DefaultServicePredicate(s capability.Set) bool {
	return s.Create && s.Delete
}

// Result is one analysis pass over a backend tree.
type Result struct {
	// Module is the assembled IR. Never nil; partial on walk errors.
	Module *schema.Module

	// Kinds labels each container and list fragment by its scope path.
	Kinds map[string]FragmentKind
}

// Option configures an analysis pass.
type Option func(*walker)

// WithMaxDepth overrides the depth limit.
func WithMaxDepth(n int) Option {
	return func(w *walker) {
		if n > 0 {
			w.maxDepth = n
		}
	}
}

// WithServicePredicate replaces the service classification rule.
func WithServicePredicate(p Predicate) Option {
	return func(w *walker) {
		if p != nil {
			w.serviceLike = p
		}
	}
}

var errDepthLimit = errors.New("nesting depth exceeds limit; subtree skipped")

// Analyze walks root and assembles a module named name.
func Analyze(name string, root capability.Node, opts ...Option) (*Result, schema.Diagnostics) {
	var diags schema.Diagnostics

	res := &Result{
		Module: &schema.Module{Name: name},
		Kinds:  make(map[string]FragmentKind),
	}

	w := &walker{
		maxDepth:    DefaultMaxDepth,
		serviceLike: DefaultServicePredicate,
		kinds:       res.Kinds,
		diags:       &diags,
	}
	for _, opt := range opts {
		opt(w)
	}

	path := schema.NewPath(name)

	if root == nil {
		diags.Add(schema.ReflectionError(path.String(), errors.New("root node is nil")))
		return res, diags
	}

	kids, err := root.Children()
	if err != nil {
		diags.Add(schema.ReflectionError(path.String(), fmt.Errorf("list children: %w", err)))
		return res, diags
	}

	var top children
	for _, child := range kids {
		w.classify(child, path, 1, &top)
	}

	res.Module.Parameters = top.params
	res.Module.Containers = top.containers
	res.Module.Lists = top.lists

	return res, diags
}

// walker carries the per-pass state.
type walker struct {
	maxDepth    int
	serviceLike Predicate
	kinds       map[string]FragmentKind
	diags       *schema.Diagnostics
}

// children accumulates one structural level of the tree. key records the
// name of the first keyed scalar child, the backend's way of exposing a
// list's key.
type children struct {
	params     []*schema.Parameter
	containers []*schema.Container
	lists      []*schema.ListNode
	key        string
}

// classify sorts one node into its parent's accumulator, recursing for
// structural nodes.
func (w *walker) classify(n capability.Node, parent schema.Path, depth int, out *children) {
	name := n.Name()
	path := parent.Child(name)

	set, probeErr := capability.Probe(n)
	if probeErr != nil {
		w.diags.Add(schema.ReflectionError(path.String(), fmt.Errorf("read value: %w", probeErr)))
	}

	if set.Scalar {
		p := &schema.Parameter{Name: name}
		t, ok := typemap.RuntimeKind(set.Value)
		p.Type = t
		if !ok {
			w.diags.Add(schema.Diagnostic{
				Kind:     schema.KindUnknownType,
				Severity: schema.SeverityWarning,
				Message:  fmt.Sprintf("parameter %q has no observable sample; defaulting to string", name),
				Path:     path.String(),
			})
		}
		if set.Keyed && out.key == "" {
			out.key = name
		}
		out.params = append(out.params, p)
		return
	}

	if depth > w.maxDepth {
		w.diags.Add(schema.ReflectionError(path.String(), errDepthLimit))
		return
	}

	kids, kidsErr := n.Children()
	if kidsErr != nil {
		w.diags.Add(schema.ReflectionError(path.String(), fmt.Errorf("list children: %w", kidsErr)))
	}

	listLike := set.Keyed && set.Create
	if !listLike && len(kids) == 0 {
		// Unclassifiable. Report once; a failed probe or read already did.
		if kidsErr == nil && probeErr == nil {
			w.diags.Add(schema.Unsupported(
				fmt.Sprintf("node %q has no value and no children; skipped", name),
				path.String()))
		}
		return
	}

	var sub children
	for _, kid := range kids {
		w.classify(kid, path, depth+1, &sub)
	}

	w.kinds[path.String()] = w.kindOf(set)

	if listLike {
		l := &schema.ListNode{
			Name:       name,
			Key:        sub.key,
			Parameters: sub.params,
			Containers: sub.containers,
		}
		// The IR has no list-under-list shape; report and drop, pruning the
		// dropped fragment's classification entries.
		for _, nested := range sub.lists {
			w.diags.Add(schema.Unsupported(
				fmt.Sprintf("list %q nests list %q; not representable, skipped", name, nested.Name),
				path.String()))
			w.prune(path.Child(nested.Name).String())
		}
		if kp := l.KeyParameter(); kp != nil {
			kp.Required = true
		}
		out.lists = append(out.lists, l)
		return
	}

	out.containers = append(out.containers, &schema.Container{
		Name:       name,
		Parameters: sub.params,
		Containers: sub.containers,
		Lists:      sub.lists,
	})
}

func (w *walker) kindOf(s capability.Set) FragmentKind {
	if w.serviceLike(s) {
		return FragmentService
	}
	return FragmentConfig
}

// prune removes a dropped fragment and everything beneath it from the
// classification map.
func (w *walker) prune(path string) {
	for k := range w.kinds {
		if k == path || strings.HasPrefix(k, path+".") {
			delete(w.kinds, k)
		}
	}
}
