// Package snapshot loads model snapshots from YAML documents and exposes
// them as capability.Node trees, so reflective analysis can run offline
// against a captured model instead of a live backend.
//
// The document format mirrors the capability surface: every node has a
// name, optional capability flags, an optional scalar value, and an ordered
// list of children. Child order in the document is the declaration order
// the analyzer sees.
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artpar/yanggen/core/capability"
)

// Node is one node of a loaded snapshot tree.
type Node struct {
	name     string
	keyed    bool
	create   bool
	del      bool
	hasValue bool
	value    any
	children []*Node
}

// nodeDoc is the YAML document shape.
type nodeDoc struct {
	Name     string    `yaml:"name"`
	Keyed    bool      `yaml:"keyed,omitempty"`
	Create   bool      `yaml:"create,omitempty"`
	Delete   bool      `yaml:"delete,omitempty"`
	Value    any       `yaml:"value,omitempty"`
	Children []nodeDoc `yaml:"children,omitempty"`
}

// Parse decodes a YAML snapshot document into a node tree.
func Parse(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("snapshot root has no name")
	}
	return build(doc, "")
}

// Load reads and parses a snapshot document from a file.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Parse(data)
}

func build(doc nodeDoc, parent string) (*Node, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("snapshot node under %q has no name", parent)
	}

	n := &Node{
		name:     doc.Name,
		keyed:    doc.Keyed,
		create:   doc.Create,
		del:      doc.Delete,
		hasValue: doc.Value != nil,
		value:    doc.Value,
	}
	for _, child := range doc.Children {
		built, err := build(child, doc.Name)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, built)
	}
	return n, nil
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// IsKeyed reports whether entries are addressed by key.
func (n *Node) IsKeyed() bool { return n.keyed }

// SupportsCreate reports whether the node accepts create.
func (n *Node) SupportsCreate() bool { return n.create }

// SupportsDelete reports whether the node accepts delete.
func (n *Node) SupportsDelete() bool { return n.del }

// Children returns the child nodes in document order.
func (n *Node) Children() ([]capability.Node, error) {
	out := make([]capability.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

// ScalarValue returns the node's value, or capability.ErrNoValue for
// structural nodes.
func (n *Node) ScalarValue() (any, error) {
	if !n.hasValue {
		return nil, capability.ErrNoValue
	}
	return n.value, nil
}

// Marshal serializes a capability tree back into the snapshot document
// format. It walks the whole tree; a read failure on any node aborts the
// capture.
func Marshal(root capability.Node) ([]byte, error) {
	doc, err := capture(root)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func capture(n capability.Node) (nodeDoc, error) {
	doc := nodeDoc{
		Name:   n.Name(),
		Keyed:  n.IsKeyed(),
		Create: n.SupportsCreate(),
		Delete: n.SupportsDelete(),
	}

	value, err := n.ScalarValue()
	switch {
	case err == nil:
		doc.Value = value
	case errors.Is(err, capability.ErrNoValue):
		// structural node
	default:
		return nodeDoc{}, fmt.Errorf("capture %q: %w", n.Name(), err)
	}

	kids, err := n.Children()
	if err != nil {
		return nodeDoc{}, fmt.Errorf("capture %q: %w", n.Name(), err)
	}
	for _, kid := range kids {
		child, err := capture(kid)
		if err != nil {
			return nodeDoc{}, err
		}
		doc.Children = append(doc.Children, child)
	}
	return doc, nil
}

var _ capability.Node = (*Node)(nil)
