// Package memory provides an in-memory capability.Node tree. It backs tests
// and programmatic schema definition where no snapshot or live source
// exists.
package memory

import (
	"github.com/artpar/yanggen/core/capability"
)

// Node is an in-memory implementation of capability.Node. Trees are built
// with the New* constructors and the chainable setters, then handed to the
// analyzer as the root.
type Node struct {
	name     string
	keyed    bool
	create   bool
	del      bool
	scalar   bool
	value    any
	children []*Node

	childErr error
	valueErr error
}

// NewScalar creates a leaf node carrying a sample value.
func NewScalar(name string, value any) *Node {
	return &Node{name: name, scalar: true, value: value}
}

// NewContainer creates a structural node with the given children.
func NewContainer(name string, children ...*Node) *Node {
	return &Node{name: name, children: children}
}

// NewList creates a keyed collection node: entries are addressed by key and
// can be created and deleted.
func NewList(name string, children ...*Node) *Node {
	return &Node{
		name:     name,
		keyed:    true,
		create:   true,
		del:      true,
		children: children,
	}
}

// NewService creates a container that supports create and delete without
// keyed addressing, the shape service fragments take on most backends.
func NewService(name string, children ...*Node) *Node {
	return &Node{
		name:     name,
		create:   true,
		del:      true,
		children: children,
	}
}

// Add appends children and returns the node for chaining.
func (n *Node) Add(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Keyed marks the node as key-addressed.
func (n *Node) Keyed() *Node {
	n.keyed = true
	return n
}

// Creatable marks the node as supporting create.
func (n *Node) Creatable() *Node {
	n.create = true
	return n
}

// Deletable marks the node as supporting delete.
func (n *Node) Deletable() *Node {
	n.del = true
	return n
}

// FailChildren makes Children return err, for exercising walk error paths.
func (n *Node) FailChildren(err error) *Node {
	n.childErr = err
	return n
}

// FailValue makes ScalarValue return err instead of a value.
func (n *Node) FailValue(err error) *Node {
	n.valueErr = err
	return n
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// IsKeyed reports whether entries are addressed by key.
func (n *Node) IsKeyed() bool { return n.keyed }

// SupportsCreate reports whether new entries can be created here.
func (n *Node) SupportsCreate() bool { return n.create }

// SupportsDelete reports whether the node or its entries can be removed.
func (n *Node) SupportsDelete() bool { return n.del }

// Children returns child nodes in insertion order.
func (n *Node) Children() ([]capability.Node, error) {
	if n.childErr != nil {
		return nil, n.childErr
	}

	out := make([]capability.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out, nil
}

// ScalarValue returns the sample value for scalar nodes and
// capability.ErrNoValue for structural ones.
func (n *Node) ScalarValue() (any, error) {
	if n.valueErr != nil {
		return nil, n.valueErr
	}
	if !n.scalar {
		return nil, capability.ErrNoValue
	}
	return n.value, nil
}

// Ensure interface compliance.
var _ capability.Node = (*Node)(nil)
