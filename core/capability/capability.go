// Package capability defines the contract a configuration backend exposes
// for schema discovery.
//
// A Node is one position in a backend's configuration tree. The analyzer
// never sees the backend itself, only Nodes: anything that can name itself,
// report what operations it supports, enumerate children, and surrender a
// scalar value can drive schema generation. In-repo implementations live in
// adapters/memory (programmatic trees) and adapters/snapshot (YAML snapshot
// documents).
package capability

import "errors"

// ErrNoValue is returned by ScalarValue when the node is structural rather
// than a scalar leaf. It marks an expected condition, not a backend failure.
var ErrNoValue = errors.New("node has no scalar value")

// Node is a single navigable position in a configuration tree.
type Node interface {
	// Name returns the node's name within its parent scope.
	Name() string

	// IsKeyed reports whether entries under this node are addressed by key.
	IsKeyed() bool

	// SupportsCreate reports whether new entries can be created here.
	SupportsCreate() bool

	// SupportsDelete reports whether this node or its entries can be removed.
	SupportsDelete() bool

	// Children enumerates child nodes in backend order.
	Children() ([]Node, error)

	// ScalarValue returns the node's value when it is a scalar leaf, and
	// ErrNoValue when it is not. Any other error means the backend failed
	// to read the value.
	ScalarValue() (any, error)
}

// Set records the capabilities one node advertises, collected in a single
// probe so classification logic reads from plain fields.
type Set struct {
	// Keyed mirrors IsKeyed.
	Keyed bool

	// Create mirrors SupportsCreate.
	Create bool

	// Delete mirrors SupportsDelete.
	Delete bool

	// Scalar reports whether the node yielded a value.
	Scalar bool

	// Value is the scalar sample when Scalar is true.
	Value any
}

// Probe collects a node's capability set. ErrNoValue from the backend is
// absorbed into Scalar == false; any other read failure is returned so the
// caller can record it and continue with the structural capabilities, which
// are still meaningful.
func Probe(n Node) (Set, error) {
	s := Set{
		Keyed:  n.IsKeyed(),
		Create: n.SupportsCreate(),
		Delete: n.SupportsDelete(),
	}

	v, err := n.ScalarValue()
	if err != nil {
		if errors.Is(err, ErrNoValue) {
			return s, nil
		}
		return s, err
	}

	s.Scalar = true
	s.Value = v
	return s, nil
}
