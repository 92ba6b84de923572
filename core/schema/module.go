package schema

// Module is the top-level unit of a schema tree. Both discovery routes
// (text parsing and reflective analysis) produce one.
type Module struct {
	// Name is the module identifier. Never empty for a valid module.
	Name string `json:"name" yaml:"name"`

	// Namespace is the module's namespace URI, when declared.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Prefix is the short namespace prefix, when declared.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Description is free-form documentation text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Parameters are leafs declared directly under the module.
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Containers are grouping nodes declared directly under the module.
	Containers []*Container `json:"containers,omitempty" yaml:"containers,omitempty"`

	// Lists are keyed repeating entities declared directly under the module.
	Lists []*ListNode `json:"lists,omitempty" yaml:"lists,omitempty"`

	// Rpcs are the module's named procedures.
	Rpcs []*Rpc `json:"rpcs,omitempty" yaml:"rpcs,omitempty"`

	// Groupings are parsed grouping blocks. They share the container shape
	// but are never attached to the tree; expansion via "uses" is out of
	// scope and referencing one only produces a diagnostic.
	Groupings []*Container `json:"groupings,omitempty" yaml:"groupings,omitempty"`
}

// Container is a named grouping node with no repetition semantics.
type Container struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Containers  []*Container `json:"containers,omitempty" yaml:"containers,omitempty"`
	Lists       []*ListNode  `json:"lists,omitempty" yaml:"lists,omitempty"`
}

// ListNode is a named, keyed repeating entity.
type ListNode struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Key names the Parameter that uniquely identifies an entry. It may be
	// empty for reflectively discovered lists whose backend does not expose
	// key names.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Containers []*Container `json:"containers,omitempty" yaml:"containers,omitempty"`
}

// KeyParameter returns the Parameter named by Key, or nil when Key is empty
// or names no parameter of the list.
func (l *ListNode) KeyParameter() *Parameter {
	if l.Key == "" {
		return nil
	}
	for _, p := range l.Parameters {
		if p.Name == l.Key {
			return p
		}
	}
	return nil
}

// Rpc is a named procedure with input and output parameter sets. Output
// parameters describe the result shape only; they never become call
// parameters.
type Rpc struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Input       []*Parameter `json:"input,omitempty" yaml:"input,omitempty"`
	Output      []*Parameter `json:"output,omitempty" yaml:"output,omitempty"`
}

// ChildNames returns the names of the module's direct children in
// declaration-collection order. Used to check the uniqueness invariant.
func (m *Module) ChildNames() []string {
	names := make([]string, 0, len(m.Parameters)+len(m.Containers)+len(m.Lists)+len(m.Rpcs))
	for _, p := range m.Parameters {
		names = append(names, p.Name)
	}
	for _, c := range m.Containers {
		names = append(names, c.Name)
	}
	for _, l := range m.Lists {
		names = append(names, l.Name)
	}
	for _, r := range m.Rpcs {
		names = append(names, r.Name)
	}
	return names
}

// Empty reports whether the module has no children of any kind.
func (m *Module) Empty() bool {
	return len(m.Parameters) == 0 && len(m.Containers) == 0 &&
		len(m.Lists) == 0 && len(m.Rpcs) == 0
}
