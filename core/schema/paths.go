package schema

import "strings"

// Path identifies a node by its scope chain from the module name down
// through enclosing container and list names. Scope qualification is what
// keeps derived tool names unique when entities share a local name at
// different nesting levels.
type Path []string

// NewPath starts a path at the module name.
func NewPath(module string) Path {
	return Path{module}
}

// Child returns a new path extended by name. The receiver is copied, never
// shared, so sibling walks cannot clobber each other's scopes.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// String renders the dotted form used in diagnostics ("module.a.status").
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Join renders the path with a custom separator. Tool names use "_".
func (p Path) Join(sep string) string {
	return strings.Join(p, sep)
}

// Base returns the final element, or "" for an empty path.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its final element.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p)-1)
	copy(out, p[:len(p)-1])
	return out
}
