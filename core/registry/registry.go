// Package registry tracks generated tool names within one generation pass
// and rejects collisions. Every tool the generator produces is registered
// here; a second claim on the same name is a conflict the generator turns
// into a diagnostic (or a failure in strict mode).
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Entry describes one registered tool.
type Entry struct {
	// Name is the tool's unique name.
	Name string

	// Scope is the IR path the tool was derived from.
	Scope string

	// Operation is the tool's operation kind (get, create, ...).
	Operation string
}

// ConflictError reports a tool name claimed twice.
type ConflictError struct {
	// Name is the contested tool name.
	Name string

	// Holder is the scope that registered the name first.
	Holder string

	// Claimant is the scope whose registration was rejected.
	Claimant string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tool name %q already registered by %s; rejected claim from %s",
		e.Name, e.Holder, e.Claimant)
}

// Registry is a name-uniqueness ledger for generated tools.
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry

	// order preserves registration order so listings are deterministic.
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register records an entry. A duplicate name returns *ConflictError and
// leaves the original registration in place.
func (r *Registry) Register(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[e.Name]; ok {
		return &ConflictError{
			Name:     e.Name,
			Holder:   existing.Scope,
			Claimant: e.Scope,
		}
	}

	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
	return nil
}

// Get retrieves an entry by tool name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	return e, ok
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]
	return ok
}

// All returns every entry in registration order.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.entries[name])
	}
	return result
}

// Names returns all registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.entries))
	for name := range r.entries {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
