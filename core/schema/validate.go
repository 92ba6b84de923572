package schema

import "fmt"

// Validate checks the tree invariants of a module and reports violations as
// diagnostics. It never mutates the module. Passes that build modules are
// expected to uphold these invariants themselves; Validate is the backstop
// for programmatically constructed trees.
func Validate(m *Module) Diagnostics {
	var diags Diagnostics

	if m == nil {
		diags.Add(InvariantViolation("module is nil", ""))
		return diags
	}

	if m.Name == "" {
		diags.Add(InvariantViolation("module name is empty", ""))
	} else if !IsValidName(m.Name) {
		diags.Add(InvariantViolation(fmt.Sprintf("module name %q is not a valid identifier", m.Name), ""))
	}

	path := NewPath(m.Name)
	checkDuplicates(m.ChildNames(), path, &diags)

	for _, p := range m.Parameters {
		validateParameter(p, path.Child(p.Name), &diags)
	}

	visited := map[*Container]bool{}
	for _, c := range m.Containers {
		validateContainer(c, path.Child(c.Name), visited, &diags)
	}
	for _, l := range m.Lists {
		validateList(l, path.Child(l.Name), visited, &diags)
	}
	for _, r := range m.Rpcs {
		rpcPath := path.Child(r.Name)
		for _, p := range r.Input {
			validateParameter(p, rpcPath.Child(p.Name), &diags)
		}
		for _, p := range r.Output {
			validateParameter(p, rpcPath.Child(p.Name), &diags)
		}
	}
	for _, g := range m.Groupings {
		validateContainer(g, path.Child(g.Name), visited, &diags)
	}

	return diags
}

func validateContainer(c *Container, path Path, visited map[*Container]bool, diags *Diagnostics) {
	if visited[c] {
		diags.Add(Diagnostic{
			Kind:     KindInvariant,
			Severity: SeverityError,
			Message:  fmt.Sprintf("container %q contains itself", c.Name),
			Path:     path.String(),
		})
		return
	}
	visited[c] = true
	defer delete(visited, c)

	if !IsValidName(c.Name) {
		diags.Add(InvariantViolation(fmt.Sprintf("container name %q is not a valid identifier", c.Name), path.String()))
	}

	names := make([]string, 0, len(c.Parameters)+len(c.Containers)+len(c.Lists))
	for _, p := range c.Parameters {
		names = append(names, p.Name)
	}
	for _, child := range c.Containers {
		names = append(names, child.Name)
	}
	for _, l := range c.Lists {
		names = append(names, l.Name)
	}
	checkDuplicates(names, path, diags)

	for _, p := range c.Parameters {
		validateParameter(p, path.Child(p.Name), diags)
	}
	for _, child := range c.Containers {
		validateContainer(child, path.Child(child.Name), visited, diags)
	}
	for _, l := range c.Lists {
		validateList(l, path.Child(l.Name), visited, diags)
	}
}

func validateList(l *ListNode, path Path, visited map[*Container]bool, diags *Diagnostics) {
	if !IsValidName(l.Name) {
		diags.Add(InvariantViolation(fmt.Sprintf("list name %q is not a valid identifier", l.Name), path.String()))
	}

	if l.Key != "" && l.KeyParameter() == nil {
		diags.Add(InvariantViolation(
			fmt.Sprintf("list %q declares key %q but has no such parameter", l.Name, l.Key),
			path.String()))
	}

	names := make([]string, 0, len(l.Parameters)+len(l.Containers))
	for _, p := range l.Parameters {
		names = append(names, p.Name)
	}
	for _, c := range l.Containers {
		names = append(names, c.Name)
	}
	checkDuplicates(names, path, diags)

	for _, p := range l.Parameters {
		validateParameter(p, path.Child(p.Name), diags)
	}
	for _, c := range l.Containers {
		validateContainer(c, path.Child(c.Name), visited, diags)
	}
}

func validateParameter(p *Parameter, path Path, diags *Diagnostics) {
	if !IsValidName(p.Name) {
		diags.Add(InvariantViolation(fmt.Sprintf("parameter name %q is not a valid identifier", p.Name), path.String()))
	}

	if !p.Type.Valid() {
		diags.Add(InvariantViolation(fmt.Sprintf("parameter %q has non-canonical type %q", p.Name, p.Type), path.String()))
	}

	if len(p.Choices) > 0 && p.Type != TypeString {
		diags.Add(InvariantViolation(
			fmt.Sprintf("parameter %q has choices but type %q; choices require string", p.Name, p.Type),
			path.String()))
	}

	if p.Required && p.Default != nil {
		diags.Add(InvariantViolation(
			fmt.Sprintf("parameter %q is required and has a default; a required parameter has no fallback", p.Name),
			path.String()))
	}

	if p.Range != "" {
		if _, err := ParseRange(p.Range); err != nil {
			diags.Add(InvariantViolation(
				fmt.Sprintf("parameter %q: %v", p.Name, err),
				path.String()))
		}
	}
}

func checkDuplicates(names []string, path Path, diags *Diagnostics) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			diags.Add(Diagnostic{
				Kind:     KindInvariant,
				Severity: SeverityError,
				Message:  fmt.Sprintf("duplicate child name %q", name),
				Path:     path.String(),
			})
			continue
		}
		seen[name] = true
	}
}

// IsValidName checks a schema identifier: a letter or underscore followed
// by letters, digits, underscores, hyphens, or dots.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		if i == 0 {
			if !isLetter(c) && c != '_' {
				return false
			}
		} else {
			if !isLetter(c) && !isDigit(c) && c != '_' && c != '-' && c != '.' {
				return false
			}
		}
	}

	return true
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
