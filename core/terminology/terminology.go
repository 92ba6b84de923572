// Package terminology provides the description phrasing for generated
// tools. Entities that declare their own description keep it; everything
// else gets a synthesized phrase here, so wording is decided in one place
// instead of scattered through the generator.
package terminology

import "fmt"

// Labels contains the phrase parts for one operation kind.
type Labels struct {
	// Verb opens the description (e.g., "Get", "Create").
	Verb string

	// Object is the noun phrase following the entity name
	// (e.g., "configuration", "list entry").
	Object string

	// Note is an optional trailing qualifier rendered in parentheses
	// (e.g., "requires confirm").
	Note string
}

// ForOperation returns the Labels for an operation kind.
func ForOperation(op string) Labels {
	switch op {
	case "get":
		return Labels{Verb: "Get", Object: "configuration"}
	case "create":
		return Labels{Verb: "Create", Object: "configuration"}
	case "update":
		return Labels{Verb: "Update", Object: "configuration"}
	case "delete":
		return Labels{Verb: "Delete", Object: "configuration", Note: "requires confirm"}
	case "add-item":
		return Labels{Verb: "Add", Object: "list entry"}
	case "invoke":
		return Labels{Verb: "Invoke", Object: "operation"}
	default:
		return Labels{Verb: "Operate on", Object: "configuration"}
	}
}

// Describe synthesizes a tool description for an entity that declares none.
func Describe(op, entity string) string {
	l := ForOperation(op)
	s := fmt.Sprintf("%s %s %s", l.Verb, entity, l.Object)
	if l.Note != "" {
		s += " (" + l.Note + ")"
	}
	return s
}

// DescribeIdentity is the docstring text for the injected identity
// parameter.
func DescribeIdentity() string {
	return "Name of the device to operate on"
}

// DescribeConfirm is the docstring text for the injected delete
// confirmation parameter.
func DescribeConfirm() string {
	return "Must be true to confirm the delete"
}
