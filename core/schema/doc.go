/*
Package schema defines the intermediate representation shared by every route
that discovers configuration structure: the text parser, the reflective
analyzer, and everything downstream of them (tool derivation, code emission,
manifest rendering).

# Tree shape

A Module owns ordered child collections:

	module
	├── parameters   (top-level leafs)
	├── containers   (grouping nodes, nest containers and lists)
	├── lists        (keyed repeating entities)
	├── rpcs         (named procedures with input/output parameter sets)
	└── groupings    (parsed but never attached; expansion is out of scope)

Nodes are built once per parse or analysis pass and treated as immutable
afterward. Downstream passes derive from the tree; nothing mutates it.

# Parameters

A Parameter is a scalar (or leaf-list) described by one of five canonical
types: string, integer, boolean, number, array. Two invariants hold for
schema-sourced parameters:

  - non-empty Choices implies type string
  - Required implies no Default (a required parameter has no fallback)

Violations are reported through Diagnostics, never panics.

# Diagnostics

All malformed-input conditions are collected as Diagnostic values returned
alongside the primary result. A pass always returns a usable result; callers
decide whether accumulated diagnostics fail the run (strict mode) or are
reported and tolerated (best effort).
*/
package schema
