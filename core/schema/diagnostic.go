package schema

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies what went wrong.
type DiagnosticKind string

const (
	// KindStructuralParse marks unbalanced or unterminated blocks and other
	// text-level damage. The block is skipped; siblings continue.
	KindStructuralParse DiagnosticKind = "structural-parse-error"

	// KindUnknownType marks a type token absent from the mapping table.
	// The parameter is defaulted to string.
	KindUnknownType DiagnosticKind = "unknown-type"

	// KindReflectionAccess marks a failed capability probe or read on a
	// live node. The node is skipped; the walk continues.
	KindReflectionAccess DiagnosticKind = "reflection-access-error"

	// KindInvariant marks a generation invariant violation, such as a list
	// without an identifiable key or a tool name conflict. Fatal only in
	// strict mode.
	KindInvariant DiagnosticKind = "generation-invariant-violation"

	// KindUnsupported marks constructs that are recognized but deliberately
	// not expanded, such as a "uses" reference to a grouping.
	KindUnsupported DiagnosticKind = "unsupported-feature"
)

// Severity grades a diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal finding produced during parsing, analysis, or
// generation. Passes collect diagnostics and keep going; one malformed block
// never aborts processing of the rest of the input.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Message  string         `json:"message" yaml:"message"`

	// Path locates the finding in the tree (dotted scope), when known.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Line and Column locate the finding in source text. Zero when the
	// source is not text (reflective route, programmatic trees).
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// String renders the diagnostic in a single grep-friendly line.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Path != "" {
		fmt.Fprintf(&b, " (at %s)", d.Path)
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, " (line %d", d.Line)
		if d.Column > 0 {
			fmt.Fprintf(&b, ", col %d", d.Column)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Diagnostics is the collection every pass returns alongside its result.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(d Diagnostic) {
	*ds = append(*ds, d)
}

// Merge appends all diagnostics from other.
func (ds *Diagnostics) Merge(other Diagnostics) {
	*ds = append(*ds, other...)
}

// HasErrors reports whether any diagnostic has error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// OfKind returns the diagnostics of one kind, preserving order.
func (ds Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// StructuralError builds a parse diagnostic at a text position.
func StructuralError(msg string, line, col int) Diagnostic {
	return Diagnostic{
		Kind:     KindStructuralParse,
		Severity: SeverityError,
		Message:  msg,
		Line:     line,
		Column:   col,
	}
}

// UnknownType builds the warning recorded when a type token is not in the
// mapping table.
func UnknownType(token, path string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnknownType,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("unknown type %q, defaulting to string", token),
		Path:     path,
	}
}

// ReflectionError builds the diagnostic recorded when a live node read or
// probe fails.
func ReflectionError(path string, err error) Diagnostic {
	return Diagnostic{
		Kind:     KindReflectionAccess,
		Severity: SeverityWarning,
		Message:  err.Error(),
		Path:     path,
	}
}

// InvariantViolation builds a generation invariant diagnostic. Strict mode
// promotes these to failures.
func InvariantViolation(msg, path string) Diagnostic {
	return Diagnostic{
		Kind:     KindInvariant,
		Severity: SeverityWarning,
		Message:  msg,
		Path:     path,
	}
}

// Unsupported builds the note recorded for recognized-but-unexpanded
// constructs.
func Unsupported(msg, path string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnsupported,
		Severity: SeverityInfo,
		Message:  msg,
		Path:     path,
	}
}
