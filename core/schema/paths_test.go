package schema

import "testing"

func TestPathChild(t *testing.T) {
	root := NewPath("m")
	a := root.Child("a")
	b := root.Child("b")

	if got := a.String(); got != "m.a" {
		t.Errorf("a.String() = %q, want %q", got, "m.a")
	}
	if got := b.String(); got != "m.b" {
		t.Errorf("b.String() = %q, want %q", got, "m.b")
	}
	if got := root.String(); got != "m" {
		t.Errorf("root mutated by Child: %q", got)
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	// Two children extended from the same parent must not share storage;
	// sibling walks extend paths concurrently in document order.
	parent := NewPath("m").Child("a")
	first := parent.Child("x")
	second := parent.Child("y")

	if first.String() != "m.a.x" {
		t.Errorf("first = %q, want m.a.x", first.String())
	}
	if second.String() != "m.a.y" {
		t.Errorf("second = %q, want m.a.y", second.String())
	}
}

func TestPathJoinAndBase(t *testing.T) {
	p := NewPath("m").Child("a").Child("status")

	if got := p.Join("_"); got != "m_a_status" {
		t.Errorf("Join = %q, want %q", got, "m_a_status")
	}
	if got := p.Base(); got != "status" {
		t.Errorf("Base = %q, want %q", got, "status")
	}
	if got := p.Parent().String(); got != "m.a" {
		t.Errorf("Parent = %q, want %q", got, "m.a")
	}
}

func TestDiagnosticString(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "text position",
			diag: StructuralError("unterminated block", 12, 3),
			want: "error: structural-parse-error: unterminated block (line 12, col 3)",
		},
		{
			name: "path only",
			diag: UnknownType("frobnicated64", "m.service.x"),
			want: `warning: unknown-type: unknown type "frobnicated64", defaulting to string (at m.service.x)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.diag.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticsHelpers(t *testing.T) {
	var ds Diagnostics
	ds.Add(UnknownType("x", "m.a"))
	ds.Add(StructuralError("bad", 1, 1))
	ds.Merge(Diagnostics{Unsupported("uses ref", "m.b")})

	if len(ds) != 3 {
		t.Fatalf("len = %d, want 3", len(ds))
	}
	if !ds.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if got := len(ds.OfKind(KindUnknownType)); got != 1 {
		t.Errorf("OfKind(unknown-type) = %d entries, want 1", got)
	}
}
