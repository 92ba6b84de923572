package typemap

import (
	"testing"

	"github.com/artpar/yanggen/core/schema"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		token string
		want  schema.ParamType
		known bool
	}{
		{"string", schema.TypeString, true},
		{"boolean", schema.TypeBoolean, true},
		{"empty", schema.TypeBoolean, true},
		{"int8", schema.TypeInteger, true},
		{"uint64", schema.TypeInteger, true},
		{"decimal64", schema.TypeNumber, true},
		{"enumeration", schema.TypeString, true},
		{"identityref", schema.TypeString, true},
		{"instance-identifier", schema.TypeString, true},
		{"leafref", schema.TypeString, true},
		{"binary", schema.TypeString, true},
		{"bits", schema.TypeString, true},
		{"union", schema.TypeString, true},
		{"frobnicated64", schema.TypeString, false},
		{"", schema.TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, known := Canonical(tt.token)
			if got != tt.want || known != tt.known {
				t.Errorf("Canonical(%q) = (%s, %v), want (%s, %v)",
					tt.token, got, known, tt.want, tt.known)
			}
		})
	}
}

func TestTableOverrides(t *testing.T) {
	tbl, err := NewTable(map[string]string{
		"vendor-percent": "integer",
		"uint32":         "string",
	})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	if got, known := tbl.Canonical("vendor-percent"); got != schema.TypeInteger || !known {
		t.Errorf("override miss: got (%s, %v)", got, known)
	}
	// Overrides shadow the builtin table.
	if got, _ := tbl.Canonical("uint32"); got != schema.TypeString {
		t.Errorf("shadowed builtin: got %s, want string", got)
	}
	// Untouched tokens still resolve.
	if got, known := tbl.Canonical("boolean"); got != schema.TypeBoolean || !known {
		t.Errorf("builtin passthrough: got (%s, %v)", got, known)
	}

	var nilTable *Table
	if got, known := nilTable.Canonical("int8"); got != schema.TypeInteger || !known {
		t.Errorf("nil table: got (%s, %v)", got, known)
	}
}

func TestNewTableRejectsBadTarget(t *testing.T) {
	if _, err := NewTable(map[string]string{"x": "float"}); err == nil {
		t.Fatal("NewTable accepted non-canonical target type")
	}
}

func TestRuntimeKind(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  schema.ParamType
		known bool
	}{
		{"bool", true, schema.TypeBoolean, true},
		{"int", 42, schema.TypeInteger, true},
		{"int64", int64(42), schema.TypeInteger, true},
		{"uint8", uint8(1), schema.TypeInteger, true},
		{"float", 2.5, schema.TypeNumber, true},
		{"string", "x", schema.TypeString, true},
		{"slice", []string{"a"}, schema.TypeArray, true},
		{"any slice", []any{1, 2}, schema.TypeArray, true},
		{"nil", nil, schema.TypeString, false},
		{"map", map[string]int{}, schema.TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := RuntimeKind(tt.value)
			if got != tt.want || known != tt.known {
				t.Errorf("RuntimeKind(%v) = (%s, %v), want (%s, %v)",
					tt.value, got, known, tt.want, tt.known)
			}
		})
	}
}
