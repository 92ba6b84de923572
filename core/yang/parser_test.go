package yang

import (
	"strings"
	"testing"

	"github.com/artpar/yanggen/core/schema"
	"github.com/artpar/yanggen/core/typemap"
)

func TestParseFullModule(t *testing.T) {
	text := `
module example {
  namespace "urn:example:svc";
  prefix ex;
  description "Example service schema";

  container service {
    description "Service settings";
    leaf service-name {
      type string;
      description "Name of the service";
      mandatory true;
    }
    leaf enabled {
      type boolean;
      default true;
    }
  }

  list endpoint {
    key address;
    leaf address { type string; }
    leaf port {
      type uint16;
      default 80;
      range "1..65535";
    }
  }

  rpc start-service {
    input {
      leaf service-name { type string; mandatory true; }
    }
    output {
      leaf status { type string; }
    }
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("Parse returned %d diagnostics, want 0: %v", len(diags), diags)
	}

	if mod.Name != "example" {
		t.Errorf("Name = %q, want %q", mod.Name, "example")
	}
	if mod.Namespace != "urn:example:svc" {
		t.Errorf("Namespace = %q, want %q", mod.Namespace, "urn:example:svc")
	}
	if mod.Prefix != "ex" {
		t.Errorf("Prefix = %q, want %q", mod.Prefix, "ex")
	}

	if len(mod.Containers) != 1 {
		t.Fatalf("Containers = %d, want 1", len(mod.Containers))
	}
	svc := mod.Containers[0]
	if svc.Name != "service" || svc.Description != "Service settings" {
		t.Errorf("container = %q/%q", svc.Name, svc.Description)
	}
	if len(svc.Parameters) != 2 {
		t.Fatalf("service parameters = %d, want 2", len(svc.Parameters))
	}
	if p := svc.Parameters[0]; !p.Required || p.Type != schema.TypeString || p.Name != "service-name" {
		t.Errorf("service-name = %+v", p)
	}
	if p := svc.Parameters[1]; p.Required || p.Default != true || p.Type != schema.TypeBoolean {
		t.Errorf("enabled = %+v", p)
	}

	if len(mod.Lists) != 1 {
		t.Fatalf("Lists = %d, want 1", len(mod.Lists))
	}
	ep := mod.Lists[0]
	if ep.Key != "address" {
		t.Errorf("Key = %q, want address", ep.Key)
	}
	if kp := ep.KeyParameter(); kp == nil || !kp.Required {
		t.Errorf("key parameter should exist and be required, got %+v", kp)
	}
	if p := ep.Parameters[1]; p.Default != int64(80) || p.Range != "1..65535" || p.Type != schema.TypeInteger {
		t.Errorf("port = %+v", p)
	}

	if len(mod.Rpcs) != 1 {
		t.Fatalf("Rpcs = %d, want 1", len(mod.Rpcs))
	}
	rpc := mod.Rpcs[0]
	if rpc.Name != "start-service" {
		t.Errorf("rpc name = %q", rpc.Name)
	}
	if len(rpc.Input) != 1 || rpc.Input[0].Name != "service-name" || !rpc.Input[0].Required {
		t.Errorf("rpc input = %+v", rpc.Input)
	}
	if len(rpc.Output) != 1 || rpc.Output[0].Name != "status" {
		t.Errorf("rpc output = %+v", rpc.Output)
	}
}

func TestParseEmptyModule(t *testing.T) {
	mod, diags := New().Parse("module m { }")
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
	if mod.Name != "m" {
		t.Errorf("Name = %q, want m", mod.Name)
	}
	if !mod.Empty() {
		t.Errorf("module should be empty: %+v", mod)
	}
}

func TestParseNestedSameKeyword(t *testing.T) {
	// Containers nesting containers beyond one level is exactly where
	// regex-based extraction used to break.
	text := `
module m {
  container outer {
    container middle {
      container inner {
        leaf deep { type string; }
      }
    }
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	outer := mod.Containers[0]
	if outer.Name != "outer" || len(outer.Containers) != 1 {
		t.Fatalf("outer = %+v", outer)
	}
	middle := outer.Containers[0]
	if middle.Name != "middle" || len(middle.Containers) != 1 {
		t.Fatalf("middle = %+v", middle)
	}
	inner := middle.Containers[0]
	if inner.Name != "inner" || len(inner.Parameters) != 1 || inner.Parameters[0].Name != "deep" {
		t.Fatalf("inner = %+v", inner)
	}
}

func TestParseRpcInputNestsBlocks(t *testing.T) {
	// Leafs inside nested blocks of an rpc input flatten into the input
	// parameter list in document order.
	text := `
module m {
  rpc reconcile {
    input {
      leaf dry-run { type boolean; default false; }
      container target {
        leaf device { type string; mandatory true; }
      }
    }
    output {
      leaf changed { type boolean; }
    }
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	rpc := mod.Rpcs[0]
	if len(rpc.Input) != 2 {
		t.Fatalf("input = %+v, want 2 parameters", rpc.Input)
	}
	if rpc.Input[0].Name != "dry-run" || rpc.Input[1].Name != "device" {
		t.Errorf("input order = [%s, %s]", rpc.Input[0].Name, rpc.Input[1].Name)
	}
	if len(rpc.Output) != 1 || rpc.Output[0].Name != "changed" {
		t.Errorf("output = %+v", rpc.Output)
	}
}

func TestParseLeafList(t *testing.T) {
	text := `
module m {
  leaf-list dns-servers {
    type string;
    description "Name servers";
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	if len(mod.Parameters) != 1 {
		t.Fatalf("parameters = %d", len(mod.Parameters))
	}
	if p := mod.Parameters[0]; p.Type != schema.TypeArray || p.Name != "dns-servers" {
		t.Errorf("leaf-list = %+v", p)
	}
}

func TestParseEnumForms(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "enum inside type body",
			text: `module m { leaf protocol { type enumeration { enum "ospf"; enum "bgp"; } } }`,
		},
		{
			name: "enum clauses in leaf body",
			text: `module m { leaf protocol { type string; enum "ospf"; enum "bgp"; } }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, diags := New().Parse(tt.text)
			if len(diags) != 0 {
				t.Fatalf("diagnostics: %v", diags)
			}
			p := mod.Parameters[0]
			if p.Type != schema.TypeString {
				t.Errorf("Type = %s, want string", p.Type)
			}
			if len(p.Choices) != 2 || p.Choices[0] != "ospf" || p.Choices[1] != "bgp" {
				t.Errorf("Choices = %v", p.Choices)
			}
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		kind     schema.DiagnosticKind
		contains string
	}{
		{
			name:     "unknown type",
			text:     `module m { leaf x { type frobnicated64; } }`,
			kind:     schema.KindUnknownType,
			contains: "frobnicated64",
		},
		{
			name:     "missing type",
			text:     `module m { leaf x { description "no type"; } }`,
			kind:     schema.KindUnknownType,
			contains: "no type",
		},
		{
			name:     "mandatory with default",
			text:     `module m { leaf x { type string; mandatory true; default "a"; } }`,
			kind:     schema.KindInvariant,
			contains: "default dropped",
		},
		{
			name:     "inconvertible default",
			text:     `module m { leaf x { type uint8; default banana; } }`,
			kind:     schema.KindInvariant,
			contains: "not a valid integer",
		},
		{
			name:     "bad range clause",
			text:     `module m { leaf x { type uint8; range "1..lots"; } }`,
			kind:     schema.KindInvariant,
			contains: "not numeric",
		},
		{
			name:     "uses reference",
			text:     `module m { container c { uses common-leafs; } }`,
			kind:     schema.KindUnsupported,
			contains: "grouping expansion",
		},
		{
			name:     "compound key",
			text:     `module m { list l { key "a b"; leaf a { type string; } leaf b { type string; } } }`,
			kind:     schema.KindUnsupported,
			contains: "compound key",
		},
		{
			name:     "unnamed container",
			text:     `module m { container { leaf x { type string; } } }`,
			kind:     schema.KindStructuralParse,
			contains: "no name",
		},
		{
			name:     "stray closing brace",
			text:     `} module m { }`,
			kind:     schema.KindStructuralParse,
			contains: "unexpected '}'",
		},
		{
			name:     "no module",
			text:     `container x { }`,
			kind:     schema.KindStructuralParse,
			contains: "no module block",
		},
		{
			name:     "second module ignored",
			text:     `module a { } module b { }`,
			kind:     schema.KindUnsupported,
			contains: "multiple module blocks",
		},
		{
			name:     "unterminated string",
			text:     "module m { leaf x { type string; description \"oops; } }",
			kind:     schema.KindStructuralParse,
			contains: "unterminated string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, diags := New().Parse(tt.text)
			if mod == nil {
				t.Fatal("Parse returned nil module")
			}

			found := false
			for _, d := range diags {
				if d.Kind == tt.kind && strings.Contains(d.Message, tt.contains) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no %s diagnostic containing %q in %v", tt.kind, tt.contains, diags)
			}
		})
	}
}

func TestParseRecovery(t *testing.T) {
	// One unterminated sibling among three: the damaged block is dropped,
	// the well-formed siblings survive, and at least one diagnostic points
	// at the damage.
	text := `
module m {
  container a { leaf x { type string; } }
  container b { leaf y { type string; } }
  container bad {
`
	mod, diags := New().Parse(text)

	if len(mod.Containers) != 2 {
		t.Fatalf("Containers = %d, want 2 (a and b)", len(mod.Containers))
	}
	if mod.Containers[0].Name != "a" || mod.Containers[1].Name != "b" {
		t.Errorf("containers = %s, %s", mod.Containers[0].Name, mod.Containers[1].Name)
	}

	structural := diags.OfKind(schema.KindStructuralParse)
	if len(structural) == 0 {
		t.Fatal("no structural diagnostic for unterminated block")
	}
	if !strings.Contains(structural[0].Message, "container bad") {
		t.Errorf("diagnostic should name the damaged block: %v", structural[0])
	}
}

func TestParseRecoveryDeepDamage(t *testing.T) {
	// When the unterminated block is a leaf deep inside a container, the
	// leaf is discarded but every enclosing block keeps what parsed.
	text := `
module m {
  container a { leaf x { type string; } }
  container bad {
    leaf ok { type string; }
    leaf broken { type string;
`
	mod, diags := New().Parse(text)

	if len(mod.Containers) != 2 {
		t.Fatalf("Containers = %d, want 2", len(mod.Containers))
	}
	bad := mod.Containers[1]
	if len(bad.Parameters) != 1 || bad.Parameters[0].Name != "ok" {
		t.Errorf("bad container should keep leaf ok, got %+v", bad.Parameters)
	}
	if len(diags.OfKind(schema.KindStructuralParse)) == 0 {
		t.Error("expected a structural diagnostic")
	}
}

func TestParseDepthLimit(t *testing.T) {
	text := `
module m {
  container c1 {
    container c2 {
      container c3 {
        leaf deep { type string; }
      }
    }
    leaf shallow { type string; }
  }
}
`
	mod, diags := New(WithMaxDepth(3)).Parse(text)

	c1 := mod.Containers[0]
	if len(c1.Containers) != 1 {
		t.Fatalf("c1 children = %d, want 1", len(c1.Containers))
	}
	c2 := c1.Containers[0]
	if len(c2.Containers) != 0 {
		t.Errorf("c3 should have been skipped, got %+v", c2.Containers)
	}
	if len(c1.Parameters) != 1 || c1.Parameters[0].Name != "shallow" {
		t.Errorf("sibling leaf after skipped block should survive, got %+v", c1.Parameters)
	}

	found := false
	for _, d := range diags {
		if d.Kind == schema.KindStructuralParse && strings.Contains(d.Message, "depth") {
			found = true
		}
	}
	if !found {
		t.Errorf("no depth diagnostic in %v", diags)
	}
}

func TestParseGroupingsUnattached(t *testing.T) {
	text := `
module m {
  grouping common {
    leaf shared { type string; }
  }
  container real {
    leaf own { type string; }
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	if len(mod.Groupings) != 1 || mod.Groupings[0].Name != "common" {
		t.Fatalf("Groupings = %+v", mod.Groupings)
	}
	if len(mod.Containers) != 1 || mod.Containers[0].Name != "real" {
		t.Errorf("grouping leaked into containers: %+v", mod.Containers)
	}
}

func TestParseCommentsAndQuoting(t *testing.T) {
	text := `
// header comment
module m {
  /* block comment
     spanning lines */
  container service {
    leaf note { type string; default 'single quoted'; } // trailing
  }
}
`
	mod, diags := New().Parse(text)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}
	p := mod.Containers[0].Parameters[0]
	if p.Default != "single quoted" {
		t.Errorf("Default = %v", p.Default)
	}
}

func TestParseTypeOverrides(t *testing.T) {
	tbl, err := typemap.NewTable(map[string]string{"vendor-percent": "integer"})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	mod, diags := New(WithTypeTable(tbl)).Parse(
		`module m { leaf load { type vendor-percent; } }`)
	if len(diags) != 0 {
		t.Fatalf("override should suppress the unknown-type diagnostic: %v", diags)
	}
	if mod.Parameters[0].Type != schema.TypeInteger {
		t.Errorf("Type = %s, want integer", mod.Parameters[0].Type)
	}
}

func TestParseNeverReturnsNilModule(t *testing.T) {
	tests := []string{
		"",
		"}{",
		"module",
		"module m",
		"module m {",
		`"just a string"`,
		";;;",
	}

	for _, text := range tests {
		mod, _ := New().Parse(text)
		if mod == nil {
			t.Errorf("Parse(%q) returned nil module", text)
		}
	}
}
