package analyze

import (
	"errors"
	"strings"
	"testing"

	"github.com/artpar/yanggen/adapters/memory"
	"github.com/artpar/yanggen/core/capability"
	"github.com/artpar/yanggen/core/schema"
)

func routerTree() *memory.Node {
	return memory.NewContainer("root",
		memory.NewService("service",
			memory.NewScalar("service-name", "web"),
			memory.NewScalar("enabled", true),
		),
		memory.NewList("endpoint",
			memory.NewScalar("address", "10.0.0.1").Keyed(),
			memory.NewScalar("port", 80),
		),
		memory.NewContainer("system",
			memory.NewScalar("hostname", "edge-1"),
		),
	)
}

func TestAnalyzeTree(t *testing.T) {
	res, diags := Analyze("router", routerTree())
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	m := res.Module
	if m.Name != "router" {
		t.Errorf("Name = %q, want router", m.Name)
	}
	if len(m.Containers) != 2 || len(m.Lists) != 1 {
		t.Fatalf("containers = %d, lists = %d, want 2 and 1", len(m.Containers), len(m.Lists))
	}

	svc := m.Containers[0]
	if svc.Name != "service" || len(svc.Parameters) != 2 {
		t.Fatalf("service = %+v", svc)
	}
	if p := svc.Parameters[0]; p.Type != schema.TypeString {
		t.Errorf("service-name type = %s, want string", p.Type)
	}
	if p := svc.Parameters[1]; p.Type != schema.TypeBoolean {
		t.Errorf("enabled type = %s, want boolean", p.Type)
	}

	ep := m.Lists[0]
	if ep.Key != "address" {
		t.Errorf("Key = %q, want address", ep.Key)
	}
	if kp := ep.KeyParameter(); kp == nil || !kp.Required {
		t.Errorf("key parameter = %+v, want required", kp)
	}
	if p := ep.Parameters[1]; p.Type != schema.TypeInteger {
		t.Errorf("port type = %s, want integer", p.Type)
	}
}

func TestAnalyzeFragmentKinds(t *testing.T) {
	res, diags := Analyze("router", routerTree())
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags)
	}

	tests := []struct {
		path string
		want FragmentKind
	}{
		{"router.service", FragmentService},
		{"router.endpoint", FragmentService},
		{"router.system", FragmentConfig},
	}
	for _, tt := range tests {
		if got := res.Kinds[tt.path]; got != tt.want {
			t.Errorf("Kinds[%q] = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAnalyzeCustomPredicate(t *testing.T) {
	keyedOnly := func(s capability.Set) bool { return s.Keyed }

	res, _ := Analyze("router", routerTree(), WithServicePredicate(keyedOnly))

	if got := res.Kinds["router.service"]; got != FragmentConfig {
		t.Errorf("service = %q, want config under keyed-only predicate", got)
	}
	if got := res.Kinds["router.endpoint"]; got != FragmentService {
		t.Errorf("endpoint = %q, want service under keyed-only predicate", got)
	}
}

func TestAnalyzeReadFailureContinues(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewScalar("broken", nil).FailValue(errors.New("backend timeout")),
		memory.NewScalar("fine", "ok"),
	)

	res, diags := Analyze("router", root)

	if len(res.Module.Parameters) != 1 || res.Module.Parameters[0].Name != "fine" {
		t.Fatalf("parameters = %+v, want only fine", res.Module.Parameters)
	}

	access := diags.OfKind(schema.KindReflectionAccess)
	if len(access) != 1 {
		t.Fatalf("reflection diagnostics = %v, want 1", diags)
	}
	if !strings.Contains(access[0].Message, "backend timeout") {
		t.Errorf("message = %q", access[0].Message)
	}
	if access[0].Path != "router.broken" {
		t.Errorf("path = %q, want router.broken", access[0].Path)
	}
}

func TestAnalyzeChildrenFailure(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewContainer("bad").FailChildren(errors.New("walk refused")),
		memory.NewContainer("good", memory.NewScalar("x", 1)),
	)

	res, diags := Analyze("router", root)

	if len(res.Module.Containers) != 1 || res.Module.Containers[0].Name != "good" {
		t.Fatalf("containers = %+v, want only good", res.Module.Containers)
	}
	if len(diags.OfKind(schema.KindReflectionAccess)) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestAnalyzeRootChildrenFailure(t *testing.T) {
	root := memory.NewContainer("root").FailChildren(errors.New("no access"))

	res, diags := Analyze("router", root)

	if res.Module == nil || !res.Module.Empty() {
		t.Errorf("module = %+v, want empty", res.Module)
	}
	if len(diags.OfKind(schema.KindReflectionAccess)) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestAnalyzeNilRoot(t *testing.T) {
	res, diags := Analyze("router", nil)

	if res.Module == nil {
		t.Fatal("module is nil")
	}
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for nil root")
	}
}

func TestAnalyzeDepthLimit(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewContainer("l1",
			memory.NewContainer("l2",
				memory.NewContainer("l3",
					memory.NewScalar("deep", 1),
				),
			),
		),
	)

	res, diags := Analyze("router", root, WithMaxDepth(2))

	l1 := res.Module.Containers[0]
	if len(l1.Containers) != 1 {
		t.Fatalf("l1 children = %+v", l1.Containers)
	}
	if got := len(l1.Containers[0].Containers); got != 0 {
		t.Errorf("l3 should have been skipped, found %d containers", got)
	}

	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "depth") {
			found = true
		}
	}
	if !found {
		t.Errorf("no depth diagnostic in %v", diags)
	}
}

func TestAnalyzeNoObservableSample(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewScalar("mystery", nil),
	)

	res, diags := Analyze("router", root)

	if p := res.Module.Parameters[0]; p.Type != schema.TypeString {
		t.Errorf("type = %s, want string fallback", p.Type)
	}
	if len(diags.OfKind(schema.KindUnknownType)) != 1 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestAnalyzeUnclassifiableNode(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewContainer("husk"),
	)

	_, diags := Analyze("router", root)

	unsupported := diags.OfKind(schema.KindUnsupported)
	if len(unsupported) != 1 || !strings.Contains(unsupported[0].Message, "husk") {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestAnalyzeNestedListDropped(t *testing.T) {
	root := memory.NewContainer("root",
		memory.NewList("outer",
			memory.NewScalar("id", "a").Keyed(),
			memory.NewList("inner",
				memory.NewScalar("sub", 1).Keyed(),
			),
		),
	)

	res, diags := Analyze("router", root)

	outer := res.Module.Lists[0]
	if outer.Key != "id" {
		t.Errorf("Key = %q", outer.Key)
	}

	found := false
	for _, d := range diags.OfKind(schema.KindUnsupported) {
		if strings.Contains(d.Message, "inner") {
			found = true
		}
	}
	if !found {
		t.Errorf("no nested-list diagnostic in %v", diags)
	}

	if _, ok := res.Kinds["router.outer.inner"]; ok {
		t.Error("dropped fragment should not stay classified")
	}
}
