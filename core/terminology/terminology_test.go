package terminology

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		op     string
		entity string
		want   string
	}{
		{"get", "service", "Get service configuration"},
		{"create", "service", "Create service configuration"},
		{"update", "service", "Update service configuration"},
		{"delete", "service", "Delete service configuration (requires confirm)"},
		{"add-item", "endpoint", "Add endpoint list entry"},
		{"invoke", "start-service", "Invoke start-service operation"},
		{"unknown", "thing", "Operate on thing configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			if got := Describe(tt.op, tt.entity); got != tt.want {
				t.Errorf("Describe(%q, %q) = %q, want %q", tt.op, tt.entity, got, tt.want)
			}
		})
	}
}

func TestForOperationDelete(t *testing.T) {
	l := ForOperation("delete")
	if l.Note == "" {
		t.Error("delete should carry a confirmation note")
	}
}

func TestInjectedParameterText(t *testing.T) {
	if DescribeIdentity() == "" {
		t.Error("identity description is empty")
	}
	if DescribeConfirm() == "" {
		t.Error("confirm description is empty")
	}
}
