package capability

import (
	"errors"
	"testing"
)

// fakeNode is a minimal Node for exercising Probe.
type fakeNode struct {
	name     string
	keyed    bool
	create   bool
	del      bool
	value    any
	valueErr error
}

func (f *fakeNode) Name() string              { return f.name }
func (f *fakeNode) IsKeyed() bool             { return f.keyed }
func (f *fakeNode) SupportsCreate() bool      { return f.create }
func (f *fakeNode) SupportsDelete() bool      { return f.del }
func (f *fakeNode) Children() ([]Node, error) { return nil, nil }

func (f *fakeNode) ScalarValue() (any, error) {
	if f.valueErr != nil {
		return nil, f.valueErr
	}
	return f.value, nil
}

func TestProbeScalar(t *testing.T) {
	s, err := Probe(&fakeNode{name: "port", value: 80})
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !s.Scalar {
		t.Error("Scalar = false, want true")
	}
	if s.Value != 80 {
		t.Errorf("Value = %v, want 80", s.Value)
	}
	if s.Keyed || s.Create || s.Delete {
		t.Errorf("structural capabilities should be false: %+v", s)
	}
}

func TestProbeStructural(t *testing.T) {
	n := &fakeNode{
		name:     "endpoint",
		keyed:    true,
		create:   true,
		del:      true,
		valueErr: ErrNoValue,
	}

	s, err := Probe(n)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if s.Scalar {
		t.Error("Scalar = true, want false")
	}
	if !s.Keyed || !s.Create || !s.Delete {
		t.Errorf("capabilities = %+v, want all true", s)
	}
}

func TestProbeReadFailure(t *testing.T) {
	readErr := errors.New("backend timeout")
	n := &fakeNode{name: "flaky", keyed: true, valueErr: readErr}

	s, err := Probe(n)
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want %v", err, readErr)
	}
	// Structural capabilities still come back so the caller can keep going.
	if !s.Keyed {
		t.Error("Keyed = false, want true despite read failure")
	}
	if s.Scalar {
		t.Error("Scalar = true, want false on read failure")
	}
}
