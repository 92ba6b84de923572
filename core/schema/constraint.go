package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeBound is one alternative of a range expression. A nil Min or Max
// means that side is unbounded (the source said "min" or "max").
type RangeBound struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// RangeSpec is a parsed numeric range constraint such as
// "1..65535" or "1..100 | 200..300".
type RangeSpec struct {
	// Expr is the expression as written in the source.
	Expr string `json:"expr" yaml:"expr"`

	// Bounds are the alternatives, in declaration order.
	Bounds []RangeBound `json:"bounds" yaml:"bounds"`
}

// ParseRange parses a range constraint expression. Alternatives are
// separated by "|"; each alternative is either a single value or
// "<lo>..<hi>", where either side may be the keyword "min" or "max"
// for an open bound. This is a pure function.
func ParseRange(expr string) (*RangeSpec, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, fmt.Errorf("empty range expression")
	}

	spec := &RangeSpec{Expr: trimmed}
	for _, alt := range strings.Split(trimmed, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			return nil, fmt.Errorf("range %q: empty alternative", trimmed)
		}

		bound, err := parseBound(alt)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", trimmed, err)
		}
		spec.Bounds = append(spec.Bounds, bound)
	}

	return spec, nil
}

func parseBound(alt string) (RangeBound, error) {
	lo, hi, found := strings.Cut(alt, "..")
	if !found {
		// Single value: lower and upper bound coincide.
		v, err := parseEndpoint(alt)
		if err != nil {
			return RangeBound{}, err
		}
		return RangeBound{Min: v, Max: v}, nil
	}

	min, err := parseEndpoint(strings.TrimSpace(lo))
	if err != nil {
		return RangeBound{}, err
	}
	max, err := parseEndpoint(strings.TrimSpace(hi))
	if err != nil {
		return RangeBound{}, err
	}
	if min != nil && max != nil && *min > *max {
		return RangeBound{}, fmt.Errorf("lower bound %v exceeds upper bound %v", *min, *max)
	}

	return RangeBound{Min: min, Max: max}, nil
}

// parseEndpoint parses one side of a bound. "min" and "max" are open
// bounds and return nil.
func parseEndpoint(s string) (*float64, error) {
	switch s {
	case "min", "max":
		return nil, nil
	case "":
		return nil, fmt.Errorf("missing bound value")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("bound %q is not numeric", s)
	}
	return &v, nil
}

// Min returns the lowest lower bound across alternatives, or nil when any
// alternative is open below.
func (r *RangeSpec) Min() *float64 {
	var min *float64
	for _, b := range r.Bounds {
		if b.Min == nil {
			return nil
		}
		if min == nil || *b.Min < *min {
			min = b.Min
		}
	}
	return min
}

// Max returns the highest upper bound across alternatives, or nil when any
// alternative is open above.
func (r *RangeSpec) Max() *float64 {
	var max *float64
	for _, b := range r.Bounds {
		if b.Max == nil {
			return nil
		}
		if max == nil || *b.Max > *max {
			max = b.Max
		}
	}
	return max
}

// Contains reports whether v falls inside any alternative.
func (r *RangeSpec) Contains(v float64) bool {
	for _, b := range r.Bounds {
		if (b.Min == nil || v >= *b.Min) && (b.Max == nil || v <= *b.Max) {
			return true
		}
	}
	return false
}
