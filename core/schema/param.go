package schema

// ParamType is one of the five canonical parameter types every source type
// token is normalized to.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeNumber  ParamType = "number"
	TypeArray   ParamType = "array"
)

// Valid reports whether t is one of the canonical types.
func (t ParamType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeBoolean, TypeNumber, TypeArray:
		return true
	default:
		return false
	}
}

// Parameter is a scalar configuration leaf. Leaf-lists are parameters of
// type array.
type Parameter struct {
	// Name is the leaf identifier as declared in the source.
	Name string `json:"name" yaml:"name"`

	// Type is the canonical type the source type token mapped to.
	Type ParamType `json:"type" yaml:"type"`

	// Description is the leaf's documentation text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required marks parameters that must be supplied (mandatory true).
	Required bool `json:"required" yaml:"required"`

	// Default is the declared fallback value, converted to match Type.
	// Required parameters never carry one.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Choices enumerates the permitted values, in declaration order.
	// Only string-typed parameters carry choices.
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Range is the numeric range constraint expression, verbatim from the
	// source (e.g. "1..65535"). See ParseRange.
	Range string `json:"range,omitempty" yaml:"range,omitempty"`
}

// Clone returns a copy of the parameter. Choices are copied so derived
// views cannot alias the source tree.
func (p *Parameter) Clone() *Parameter {
	cp := *p
	if len(p.Choices) > 0 {
		cp.Choices = append([]string(nil), p.Choices...)
	}
	return &cp
}
