// Package typemap normalizes source type tokens and live value kinds to the
// five canonical parameter types.
package typemap

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/artpar/yanggen/core/schema"
)

// builtin is the fixed token table. Unknown tokens fall back to string;
// the caller records the diagnostic.
var builtin = map[string]schema.ParamType{
	"string":              schema.TypeString,
	"boolean":             schema.TypeBoolean,
	"empty":               schema.TypeBoolean,
	"int8":                schema.TypeInteger,
	"int16":               schema.TypeInteger,
	"int32":               schema.TypeInteger,
	"int64":               schema.TypeInteger,
	"uint8":               schema.TypeInteger,
	"uint16":              schema.TypeInteger,
	"uint32":              schema.TypeInteger,
	"uint64":              schema.TypeInteger,
	"decimal64":           schema.TypeNumber,
	"binary":              schema.TypeString,
	"bits":                schema.TypeString,
	"enumeration":         schema.TypeString,
	"union":               schema.TypeString,
	"identityref":         schema.TypeString,
	"instance-identifier": schema.TypeString,
	"leafref":             schema.TypeString,
}

// Canonical maps a source type token through the builtin table. The second
// result reports whether the token was known.
func Canonical(token string) (schema.ParamType, bool) {
	if t, ok := builtin[token]; ok {
		return t, true
	}
	return schema.TypeString, false
}

// Tokens returns the known tokens of the builtin table, sorted.
func Tokens() []string {
	out := make([]string, 0, len(builtin))
	for tok := range builtin {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Table layers per-deployment overrides over the builtin token table.
// Overrides win; they let an installation pin vendor typedefs (for example
// "vendor-percent" to integer) without touching source schemas.
type Table struct {
	overrides map[string]schema.ParamType
}

// NewTable builds a Table from override pairs of token to canonical type
// name. An override naming a non-canonical type is an error.
func NewTable(overrides map[string]string) (*Table, error) {
	t := &Table{overrides: make(map[string]schema.ParamType, len(overrides))}
	for token, typ := range overrides {
		pt := schema.ParamType(typ)
		if !pt.Valid() {
			return nil, fmt.Errorf("type override %q: %q is not a canonical type", token, typ)
		}
		t.overrides[token] = pt
	}
	return t, nil
}

// Canonical maps a token, consulting overrides before the builtin table.
// A nil Table behaves like the builtin table alone.
func (t *Table) Canonical(token string) (schema.ParamType, bool) {
	if t != nil {
		if typ, ok := t.overrides[token]; ok {
			return typ, true
		}
	}
	return Canonical(token)
}

// RuntimeKind infers a canonical type from a live sample value's runtime
// kind. The second result is false when nothing could be inferred (nil or
// an unclassifiable kind); the caller defaults to string and records a
// diagnostic.
func RuntimeKind(v any) (schema.ParamType, bool) {
	if v == nil {
		return schema.TypeString, false
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool:
		return schema.TypeBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.TypeInteger, true
	case reflect.Float32, reflect.Float64:
		return schema.TypeNumber, true
	case reflect.String:
		return schema.TypeString, true
	case reflect.Slice, reflect.Array:
		return schema.TypeArray, true
	default:
		return schema.TypeString, false
	}
}
