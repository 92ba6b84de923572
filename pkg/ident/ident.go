// Package ident converts schema names into valid Python identifiers for
// emitted code. Tool names themselves are never rewritten; only the
// identifiers appearing in generated source (function names, parameter
// names) pass through here.
package ident

// keywords is Python 3's reserved word list. Soft keywords (match, case,
// type) stay usable as identifiers and are not included.
var keywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {},
	"assert": {}, "async": {}, "await": {}, "break": {}, "class": {},
	"continue": {}, "def": {}, "del": {}, "elif": {}, "else": {},
	"except": {}, "finally": {}, "for": {}, "from": {}, "global": {},
	"if": {}, "import": {}, "in": {}, "is": {}, "lambda": {},
	"nonlocal": {}, "not": {}, "or": {}, "pass": {}, "raise": {},
	"return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// IsKeyword reports whether name is a Python reserved word.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// Sanitize rewrites name into a valid Python identifier. Hyphens, dots and
// any other character outside [A-Za-z0-9_] become underscores, a leading
// digit gains a leading underscore, and a name that lands on a Python
// keyword gains a trailing underscore. Empty input yields a bare
// underscore.
func Sanitize(name string) string {
	if name == "" {
		return "_"
	}

	b := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if isIdentByte(ch) {
			b[i] = ch
		} else {
			b[i] = '_'
		}
	}
	out := string(b)

	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	if IsKeyword(out) {
		out += "_"
	}
	return out
}

func isIdentByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_':
		return true
	}
	return false
}
