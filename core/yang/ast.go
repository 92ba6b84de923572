package yang

import (
	"strings"

	"github.com/artpar/yanggen/core/schema"
)

// Statement is one schema statement: a keyword, optional arguments, and
// either a semicolon terminator or a brace-delimited body of child
// statements.
type Statement struct {
	// Keys are the words before the terminator: the keyword and its
	// argument(s). `leaf service-name {` yields ["leaf", "service-name"].
	Keys []string

	// Children are the statements of the body, in document order.
	Children []*Statement

	// IsLeaf marks statements terminated by ';' (no body).
	IsLeaf bool

	Line   int
	Column int
}

// Keyword returns the statement keyword, or "" for a degenerate statement.
func (s *Statement) Keyword() string {
	if len(s.Keys) == 0 {
		return ""
	}
	return s.Keys[0]
}

// Arg returns the first argument after the keyword, or "".
func (s *Statement) Arg() string {
	if len(s.Keys) < 2 {
		return ""
	}
	return s.Keys[1]
}

// HasArg reports whether the statement carries an argument.
func (s *Statement) HasArg() bool {
	return len(s.Keys) >= 2
}

// FindChild returns the first child with the given keyword, or nil.
func (s *Statement) FindChild(keyword string) *Statement {
	for _, c := range s.Children {
		if c.Keyword() == keyword {
			return c
		}
	}
	return nil
}

// FindChildren returns all children with the given keyword, in order.
func (s *Statement) FindChildren(keyword string) []*Statement {
	var out []*Statement
	for _, c := range s.Children {
		if c.Keyword() == keyword {
			out = append(out, c)
		}
	}
	return out
}

// treeParser builds the generic statement tree from tokens, recovering from
// structural damage with diagnostics instead of failing.
type treeParser struct {
	lex      *Lexer
	diags    *schema.Diagnostics
	maxDepth int

	// eofReported ensures exactly one diagnostic for an EOF inside nested
	// blocks: the innermost unterminated block is discarded and reported;
	// enclosing blocks keep their parsed children.
	eofReported bool
}

// parseTopLevel consumes the whole input and returns the top-level
// statements.
func (p *treeParser) parseTopLevel() []*Statement {
	var stmts []*Statement
	for {
		tok := p.lex.Peek()
		switch tok.Type {
		case TokenEOF:
			return stmts
		case TokenRBrace:
			p.lex.Next()
			p.diags.Add(schema.StructuralError("unexpected '}'", tok.Line, tok.Column))
		case TokenSemicolon:
			p.lex.Next()
		case TokenError:
			p.lex.Next()
			p.diags.Add(schema.StructuralError(tok.Value, tok.Line, tok.Column))
		default:
			if s := p.parseStatement(0); s != nil {
				stmts = append(stmts, s)
			}
		}
	}
}

// parseBody consumes statements until the closing brace of the current
// block. The second result is false when EOF arrived first.
func (p *treeParser) parseBody(depth int) ([]*Statement, bool) {
	var stmts []*Statement
	for {
		tok := p.lex.Peek()
		switch tok.Type {
		case TokenEOF:
			return stmts, false
		case TokenRBrace:
			p.lex.Next()
			return stmts, true
		case TokenSemicolon:
			// Stray separator; harmless.
			p.lex.Next()
		case TokenError:
			p.lex.Next()
			p.diags.Add(schema.StructuralError(tok.Value, tok.Line, tok.Column))
		default:
			if s := p.parseStatement(depth); s != nil {
				stmts = append(stmts, s)
			}
		}
	}
}

// parseStatement parses one keyword-led statement. It returns nil when the
// statement had to be discarded (unterminated, or past the depth limit); a
// diagnostic has been recorded in that case.
func (p *treeParser) parseStatement(depth int) *Statement {
	first := p.lex.Next()
	stmt := &Statement{
		Keys:   []string{first.Value},
		Line:   first.Line,
		Column: first.Column,
	}

	// Collect further words until the terminator.
	for {
		tok := p.lex.Peek()
		switch tok.Type {
		case TokenIdentifier, TokenString:
			p.lex.Next()
			stmt.Keys = append(stmt.Keys, tok.Value)
			continue

		case TokenSemicolon:
			p.lex.Next()
			stmt.IsLeaf = true
			return stmt

		case TokenLBrace:
			p.lex.Next()
			if depth+1 > p.maxDepth {
				p.diags.Add(schema.StructuralError(
					"nesting depth exceeds limit, block skipped",
					tok.Line, tok.Column))
				p.skipBalanced()
				return nil
			}

			children, terminated := p.parseBody(depth + 1)
			if !terminated && !p.eofReported {
				p.eofReported = true
				p.diags.Add(schema.StructuralError(
					"unterminated block "+strings.Join(stmt.Keys, " ")+": missing closing brace",
					stmt.Line, stmt.Column))
				return nil
			}
			// When an inner block already reported the EOF, keep what
			// parsed and treat this body as implicitly closed.
			stmt.Children = children
			return stmt

		case TokenError:
			p.lex.Next()
			p.diags.Add(schema.StructuralError(tok.Value, tok.Line, tok.Column))

		case TokenEOF, TokenRBrace:
			// Statement broke off without a terminator.
			p.diags.Add(schema.StructuralError(
				"statement "+strings.Join(stmt.Keys, " ")+" has no terminator",
				stmt.Line, stmt.Column))
			return nil

		default:
			p.lex.Next()
		}
	}
}

// skipBalanced discards tokens until the brace depth opened by the current
// block returns to zero. This is the recovery path for blocks past the
// depth limit.
func (p *treeParser) skipBalanced() {
	depth := 1
	for depth > 0 {
		tok := p.lex.Next()
		switch tok.Type {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
		case TokenEOF:
			return
		}
	}
}
