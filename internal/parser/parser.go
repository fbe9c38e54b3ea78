// Package parser turns a token stream from internal/lexer into the AST
// defined in internal/ast. The grammar is split across
// statements*.go/expressions*.go files and driven by a curToken/peekToken
// two-token lookahead loop, built as a precedence-climbing recursive
// descent over fixed operator tiers (parseOr -> parseAnd -> ... ->
// parsePostfix) rather than a prefix/infix function table, since the
// restricted Source grammar has a small, fixed operator set and no
// user-defined operators to register.
package parser

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/lexer"
	"github.com/funvibe/pyrrust/internal/token"
)

// MaxRecursionDepth guards against runaway expression recursion.
const MaxRecursionDepth = 250

// Parser holds the live parse state.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	depth int

	diags *diagnostics.Collector
}

// New constructs a Parser over source and primes the two-token lookahead.
func New(l *lexer.Lexer, diags *diagnostics.Collector) *Parser {
	p := &Parser{l: l, diags: diags}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, else records a
// diagnostic and leaves the cursor in place.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diags.Add(diagnostics.NewError("P000", p.curToken, format, args...))
}

// skipNewlines consumes zero or more NEWLINE tokens at the current
// position.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram consumes the whole token stream and returns a Program.
func ParseProgram(source, file string, diags *diagnostics.Collector) *ast.Program {
	l := lexer.New(source)
	p := New(l, diags)
	prog := &ast.Program{File: file}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}
