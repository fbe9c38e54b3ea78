package parser

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/token"
)

// parseStatement dispatches on the current token to the matching
// statement parser.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef()
	case token.CLASS:
		return p.parseClassDef()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.PASS:
		s := &ast.PassStatement{Token: p.curToken}
		p.nextToken()
		return s
	case token.BREAK:
		s := &ast.BreakStatement{Token: p.curToken}
		p.nextToken()
		return s
	case token.CONTINUE:
		s := &ast.ContinueStatement{Token: p.curToken}
		p.nextToken()
		return s
	case token.ASSERT:
		return p.parseAssert()
	case token.DEL:
		return p.parseDel()
	case token.IMPORT, token.FROM:
		return p.parseImport()
	default:
		return p.parseSimpleStatement()
	}
}

// parseBlock expects `:` NEWLINE INDENT stmt* DEDENT, the Target-agnostic
// block shape every compound statement shares.
func (p *Parser) parseBlock() []ast.Statement {
	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.NEWLINE) {
		return nil
	}
	if !p.expectPeek(token.INDENT) {
		return nil
	}
	p.nextToken()

	var stmts []ast.Statement
	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if p.curTokenIs(token.DEDENT) {
		p.nextToken()
	}
	return stmts
}

// parseFunctionDef parses `def name(params) -> ret: body`.
func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn := &ast.FunctionDef{Token: tok, Name: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Params = p.parseParams()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fn.Returns = p.parseAnnotation()
	}

	fn.Body = p.parseBlock()
	return fn
}

// parseParams parses a parenthesized, comma-separated, optionally
// type-annotated parameter list, leaving curToken on the closing `)`.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		param := ast.Param{Name: p.curToken.Literal}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.Annotation = p.parseAnnotation()
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

// parseAnnotation parses a type annotation expression: a bare name, a
// dotted name, or a subscripted generic like List[int] or Dict[str, int].
// Annotations are represented with the same Expression nodes as ordinary
// code (Identifier/Subscript/TupleLiteral), then interpreted by
// typesystem.MapAnnotation rather than by a separate annotation grammar.
func (p *Parser) parseAnnotation() ast.Expression {
	return p.parsePostfix()
}

func (p *Parser) parseClassDef() *ast.ClassDef {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	cls := &ast.ClassDef{Token: tok, Name: p.curToken.Literal}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			for {
				cls.Bases = append(cls.Bases, p.curToken.Literal)
				if !p.peekTokenIs(token.COMMA) {
					break
				}
				p.nextToken()
				p.nextToken()
			}
		}
		if !p.expectPeek(token.RPAREN) {
			return cls
		}
	}

	if !p.expectPeek(token.COLON) {
		return cls
	}
	if !p.expectPeek(token.NEWLINE) {
		return cls
	}
	if !p.expectPeek(token.INDENT) {
		return cls
	}
	p.nextToken()

	for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.DEF) {
			if m := p.parseFunctionDef(); m != nil {
				cls.Body = append(cls.Body, m)
			}
			continue
		}
		// Skip anything else (class-level constants, docstrings) we do
		// not model.
		p.nextToken()
	}
	if p.curTokenIs(token.DEDENT) {
		p.nextToken()
	}
	return cls
}

func (p *Parser) parseReturn() *ast.ReturnStatement {
	tok := p.curToken
	s := &ast.ReturnStatement{Token: tok}
	if !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		s.Value = p.parseExpression()
	}
	p.consumeStatementEnd()
	return s
}

func (p *Parser) parseIf() *ast.IfStatement {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression()
	body := p.parseBlock()

	s := &ast.IfStatement{Token: tok, Test: test, Body: body}

	if p.curTokenIs(token.ELIF) {
		s.Orelse = []ast.Statement{p.parseElif()}
	} else if p.curTokenIs(token.ELSE) {
		s.Orelse = p.parseBlock()
	}
	return s
}

// parseElif parses `elif test: body [elif|else ...]` as a single nested
// IfStatement, the same shorthand Python's own parser uses so `elif` never
// needs its own AST node.
func (p *Parser) parseElif() *ast.IfStatement {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression()
	body := p.parseBlock()

	s := &ast.IfStatement{Token: tok, Test: test, Body: body}
	if p.curTokenIs(token.ELIF) {
		s.Orelse = []ast.Statement{p.parseElif()}
	} else if p.curTokenIs(token.ELSE) {
		s.Orelse = p.parseBlock()
	}
	return s
}

func (p *Parser) parseWhile() *ast.WhileStatement {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStatement{Token: tok, Test: test, Body: body}
}

func (p *Parser) parseFor() *ast.ForStatement {
	tok := p.curToken
	p.nextToken()
	target := p.parseTargetList()
	if !p.peekTokenIs(token.IN) {
		p.errorf("expected 'in' in for statement, got %s", p.peekToken.Type)
	} else {
		p.nextToken()
		p.nextToken()
	}
	iter := p.parseExpression()
	body := p.parseBlock()
	return &ast.ForStatement{Token: tok, Target: target, Iter: iter, Body: body}
}

// parseTargetList parses a for-loop or comprehension target: a single name,
// attribute, or subscript, or a bare-comma tuple of them (`a, b` with no
// parens, as in `for k, v in d.items():`).
func (p *Parser) parseTargetList() ast.Expression {
	first := p.parsePostfix()
	if !p.peekTokenIs(token.COMMA) {
		return first
	}
	tup := &ast.TupleLiteral{Token: first.GetToken(), Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.IN) || p.peekTokenIs(token.ASSIGN) {
			break
		}
		p.nextToken()
		tup.Elements = append(tup.Elements, p.parsePostfix())
	}
	return tup
}

func (p *Parser) parseAssert() *ast.AssertStatement {
	tok := p.curToken
	p.nextToken()
	s := &ast.AssertStatement{Token: tok, Test: p.parseExpression()}
	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		s.Msg = p.parseExpression()
	}
	if tup, ok := s.Test.(*ast.TupleLiteral); ok && s.Msg == nil && len(tup.Elements) == 2 {
		// `assert(cond, "msg")`: the parenthesized form carries its message
		// as the tuple's second element.
		s.Test, s.Msg = tup.Elements[0], tup.Elements[1]
	}
	p.consumeStatementEnd()
	return s
}

func (p *Parser) parseDel() *ast.DelStatement {
	tok := p.curToken
	p.nextToken()
	s := &ast.DelStatement{Token: tok, Target: p.parsePostfix()}
	p.consumeStatementEnd()
	return s
}

func (p *Parser) parseImport() *ast.ImportStatement {
	tok := p.curToken
	s := &ast.ImportStatement{Token: tok}
	if p.curTokenIs(token.FROM) {
		s.IsFrom = true
		p.nextToken()
		s.Module = p.curToken.Literal
		if !p.expectPeek(token.IMPORT) {
			return s
		}
		p.nextToken()
		for {
			s.Names = append(s.Names, p.curToken.Literal)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
			p.nextToken()
		}
	} else {
		p.nextToken()
		s.Module = p.curToken.Literal
	}
	p.consumeStatementEnd()
	return s
}

// consumeStatementEnd advances past the NEWLINE terminating a simple
// statement, tolerating EOF/DEDENT for a file's final line.
func (p *Parser) consumeStatementEnd() {
	if p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	p.nextToken()
}

// parseSimpleStatement parses an expression statement, a plain/annotated/
// augmented assignment, or a chained assignment (`a = b = expr`).
func (p *Parser) parseSimpleStatement() ast.Statement {
	tok := p.curToken
	// exprList parses one expression, or a bare-comma tuple (`a, b = b, a`).
	exprList := func() ast.Expression {
		e := p.parseExpression()
		if !p.peekTokenIs(token.COMMA) {
			return e
		}
		tup := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{e}}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			tup.Elements = append(tup.Elements, p.parseExpression())
		}
		return tup
	}
	first := exprList()

	switch p.peekToken.Type {
	case token.ASSIGN:
		targets := []ast.Expression{first}
		var value ast.Expression
		for p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			value = exprList()
			if p.peekTokenIs(token.ASSIGN) {
				targets = append(targets, value)
			}
		}
		p.consumeStatementEnd()
		return &ast.AssignStatement{Token: tok, Targets: targets, Value: value}
	case token.COLON:
		p.nextToken()
		p.nextToken()
		annotation := p.parseAnnotation()
		s := &ast.AnnAssignStatement{Token: tok, Target: first, Annotation: annotation}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			s.Value = p.parseExpression()
		}
		p.consumeStatementEnd()
		return s
	case token.PLUSEQ, token.MINUSEQ, token.STAREQ, token.SLASHEQ, token.DOUBLESLASHEQ, token.PERCENTEQ:
		op := augOp(p.peekToken.Type)
		p.nextToken()
		p.nextToken()
		value := p.parseExpression()
		p.consumeStatementEnd()
		return &ast.AugAssignStatement{Token: tok, Target: first, Op: op, Value: value}
	default:
		p.consumeStatementEnd()
		return &ast.ExpressionStatement{Token: tok, Value: first}
	}
}

func augOp(t token.Type) string {
	switch t {
	case token.PLUSEQ:
		return "+"
	case token.MINUSEQ:
		return "-"
	case token.STAREQ:
		return "*"
	case token.SLASHEQ:
		return "/"
	case token.DOUBLESLASHEQ:
		return "//"
	case token.PERCENTEQ:
		return "%"
	default:
		return "?"
	}
}
