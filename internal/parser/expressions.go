package parser

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/token"
)

// parseExpression is the single public entry point into the expression
// grammar: ternary is the loosest-binding construct, everything else
// nests below it through the fixed precedence tiers in this file.
func (p *Parser) parseExpression() ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.errorf("expression too complex: recursion depth limit exceeded")
		return nil
	}
	return p.parseTernary()
}

// parseTernary parses `body if test else orelse`, Python's only
// right-associative, lowest-precedence construct.
func (p *Parser) parseTernary() ast.Expression {
	body := p.parseOr()
	if !p.peekTokenIs(token.IF) {
		return body
	}
	tok := p.peekToken
	p.nextToken()
	p.nextToken()
	test := p.parseOr()
	if !p.expectPeek(token.ELSE) {
		return body
	}
	p.nextToken()
	orelse := p.parseTernary()
	return &ast.IfExp{Token: tok, Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	if !p.peekTokenIs(token.OR) {
		return left
	}
	tok := p.peekToken
	values := []ast.Expression{left}
	for p.peekTokenIs(token.OR) {
		p.nextToken()
		p.nextToken()
		values = append(values, p.parseAnd())
	}
	return &ast.BoolOp{Token: tok, Op: "or", Values: values}
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	if !p.peekTokenIs(token.AND) {
		return left
	}
	tok := p.peekToken
	values := []ast.Expression{left}
	for p.peekTokenIs(token.AND) {
		p.nextToken()
		p.nextToken()
		values = append(values, p.parseNot())
	}
	return &ast.BoolOp{Token: tok, Op: "and", Values: values}
}

func (p *Parser) parseNot() ast.Expression {
	if p.curTokenIs(token.NOT) {
		tok := p.curToken
		p.nextToken()
		return &ast.UnaryOp{Token: tok, Op: "not", Operand: p.parseNot()}
	}
	return p.parseComparison()
}

// comparisonOps gives, for each comparison-position token, its rendered
// operator string. `in`/`is` and their negated forms are handled
// separately since they are two-token (`not in`, `is not`) on the Source
// side.
var comparisonOps = map[token.Type]string{
	token.EQ:    "==",
	token.NOTEQ: "!=",
	token.LT:    "<",
	token.LTE:   "<=",
	token.GT:    ">",
	token.GTE:   ">=",
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseBitOr()

	var ops []string
	var comparators []ast.Expression
	tok := p.curToken
	for {
		if op, ok := comparisonOps[p.peekToken.Type]; ok {
			p.nextToken()
			p.nextToken()
			ops = append(ops, op)
			comparators = append(comparators, p.parseBitOr())
			continue
		}
		if p.peekTokenIs(token.IN) {
			p.nextToken()
			p.nextToken()
			ops = append(ops, "in")
			comparators = append(comparators, p.parseBitOr())
			continue
		}
		if p.peekTokenIs(token.NOT) {
			// lookahead: `not in`
			save := *p
			p.nextToken()
			if p.peekTokenIs(token.IN) {
				p.nextToken()
				p.nextToken()
				ops = append(ops, "not in")
				comparators = append(comparators, p.parseBitOr())
				continue
			}
			*p = save
			break
		}
		if p.peekTokenIs(token.IS) {
			p.nextToken()
			if p.peekTokenIs(token.NOT) {
				p.nextToken()
				p.nextToken()
				ops = append(ops, "is not")
			} else {
				p.nextToken()
				ops = append(ops, "is")
			}
			comparators = append(comparators, p.parseBitOr())
			continue
		}
		break
	}

	if len(ops) == 0 {
		return left
	}
	return &ast.Compare{Token: tok, Left: left, Ops: ops, Comparators: comparators}
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.peekTokenIs(token.PIPE) {
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: "|", Right: p.parseBitXor()}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.peekTokenIs(token.CARET) {
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: "^", Right: p.parseBitAnd()}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseShift()
	for p.peekTokenIs(token.AMP) {
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: "&", Right: p.parseShift()}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseSum()
	for p.peekTokenIs(token.LSHIFT) || p.peekTokenIs(token.RSHIFT) {
		op := "<<"
		if p.peekTokenIs(token.RSHIFT) {
			op = ">>"
		}
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: op, Right: p.parseSum()}
	}
	return left
}

func (p *Parser) parseSum() ast.Expression {
	left := p.parseProduct()
	for p.peekTokenIs(token.PLUS) || p.peekTokenIs(token.MINUS) {
		op := "+"
		if p.peekTokenIs(token.MINUS) {
			op = "-"
		}
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: op, Right: p.parseProduct()}
	}
	return left
}

func (p *Parser) parseProduct() ast.Expression {
	left := p.parseUnary()
	for {
		var op string
		switch p.peekToken.Type {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.DOUBLESLASH:
			op = "//"
		case token.PERCENT:
			op = "%"
		default:
			return left
		}
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		left = &ast.BinOp{Token: tok, Left: left, Op: op, Right: p.parseUnary()}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.curToken.Type {
	case token.PLUS:
		tok := p.curToken
		p.nextToken()
		return &ast.UnaryOp{Token: tok, Op: "+", Operand: p.parseUnary()}
	case token.MINUS:
		tok := p.curToken
		p.nextToken()
		return &ast.UnaryOp{Token: tok, Op: "-", Operand: p.parseUnary()}
	case token.TILDE:
		tok := p.curToken
		p.nextToken()
		return &ast.UnaryOp{Token: tok, Op: "~", Operand: p.parseUnary()}
	default:
		return p.parsePower()
	}
}

func (p *Parser) parsePower() ast.Expression {
	base := p.parsePostfix()
	if p.peekTokenIs(token.DOUBLESTAR) {
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		exp := p.parseUnary()
		return &ast.BinOp{Token: tok, Left: base, Op: "**", Right: exp}
	}
	return base
}

// parsePostfix parses a primary expression followed by any chain of call,
// subscript, and attribute-access suffixes.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.peekToken.Type {
		case token.LPAREN:
			p.nextToken()
			expr = p.parseCallArgs(expr)
		case token.LBRACKET:
			p.nextToken()
			tok := p.curToken
			p.nextToken()
			index := p.parseExpression()
			if p.peekTokenIs(token.COMMA) {
				// `Dict[str, int]`: a comma-separated index is a tuple.
				tup := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{index}}
				for p.peekTokenIs(token.COMMA) {
					p.nextToken()
					p.nextToken()
					tup.Elements = append(tup.Elements, p.parseExpression())
				}
				index = tup
			}
			if !p.expectPeek(token.RBRACKET) {
				return expr
			}
			expr = &ast.Subscript{Token: tok, Value: expr, Index: index}
		case token.DOT:
			p.nextToken()
			tok := p.curToken
			if !p.expectPeek(token.IDENT) {
				return expr
			}
			expr = &ast.Attribute{Token: tok, Value: expr, Attr: p.curToken.Literal}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(fn ast.Expression) ast.Expression {
	tok := p.curToken
	call := &ast.Call{Token: tok, Func: fn}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}
	p.nextToken()
	for {
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			name := p.curToken.Literal
			p.nextToken()
			p.nextToken()
			call.Keywords = append(call.Keywords, ast.Keyword{Name: name, Value: p.parseExpression()})
		} else {
			call.Args = append(call.Args, p.parseExpression())
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return call
	}
	return call
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.INT:
		return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.FLOAT:
		return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.TRUE:
		return &ast.BoolLiteral{Token: p.curToken, Value: true}
	case token.FALSE:
		return &ast.BoolLiteral{Token: p.curToken, Value: false}
	case token.NONE:
		return &ast.NoneLiteral{Token: p.curToken}
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.LBRACKET:
		return p.parseListOrComp()
	case token.LBRACE:
		return p.parseSetOrDictOrComp()
	default:
		p.diags.Add(diagnostics.NewError("P001", p.curToken, "unexpected token %s in expression", p.curToken.Type))
		return nil
	}
}

// parseParenOrTuple handles `(expr)` (grouping) and `(e1, e2, ...)`
// (tuple literal), including the single-element-with-trailing-comma case.
func (p *Parser) parseParenOrTuple() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok}
	}
	p.nextToken()
	first := p.parseExpression()
	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return first
		}
		return first
	}
	tup := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
		p.nextToken()
		tup.Elements = append(tup.Elements, p.parseExpression())
	}
	if !p.expectPeek(token.RPAREN) {
		return tup
	}
	return tup
}

// parseListOrComp handles `[e1, e2, ...]` and `[elt for target in iter
// (if cond)*]`.
func (p *Parser) parseListOrComp() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: tok}
	}
	p.nextToken()
	first := p.parseExpression()

	if p.peekTokenIs(token.FOR) {
		gens := p.parseComprehensionClauses()
		if !p.expectPeek(token.RBRACKET) {
			return &ast.ListComp{Token: tok, Elt: first, Generators: gens}
		}
		return &ast.ListComp{Token: tok, Elt: first, Generators: gens}
	}

	lit := &ast.ListLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
		p.nextToken()
		lit.Elements = append(lit.Elements, p.parseExpression())
	}
	if !p.expectPeek(token.RBRACKET) {
		return lit
	}
	return lit
}

// parseSetOrDictOrComp handles `{e1, e2}`, `{k1: v1, ...}`, and their
// comprehension forms.
func (p *Parser) parseSetOrDictOrComp() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{Token: tok}
	}
	p.nextToken()
	firstKey := p.parseExpression()

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		firstVal := p.parseExpression()

		if p.peekTokenIs(token.FOR) {
			gens := p.parseComprehensionClauses()
			p.expectPeek(token.RBRACE)
			return &ast.DictComp{Token: tok, Key: firstKey, Value: firstVal, Generators: gens}
		}

		dict := &ast.DictLiteral{Token: tok, Keys: []ast.Expression{firstKey}, Values: []ast.Expression{firstVal}}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break
			}
			p.nextToken()
			k := p.parseExpression()
			if !p.expectPeek(token.COLON) {
				break
			}
			p.nextToken()
			v := p.parseExpression()
			dict.Keys = append(dict.Keys, k)
			dict.Values = append(dict.Values, v)
		}
		p.expectPeek(token.RBRACE)
		return dict
	}

	if p.peekTokenIs(token.FOR) {
		gens := p.parseComprehensionClauses()
		p.expectPeek(token.RBRACE)
		return &ast.SetComp{Token: tok, Elt: firstKey, Generators: gens}
	}

	set := &ast.SetLiteral{Token: tok, Elements: []ast.Expression{firstKey}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		set.Elements = append(set.Elements, p.parseExpression())
	}
	p.expectPeek(token.RBRACE)
	return set
}

// parseComprehensionClauses parses one or more `for target in iter (if
// cond)*` clauses. The restricted grammar supports exactly one; a second
// is still parsed (so the file as a whole recovers cleanly) but flagged by
// the analyzer as E-CMP-001.
func (p *Parser) parseComprehensionClauses() []ast.Comprehension {
	var gens []ast.Comprehension
	for p.peekTokenIs(token.FOR) {
		p.nextToken()
		p.nextToken()
		target := p.parseTargetList()
		if !p.peekTokenIs(token.IN) {
			p.errorf("expected 'in' in comprehension, got %s", p.peekToken.Type)
		} else {
			p.nextToken()
			p.nextToken()
		}
		iter := p.parseOr()
		comp := ast.Comprehension{Target: target, Iter: iter}
		for p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			comp.Ifs = append(comp.Ifs, p.parseOr())
		}
		gens = append(gens, comp)
	}
	return gens
}
