package ast

import "github.com/funvibe/pyrrust/internal/token"

// Comprehension is one `for target in iter (if cond)*` clause. The restricted
// Source subset allows exactly one generator clause per comprehension (see
// catalog/diagnostics E-CMP-* for the multi-generator fatal error).
type Comprehension struct {
	Target Expression
	Iter   Expression
	Ifs    []Expression
}

type ListComp struct {
	Token      token.Token
	Elt        Expression
	Generators []Comprehension
}

func (c *ListComp) GetToken() token.Token { return c.Token }
func (c *ListComp) expressionNode()       {}

type SetComp struct {
	Token      token.Token
	Elt        Expression
	Generators []Comprehension
}

func (c *SetComp) GetToken() token.Token { return c.Token }
func (c *SetComp) expressionNode()       {}

type DictComp struct {
	Token      token.Token
	Key        Expression
	Value      Expression
	Generators []Comprehension
}

func (c *DictComp) GetToken() token.Token { return c.Token }
func (c *DictComp) expressionNode()       {}
