package ast

import "github.com/funvibe/pyrrust/internal/token"

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) expressionNode()       {}

type IntegerLiteral struct {
	Token token.Token
	Value string
}

func (n *IntegerLiteral) GetToken() token.Token { return n.Token }
func (n *IntegerLiteral) expressionNode()       {}

type FloatLiteral struct {
	Token token.Token
	Value string
}

func (n *FloatLiteral) GetToken() token.Token { return n.Token }
func (n *FloatLiteral) expressionNode()       {}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) GetToken() token.Token { return s.Token }
func (s *StringLiteral) expressionNode()       {}

type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) GetToken() token.Token { return b.Token }
func (b *BoolLiteral) expressionNode()       {}

type NoneLiteral struct {
	Token token.Token
}

func (n *NoneLiteral) GetToken() token.Token { return n.Token }
func (n *NoneLiteral) expressionNode()       {}

type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (t *TupleLiteral) GetToken() token.Token { return t.Token }
func (t *TupleLiteral) expressionNode()       {}

type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (l *ListLiteral) GetToken() token.Token { return l.Token }
func (l *ListLiteral) expressionNode()       {}

type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (s *SetLiteral) GetToken() token.Token { return s.Token }
func (s *SetLiteral) expressionNode()       {}

type DictLiteral struct {
	Token  token.Token
	Keys   []Expression
	Values []Expression
}

func (d *DictLiteral) GetToken() token.Token { return d.Token }
func (d *DictLiteral) expressionNode()       {}

// BinOp is a binary arithmetic/bitwise operator: + - * / // % << >> & | ^ **
type BinOp struct {
	Token token.Token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) GetToken() token.Token { return b.Token }
func (b *BinOp) expressionNode()       {}

// UnaryOp is one of: not, -, +, ~
type UnaryOp struct {
	Token   token.Token
	Op      string
	Operand Expression
}

func (u *UnaryOp) GetToken() token.Token { return u.Token }
func (u *UnaryOp) expressionNode()       {}

// BoolOp is `and`/`or` chaining over 2+ operands.
type BoolOp struct {
	Token  token.Token
	Op     string // "and" or "or"
	Values []Expression
}

func (b *BoolOp) GetToken() token.Token { return b.Token }
func (b *BoolOp) expressionNode()       {}

// Compare models Python's chained comparison: `a < b < c` has
// Left=a, Ops=["<","<"], Comparators=[b,c].
type Compare struct {
	Token       token.Token
	Left        Expression
	Ops         []string // "==","!=","<","<=",">",">=","in","not in","is","is not"
	Comparators []Expression
}

func (c *Compare) GetToken() token.Token { return c.Token }
func (c *Compare) expressionNode()       {}

type Keyword struct {
	Name  string
	Value Expression
}

type Call struct {
	Token    token.Token
	Func     Expression
	Args     []Expression
	Keywords []Keyword
}

func (c *Call) GetToken() token.Token { return c.Token }
func (c *Call) expressionNode()       {}

type Attribute struct {
	Token token.Token
	Value Expression
	Attr  string
}

func (a *Attribute) GetToken() token.Token { return a.Token }
func (a *Attribute) expressionNode()       {}

type Subscript struct {
	Token token.Token
	Value Expression
	Index Expression
}

func (s *Subscript) GetToken() token.Token { return s.Token }
func (s *Subscript) expressionNode()       {}

// IfExp is the ternary `body if test else orelse`.
type IfExp struct {
	Token  token.Token
	Test   Expression
	Body   Expression
	Orelse Expression
}

func (i *IfExp) GetToken() token.Token { return i.Token }
func (i *IfExp) expressionNode()       {}
