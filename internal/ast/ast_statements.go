package ast

import "github.com/funvibe/pyrrust/internal/token"

type ExpressionStatement struct {
	Token token.Token
	Value Expression
}

func (s *ExpressionStatement) GetToken() token.Token { return s.Token }
func (s *ExpressionStatement) statementNode()        {}

type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare `return`
}

func (s *ReturnStatement) GetToken() token.Token { return s.Token }
func (s *ReturnStatement) statementNode()        {}

type PassStatement struct {
	Token token.Token
}

func (s *PassStatement) GetToken() token.Token { return s.Token }
func (s *PassStatement) statementNode()        {}

type BreakStatement struct {
	Token token.Token
}

func (s *BreakStatement) GetToken() token.Token { return s.Token }
func (s *BreakStatement) statementNode()        {}

type ContinueStatement struct {
	Token token.Token
}

func (s *ContinueStatement) GetToken() token.Token { return s.Token }
func (s *ContinueStatement) statementNode()        {}

// IfStatement represents `if`/`elif`/`else`. An `elif` is parsed as a single
// IfStatement nested inside Orelse, the same shorthand Python's own grammar
// uses internally.
type IfStatement struct {
	Token  token.Token
	Test   Expression
	Body   []Statement
	Orelse []Statement
}

func (s *IfStatement) GetToken() token.Token { return s.Token }
func (s *IfStatement) statementNode()        {}

type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  []Statement
}

func (s *WhileStatement) GetToken() token.Token { return s.Token }
func (s *WhileStatement) statementNode()        {}

type ForStatement struct {
	Token  token.Token
	Target Expression
	Iter   Expression
	Body   []Statement
}

func (s *ForStatement) GetToken() token.Token { return s.Token }
func (s *ForStatement) statementNode()        {}

// AssignStatement supports chained assignment `a = b = expr`.
type AssignStatement struct {
	Token   token.Token
	Targets []Expression
	Value   Expression
}

func (s *AssignStatement) GetToken() token.Token { return s.Token }
func (s *AssignStatement) statementNode()        {}

type AnnAssignStatement struct {
	Token      token.Token
	Target     Expression
	Annotation Expression
	Value      Expression // may be nil: `x: int` with no value
}

func (s *AnnAssignStatement) GetToken() token.Token { return s.Token }
func (s *AnnAssignStatement) statementNode()        {}

type AugAssignStatement struct {
	Token  token.Token
	Target Expression
	Op     string // "+", "-", "*", "/", "//", "%"
	Value  Expression
}

func (s *AugAssignStatement) GetToken() token.Token { return s.Token }
func (s *AugAssignStatement) statementNode()        {}

type AssertStatement struct {
	Token token.Token
	Test  Expression
	Msg   Expression // nil if no message
}

func (s *AssertStatement) GetToken() token.Token { return s.Token }
func (s *AssertStatement) statementNode()        {}

// DelStatement covers `del d[k]` (Target is a Subscript) and the unsupported
// `del x` bare-name form (Target is a Name), which has no Target equivalent.
type DelStatement struct {
	Token  token.Token
	Target Expression
}

func (s *DelStatement) GetToken() token.Token { return s.Token }
func (s *DelStatement) statementNode()        {}
