// Package ast defines the node types produced by the Source parser.
//
// Traversal follows a type-switch-over-interface style rather than a
// Visitor/Accept double-dispatch: each pass (headers, analyzer, deps,
// codegen) owns a single recursive function per node category, which keeps
// four independent passes from having to carry ~30 boilerplate Visit
// methods apiece.
package ast

import "github.com/funvibe/pyrrust/internal/token"

// Node is the base interface for every AST node.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in an expression position.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed Source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// Param is one parameter of a function or method.
type Param struct {
	Name       string
	Annotation Expression // nil if unannotated
}

// FunctionDef is a top-level function or a method inside a ClassDef body.
type FunctionDef struct {
	Token   token.Token // 'def'
	Name    string
	Params  []Param
	Returns Expression // nil if unannotated
	Body    []Statement
}

func (f *FunctionDef) GetToken() token.Token { return f.Token }
func (f *FunctionDef) statementNode()        {}

// ClassDef is a class definition; Bases are the (possibly empty) base-class
// names in the order they were listed.
type ClassDef struct {
	Token token.Token // 'class'
	Name  string
	Bases []string
	Body  []*FunctionDef
}

func (c *ClassDef) GetToken() token.Token { return c.Token }
func (c *ClassDef) statementNode()        {}

// ImportStatement covers both `import x` and `from x import a, b`.
type ImportStatement struct {
	Token   token.Token
	Module  string
	Names   []string // empty for a bare `import module`
	IsFrom  bool
}

func (i *ImportStatement) GetToken() token.Token { return i.Token }
func (i *ImportStatement) statementNode()        {}
