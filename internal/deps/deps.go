// Package deps scans a parsed Program (plus its resolved headers) to
// decide which `use std::collections::...` lines the generator must write
// at the top of the emitted file: a HashMap/HashSet dependency is detected
// both textually (any resolved header type mentioning the name) and
// structurally (a dict/set literal, comprehension, or `dict(...)` call
// anywhere in a body).
package deps

import (
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/headers"
)

// Result records which standard containers the generated module needs to
// import.
type Result struct {
	WantsHashMap bool
	WantsHashSet bool
}

// Preamble renders the `use` lines this Result implies, HashSet before
// HashMap, with a blank line after if either is present.
func (r Result) Preamble() string {
	var b strings.Builder
	if r.WantsHashSet {
		b.WriteString("use std::collections::HashSet;\n")
	}
	if r.WantsHashMap {
		b.WriteString("use std::collections::HashMap;\n")
	}
	if r.WantsHashMap || r.WantsHashSet {
		b.WriteString("\n")
	}
	return b.String()
}

// Analyze scans every function and class header's resolved types, then
// every function/method body, for HashMap/HashSet usage.
func Analyze(prog *ast.Program, idx *headers.Index) Result {
	var r Result

	for _, fh := range idx.Functions {
		r.checkType(string(fh.Returns))
		for _, a := range fh.Args {
			r.checkType(string(a.Type))
		}
	}
	for _, ch := range idx.Classes {
		for _, fh := range ch.Methods {
			r.checkType(string(fh.Returns))
			for _, a := range fh.Args {
				r.checkType(string(a.Type))
			}
		}
		for _, t := range ch.InstanceAttributes {
			r.checkType(string(t))
		}
	}

	for _, stmt := range prog.Statements {
		r.walkStmt(stmt)
	}

	return r
}

func (r *Result) checkType(text string) {
	if strings.Contains(text, "HashMap") {
		r.WantsHashMap = true
	}
	if strings.Contains(text, "HashSet") {
		r.WantsHashSet = true
	}
}

func (r *Result) walkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		for _, line := range s.Body {
			r.walkStmt(line)
		}
	case *ast.ClassDef:
		for _, m := range s.Body {
			for _, line := range m.Body {
				r.walkStmt(line)
			}
		}
	case *ast.ExpressionStatement:
		r.walkExpr(s.Value)
	case *ast.ReturnStatement:
		r.walkExpr(s.Value)
	case *ast.IfStatement:
		r.walkExpr(s.Test)
		for _, line := range s.Body {
			r.walkStmt(line)
		}
		for _, line := range s.Orelse {
			r.walkStmt(line)
		}
	case *ast.WhileStatement:
		r.walkExpr(s.Test)
		for _, line := range s.Body {
			r.walkStmt(line)
		}
	case *ast.ForStatement:
		r.walkExpr(s.Iter)
		for _, line := range s.Body {
			r.walkStmt(line)
		}
	case *ast.AssignStatement:
		r.walkExpr(s.Value)
		for _, t := range s.Targets {
			r.walkExpr(t)
		}
	case *ast.AnnAssignStatement:
		r.walkExpr(s.Value)
		r.walkExpr(s.Target)
	case *ast.AugAssignStatement:
		r.walkExpr(s.Value)
		r.walkExpr(s.Target)
	case *ast.AssertStatement:
		r.walkExpr(s.Test)
		r.walkExpr(s.Msg)
	case *ast.DelStatement:
		r.walkExpr(s.Target)
	}
}

func (r *Result) walkExpr(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch n := expr.(type) {
	case *ast.SetLiteral:
		r.WantsHashSet = true
		for _, el := range n.Elements {
			r.walkExpr(el)
		}
	case *ast.DictLiteral:
		r.WantsHashMap = true
		for _, k := range n.Keys {
			r.walkExpr(k)
		}
		for _, v := range n.Values {
			r.walkExpr(v)
		}
	case *ast.SetComp:
		r.WantsHashSet = true
		r.walkComprehensions(n.Generators)
		r.walkExpr(n.Elt)
	case *ast.DictComp:
		r.WantsHashMap = true
		r.walkComprehensions(n.Generators)
		r.walkExpr(n.Key)
		r.walkExpr(n.Value)
	case *ast.ListComp:
		r.walkComprehensions(n.Generators)
		r.walkExpr(n.Elt)
	case *ast.Call:
		for _, a := range n.Args {
			r.walkExpr(a)
		}
		if ident, ok := n.Func.(*ast.Identifier); ok && ident.Value == "dict" {
			r.WantsHashMap = true
		}
	case *ast.BinOp:
		r.walkExpr(n.Left)
		r.walkExpr(n.Right)
	case *ast.UnaryOp:
		r.walkExpr(n.Operand)
	case *ast.BoolOp:
		for _, v := range n.Values {
			r.walkExpr(v)
		}
	case *ast.Compare:
		r.walkExpr(n.Left)
		for _, c := range n.Comparators {
			r.walkExpr(c)
		}
	case *ast.IfExp:
		r.walkExpr(n.Test)
		r.walkExpr(n.Body)
		r.walkExpr(n.Orelse)
	case *ast.Subscript:
		r.walkExpr(n.Value)
		r.walkExpr(n.Index)
	case *ast.Attribute:
		r.walkExpr(n.Value)
	case *ast.TupleLiteral:
		for _, el := range n.Elements {
			r.walkExpr(el)
		}
	case *ast.ListLiteral:
		for _, el := range n.Elements {
			r.walkExpr(el)
		}
	}
}

func (r *Result) walkComprehensions(gens []ast.Comprehension) {
	for _, g := range gens {
		r.walkExpr(g.Iter)
		for _, cond := range g.Ifs {
			r.walkExpr(cond)
		}
	}
}
