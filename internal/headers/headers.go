// Package headers harvests function and class signatures from a parsed
// Program in a single pass, before the per-function analyzer and generator
// run. Mirrors the shape of a FunctionHeaderFinder/ClassHeaderFinder/
// InstanceAttributeFinder, restated as Go structs walked with a type
// switch (see internal/ast's package doc for why this repo skips a
// Visitor/Accept pattern).
package headers

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// FunctionHeader is a function or method's resolved signature.
type FunctionHeader struct {
	Returns typesystem.Type
	Args    []Arg
}

// Arg is one formal parameter name paired with its resolved Target type.
type Arg struct {
	Name string
	Type typesystem.Type
}

// ClassHeader is a class's resolved method table, base-class list, and the
// instance attributes discovered by walking its __init__ body.
type ClassHeader struct {
	Bases               []string
	Methods             map[string]*FunctionHeader
	InstanceAttributes  map[string]typesystem.Type
}

// Index is the full header table for one Source module.
type Index struct {
	Functions map[string]*FunctionHeader
	Classes   map[string]*ClassHeader
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		Functions: make(map[string]*FunctionHeader),
		Classes:   make(map[string]*ClassHeader),
	}
}

// Find walks prog's top-level statements and returns its header Index.
//py::FunctionHeaderFinder.visit_FunctionDef/visit_ClassDef.
func Find(prog *ast.Program) *Index {
	idx := NewIndex()
	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *ast.FunctionDef:
			idx.Functions[n.Name] = headerOf(n, "")
		case *ast.ClassDef:
			idx.Classes[n.Name] = classHeaderOf(n)
		}
	}
	return idx
}

// headerOf builds a FunctionHeader from a FunctionDef's declared signature.
// className is the owning class's name for a method, or "" for a
// module-level function; an unannotated `self` parameter then resolves to
// a borrowed receiver of that class rather than falling through to
// Unknown, so later self.attr/self.method() resolution has a type to key
// on.
func headerOf(fn *ast.FunctionDef, className string) *FunctionHeader {
	h := &FunctionHeader{}
	if fn.Returns != nil {
		h.Returns = typesystem.MapAnnotation(fn.Returns, true)
	}
	for _, p := range fn.Params {
		typed := typesystem.MapAnnotation(p.Annotation, false)
		if p.Name == "self" && p.Annotation == nil && className != "" {
			typed = typesystem.Type("&" + className)
		}
		h.Args = append(h.Args, Arg{Name: p.Name, Type: typed})
	}
	return h
}

// classHeaderOf builds a ClassHeader: every method's signature, plus, for
// __init__ specifically, the instance attributes discovered by scanning its
// body for `self.<name> = ...` and `self.<name>: T = ...` statements.
//py::ClassHeaderFinder.visit_FunctionDef.
func classHeaderOf(cls *ast.ClassDef) *ClassHeader {
	ch := &ClassHeader{
		Bases:              cls.Bases,
		Methods:            make(map[string]*FunctionHeader),
		InstanceAttributes: make(map[string]typesystem.Type),
	}
	for _, m := range cls.Body {
		h := headerOf(m, cls.Name)
		ch.Methods[m.Name] = h
		if m.Name == "__init__" {
			argTypes := make(map[string]typesystem.Type, len(h.Args))
			for _, a := range h.Args {
				argTypes[a.Name] = a.Type
			}
			ch.InstanceAttributes = findInstanceAttributes(m.Body, argTypes)
		}
	}
	return ch
}

// findInstanceAttributes scans an __init__ body for `self.x = ...` and
// `self.x: T = ...` statements and infers each attribute's type. Direct
// assignment from a constructor argument takes that argument's declared
// type; a literal infers its own scalar type; anything else is left
// Unknown, mirroring InstanceAttributeFinder.visit_Assign's fallback.
func findInstanceAttributes(body []ast.Statement, argTypes map[string]typesystem.Type) map[string]typesystem.Type {
	attrs := make(map[string]typesystem.Type)
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.AssignStatement:
			for _, target := range s.Targets {
				if name, ok := selfAttrName(target); ok {
					attrs[name] = inferAssignedType(s.Value, argTypes)
				}
			}
		case *ast.AnnAssignStatement:
			if name, ok := selfAttrName(s.Target); ok {
				attrs[name] = typesystem.MapAnnotation(s.Annotation, true)
			}
		}
	}
	return attrs
}

// selfAttrName reports whether expr is `self.<name>` and returns the name.
func selfAttrName(expr ast.Expression) (string, bool) {
	attr, ok := expr.(*ast.Attribute)
	if !ok {
		return "", false
	}
	ident, ok := attr.Value.(*ast.Identifier)
	if !ok || ident.Value != "self" {
		return "", false
	}
	return attr.Attr, true
}

// inferAssignedType infers the type of an __init__ assignment's RHS.
func inferAssignedType(value ast.Expression, argTypes map[string]typesystem.Type) typesystem.Type {
	switch v := value.(type) {
	case *ast.Identifier:
		if t, ok := argTypes[v.Value]; ok {
			return t
		}
	case *ast.BoolLiteral:
		return typesystem.Bool
	case *ast.IntegerLiteral:
		return typesystem.I64
	case *ast.FloatLiteral:
		return typesystem.F64
	case *ast.StringLiteral:
		return typesystem.OwnedStr
	}
	return typesystem.UnknownT
}
