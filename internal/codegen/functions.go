package codegen

import (
	"strings"

	"github.com/funvibe/pyrrust/internal/analyzer"
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// EmitFunction renders one module-level function definition: its `pub fn`
// signature, the predeclared-variable preamble a nested-scope write
// requires, and its body. Split from the class path (which additionally
// prefixes `self`/`&mut self`/`&self`) by EmitMethod below.
func EmitFunction(fn *ast.FunctionDef, idx *headers.Index, resolver analyzer.ModuleResolver, diags *diagnostics.Collector) string {
	result := analyzer.Analyze(fn, idx, resolver, diags, "")
	w := NewWriter(result, idx, diags, "")
	header := idx.Functions[fn.Name]
	w.emitSignature(fn.Name, fn.Params, header, "")
	w.emitFunctionBody(fn.Body, result)
	return w.String()
}

// EmitMethod renders one method inside a class's `impl` block, with `self`
// rendered as Rust's own receiver-sigil shorthand rather than a typed
// parameter. className's owning class is used to resolve `self.attr`/
// `self.method()` the same way EmitFunction resolves free names.
func EmitMethod(fn *ast.FunctionDef, className string, idx *headers.Index, resolver analyzer.ModuleResolver, diags *diagnostics.Collector) string {
	result := analyzer.Analyze(fn, idx, resolver, diags, className)
	w := NewWriter(result, idx, diags, className)
	header := idx.Classes[className].Methods[fn.Name]
	if fn.Name == "__init__" {
		w.emitConstructor(fn, className, header)
		return w.String()
	}
	w.emitSignature(fn.Name, fn.Params, header, className)
	w.emitFunctionBody(fn.Body, result)
	return w.String()
}

// emitSignature writes `pub fn name(params) -> T {\n`. A method's first
// parameter (`self`) is rendered as `&self`/`&mut self` instead of a typed
// binding; className == "" marks a free function, where every parameter is
// typed normally.
func (w *Writer) emitSignature(name string, params []ast.Param, header *headers.FunctionHeader, className string) {
	w.Emitf("pub fn %s(", name)
	for i, p := range params {
		if i > 0 {
			w.Emit(", ")
		}
		if className != "" && i == 0 && p.Name == "self" {
			if w.result.MutableRefVars["self"] {
				w.Emit("&mut self")
			} else {
				w.Emit("&self")
			}
			continue
		}
		w.emitParam(p.Name, header.Args[i].Type)
	}
	w.Emit(")")
	if header.Returns != "" {
		w.Emitf(" -> %s", header.Returns)
	}
	w.Emit(" {\n")
}

// emitParam renders one non-receiver parameter as `[mut ]name: Type`,
// widening the type's leading reference to `&mut` when the analyzer found
// the parameter passed on to a mutating method call.
func (w *Writer) emitParam(name string, typed typesystem.Type) {
	t := string(typed)
	if w.result.MutableRefVars[name] && strings.HasPrefix(t, "&") && !strings.HasPrefix(t, "&mut ") {
		t = "&mut " + t[1:]
	}
	if w.result.MutableVars[name] {
		w.Emit("mut ")
	}
	w.declared[name] = true
	w.Emitf("%s: %s", name, t)
}

// emitFunctionBody writes the predeclared-variable preamble, then the
// body statements, then the closing brace.
func (w *Writer) emitFunctionBody(body []ast.Statement, result *analyzer.Result) {
	w.addIndent(1)
	for _, pv := range result.Predeclared {
		w.Emitf("%slet mut %s: %s = %s;\n", w.pretty(), pv.Name, pv.Type, pv.Default)
		w.declared[pv.Name] = true
	}
	w.emitBlock(body)
	w.addIndent(-1)
	w.Emit("}\n")
}

// emitConstructor renders __init__ as an associated `fn new(...) -> Self`:
// the body's `self.attr = value` assignments are collected into a single
// `Self { ... }` struct literal rather than emitted as individual field
// writes, since there is no live `self` binding to mutate before the struct
// exists.
func (w *Writer) emitConstructor(fn *ast.FunctionDef, className string, header *headers.FunctionHeader) {
	w.Emitf("pub fn new(")
	first := true
	for i, p := range fn.Params {
		if i == 0 && p.Name == "self" {
			continue
		}
		if !first {
			w.Emit(", ")
		}
		first = false
		w.emitParam(p.Name, header.Args[i].Type)
	}
	w.Emitf(") -> Self {\n")
	w.addIndent(1)

	var fields []string
	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *ast.AssignStatement:
			for _, t := range s.Targets {
				if name, ok := selfAttrName(t); ok {
					w.Emitf("%slet %s = ", w.pretty(), name)
					w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
					w.Emit(";\n")
					w.declared[name] = true
					fields = append(fields, name)
				}
			}
		case *ast.AnnAssignStatement:
			if name, ok := selfAttrName(s.Target); ok && s.Value != nil {
				w.Emitf("%slet %s = ", w.pretty(), name)
				w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
				w.Emit(";\n")
				w.declared[name] = true
				fields = append(fields, name)
			}
		default:
			w.emitStmt(stmt)
		}
	}

	w.Emitf("%sSelf { %s }\n", w.pretty(), strings.Join(fields, ", "))
	w.addIndent(-1)
	w.Emitf("}\n")
}

// selfAttrName reports whether expr is `self.<name>`.
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
