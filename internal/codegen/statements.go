package codegen

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// emitBlock emits every statement in body, one per line, at the current
// indent level.
func (w *Writer) emitBlock(body []ast.Statement) {
	for _, stmt := range body {
		w.emitStmt(stmt)
	}
}

// emitStmt is the per-statement dispatch.
func (w *Writer) emitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		w.Emit(w.pretty())
		w.withPrecedence(0, func() { w.emitExpr(s.Value) })
		w.Emit(";\n")
	case *ast.ReturnStatement:
		w.emitReturn(s)
	case *ast.PassStatement:
		// Source's `pass` carries no Target equivalent; nothing to emit.
	case *ast.BreakStatement:
		w.Emitf("%sbreak;\n", w.pretty())
	case *ast.ContinueStatement:
		w.Emitf("%scontinue;\n", w.pretty())
	case *ast.IfStatement:
		w.emitIf(s)
	case *ast.WhileStatement:
		w.emitWhile(s)
	case *ast.ForStatement:
		w.emitFor(s)
	case *ast.AssignStatement:
		w.emitAssign(s)
	case *ast.AnnAssignStatement:
		w.emitAnnAssign(s)
	case *ast.AugAssignStatement:
		w.emitAugAssign(s)
	case *ast.AssertStatement:
		w.emitAssert(s)
	case *ast.DelStatement:
		w.emitDel(s)
	default:
		w.Emitf("%s// unsupported statement\n", w.pretty())
	}
}

func (w *Writer) emitReturn(s *ast.ReturnStatement) {
	w.Emit(w.pretty())
	if s.Value == nil {
		w.Emit("return;\n")
		return
	}
	w.Emit("return ")
	w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
	w.Emit(";\n")
}

// emitIf: an `elif` arrives as a single nested IfStatement inside Orelse,
// which this renders as `else if` rather than opening a fresh indent
// level for a one-statement else-block.
func (w *Writer) emitIf(s *ast.IfStatement) {
	w.Emitf("%sif ", w.pretty())
	w.withPrecedence(0, func() { w.emitExpr(s.Test) })
	w.Emit(" {\n")
	w.addIndent(1)
	w.emitBlock(s.Body)
	w.addIndent(-1)
	w.Emit(w.pretty())
	w.Emit("}")
	w.emitOrelse(s.Orelse)
}

func (w *Writer) emitOrelse(orelse []ast.Statement) {
	switch {
	case len(orelse) == 0:
		w.Emit("\n")
	case len(orelse) == 1:
		if nested, ok := orelse[0].(*ast.IfStatement); ok {
			w.Emit(" else ")
			w.emitIfInline(nested)
			return
		}
		fallthrough
	default:
		w.Emit(" else {\n")
		w.addIndent(1)
		w.emitBlock(orelse)
		w.addIndent(-1)
		w.Emit(w.pretty())
		w.Emit("}\n")
	}
}

// emitIfInline emits an `if` header without its own leading indent/pretty(),
// used for the `else if` chain produced by emitOrelse.
func (w *Writer) emitIfInline(s *ast.IfStatement) {
	w.Emit("if ")
	w.withPrecedence(0, func() { w.emitExpr(s.Test) })
	w.Emit(" {\n")
	w.addIndent(1)
	w.emitBlock(s.Body)
	w.addIndent(-1)
	w.Emit(w.pretty())
	w.Emit("}")
	w.emitOrelse(s.Orelse)
}

func (w *Writer) emitWhile(s *ast.WhileStatement) {
	w.Emitf("%swhile ", w.pretty())
	w.withPrecedence(0, func() { w.emitExpr(s.Test) })
	w.Emit(" {\n")
	w.addIndent(1)
	w.emitBlock(s.Body)
	w.addIndent(-1)
	w.Emitf("%s}\n", w.pretty())
}

// emitFor: the loop target binds directly (Rust's `for` already
// destructures tuples via its own pattern syntax, so no temporary is
// needed the way assignment sometimes requires one).
func (w *Writer) emitFor(s *ast.ForStatement) {
	w.Emitf("%sfor %s in ", w.pretty(), targetBinder(s.Target))
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(s.Iter) })
	if !typesystem.IsIterator(w.TypeOf(s.Iter)) {
		w.Emit(".iter()")
	}
	w.Emit(" {\n")
	w.addIndent(1)
	w.emitBlock(s.Body)
	w.addIndent(-1)
	w.Emitf("%s}\n", w.pretty())
}

func (w *Writer) emitAssert(s *ast.AssertStatement) {
	w.Emitf("%sassert!(", w.pretty())
	w.withPrecedence(0, func() { w.emitExpr(s.Test) })
	if s.Msg != nil {
		w.Emit(", ")
		w.withPrecedence(0, func() { w.emitExpr(s.Msg) })
	}
	w.Emit(");\n")
}

// emitDel covers `del d[k]`; a bare `del x` has no Rust equivalent under
// ownership rules and is left as a TODO comment.
func (w *Writer) emitDel(s *ast.DelStatement) {
	sub, ok := s.Target.(*ast.Subscript)
	if !ok {
		w.Emitf("%s// TODO: del of a bare name is not supported\n", w.pretty())
		return
	}
	w.Emit(w.pretty())
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(sub.Value) })
	w.Emit(".remove(&")
	w.withPrecedence(0, func() { w.emitExpr(sub.Index) })
	w.Emit(");\n")
}

// emitAugAssign: the compound operator renders directly as Rust's own
// compound-assignment operator. The target is emitted as-is, so a subscript
// target renders as `d[k] op= v`; it is not rewritten to `.insert`.
func (w *Writer) emitAugAssign(s *ast.AugAssignStatement) {
	w.Emit(w.pretty())
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(s.Target) })
	w.Emitf(" %s= ", s.Op)
	w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
	w.Emit(";\n")
}

// emitAnnAssign: an annotation forces the declared type onto the `let`
// binding the first time a name is
// seen; a bare `x: int` with no value (Value == nil) emits nothing, since
// Rust has no declare-without-initialize for a value binding.
func (w *Writer) emitAnnAssign(s *ast.AnnAssignStatement) {
	if s.Value == nil {
		return
	}
	ident, ok := s.Target.(*ast.Identifier)
	if !ok {
		w.emitAssignTo(s.Target, s.Value)
		return
	}
	w.Emit(w.pretty())
	if w.declared[ident.Value] {
		w.Emit(ident.Value)
		w.Emit(" = ")
	} else {
		w.declared[ident.Value] = true
		w.Emit("let ")
		if w.result.MutableVars[ident.Value] {
			w.Emit("mut ")
		}
		w.Emitf("%s: %s = ", ident.Value, typesystem.MapAnnotation(s.Annotation, true))
	}
	w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
	w.Emit(";\n")
}

// emitAssign handles the chained-assignment form `a = b = expr`: the value
// is evaluated once, bound to a temporary when there is more than one
// target so re-evaluating it per target can't duplicate a side effect, and
// each target then receives an independent declare-or-reassign decision
// through emitAssignTo.
func (w *Writer) emitAssign(s *ast.AssignStatement) {
	if len(s.Targets) == 1 {
		w.emitAssignTo(s.Targets[0], s.Value)
		return
	}

	tmp := w.nextTemp()
	w.Emit(w.pretty())
	w.Emitf("let %s = ", tmp)
	w.withPrecedence(0, func() { w.VisitConverted(s.Value) })
	w.Emit(";\n")

	tmpIdent := &ast.Identifier{Value: tmp}
	for _, target := range s.Targets {
		w.emitAssignTo(target, tmpIdent)
	}
}

// emitAssignTo implements the assignment state machine:
// a map-subscript target becomes `.insert(key, rhs)`; a tuple target whose
// components are already-declared names becomes a temporary-swap unpack
// (so `a, b = b, a` doesn't clobber `a` before `b` reads it); a plain name
// either declares (`let [mut] name = rhs;`) on first occurrence or
// reassigns (`name = rhs;`) thereafter.
func (w *Writer) emitAssignTo(target ast.Expression, value ast.Expression) {
	switch t := target.(type) {
	case *ast.Subscript:
		if typesystem.IsDict(w.TypeOf(t.Value)) {
			w.emitIndexAssign(t, value)
			return
		}
		w.Emit(w.pretty())
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(target) })
		w.Emit(" = ")
		w.withPrecedence(0, func() { w.VisitConverted(value) })
		w.Emit(";\n")
	case *ast.TupleLiteral:
		w.emitTupleAssign(t, value)
	case *ast.Identifier:
		w.emitNameAssign(t.Value, value)
	default:
		w.Emit(w.pretty())
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(target) })
		w.Emit(" = ")
		w.withPrecedence(0, func() { w.VisitConverted(value) })
		w.Emit(";\n")
	}
}

func (w *Writer) emitIndexAssign(t *ast.Subscript, value ast.Expression) {
	w.Emit(w.pretty())
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(t.Value) })
	w.Emit(".insert(")
	w.withPrecedence(0, func() { w.VisitConverted(t.Index) })
	w.Emit(", ")
	w.withPrecedence(0, func() { w.VisitConverted(value) })
	w.Emit(");\n")
}

func (w *Writer) emitNameAssign(name string, value ast.Expression) {
	w.Emit(w.pretty())
	if w.declared[name] {
		w.Emit(name)
		w.Emit(" = ")
	} else {
		w.declared[name] = true
		w.Emit("let ")
		if w.result.MutableVars[name] {
			w.Emit("mut ")
		}
		w.Emit(name)
		w.Emit(" = ")
	}
	w.withPrecedence(0, func() { w.VisitConverted(value) })
	w.Emit(";\n")
}

// emitTupleAssign: when any component target is a name already declared,
// the RHS is captured into a temporary tuple first so every component reads
// the pre-assignment values, then each component is unpacked from the
// temporary in turn. A tuple target whose every component is a
// first-occurrence name instead destructures directly from a single
// `let (a, b) = rhs;`.
func (w *Writer) emitTupleAssign(t *ast.TupleLiteral, value ast.Expression) {
	anyDeclared := false
	for _, el := range t.Elements {
		if ident, ok := el.(*ast.Identifier); ok && w.declared[ident.Value] {
			anyDeclared = true
		}
	}

	if !anyDeclared {
		w.Emit(w.pretty())
		w.Emit("let (")
		for i, el := range t.Elements {
			if i > 0 {
				w.Emit(", ")
			}
			if ident, ok := el.(*ast.Identifier); ok {
				w.declared[ident.Value] = true
				if w.result.MutableVars[ident.Value] {
					w.Emit("mut ")
				}
				w.Emit(ident.Value)
			} else {
				w.emitExpr(el)
			}
		}
		w.Emit(") = ")
		w.withPrecedence(0, func() { w.VisitConverted(value) })
		w.Emit(";\n")
		return
	}

	tmp := w.nextTemp()
	w.Emitf("%slet %s = ", w.pretty(), tmp)
	w.withPrecedence(0, func() { w.VisitConverted(value) })
	w.Emit(";\n")
	for i, el := range t.Elements {
		w.Emitf("%s", w.pretty())
		if ident, ok := el.(*ast.Identifier); ok {
			if w.declared[ident.Value] {
				w.Emitf("%s = %s.%d;\n", ident.Value, tmp, i)
			} else {
				w.declared[ident.Value] = true
				mut := ""
				if w.result.MutableVars[ident.Value] {
					mut = "mut "
				}
				w.Emitf("let %s%s = %s.%d;\n", mut, ident.Value, tmp, i)
			}
		} else {
			w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(el) })
			w.Emitf(" = %s.%d;\n", tmp, i)
		}
	}
}
