package analyzer

import (
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// visitStmt dispatches one statement.
func (w *walker) visitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		w.visitExpr(s.Value)
	case *ast.ReturnStatement:
		w.visitReturn(s)
	case *ast.PassStatement, *ast.BreakStatement, *ast.ContinueStatement:
		// no variable effects
	case *ast.IfStatement:
		w.visitIf(s)
	case *ast.WhileStatement:
		w.visitWhile(s)
	case *ast.ForStatement:
		w.visitFor(s)
	case *ast.AssignStatement:
		w.visitAssign(s)
	case *ast.AnnAssignStatement:
		w.visitAnnAssign(s)
	case *ast.AugAssignStatement:
		w.visitAugAssign(s)
	case *ast.AssertStatement:
		w.visitExpr(s.Test)
		if s.Msg != nil {
			w.visitExpr(s.Msg)
		}
	case *ast.DelStatement:
		w.visitExpr(s.Target)
	}
}

// visitReturn always widens to container position: a function always
// returns an owned value, never a borrow of a local.
func (w *walker) visitReturn(s *ast.ReturnStatement) {
	if s.Value != nil {
		w.visitExpr(s.Value)
	}
	w.setTypeContainer(s)
}

func (w *walker) visitIf(s *ast.IfStatement) {
	w.visitExpr(s.Test)
	w.typeByNode[s.Test] = typesystem.Bool

	prev := w.enterScope()
	for _, line := range s.Body {
		w.visitStmt(line)
	}
	w.exitScope(prev)

	prev = w.enterScope()
	for _, line := range s.Orelse {
		w.visitStmt(line)
	}
	w.exitScope(prev)
}

func (w *walker) visitWhile(s *ast.WhileStatement) {
	w.visitExpr(s.Test)
	w.typeByNode[s.Test] = typesystem.Bool

	prev := w.enterScope()
	for _, line := range s.Body {
		w.visitStmt(line)
	}
	w.exitScope(prev)
}

// visitFor treats the loop as repeated assignment of the iterable's
// element type to the target, then a nested scope for the body.
func (w *walker) visitFor(s *ast.ForStatement) {
	w.visitExpr(s.Iter)
	elemType := typesystem.Type(typesystem.StripContainer(w.currentType))
	w.handleAssignment(s.Target, elemType)

	prev := w.enterScope()
	for _, line := range s.Body {
		w.visitStmt(line)
	}
	w.exitScope(prev)
}

func (w *walker) visitAssign(s *ast.AssignStatement) {
	w.visitExpr(s.Value)
	for _, target := range s.Targets {
		w.handleAssignment(target, w.currentType)
	}
}

func (w *walker) visitAnnAssign(s *ast.AnnAssignStatement) {
	if s.Value != nil {
		w.visitExpr(s.Value)
	}
	typed := typesystem.MapAnnotation(s.Annotation, true)
	w.handleAssignment(s.Target, typed)
}

// visitAugAssign treats `x += y` as `x = x + y`: reads x's current type,
// visits the RHS for its own node typing, then writes x back unchanged
// (Rust's compound-assignment operators do not change the variable's
// type).
func (w *walker) visitAugAssign(s *ast.AugAssignStatement) {
	ident, ok := s.Target.(*ast.Identifier)
	if !ok {
		w.visitExpr(s.Value)
		w.handleAssignment(s.Target, typesystem.UnknownT)
		return
	}
	typed := w.readAccess(ident.Value)
	w.setType(typed, s.Target)
	w.visitExpr(s.Value)
	w.handleAssignment(s.Target, typed)
}

// handleAssignment resolves an assignment target against a resolved RHS
// type: a bare name writes it directly, a tuple target destructures
// component-wise, a subscript target marks its container mutably
// borrowed.
func (w *walker) handleAssignment(target ast.Expression, typed typesystem.Type) {
	switch t := target.(type) {
	case *ast.Identifier:
		w.writeAccess(t.Value, typesystem.ContainerType(typed), t)
	case *ast.TupleLiteral:
		s := string(typed)
		if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
			w.diags.Add(diagnostics.NewError(diagnostics.ErrTypMerge, t.Token,
				"cannot assign tuple from non-tuple type %s", typed))
			return
		}
		subtypes := strings.Split(typesystem.StripContainer(typed), ", ")
		for i, el := range t.Elements {
			if i < len(subtypes) {
				w.handleAssignment(el, typesystem.Type(subtypes[i]))
			}
		}
	case *ast.Subscript:
		if ident, ok := t.Value.(*ast.Identifier); ok {
			if info, ok := w.vars[ident.Value]; ok {
				info.MutableRef = true
			}
		}
		w.visitExpr(t)
	case *ast.Attribute:
		// `recv.attr = value` / `recv.attr += value` mutates through recv,
		// same as a subscript write mutates through its container. Most
		// commonly recv is `self` inside a method body.
		if ident, ok := t.Value.(*ast.Identifier); ok {
			if info, ok := w.vars[ident.Value]; ok {
				info.MutableRef = true
			}
		}
		w.visitExpr(t)
	default:
		w.visitExpr(target)
	}
}
