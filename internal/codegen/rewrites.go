package codegen

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// emitElementwise renders `left op right` between two sequence types as a
// zip/map/collect chain, since Rust's own operators have no element-wise
// meaning for Vec/HashSet: the Source subset treats any binary operator
// between two sequences as an element-wise numeric operation, not a
// sequence-level one (e.g. concatenation for `+`). typesystem.
// ContainerTypeNeeded decides when this rewrite applies.
func (w *Writer) emitElementwise(op string, left, right ast.Expression) {
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(left) })
	w.Emit(".iter().zip(")
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(right) })
	w.Emitf(".iter()).map(|(a, b)| a %s b).collect::<Vec<_>>()", op)
}

// needsElementwise reports whether `left op right` must go through
// emitElementwise rather than a plain Rust operator.
func (w *Writer) needsElementwise(_ string, left, right ast.Expression) bool {
	return typesystem.ContainerTypeNeeded(w.TypeOf(left), w.TypeOf(right))
}
