// Package codegen walks a Source function or class body alongside the
// analyzer's per-function results and streams out Target code: the same
// indent/precedence bookkeeping (`pretty`/`addIndent`, `parensIfNeeded`
// over a doubled operator-precedence table) and per-function
// variables/mutable-vars bookkeeping driving the assignment state
// machine, built around a bytes.Buffer rather than streaming straight to
// stdout.
package codegen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pyrrust/internal/analyzer"
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// operatorPrecedence gives each binary/unary operator its binding
// strength, used by parensIfNeeded to decide when a sub-expression needs
// wrapping. Python and Rust share operator precedence except for `**`,
// `is`, and `in`, which this generator handles outside this table.
var operatorPrecedence = map[string]int{
	"**": 12,
	"u+": 11, "u-": 11, "u~": 11, "not": 11,
	"*": 10, "/": 10, "//": 10, "%": 10,
	"+": 9, "-": 9,
	"<<": 8, ">>": 8,
	"&": 7,
	"^": 6,
	"|": 5,
	"==": 4, "!=": 4, "<": 4, "<=": 4, ">": 4, ">=": 4,
	"and": 2,
	"or":  1,
}

// MaxPrecedence is one above any real operator precedence; forcing it onto
// the visitor guarantees the next expression is parenthesized.
const MaxPrecedence = 13

// Writer holds the live state of one function or method's emission. A
// fresh Writer is built per function so no state leaks across functions.
type Writer struct {
	buf        bytes.Buffer
	indent     int
	precedence int

	result *analyzer.Result
	idx    *headers.Index
	diags  *diagnostics.Collector

	declared map[string]bool
	tmpSeq   int

	className string // "" unless emitting a method body
}

// NewWriter builds a Writer for one function body, given that function's
// already-computed analyzer.Result and the whole-module header index (for
// resolving calls to other functions/classes).
func NewWriter(result *analyzer.Result, idx *headers.Index, diags *diagnostics.Collector, className string) *Writer {
	return &Writer{
		result:    result,
		idx:       idx,
		diags:     diags,
		declared:  make(map[string]bool),
		className: className,
	}
}

// String returns the accumulated output.
func (w *Writer) String() string { return w.buf.String() }

// Emit implements catalog.Emitter.
func (w *Writer) Emit(s string) { w.buf.WriteString(s) }

// Emitf implements catalog.Emitter.
func (w *Writer) Emitf(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
}

// pretty renders the current indentation, four spaces per level.
func (w *Writer) pretty() string {
	return strings.Repeat("    ", w.indent)
}

func (w *Writer) addIndent(delta int) { w.indent += delta }

// TypeOf implements catalog.ExprVisitor.
func (w *Writer) TypeOf(e ast.Expression) typesystem.Type {
	if e == nil {
		return typesystem.Empty
	}
	return w.result.TypeByNode[e]
}

// SetPrecedence implements catalog.ExprVisitor.
func (w *Writer) SetPrecedence(p int) { w.precedence = p }

// VisitPlain implements catalog.ExprVisitor: render e exactly as the
// expression grammar dictates, no ownership conversion.
func (w *Writer) VisitPlain(e ast.Expression) { w.emitExpr(e) }

// VisitConverted implements catalog.ExprVisitor: render e, then apply
// whatever container-position conversion its type needs (e.g. `&str` ->
// `.to_string()`) for a value flowing into an owned container.
func (w *Writer) VisitConverted(e ast.Expression) {
	w.emitExpr(e)
	if conv, ok := typesystem.ContainerConversion(w.TypeOf(e)); ok {
		w.Emit(conv)
	}
}

// nextTemp returns a fresh, deterministic temporary name, used for tuple
// swap/destructure assignment. Deterministic so that translating the same
// input twice produces byte-identical output.
func (w *Writer) nextTemp() string {
	w.tmpSeq++
	return "__tmp" + strconv.Itoa(w.tmpSeq)
}
