package codegen

import (
	"strconv"
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/catalog"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// emitExpr is the single recursive-descent entry point for every expression
// node in output position, dispatching by type to one emit* method per
// node kind.
func (w *Writer) emitExpr(node ast.Expression) {
	switch n := node.(type) {
	case *ast.Identifier:
		w.Emit(n.Value)
	case *ast.IntegerLiteral:
		w.Emit(n.Value)
	case *ast.FloatLiteral:
		w.Emit(n.Value)
	case *ast.StringLiteral:
		w.Emit(strconv.Quote(n.Value))
	case *ast.BoolLiteral:
		if n.Value {
			w.Emit("true")
		} else {
			w.Emit("false")
		}
	case *ast.NoneLiteral:
		w.Emit("None")
	case *ast.TupleLiteral:
		w.emitTuple(n)
	case *ast.ListLiteral:
		w.emitList(n)
	case *ast.SetLiteral:
		w.emitSet(n)
	case *ast.DictLiteral:
		w.emitDict(n)
	case *ast.Subscript:
		w.emitSubscript(n)
	case *ast.BinOp:
		w.emitBinOp(n)
	case *ast.UnaryOp:
		w.emitUnaryOp(n)
	case *ast.BoolOp:
		w.emitBoolOp(n)
	case *ast.Compare:
		w.emitCompare(n)
	case *ast.IfExp:
		w.emitIfExp(n)
	case *ast.Call:
		w.emitCall(n)
	case *ast.Attribute:
		w.emitAttribute(n)
	case *ast.ListComp:
		w.emitListComp(n)
	case *ast.SetComp:
		w.emitSetComp(n)
	case *ast.DictComp:
		w.emitDictComp(n)
	default:
		w.Emit("/* unsupported expression */")
	}
}

// parensIfNeeded decides whether the expression about to be visited needs
// wrapping in parens given the operator the caller is embedding it in: the
// table value is doubled so a left-to-right chain of equal-precedence
// operators parenthesizes correctly without a separate associativity flag;
// visit runs with precedence temporarily set to the operator's own
// doubled value, and the enclosing parens are emitted only when the
// caller's running precedence exceeds this operator's.
func (w *Writer) parensIfNeeded(op string, visit func()) {
	prec, ok := operatorPrecedence[op]
	if !ok {
		prec = MaxPrecedence
	}
	needParens := prec*2 < w.precedence
	if needParens {
		w.Emit("(")
	}
	saved := w.precedence
	w.precedence = prec * 2
	visit()
	w.precedence = saved
	if needParens {
		w.Emit(")")
	}
}

func (w *Writer) emitTuple(n *ast.TupleLiteral) {
	w.Emit("(")
	for i, el := range n.Elements {
		if i > 0 {
			w.Emit(", ")
		}
		w.withPrecedence(0, func() { w.emitExpr(el) })
	}
	if len(n.Elements) == 1 {
		w.Emit(",")
	}
	w.Emit(")")
}

func (w *Writer) emitList(n *ast.ListLiteral) {
	w.Emit("vec![")
	for i, el := range n.Elements {
		if i > 0 {
			w.Emit(", ")
		}
		w.VisitConverted(el)
	}
	w.Emit("]")
}

func (w *Writer) emitSet(n *ast.SetLiteral) {
	w.Emit("HashSet::from([")
	for i, el := range n.Elements {
		if i > 0 {
			w.Emit(", ")
		}
		w.VisitConverted(el)
	}
	w.Emit("])")
}

func (w *Writer) emitDict(n *ast.DictLiteral) {
	w.Emit("HashMap::from([")
	for i := range n.Keys {
		if i > 0 {
			w.Emit(", ")
		}
		w.Emit("(")
		w.VisitConverted(n.Keys[i])
		w.Emit(", ")
		w.VisitConverted(n.Values[i])
		w.Emit(")")
	}
	w.Emit("])")
}

func (w *Writer) emitSubscript(n *ast.Subscript) {
	containerType := w.TypeOf(n.Value)
	isTuple := strings.HasPrefix(string(typesystem.Dereference(containerType)), "(")
	if lit, ok := n.Index.(*ast.IntegerLiteral); ok && isTuple {
		// Tuple component access renders as `.0`/`.1` rather than `[i]`.
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(n.Value) })
		w.Emitf(".%s", lit.Value)
		return
	}
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(n.Value) })
	w.Emit("[")
	w.withPrecedence(0, func() { w.emitExpr(n.Index) })
	w.Emit("]")
}

// withPrecedence runs emit with the running precedence temporarily set to p.
func (w *Writer) withPrecedence(p int, emit func()) {
	saved := w.precedence
	w.precedence = p
	emit()
	w.precedence = saved
}

// emitBinOp: `**` gets its own rendering (emitPowOp), everything else goes through
// parensIfNeeded with the right operand visited at precedence+1 so that
// `a - (b - c)` keeps its parens while `a - b - c` doesn't gain any (left
// associativity encoded as a precedence bump on the right operand only).
func (w *Writer) emitBinOp(n *ast.BinOp) {
	if n.Op == "**" {
		w.emitPowOp(n)
		return
	}
	if w.needsElementwise(n.Op, n.Left, n.Right) {
		w.emitElementwise(n.Op, n.Left, n.Right)
		return
	}
	w.parensIfNeeded(n.Op, func() {
		base := w.precedence
		w.emitExpr(n.Left)
		w.Emit(" " + n.Op + " ")
		w.precedence = base + 1
		w.emitExpr(n.Right)
		w.precedence = base
	})
}

// emitPowOp: `a ** b` becomes `a.pow((b) as u32)`. The left operand is
// visited at the highest precedence, so it gains parens only when it is
// itself an operator expression; the right operand is always wrapped in
// parens so the `as u32` cast applies to all of it.
func (w *Writer) emitPowOp(n *ast.BinOp) {
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(n.Left) })
	w.Emit(".pow((")
	w.withPrecedence(0, func() { w.emitExpr(n.Right) })
	w.Emit(") as u32)")
}

// emitUnaryOp: unary `+` is a no-op in Rust (the operand is emitted bare),
// `-` and `~`/`not` each emit their own prefix.
func (w *Writer) emitUnaryOp(n *ast.UnaryOp) {
	switch n.Op {
	case "+":
		w.emitExpr(n.Operand)
		return
	case "not":
		w.parensIfNeeded("not", func() {
			w.Emit("!")
			w.emitExpr(n.Operand)
		})
		return
	case "~":
		w.parensIfNeeded("u~", func() {
			w.Emit("!")
			w.emitExpr(n.Operand)
		})
		return
	default: // "-"
		w.parensIfNeeded("u-", func() {
			w.Emit("-")
			w.emitExpr(n.Operand)
		})
	}
}

// emitBoolOp: `and`/`or` chains reduce to `&&`/`||` joining every operand,
// each visited at the operator's own precedence.
func (w *Writer) emitBoolOp(n *ast.BoolOp) {
	sep := " && "
	if n.Op == "or" {
		sep = " || "
	}
	w.parensIfNeeded(n.Op, func() {
		for i, v := range n.Values {
			if i > 0 {
				w.Emit(sep)
			}
			w.emitExpr(v)
		}
	})
}

var compareOps = map[string]string{
	"==": "==", "!=": "!=", "<": "<", "<=": "<=", ">": ">", ">=": ">=",
}

// emitCompare: a single comparison renders plainly; a chain of 2+
// comparisons re-visits each shared middle operand and joins the links
// with `&&`, wrapped in one enclosing pair of parens, only added when
// there's more than one link. `in`/`not in`/`is`/`is not` are also valid
// inside a Compare node, since Source's restricted grammar allows them
// there.
func (w *Writer) emitCompare(n *ast.Compare) {
	if len(n.Ops) == 1 {
		w.emitCompareLink(n.Left, n.Ops[0], n.Comparators[0])
		return
	}
	w.Emit("(")
	left := n.Left
	for i, op := range n.Ops {
		if i > 0 {
			w.Emit(" && ")
		}
		w.emitCompareLink(left, op, n.Comparators[i])
		left = n.Comparators[i]
	}
	w.Emit(")")
}

func (w *Writer) emitCompareLink(left ast.Expression, op string, right ast.Expression) {
	switch op {
	case "in", "not in":
		w.emitMembership(left, op, right)
		return
	case "is", "is not":
		neg := op == "is not"
		if neg {
			w.Emit("!(")
		}
		w.Emit("(")
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(left) })
		w.Emit(" as *const _) == (")
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(right) })
		w.Emit(" as *const _)")
		if neg {
			w.Emit(")")
		}
		return
	}
	rendered, ok := compareOps[op]
	if !ok {
		rendered = op
	}
	w.emitExpr(left)
	w.Emit(" " + rendered + " ")
	w.emitExpr(right)
}

// emitMembership dispatches `x in y`/`x not in y` on y's container shape: a
// HashMap receiver uses `.contains_key(&x)`, a known HashSet/Vec receiver
// uses `.contains(&x)`, and anything else (a receiver the analyzer never
// pinned down to a concrete container) falls back to an explicit iterator
// search, since there is no single Rust method name guaranteed to exist on
// an unresolved type.
func (w *Writer) emitMembership(left ast.Expression, op string, right ast.Expression) {
	neg := op == "not in"
	rightType := w.TypeOf(right)

	switch {
	case typesystem.IsDict(rightType):
		if neg {
			w.Emit("!")
		}
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(right) })
		w.Emit(".contains_key(&")
		w.withPrecedence(0, func() { w.emitExpr(left) })
		w.Emit(")")
	case typesystem.IsSet(rightType) || typesystem.IsList(rightType):
		if neg {
			w.Emit("!")
		}
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(right) })
		w.Emit(".contains(&")
		w.withPrecedence(0, func() { w.emitExpr(left) })
		w.Emit(")")
	default:
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(right) })
		w.Emit(".iter().position(|x| *x == ")
		w.withPrecedence(0, func() { w.emitExpr(left) })
		if neg {
			w.Emit(") == None")
		} else {
			w.Emit(") != None")
		}
	}
}

func (w *Writer) emitIfExp(n *ast.IfExp) {
	w.Emit("if ")
	w.withPrecedence(0, func() { w.emitExpr(n.Test) })
	w.Emit(" { ")
	w.emitExpr(n.Body)
	w.Emit(" } else { ")
	w.emitExpr(n.Orelse)
	w.Emit(" }")
}

func (w *Writer) emitAttribute(n *ast.Attribute) {
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(n.Value) })
	w.Emitf(".%s", n.Attr)
}

// emitCall dispatches a call expression to one of four shapes, built
// around a call's flattened attribute path: a single-name builtin, a
// class constructor, a module-qualified free function, or a method call
// on a known local.
func (w *Writer) emitCall(n *ast.Call) {
	path := funcPath(n.Func)

	if len(path) == 1 {
		if path[0] == "zip" && len(n.Args) != 2 {
			w.diags.Add(diagnostics.NewError(diagnostics.ErrZipArity, n.Token, "zip() takes exactly 2 iterables, got %d", len(n.Args)))
			w.Emit("/* unsupported zip */")
			return
		}
		if emit, ok := catalog.LookupFunction(path[0]); ok {
			emit(w, w, n)
			return
		}
		if _, ok := w.idx.Classes[path[0]]; ok {
			w.Emitf("%s::new(", path[0])
			w.emitArgs(n)
			w.Emit(")")
			return
		}
		// Local free function, or an as-yet-unresolved name; emitted as a
		// plain call either way.
		w.Emitf("%s(", path[0])
		w.emitArgs(n)
		w.Emit(")")
		return
	}

	if len(path) >= 2 {
		attr := n.Func.(*ast.Attribute)
		if _, isKnown := w.result.TypeByNode[attr.Value]; isKnown {
			w.emitMethodCall(attr, n)
			return
		}
		// No recorded type for the receiver node means the analyzer never
		// visited it as a known local: a module-qualified call.
		w.Emitf("%s::%s(", strings.Join(path[:len(path)-1], "::"), path[len(path)-1])
		w.emitArgs(n)
		w.Emit(")")
		return
	}

	w.Emit("/* unresolved call */")
}

// emitMethodCall emits the receiver, then either a catalog emission
// closure's suffix or a plain `.method(args)` fallback for a user-defined
// class method or an unrecognized method.
func (w *Writer) emitMethodCall(attr *ast.Attribute, call *ast.Call) {
	receiverType := w.TypeOf(attr.Value)
	if emit, ok := catalog.LookupMethod(receiverType, attr.Attr); ok {
		w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(attr.Value) })
		emit(w, w, receiverType, call)
		return
	}
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(attr.Value) })
	w.Emitf(".%s(", attr.Attr)
	w.emitArgs(call)
	w.Emit(")")
}

func (w *Writer) emitArgs(call *ast.Call) {
	for i, a := range call.Args {
		if i > 0 {
			w.Emit(", ")
		}
		w.withPrecedence(0, func() { w.VisitConverted(a) })
	}
}

// funcPath flattens a call target the same way analyzer.funcPath does,
// restated here since that helper is unexported from its package.
func funcPath(expr ast.Expression) []string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return []string{e.Value}
	case *ast.Attribute:
		return append(funcPath(e.Value), e.Attr)
	default:
		return nil
	}
}

// emitListComp/emitSetComp/emitDictComp render a single-generator
// comprehension as an iterator chain: `.iter().filter(|t| cond)*.map(|t|
// elt).collect::<...>()`, with the collect suffix fixed per comprehension
// kind (catalog.emitCollect uses the analogous table for method calls
// that need the same collect-into-container shape).
func (w *Writer) emitListComp(n *ast.ListComp) {
	w.emitComprehension(n.Generators, n.Elt, nil, "collect::<Vec<_>>()")
}

func (w *Writer) emitSetComp(n *ast.SetComp) {
	w.emitComprehension(n.Generators, n.Elt, nil, "collect::<HashSet<_>>()")
}

func (w *Writer) emitDictComp(n *ast.DictComp) {
	pair := &ast.TupleLiteral{Elements: []ast.Expression{n.Key, n.Value}}
	w.emitComprehension(n.Generators, pair, nil, "collect::<HashMap<_, _>>()")
}

func (w *Writer) emitComprehension(gens []ast.Comprehension, elt ast.Expression, _ []ast.Expression, collectSuffix string) {
	if len(gens) == 0 {
		w.Emit("std::iter::empty()." + collectSuffix)
		return
	}
	gen := gens[0]
	w.withPrecedence(MaxPrecedence*2, func() { w.emitExpr(gen.Iter) })
	w.Emit(".iter()")
	binder := targetBinder(gen.Target)
	for _, cond := range gen.Ifs {
		w.Emitf(".filter(|%s| ", binder)
		w.withPrecedence(0, func() { w.emitExpr(cond) })
		w.Emit(")")
	}
	// Skip the .map() entirely when the element expression is just the
	// bound name - the iterator already yields that value.
	if name, ok := elt.(*ast.Identifier); !ok || name.Value != binder {
		w.Emitf(".map(|%s| ", binder)
		w.withPrecedence(0, func() { w.emitExpr(elt) })
		w.Emit(")")
	}
	w.Emit(".")
	w.Emit(collectSuffix)
}

// targetBinder renders a comprehension's loop target as a closure
// parameter pattern: a bare name binds directly, a tuple target destructures
// positionally the same way a `for` loop's target list does.
func targetBinder(target ast.Expression) string {
	switch t := target.(type) {
	case *ast.Identifier:
		return t.Value
	case *ast.TupleLiteral:
		parts := make([]string, 0, len(t.Elements))
		for _, el := range t.Elements {
			parts = append(parts, targetBinder(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "_"
	}
}
