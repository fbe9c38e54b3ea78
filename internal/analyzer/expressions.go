package analyzer

import (
	"strconv"
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/catalog"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// visitExpr is the single recursive-descent entry point for every
// expression node, fanned out from a type switch instead of double-dispatch
// (see internal/ast's package doc).
func (w *walker) visitExpr(node ast.Expression) typesystem.Type {
	if node == nil {
		return typesystem.Empty
	}
	switch n := node.(type) {
	case *ast.Identifier:
		w.setType(w.readAccess(n.Value), n)
	case *ast.IntegerLiteral:
		w.setType(typesystem.I64, n)
	case *ast.FloatLiteral:
		w.setType(typesystem.F64, n)
	case *ast.StringLiteral:
		w.setType(typesystem.BorrowedStr, n)
	case *ast.BoolLiteral:
		w.setType(typesystem.Bool, n)
	case *ast.NoneLiteral:
		w.setType(typesystem.Empty, n)
	case *ast.TupleLiteral:
		w.visitTuple(n)
	case *ast.ListLiteral:
		w.visitList(n)
	case *ast.SetLiteral:
		w.visitSet(n)
	case *ast.DictLiteral:
		w.visitDict(n)
	case *ast.Subscript:
		w.visitSubscript(n)
	case *ast.BinOp:
		w.visitBinOp(n)
	case *ast.UnaryOp:
		w.visitUnaryOp(n)
	case *ast.BoolOp:
		w.visitBoolOp(n)
	case *ast.Compare:
		w.visitCompare(n)
	case *ast.IfExp:
		w.visitIfExp(n)
	case *ast.Call:
		w.visitCall(n)
	case *ast.Attribute:
		w.visitAttribute(n)
	case *ast.ListComp:
		w.visitListComp(n)
	case *ast.SetComp:
		w.visitSetComp(n)
	case *ast.DictComp:
		w.visitDictComp(n)
	default:
		w.setType(typesystem.UnknownT, n)
	}
	return w.currentType
}

func (w *walker) visitTuple(n *ast.TupleLiteral) {
	parts := make([]string, 0, len(n.Elements))
	for _, el := range n.Elements {
		w.visitExpr(el)
		parts = append(parts, string(w.currentType))
	}
	w.setType(typesystem.Type("("+strings.Join(parts, ", ")+")"), n)
}

func (w *walker) visitList(n *ast.ListLiteral) {
	elem := typesystem.Empty
	for _, el := range n.Elements {
		w.visitExpr(el)
		elem = typesystem.Merge(elem, w.currentType)
	}
	w.setType(typesystem.Type("&["+string(elem)+"]"), n)
}

func (w *walker) visitSet(n *ast.SetLiteral) {
	elem := typesystem.Empty
	for _, el := range n.Elements {
		w.visitExpr(el)
		elem = typesystem.Merge(elem, w.currentType)
	}
	w.setType(typesystem.Type("HashSet<"+string(elem)+">"), n)
}

func (w *walker) visitDict(n *ast.DictLiteral) {
	key := typesystem.Empty
	for _, k := range n.Keys {
		w.visitExpr(k)
		key = typesystem.Merge(key, w.currentType)
	}
	val := typesystem.Empty
	for _, v := range n.Values {
		w.visitExpr(v)
		val = typesystem.Merge(val, w.currentType)
	}
	w.setType(typesystem.Type("HashMap<"+string(key)+", "+string(val)+">"), n)
}

// visitSubscript resolves an indexing expression's element type. For a
// literal-integer index into a known tuple type we pick that exact
// component; otherwise (a variable index, or a homogeneous list/set) we
// fall back to the container's first component.
func (w *walker) visitSubscript(n *ast.Subscript) {
	w.visitExpr(n.Index)
	w.visitExpr(n.Value)
	containerType := w.currentType

	types := strings.Split(typesystem.StripContainer(containerType), ", ")
	index := 0
	if lit, ok := n.Index.(*ast.IntegerLiteral); ok {
		if v, err := strconv.Atoi(lit.Value); err == nil && v >= 0 && v < len(types) {
			index = v
		}
	}
	if index >= len(types) {
		index = 0
	}
	elem := ""
	if len(types) > 0 {
		elem = types[index]
	}
	w.setType(typesystem.Type("&"+elem), n)
}

// visitBinOp merges the operand types through the coercion table and then
// widens to container position, since any arithmetic result is a fresh
// value, not a borrow of either operand.
func (w *walker) visitBinOp(n *ast.BinOp) {
	w.visitExpr(n.Left)
	left := w.currentType
	w.visitExpr(n.Right)
	w.mergeType(left, n)
	w.setTypeContainer(n)
}

// visitUnaryOp: `not` always produces bool; every other unary op passes its
// operand's type through unchanged.
func (w *walker) visitUnaryOp(n *ast.UnaryOp) {
	w.visitExpr(n.Operand)
	if n.Op == "not" {
		w.setType(typesystem.Bool, n)
	} else {
		w.typeByNode[n] = w.currentType
	}
}

func (w *walker) visitBoolOp(n *ast.BoolOp) {
	for _, v := range n.Values {
		w.visitExpr(v)
	}
	w.setType(typesystem.Bool, n)
}

func (w *walker) visitCompare(n *ast.Compare) {
	w.visitExpr(n.Left)
	for _, c := range n.Comparators {
		w.visitExpr(c)
	}
	w.setType(typesystem.Bool, n)
}

func (w *walker) visitIfExp(n *ast.IfExp) {
	w.visitExpr(n.Test)
	w.typeByNode[n.Test] = typesystem.Bool
	w.visitExpr(n.Body)
	w.visitExpr(n.Orelse)
	w.typeByNode[n] = w.currentType
}

func (w *walker) visitAttribute(n *ast.Attribute) {
	w.visitExpr(n.Value)
	recv := w.currentType
	if cls, ok := w.classes[string(typesystem.Dereference(recv))]; ok {
		if t, ok := cls.InstanceAttributes[n.Attr]; ok {
			w.setType(t, n)
			return
		}
	}
	w.setType(typesystem.UnknownT, n)
}

// visitListComp/visitSetComp/visitDictComp walk the single generator
// clause (see ast.Comprehension's doc comment on the one-generator
// restriction), raising E-CMP-001 if more than one is present, then wrap
// the element type in the matching container shell.
func (w *walker) visitComprehensionGenerators(gens []ast.Comprehension, tok ast.Node) {
	if len(gens) > 1 {
		w.diags.Add(diagnostics.NewError(diagnostics.ErrCmpMultiGen, tok.GetToken(),
			"comprehensions with more than one generator clause are not supported"))
	}
	for _, g := range gens {
		w.visitExpr(g.Iter)
		typed := typesystem.StripContainer(w.currentType)
		w.handleAssignment(g.Target, typesystem.Type(typed))
		prevType := w.currentType
		for _, cond := range g.Ifs {
			w.visitExpr(cond)
		}
		w.currentType = prevType
	}
}

func (w *walker) visitListComp(n *ast.ListComp) {
	w.visitComprehensionGenerators(n.Generators, n)
	w.visitExpr(n.Elt)
	w.setType(typesystem.Type("&["+string(w.currentType)+"]"), n)
}

func (w *walker) visitSetComp(n *ast.SetComp) {
	w.visitComprehensionGenerators(n.Generators, n)
	w.visitExpr(n.Elt)
	w.setType(typesystem.Type("HashSet<"+string(w.currentType)+">"), n)
}

func (w *walker) visitDictComp(n *ast.DictComp) {
	w.visitComprehensionGenerators(n.Generators, n)
	w.visitExpr(n.Key)
	key := w.currentType
	w.visitExpr(n.Value)
	val := w.currentType
	w.setType(typesystem.Type("HashMap<"+string(key)+", "+string(val)+">"), n)
}

// visitCall resolves a call's return type through, in order: the builtin
// catalog, a local function header, a known-variable's method (container
// or user-defined class method), or a cross-module function (only
// resolved when a ModuleResolver is configured).
func (w *walker) visitCall(n *ast.Call) {
	prevType := w.currentType
	argTypes := make([]typesystem.Type, 0, len(n.Args))
	for _, a := range n.Args {
		w.visitExpr(a)
		argTypes = append(argTypes, w.currentType)
	}
	w.currentType = prevType

	path := funcPath(n.Func)
	if len(path) == 1 {
		if ret, ok := catalogFunctionReturn(path[0], argTypes); ok {
			w.setType(ret, n)
			return
		}
		if h, ok := w.headers[path[0]]; ok {
			w.setType(h.Returns, n)
			return
		}
		if _, ok := w.classes[path[0]]; ok {
			w.setType(typesystem.Type(path[0]), n)
			return
		}
		w.diags.Add(diagnostics.NewError(diagnostics.WarnMetUnknown, n.Token,
			"cannot find function return type for %q", path[0]))
	}

	if len(path) >= 2 {
		if info, ok := w.vars[path[0]]; ok {
			w.visitExpr(n.Func.(*ast.Attribute).Value)
			method := path[len(path)-1]
			if cls, ok := w.classes[string(typesystem.Dereference(info.Type))]; ok {
				if mh, ok := cls.Methods[method]; ok {
					w.setType(mh.Returns, n)
					info.MutableRef = true
					return
				}
			}
			if ret, ok := catalog.MethodReturnType(w.currentType)(method); ok {
				w.setType(ret, n)
				info.MutableRef = true
				return
			}
			w.diags.Add(diagnostics.NewWarning(diagnostics.WarnMetUnknown, n.Token,
				"no catalog entry for method %q on %s", method, w.currentType))
			info.MutableRef = true
			w.setType(typesystem.UnknownT, n)
			return
		}
	}

	if len(path) == 2 && w.resolver != nil {
		if ret, ok := w.resolver.ResolveReturn(path[0], path[1]); ok {
			w.setType(ret, n)
			return
		}
	}

	w.setType(typesystem.UnknownT, n)
}
