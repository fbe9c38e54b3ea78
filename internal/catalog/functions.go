package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// FunctionReturnFn computes a builtin function call's result type from its
// already-resolved argument types.
type FunctionReturnFn func(argTypes []typesystem.Type) typesystem.Type

// FunctionEmitFn renders a builtin call's Target code.
type FunctionEmitFn func(v ExprVisitor, w Emitter, call *ast.Call)

// functionReturns gives each builtin function's return-type rule.
var functionReturns = map[string]FunctionReturnFn{
	"dict": func(a []typesystem.Type) typesystem.Type {
		if len(a) == 0 {
			return typesystem.Type("HashMap<Unknown, Unknown>")
		}
		elem := typesystem.ElementType(a[0])
		comps := typesystem.ComponentTypes(elem)
		if len(comps) == 2 {
			return typesystem.Type(fmt.Sprintf("HashMap<%s, %s>", comps[0], comps[1]))
		}
		return typesystem.Type("HashMap<Unknown, Unknown>")
	},
	"print": func(a []typesystem.Type) typesystem.Type { return typesystem.Empty },
	"range": func(a []typesystem.Type) typesystem.Type { return typesystem.Type(fmt.Sprintf("[%s]", typesystem.I64)) },
	"zip": func(a []typesystem.Type) typesystem.Type {
		parts := make([]string, len(a))
		for i, t := range a {
			parts[i] = typesystem.StripContainer(t)
		}
		return typesystem.Type("[(" + strings.Join(parts, ", ") + ")]")
	},
	"len": func(a []typesystem.Type) typesystem.Type { return typesystem.I64 },
}

// FunctionReturnType looks up and applies a builtin function's return-type
// rule.
func FunctionReturnType(name string, argTypes []typesystem.Type) (typesystem.Type, bool) {
	fn, ok := functionReturns[name]
	if !ok {
		return typesystem.UnknownT, false
	}
	return fn(argTypes), true
}

var functions = map[string]FunctionEmitFn{
	"dict":  emitDict,
	"len":   emitLen,
	"print": emitPrint,
	"range": emitRange,
	"zip":   emitZip,
}

// LookupFunction returns the emission closure for a builtin function name.
func LookupFunction(name string) (FunctionEmitFn, bool) {
	fn, ok := functions[name]
	return fn, ok
}

// emitLen renders len(x) as x.len().
func emitLen(v ExprVisitor, w Emitter, call *ast.Call) {
	v.VisitPlain(call.Args[0])
	w.Emit(".len()")
}

// emitDict renders dict(pairs) by collecting an iterator of (k, v) pairs
// into a HashMap.
func emitDict(v ExprVisitor, w Emitter, call *ast.Call) {
	v.SetPrecedence(MaxPrecedence * 2)
	v.VisitPlain(call.Args[0])
	printIterIfNeeded(w, v.TypeOf(call.Args[0]))
	w.Emit(".collect::<HashMap<_, _>>()")
}

// emitRange renders range(...) using Rust's native a..b syntax.
func emitRange(v ExprVisitor, w Emitter, call *ast.Call) {
	switch len(call.Args) {
	case 1:
		w.Emit("0..")
		v.VisitPlain(call.Args[0])
	case 2:
		v.VisitPlain(call.Args[0])
		w.Emit("..")
		v.VisitPlain(call.Args[1])
	case 3:
		w.Emit("(")
		v.VisitPlain(call.Args[0])
		w.Emit("..")
		v.VisitPlain(call.Args[1])
		w.Emit(").step_by(")
		v.VisitPlain(call.Args[2])
		w.Emit(")")
	}
}

// emitZip renders the two-iterable form of zip() as a .iter().cloned().zip
// chain; Rust has no variadic zip, so any other number of iterables is
// reported by the caller as E-ZIP-001 before this is reached.
func emitZip(v ExprVisitor, w Emitter, call *ast.Call) {
	v.SetPrecedence(MaxPrecedence * 2)
	v.VisitPlain(call.Args[0])
	w.Emit(".iter().cloned().zip(")
	v.VisitPlain(call.Args[1])
	w.Emit(".iter().cloned())")
}

// emitPrint renders print(...) as println!/print! with a generated format
// string, honoring `sep=` and `end=` keyword overrides evaluated from
// literal constants.
func emitPrint(v ExprVisitor, w Emitter, call *ast.Call) {
	endline := "\n"
	hasEnd := false
	sep := " "
	for _, kw := range call.Keywords {
		switch kw.Name {
		case "end":
			if s, ok := stringLiteralValue(kw.Value); ok {
				endline = s
				hasEnd = true
			}
		case "sep":
			if s, ok := stringLiteralValue(kw.Value); ok {
				sep = s
			}
		}
	}

	var suffix string
	if !hasEnd || endline == "\n" {
		w.Emit("println!(")
		suffix = ""
	} else {
		w.Emit("print!(")
		suffix = endline
	}

	n := len(call.Args)
	if n <= 1 && suffix == "" {
		if n == 1 {
			v.VisitPlain(call.Args[0])
		}
	} else {
		var fmtStr strings.Builder
		for i := 0; i < n; i++ {
			if i > 0 {
				fmtStr.WriteString(sep)
			}
			fmtStr.WriteString("{}")
		}
		fmtStr.WriteString(suffix)
		w.Emitf("%s", strconv.Quote(fmtStr.String()))
		for _, arg := range call.Args {
			w.Emit(", ")
			v.VisitPlain(arg)
		}
	}
	w.Emit(")")
}

func stringLiteralValue(e ast.Expression) (string, bool) {
	if s, ok := e.(*ast.StringLiteral); ok {
		return s.Value, true
	}
	return "", false
}
