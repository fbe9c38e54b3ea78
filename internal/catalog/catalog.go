// Package catalog is the standard-library lookup table the generator
// consults for every builtin function call (print, len, range, zip, dict)
// and every container method call (list/set/map methods with no direct
// Target operator). Each recognized call gets one entry in the matching
// table here, split in two (a return-type closure and an emission
// closure) so the analyzer can ask "what type does this call produce"
// before the generator asks "how do I emit it".
package catalog

import (
	"fmt"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// Emitter is the minimal output sink an emission closure writes to. The
// generator's Writer satisfies this without catalog needing to import
// codegen.
type Emitter interface {
	Emit(s string)
	Emitf(format string, args ...interface{})
}

// ExprVisitor lets an emission closure recurse back into the generator to
// render an argument expression, without catalog importing codegen.
// VisitPlain renders an expression as-is; VisitConverted additionally
// inserts a `.to_string()`/numeric cast where the surrounding context
// needs one.
type ExprVisitor interface {
	VisitPlain(e ast.Expression)
	VisitConverted(e ast.Expression)
	TypeOf(e ast.Expression) typesystem.Type
	SetPrecedence(p int)
}

// MaxPrecedence is one above any real operator precedence; assigning it to
// a visitor forces parentheses around whatever it wraps.
const MaxPrecedence = 13

// MethodKey indexes the per-container-shape method tables.
type MethodKey struct {
	Container string // e.g. "HashMap<_>", "Vec<_>", "HashSet<_>"
	Method    string
}

// ReturnFn computes a call's result type from its receiver's component
// types (HashMap<K, V> -> [K, V], Vec<T> -> [T]).
type ReturnFn func(componentTypes []string) typesystem.Type

// EmitFn renders a method call's Target code, given the resolved receiver
// type, the call's AST node, and a visitor back into the generator.
type EmitFn func(v ExprVisitor, w Emitter, receiverType typesystem.Type, call *ast.Call)

// methodReturns gives each catalog method's return-type rule, keyed by the
// receiver's detemplatized container shape.
var methodReturns = map[MethodKey]ReturnFn{
	{"HashMap<_>", "keys"}:    func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("[%s]", t[0])) },
	{"HashMap<_>", "values"}:  func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("[%s]", t[1])) },
	{"HashMap<_>", "items"}:   func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("[(%s, %s)]", t[0], t[1])) },
	{"HashMap<_>", "get"}:     func(t []string) typesystem.Type { return typesystem.Type("&" + t[1]) },
	{"HashMap<_>", "clear"}:   func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashMap<_>", "update"}:  func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashMap<_>", "pop"}:     func(t []string) typesystem.Type { return typesystem.Type(t[1]) },
	{"HashMap<_>", "popitem"}: func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("(%s, %s)", t[0], t[1])) },
	{"HashMap<_>", "setdefault"}: func(t []string) typesystem.Type { return typesystem.Type("&" + t[1]) },

	{"HashSet<_>", "add"}:      func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "clear"}:    func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "copy"}:     func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("HashSet<%s>", t[0])) },
	{"HashSet<_>", "difference"}: func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("HashSet<%s>", t[0])) },
	{"HashSet<_>", "difference_update"}: func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "discard"}:  func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "intersection"}: func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("HashSet<%s>", t[0])) },
	{"HashSet<_>", "intersection_update"}: func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "isdisjoint"}: func(t []string) typesystem.Type { return typesystem.Bool },
	{"HashSet<_>", "issubset"}:   func(t []string) typesystem.Type { return typesystem.Bool },
	{"HashSet<_>", "issuperset"}: func(t []string) typesystem.Type { return typesystem.Bool },
	{"HashSet<_>", "remove"}:     func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "symmetric_difference"}: func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("HashSet<%s>", t[0])) },
	{"HashSet<_>", "symmetric_difference_update"}: func(t []string) typesystem.Type { return typesystem.Empty },
	{"HashSet<_>", "union"}:        func(t []string) typesystem.Type { return typesystem.Type(fmt.Sprintf("HashSet<%s>", t[0])) },
	{"HashSet<_>", "union_update"}: func(t []string) typesystem.Type { return typesystem.Empty },

	{"Vec<_>", "append"}:  func(t []string) typesystem.Type { return typesystem.Empty },
	{"Vec<_>", "insert"}:  func(t []string) typesystem.Type { return typesystem.Empty },
	{"Vec<_>", "extend"}:  func(t []string) typesystem.Type { return typesystem.Empty },
	{"Vec<_>", "index"}:   func(t []string) typesystem.Type { return typesystem.I64 },
	{"Vec<_>", "sum"}:     func(t []string) typesystem.Type { return typesystem.Type(t[0]) },
	{"Vec<_>", "count"}:   func(t []string) typesystem.Type { return typesystem.I64 },
	{"Vec<_>", "min"}:     func(t []string) typesystem.Type { return typesystem.Type(t[0]) },
	{"Vec<_>", "max"}:     func(t []string) typesystem.Type { return typesystem.Type(t[0]) },
	{"Vec<_>", "reverse"}: func(t []string) typesystem.Type { return typesystem.Empty },
	{"Vec<_>", "sort"}:    func(t []string) typesystem.Type { return typesystem.Empty },
	{"Vec<_>", "pop"}:     func(t []string) typesystem.Type { return typesystem.Type(t[0]) },
}

// MethodReturnType looks up the return type of a container method call,
// keyed by the receiver's detemplatized container shape.
func MethodReturnType(receiverType typesystem.Type) func(method string) (typesystem.Type, bool) {
	key := typesystem.Detemplatize(receiverType)
	comps := typesystem.ComponentTypes(receiverType)
	return func(method string) (typesystem.Type, bool) {
		fn, ok := methodReturns[MethodKey{key, method}]
		if !ok {
			return typesystem.UnknownT, false
		}
		return fn(comps), true
	}
}

// methods is the emission side of the method catalog. Populated in
// methods.go to keep this file to the table declarations and lookup
// helpers.
var methods = map[MethodKey]EmitFn{}

// LookupMethod returns the emission closure for (detemplatized receiver
// type, method name), or nil if no catalog entry exists - the generator
// then falls back to a direct Target method call with the same name.
func LookupMethod(receiverType typesystem.Type, method string) (EmitFn, bool) {
	fn, ok := methods[MethodKey{typesystem.Detemplatize(receiverType), method}]
	return fn, ok
}
