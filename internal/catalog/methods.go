package catalog

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

func init() {
	methods[MethodKey{"HashMap<_>", "get"}] = emitGetOrDefault("get", true)
	methods[MethodKey{"HashMap<_>", "items"}] = emitItems
	methods[MethodKey{"HashMap<_>", "pop"}] = emitGetOrDefault("remove", false)
	methods[MethodKey{"HashMap<_>", "popitem"}] = emitPopitem
	methods[MethodKey{"HashMap<_>", "setdefault"}] = emitSetDefault
	methods[MethodKey{"HashMap<_>", "update"}] = emitUpdate

	methods[MethodKey{"HashSet<_>", "add"}] = emitArgsMethod("insert")
	methods[MethodKey{"HashSet<_>", "clear"}] = emitArgsMethod("clear")
	methods[MethodKey{"HashSet<_>", "copy"}] = emitArgsMethod("clone")
	methods[MethodKey{"HashSet<_>", "difference"}] = emitCollect("difference")
	methods[MethodKey{"HashSet<_>", "difference_update"}] = emitTodo("difference_update")
	methods[MethodKey{"HashSet<_>", "discard"}] = emitRefArgs("remove")
	methods[MethodKey{"HashSet<_>", "intersection"}] = emitCollect("intersection")
	methods[MethodKey{"HashSet<_>", "intersection_update"}] = emitTodo("intersection_update")
	methods[MethodKey{"HashSet<_>", "isdisjoint"}] = emitRefArgs("is_disjoint")
	methods[MethodKey{"HashSet<_>", "issubset"}] = emitRefArgs("is_subset")
	methods[MethodKey{"HashSet<_>", "issuperset"}] = emitRefArgs("is_superset")
	methods[MethodKey{"HashSet<_>", "remove"}] = emitRefArgs("remove")
	methods[MethodKey{"HashSet<_>", "symmetric_difference"}] = emitCollect("symmetric_difference")
	methods[MethodKey{"HashSet<_>", "symmetric_difference_update"}] = emitTodo("symmetric_difference_update")
	methods[MethodKey{"HashSet<_>", "union"}] = emitCollect("union")
	methods[MethodKey{"HashSet<_>", "union_update"}] = emitArgsMethod("union_update")

	methods[MethodKey{"Vec<_>", "append"}] = emitArgsMethod("push")
	methods[MethodKey{"Vec<_>", "insert"}] = emitArgsMethod("insert")
	methods[MethodKey{"Vec<_>", "extend"}] = emitArgsMethod("extend")
	methods[MethodKey{"Vec<_>", "index"}] = emitIndex
	methods[MethodKey{"Vec<_>", "sum"}] = emitSum
	methods[MethodKey{"Vec<_>", "count"}] = emitCount
	methods[MethodKey{"Vec<_>", "min"}] = emitIterUnwrapped("min")
	methods[MethodKey{"Vec<_>", "max"}] = emitIterUnwrapped("max")
	methods[MethodKey{"Vec<_>", "reverse"}] = emitArgsMethod("reverse")
	methods[MethodKey{"Vec<_>", "sort"}] = emitArgsMethod("sort")
	methods[MethodKey{"Vec<_>", "pop"}] = emitUnwrapped("pop")
}

// addReferenceIfNeeded writes "&" unless typ is already a reference.
func addReferenceIfNeeded(w Emitter, typ typesystem.Type) {
	if !typesystem.IsReference(typ) {
		w.Emit("&")
	}
}

// printIterIfNeeded writes ".iter()" unless typ is already an iterator.
func printIterIfNeeded(w Emitter, typ typesystem.Type) {
	if !typesystem.IsIterator(typ) {
		w.Emit(".iter()")
	}
}

// emitArgsMethod handles a method whose args may each need a
// to_string/numeric conversion, e.g. Vec::push.
func emitArgsMethod(name string) EmitFn {
	return func(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
		w.Emitf(".%s(", name)
		for i, arg := range call.Args {
			if i > 0 {
				w.Emit(", ")
			}
			v.VisitConverted(arg)
		}
		w.Emit(")")
	}
}

// emitUnwrapped wraps emitArgsMethod with a trailing .unwrap(), for methods
// that return an Option in Rust but a bare value in the Source semantics
// (e.g. list.pop()).
func emitUnwrapped(name string) EmitFn {
	inner := emitArgsMethod(name)
	return func(v ExprVisitor, w Emitter, r typesystem.Type, call *ast.Call) {
		inner(v, w, r, call)
		w.Emit(".unwrap()")
	}
}

// emitIterUnwrapped prefixes with .iter() if needed, then the method, then
// .unwrap().
func emitIterUnwrapped(name string) EmitFn {
	return func(v ExprVisitor, w Emitter, r typesystem.Type, call *ast.Call) {
		printIterIfNeeded(w, v.TypeOf(call.Func))
		emitArgsMethod(name)(v, w, r, call)
		w.Emit(".unwrap()")
	}
}

// emitRefArgs handles a method whose args are always passed by reference,
// e.g. HashSet::remove/is_subset.
func emitRefArgs(name string) EmitFn {
	return func(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
		w.Emitf(".%s(", name)
		for i, arg := range call.Args {
			if i > 0 {
				w.Emit(", ")
			}
			addReferenceIfNeeded(w, v.TypeOf(arg))
			v.VisitPlain(arg)
		}
		w.Emit(")")
	}
}

// emitCollect handles a set-algebra method returning an iterator that must
// be collected back into an owned set, e.g. HashSet::intersection.
func emitCollect(name string) EmitFn {
	return func(v ExprVisitor, w Emitter, receiverType typesystem.Type, call *ast.Call) {
		w.Emitf(".%s(", name)
		for i, arg := range call.Args {
			if i > 0 {
				w.Emit(", ")
			}
			addReferenceIfNeeded(w, v.TypeOf(arg))
			v.VisitConverted(arg)
		}
		w.Emitf(").cloned().collect::<%s>()", receiverType)
	}
}

// emitGetOrDefault handles HashMap::get/pop, both of which return an
// Option that must be collapsed with unwrap_or against the call's second
// (default) argument.
func emitGetOrDefault(name string, returnsRef bool) EmitFn {
	return func(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
		w.Emitf(".%s(", name)
		addReferenceIfNeeded(w, v.TypeOf(call.Args[0]))
		v.VisitPlain(call.Args[0])
		w.Emit(").unwrap_or(")
		if returnsRef {
			w.Emit("&")
		}
		v.VisitConverted(call.Args[1])
		w.Emit(")")
	}
}

// emitSetDefault renders HashMap::setdefault via Rust's entry API.
func emitSetDefault(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	w.Emit(".entry(")
	addReferenceIfNeeded(w, v.TypeOf(call.Args[0]))
	v.VisitConverted(call.Args[0])
	w.Emit(").or_insert(")
	v.VisitConverted(call.Args[1])
	w.Emit(")")
}

// emitItems renders dict.items() as an iterator over cloned (key, value)
// pairs, since Rust's own iter() yields (&K, &V).
func emitItems(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	w.Emit(".iter().map(|(ref k, ref v)| ((*k).clone(), (*v).clone()))")
}

// emitPopitem renders dict.popitem() via drain().next().unwrap(), since
// Rust's HashMap has no arbitrary-entry-removal method with that name.
func emitPopitem(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	w.Emit(".drain().next().unwrap()")
}

// emitUpdate renders dict.update(other) as HashMap::extend.
func emitUpdate(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	w.Emit(".extend(")
	v.VisitPlain(call.Args[0])
	printIterIfNeeded(w, v.TypeOf(call.Args[0]))
	w.Emit(")")
}

// emitCount renders list.count(x) by filtering then counting, since Rust's
// Iterator::count takes no predicate.
func emitCount(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	printIterIfNeeded(w, v.TypeOf(call.Func))
	w.Emit(".filter(|&x| x == ")
	v.VisitPlain(call.Args[0])
	w.Emit(").count()")
}

// emitSum renders list.sum() with the explicit turbofish Rust requires.
func emitSum(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	printIterIfNeeded(w, v.TypeOf(call.Func))
	w.Emitf(".sum::<%s>()", v.TypeOf(call))
}

// emitIndex renders list.index(x) via position(), panicking like Python's
// own ValueError does when the element is absent.
func emitIndex(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
	printIterIfNeeded(w, v.TypeOf(call.Func))
	if typesystem.IsReference(v.TypeOf(call.Args[0])) {
		w.Emit(".position(|ref x| *x == ")
	} else {
		w.Emit(".position(|&x| x == ")
	}
	v.VisitPlain(call.Args[0])
	w.Emit(").unwrap()")
}

// emitTodo handles a Source method with no direct Rust equivalent: it
// clears the container so the generated code still compiles, then leaves a
// TODO marker for the rest of the call.
func emitTodo(name string) EmitFn {
	return func(v ExprVisitor, w Emitter, _ typesystem.Type, call *ast.Call) {
		w.Emit(".clear();\n")
		w.Emitf("// TODO %s(", name)
		for i, arg := range call.Args {
			if i > 0 {
				w.Emit(", ")
			}
			v.VisitConverted(arg)
		}
		w.Emit(")")
	}
}
