// Package analyzer performs the single AST walk that both typechecks and
// annotates a function body: it assigns every expression node a Target
// type, decides which local variables must be declared `mut`, which must
// be passed as `&mut`, and which need to be pre-declared at function entry
// because Source allows a name to be written in a nested scope and read
// afterward in the enclosing one (legal Python, illegal Rust).
//
// One recursive descent carries a running `currentType`, with
// enterScope/exitScope snapshotting `vars` around every block so names
// introduced inside an if/while/for body are moved into an out-of-scope
// table rather than simply deleted.
package analyzer

import (
	"sort"

	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/catalog"
	"github.com/funvibe/pyrrust/internal/config"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// VariableInfo tracks one local variable's declared-ness across the walk.
type VariableInfo struct {
	IsArg      bool
	Mutable    bool
	MutableRef bool
	Type       typesystem.Type
}

// ModuleResolver looks up the return type of `module.function(...)` for a
// cross-module call, when config.File.CrossModuleResolution is enabled.
// The driver supplies an implementation backed by parsing the sibling
// Source file with this repository's own parser (internal/parser) and reading its
// header index, rather than importing a real module into this process.
type ModuleResolver interface {
	ResolveReturn(module, function string) (typesystem.Type, bool)
}

// PredeclaredVar is one variable that must be declared, as `mut`, at
// function entry with a default value, because it is first written inside
// a nested scope and read again outside it.
type PredeclaredVar struct {
	Name    string
	Type    typesystem.Type
	Default string
}

// Result is everything the generator needs from one function's analysis.
type Result struct {
	TypeByNode     map[ast.Node]typesystem.Type
	MutableVars    map[string]bool
	MutableRefVars map[string]bool
	Predeclared    []PredeclaredVar
}

// walker is the live state of one function's analysis pass.
type walker struct {
	headers     map[string]*headers.FunctionHeader
	classes     map[string]*headers.ClassHeader
	resolver    ModuleResolver
	diags       *diagnostics.Collector

	typeByNode    map[ast.Node]typesystem.Type
	vars          map[string]*VariableInfo
	outOfScope    map[string]*VariableInfo
	needPredeclare map[string]*VariableInfo
	currentType   typesystem.Type
}

// Analyze runs the variable analyzer over one function body and returns
// its Result. idx is the whole-module header index (for resolving local
// function and class-method return types); resolver may be nil when
// config.File.CrossModuleResolution is off. className is the owning
// class's name when fn is a method (so an unannotated `self` resolves to
// a borrowed receiver of that class rather than Unknown), or "" for a
// module-level function.
func Analyze(fn *ast.FunctionDef, idx *headers.Index, resolver ModuleResolver, diags *diagnostics.Collector, className string) *Result {
	w := &walker{
		headers:        idx.Functions,
		classes:        idx.Classes,
		resolver:       resolver,
		diags:          diags,
		typeByNode:     make(map[ast.Node]typesystem.Type),
		vars:           make(map[string]*VariableInfo),
		outOfScope:     make(map[string]*VariableInfo),
		needPredeclare: make(map[string]*VariableInfo),
	}

	for _, p := range fn.Params {
		typed := typesystem.MapAnnotation(p.Annotation, false)
		if p.Name == "self" && p.Annotation == nil && className != "" {
			typed = typesystem.Type("&" + className)
		}
		if _, exists := w.vars[p.Name]; exists {
			diags.Add(diagnostics.NewError(diagnostics.AssertInternal, fn.Token, "repeated argument: %s", p.Name))
			continue
		}
		w.vars[p.Name] = &VariableInfo{IsArg: true, Type: typed}
	}

	for _, stmt := range fn.Body {
		w.visitStmt(stmt)
	}

	return w.result()
}

func (w *walker) result() *Result {
	mutable := make(map[string]bool)
	mutableRef := make(map[string]bool)
	for name, info := range w.vars {
		if info.Mutable {
			mutable[name] = true
		}
		if info.MutableRef {
			mutableRef[name] = true
		}
	}

	var predeclared []PredeclaredVar
	for name, info := range w.needPredeclare {
		def, ok := config.DefaultValues[string(info.Type)]
		if !ok {
			def = "Default::default()"
		}
		predeclared = append(predeclared, PredeclaredVar{Name: name, Type: info.Type, Default: def})
	}
	sort.Slice(predeclared, func(i, j int) bool { return predeclared[i].Name < predeclared[j].Name })

	return &Result{
		TypeByNode:     w.typeByNode,
		MutableVars:    mutable,
		MutableRefVars: mutableRef,
		Predeclared:    predeclared,
	}
}

// readAccess notes a read of var and returns its type. A name written only
// in an already-exited nested scope is promoted to the predeclare list,
// since the variable must now be hoisted above the scope it last lived in.
func (w *walker) readAccess(name string) typesystem.Type {
	if info, ok := w.vars[name]; ok {
		return info.Type
	}
	if info, ok := w.outOfScope[name]; ok {
		w.needPredeclare[name] = info
		return info.Type
	}
	return typesystem.Empty
}

// writeAccess notes a write of var with the given (container-position)
// type. A second write to the same name marks it mutable.
func (w *walker) writeAccess(name string, typed typesystem.Type, node ast.Node) {
	if info, ok := w.vars[name]; !ok {
		if typed.IsUnknown() {
			w.diags.Add(diagnostics.NewError(diagnostics.ErrTypUnknownLeaks, node.GetToken(),
				"cannot declare variable %q of mixed/unknown type", name))
		}
		w.vars[name] = &VariableInfo{Type: typed}
	} else {
		info.Mutable = true
	}
	w.typeByNode[node] = typed
}

// enterScope snapshots the current variable table before descending into a
// nested block.
func (w *walker) enterScope() map[string]*VariableInfo {
	prev := make(map[string]*VariableInfo, len(w.vars))
	for k, v := range w.vars {
		prev[k] = v
	}
	return prev
}

// exitScope discards variables introduced since prev was captured, moving
// them into outOfScope so a later read still resolves (triggering
// pre-declaration) rather than erroring, matching Python's own scoping.
func (w *walker) exitScope(prev map[string]*VariableInfo) {
	for k, v := range w.vars {
		if _, existed := prev[k]; !existed {
			w.outOfScope[k] = v
			delete(w.vars, k)
		}
	}
}

func (w *walker) setType(typed typesystem.Type, node ast.Node) {
	w.currentType = typed
	w.typeByNode[node] = typed
}

func (w *walker) mergeType(typed typesystem.Type, node ast.Node) {
	w.setType(typesystem.Merge(w.currentType, typed), node)
}

func (w *walker) setTypeContainer(node ast.Node) {
	w.currentType = typesystem.ContainerType(w.currentType)
	w.typeByNode[node] = w.currentType
}

// funcPath flattens a (possibly attribute-chained) call target into its
// dotted name components, e.g. `self.items.get` -> ["self", "items",
// "get"].
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

// catalogFunctionReturn exposes the builtin function return-type table to
// this package without analyzer importing codegen; held in a variable so
// tests can stub it out.
var catalogFunctionReturn = catalog.FunctionReturnType
