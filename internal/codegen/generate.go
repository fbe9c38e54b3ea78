package codegen

import (
	"strings"

	"github.com/funvibe/pyrrust/internal/analyzer"
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/deps"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
)

// Generate renders an entire parsed Program as a Target source file: the
// dependency-driven `use` preamble, then one `pub fn`/`struct`+`impl` block
// per top-level statement, in source order. resolver may be nil when
// config.File.CrossModuleResolution is disabled.
func Generate(prog *ast.Program, idx *headers.Index, resolver analyzer.ModuleResolver, diags *diagnostics.Collector) string {
	var b strings.Builder

	depsResult := deps.Analyze(prog, idx)
	b.WriteString(depsResult.Preamble())

	for i, stmt := range prog.Statements {
		if i > 0 {
			b.WriteString("\n")
		}
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			b.WriteString(EmitFunction(s, idx, resolver, diags))
		case *ast.ClassDef:
			b.WriteString(EmitClass(s, idx, resolver, diags))
		case *ast.ImportStatement:
			// Source imports carry no Target equivalent on their own; any
			// container they bring in (HashMap, HashSet) is already covered
			// by the dependency-driven preamble above.
		default:
			// Import statements and other module-level declarations the
			// restricted Source subset doesn't model are silently skipped;
			// anything reaching here was already flagged by the parser or
			// headers pass.
		}
	}

	return b.String()
}
