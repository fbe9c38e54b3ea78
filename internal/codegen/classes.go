package codegen

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/funvibe/pyrrust/internal/analyzer"
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// EmitClass renders a class as a `struct` plus its inherent `impl` block:
// fields come from the instance attributes the header pass found in
// `__init__`, the constructor becomes `fn new(...) -> Self`, and every
// other method is emitted through EmitMethod. A base-class list is
// recorded only as a doc comment, since multiple inheritance and method
// resolution order have no clean single-struct Rust encoding; inheritance
// is tracked but not emitted.
func EmitClass(cls *ast.ClassDef, idx *headers.Index, resolver analyzer.ModuleResolver, diags *diagnostics.Collector) string {
	var buf strings.Builder
	header := idx.Classes[cls.Name]

	if len(header.Bases) > 0 {
		buf.WriteString("/// Inherits from: " + strings.Join(header.Bases, ", ") + "\n")
	}

	buf.WriteString("pub struct " + cls.Name + " {\n")
	for _, name := range sortedAttrNames(header.InstanceAttributes) {
		buf.WriteString("    pub " + name + ": " + string(header.InstanceAttributes[name]) + ",\n")
	}
	buf.WriteString("}\n\n")

	buf.WriteString("impl " + cls.Name + " {\n")
	for i, m := range cls.Body {
		if i > 0 {
			buf.WriteString("\n")
		}
		body := EmitMethod(m, cls.Name, idx, resolver, diags)
		buf.WriteString(indentBlock(body, "    "))
	}
	buf.WriteString("}\n")

	return buf.String()
}

// sortedAttrNames gives instance attributes a stable emission order,
// independent of Go's randomized map iteration, so two runs over identical
// input produce byte-identical output.
func sortedAttrNames(attrs map[string]typesystem.Type) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// indentBlock prefixes every non-empty line of body with prefix.
func indentBlock(body, prefix string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
