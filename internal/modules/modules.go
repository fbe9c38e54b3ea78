// Package modules resolves the return types of `module.function(...)` calls
// against sibling Source files, when a project's .pyrrust.yaml config turns
// cross-module resolution on. Since this translator never imports the
// referenced file as a live module, Loader instead re-parses it with this
// repo's own lexer/parser/headers pass and reads the resulting header
// index for the signatures it needs.
package modules

import (
	"os"
	"path/filepath"

	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/parser"
	"github.com/funvibe/pyrrust/internal/typesystem"
)

// Loader resolves cross-module calls by parsing and header-indexing each
// referenced sibling file once, caching the result by module name.
// Satisfies analyzer.ModuleResolver.
type Loader struct {
	baseDir string
	cache   map[string]*headers.Index
}

// NewLoader builds a Loader that resolves module names relative to
// baseDir (the directory containing the file currently being translated).
func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir, cache: make(map[string]*headers.Index)}
}

// ResolveReturn implements analyzer.ModuleResolver: it loads (or reuses a
// cached) header index for module and looks up function's return type.
func (l *Loader) ResolveReturn(module, function string) (typesystem.Type, bool) {
	idx, ok := l.load(module)
	if !ok {
		return typesystem.UnknownT, false
	}
	if h, ok := idx.Functions[function]; ok {
		return h.Returns, true
	}
	return typesystem.UnknownT, false
}

// load reads, parses, and header-indexes module + ".py" under baseDir,
// caching the result so a module imported from several call sites in the
// same translation run is only read once.
func (l *Loader) load(module string) (*headers.Index, bool) {
	if idx, ok := l.cache[module]; ok {
		return idx, idx != nil
	}
	path := filepath.Join(l.baseDir, module+".py")
	source, err := os.ReadFile(path)
	if err != nil {
		l.cache[module] = nil
		return nil, false
	}
	diags := diagnostics.NewCollector()
	prog := parser.ParseProgram(string(source), path, diags)
	idx := headers.Find(prog)
	l.cache[module] = idx
	return idx, true
}
