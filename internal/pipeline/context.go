// Package pipeline wires the translation stages (parse, headers, deps,
// analyze, codegen) into an ordered Processor/Pipeline, so each stage
// threads its growing state through a shared context and later stages
// can still run after an earlier one reports a non-fatal diagnostic.
package pipeline

import (
	"github.com/funvibe/pyrrust/internal/ast"
	"github.com/funvibe/pyrrust/internal/diagnostics"
	"github.com/funvibe/pyrrust/internal/headers"
)

// PipelineContext threads the growing translation state through every
// Processor. Fields are filled in progressively: AstRoot by the parse
// stage, Headers by the header-extraction stage, Output by codegen. A
// Processor that finds ctx already carrying Errors from an earlier fatal
// stage should return without doing further work.
type PipelineContext struct {
	File       string
	Source     string
	AstRoot    *ast.Program
	Headers    *headers.Index
	Output     string
	Errors     []*diagnostics.DiagnosticError
	Collector  *diagnostics.Collector
}

// NewContext starts a PipelineContext for translating one Source file.
func NewContext(file, source string) *PipelineContext {
	return &PipelineContext{
		File:      file,
		Source:    source,
		Collector: diagnostics.NewCollector(),
	}
}

// Fatal reports whether the context has accumulated a fatal diagnostic,
// meaning later stages should not run.
func (c *PipelineContext) Fatal() bool {
	return c.Collector.HasFatal()
}
