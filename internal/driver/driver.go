// Package driver wires the pipeline.Processor stages — parse, header
// extraction, and code generation — into a fixed order: parse, then
// header-finder, then the generator (which runs the dependency analyzer
// for the preamble and the variable analyzer per function internally).
package driver

import (
	"path/filepath"

	"github.com/funvibe/pyrrust/internal/analyzer"
	"github.com/funvibe/pyrrust/internal/codegen"
	"github.com/funvibe/pyrrust/internal/config"
	"github.com/funvibe/pyrrust/internal/headers"
	"github.com/funvibe/pyrrust/internal/modules"
	"github.com/funvibe/pyrrust/internal/parser"
	"github.com/funvibe/pyrrust/internal/pipeline"
)

// ParseStage parses ctx.Source into ctx.AstRoot.
type ParseStage struct{}

func (ParseStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.AstRoot = parser.ParseProgram(ctx.Source, ctx.File, ctx.Collector)
	return ctx
}

// HeaderStage harvests every function and class signature from ctx.AstRoot.
type HeaderStage struct{}

func (HeaderStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Headers = headers.Find(ctx.AstRoot)
	return ctx
}

// GenerateStage runs the dependency analyzer and code generator, writing
// ctx.Output. Resolver may be nil when cross-module resolution is disabled.
type GenerateStage struct {
	Resolver analyzer.ModuleResolver
}

func (s GenerateStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Output = codegen.Generate(ctx.AstRoot, ctx.Headers, s.Resolver, ctx.Collector)
	return ctx
}

// Translate runs the full parse -> headers -> generate pipeline over one
// Source file, honoring cfg's cross-module-resolution setting by resolving
// sibling modules relative to file's own directory.
func Translate(file, source string, cfg *config.File) *pipeline.PipelineContext {
	var resolver analyzer.ModuleResolver
	if cfg != nil && cfg.CrossModuleResolution {
		resolver = modules.NewLoader(filepath.Dir(file))
	}

	p := pipeline.New(
		ParseStage{},
		HeaderStage{},
		GenerateStage{Resolver: resolver},
	)
	return p.Run(pipeline.NewContext(file, source))
}
