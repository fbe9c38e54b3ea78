package pipeline

// Processor is one stage of the translation pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is an ordered sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, always continuing to the next stage
// even after a non-fatal error so later stages can still contribute
// diagnostics (e.g. running the analyzer on every function even if one
// function's headers failed to resolve).
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Fatal() {
			break
		}
	}
	return ctx
}
