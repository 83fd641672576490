package pipeline

import (
	"context"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/prelude"
)

// Processor is one stage of a Pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries one file through the stages.
type PipelineContext struct {
	// Context bounds blocking stages such as the index writer.
	Context context.Context

	FilePath   string
	SourceCode []byte // Serialized tree; read from FilePath when empty
	AstRoot    *ast.Program
	Prelude    *prelude.Prelude

	// Err is the first error any stage reported.
	Err error
}

// NewPipelineContext prepares a context for the tree file at path.
func NewPipelineContext(ctx context.Context, path string) *PipelineContext {
	return &PipelineContext{Context: ctx, FilePath: path}
}

// Ctx returns the context, defaulting to context.Background.
func (pc *PipelineContext) Ctx() context.Context {
	if pc.Context == nil {
		return context.Background()
	}
	return pc.Context
}
