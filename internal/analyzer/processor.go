package analyzer

import (
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/pipeline"
	"github.com/funvibe/pokerscript/internal/token"
)

// SemanticAnalyzerProcessor decorates ctx.AstRoot in place.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Err != nil {
		return ctx
	}
	if ctx.AstRoot == nil {
		err := diagnostics.NewError(diagnostics.MalformedTree, token.Token{}, "analyzer: syntax tree is nil")
		err.File = ctx.FilePath
		ctx.Err = err
		return ctx
	}

	opts := []Option{WithFile(ctx.FilePath)}
	if ctx.Prelude != nil {
		opts = append(opts, WithPrelude(ctx.Prelude))
	}
	if _, err := New(opts...).Analyze(ctx.AstRoot); err != nil {
		ctx.Err = err
	}
	return ctx
}
