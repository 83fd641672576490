package index

import (
	"log"

	"github.com/funvibe/pokerscript/internal/pipeline"
)

// Processor writes each analyzed tree into Store. It runs after the
// analyzer and does nothing for a run that already failed.
type Processor struct {
	Store *Store
}

func (ip *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Err != nil || ctx.AstRoot == nil {
		return ctx
	}
	stats, err := ip.Store.Write(ctx.Ctx(), ctx.FilePath, ctx.AstRoot)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	log.Printf("indexed %s: %d entities, %d references", ctx.FilePath, stats.Entities, stats.References)
	return ctx
}
