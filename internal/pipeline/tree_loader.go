package pipeline

import (
	"fmt"
	"os"

	"github.com/funvibe/pokerscript/internal/ast"
)

// TreeLoader decodes the serialized syntax tree into AstRoot. It stands in
// for the lexer and parser stages, which live upstream of this tool.
type TreeLoader struct{}

func (tl *TreeLoader) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot != nil {
		return ctx
	}

	data := ctx.SourceCode
	if data == nil {
		if ctx.FilePath == "" {
			ctx.Err = fmt.Errorf("tree loader: no source and no file path")
			return ctx
		}
		var err error
		data, err = os.ReadFile(ctx.FilePath)
		if err != nil {
			ctx.Err = fmt.Errorf("failed to read tree file: %w", err)
			return ctx
		}
		ctx.SourceCode = data
	}

	prog, err := ast.Decode(data)
	if err != nil {
		if ctx.FilePath != "" {
			err = fmt.Errorf("%s: %w", ctx.FilePath, err)
		}
		ctx.Err = err
		return ctx
	}
	if prog.File == "" {
		prog.File = ctx.FilePath
	}
	ctx.AstRoot = prog
	return ctx
}
