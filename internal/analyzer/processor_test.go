package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/pipeline"
)

func runFixture(t *testing.T, name string) *pipeline.PipelineContext {
	t.Helper()
	path := filepath.Join("testdata", name)
	ctx := pipeline.NewPipelineContext(context.Background(), path)
	return pipeline.New(&pipeline.TreeLoader{}, &SemanticAnalyzerProcessor{}).Run(ctx)
}

func TestProcessorValidFixture(t *testing.T) {
	ctx := runFixture(t, "sum.ps.yaml")
	if ctx.Err != nil {
		t.Fatalf("unexpected error: %v", ctx.Err)
	}
	checkDecorated(t, ctx.AstRoot)

	fn := ctx.AstRoot.Statements[0].(*ast.FunctionDeclaration)
	if got := fn.Name.ResolvedType().String(); got != "([chip])->chip" {
		t.Errorf("sum type = %s", got)
	}
	stmt := ctx.AstRoot.Statements[1].(*ast.PrintStatement)
	if got := stmt.Argument.ResolvedType().String(); got != "chip" {
		t.Errorf("call type = %s", got)
	}
}

func TestProcessorReportsPosition(t *testing.T) {
	tests := []struct {
		fixture string
		code    diagnostics.ErrorCode
		want    string
	}{
		{"redeclared.ps.yaml", diagnostics.ErrA002, "Line 2, col 6: Identifier x already declared"},
		{"constant.ps.json", diagnostics.ErrA006, "Line 2, col 1: Cannot assign to constant dozen"},
	}
	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			ctx := runFixture(t, tt.fixture)
			var de *diagnostics.DiagnosticError
			if !errors.As(ctx.Err, &de) {
				t.Fatalf("expected a diagnostic, got %v", ctx.Err)
			}
			if de.Code != tt.code {
				t.Errorf("code = %s, want %s", de.Code, tt.code)
			}
			want := filepath.Join("testdata", tt.fixture) + ":" + tt.want
			if de.Error() != want {
				t.Errorf("Error() = %q, want %q", de.Error(), want)
			}
		})
	}
}

func TestProcessorSkipsAfterEarlierError(t *testing.T) {
	earlier := errors.New("load failed")
	ctx := &pipeline.PipelineContext{Err: earlier}
	ctx = (&SemanticAnalyzerProcessor{}).Process(ctx)
	if ctx.Err != earlier {
		t.Errorf("Err = %v, want the earlier error", ctx.Err)
	}
}

func TestProcessorWithoutTree(t *testing.T) {
	ctx := (&SemanticAnalyzerProcessor{}).Process(&pipeline.PipelineContext{FilePath: "x.ps.yaml"})
	code, ok := diagnostics.CodeOf(ctx.Err)
	if !ok || code != diagnostics.MalformedTree {
		t.Errorf("Err = %v, want a malformed-tree diagnostic", ctx.Err)
	}
}

func TestProcessorMissingFile(t *testing.T) {
	ctx := runFixture(t, "does-not-exist.ps.yaml")
	if ctx.Err == nil {
		t.Fatal("expected a load error")
	}
	if _, ok := diagnostics.CodeOf(ctx.Err); ok {
		t.Errorf("load error reported as a diagnostic: %v", ctx.Err)
	}
	if ctx.AstRoot != nil {
		t.Errorf("AstRoot set despite load failure")
	}
}
