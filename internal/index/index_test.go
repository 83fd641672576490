package index_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/pokerscript/internal/analyzer"
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/index"
	"github.com/funvibe/pokerscript/internal/pipeline"
	"github.com/funvibe/pokerscript/internal/token"
)

func at(cat token.Category, lexeme string, line, col int) *ast.Token {
	return ast.NewToken(cat, lexeme, line, col)
}

// deal builds and analyzes:
//
//	chip x: 1
//	x: x + 1
//	reveal sqrt(pi)
func deal(t *testing.T) *ast.Program {
	t.Helper()
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VariableDeclaration{
			Type:        &ast.NamedType{Name: at(token.IDENT, "chip", 1, 1)},
			Variable:    at(token.IDENT, "x", 1, 6),
			Initializer: at(token.INT, "1", 1, 9),
		},
		&ast.Assignment{
			Target: at(token.IDENT, "x", 2, 1),
			Op:     ":",
			Source: &ast.BinaryExpression{Op: "+", Left: at(token.IDENT, "x", 2, 4), Right: at(token.INT, "1", 2, 8)},
		},
		&ast.PrintStatement{Argument: &ast.Call{
			Callee: at(token.IDENT, "sqrt", 3, 8),
			Args:   []ast.Expression{at(token.IDENT, "pi", 3, 13)},
		}},
	}}
	if _, err := analyzer.Analyze(prog); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return prog
}

func openStore(t *testing.T) *index.Store {
	t.Helper()
	s, err := index.Open(context.Background(), filepath.Join(t.TempDir(), "symbols.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	prog := deal(t)

	stats, err := s.Write(ctx, "deal.ps.yaml", prog)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if diff := cmp.Diff(index.Stats{Entities: 1, References: 5}, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	defs, err := s.Definitions(ctx, "x")
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	x := prog.Statements[0].(*ast.VariableDeclaration).Variable.Entity
	want := []index.Entity{{
		ID: x.ID(), File: "deal.ps.yaml", Name: "x", Kind: "variable", Type: "chip", Line: 1, Column: 6,
	}}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Errorf("Definitions mismatch (-want +got):\n%s", diff)
	}

	refs, err := s.References(ctx, "x")
	if err != nil {
		t.Fatalf("References: %v", err)
	}
	wantRefs := []index.Reference{
		{EntityID: x.ID(), Name: "x", Kind: "variable", File: "deal.ps.yaml", Line: 2, Column: 1},
		{EntityID: x.ID(), Name: "x", Kind: "variable", File: "deal.ps.yaml", Line: 2, Column: 4},
	}
	if diff := cmp.Diff(wantRefs, refs); diff != "" {
		t.Errorf("References mismatch (-want +got):\n%s", diff)
	}
}

func TestPreludeEntities(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	if _, err := s.Write(ctx, "deal.ps.yaml", deal(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	defs, err := s.Definitions(ctx, "pi")
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	if len(defs) != 1 || defs[0].File != index.PreludeFile || !defs[0].ReadOnly || defs[0].Type != "change" {
		t.Errorf("pi = %+v", defs)
	}

	refs, err := s.References(ctx, "sqrt")
	if err != nil {
		t.Fatalf("References: %v", err)
	}
	if len(refs) != 1 || refs[0].Kind != "function" || refs[0].Line != 3 || refs[0].Column != 8 {
		t.Errorf("sqrt references = %+v", refs)
	}
}

func TestRewriteReplacesFile(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for i := 0; i < 2; i++ {
		if _, err := s.Write(ctx, "deal.ps.yaml", deal(t)); err != nil {
			t.Fatalf("Write #%d: %v", i, err)
		}
	}
	refs, err := s.References(ctx, "x")
	if err != nil {
		t.Fatalf("References: %v", err)
	}
	if len(refs) != 2 {
		t.Errorf("got %d references after rewrite, want 2", len(refs))
	}
}

func TestFilesAreKeptApart(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for _, file := range []string{"a.ps.yaml", "b.ps.yaml"} {
		if _, err := s.Write(ctx, file, deal(t)); err != nil {
			t.Fatalf("Write %s: %v", file, err)
		}
	}

	defs, err := s.Definitions(ctx, "x")
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	if len(defs) != 2 || defs[0].File != "a.ps.yaml" || defs[1].File != "b.ps.yaml" {
		t.Errorf("definitions = %+v", defs)
	}
	for _, name := range []string{"x", "pi"} {
		refs, err := s.References(ctx, name)
		if err != nil {
			t.Fatalf("References(%s): %v", name, err)
		}
		if want := map[string]int{"x": 4, "pi": 2}[name]; len(refs) != want {
			t.Errorf("References(%s) = %d rows, want %d", name, len(refs), want)
		}
	}
}

func TestSiblingDeclarationsAreBothIndexed(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	// Built without positions, as a tree decoded without them would be.
	branch := func() ast.Statement {
		return &ast.IfStatement{
			Test: ast.NewToken(token.BOOL, "hit", 0, 0),
			Consequent: &ast.Block{Statements: []ast.Statement{&ast.VariableDeclaration{
				Type:        ast.Named("chip"),
				Variable:    ast.NewToken(token.IDENT, "t", 0, 0),
				Initializer: ast.NewToken(token.INT, "1", 0, 0),
			}}},
		}
	}
	prog := &ast.Program{Statements: []ast.Statement{branch(), branch()}}
	if _, err := analyzer.Analyze(prog); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	stats, err := s.Write(ctx, "branches.ps.yaml", prog)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if stats.Entities != 2 {
		t.Errorf("Entities = %d, want 2", stats.Entities)
	}
	defs, err := s.Definitions(ctx, "t")
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	if len(defs) != 2 || defs[0].ID == defs[1].ID {
		t.Errorf("definitions = %+v", defs)
	}
}

func TestProcessor(t *testing.T) {
	s := openStore(t)
	p := &index.Processor{Store: s}

	ctx := p.Process(&pipeline.PipelineContext{FilePath: "deal.ps.yaml", AstRoot: deal(t)})
	if ctx.Err != nil {
		t.Fatalf("Process: %v", ctx.Err)
	}
	refs, err := s.References(context.Background(), "x")
	if err != nil || len(refs) != 2 {
		t.Errorf("References = %v, %v", refs, err)
	}

	failed := errors.New("analysis failed")
	ctx = p.Process(&pipeline.PipelineContext{FilePath: "skip.ps.yaml", AstRoot: deal(t), Err: failed})
	if ctx.Err != failed {
		t.Errorf("Err = %v", ctx.Err)
	}
	if defs, _ := s.Definitions(context.Background(), "x"); len(defs) != 1 {
		t.Errorf("failed run was indexed: %+v", defs)
	}
}

func TestOpenInMemory(t *testing.T) {
	s, err := index.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, err := s.Write(context.Background(), "m.ps.yaml", deal(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
}
