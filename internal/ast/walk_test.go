package ast

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(node Node) []string {
	var out []string
	Inspect(node, func(n Node) bool {
		out = append(out, fmt.Sprintf("%T", n))
		return true
	})
	return out
}

func TestInspectOrder(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&VariableDeclaration{
			Type:        Named("chip"),
			Variable:    Ident("x"),
			Initializer: &BinaryExpression{Op: "+", Left: Ident("a"), Right: Ident("b")},
		},
		&WhileStatement{Test: Ident("go"), Body: &Block{Statements: []Statement{&BreakStatement{}}}},
	}}

	want := []string{
		"*ast.Program",
		"*ast.VariableDeclaration",
		"*ast.NamedType", "*ast.Token",
		"*ast.Token",
		"*ast.BinaryExpression", "*ast.Token", "*ast.Token",
		"*ast.WhileStatement", "*ast.Token", "*ast.Block", "*ast.BreakStatement",
	}
	if diff := cmp.Diff(want, kinds(prog)); diff != "" {
		t.Errorf("Inspect order mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectSkipsAbsentChildren(t *testing.T) {
	fn := &FunctionDeclaration{
		Name: Ident("f"),
		Body: &Block{Statements: []Statement{&ReturnStatement{}}},
	}
	want := []string{"*ast.FunctionDeclaration", "*ast.Token", "*ast.Block", "*ast.ReturnStatement"}
	if diff := cmp.Diff(want, kinds(fn)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectPrune(t *testing.T) {
	call := &Call{Callee: Ident("f"), Args: []Expression{&ArrayExpression{Elements: []Expression{Ident("a")}}}}
	var seen int
	Inspect(call, func(n Node) bool {
		seen++
		_, isArray := n.(*ArrayExpression)
		return !isArray
	})
	if seen != 3 {
		t.Errorf("visited %d nodes, want 3", seen)
	}
}

func TestIsNil(t *testing.T) {
	var tok *Token
	var expr Expression = tok
	if !IsNil(expr) || !IsNil(nil) || IsNil(Ident("x")) {
		t.Error("IsNil misreports")
	}
}
