package analyzer

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/diagnostics"
)

// expectAnalyzerError asserts that analysis fails with the given code.
func expectAnalyzerError(t *testing.T, prog *ast.Program, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, err := Analyze(prog)
	if err == nil {
		t.Fatalf("expected error %s, but got none", code)
	}
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("expected a diagnostic, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected error %s, got %s: %v", code, de.Code, de)
	}
	return de
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, prog *ast.Program, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, prog, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectNoAnalyzerErrors asserts that analysis succeeds.
func expectNoAnalyzerErrors(t *testing.T, prog *ast.Program) *ast.Program {
	t.Helper()
	out, err := Analyze(prog)
	if err != nil {
		t.Fatalf("expected no errors, got: %v", err)
	}
	return out
}

// ---------------------------------------------------------------------------
// A001: Undeclared identifier

func TestA001_UndeclaredIdentifier(t *testing.T) {
	expectAnalyzerErrorContains(t, program(reveal(id("x"))), diagnostics.ErrA001, "Identifier x not declared")
}

func TestA001_SelfReferenceInInitializer(t *testing.T) {
	expectAnalyzerErrorContains(t, program(let(named("chip"), "x", bin("+", id("x"), intLit("1")))),
		diagnostics.ErrA001, "Identifier x not declared")
}

func TestA001_OutOfScopeAfterBlock(t *testing.T) {
	prog := program(
		while(boolLit(true), let(nil, "inner", intLit("1")), fold()),
		reveal(id("inner")),
	)
	expectAnalyzerError(t, prog, diagnostics.ErrA001)
}

func TestA001_LoopVariableDoesNotLeak(t *testing.T) {
	prog := program(
		countedLoop("i", intLit("0"), intLit("3")),
		reveal(id("i")),
	)
	expectAnalyzerErrorContains(t, prog, diagnostics.ErrA001, "Identifier i not declared")
}

func TestA001_UnknownTypeName(t *testing.T) {
	expectAnalyzerErrorContains(t, program(let(named("tree"), "x", intLit("1"))),
		diagnostics.ErrA001, "Identifier tree not declared")
}

// ---------------------------------------------------------------------------
// A002: Duplicate identifier (no shadowing anywhere up the chain)

func TestA002_DuplicateIdentifier(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
	}{
		{"same scope", program(
			let(named("chip"), "x", intLit("1")),
			let(named("chip"), "x", intLit("2")),
		)},
		{"loop body", program(
			let(named("chip"), "x", intLit("1")),
			while(boolLit(true), let(nil, "x", intLit("1"))),
		)},
		{"if branch", program(
			let(named("chip"), "x", intLit("1")),
			ifThen(boolLit(true), let(nil, "x", intLit("1"))),
		)},
		{"parameter shadows global", program(
			let(named("chip"), "x", intLit("1")),
			function(nil, "f", []*ast.Parameter{param(named("chip"), "x")}),
		)},
		{"parameter reuses function name", program(
			function(nil, "f", []*ast.Parameter{param(named("chip"), "f")}),
		)},
		{"duplicate parameters", program(
			function(nil, "f", []*ast.Parameter{param(named("chip"), "a"), param(named("change"), "a")}),
		)},
		{"function redeclared", program(
			function(nil, "f", nil),
			function(nil, "f", nil),
		)},
		{"prelude function", program(let(nil, "sqrt", intLit("1")))},
		{"prelude type", program(let(nil, "chip", intLit("1")))},
		{"local in function body", program(
			let(nil, "total", intLit("0")),
			function(nil, "f", nil, let(nil, "total", intLit("1"))),
		)},
		{"loop variable", program(
			let(nil, "i", intLit("0")),
			countedLoop("i", intLit("0"), intLit("3")),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.prog, diagnostics.ErrA002, "already declared")
		})
	}
}

// ---------------------------------------------------------------------------
// A003: Type mismatch

func TestA003_TypeMismatch(t *testing.T) {
	arrX := let(arrayOf(named("chip")), "xs", array(intLit("1")))
	tests := []struct {
		name string
		prog *ast.Program
		msg  string
	}{
		{"assign boolean to chip", program(
			let(named("chip"), "x", intLit("1")),
			assign(id("x"), boolLit(true)),
		), "Cannot assign a playingOnTilt to a chip"},
		{"assign bad array", program(
			arrX,
			assign(id("xs"), array(boolLit(true))),
		), "Cannot assign a [playingOnTilt] to a [chip]"},
		{"assign optional to plain", program(
			let(named("chip"), "x", intLit("1")),
			let(optionalOf(named("chip")), "y", intLit("2")),
			assign(id("x"), id("y")),
		), "Cannot assign a chip? to a chip"},
		{"annotated initializer", program(
			let(named("stringBet"), "s", intLit("1")),
		), "Cannot assign a chip to a stringBet"},
		{"optional of wrong element", program(
			let(optionalOf(named("chip")), "o", floatLit("1.5")),
		), "Cannot assign a change to a chip?"},
		{"void initializer", program(
			function(nil, "nothing", nil),
			let(nil, "v", call("nothing")),
		), "Cannot assign a void to v"},
		{"non-boolean if", program(ifThen(intLit("1"))), "Expected a boolean"},
		{"non-boolean while", program(while(strLit("yes"))), "Expected a boolean"},
		{"non-boolean elif", program(&ast.IfStatement{
			Test:       boolLit(true),
			Consequent: block(),
			Alternates: []*ast.ElseIf{{Test: intLit("0"), Consequent: block()}},
		}), "Expected a boolean"},
		{"non-boolean conditional", program(reveal(&ast.Conditional{
			Test: intLit("1"), Consequent: intLit("2"), Alternate: intLit("3"),
		})), "Expected a boolean"},
		{"conditional arms differ", program(reveal(&ast.Conditional{
			Test: boolLit(true), Consequent: intLit("1"), Alternate: boolLit(true),
		})), "Operands do not have the same type"},
		{"plus on booleans", program(reveal(bin("+", boolLit(false), intLit("1")))), "Expected a number or string"},
		{"minus on strings", program(reveal(bin("-", strLit("a"), strLit("b")))), "Expected a number"},
		{"power on booleans", program(reveal(bin("**", boolLit(true), boolLit(true)))), "Expected a number"},
		{"mixed arithmetic", program(reveal(bin("*", intLit("2"), floatLit("2.0")))), "Operands do not have the same type"},
		{"equality across types", program(reveal(bin("==", intLit("2"), floatLit("2.0")))), "Operands do not have the same type"},
		{"relation on booleans", program(reveal(bin("<", boolLit(false), boolLit(true)))), "Expected a number or string"},
		{"and with integer", program(reveal(bin("&&", boolLit(false), intLit("1")))), "Expected a boolean"},
		{"or with integer left", program(reveal(bin("||", intLit("1"), boolLit(false)))), "Expected a boolean"},
		{"negate boolean", program(reveal(unary("-", boolLit(true)))), "Expected a number"},
		{"not on string", program(reveal(unary("!", strLit("hello")))), "Expected a boolean"},
		{"increment boolean", program(
			let(named("playingOnTilt"), "x", boolLit(true)),
			inc(id("x")),
		), "Expected an integer"},
		{"decrement float", program(
			let(named("change"), "x", floatLit("1.0")),
			dec(id("x")),
		), "Expected an integer"},
		{"incrementBy boolean", program(
			let(nil, "b", boolLit(true)),
			compound("incrementBy", id("b"), boolLit(true)),
		), "Expected a number or string"},
		{"decrementBy string", program(
			let(nil, "s", strLit("x")),
			compound("decrementBy", id("s"), strLit("y")),
		), "Expected a number"},
		{"incrementBy mixed", program(
			let(nil, "n", intLit("1")),
			compound("incrementBy", id("n"), floatLit("1.0")),
		), "Operands do not have the same type"},
		{"mixed array literal", program(reveal(array(intLit("3"), floatLit("3.0")))), "Not all elements have the same type"},
		{"subscript non-array", program(
			let(nil, "n", intLit("1")),
			reveal(index(id("n"), intLit("0"))),
		), "Array expected"},
		{"non-integer index", program(
			let(nil, "a", array(intLit("1"))),
			reveal(index(id("a"), boolLit(false))),
		), "Expected an integer"},
		{"call of variable", program(
			let(nil, "n", intLit("1")),
			exprStmt(call("n")),
		), "Call of non-function"},
		{"call of literal", program(exprStmt(&ast.Call{Callee: intLit("1")})), "Call of non-function"},
		{"argument type", program(reveal(call("sqrt", intLit("4")))), "Cannot assign a chip to a change"},
		{"array argument is invariant", program(
			function(nil, "average", []*ast.Parameter{param(arrayOf(named("change")), "xs")}),
			exprStmt(call("average", array(intLit("1")))),
		), "Cannot assign a [chip] to a [change]"},
		{"return type", program(
			function(named("chip"), "f", nil, ret(boolLit(false))),
		), "Cannot assign a playingOnTilt to a chip"},
		{"type in value position", program(reveal(id("chip"))), "Expected a value but chip is a type"},
		{"value in type position", program(
			let(nil, "n", intLit("1")),
			let(&ast.NamedType{Name: id("n")}, "m", intLit("2")),
		), "Type expected"},
		{"non-integer induction variable", program(&ast.ForLoop{
			Declaration: &ast.LoopDeclaration{Variable: id("i"), Initializer: floatLit("0.5")},
			Test:        boolLit(true),
			Update:      inc(id("i")),
			Body:        block(),
		}), "Expected an integer"},
		{"non-boolean loop test", program(&ast.ForLoop{
			Declaration: &ast.LoopDeclaration{Variable: id("i"), Initializer: intLit("0")},
			Test:        id("i"),
			Update:      inc(id("i")),
			Body:        block(),
		}), "Expected a boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.prog, diagnostics.ErrA003, tt.msg)
		})
	}
}

// ---------------------------------------------------------------------------
// A004: Arity mismatch

func TestA004_ArityMismatch(t *testing.T) {
	expectAnalyzerErrorContains(t, program(reveal(call("hypot", floatLit("3.0")))),
		diagnostics.ErrA004, "2 argument(s) required but 1 passed")
	expectAnalyzerErrorContains(t, program(
		function(nil, "f", nil),
		exprStmt(call("f", intLit("1"))),
	), diagnostics.ErrA004, "0 argument(s) required but 1 passed")
}

// ---------------------------------------------------------------------------
// A005: Scope violation

func TestA005_ScopeViolation(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
		msg  string
	}{
		{"break at top level", program(fold()), "Break can only appear in a loop"},
		{"break in if outside loop", program(ifThen(boolLit(true), fold())), "Break can only appear in a loop"},
		{"break in function inside loop", program(
			while(boolLit(true), function(nil, "f", nil, fold())),
		), "Break can only appear in a loop"},
		{"return at top level", program(ret(intLit("1"))), "Return can only appear in a function"},
		{"short return at top level", program(ret(nil)), "Return can only appear in a function"},
		{"value from void function", program(
			function(nil, "f", nil, ret(intLit("1"))),
		), "Cannot return a value here"},
		{"nothing from chip function", program(
			function(named("chip"), "f", nil, ret(nil)),
		), "Something should be returned here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.prog, diagnostics.ErrA005, tt.msg)
		})
	}
}

// ---------------------------------------------------------------------------
// A006: Read-only assignment

func TestA006_ReadOnlyAssignment(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
		msg  string
	}{
		{"assign constant", program(
			constant(named("chip"), "x", intLit("1")),
			assign(id("x"), intLit("2")),
		), "Cannot assign to constant x"},
		{"bump constant", program(
			constant(named("chip"), "x", intLit("1")),
			inc(id("x")),
		), "Cannot assign to constant x"},
		{"compound on constant", program(
			constant(nil, "s", strLit("a")),
			compound("incrementBy", id("s"), strLit("b")),
		), "Cannot assign to constant s"},
		{"prelude constant", program(assign(id("pi"), floatLit("3.0"))), "Cannot assign to constant pi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.prog, diagnostics.ErrA006, tt.msg)
		})
	}
}

// ---------------------------------------------------------------------------
// A007: Malformed tree

func TestA007_MalformedTree(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
		msg  string
	}{
		{"nil statement", program(nil), "Missing statement"},
		{"missing initializer", program(let(named("chip"), "x", nil)), "Missing initializer"},
		{"missing body", program(&ast.WhileStatement{Test: boolLit(true)}), "Missing block"},
		{"literal as name", program(&ast.VariableDeclaration{Variable: intLit("1"), Initializer: intLit("1")}),
			`Identifier expected but found (Int,"1")`},
		{"unknown modifier", program(&ast.VariableDeclaration{
			Modifier: ast.Sym("volatile"), Variable: id("x"), Initializer: intLit("1"),
		}), "Unknown modifier volatile"},
		{"unknown binary operator", program(reveal(bin("<<", intLit("1"), intLit("2")))), "Unknown operator <<"},
		{"unknown unary operator", program(reveal(unary("~", intLit("1")))), "Unknown operator ~"},
		{"unknown assignment operator", program(
			let(nil, "x", intLit("1")),
			compound("timesBy", id("x"), intLit("2")),
		), "Unknown assignment operator timesBy"},
		{"unknown bump", program(
			let(nil, "x", intLit("1")),
			&ast.Bump{Operand: id("x"), Op: "*$"},
		), "Unknown operator *$"},
		{"empty array literal", program(reveal(array())), "Array literal must not be empty"},
		{"symbol in value position", program(reveal(ast.Sym("reveal"))), "Unexpected symbol reveal"},
		{"malformed integer", program(reveal(intLit("12x"))), "Malformed integer literal 12x"},
		{"malformed float", program(reveal(floatLit("2.5.1"))), "Malformed float literal 2.5.1"},
		{"signed integer lexeme", program(reveal(intLit("-3"))), "Malformed integer literal -3"},
		{"malformed boolean", program(reveal(ast.NewToken("Bool", "yes", 0, 0))), "Malformed boolean literal yes"},
		{"unknown category", program(reveal(ast.NewToken("Char", "c", 0, 0))), `Unknown token category "Char"`},
		{"literal assignment target", program(assign(intLit("1"), intLit("2"))), "Cannot assign to (Int,\"1\")"},
		{"expression assignment target", program(assign(bin("+", intLit("1"), intLit("1")), intLit("2"))),
			"Invalid assignment target"},
		{"missing loop update", program(&ast.ForLoop{
			Declaration: &ast.LoopDeclaration{Variable: id("i"), Initializer: intLit("0")},
			Test:        boolLit(true),
			Body:        block(),
		}), "Missing loop update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectAnalyzerErrorContains(t, tt.prog, diagnostics.ErrA007, tt.msg)
		})
	}
}

func TestNilProgram(t *testing.T) {
	_, err := Analyze(nil)
	if code, ok := diagnostics.CodeOf(err); !ok || code != diagnostics.MalformedTree {
		t.Fatalf("Analyze(nil) error = %v", err)
	}
}
