package analyzer

import (
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/token"
)

// Small constructors for hand-built trees. Positions are left zero so
// diagnostics read as bare messages.

func program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}

func block(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Statements: stmts}
}

func id(name string) *ast.Token { return ast.Ident(name) }

func intLit(lexeme string) *ast.Token { return ast.NewToken(token.INT, lexeme, 0, 0) }

func floatLit(lexeme string) *ast.Token { return ast.NewToken(token.FLOAT, lexeme, 0, 0) }

func strLit(s string) *ast.Token { return ast.NewToken(token.STRING, s, 0, 0) }

func boolLit(b bool) *ast.Token {
	if b {
		return ast.NewToken(token.BOOL, "hit", 0, 0)
	}
	return ast.NewToken(token.BOOL, "miss", 0, 0)
}

func named(name string) *ast.NamedType { return ast.Named(name) }

func arrayOf(elem ast.TypeExpr) *ast.ArrayType { return &ast.ArrayType{Elem: elem} }

func optionalOf(elem ast.TypeExpr) *ast.OptionalType { return &ast.OptionalType{Elem: elem} }

func let(typ ast.TypeExpr, name string, init ast.Expression) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{Type: typ, Variable: id(name), Initializer: init}
}

func constant(typ ast.TypeExpr, name string, init ast.Expression) *ast.VariableDeclaration {
	d := let(typ, name, init)
	d.Modifier = ast.Sym("constantPressure")
	return d
}

func assign(target, source ast.Expression) *ast.Assignment {
	return &ast.Assignment{Target: target, Op: ":", Source: source}
}

func compound(op string, target, source ast.Expression) *ast.Assignment {
	return &ast.Assignment{Target: target, Op: op, Source: source}
}

func inc(operand ast.Expression) *ast.Bump { return &ast.Bump{Operand: operand, Op: "+$"} }

func dec(operand ast.Expression) *ast.Bump { return &ast.Bump{Operand: operand, Op: "-$"} }

func bin(op string, left, right ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{Op: op, Left: left, Right: right}
}

func unary(op string, operand ast.Expression) *ast.UnaryExpression {
	return &ast.UnaryExpression{Op: op, Operand: operand}
}

func call(callee string, args ...ast.Expression) *ast.Call {
	return &ast.Call{Callee: id(callee), Args: args}
}

func array(elems ...ast.Expression) *ast.ArrayExpression {
	return &ast.ArrayExpression{Elements: elems}
}

func index(arr, idx ast.Expression) *ast.Subscript {
	return &ast.Subscript{Array: arr, Index: idx}
}

func reveal(e ast.Expression) *ast.PrintStatement { return &ast.PrintStatement{Argument: e} }

func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Expression: e}
}

func param(typ ast.TypeExpr, name string) *ast.Parameter {
	return &ast.Parameter{Type: typ, Name: id(name)}
}

func function(ret ast.TypeExpr, name string, params []*ast.Parameter, body ...ast.Statement) *ast.FunctionDeclaration {
	return &ast.FunctionDeclaration{ReturnType: ret, Name: id(name), Parameters: params, Body: block(body...)}
}

func ret(e ast.Expression) *ast.ReturnStatement { return &ast.ReturnStatement{Expression: e} }

func fold() *ast.BreakStatement { return &ast.BreakStatement{} }

func while(test ast.Expression, body ...ast.Statement) *ast.WhileStatement {
	return &ast.WhileStatement{Test: test, Body: block(body...)}
}

func ifThen(test ast.Expression, body ...ast.Statement) *ast.IfStatement {
	return &ast.IfStatement{Test: test, Consequent: block(body...)}
}

// countedLoop builds playingLoose (chip i: from; i < to; i+$) { body }.
func countedLoop(i string, from, to ast.Expression, body ...ast.Statement) *ast.ForLoop {
	return &ast.ForLoop{
		Declaration: &ast.LoopDeclaration{Type: named("chip"), Variable: id(i), Initializer: from},
		Test:        bin("<", id(i), to),
		Update:      inc(id(i)),
		Body:        block(body...),
	}
}
