package analyzer

import (
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/config"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

func (w *walker) VisitProgram(program *ast.Program) {
	w.statements(program.Statements, token.Token{})
}

// VisitBlock decorates the statements in the current scope. Whoever owns
// the block has already opened the right scope for it.
func (w *walker) VisitBlock(b *ast.Block) {
	w.statements(b.Statements, b.Token)
}

func (w *walker) VisitPrintStatement(s *ast.PrintStatement) {
	w.expr(s.Argument, "argument", s.Token)
}

func (w *walker) VisitExpressionStatement(s *ast.ExpressionStatement) {
	w.expr(s.Expression, "expression", s.Token)
}

// VisitAssignment checks, in order: assignability, same type, writability.
func (w *walker) VisitAssignment(s *ast.Assignment) {
	source := w.expr(s.Source, "source", s.Token)
	target := w.expr(s.Target, "target", s.Token)

	switch s.Op {
	case config.AssignOp:
		w.checkAssignable(source, target, s.Token)
	case config.IncrementBy:
		w.checkNumberOrString(target, s.Target.GetToken())
	case config.DecrementBy:
		w.checkNumber(target, s.Target.GetToken())
	default:
		w.fail(diagnostics.MalformedTree, s.Token, "Unknown assignment operator %s", s.Op)
	}
	w.checkSameType(source, target, s.Token)
	w.checkWritable(s.Target, s.Token)
}

func (w *walker) VisitBump(s *ast.Bump) {
	w.check(s.Op == config.IncrementOp || s.Op == config.DecrementOp, diagnostics.MalformedTree, s.Token,
		"Unknown operator %s", s.Op)
	operand := w.expr(s.Operand, "operand", s.Token)
	w.checkInteger(operand, s.Operand.GetToken())
	w.checkWritable(s.Operand, s.Token)
	s.SetType(typesystem.Int)
}

func (w *walker) VisitBreakStatement(s *ast.BreakStatement) {
	w.check(w.symbolTable.InLoop(), diagnostics.ScopeViolation, s.Token, "Break can only appear in a loop")
}

func (w *walker) VisitReturnStatement(s *ast.ReturnStatement) {
	fn := w.symbolTable.Function()
	w.check(fn != nil, diagnostics.ScopeViolation, s.Token, "Return can only appear in a function")

	if ast.IsNil(s.Expression) {
		w.check(fn.ReturnType() == typesystem.Void, diagnostics.ScopeViolation, s.Token,
			"Something should be returned here")
		return
	}
	w.check(fn.ReturnType() != typesystem.Void, diagnostics.ScopeViolation, s.Token, "Cannot return a value here")
	value := w.expr(s.Expression, "expression", s.Token)
	w.checkAssignable(value, fn.ReturnType(), s.Expression.GetToken())
}

// VisitIfStatement gives every branch its own scope.
func (w *walker) VisitIfStatement(s *ast.IfStatement) {
	test := w.expr(s.Test, "test", s.Token)
	w.checkBoolean(test, s.Test.GetToken())
	w.body(s.Consequent, w.symbolTable.Child(), s.Token)

	for _, alt := range s.Alternates {
		if alt == nil {
			w.fail(diagnostics.MalformedTree, s.Token, "Missing branch")
		}
		alt.Accept(w)
	}
	if s.Else != nil {
		w.body(s.Else, w.symbolTable.Child(), s.Token)
	}
}

func (w *walker) VisitElseIf(s *ast.ElseIf) {
	test := w.expr(s.Test, "test", s.Token)
	w.checkBoolean(test, s.Test.GetToken())
	w.body(s.Consequent, w.symbolTable.Child(), s.Token)
}

func (w *walker) VisitWhileStatement(s *ast.WhileStatement) {
	test := w.expr(s.Test, "test", s.Token)
	w.checkBoolean(test, s.Test.GetToken())
	w.body(s.Body, w.symbolTable.Child(symbols.WithLoop(true)), s.Token)
}

// VisitForLoop analyzes the whole loop in one loop scope: the induction
// variable is visible to the test, the update and the body, and nowhere
// after the loop.
func (w *walker) VisitForLoop(s *ast.ForLoop) {
	defer w.enter(w.symbolTable.Child(symbols.WithLoop(true)))()

	if s.Declaration == nil {
		w.fail(diagnostics.MalformedTree, s.Token, "Missing loop declaration")
	}
	s.Declaration.Accept(w)

	test := w.expr(s.Test, "test", s.Token)
	w.checkBoolean(test, s.Test.GetToken())

	if s.Update == nil {
		w.fail(diagnostics.MalformedTree, s.Token, "Missing loop update")
	}
	s.Update.Accept(w)
	w.checkInteger(s.Update.ResolvedType(), s.Update.Token)

	if s.Body == nil {
		w.fail(diagnostics.MalformedTree, s.Token, "Missing block")
	}
	s.Body.Accept(w)
}
