package analyzer

import (
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// expr decorates a required expression child and returns its type.
func (w *walker) expr(e ast.Expression, what string, parent token.Token) typesystem.Type {
	if ast.IsNil(e) {
		w.fail(diagnostics.MalformedTree, parent, "Missing %s", what)
	}
	e.Accept(w)
	t := e.ResolvedType()
	w.check(t != nil, diagnostics.MalformedTree, e.GetToken(), "Expression has no type")
	return t
}

// typeExpr resolves a required type expression.
func (w *walker) typeExpr(t ast.TypeExpr, parent token.Token) typesystem.Type {
	if ast.IsNil(t) {
		w.fail(diagnostics.MalformedTree, parent, "Missing type")
	}
	t.Accept(w)
	return t.ResolvedType()
}

// statements decorates a statement list in the current scope.
func (w *walker) statements(stmts []ast.Statement, parent token.Token) {
	for _, s := range stmts {
		if ast.IsNil(s) {
			w.fail(diagnostics.MalformedTree, parent, "Missing statement")
		}
		s.Accept(w)
	}
}

// body decorates a block in scope.
func (w *walker) body(b *ast.Block, scope *symbols.Scope, parent token.Token) {
	if b == nil {
		w.fail(diagnostics.MalformedTree, parent, "Missing block")
	}
	defer w.enter(scope)()
	b.Accept(w)
}

// name checks that leaf is an identifier usable as a declared name.
func (w *walker) name(leaf *ast.Token, parent token.Token) string {
	if leaf == nil {
		w.fail(diagnostics.MalformedTree, parent, "Missing name")
	}
	w.check(leaf.Category() == token.IDENT, diagnostics.MalformedTree, leaf.Token,
		"Identifier expected but found %s", leaf.Token)
	return leaf.Lexeme()
}

// declare binds leaf to e in the current scope and decorates the leaf.
func (w *walker) declare(leaf *ast.Token, e symbols.Entity) {
	if err := w.symbolTable.Declare(leaf.Lexeme(), e); err != nil {
		w.fail(diagnostics.DuplicateIdentifier, leaf.Token, "%s", err.Error())
	}
	w.declared++
	symbols.SetOrdinal(e, w.declared)
	leaf.Entity = e
	leaf.SetType(e.Type())
}

func (w *walker) checkNumber(t typesystem.Type, tok token.Token) {
	w.check(typesystem.IsNumber(t), diagnostics.TypeMismatch, tok, "Expected a number")
}

func (w *walker) checkNumberOrString(t typesystem.Type, tok token.Token) {
	w.check(typesystem.IsNumberOrString(t), diagnostics.TypeMismatch, tok, "Expected a number or string")
}

func (w *walker) checkBoolean(t typesystem.Type, tok token.Token) {
	w.check(typesystem.IsBoolean(t), diagnostics.TypeMismatch, tok, "Expected a boolean")
}

func (w *walker) checkInteger(t typesystem.Type, tok token.Token) {
	w.check(typesystem.IsInteger(t), diagnostics.TypeMismatch, tok, "Expected an integer")
}

func (w *walker) checkSameType(a, b typesystem.Type, tok token.Token) {
	w.check(typesystem.Equivalent(a, b), diagnostics.TypeMismatch, tok, "Operands do not have the same type")
}

func (w *walker) checkAssignable(src, target typesystem.Type, tok token.Token) {
	w.check(typesystem.Assignable(src, target), diagnostics.TypeMismatch, tok,
		"Cannot assign a %s to a %s", src, target)
}

// checkWritable enforces that target names storage that may be written:
// a mutable variable or an array element.
func (w *walker) checkWritable(target ast.Expression, tok token.Token) {
	switch t := target.(type) {
	case *ast.Token:
		w.check(t.Category() == token.IDENT, diagnostics.MalformedTree, t.Token,
			"Cannot assign to %s", t.Token)
		w.check(!symbols.IsReadOnly(t.Entity), diagnostics.ReadOnlyAssignment, t.Token,
			"Cannot assign to constant %s", t.Lexeme())
	case *ast.Subscript:
	default:
		w.fail(diagnostics.MalformedTree, tok, "Invalid assignment target")
	}
}
