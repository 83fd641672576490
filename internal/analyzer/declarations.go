package analyzer

import (
	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/config"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// VisitVariableDeclaration types the initializer before the variable
// exists, so an initializer can never see the name it initializes.
func (w *walker) VisitVariableDeclaration(d *ast.VariableDeclaration) {
	name := w.name(d.Variable, d.Token)
	init := w.expr(d.Initializer, "initializer", d.Token)

	readOnly := false
	if d.Modifier != nil {
		w.check(d.Modifier.Lexeme() == config.ReadOnlyModifier, diagnostics.MalformedTree, d.Modifier.Token,
			"Unknown modifier %s", d.Modifier.Lexeme())
		readOnly = true
	}

	typ := init
	if !ast.IsNil(d.Type) {
		declared := w.typeExpr(d.Type, d.Token)
		w.checkInitializer(init, declared, d.Initializer)
		typ = declared
	} else {
		w.check(init != typesystem.Void, diagnostics.TypeMismatch, d.Initializer.GetToken(),
			"Cannot assign a void to %s", name)
	}

	w.declare(d.Variable, symbols.NewVariable(name, readOnly, typ, d.Variable.Token))
}

// checkInitializer accepts a value assignable to the declared type, or a
// plain value where an optional of its type is declared.
func (w *walker) checkInitializer(init, declared typesystem.Type, e ast.Expression) {
	if opt, ok := declared.(*typesystem.Optional); ok && typesystem.Equivalent(init, opt.Elem) {
		return
	}
	w.checkAssignable(init, declared, e.GetToken())
}

// VisitFunctionDeclaration registers the function before its parameters
// and body so the body may call it recursively.
func (w *walker) VisitFunctionDeclaration(d *ast.FunctionDeclaration) {
	name := w.name(d.Name, d.Token)

	var ret typesystem.Type = typesystem.Void
	if !ast.IsNil(d.ReturnType) {
		ret = w.typeExpr(d.ReturnType, d.Token)
	}

	fn := symbols.NewFunction(name, ret, d.Name.Token)
	w.declare(d.Name, fn)

	// Parameters and body share one scope.
	defer w.enter(w.symbolTable.Child(symbols.WithFunction(fn)))()
	for _, p := range d.Parameters {
		if p == nil {
			w.fail(diagnostics.MalformedTree, d.Token, "Missing parameter")
		}
		p.Accept(w)
	}
	d.Name.SetType(fn.Type())

	if d.Body == nil {
		w.fail(diagnostics.MalformedTree, d.Token, "Missing block")
	}
	d.Body.Accept(w)
}

func (w *walker) VisitParameter(p *ast.Parameter) {
	fn := w.symbolTable.Function()
	w.check(fn != nil, diagnostics.MalformedTree, p.GetToken(), "Parameter outside a function")

	name := w.name(p.Name, p.GetToken())
	typ := w.typeExpr(p.Type, p.GetToken())
	param := symbols.NewVariable(name, false, typ, p.Name.Token)
	w.declare(p.Name, param)
	fn.AddParam(param)
}

// VisitLoopDeclaration declares the induction variable of a counted loop,
// which must be an integer.
func (w *walker) VisitLoopDeclaration(d *ast.LoopDeclaration) {
	name := w.name(d.Variable, d.Token)
	init := w.expr(d.Initializer, "initializer", d.Token)

	typ := init
	if !ast.IsNil(d.Type) {
		declared := w.typeExpr(d.Type, d.Token)
		w.checkAssignable(init, declared, d.Initializer.GetToken())
		typ = declared
	}
	w.checkInteger(typ, d.Variable.Token)

	w.declare(d.Variable, symbols.NewVariable(name, false, typ, d.Variable.Token))
}
