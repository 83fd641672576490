package analyzer

import (
	"errors"
	"math/big"
	"slices"
	"strconv"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/config"
	"github.com/funvibe/pokerscript/internal/diagnostics"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// VisitToken decorates a leaf in value position. Literals are typed by
// their category; identifiers take the type of the entity they resolve to.
func (w *walker) VisitToken(t *ast.Token) {
	switch t.Category() {
	case token.IDENT:
		e, err := w.symbolTable.Resolve(t.Lexeme())
		if err != nil {
			w.fail(diagnostics.UndeclaredIdentifier, t.Token, "%s", err.Error())
		}
		_, isType := e.(*symbols.TypeEntity)
		w.check(!isType, diagnostics.TypeMismatch, t.Token, "Expected a value but %s is a type", t.Lexeme())
		t.Entity = e
		t.SetType(e.Type())
	case token.INT:
		v, ok := parseInt(t.Lexeme())
		w.check(ok, diagnostics.MalformedTree, t.Token, "Malformed integer literal %s", t.Lexeme())
		t.Value = v
		t.SetType(typesystem.Int)
	case token.FLOAT:
		v, ok := parseFloat(t.Lexeme())
		w.check(ok, diagnostics.MalformedTree, t.Token, "Malformed float literal %s", t.Lexeme())
		t.Value = v
		t.SetType(typesystem.Float)
	case token.STRING:
		t.Value = t.Lexeme()
		t.SetType(typesystem.String)
	case token.BOOL:
		switch t.Lexeme() {
		case config.TrueLiteral:
			t.Value = true
		case config.FalseLiteral:
			t.Value = false
		default:
			w.fail(diagnostics.MalformedTree, t.Token, "Malformed boolean literal %s", t.Lexeme())
		}
		t.SetType(typesystem.Boolean)
	case token.SYMBOL:
		w.fail(diagnostics.MalformedTree, t.Token, "Unexpected symbol %s", t.Lexeme())
	default:
		w.fail(diagnostics.MalformedTree, t.Token, "Unknown token category %q", string(t.Category()))
	}
}

// parseInt reads a decimal numeral of any size.
func parseInt(lexeme string) (*big.Int, bool) {
	if !isDigits(lexeme) {
		return nil, false
	}
	return new(big.Int).SetString(lexeme, 10)
}

// parseFloat reads a decimal float. Literals beyond the float64 range
// become ±Inf or zero rather than errors.
func parseFloat(lexeme string) (float64, bool) {
	if lexeme == "" || lexeme[0] < '0' || lexeme[0] > '9' {
		return 0, false
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (w *walker) VisitConditional(e *ast.Conditional) {
	test := w.expr(e.Test, "test", e.Token)
	w.checkBoolean(test, e.Test.GetToken())
	consequent := w.expr(e.Consequent, "consequent", e.Token)
	alternate := w.expr(e.Alternate, "alternate", e.Token)
	w.checkSameType(consequent, alternate, e.Token)
	e.SetType(consequent)
}

func (w *walker) VisitBinaryExpression(e *ast.BinaryExpression) {
	left := w.expr(e.Left, "left operand", e.Token)
	right := w.expr(e.Right, "right operand", e.Token)

	switch {
	case slices.Contains(config.AdditiveOps, e.Op):
		w.checkNumberOrString(left, e.Left.GetToken())
		w.checkSameType(left, right, e.Token)
		e.SetType(left)
	case slices.Contains(config.ArithmeticOps, e.Op):
		w.checkNumber(left, e.Left.GetToken())
		w.checkSameType(left, right, e.Token)
		e.SetType(left)
	case slices.Contains(config.EqualityOps, e.Op):
		w.checkSameType(left, right, e.Token)
		e.SetType(typesystem.Boolean)
	case slices.Contains(config.RelationalOps, e.Op):
		w.checkNumberOrString(left, e.Left.GetToken())
		w.checkSameType(left, right, e.Token)
		e.SetType(typesystem.Boolean)
	case slices.Contains(config.LogicalOps, e.Op):
		w.checkBoolean(left, e.Left.GetToken())
		w.checkBoolean(right, e.Right.GetToken())
		e.SetType(typesystem.Boolean)
	default:
		w.fail(diagnostics.MalformedTree, e.Token, "Unknown operator %s", e.Op)
	}
}

func (w *walker) VisitUnaryExpression(e *ast.UnaryExpression) {
	operand := w.expr(e.Operand, "operand", e.Token)
	switch e.Op {
	case config.NotOp:
		w.checkBoolean(operand, e.Operand.GetToken())
		e.SetType(typesystem.Boolean)
	case config.NegateOp:
		w.checkNumber(operand, e.Operand.GetToken())
		e.SetType(operand)
	default:
		w.fail(diagnostics.MalformedTree, e.Token, "Unknown operator %s", e.Op)
	}
}

// VisitArrayExpression types a non-empty literal by its first element.
// Empty arrays are written with EmptyArray and an explicit element type.
func (w *walker) VisitArrayExpression(e *ast.ArrayExpression) {
	w.check(len(e.Elements) > 0, diagnostics.MalformedTree, e.Token, "Array literal must not be empty")
	types := make([]typesystem.Type, len(e.Elements))
	for i, el := range e.Elements {
		types[i] = w.expr(el, "element", e.Token)
	}
	for _, t := range types[1:] {
		w.check(typesystem.Equivalent(t, types[0]), diagnostics.TypeMismatch, e.Token,
			"Not all elements have the same type")
	}
	e.SetType(typesystem.NewArray(types[0]))
}

func (w *walker) VisitEmptyArray(e *ast.EmptyArray) {
	e.SetType(typesystem.NewArray(w.typeExpr(e.ElementType, e.Token)))
}

func (w *walker) VisitEmptyOptional(e *ast.EmptyOptional) {
	e.SetType(typesystem.NewOptional(w.typeExpr(e.ElementType, e.Token)))
}

func (w *walker) VisitSubscript(e *ast.Subscript) {
	array := w.expr(e.Array, "array", e.Token)
	elem := typesystem.ElementOf(array)
	w.check(elem != nil, diagnostics.TypeMismatch, e.Array.GetToken(), "Array expected")
	index := w.expr(e.Index, "index", e.Token)
	w.checkInteger(index, e.Index.GetToken())
	e.SetType(elem)
}

func (w *walker) VisitCall(e *ast.Call) {
	w.expr(e.Callee, "callee", e.Token)
	var fn *symbols.Function
	if leaf, ok := e.Callee.(*ast.Token); ok {
		fn, _ = leaf.Entity.(*symbols.Function)
	}
	w.check(fn != nil, diagnostics.TypeMismatch, e.Callee.GetToken(), "Call of non-function")

	args := make([]typesystem.Type, len(e.Args))
	for i, arg := range e.Args {
		args[i] = w.expr(arg, "argument", e.Token)
	}

	params := fn.ParamTypes()
	w.check(len(params) == len(args), diagnostics.ArityMismatch, e.Token,
		"%d argument(s) required but %d passed", len(params), len(args))
	for i, p := range params {
		w.checkAssignable(args[i], p, e.Args[i].GetToken())
	}
	e.SetType(fn.ReturnType())
}

// Type expressions

func (w *walker) VisitNamedType(t *ast.NamedType) {
	if t.Name == nil {
		w.fail(diagnostics.MalformedTree, token.Token{}, "Missing type name")
	}
	e, err := w.symbolTable.Resolve(t.Name.Lexeme())
	if err != nil {
		w.fail(diagnostics.UndeclaredIdentifier, t.Name.Token, "%s", err.Error())
	}
	te, ok := e.(*symbols.TypeEntity)
	w.check(ok, diagnostics.TypeMismatch, t.Name.Token, "Type expected")
	t.Name.Entity = te
	t.Name.SetType(te.Type())
	t.SetType(te.Type())
}

func (w *walker) VisitArrayType(t *ast.ArrayType) {
	t.SetType(typesystem.NewArray(w.typeExpr(t.Elem, t.Token)))
}

func (w *walker) VisitOptionalType(t *ast.OptionalType) {
	t.SetType(typesystem.NewOptional(w.typeExpr(t.Elem, t.Token)))
}
