package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/config"
	"github.com/funvibe/pokerscript/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"?":  0, // Conditional
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
	"**": 7, // Power (right-assoc)
}

// topLevel is the context of a statement-level expression; nothing there
// needs parentheses.
const topLevel = -1

// unaryPrecedence binds tighter than every binary operator.
const unaryPrecedence = 8

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"**": true,
	"?":  true,
}

// Block delimiters
const (
	blockOpen  = "$."
	blockClose = ".$"
)

// CodePrinter renders a tree back as Pokerscript source.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders program as source.
func Print(program *ast.Program) string {
	p := NewCodePrinter()
	program.Accept(p)
	return p.String()
}

var _ ast.Visitor = (*CodePrinter)(nil)

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// node prints a child that may be absent.
func (p *CodePrinter) node(n ast.Node) {
	if ast.IsNil(n) {
		p.write("<???>")
		return
	}
	n.Accept(p)
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if ast.IsNil(expr) {
		p.write("<???>")
		return
	}

	var op string
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		op = e.Op
	case *ast.Conditional:
		op = "?"
	default:
		expr.Accept(p)
		return
	}

	prec := getPrecedence(op)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		if isRight && !rightAssoc[op] {
			needParens = true
		} else if !isRight && rightAssoc[op] {
			needParens = true
		}
	}
	if needParens {
		p.write("(")
	}
	expr.Accept(p)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printBlock(b *ast.Block) {
	p.write(blockOpen)
	p.write("\n")
	p.indent++
	if b != nil {
		for _, stmt := range b.Statements {
			p.writeIndent()
			p.node(stmt)
			p.write("\n")
		}
	}
	p.indent--
	p.writeIndent()
	p.write(blockClose)
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for _, stmt := range n.Statements {
		p.node(stmt)
		p.write("\n")
	}
}

func (p *CodePrinter) VisitBlock(n *ast.Block) {
	p.printBlock(n)
}

func (p *CodePrinter) VisitToken(n *ast.Token) {
	switch n.Category() {
	case token.STRING:
		p.write(strconv.Quote(n.Lexeme()))
	default:
		p.write(n.Lexeme())
	}
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	if n.Modifier != nil {
		p.write(n.Modifier.Lexeme())
		p.write(" ")
	}
	if !ast.IsNil(n.Type) {
		n.Type.Accept(p)
		p.write(" ")
	}
	p.node(n.Variable)
	p.write(config.AssignOp + " ")
	p.printExpr(n.Initializer, topLevel, false)
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	p.write("straddle ")
	if !ast.IsNil(n.ReturnType) {
		n.ReturnType.Accept(p)
		p.write(" ")
	}
	p.node(n.Name)
	p.write("(")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.node(param)
	}
	p.write(") ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitParameter(n *ast.Parameter) {
	p.node(n.Type)
	p.write(": ")
	p.node(n.Name)
}

func (p *CodePrinter) VisitPrintStatement(n *ast.PrintStatement) {
	p.write("reveal ")
	p.printExpr(n.Argument, topLevel, false)
}

func (p *CodePrinter) VisitAssignment(n *ast.Assignment) {
	p.printExpr(n.Target, topLevel, false)
	if n.Op == config.AssignOp {
		p.write(n.Op + " ")
	} else {
		p.write(" " + n.Op + " ")
	}
	p.printExpr(n.Source, topLevel, false)
}

func (p *CodePrinter) VisitBump(n *ast.Bump) {
	p.printExpr(n.Operand, unaryPrecedence, false)
	p.write(n.Op)
}

func (p *CodePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.write("fold")
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("cashout")
	if !ast.IsNil(n.Expression) {
		p.write(" ")
		p.printExpr(n.Expression, topLevel, false)
	}
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("excuses ")
	p.printExpr(n.Test, topLevel, false)
	p.write(" ")
	p.printBlock(n.Consequent)
	for _, alt := range n.Alternates {
		p.write(" ")
		p.node(alt)
	}
	if n.Else != nil {
		p.write(" noMoreExcuses ")
		p.printBlock(n.Else)
	}
}

func (p *CodePrinter) VisitElseIf(n *ast.ElseIf) {
	p.write("followingExcuses ")
	p.printExpr(n.Test, topLevel, false)
	p.write(" ")
	p.printBlock(n.Consequent)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("contemplating ")
	p.printExpr(n.Test, topLevel, false)
	p.write(" ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitForLoop(n *ast.ForLoop) {
	p.write("playingLoose (")
	p.node(n.Declaration)
	p.write(", ")
	p.printExpr(n.Test, topLevel, false)
	p.write(", ")
	p.node(n.Update)
	p.write(") ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitLoopDeclaration(n *ast.LoopDeclaration) {
	if !ast.IsNil(n.Type) {
		n.Type.Accept(p)
		p.write(" ")
	}
	p.node(n.Variable)
	p.write(config.AssignOp)
	p.printExpr(n.Initializer, topLevel, false)
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.printExpr(n.Expression, topLevel, false)
}

func (p *CodePrinter) VisitConditional(n *ast.Conditional) {
	prec := getPrecedence("?")
	p.printExpr(n.Test, prec+1, false)
	p.write(" ? ")
	p.printExpr(n.Consequent, prec+1, false)
	p.write(" : ")
	p.printExpr(n.Alternate, prec, true)
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	prec := getPrecedence(n.Op)
	p.printExpr(n.Left, prec, false)
	p.write(" " + n.Op + " ")
	p.printExpr(n.Right, prec, true)
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	p.write(n.Op)
	p.printExpr(n.Operand, unaryPrecedence, false)
}

func (p *CodePrinter) VisitArrayExpression(n *ast.ArrayExpression) {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, topLevel, false)
	}
	p.write("]")
}

func (p *CodePrinter) VisitEmptyArray(n *ast.EmptyArray) {
	p.write("[] ")
	p.node(n.ElementType)
}

func (p *CodePrinter) VisitEmptyOptional(n *ast.EmptyOptional) {
	p.write("no ")
	p.node(n.ElementType)
}

func (p *CodePrinter) VisitSubscript(n *ast.Subscript) {
	p.printExpr(n.Array, unaryPrecedence, false)
	p.write("[")
	p.printExpr(n.Index, topLevel, false)
	p.write("]")
}

func (p *CodePrinter) VisitCall(n *ast.Call) {
	p.printExpr(n.Callee, unaryPrecedence, false)
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, topLevel, false)
	}
	p.write(")")
}

func (p *CodePrinter) VisitNamedType(n *ast.NamedType) {
	p.node(n.Name)
}

func (p *CodePrinter) VisitArrayType(n *ast.ArrayType) {
	p.write("flop ")
	p.node(n.Elem)
}

func (p *CodePrinter) VisitOptionalType(n *ast.OptionalType) {
	p.node(n.Elem)
	p.write("?")
}
