package ast

import (
	"github.com/funvibe/pokerscript/internal/token"
)

// VariableDeclaration binds a new variable.
// constantPressure chip dozen: 12
type VariableDeclaration struct {
	Token       token.Token // The first token of the declaration
	Modifier    *Token      // Optional, e.g. constantPressure
	Type        TypeExpr    // Optional annotation
	Variable    *Token
	Initializer Expression
}

func (vd *VariableDeclaration) Accept(v Visitor)      { v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) statementNode()        {}
func (vd *VariableDeclaration) TokenLiteral() string  { return vd.Token.Lexeme }
func (vd *VariableDeclaration) GetToken() token.Token { return vd.Token }

// FunctionDeclaration declares a named function.
// straddle chip add(chip a, chip b) { cashout a + b }
type FunctionDeclaration struct {
	Token      token.Token // The 'straddle' token
	ReturnType TypeExpr    // nil means void
	Name       *Token
	Parameters []*Parameter
	Body       *Block
}

func (fd *FunctionDeclaration) Accept(v Visitor)      { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()        {}
func (fd *FunctionDeclaration) TokenLiteral() string  { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token { return fd.Token }

// Parameter is a typed function parameter. Name is decorated with the
// parameter's Variable entity.
type Parameter struct {
	Type TypeExpr
	Name *Token
}

func (p *Parameter) Accept(v Visitor)     { v.VisitParameter(p) }
func (p *Parameter) TokenLiteral() string { return p.Name.Lexeme() }
func (p *Parameter) GetToken() token.Token {
	if p == nil || p.Name == nil {
		return token.Token{}
	}
	return p.Name.Token
}

// PrintStatement: reveal(x)
type PrintStatement struct {
	Token    token.Token
	Argument Expression
}

func (ps *PrintStatement) Accept(v Visitor)      { v.VisitPrintStatement(ps) }
func (ps *PrintStatement) statementNode()        {}
func (ps *PrintStatement) TokenLiteral() string  { return ps.Token.Lexeme }
func (ps *PrintStatement) GetToken() token.Token { return ps.Token }

// Assignment stores Source into Target. Op is ":" for plain assignment or
// one of the compound operators incrementBy and decrementBy.
type Assignment struct {
	Token  token.Token // The operator token
	Target Expression
	Op     string
	Source Expression
}

func (a *Assignment) Accept(v Visitor)      { v.VisitAssignment(a) }
func (a *Assignment) statementNode()        {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Token }

// Bump increments or decrements an integer in place: x+$ or x-$.
// It is typed chip so a counted loop can check its update.
type Bump struct {
	Token   token.Token
	Operand Expression
	Op      string
	Typed
}

func (b *Bump) Accept(v Visitor)      { v.VisitBump(b) }
func (b *Bump) statementNode()        {}
func (b *Bump) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Bump) GetToken() token.Token { return b.Token }

// BreakStatement: fold
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) Accept(v Visitor)      { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ReturnStatement: cashout x. A nil Expression is a short return.
type ReturnStatement struct {
	Token      token.Token
	Expression Expression
}

func (rs *ReturnStatement) Accept(v Visitor)      { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// IfStatement is excuses / followingExcuses / noMoreExcuses.
type IfStatement struct {
	Token      token.Token
	Test       Expression
	Consequent *Block
	Alternates []*ElseIf
	Else       *Block // Optional
}

func (is *IfStatement) Accept(v Visitor)      { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// ElseIf is one followingExcuses branch.
type ElseIf struct {
	Token      token.Token
	Test       Expression
	Consequent *Block
}

func (ei *ElseIf) Accept(v Visitor)      { v.VisitElseIf(ei) }
func (ei *ElseIf) TokenLiteral() string  { return ei.Token.Lexeme }
func (ei *ElseIf) GetToken() token.Token { return ei.Token }

// WhileStatement: contemplating (test) { ... }
type WhileStatement struct {
	Token token.Token
	Test  Expression
	Body  *Block
}

func (ws *WhileStatement) Accept(v Visitor)      { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForLoop is the counted loop.
// playingLoose (chip i: 0; i < 10; i+$) { ... }
type ForLoop struct {
	Token       token.Token
	Declaration *LoopDeclaration
	Test        Expression
	Update      *Bump
	Body        *Block
}

func (fl *ForLoop) Accept(v Visitor)      { v.VisitForLoop(fl) }
func (fl *ForLoop) statementNode()        {}
func (fl *ForLoop) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *ForLoop) GetToken() token.Token { return fl.Token }

// LoopDeclaration declares the induction variable of a ForLoop.
type LoopDeclaration struct {
	Token       token.Token
	Type        TypeExpr // Optional annotation
	Variable    *Token
	Initializer Expression
}

func (ld *LoopDeclaration) Accept(v Visitor)      { v.VisitLoopDeclaration(ld) }
func (ld *LoopDeclaration) TokenLiteral() string  { return ld.Token.Lexeme }
func (ld *LoopDeclaration) GetToken() token.Token { return ld.Token }

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)      { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
