package ast

import (
	"github.com/funvibe/pokerscript/internal/token"
)

// Conditional is test ? consequent : alternate.
type Conditional struct {
	Token      token.Token // The '?' token
	Test       Expression
	Consequent Expression
	Alternate  Expression
	Typed
}

func (c *Conditional) Accept(v Visitor)      { v.VisitConditional(c) }
func (c *Conditional) expressionNode()       {}
func (c *Conditional) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Conditional) GetToken() token.Token { return c.Token }

// BinaryExpression applies an infix operator.
type BinaryExpression struct {
	Token token.Token // The operator token
	Op    string
	Left  Expression
	Right Expression
	Typed
}

func (be *BinaryExpression) Accept(v Visitor)      { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// UnaryExpression applies a prefix operator: -x or !x.
type UnaryExpression struct {
	Token   token.Token
	Op      string
	Operand Expression
	Typed
}

func (ue *UnaryExpression) Accept(v Visitor)      { v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

// ArrayExpression is a non-empty array literal, e.g. [1, 2, 3].
type ArrayExpression struct {
	Token    token.Token // The '[' token
	Elements []Expression
	Typed
}

func (ae *ArrayExpression) Accept(v Visitor)      { v.VisitArrayExpression(ae) }
func (ae *ArrayExpression) expressionNode()       {}
func (ae *ArrayExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *ArrayExpression) GetToken() token.Token { return ae.Token }

// EmptyArray is an empty array of an explicit element type.
type EmptyArray struct {
	Token       token.Token
	ElementType TypeExpr
	Typed
}

func (ea *EmptyArray) Accept(v Visitor)      { v.VisitEmptyArray(ea) }
func (ea *EmptyArray) expressionNode()       {}
func (ea *EmptyArray) TokenLiteral() string  { return ea.Token.Lexeme }
func (ea *EmptyArray) GetToken() token.Token { return ea.Token }

// EmptyOptional is the absent value of an explicit optional type.
type EmptyOptional struct {
	Token       token.Token
	ElementType TypeExpr
	Typed
}

func (eo *EmptyOptional) Accept(v Visitor)      { v.VisitEmptyOptional(eo) }
func (eo *EmptyOptional) expressionNode()       {}
func (eo *EmptyOptional) TokenLiteral() string  { return eo.Token.Lexeme }
func (eo *EmptyOptional) GetToken() token.Token { return eo.Token }

// Subscript represents indexing, e.g. arr[i]
type Subscript struct {
	Token token.Token // The '[' token
	Array Expression
	Index Expression
	Typed
}

func (s *Subscript) Accept(v Visitor)      { v.VisitSubscript(s) }
func (s *Subscript) expressionNode()       {}
func (s *Subscript) TokenLiteral() string  { return s.Token.Lexeme }
func (s *Subscript) GetToken() token.Token { return s.Token }

// Call represents a function call, e.g. hypot(3.0, 4.0)
type Call struct {
	Token  token.Token // The '(' token
	Callee Expression
	Args   []Expression
	Typed
}

func (c *Call) Accept(v Visitor)      { v.VisitCall(c) }
func (c *Call) expressionNode()       {}
func (c *Call) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token { return c.Token }
