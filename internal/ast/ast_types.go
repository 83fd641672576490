package ast

import (
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// TypeExpr is a type as written in source. Analysis attaches the type it
// denotes.
type TypeExpr interface {
	Node
	typeExprNode()
	GetToken() token.Token
	ResolvedType() typesystem.Type
	SetType(t typesystem.Type)
}

// NamedType is a type name such as chip or stringBet. Name resolves to a
// type entity.
type NamedType struct {
	Name *Token
	Typed
}

func (nt *NamedType) Accept(v Visitor)     { v.VisitNamedType(nt) }
func (nt *NamedType) typeExprNode()        {}
func (nt *NamedType) TokenLiteral() string { return nt.Name.Lexeme() }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil || nt.Name == nil {
		return token.Token{}
	}
	return nt.Name.Token
}

// ArrayType: flop T
type ArrayType struct {
	Token token.Token
	Elem  TypeExpr
	Typed
}

func (at *ArrayType) Accept(v Visitor)      { v.VisitArrayType(at) }
func (at *ArrayType) typeExprNode()         {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }

// OptionalType: T?
type OptionalType struct {
	Token token.Token
	Elem  TypeExpr
	Typed
}

func (ot *OptionalType) Accept(v Visitor)      { v.VisitOptionalType(ot) }
func (ot *OptionalType) typeExprNode()         {}
func (ot *OptionalType) TokenLiteral() string  { return ot.Token.Lexeme }
func (ot *OptionalType) GetToken() token.Token { return ot.Token }

// Named returns a NamedType for a type keyword.
func Named(name string) *NamedType {
	return &NamedType{Name: Sym(name)}
}
