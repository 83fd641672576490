package ast

import (
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/token"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression. Every expression
// carries exactly one type once analysis succeeds.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	ResolvedType() typesystem.Type
	SetType(t typesystem.Type)
}

// Typed holds the type attached to a node during analysis.
type Typed struct {
	Type typesystem.Type
}

func (t *Typed) ResolvedType() typesystem.Type { return t.Type }
func (t *Typed) SetType(typ typesystem.Type)   { t.Type = typ }

// Program is the root node of every tree the analyzer accepts.
type Program struct {
	File       string // Source file path, if known
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 && p.Statements[0] != nil {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Block is a brace-delimited statement list. A Block does not open a scope
// by itself; the construct owning it decides.
type Block struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (b *Block) Accept(v Visitor)      { v.VisitBlock(b) }
func (b *Block) statementNode()        {}
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }

// Token is a lexical leaf: an identifier, a literal or a keyword symbol.
// Identifier leaves are decorated with the entity they resolve to; literal
// leaves with their parsed value.
type Token struct {
	Token token.Token
	Typed
	Entity symbols.Entity
	Value  any
}

func (t *Token) Accept(v Visitor)      { v.VisitToken(t) }
func (t *Token) expressionNode()       {}
func (t *Token) TokenLiteral() string  { return t.Token.Lexeme }
func (t *Token) GetToken() token.Token { return t.Token }

// Lexeme is shorthand for t.Token.Lexeme.
func (t *Token) Lexeme() string { return t.Token.Lexeme }

// Category is shorthand for t.Token.Category.
func (t *Token) Category() token.Category { return t.Token.Category }

// NewToken creates an undecorated leaf.
func NewToken(category token.Category, lexeme string, line, column int) *Token {
	return &Token{Token: token.Token{Category: category, Lexeme: lexeme, Line: line, Column: column}}
}

// Ident creates an identifier leaf without a position.
func Ident(name string) *Token {
	return NewToken(token.IDENT, name, 0, 0)
}

// Sym creates a keyword-symbol leaf without a position.
func Sym(lexeme string) *Token {
	return NewToken(token.SYMBOL, lexeme, 0, 0)
}
