package token

import "fmt"

// Category is the lexical category the upstream parser assigned to a leaf.
type Category string

const (
	IDENT  Category = "Id"
	INT    Category = "Int"
	FLOAT  Category = "Float"
	STRING Category = "Str"
	BOOL   Category = "Bool"
	SYMBOL Category = "Sym" // reserved words and punctuation
)

var categories = map[Category]bool{
	IDENT:  true,
	INT:    true,
	FLOAT:  true,
	STRING: true,
	BOOL:   true,
	SYMBOL: true,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	return categories[c]
}

// IsLiteral reports whether tokens of this category denote literal values.
func (c Category) IsLiteral() bool {
	switch c {
	case INT, FLOAT, STRING, BOOL:
		return true
	}
	return false
}

// Token is a lexical unit with its source position.
// Line and Column are 1-based; zero means the position is unknown.
type Token struct {
	Category Category
	Lexeme   string
	Line     int
	Column   int
}

// HasPosition reports whether the token carries a source position.
func (t Token) HasPosition() bool {
	return t.Line > 0
}

// Position renders the position prefix used in diagnostics.
func (t Token) Position() string {
	if !t.HasPosition() {
		return ""
	}
	return fmt.Sprintf("Line %d, col %d", t.Line, t.Column)
}

func (t Token) String() string {
	return fmt.Sprintf("(%s,%q)", t.Category, t.Lexeme)
}
