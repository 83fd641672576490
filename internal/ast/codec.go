package ast

import (
	"fmt"
	"os"
	"strconv"

	"github.com/funvibe/pokerscript/internal/token"
	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed tree document. Line and Column point into
// the YAML source, not into the program the tree describes.
type DecodeError struct {
	Line, Column int
	Msg          string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tree:%d:%d: %s", e.Line, e.Column, e.Msg)
}

func decodeErrorf(n *yaml.Node, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

// DecodeFile reads and decodes a tree file. JSON trees are accepted too,
// JSON being a subset of YAML.
func DecodeFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	prog, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.File = path
	return prog, nil
}

// Decode builds a Program from a serialized tree. Every node is a mapping
// with a kind key; tokens use their category as kind:
//
//	kind: VariableDeclaration
//	type: chip
//	variable: {kind: Id, lexeme: x, line: 1, column: 6}
//	initializer: {kind: Int, lexeme: "1", line: 1, column: 9}
//
// A type may be written as a bare scalar, which stands for a NamedType.
// Missing children are left nil; whether they are required is for the
// analyzer to decide.
func Decode(data []byte) (*Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &DecodeError{Msg: "empty tree document"}
	}
	root := doc.Content[0]
	n, err := decodeNode(root)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*Program)
	if !ok {
		return nil, decodeErrorf(root, "root must be a Program, got %T", n)
	}
	return prog, nil
}

// fields indexes a mapping node by key.
type fields struct {
	node *yaml.Node
	m    map[string]*yaml.Node
}

func fieldsOf(n *yaml.Node) (*fields, error) {
	if n.Kind != yaml.MappingNode {
		return nil, decodeErrorf(n, "expected a mapping")
	}
	f := &fields{node: n, m: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		f.m[n.Content[i].Value] = n.Content[i+1]
	}
	return f, nil
}

// get returns the child under key, or nil when it is absent or null.
func (f *fields) get(key string) *yaml.Node {
	n, ok := f.m[key]
	if !ok || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return nil
	}
	return n
}

func (f *fields) strField(key string) string {
	if n := f.get(key); n != nil && n.Kind == yaml.ScalarNode {
		return n.Value
	}
	return ""
}

func (f *fields) intField(key string) (int, error) {
	n := f.get(key)
	if n == nil {
		return 0, nil
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, decodeErrorf(n, "%s must be an integer", key)
	}
	return v, nil
}

// pos builds the node's own token from optional line/column keys.
func (f *fields) pos(lexeme string) (token.Token, error) {
	line, err := f.intField("line")
	if err != nil {
		return token.Token{}, err
	}
	col, err := f.intField("column")
	if err != nil {
		return token.Token{}, err
	}
	return token.Token{Category: token.SYMBOL, Lexeme: lexeme, Line: line, Column: col}, nil
}

type nodeDecoder func(f *fields) (Node, error)

var nodeDecoders map[string]nodeDecoder

func init() {
	nodeDecoders = map[string]nodeDecoder{
		"Program":             decodeProgram,
		"Block":               func(f *fields) (Node, error) { return decodeBlockFields(f) },
		"VariableDeclaration": decodeVariableDeclaration,
		"FunctionDeclaration": decodeFunctionDeclaration,
		"Parameter":           func(f *fields) (Node, error) { return decodeParameterFields(f) },
		"PrintStatement":      decodePrintStatement,
		"Assignment":          decodeAssignment,
		"Bump":                func(f *fields) (Node, error) { return decodeBumpFields(f) },
		"BreakStatement":      decodeBreakStatement,
		"ReturnStatement":     decodeReturnStatement,
		"IfStatement":         decodeIfStatement,
		"ElseIf":              func(f *fields) (Node, error) { return decodeElseIfFields(f) },
		"WhileStatement":      decodeWhileStatement,
		"ForLoop":             decodeForLoop,
		"LoopDeclaration":     func(f *fields) (Node, error) { return decodeLoopDeclarationFields(f) },
		"ExpressionStatement": decodeExpressionStatement,
		"Conditional":         decodeConditional,
		"BinaryExpression":    decodeBinaryExpression,
		"UnaryExpression":     decodeUnaryExpression,
		"ArrayExpression":     decodeArrayExpression,
		"EmptyArray":          decodeEmptyArray,
		"EmptyOptional":       decodeEmptyOptional,
		"Subscript":           decodeSubscript,
		"Call":                decodeCall,
		"NamedType":           decodeNamedType,
		"ArrayType":           decodeArrayType,
		"OptionalType":        decodeOptionalType,
	}
}

func decodeNode(n *yaml.Node) (Node, error) {
	f, err := fieldsOf(n)
	if err != nil {
		return nil, err
	}
	kind := f.strField("kind")
	if kind == "" {
		return nil, decodeErrorf(n, "node has no kind")
	}
	if token.Category(kind).IsValid() {
		return decodeTokenFields(f)
	}
	dec, ok := nodeDecoders[kind]
	if !ok {
		return nil, decodeErrorf(n, "unknown node kind %q", kind)
	}
	return dec(f)
}

func decodeTokenFields(f *fields) (*Token, error) {
	line, err := f.intField("line")
	if err != nil {
		return nil, err
	}
	col, err := f.intField("column")
	if err != nil {
		return nil, err
	}
	return NewToken(token.Category(f.strField("kind")), f.strField("lexeme"), line, col), nil
}

// Typed child accessors. Each returns nil for an absent child.

func childToken(f *fields, key string) (*Token, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	tf, err := fieldsOf(n)
	if err != nil {
		return nil, err
	}
	if !token.Category(tf.strField("kind")).IsValid() {
		return nil, decodeErrorf(n, "%s must be a token", key)
	}
	return decodeTokenFields(tf)
}

func childExpression(f *fields, key string) (Expression, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	return expressionOf(n)
}

func expressionOf(n *yaml.Node) (Expression, error) {
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	e, ok := node.(Expression)
	if !ok {
		return nil, decodeErrorf(n, "expected an expression, got %T", node)
	}
	return e, nil
}

func childExpressions(f *fields, key string) ([]Expression, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, decodeErrorf(n, "%s must be a list", key)
	}
	exprs := make([]Expression, 0, len(n.Content))
	for _, item := range n.Content {
		e, err := expressionOf(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// childStatements decodes a statement list. A bare expression in statement
// position, typically a call, is wrapped in an ExpressionStatement.
func childStatements(f *fields, key string) ([]Statement, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, decodeErrorf(n, "%s must be a list", key)
	}
	stmts := make([]Statement, 0, len(n.Content))
	for _, item := range n.Content {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		switch s := node.(type) {
		case Statement:
			stmts = append(stmts, s)
		case Expression:
			stmts = append(stmts, &ExpressionStatement{Token: s.GetToken(), Expression: s})
		default:
			return nil, decodeErrorf(item, "expected a statement, got %T", node)
		}
	}
	return stmts, nil
}

func childTypeExpr(f *fields, key string) (TypeExpr, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	return typeExprOf(n)
}

func typeExprOf(n *yaml.Node) (TypeExpr, error) {
	if n.Kind == yaml.ScalarNode {
		return &NamedType{Name: NewToken(token.SYMBOL, n.Value, 0, 0)}, nil
	}
	node, err := decodeNode(n)
	if err != nil {
		return nil, err
	}
	t, ok := node.(TypeExpr)
	if !ok {
		return nil, decodeErrorf(n, "expected a type, got %T", node)
	}
	return t, nil
}

func childBlock(f *fields, key string) (*Block, error) {
	n := f.get(key)
	if n == nil {
		return nil, nil
	}
	// A plain list is accepted as a block's statements.
	if n.Kind == yaml.SequenceNode {
		wrapped := &yaml.Node{Kind: yaml.MappingNode, Line: n.Line, Column: n.Column, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "statements"}, n,
		}}
		bf, _ := fieldsOf(wrapped)
		return decodeBlockFields(bf)
	}
	bf, err := fieldsOf(n)
	if err != nil {
		return nil, err
	}
	if k := bf.strField("kind"); k != "" && k != "Block" {
		return nil, decodeErrorf(n, "%s must be a Block, got %s", key, k)
	}
	return decodeBlockFields(bf)
}

func decodeProgram(f *fields) (Node, error) {
	stmts, err := childStatements(f, "statements")
	if err != nil {
		return nil, err
	}
	return &Program{File: f.strField("file"), Statements: stmts}, nil
}

func decodeBlockFields(f *fields) (*Block, error) {
	tok, err := f.pos("{")
	if err != nil {
		return nil, err
	}
	stmts, err := childStatements(f, "statements")
	if err != nil {
		return nil, err
	}
	return &Block{Token: tok, Statements: stmts}, nil
}

func decodeVariableDeclaration(f *fields) (Node, error) {
	d := &VariableDeclaration{}
	var err error
	if d.Modifier, err = childToken(f, "modifier"); err != nil {
		return nil, err
	}
	if d.Type, err = childTypeExpr(f, "type"); err != nil {
		return nil, err
	}
	if d.Variable, err = childToken(f, "variable"); err != nil {
		return nil, err
	}
	if d.Initializer, err = childExpression(f, "initializer"); err != nil {
		return nil, err
	}
	d.Token = firstToken(d.Modifier, d.Variable)
	return d, nil
}

func decodeFunctionDeclaration(f *fields) (Node, error) {
	d := &FunctionDeclaration{}
	var err error
	if d.Token, err = f.pos("straddle"); err != nil {
		return nil, err
	}
	if d.ReturnType, err = childTypeExpr(f, "returnType"); err != nil {
		return nil, err
	}
	if d.Name, err = childToken(f, "name"); err != nil {
		return nil, err
	}
	if n := f.get("parameters"); n != nil {
		if n.Kind != yaml.SequenceNode {
			return nil, decodeErrorf(n, "parameters must be a list")
		}
		for _, item := range n.Content {
			pf, err := fieldsOf(item)
			if err != nil {
				return nil, err
			}
			p, err := decodeParameterFields(pf)
			if err != nil {
				return nil, err
			}
			d.Parameters = append(d.Parameters, p)
		}
	}
	if d.Body, err = childBlock(f, "body"); err != nil {
		return nil, err
	}
	if d.Token.Line == 0 && d.Name != nil {
		d.Token = d.Name.Token
	}
	return d, nil
}

func decodeParameterFields(f *fields) (*Parameter, error) {
	p := &Parameter{}
	var err error
	if p.Type, err = childTypeExpr(f, "type"); err != nil {
		return nil, err
	}
	if p.Name, err = childToken(f, "name"); err != nil {
		return nil, err
	}
	return p, nil
}

func decodePrintStatement(f *fields) (Node, error) {
	tok, err := f.pos("reveal")
	if err != nil {
		return nil, err
	}
	arg, err := childExpression(f, "argument")
	if err != nil {
		return nil, err
	}
	return &PrintStatement{Token: tok, Argument: arg}, nil
}

func decodeAssignment(f *fields) (Node, error) {
	op := f.strField("op")
	if op == "" {
		op = ":"
	}
	a := &Assignment{Op: op}
	var err error
	if a.Token, err = f.pos(op); err != nil {
		return nil, err
	}
	if a.Target, err = childExpression(f, "target"); err != nil {
		return nil, err
	}
	if a.Source, err = childExpression(f, "source"); err != nil {
		return nil, err
	}
	if a.Token.Line == 0 && a.Target != nil {
		a.Token = withLexeme(a.Target.GetToken(), op)
	}
	return a, nil
}

func decodeBumpFields(f *fields) (*Bump, error) {
	b := &Bump{Op: f.strField("op")}
	var err error
	if b.Token, err = f.pos(b.Op); err != nil {
		return nil, err
	}
	if b.Operand, err = childExpression(f, "operand"); err != nil {
		return nil, err
	}
	if b.Token.Line == 0 && b.Operand != nil {
		b.Token = withLexeme(b.Operand.GetToken(), b.Op)
	}
	return b, nil
}

func decodeBreakStatement(f *fields) (Node, error) {
	tok, err := f.pos("fold")
	if err != nil {
		return nil, err
	}
	return &BreakStatement{Token: tok}, nil
}

func decodeReturnStatement(f *fields) (Node, error) {
	tok, err := f.pos("cashout")
	if err != nil {
		return nil, err
	}
	e, err := childExpression(f, "expression")
	if err != nil {
		return nil, err
	}
	return &ReturnStatement{Token: tok, Expression: e}, nil
}

func decodeIfStatement(f *fields) (Node, error) {
	s := &IfStatement{}
	var err error
	if s.Token, err = f.pos("excuses"); err != nil {
		return nil, err
	}
	if s.Test, err = childExpression(f, "test"); err != nil {
		return nil, err
	}
	if s.Consequent, err = childBlock(f, "consequent"); err != nil {
		return nil, err
	}
	if n := f.get("alternates"); n != nil {
		if n.Kind != yaml.SequenceNode {
			return nil, decodeErrorf(n, "alternates must be a list")
		}
		for _, item := range n.Content {
			af, err := fieldsOf(item)
			if err != nil {
				return nil, err
			}
			alt, err := decodeElseIfFields(af)
			if err != nil {
				return nil, err
			}
			s.Alternates = append(s.Alternates, alt)
		}
	}
	if s.Else, err = childBlock(f, "else"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeElseIfFields(f *fields) (*ElseIf, error) {
	e := &ElseIf{}
	var err error
	if e.Token, err = f.pos("followingExcuses"); err != nil {
		return nil, err
	}
	if e.Test, err = childExpression(f, "test"); err != nil {
		return nil, err
	}
	if e.Consequent, err = childBlock(f, "consequent"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeWhileStatement(f *fields) (Node, error) {
	s := &WhileStatement{}
	var err error
	if s.Token, err = f.pos("contemplating"); err != nil {
		return nil, err
	}
	if s.Test, err = childExpression(f, "test"); err != nil {
		return nil, err
	}
	if s.Body, err = childBlock(f, "body"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeForLoop(f *fields) (Node, error) {
	l := &ForLoop{}
	var err error
	if l.Token, err = f.pos("playingLoose"); err != nil {
		return nil, err
	}
	if n := f.get("declaration"); n != nil {
		df, err := fieldsOf(n)
		if err != nil {
			return nil, err
		}
		if l.Declaration, err = decodeLoopDeclarationFields(df); err != nil {
			return nil, err
		}
	}
	if l.Test, err = childExpression(f, "test"); err != nil {
		return nil, err
	}
	if n := f.get("update"); n != nil {
		uf, err := fieldsOf(n)
		if err != nil {
			return nil, err
		}
		if l.Update, err = decodeBumpFields(uf); err != nil {
			return nil, err
		}
	}
	if l.Body, err = childBlock(f, "body"); err != nil {
		return nil, err
	}
	return l, nil
}

func decodeLoopDeclarationFields(f *fields) (*LoopDeclaration, error) {
	d := &LoopDeclaration{}
	var err error
	if d.Type, err = childTypeExpr(f, "type"); err != nil {
		return nil, err
	}
	if d.Variable, err = childToken(f, "variable"); err != nil {
		return nil, err
	}
	if d.Initializer, err = childExpression(f, "initializer"); err != nil {
		return nil, err
	}
	d.Token = firstToken(d.Variable)
	return d, nil
}

func decodeExpressionStatement(f *fields) (Node, error) {
	e, err := childExpression(f, "expression")
	if err != nil {
		return nil, err
	}
	s := &ExpressionStatement{Expression: e}
	if e != nil {
		s.Token = e.GetToken()
	}
	return s, nil
}

func decodeConditional(f *fields) (Node, error) {
	c := &Conditional{}
	var err error
	if c.Token, err = f.pos("?"); err != nil {
		return nil, err
	}
	if c.Test, err = childExpression(f, "test"); err != nil {
		return nil, err
	}
	if c.Consequent, err = childExpression(f, "consequent"); err != nil {
		return nil, err
	}
	if c.Alternate, err = childExpression(f, "alternate"); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeBinaryExpression(f *fields) (Node, error) {
	e := &BinaryExpression{Op: f.strField("op")}
	var err error
	if e.Token, err = f.pos(e.Op); err != nil {
		return nil, err
	}
	if e.Left, err = childExpression(f, "left"); err != nil {
		return nil, err
	}
	if e.Right, err = childExpression(f, "right"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeUnaryExpression(f *fields) (Node, error) {
	e := &UnaryExpression{Op: f.strField("op")}
	var err error
	if e.Token, err = f.pos(e.Op); err != nil {
		return nil, err
	}
	if e.Operand, err = childExpression(f, "operand"); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeArrayExpression(f *fields) (Node, error) {
	tok, err := f.pos("[")
	if err != nil {
		return nil, err
	}
	elems, err := childExpressions(f, "elements")
	if err != nil {
		return nil, err
	}
	return &ArrayExpression{Token: tok, Elements: elems}, nil
}

func decodeEmptyArray(f *fields) (Node, error) {
	tok, err := f.pos("[]")
	if err != nil {
		return nil, err
	}
	t, err := childTypeExpr(f, "elementType")
	if err != nil {
		return nil, err
	}
	return &EmptyArray{Token: tok, ElementType: t}, nil
}

func decodeEmptyOptional(f *fields) (Node, error) {
	tok, err := f.pos("no")
	if err != nil {
		return nil, err
	}
	t, err := childTypeExpr(f, "elementType")
	if err != nil {
		return nil, err
	}
	return &EmptyOptional{Token: tok, ElementType: t}, nil
}

func decodeSubscript(f *fields) (Node, error) {
	s := &Subscript{}
	var err error
	if s.Token, err = f.pos("["); err != nil {
		return nil, err
	}
	if s.Array, err = childExpression(f, "array"); err != nil {
		return nil, err
	}
	if s.Index, err = childExpression(f, "index"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCall(f *fields) (Node, error) {
	c := &Call{}
	var err error
	if c.Token, err = f.pos("("); err != nil {
		return nil, err
	}
	if c.Callee, err = childExpression(f, "callee"); err != nil {
		return nil, err
	}
	if c.Args, err = childExpressions(f, "args"); err != nil {
		return nil, err
	}
	if c.Token.Line == 0 && c.Callee != nil {
		c.Token = withLexeme(c.Callee.GetToken(), "(")
	}
	return c, nil
}

func decodeNamedType(f *fields) (Node, error) {
	name, err := childToken(f, "name")
	if err != nil {
		return nil, err
	}
	return &NamedType{Name: name}, nil
}

func decodeArrayType(f *fields) (Node, error) {
	tok, err := f.pos("flop")
	if err != nil {
		return nil, err
	}
	elem, err := childTypeExpr(f, "elem")
	if err != nil {
		return nil, err
	}
	return &ArrayType{Token: tok, Elem: elem}, nil
}

func decodeOptionalType(f *fields) (Node, error) {
	tok, err := f.pos("?")
	if err != nil {
		return nil, err
	}
	elem, err := childTypeExpr(f, "elem")
	if err != nil {
		return nil, err
	}
	return &OptionalType{Token: tok, Elem: elem}, nil
}

func firstToken(leaves ...*Token) token.Token {
	for _, l := range leaves {
		if l != nil {
			return l.Token
		}
	}
	return token.Token{}
}

func withLexeme(tok token.Token, lexeme string) token.Token {
	tok.Category = token.SYMBOL
	tok.Lexeme = lexeme
	return tok
}
