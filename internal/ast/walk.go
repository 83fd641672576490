package ast

import "reflect"

// Inspect traverses a tree in depth-first order, calling fn for each
// non-nil node before its children. If fn returns false the children of
// that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if IsNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, fn)
		}
	case *Block:
		for _, s := range n.Statements {
			Inspect(s, fn)
		}
	case *Token:
		// leaf

	case *VariableDeclaration:
		inspectAll(fn, n.Modifier, n.Type, n.Variable, n.Initializer)
	case *FunctionDeclaration:
		inspectAll(fn, n.ReturnType, n.Name)
		for _, p := range n.Parameters {
			Inspect(p, fn)
		}
		inspectAll(fn, n.Body)
	case *Parameter:
		inspectAll(fn, n.Type, n.Name)
	case *PrintStatement:
		inspectAll(fn, n.Argument)
	case *Assignment:
		inspectAll(fn, n.Target, n.Source)
	case *Bump:
		inspectAll(fn, n.Operand)
	case *BreakStatement:
		// leaf
	case *ReturnStatement:
		inspectAll(fn, n.Expression)
	case *IfStatement:
		inspectAll(fn, n.Test, n.Consequent)
		for _, alt := range n.Alternates {
			Inspect(alt, fn)
		}
		inspectAll(fn, n.Else)
	case *ElseIf:
		inspectAll(fn, n.Test, n.Consequent)
	case *WhileStatement:
		inspectAll(fn, n.Test, n.Body)
	case *ForLoop:
		inspectAll(fn, n.Declaration, n.Test, n.Update, n.Body)
	case *LoopDeclaration:
		inspectAll(fn, n.Type, n.Variable, n.Initializer)
	case *ExpressionStatement:
		inspectAll(fn, n.Expression)

	case *Conditional:
		inspectAll(fn, n.Test, n.Consequent, n.Alternate)
	case *BinaryExpression:
		inspectAll(fn, n.Left, n.Right)
	case *UnaryExpression:
		inspectAll(fn, n.Operand)
	case *ArrayExpression:
		for _, e := range n.Elements {
			Inspect(e, fn)
		}
	case *EmptyArray:
		inspectAll(fn, n.ElementType)
	case *EmptyOptional:
		inspectAll(fn, n.ElementType)
	case *Subscript:
		inspectAll(fn, n.Array, n.Index)
	case *Call:
		inspectAll(fn, n.Callee)
		for _, a := range n.Args {
			Inspect(a, fn)
		}

	case *NamedType:
		inspectAll(fn, n.Name)
	case *ArrayType:
		inspectAll(fn, n.Elem)
	case *OptionalType:
		inspectAll(fn, n.Elem)
	}
}

func inspectAll(fn func(Node) bool, nodes ...Node) {
	for _, n := range nodes {
		Inspect(n, fn)
	}
}

// IsNil reports whether n is nil or a typed nil pointer, which is how an
// absent optional child looks once stored in a Node interface.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
