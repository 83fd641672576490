package ast

// Visitor has one method per node kind. Accept dispatches to the method
// matching the node's concrete type.
type Visitor interface {
	VisitProgram(n *Program)
	VisitBlock(n *Block)
	VisitToken(n *Token)

	VisitVariableDeclaration(n *VariableDeclaration)
	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitParameter(n *Parameter)
	VisitPrintStatement(n *PrintStatement)
	VisitAssignment(n *Assignment)
	VisitBump(n *Bump)
	VisitBreakStatement(n *BreakStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitIfStatement(n *IfStatement)
	VisitElseIf(n *ElseIf)
	VisitWhileStatement(n *WhileStatement)
	VisitForLoop(n *ForLoop)
	VisitLoopDeclaration(n *LoopDeclaration)
	VisitExpressionStatement(n *ExpressionStatement)

	VisitConditional(n *Conditional)
	VisitBinaryExpression(n *BinaryExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitArrayExpression(n *ArrayExpression)
	VisitEmptyArray(n *EmptyArray)
	VisitEmptyOptional(n *EmptyOptional)
	VisitSubscript(n *Subscript)
	VisitCall(n *Call)

	VisitNamedType(n *NamedType)
	VisitArrayType(n *ArrayType)
	VisitOptionalType(n *OptionalType)
}
