package ast

import (
	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/source"
)

// Constructors below are the arena's sole allocation surface: every node
// the parser builds goes through one of these, never a bare composite
// literal, so Arena stays the single owner for the tree's whole lifetime.

func (a *Arena) NewProgram(loc source.Location) *Program {
	n := a.programs.alloc()
	n.Location = loc
	return n
}

func (a *Arena) NewBlock(loc source.Location) *Block {
	n := a.blocks.alloc()
	n.Location = loc
	return n
}

func (a *Arena) NewSetAssign(name string, value Expression, loc source.Location) *SetAssign {
	n := a.setAssigns.alloc()
	n.Name, n.Value, n.Location = name, value, loc
	return n
}

func (a *Arena) NewTypedAssign(name string, typ TypeNode, value Expression, loc source.Location) *TypedAssign {
	n := a.typedAssigns.alloc()
	n.Name, n.Type, n.Value, n.Location = name, typ, value, loc
	return n
}

func (a *Arena) NewIndexAssign(target, value Expression, loc source.Location) *IndexAssign {
	n := a.indexAssigns.alloc()
	n.Target, n.Value, n.Location = target, value, loc
	return n
}

func (a *Arena) NewParam(name string, typ TypeNode, loc source.Location) *Param {
	n := a.params.alloc()
	n.Name, n.Type, n.Location = name, typ, loc
	return n
}

func (a *Arena) NewFunctionDef(name string, params []*Param, returnType TypeNode, body *Block, loc source.Location) *FunctionDef {
	n := a.functionDefs.alloc()
	n.Name, n.Params, n.ReturnType, n.Body, n.Location = name, params, returnType, body, loc
	return n
}

func (a *Arena) NewReturnStmt(value Expression, loc source.Location) *ReturnStmt {
	n := a.returnStmts.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewElseIf(cond Expression, body *Block, loc source.Location) *ElseIf {
	n := a.elseIfs.alloc()
	n.Condition, n.Body, n.Location = cond, body, loc
	return n
}

func (a *Arena) NewIfStmt(cond Expression, thenBody *Block, elseIfs []*ElseIf, elseBody *Block, loc source.Location) *IfStmt {
	n := a.ifStmts.alloc()
	n.Condition, n.ThenBody, n.ElseIfs, n.ElseBody, n.Location = cond, thenBody, elseIfs, elseBody, loc
	return n
}

func (a *Arena) NewWhileLoop(cond Expression, body *Block, parallel bool, loc source.Location) *WhileLoop {
	n := a.whileLoops.alloc()
	n.Condition, n.Body, n.Parallel, n.Location = cond, body, parallel, loc
	return n
}

func (a *Arena) NewForLoop(variable string, iterable Expression, body *Block, parallel bool, loc source.Location) *ForLoop {
	n := a.forLoops.alloc()
	n.Variable, n.Iterable, n.Body, n.Parallel, n.Location = variable, iterable, body, parallel, loc
	return n
}

func (a *Arena) NewParallelBlock(body *Block, loc source.Location) *ParallelBlock {
	n := a.parallelBlocks.alloc()
	n.Body, n.Location = body, loc
	return n
}

func (a *Arena) NewBreakStmt(value Expression, loc source.Location) *BreakStmt {
	n := a.breakStmts.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewContinueStmt(loc source.Location) *ContinueStmt {
	n := a.continueStmts.alloc()
	n.Location = loc
	return n
}

func (a *Arena) NewTryCatch(tryExpr *TryExpr, catchVar string, hasCatchVar bool, catchBody *Block, loc source.Location) *TryCatch {
	n := a.tryCatches.alloc()
	n.TryExpr, n.CatchVar, n.HasCatchVar, n.CatchBody, n.Location = tryExpr, catchVar, hasCatchVar, catchBody, loc
	return n
}

func (a *Arena) NewExprStmt(x Expression, loc source.Location) *ExprStmt {
	n := a.exprStmts.alloc()
	n.X, n.Location = x, loc
	return n
}

func (a *Arena) NewIntLiteral(value string, loc source.Location) *IntLiteral {
	n := a.intLiterals.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewFloatLiteral(value string, loc source.Location) *FloatLiteral {
	n := a.floatLiterals.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewStringLiteral(value string, loc source.Location) *StringLiteral {
	n := a.stringLiterals.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewBoolLiteral(value bool, loc source.Location) *BoolLiteral {
	n := a.boolLiterals.alloc()
	n.Value, n.Location = value, loc
	return n
}

func (a *Arena) NewNullLiteral(loc source.Location) *NullLiteral {
	n := a.nullLiterals.alloc()
	n.Location = loc
	return n
}

func (a *Arena) NewVariable(name string, loc source.Location) *Variable {
	n := a.variables.alloc()
	n.Name, n.Location = name, loc
	return n
}

func (a *Arena) NewBinaryOp(op BinaryOperator, left, right Expression, loc source.Location) *BinaryOp {
	n := a.binaryOps.alloc()
	n.Op, n.Left, n.Right, n.Location = op, left, right, loc
	return n
}

func (a *Arena) NewUnaryOp(op UnaryOperator, operand Expression, loc source.Location) *UnaryOp {
	n := a.unaryOps.alloc()
	n.Op, n.Operand, n.Location = op, operand, loc
	return n
}

func (a *Arena) NewCall(callee Expression, args []Expression, loc source.Location) *Call {
	n := a.calls.alloc()
	n.Callee, n.Args, n.Location = callee, args, loc
	return n
}

func (a *Arena) NewArrayLiteral(elements []Expression, loc source.Location) *ArrayLiteral {
	n := a.arrayLiterals.alloc()
	n.Elements, n.Location = elements, loc
	return n
}

func (a *Arena) NewIndexExpr(target, index Expression, loc source.Location) *IndexExpr {
	n := a.indexExprs.alloc()
	n.Target, n.Index, n.Location = target, index, loc
	return n
}

func (a *Arena) NewRange(start, end Expression, inclusive bool, loc source.Location) *Range {
	n := a.ranges.alloc()
	n.Start, n.End, n.Inclusive, n.Location = start, end, inclusive, loc
	return n
}

func (a *Arena) NewTryExpr(x Expression, loc source.Location) *TryExpr {
	n := a.tryExprs.alloc()
	n.X, n.Location = x, loc
	return n
}

func (a *Arena) NewPrimitiveType(name langtypes.TYPE_NAME, loc source.Location) *PrimitiveTypeNode {
	n := a.primitiveTypes.alloc()
	n.Name, n.Location = name, loc
	return n
}

func (a *Arena) NewArrayType(length int, elem TypeNode, loc source.Location) *ArrayTypeNode {
	n := a.arrayTypes.alloc()
	n.Len, n.Elem, n.Location = length, elem, loc
	return n
}

func (a *Arena) NewSliceType(elem TypeNode, loc source.Location) *SliceTypeNode {
	n := a.sliceTypes.alloc()
	n.Elem, n.Location = elem, loc
	return n
}

func (a *Arena) NewErrorUnionType(ok, err TypeNode, loc source.Location) *ErrorUnionTypeNode {
	n := a.errorUnionTypes.alloc()
	n.Ok, n.Err, n.Location = ok, err, loc
	return n
}
