package ast

import "github.com/melihbirim/1im-pl/internal/source"

// IntLiteral is an integer literal; Value is its source lexeme. The analyzer
// types it as the int_lit placeholder (§4.4) until unified against a
// concrete integer type.
type IntLiteral struct {
	Value string
	source.Location
}

func (n *IntLiteral) INode()                {}
func (n *IntLiteral) Expr()                 {}
func (n *IntLiteral) Loc() *source.Location { return &n.Location }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Value string
	source.Location
}

func (n *FloatLiteral) INode()                {}
func (n *FloatLiteral) Expr()                 {}
func (n *FloatLiteral) Loc() *source.Location { return &n.Location }

// StringLiteral carries the raw lexeme between the quotes, unescaped.
type StringLiteral struct {
	Value string
	source.Location
}

func (n *StringLiteral) INode()                {}
func (n *StringLiteral) Expr()                 {}
func (n *StringLiteral) Loc() *source.Location { return &n.Location }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
	source.Location
}

func (n *BoolLiteral) INode()                {}
func (n *BoolLiteral) Expr()                 {}
func (n *BoolLiteral) Loc() *source.Location { return &n.Location }

// NullLiteral is `null`.
type NullLiteral struct {
	source.Location
}

func (n *NullLiteral) INode()                {}
func (n *NullLiteral) Expr()                 {}
func (n *NullLiteral) Loc() *source.Location { return &n.Location }

// Variable is a bare identifier reference.
type Variable struct {
	Name string
	source.Location
}

func (n *Variable) INode()                {}
func (n *Variable) Expr()                 {}
func (n *Variable) Loc() *source.Location { return &n.Location }

// BinaryOp is a two-operand expression; Op fixes which of the thirteen
// binary operators it is.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
	source.Location
}

func (n *BinaryOp) INode()                {}
func (n *BinaryOp) Expr()                 {}
func (n *BinaryOp) Loc() *source.Location { return &n.Location }

// UnaryOp is a one-operand expression: `-E` or `not E`.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
	source.Location
}

func (n *UnaryOp) INode()                {}
func (n *UnaryOp) Expr()                 {}
func (n *UnaryOp) Loc() *source.Location { return &n.Location }

// Call is a function call; Callee must resolve to a bare Variable naming a
// declared function (§4.2's InvalidCallTarget rule), but is kept as a
// general Expression here so the parser can still report a precise
// location when that rule is violated.
type Call struct {
	Callee Expression
	Args   []Expression
	source.Location
}

func (n *Call) INode()                {}
func (n *Call) Expr()                 {}
func (n *Call) Loc() *source.Location { return &n.Location }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Elements []Expression
	source.Location
}

func (n *ArrayLiteral) INode()                {}
func (n *ArrayLiteral) Expr()                 {}
func (n *ArrayLiteral) Loc() *source.Location { return &n.Location }

// IndexExpr is `Target[Index]`.
type IndexExpr struct {
	Target Expression
	Index  Expression
	source.Location
}

func (n *IndexExpr) INode()                {}
func (n *IndexExpr) Expr()                 {}
func (n *IndexExpr) Loc() *source.Location { return &n.Location }

// Range is `start..end` (exclusive) or `start..=end` (inclusive); legal
// only as the iterable of a for_loop.
type Range struct {
	Start     Expression
	End       Expression
	Inclusive bool
	source.Location
}

func (n *Range) INode()                {}
func (n *Range) Expr()                 {}
func (n *Range) Loc() *source.Location { return &n.Location }

// TryExpr is the prefix `try E`: E must be an error-union producing
// expression. Legal only as the RHS of an assignment, inside a return, or
// as an expression-statement (enforced by the analyzer, §4.4); also the
// operand wrapped by a TryCatch.
type TryExpr struct {
	X Expression
	source.Location
}

func (n *TryExpr) INode()                {}
func (n *TryExpr) Expr()                 {}
func (n *TryExpr) Loc() *source.Location { return &n.Location }
