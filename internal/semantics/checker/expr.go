package checker

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

// checkExpr types an expression and reports any diagnostic along the way.
// tryAllowed is true only at the three legal propagation positions named by
// §4.4 — the RHS of an assignment/declaration, inside a return, or as a
// bare expression-statement — since those are the only spots a `try E`
// may appear without being paired with `catch`. Every recursive descent
// into a sub-expression passes tryAllowed=false.
func (c *Checker) checkExpr(e ast.Expression, tryAllowed bool) semantics.Type {
	t := c.checkExprKind(e, tryAllowed)
	if !c.suppress {
		c.info.ExprTypes[e] = t
	}
	return t
}

func (c *Checker) checkExprKind(e ast.Expression, tryAllowed bool) semantics.Type {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return &semantics.IntLitType{}
	case *ast.FloatLiteral:
		return &semantics.FloatLitType{}
	case *ast.StringLiteral:
		return &semantics.PrimitiveType{Name: langtypes.TYPE_STRING}
	case *ast.BoolLiteral:
		return &semantics.PrimitiveType{Name: langtypes.TYPE_BOOL}
	case *ast.NullLiteral:
		return &semantics.NullType{}
	case *ast.Variable:
		return c.checkVariable(x)
	case *ast.BinaryOp:
		return c.checkBinaryOp(x)
	case *ast.UnaryOp:
		return c.checkUnaryOp(x)
	case *ast.Call:
		return c.checkCall(x)
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(x)
	case *ast.IndexExpr:
		return c.checkIndexExpr(x)
	case *ast.TryExpr:
		if !tryAllowed {
			c.report(diagnostics.UnsupportedConstruct(c.filepath, x.Loc(), "try outside its three permitted positions"))
			c.checkExpr(x.X, false)
			return &semantics.Invalid{}
		}
		return c.checkTryPropagation(x)
	case *ast.Range:
		// Reached only if a range slips in outside a for_loop's iterable —
		// the parser already refuses that syntactically, so this is a
		// defensive fallback, not a reachable path in well-formed input.
		c.checkExpr(x.Start, false)
		c.checkExpr(x.End, false)
		return &semantics.Invalid{}
	}
	return &semantics.Invalid{}
}

func (c *Checker) checkVariable(x *ast.Variable) semantics.Type {
	sym, ok := c.scope.Lookup(x.Name)
	if !ok {
		c.report(diagnostics.UndefinedSymbol(c.filepath, x.Loc(), x.Name))
		return &semantics.Invalid{}
	}
	return sym.Type
}

func (c *Checker) checkBinaryOp(x *ast.BinaryOp) semantics.Type {
	lt := c.checkExpr(x.Left, false)
	rt := c.checkExpr(x.Right, false)

	switch x.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		result := combineNumeric(lt, rt)
		if semantics.IsInvalid(result) && !semantics.IsInvalid(lt) && !semantics.IsInvalid(rt) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Loc(), "matching numeric operands", lt.String()+" and "+rt.String()))
		}
		return result
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		if !semantics.IsInvalid(lt) && !semantics.IsInvalid(rt) && !typesComparable(lt, rt) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Loc(), lt.String(), rt.String()))
		}
		return &semantics.PrimitiveType{Name: langtypes.TYPE_BOOL}
	case ast.OpBoolAnd, ast.OpBoolOr:
		if !semantics.IsInvalid(lt) && !semantics.IsBool(lt) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Left.Loc(), "bool", lt.String()))
		}
		if !semantics.IsInvalid(rt) && !semantics.IsBool(rt) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Right.Loc(), "bool", rt.String()))
		}
		return &semantics.PrimitiveType{Name: langtypes.TYPE_BOOL}
	}
	return &semantics.Invalid{}
}

func (c *Checker) checkUnaryOp(x *ast.UnaryOp) semantics.Type {
	operand := c.checkExpr(x.Operand, false)
	switch x.Op {
	case ast.OpNegate:
		if !semantics.IsInvalid(operand) && !semantics.IsNumeric(operand) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Operand.Loc(), "a numeric type", operand.String()))
			return &semantics.Invalid{}
		}
		return operand
	case ast.OpBoolNot:
		if !semantics.IsInvalid(operand) && !semantics.IsBool(operand) {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Operand.Loc(), "bool", operand.String()))
		}
		return &semantics.PrimitiveType{Name: langtypes.TYPE_BOOL}
	}
	return &semantics.Invalid{}
}

// checkCall enforces §4.2's InvalidCallTarget rule (a call's callee must
// name a declared function) plus argument-count and per-argument
// assignability against the callee's collected signature.
func (c *Checker) checkCall(x *ast.Call) semantics.Type {
	name, ok := x.Callee.(*ast.Variable)
	if !ok {
		// Already reported by the parser (ErrInvalidCallTarget); still walk
		// the arguments so downstream undefined-symbol errors surface.
		for _, arg := range x.Args {
			c.checkExpr(arg, false)
		}
		return &semantics.Invalid{}
	}

	if _, shadowed := c.scope.Lookup(name.Name); !shadowed {
		switch name.Name {
		case "print":
			return c.checkPrintCall(x)
		case "len":
			return c.checkLenCall(x)
		}
	}

	sym, ok := c.scope.Lookup(name.Name)
	if !ok {
		c.report(diagnostics.UndefinedSymbol(c.filepath, name.Loc(), name.Name))
		for _, arg := range x.Args {
			c.checkExpr(arg, false)
		}
		return &semantics.Invalid{}
	}

	sig, ok := sym.Type.(*semantics.FunctionType)
	if !ok {
		c.report(diagnostics.NotCallable(c.filepath, name.Loc(), name.Name))
		for _, arg := range x.Args {
			c.checkExpr(arg, false)
		}
		return &semantics.Invalid{}
	}

	if len(x.Args) != len(sig.Params) {
		c.report(diagnostics.WrongArgumentCount(c.filepath, x.Loc(), len(sig.Params), len(x.Args)))
	}
	for i, arg := range x.Args {
		argType := c.checkExpr(arg, false)
		if i >= len(sig.Params) {
			continue
		}
		if !semantics.Assignable(sig.Params[i].Type, argType) {
			c.report(diagnostics.TypeMismatch(c.filepath, arg.Loc(), sig.Params[i].Type.String(), argType.String()))
		}
	}

	if sig.ReturnType == nil {
		return &semantics.Invalid{}
	}
	return sig.ReturnType
}

// checkPrintCall handles the print(x) built-in (§4.5): one argument of any
// primitive type, format chosen at codegen time by the argument's resolved
// type. print has no source-level return value.
func (c *Checker) checkPrintCall(x *ast.Call) semantics.Type {
	if len(x.Args) != 1 {
		c.report(diagnostics.WrongArgumentCount(c.filepath, x.Loc(), 1, len(x.Args)))
		for _, arg := range x.Args {
			c.checkExpr(arg, false)
		}
		return &semantics.PrimitiveType{Name: langtypes.TYPE_VOID}
	}
	argType := c.checkExpr(x.Args[0], false)
	if !semantics.IsInvalid(argType) {
		if _, isArray := argType.(*semantics.ArrayType); isArray {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Args[0].Loc(), "a primitive value", argType.String()))
		}
		if _, isErr := argType.(*semantics.ErrorUnionType); isErr {
			c.report(diagnostics.TypeMismatch(c.filepath, x.Args[0].Loc(), "a primitive value", argType.String()))
		}
	}
	return &semantics.PrimitiveType{Name: langtypes.TYPE_VOID}
}

// checkLenCall handles the len(x) built-in (§4.5): one argument of array or
// slice type, yielding an integer — this language has no dedicated usize
// primitive, so i32 is the resolved result type (consistent with the
// default a bare integer literal would otherwise take, §9).
func (c *Checker) checkLenCall(x *ast.Call) semantics.Type {
	if len(x.Args) != 1 {
		c.report(diagnostics.WrongArgumentCount(c.filepath, x.Loc(), 1, len(x.Args)))
		for _, arg := range x.Args {
			c.checkExpr(arg, false)
		}
		return &semantics.Invalid{}
	}
	argType := c.checkExpr(x.Args[0], false)
	if _, ok := argType.(*semantics.ArrayType); !ok {
		if !semantics.IsInvalid(argType) {
			c.report(diagnostics.NotIndexable(c.filepath, x.Args[0].Loc(), argType.String()))
		}
	}
	return &semantics.PrimitiveType{Name: langtypes.TYPE_I32}
}

// checkArrayLiteral requires at least one element (§4.4 — an empty array
// literal has no element type to infer) and every element assignable to
// the first element's resolved type.
func (c *Checker) checkArrayLiteral(x *ast.ArrayLiteral) semantics.Type {
	if len(x.Elements) == 0 {
		c.report(diagnostics.TypeMismatch(c.filepath, x.Loc(), "at least one element", "an empty array literal"))
		return &semantics.Invalid{}
	}

	first := c.checkExpr(x.Elements[0], false)
	elemType := semantics.Unify(nil, first)
	if elemType == nil {
		elemType = &semantics.Invalid{}
	}

	for _, elem := range x.Elements[1:] {
		t := c.checkExpr(elem, false)
		if !semantics.Assignable(elemType, t) {
			c.report(diagnostics.TypeMismatch(c.filepath, elem.Loc(), elemType.String(), t.String()))
		}
	}

	return &semantics.ArrayType{Fixed: true, Len: len(x.Elements), Elem: elemType}
}

func (c *Checker) checkIndexExpr(x *ast.IndexExpr) semantics.Type {
	targetType := c.checkExpr(x.Target, false)
	indexType := c.checkExpr(x.Index, false)

	if !semantics.IsInvalid(indexType) && !semantics.IsIntLit(indexType) && !isIntegerPrimitive(indexType) {
		c.report(diagnostics.IndexNotInteger(c.filepath, x.Index.Loc(), indexType.String()))
	}

	arr, ok := targetType.(*semantics.ArrayType)
	if !ok {
		if !semantics.IsInvalid(targetType) {
			c.report(diagnostics.NotIndexable(c.filepath, x.Target.Loc(), targetType.String()))
		}
		return &semantics.Invalid{}
	}
	return arr.Elem
}

// combineNumeric resolves the common type of a numeric binary operation,
// unifying literal placeholders toward whichever side is concrete (§4.4).
// Two literals of the same kind stay a placeholder (resolved later by
// whatever consumes the expression); mismatched literal kinds, or two
// differing concrete types, are an error signaled by returning Invalid.
func combineNumeric(lt, rt semantics.Type) semantics.Type {
	if semantics.IsInvalid(lt) || semantics.IsInvalid(rt) {
		return &semantics.Invalid{}
	}
	if !semantics.IsNumeric(lt) || !semantics.IsNumeric(rt) {
		return &semantics.Invalid{}
	}

	lLit, rLit := semantics.IsIntLit(lt) || semantics.IsFloatLit(lt), semantics.IsIntLit(rt) || semantics.IsFloatLit(rt)
	switch {
	case lLit && rLit:
		if semantics.IsIntLit(lt) == semantics.IsIntLit(rt) {
			return lt
		}
		return &semantics.Invalid{}
	case lLit && !rLit:
		if semantics.Unify(rt, lt) == nil {
			return &semantics.Invalid{}
		}
		return rt
	case !lLit && rLit:
		if semantics.Unify(lt, rt) == nil {
			return &semantics.Invalid{}
		}
		return lt
	default:
		if semantics.TypesEqual(lt, rt) {
			return lt
		}
		return &semantics.Invalid{}
	}
}

func typesComparable(lt, rt semantics.Type) bool {
	if semantics.IsNumeric(lt) && semantics.IsNumeric(rt) {
		return !semantics.IsInvalid(combineNumeric(lt, rt))
	}
	return semantics.TypesEqual(lt, rt)
}

func isIntegerPrimitive(t semantics.Type) bool {
	p, ok := t.(*semantics.PrimitiveType)
	return ok && p.Name.IsInteger()
}

func isFloatPrimitive(t semantics.Type) bool {
	p, ok := t.(*semantics.PrimitiveType)
	return ok && p.Name.IsFloat()
}
