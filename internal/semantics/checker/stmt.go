package checker

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

func (c *Checker) checkBlockStmts(stmts []ast.Node) {
	for _, n := range stmts {
		c.checkStmt(n)
	}
}

func (c *Checker) checkStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.SetAssign:
		c.checkSetAssign(s)
	case *ast.TypedAssign:
		c.checkTypedAssign(s)
	case *ast.IndexAssign:
		c.checkIndexAssign(s)
	case *ast.FunctionDef:
		c.checkFunctionDef(s)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s)
	case *ast.IfStmt:
		c.checkIfStmt(s)
	case *ast.WhileLoop:
		c.checkWhileLoop(s)
	case *ast.ForLoop:
		c.checkForLoop(s)
	case *ast.ParallelBlock:
		c.checkParallelBlock(s)
	case *ast.BreakStmt:
		c.checkBreakStmt(s)
	case *ast.ContinueStmt:
		c.checkContinueStmt(s)
	case *ast.TryCatch:
		c.checkTryCatch(s)
	case *ast.ExprStmt:
		c.checkExpr(s.X, true)
	}
}

// checkSetAssign resolves `set N to E` against the enclosing scope chain:
// if N is already visible anywhere, this is a reassignment and E must be
// assignable to N's existing type; otherwise it declares N, in the current
// scope, with E's (literal-resolved) type (§4.4).
func (c *Checker) checkSetAssign(s *ast.SetAssign) {
	valType := c.checkExpr(s.Value, true)

	if sym, ok := c.scope.Lookup(s.Name); ok {
		if _, isFn := sym.Type.(*semantics.FunctionType); isFn {
			c.report(diagnostics.RedeclaredSymbol(c.filepath, s.Loc(), sym.Decl.Loc(), s.Name))
			return
		}
		if _, isArray := sym.Type.(*semantics.ArrayType); isArray {
			c.report(diagnostics.UnsupportedConstruct(c.filepath, s.Loc(), "reassigning an array/slice binding as a whole — assign to an element instead"))
			return
		}
		if !semantics.Assignable(sym.Type, valType) {
			c.report(diagnostics.TypeMismatch(c.filepath, s.Value.Loc(), sym.Type.String(), valType.String()))
		}
		c.recordDecl(s, sym.Type)
		return
	}

	resolved := semantics.Unify(nil, valType)
	if resolved == nil {
		resolved = &semantics.Invalid{}
	}
	c.scope.Declare(semantics.NewSymbol(s.Name, semantics.SymbolVar, resolved, s))
	c.recordDecl(s, resolved)
	if !c.suppress {
		c.info.FirstDecl[s] = true
	}
}

// checkTypedAssign is always a declaration (§4.4); N must not already be
// visible in any enclosing scope (no shadowing).
func (c *Checker) checkTypedAssign(s *ast.TypedAssign) {
	declType := c.resolveType(s.Type)
	valType := c.checkExpr(s.Value, true)

	if prev, ok := c.scope.Lookup(s.Name); ok {
		c.report(diagnostics.RedeclaredSymbol(c.filepath, s.Loc(), prev.Decl.Loc(), s.Name))
		return
	}
	if !semantics.Assignable(declType, valType) {
		c.report(diagnostics.TypeMismatch(c.filepath, s.Value.Loc(), declType.String(), valType.String()))
	}
	c.scope.Declare(semantics.NewSymbol(s.Name, semantics.SymbolVar, declType, s))
	c.recordDecl(s, declType)
}

// checkIndexAssign is the only form that can mutate an array/slice element;
// the target's own checkExpr already enforces indexability and integer
// indices.
func (c *Checker) checkIndexAssign(s *ast.IndexAssign) {
	targetType := c.checkExpr(s.Target, false)
	valType := c.checkExpr(s.Value, true)

	arr, ok := targetType.(*semantics.ArrayType)
	if !ok {
		return // already diagnosed by checkExpr's IndexExpr handling
	}
	if !semantics.Assignable(arr.Elem, valType) {
		c.report(diagnostics.TypeMismatch(c.filepath, s.Value.Loc(), arr.Elem.String(), valType.String()))
	}
}

func (c *Checker) checkFunctionDef(fn *ast.FunctionDef) {
	sym, ok := c.global.LookupLocal(fn.Name)
	if !ok {
		return // already reported as redeclared during signature collection
	}
	sig, ok := sym.Type.(*semantics.FunctionType)
	if !ok {
		return
	}

	prevReturn, prevErrUnion, prevDepth := c.funcReturn, c.funcErrUnion, c.loopDepth
	c.funcReturn = sig.ReturnType
	c.funcErrUnion, _ = sig.ReturnType.(*semantics.ErrorUnionType)
	c.loopDepth = 0

	c.pushScope()
	for i, p := range fn.Params {
		if prev, ok := c.scope.Lookup(p.Name); ok {
			c.report(diagnostics.RedeclaredSymbol(c.filepath, p.Loc(), prev.Decl.Loc(), p.Name))
			continue
		}
		c.scope.Declare(semantics.NewSymbol(p.Name, semantics.SymbolParam, sig.Params[i].Type, p))
		c.recordDecl(p, sig.Params[i].Type)
	}
	c.checkBlockStmts(fn.Body.Stmts)
	c.popScope()

	if sig.ReturnType != nil {
		c.checkFunctionReturns(fn)
	}

	c.funcReturn, c.funcErrUnion, c.loopDepth = prevReturn, prevErrUnion, prevDepth
}

func (c *Checker) checkReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		if c.funcReturn != nil {
			c.report(diagnostics.TypeMismatch(c.filepath, s.Loc(), c.funcReturn.String(), "a bare return"))
		}
		return
	}
	if c.funcReturn == nil {
		c.checkExpr(s.Value, true)
		c.report(diagnostics.TypeMismatch(c.filepath, s.Value.Loc(), "no value (void function)", "a return value"))
		return
	}

	if tryExpr, ok := s.Value.(*ast.TryExpr); ok {
		c.checkTryPropagation(tryExpr)
		return
	}

	valType := c.checkExpr(s.Value, true)
	if !semantics.Assignable(c.funcReturn, valType) {
		c.report(diagnostics.TypeMismatch(c.filepath, s.Value.Loc(), c.funcReturn.String(), valType.String()))
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt) {
	c.checkCondition(s.Condition)
	c.pushScope()
	c.checkBlockStmts(s.ThenBody.Stmts)
	c.popScope()

	for _, ei := range s.ElseIfs {
		c.checkCondition(ei.Condition)
		c.pushScope()
		c.checkBlockStmts(ei.Body.Stmts)
		c.popScope()
	}

	if s.ElseBody != nil {
		c.pushScope()
		c.checkBlockStmts(s.ElseBody.Stmts)
		c.popScope()
	}
}

func (c *Checker) checkCondition(cond ast.Expression) {
	t := c.checkExpr(cond, false)
	if !semantics.IsInvalid(t) && !semantics.IsBool(t) {
		c.report(diagnostics.TypeMismatch(c.filepath, cond.Loc(), "bool", t.String()))
	}
}

func (c *Checker) checkWhileLoop(s *ast.WhileLoop) {
	c.checkCondition(s.Condition)
	if s.Parallel {
		c.report(diagnostics.ParallelWhile(c.filepath, s.Loc()))
	}
	c.loopDepth++
	c.pushScope()
	c.checkBlockStmts(s.Body.Stmts)
	c.popScope()
	c.loopDepth--
}

// checkForLoop resolves the iterable — either a range (both endpoints must
// be the same concrete integer type) or an array/slice expression — and
// declares the loop variable with the resulting element type, subject to
// the same anti-shadowing rule as every other binding (§4.4).
func (c *Checker) checkForLoop(s *ast.ForLoop) {
	elemType := c.checkForIterable(s.Iterable)

	c.loopDepth++
	c.pushScope()
	if prev, ok := c.scope.Lookup(s.Variable); ok {
		c.report(diagnostics.RedeclaredSymbol(c.filepath, s.Loc(), prev.Decl.Loc(), s.Variable))
	} else {
		c.scope.Declare(semantics.NewSymbol(s.Variable, semantics.SymbolVar, elemType, s))
		c.recordDecl(s, elemType)
	}
	c.checkBlockStmts(s.Body.Stmts)
	c.popScope()
	c.loopDepth--
}

func (c *Checker) checkForIterable(iter ast.Expression) semantics.Type {
	if rng, ok := iter.(*ast.Range); ok {
		startT := c.checkExpr(rng.Start, false)
		endT := c.checkExpr(rng.End, false)
		resolved := combineNumeric(startT, endT)
		if semantics.IsInvalid(resolved) {
			c.report(diagnostics.TypeMismatch(c.filepath, iter.Loc(), "matching integer endpoints", startT.String()+" and "+endT.String()))
			return &semantics.Invalid{}
		}
		if semantics.IsFloatLit(resolved) || isFloatPrimitive(resolved) {
			c.report(diagnostics.TypeMismatch(c.filepath, iter.Loc(), "an integer range", resolved.String()))
			return &semantics.Invalid{}
		}
		return resolved
	}

	t := c.checkExpr(iter, false)
	arr, ok := t.(*semantics.ArrayType)
	if !ok {
		if !semantics.IsInvalid(t) {
			c.report(diagnostics.NotIndexable(c.filepath, iter.Loc(), t.String()))
		}
		return &semantics.Invalid{}
	}
	return arr.Elem
}

// checkParallelBlock enforces §4.4's restriction that every statement of a
// parallel block's body must be a zero-argument call — each dispatched to
// its own thread and joined before the block exits.
func (c *Checker) checkParallelBlock(s *ast.ParallelBlock) {
	for _, n := range s.Body.Stmts {
		exprStmt, ok := n.(*ast.ExprStmt)
		if !ok {
			c.report(diagnostics.InvalidParallelBody(c.filepath, n.Loc()))
			continue
		}
		call, ok := exprStmt.X.(*ast.Call)
		if !ok || len(call.Args) != 0 {
			c.report(diagnostics.InvalidParallelBody(c.filepath, n.Loc()))
			continue
		}
		c.checkExpr(call, false)
	}
}

func (c *Checker) checkBreakStmt(s *ast.BreakStmt) {
	if c.loopDepth == 0 {
		c.report(diagnostics.BreakOutsideLoop(c.filepath, s.Loc()))
	}
	if s.Value != nil {
		c.checkExpr(s.Value, false)
	}
}

func (c *Checker) checkContinueStmt(s *ast.ContinueStmt) {
	if c.loopDepth == 0 {
		c.report(diagnostics.ContinueOutsideLoop(c.filepath, s.Loc()))
	}
}

// checkTryCatch handles the error locally — the enclosing function's own
// return type is irrelevant here, unlike the propagating `try E` form
// (§4.4): the error component is bound to the catch variable and the
// caller moves on.
func (c *Checker) checkTryCatch(s *ast.TryCatch) {
	innerType := c.checkExpr(s.TryExpr.X, false)
	errUnion, ok := innerType.(*semantics.ErrorUnionType)
	if !ok {
		if !semantics.IsInvalid(innerType) {
			c.report(diagnostics.InvalidTryTarget(c.filepath, s.TryExpr.Loc(), innerType.String()))
		}
		errUnion = &semantics.ErrorUnionType{Ok: &semantics.Invalid{}, Err: &semantics.Invalid{}}
	}

	c.pushScope()
	if s.HasCatchVar {
		c.scope.Declare(semantics.NewSymbol(s.CatchVar, semantics.SymbolVar, errUnion.Err, s))
		c.recordDecl(s, errUnion.Err)
	}
	c.checkBlockStmts(s.CatchBody.Stmts)
	c.popScope()
}

// checkTryPropagation validates the `try E` form used as an expression
// statement or RHS of an assignment/declaration (propagation, not
// catching): legal only when the enclosing function's own return type is
// itself an error union whose err component matches E's (§4.4).
func (c *Checker) checkTryPropagation(tryExpr *ast.TryExpr) semantics.Type {
	innerType := c.checkExpr(tryExpr.X, false)
	errUnion, ok := innerType.(*semantics.ErrorUnionType)
	if !ok {
		if !semantics.IsInvalid(innerType) {
			c.report(diagnostics.InvalidTryTarget(c.filepath, tryExpr.Loc(), innerType.String()))
		}
		return &semantics.Invalid{}
	}
	if c.funcErrUnion == nil || !semantics.TypesEqual(c.funcErrUnion.Err, errUnion.Err) {
		c.report(diagnostics.UnhandledError(c.filepath, tryExpr.Loc()))
	}
	return errUnion.Ok
}
