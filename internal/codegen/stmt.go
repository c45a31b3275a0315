package codegen

import (
	"fmt"
	"strings"

	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

func (g *Generator) generateBlock(b *ast.Block) {
	for _, n := range b.Stmts {
		g.generateStmt(n)
	}
}

func (g *Generator) generateStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.SetAssign:
		g.generateSetAssign(s)
	case *ast.TypedAssign:
		g.generateTypedAssign(s)
	case *ast.IndexAssign:
		g.generateIndexAssign(s)
	case *ast.ReturnStmt:
		g.generateReturnStmt(s)
	case *ast.IfStmt:
		g.generateIfStmt(s)
	case *ast.WhileLoop:
		g.generateWhileLoop(s)
	case *ast.ForLoop:
		g.generateForLoop(s)
	case *ast.ParallelBlock:
		g.generateParallelBlock(s)
	case *ast.BreakStmt:
		if s.Value != nil {
			g.writeIndent()
			g.write("%s;\n", g.generateExpr(s.Value))
		}
		g.writeIndent()
		g.write("break;\n")
	case *ast.ContinueStmt:
		g.writeIndent()
		g.write("continue;\n")
	case *ast.TryCatch:
		g.generateTryCatch(s)
	case *ast.ExprStmt:
		g.generateExprStmt(s)
	}
}

func (g *Generator) generateExprStmt(s *ast.ExprStmt) {
	if call, ok := s.X.(*ast.Call); ok {
		if g.isBuiltinCall(call, "print") {
			g.generatePrintStmt(call)
			return
		}
	}
	if tryExpr, ok := s.X.(*ast.TryExpr); ok {
		g.generateTryPropagation(tryExpr, "")
		return
	}
	g.writeIndent()
	g.write("%s;\n", g.generateExpr(s.X))
}

// generateSetAssign emits a declaration on first occurrence or a bare
// assignment on reassignment (§4.5), using the checker's FirstDecl map to
// tell the two apart. A reassignment that targets an error-union-typed
// variable routes the RHS through the matching _ok/_err constructor unless
// the RHS already produces that exact error-union value.
func (g *Generator) generateSetAssign(s *ast.SetAssign) {
	declType := concretize(g.info.DeclTypes[s])

	if tryExpr, ok := s.Value.(*ast.TryExpr); ok {
		if g.info.FirstDecl[s] {
			g.writeIndent()
			g.write("%s;\n", g.declareVar(s.Name, declType))
		}
		g.generateTryPropagation(tryExpr, sanitizeName(s.Name))
		return
	}

	valExpr := g.generateExpr(s.Value)

	if g.info.FirstDecl[s] {
		g.writeIndent()
		g.write("%s = %s;\n", g.declareVar(s.Name, declType), valExpr)
		return
	}

	g.writeIndent()
	if eu, ok := declType.(*semantics.ErrorUnionType); ok {
		valType := g.info.ExprTypes[s.Value]
		valExpr = g.wrapErrorUnionValue(eu, valExpr, valType)
	}
	g.write("%s = %s;\n", sanitizeName(s.Name), valExpr)
}

func (g *Generator) generateTypedAssign(s *ast.TypedAssign) {
	declType := concretize(g.info.DeclTypes[s])

	if tryExpr, ok := s.Value.(*ast.TryExpr); ok {
		g.writeIndent()
		g.write("%s;\n", g.declareVar(s.Name, declType))
		g.generateTryPropagation(tryExpr, sanitizeName(s.Name))
		return
	}

	if arr, ok := declType.(*semantics.ArrayType); ok && !arr.Fixed {
		g.generateSliceDecl(s, arr)
		return
	}

	valExpr := g.generateExpr(s.Value)
	g.writeIndent()
	g.write("%s = %s;\n", g.declareVar(s.Name, declType), valExpr)
}

// generateSliceDecl handles `set N as []T to [a, b, c]` (or an existing
// array variable): a slice descriptor must point at real backing storage, so
// an array-literal RHS gets a sibling fixed-size array emitted first.
func (g *Generator) generateSliceDecl(s *ast.TypedAssign, arr *semantics.ArrayType) {
	name := sanitizeName(s.Name)
	elemC := g.cType(arr.Elem)
	sliceC := g.registerSlice(arr)

	if lit, ok := s.Value.(*ast.ArrayLiteral); ok {
		backing := "__" + name + "_data"
		var elems []string
		for _, e := range lit.Elements {
			elems = append(elems, g.generateExpr(e))
		}
		g.writeIndent()
		g.write("%s %s[%d] = {%s};\n", elemC, backing, len(lit.Elements), strings.Join(elems, ", "))
		g.writeIndent()
		g.write("%s %s = { %s, %d };\n", sliceC, name, backing, len(lit.Elements))
		return
	}

	// RHS is an existing array or slice variable/expression.
	valType := g.info.ExprTypes[s.Value]
	valExpr := g.generateExpr(s.Value)
	g.writeIndent()
	if at, ok := valType.(*semantics.ArrayType); ok && at.Fixed {
		g.write("%s %s = { %s, %d };\n", sliceC, name, valExpr, at.Len)
		return
	}
	g.write("%s %s = %s;\n", sliceC, name, valExpr)
}

func (g *Generator) generateIndexAssign(s *ast.IndexAssign) {
	idx, ok := s.Target.(*ast.IndexExpr)
	if !ok {
		return
	}
	targetType := g.info.ExprTypes[idx.Target]
	valExpr := g.generateExpr(s.Value)
	targetExpr := g.generateExpr(idx.Target)
	indexExpr := g.generateExpr(idx.Index)

	g.writeIndent()
	if arr, ok := targetType.(*semantics.ArrayType); ok && !arr.Fixed {
		g.write("%s.data[%s] = %s;\n", targetExpr, indexExpr, valExpr)
		return
	}
	g.write("%s[%s] = %s;\n", targetExpr, indexExpr, valExpr)
}

// generateReturnStmt handles the four return shapes (§4.5): bare void
// return, a try_expr that propagates its error, an error-union function's
// normal value return (wrapped through _ok), and an array-typed function's
// return (wrapped into its by-value struct).
func (g *Generator) generateReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		g.writeIndent()
		g.write("return;\n")
		return
	}

	if tryExpr, ok := s.Value.(*ast.TryExpr); ok {
		g.generateTryReturnPropagation(tryExpr)
		return
	}

	if g.funcErrUnion != nil {
		valExpr := g.generateExpr(s.Value)
		valType := g.info.ExprTypes[s.Value]
		unionC := g.cType(g.funcReturn)
		wrapped := g.wrapErrorUnionValue(g.funcErrUnion, valExpr, valType)
		_ = unionC
		g.writeIndent()
		g.write("return %s;\n", wrapped)
		return
	}

	if arr, ok := g.funcReturn.(*semantics.ArrayType); ok && arr.Fixed {
		g.generateArrayReturn(s.Value, arr)
		return
	}

	valExpr := g.generateExpr(s.Value)
	if g.inMain {
		valExpr = fmt.Sprintf("(int)(%s)", valExpr)
	}
	g.writeIndent()
	g.write("return %s;\n", valExpr)
}

func (g *Generator) generateArrayReturn(value ast.Expression, arr *semantics.ArrayType) {
	wrapperC := g.registerArrRet(arr)
	tmp := g.freshTemp("ret")

	if lit, ok := value.(*ast.ArrayLiteral); ok {
		var elems []string
		for _, e := range lit.Elements {
			elems = append(elems, g.generateExpr(e))
		}
		g.writeIndent()
		g.write("%s %s = { { %s } };\n", wrapperC, tmp, strings.Join(elems, ", "))
		g.writeIndent()
		g.write("return %s;\n", tmp)
		return
	}

	valExpr := g.generateExpr(value)
	g.writeIndent()
	g.write("%s %s;\n", wrapperC, tmp)
	g.writeIndent()
	g.write("memcpy(%s.value, %s, sizeof(%s.value));\n", tmp, valExpr, tmp)
	g.writeIndent()
	g.write("return %s;\n", tmp)
}

// wrapErrorUnionValue routes a bare value (not already of the error-union
// type itself) through the matching _ok/_err constructor, chosen by which
// side the value's concrete type agrees with (§4.5, §9's open question on
// reassignment re-wrapping).
func (g *Generator) wrapErrorUnionValue(eu *semantics.ErrorUnionType, valExpr string, valType semantics.Type) string {
	unionC := g.cType(eu)
	if valType != nil && semantics.TypesEqual(eu, valType) {
		return valExpr
	}
	if semantics.IsIntLit(valType) || semantics.IsFloatLit(valType) {
		if semantics.Unify(eu.Ok, valType) != nil {
			return fmt.Sprintf("%s_ok(%s)", unionC, valExpr)
		}
		return fmt.Sprintf("%s_err(%s)", unionC, valExpr)
	}
	if valType != nil && semantics.TypesEqual(eu.Ok, valType) {
		return fmt.Sprintf("%s_ok(%s)", unionC, valExpr)
	}
	return fmt.Sprintf("%s_err(%s)", unionC, valExpr)
}

// generateTryPropagation expands a bare `try E` used as an expression
// statement (bindName == "") or as the already-declared RHS of a set_assign
// (bindName names the variable to bind tmp.value into) — the fresh-temp,
// conditional-propagate pattern of §4.5.
func (g *Generator) generateTryPropagation(tryExpr *ast.TryExpr, bindName string) {
	eu, ok := g.info.ExprTypes[tryExpr.X].(*semantics.ErrorUnionType)
	if !ok {
		return
	}
	unionC := g.cType(eu)
	tmp := g.freshTemp("try")
	innerExpr := g.generateExpr(tryExpr.X)

	g.writeIndent()
	g.write("%s %s = %s;\n", unionC, tmp, innerExpr)
	g.writeIndent()
	g.write("if (!%s.ok) return %s_err(%s.err);\n", tmp, g.cType(g.funcReturn), tmp)
	if bindName != "" {
		g.writeIndent()
		g.write("%s = %s.value;\n", bindName, tmp)
	}
}

// generateTryReturnPropagation is the return-position variant (§4.5): the
// success path itself also returns, wrapped through _ok.
func (g *Generator) generateTryReturnPropagation(tryExpr *ast.TryExpr) {
	eu, ok := g.info.ExprTypes[tryExpr.X].(*semantics.ErrorUnionType)
	if !ok {
		return
	}
	innerUnionC := g.cType(eu)
	outerUnionC := g.cType(g.funcReturn)
	tmp := g.freshTemp("try")
	innerExpr := g.generateExpr(tryExpr.X)

	g.writeIndent()
	g.write("%s %s = %s;\n", innerUnionC, tmp, innerExpr)
	g.writeIndent()
	g.write("if (!%s.ok) return %s_err(%s.err);\n", tmp, outerUnionC, tmp)
	g.writeIndent()
	g.write("return %s_ok(%s.value);\n", outerUnionC, tmp)
}

// generateTryCatch expands `try E catch [x] ...` (§4.5): the try expression
// evaluates into a temp; the catch variable, if present, binds to its error
// component; the catch body runs on the !ok branch.
func (g *Generator) generateTryCatch(s *ast.TryCatch) {
	eu, ok := g.info.ExprTypes[s.TryExpr.X].(*semantics.ErrorUnionType)
	if !ok {
		return
	}
	unionC := g.cType(eu)
	tmp := g.freshTemp("try")
	innerExpr := g.generateExpr(s.TryExpr.X)

	g.writeIndent()
	g.write("%s %s = %s;\n", unionC, tmp, innerExpr)
	g.writeIndent()
	g.write("if (!%s.ok) {\n", tmp)
	g.indent++
	if s.HasCatchVar {
		g.writeIndent()
		g.write("%s %s = %s.err;\n", g.cType(eu.Err), sanitizeName(s.CatchVar), tmp)
	}
	g.generateBlock(s.CatchBody)
	g.indent--
	g.writeIndent()
	g.write("}\n")
}

func (g *Generator) generateIfStmt(s *ast.IfStmt) {
	g.writeIndent()
	g.write("if (%s) {\n", g.generateExpr(s.Condition))
	g.indent++
	g.generateBlock(s.ThenBody)
	g.indent--
	g.writeIndent()
	g.write("}")

	for _, ei := range s.ElseIfs {
		g.write(" else if (%s) {\n", g.generateExpr(ei.Condition))
		g.indent++
		g.generateBlock(ei.Body)
		g.indent--
		g.writeIndent()
		g.write("}")
	}

	if s.ElseBody != nil {
		g.write(" else {\n")
		g.indent++
		g.generateBlock(s.ElseBody)
		g.indent--
		g.writeIndent()
		g.write("}\n")
	} else {
		g.write("\n")
	}
}

func (g *Generator) generateWhileLoop(s *ast.WhileLoop) {
	g.writeIndent()
	g.write("while (%s) {\n", g.generateExpr(s.Condition))
	g.indent++
	g.generateBlock(s.Body)
	g.indent--
	g.writeIndent()
	g.write("}\n")
}

// generateForLoop lowers both forms of §4.5's for_loop rule: a range
// iterable becomes a classic counting C for loop (induction type widened to
// int64_t if either endpoint is 64-bit, otherwise int32_t); an array/slice
// iterable becomes a nested block indexing the (possibly slice-captured)
// iterable with size_t.
func (g *Generator) generateForLoop(s *ast.ForLoop) {
	if s.Parallel {
		g.writeIndent()
		g.write("#pragma omp parallel for\n")
	}

	if rng, ok := s.Iterable.(*ast.Range); ok {
		g.generateRangeForLoop(s, rng)
		return
	}
	g.generateContainerForLoop(s)
}

func (g *Generator) generateRangeForLoop(s *ast.ForLoop, rng *ast.Range) {
	startT := concretize(g.info.ExprTypes[rng.Start])
	endT := concretize(g.info.ExprTypes[rng.End])
	inductC := "int32_t"
	if is64Bit(startT) || is64Bit(endT) {
		inductC = "int64_t"
	}

	op := "<"
	if rng.Inclusive {
		op = "<="
	}

	name := sanitizeName(s.Variable)
	startExpr := g.generateExpr(rng.Start)
	endExpr := g.generateExpr(rng.End)

	g.writeIndent()
	g.write("for (%s %s = %s; %s %s %s; %s++) {\n", inductC, name, startExpr, name, op, endExpr, name)
	g.indent++
	g.generateBlock(s.Body)
	g.indent--
	g.writeIndent()
	g.write("}\n")
}

func is64Bit(t semantics.Type) bool {
	p, ok := t.(*semantics.PrimitiveType)
	return ok && p.Name.Is64Bit()
}

func (g *Generator) generateContainerForLoop(s *ast.ForLoop) {
	iterType := g.info.ExprTypes[s.Iterable]
	arr, ok := iterType.(*semantics.ArrayType)
	if !ok {
		return
	}
	elemC := g.cType(arr.Elem)
	idx := g.freshTemp("i")
	name := sanitizeName(s.Variable)
	iterExpr := g.generateExpr(s.Iterable)

	g.writeIndent()
	g.write("{\n")
	g.indent++

	if arr.Fixed {
		g.writeIndent()
		g.write("for (size_t %s = 0; %s < %d; %s++) {\n", idx, idx, arr.Len, idx)
		g.indent++
		g.writeIndent()
		g.write("%s %s = %s[%s];\n", elemC, name, iterExpr, idx)
	} else {
		tmp := g.freshTemp("iter")
		g.writeIndent()
		g.write("%s %s = %s;\n", g.cType(arr), tmp, iterExpr)
		g.writeIndent()
		g.write("for (size_t %s = 0; %s < %s.len; %s++) {\n", idx, idx, tmp, idx)
		g.indent++
		g.writeIndent()
		g.write("%s %s = %s.data[%s];\n", elemC, name, tmp, idx)
	}

	g.generateBlock(s.Body)
	g.indent--
	g.writeIndent()
	g.write("}\n")
	g.indent--
	g.writeIndent()
	g.write("}\n")
}

// generateParallelBlock emits the per-block thread-array/function-pointer
// machinery of §4.5: a fixed-size pthread_t array, a parallel array of
// zero-arg function pointers populated from the body's call targets, then
// pthread_create and pthread_join for each in declaration order.
func (g *Generator) generateParallelBlock(s *ast.ParallelBlock) {
	g.needsParRunner = true
	g.parCounter++
	id := g.parCounter

	var calls []string
	for _, n := range s.Body.Stmts {
		exprStmt, ok := n.(*ast.ExprStmt)
		if !ok {
			continue
		}
		call, ok := exprStmt.X.(*ast.Call)
		if !ok {
			continue
		}
		name, ok := call.Callee.(*ast.Variable)
		if !ok {
			continue
		}
		calls = append(calls, "(void (*)(void))"+sanitizeName(name.Name))
	}
	n := len(calls)

	g.writeIndent()
	g.write("{\n")
	g.indent++
	g.writeIndent()
	g.write("pthread_t __par_threads_%d[%d];\n", id, n)
	g.writeIndent()
	g.write("void (*__par_calls_%d[%d])(void) = {%s};\n", id, n, strings.Join(calls, ", "))
	for i := 0; i < n; i++ {
		g.writeIndent()
		g.write("pthread_create(&__par_threads_%d[%d], NULL, __1im_par_runner, (void*)__par_calls_%d[%d]);\n", id, i, id, i)
	}
	for i := 0; i < n; i++ {
		g.writeIndent()
		g.write("pthread_join(__par_threads_%d[%d], NULL);\n", id, i)
	}
	g.indent--
	g.writeIndent()
	g.write("}\n")
}
