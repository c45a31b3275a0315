package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

// generateExpr renders e as a C expression fragment. It never emits a
// trailing semicolon or indentation — callers wrap it into whatever
// statement or sub-expression context they're building.
func (g *Generator) generateExpr(e ast.Expression) string {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return x.Value
	case *ast.FloatLiteral:
		return x.Value
	case *ast.StringLiteral:
		return strconv.Quote(x.Value)
	case *ast.BoolLiteral:
		if x.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "NULL"
	case *ast.Variable:
		return sanitizeName(x.Name)
	case *ast.BinaryOp:
		return g.generateBinaryOp(x)
	case *ast.UnaryOp:
		return g.generateUnaryOp(x)
	case *ast.Call:
		return g.generateCallExpr(x)
	case *ast.ArrayLiteral:
		return g.generateArrayLiteralExpr(x)
	case *ast.IndexExpr:
		return g.generateIndexExpr(x)
	case *ast.TryExpr:
		// Only reachable here when try appears somewhere other than the three
		// statement-level positions stmt.go special-cases; those positions
		// intercept the node before generateExpr ever sees it.
		return g.generateExpr(x.X)
	}
	return ""
}

func (g *Generator) generateBinaryOp(x *ast.BinaryOp) string {
	left := g.generateExpr(x.Left)
	right := g.generateExpr(x.Right)

	op := x.Op.String()
	switch x.Op {
	case ast.OpBoolAnd:
		op = "&&"
	case ast.OpBoolOr:
		op = "||"
	}

	leftType := g.info.ExprTypes[x.Left]
	if x.Op == ast.OpEq || x.Op == ast.OpNeq {
		if p, ok := concretize(leftType).(*semantics.PrimitiveType); ok && p.Name == langtypes.TYPE_STRING {
			cmp := fmt.Sprintf("strcmp(%s, %s) == 0", left, right)
			if x.Op == ast.OpNeq {
				cmp = fmt.Sprintf("strcmp(%s, %s) != 0", left, right)
			}
			return "(" + cmp + ")"
		}
	}

	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (g *Generator) generateUnaryOp(x *ast.UnaryOp) string {
	operand := g.generateExpr(x.Operand)
	if x.Op == ast.OpBoolNot {
		return fmt.Sprintf("(!%s)", operand)
	}
	return fmt.Sprintf("(-%s)", operand)
}

func (g *Generator) generateCallExpr(x *ast.Call) string {
	if g.isBuiltinCall(x, "len") {
		return g.generateLenExpr(x)
	}
	name, ok := x.Callee.(*ast.Variable)
	if !ok {
		return ""
	}
	var args []string
	for _, a := range x.Args {
		args = append(args, g.generateExpr(a))
	}
	return fmt.Sprintf("%s(%s)", sanitizeName(name.Name), strings.Join(args, ", "))
}

// isBuiltinCall reports whether x is a call to the named built-in — the
// checker only lets print/len resolve this way when no user declaration of
// that name shadows it, so codegen trusts the same rule without re-deriving
// it from scope information it doesn't have.
func (g *Generator) isBuiltinCall(x *ast.Call, name string) bool {
	v, ok := x.Callee.(*ast.Variable)
	if !ok || v.Name != name {
		return false
	}
	_, isFunc := g.info.FuncSigs[name]
	return !isFunc
}

// generateLenExpr lowers len(x): a fixed array's length is a compile-time
// constant, a slice's is its runtime len field (§4.5).
func (g *Generator) generateLenExpr(x *ast.Call) string {
	if len(x.Args) != 1 {
		return "0"
	}
	argType := g.info.ExprTypes[x.Args[0]]
	arg := g.generateExpr(x.Args[0])
	if arr, ok := argType.(*semantics.ArrayType); ok {
		if arr.Fixed {
			return fmt.Sprintf("%d", arr.Len)
		}
		return fmt.Sprintf("%s.len", arg)
	}
	return "0"
}

func (g *Generator) generateArrayLiteralExpr(x *ast.ArrayLiteral) string {
	var elems []string
	for _, e := range x.Elements {
		elems = append(elems, g.generateExpr(e))
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

func (g *Generator) generateIndexExpr(x *ast.IndexExpr) string {
	targetType := g.info.ExprTypes[x.Target]
	target := g.generateExpr(x.Target)
	index := g.generateExpr(x.Index)
	if arr, ok := targetType.(*semantics.ArrayType); ok && !arr.Fixed {
		return fmt.Sprintf("%s.data[%s]", target, index)
	}
	return fmt.Sprintf("%s[%s]", target, index)
}

// generatePrintStmt expands print(x) into a type-dispatched printf call
// (§4.5): each primitive kind picks its own format specifier and, for
// integers, a cast matching signedness and width; every call appends \n.
func (g *Generator) generatePrintStmt(call *ast.Call) {
	g.writeIndent()
	if len(call.Args) != 1 {
		g.write("printf(\"\\n\");\n")
		return
	}
	arg := call.Args[0]
	argType := concretize(g.info.ExprTypes[arg])
	expr := g.generateExpr(arg)

	switch t := argType.(type) {
	case *semantics.PrimitiveType:
		switch {
		case t.Name == langtypes.TYPE_STRING:
			g.write("printf(\"%%s\\n\", %s);\n", expr)
		case t.Name == langtypes.TYPE_BOOL:
			g.write("printf(\"%%s\\n\", (%s) ? \"true\" : \"false\");\n", expr)
		case t.Name.IsFloat():
			if t.Name.Is64Bit() {
				g.write("printf(\"%%f\\n\", (double)(%s));\n", expr)
			} else {
				g.write("printf(\"%%f\\n\", (float)(%s));\n", expr)
			}
		case t.Name.IsUnsigned():
			if t.Name.Is64Bit() {
				g.write("printf(\"%%\" PRIu64 \"\\n\", (uint64_t)(%s));\n", expr)
			} else {
				g.write("printf(\"%%u\\n\", (unsigned int)(%s));\n", expr)
			}
		default:
			if t.Name.Is64Bit() {
				g.write("printf(\"%%\" PRId64 \"\\n\", (int64_t)(%s));\n", expr)
			} else {
				g.write("printf(\"%%d\\n\", (int)(%s));\n", expr)
			}
		}
	default:
		g.write("printf(\"%%s\\n\", %s);\n", expr)
	}
}
