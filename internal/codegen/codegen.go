// Package codegen walks the analyzed AST and emits a single, free-standing
// C11 translation unit (§4.5): a fixed preamble, on-demand helper typedefs
// for slices, error unions, and array-return wrappers, forward declarations,
// function bodies in source order, and a synthesised main when the source
// defines none.
package codegen

import (
	"fmt"
	"strings"

	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/semantics"
	"github.com/melihbirim/1im-pl/internal/semantics/checker"
)

// Generator accumulates the emitted translation unit's pieces — the
// typedef block grows as composite types are encountered; everything else
// is assembled into final order only once every function has been walked,
// since a type used deep in one function's body must still appear in the
// typedef block ahead of every function, including earlier ones.
type Generator struct {
	info *checker.Info

	buf    strings.Builder
	indent int

	typedefOrder   []string
	typedefEmitted map[string]bool

	needsParRunner bool
	parCounter     int
	tempCounter    int

	funcReturn   semantics.Type
	funcErrUnion *semantics.ErrorUnionType
	inMain       bool
}

// New creates a Generator over the type information an Analyze run produced.
func New(info *checker.Info) *Generator {
	return &Generator{
		info:           info,
		typedefEmitted: make(map[string]bool),
	}
}

// Generate emits the complete translation unit for prog.
func Generate(prog *ast.Program, info *checker.Info) string {
	g := New(info)
	return g.generateProgram(prog)
}

func (g *Generator) generateProgram(prog *ast.Program) string {
	var funcs []*ast.FunctionDef
	var topLevel []ast.Node
	for _, n := range prog.Stmts {
		if fn, ok := n.(*ast.FunctionDef); ok {
			funcs = append(funcs, fn)
			continue
		}
		topLevel = append(topLevel, n)
	}

	var forwardDecls strings.Builder
	for _, fn := range funcs {
		forwardDecls.WriteString(g.functionSignature(fn) + ";\n")
	}

	var functionDefs strings.Builder
	userMain := false
	for _, fn := range funcs {
		if fn.Name == "main" {
			userMain = true
		}
		functionDefs.WriteString(g.generateFunction(fn))
		functionDefs.WriteString("\n")
	}

	var mainDef string
	if !userMain {
		mainDef = g.generateSyntheticMain(topLevel)
	}

	var out strings.Builder
	out.WriteString(preamble)
	if g.needsParRunner {
		out.WriteString(parRunnerDef)
	}
	for _, td := range g.typedefOrder {
		out.WriteString(td)
	}
	out.WriteString(forwardDecls.String())
	out.WriteString("\n")
	out.WriteString(functionDefs.String())
	out.WriteString(mainDef)
	return out.String()
}

// preamble is the fixed set of includes every translation unit carries
// (§4.5), regardless of whether the source ends up using pthreads.
const preamble = `#include <stdio.h>
#include <stdint.h>
#include <inttypes.h>
#include <stdbool.h>
#include <string.h>
#include <stddef.h>
#include <pthread.h>

`

// parRunnerDef is emitted once per program, only when at least one
// parallel_block was encountered (§4.5): a thread entry point that
// dispatches through a zero-argument function pointer passed as its arg.
const parRunnerDef = `static void *__1im_par_runner(void *arg) {
    void (*fn)(void) = (void (*)(void))arg;
    fn();
    return NULL;
}

`

func (g *Generator) functionSignature(fn *ast.FunctionDef) string {
	sig := g.info.FuncSigs[fn.Name]
	returnC := "void"
	if sig != nil && sig.ReturnType != nil {
		if arr, ok := sig.ReturnType.(*semantics.ArrayType); ok && arr.Fixed {
			returnC = g.registerArrRet(arr)
		} else {
			returnC = g.cType(sig.ReturnType)
		}
	}
	if fn.Name == "main" {
		returnC = "int"
	}

	var params []string
	for i, p := range fn.Params {
		var t semantics.Type
		if sig != nil && i < len(sig.Params) {
			t = sig.Params[i].Type
		}
		params = append(params, g.declareVar(p.Name, t))
	}
	paramStr := "void"
	if len(params) > 0 {
		paramStr = strings.Join(params, ", ")
	}
	return fmt.Sprintf("%s %s(%s)", returnC, sanitizeName(fn.Name), paramStr)
}

func (g *Generator) generateFunction(fn *ast.FunctionDef) string {
	sig := g.info.FuncSigs[fn.Name]

	prevReturn, prevErrUnion, prevMain := g.funcReturn, g.funcErrUnion, g.inMain
	if sig != nil {
		g.funcReturn = sig.ReturnType
		g.funcErrUnion, _ = sig.ReturnType.(*semantics.ErrorUnionType)
	} else {
		g.funcReturn, g.funcErrUnion = nil, nil
	}
	g.inMain = fn.Name == "main"

	savedBuf := g.buf
	g.buf = strings.Builder{}
	g.indent = 0

	g.buf.WriteString(g.functionSignature(fn) + " {\n")
	g.indent++
	g.generateBlock(fn.Body)

	if g.inMain && g.funcReturn == nil {
		g.writeIndent()
		g.buf.WriteString("return 0;\n")
	}

	g.indent--
	g.buf.WriteString("}\n")

	out := g.buf.String()
	g.buf = savedBuf
	g.funcReturn, g.funcErrUnion, g.inMain = prevReturn, prevErrUnion, prevMain
	return out
}

// generateSyntheticMain wraps every top-level non-function statement in a
// synthesised int main(void) when the source defines none (§4.5).
func (g *Generator) generateSyntheticMain(topLevel []ast.Node) string {
	prevReturn, prevErrUnion, prevMain := g.funcReturn, g.funcErrUnion, g.inMain
	g.funcReturn, g.funcErrUnion, g.inMain = nil, nil, true

	savedBuf := g.buf
	g.buf = strings.Builder{}
	g.indent = 0

	g.buf.WriteString("int main(void) {\n")
	g.indent++
	for _, n := range topLevel {
		g.generateStmt(n)
	}
	g.writeIndent()
	g.buf.WriteString("return 0;\n")
	g.indent--
	g.buf.WriteString("}\n")

	out := g.buf.String()
	g.buf = savedBuf
	g.funcReturn, g.funcErrUnion, g.inMain = prevReturn, prevErrUnion, prevMain
	return out
}

func (g *Generator) write(format string, args ...interface{}) {
	g.buf.WriteString(fmt.Sprintf(format, args...))
}

func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("    ")
	}
}

func (g *Generator) freshTemp(prefix string) string {
	g.tempCounter++
	return fmt.Sprintf("__%s_%d", prefix, g.tempCounter)
}
