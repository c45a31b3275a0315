// Package pipeline orchestrates the four compilation phases — lex, parse,
// analyze, generate — over a single in-memory source string, stopping at
// the first phase that reports an error rather than cascading diagnostics
// from an already-broken tree into a later phase.
package pipeline

import (
	"github.com/melihbirim/1im-pl/internal/codegen"
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/lexer"
	"github.com/melihbirim/1im-pl/internal/frontend/parser"
	"github.com/melihbirim/1im-pl/internal/semantics/checker"
)

// Options controls how a Compile run behaves. Debug enables the lexer's
// token-by-token trace output.
type Options struct {
	Debug bool
}

// Result is a compilation's complete outcome: the emitted C source on
// success, and every diagnostic collected along the way regardless of
// which phase produced it.
type Result struct {
	C           string
	Diagnostics []*diagnostics.Diagnostic
	Program     *ast.Program
	Info        *checker.Info
}

// HasErrors reports whether any collected diagnostic is a genuine error
// (as opposed to a warning), matching the bag's own severity accounting.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diagnostics.Error {
			return true
		}
	}
	return false
}

// Compile runs source through the full pipeline. A phase that leaves
// errors in the bag short-circuits every later phase; C is left empty
// in that case.
func Compile(source string, opts *Options) *Result {
	if opts == nil {
		opts = &Options{}
	}
	filepath := "<source>"
	diag := diagnostics.NewDiagnosticBag(filepath)

	lx := lexer.New([]byte(source), filepath, diag, opts.Debug)
	tokens := lx.Tokenize()
	if diag.HasErrors() {
		return &Result{Diagnostics: diag.Diagnostics()}
	}

	arena := ast.NewArena()
	prog := parser.Parse(tokens, filepath, diag, arena)
	if diag.HasErrors() {
		return &Result{Diagnostics: diag.Diagnostics(), Program: prog}
	}

	info := checker.Analyze(prog, filepath, diag)
	if diag.HasErrors() {
		return &Result{Diagnostics: diag.Diagnostics(), Program: prog, Info: info}
	}

	out := codegen.Generate(prog, info)
	return &Result{
		C:           out,
		Diagnostics: diag.Diagnostics(),
		Program:     prog,
		Info:        info,
	}
}
