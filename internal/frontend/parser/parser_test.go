package parser

import (
	"testing"

	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/lexer"
)

const noErrorsExpected = "Expected no diagnostics, got: %v"

func parseSource(t *testing.T, src string) (*ast.Program, *diagnostics.DiagnosticBag) {
	t.Helper()
	filepath := "<test>"
	diag := diagnostics.NewDiagnosticBag(filepath)
	lx := lexer.New([]byte(src), filepath, diag, false)
	tokens := lx.Tokenize()
	arena := ast.NewArena()
	prog := Parse(tokens, filepath, diag, arena)
	return prog, diag
}

func diagMessages(diag *diagnostics.DiagnosticBag) []string {
	var msgs []string
	for _, d := range diag.Diagnostics() {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func TestParseSetAssignProducesOneStmt(t *testing.T) {
	prog, diag := parseSource(t, "set x to 1")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Stmts))
	}
	s, ok := prog.Stmts[0].(*ast.SetAssign)
	if !ok {
		t.Fatalf("expected a *ast.SetAssign, got %T", prog.Stmts[0])
	}
	if s.Name != "x" {
		t.Errorf("expected Name x, got %q", s.Name)
	}
}

func TestParseTypedAssign(t *testing.T) {
	prog, diag := parseSource(t, "set x as i32 to 1")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	if _, ok := prog.Stmts[0].(*ast.TypedAssign); !ok {
		t.Fatalf("expected a *ast.TypedAssign, got %T", prog.Stmts[0])
	}
}

func TestParseIndexAssignRequiresNoLeadingKeyword(t *testing.T) {
	src := "set nums to [1,2,3]\nnums[0] to 9"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	if _, ok := prog.Stmts[1].(*ast.IndexAssign); !ok {
		t.Fatalf("expected a *ast.IndexAssign, got %T", prog.Stmts[1])
	}
}

func TestParseBareVariableFollowedByToIsAnError(t *testing.T) {
	_, diag := parseSource(t, "set x to 1\nx to 2")
	if !diag.HasErrors() {
		t.Fatalf("expected 'x to 2' to be refused without a leading 'set', got none")
	}
}

func TestParseFunctionWithParamsAndReturnType(t *testing.T) {
	src := "set add with a as i32, b as i32 returns i32\n    return a + b"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	fn, ok := prog.Stmts[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected a *ast.FunctionDef, got %T", prog.Stmts[0])
	}
	if fn.Name != "add" {
		t.Errorf("expected Name add, got %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.ReturnType == nil {
		t.Errorf("expected a non-nil return type")
	}
}

func TestParseFunctionWithNoReturnClauseIsVoid(t *testing.T) {
	src := "set show with\n    print(1)"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	fn, ok := prog.Stmts[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected a *ast.FunctionDef, got %T", prog.Stmts[0])
	}
	if fn.ReturnType != nil {
		t.Errorf("expected a nil return type for an omitted 'returns' clause, got %v", fn.ReturnType)
	}
}

func TestParseWhileLoop(t *testing.T) {
	src := "set i to 0\nloop while i < 3\n    set i to i + 1"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	if _, ok := prog.Stmts[1].(*ast.WhileLoop); !ok {
		t.Fatalf("expected a *ast.WhileLoop, got %T", prog.Stmts[1])
	}
}

func TestParseParallelWhileReportsError(t *testing.T) {
	src := "set i to 0\nparallel loop while i < 3\n    set i to i + 1"
	_, diag := parseSource(t, src)
	if !diag.HasErrors() {
		t.Fatalf("expected 'parallel loop while' to be refused at parse time, got none")
	}
}

func TestParseForRange(t *testing.T) {
	src := "loop for i in 0..3\n    print(i)"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	fl, ok := prog.Stmts[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("expected a *ast.ForLoop, got %T", prog.Stmts[0])
	}
	if _, ok := fl.Iterable.(*ast.Range); !ok {
		t.Errorf("expected the iterable to be a *ast.Range, got %T", fl.Iterable)
	}
}

func TestParseTryWithCatch(t *testing.T) {
	src := "set fail with returns i32!str\n" +
		"    return \"boom\"\n" +
		"set main with\n" +
		"    try fail() catch err\n" +
		"        print(err)"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	main, ok := prog.Stmts[1].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected a *ast.FunctionDef, got %T", prog.Stmts[1])
	}
	tc, ok := main.Body.Stmts[0].(*ast.TryCatch)
	if !ok {
		t.Fatalf("expected a *ast.TryCatch, got %T", main.Body.Stmts[0])
	}
	if !tc.HasCatchVar || tc.CatchVar != "err" {
		t.Errorf("expected a catch variable named err, got %q (present=%v)", tc.CatchVar, tc.HasCatchVar)
	}
}

// TestParseTryCatchWithoutTryTargetIsAnError exercises a `catch` with no
// leading `try` keyword — parseStmt only recognizes try_catch when the
// statement itself starts with `try`, so this is refused one token later as
// an unexpected `catch`.
func TestParseTryCatchWithoutTryTargetIsAnError(t *testing.T) {
	_, diag := parseSource(t, "set main with\n    1\n    catch err\n        print(err)")
	if !diag.HasErrors() {
		t.Fatalf("expected a bare 'catch' with no leading try to be refused, got none")
	}
}

func TestParseChainedComparisonIsAnError(t *testing.T) {
	_, diag := parseSource(t, "set ok to 1 < 2 < 3")
	if !diag.HasErrors() {
		t.Fatalf("expected a chained-comparison error, got none")
	}
}

func TestParseParallelBlock(t *testing.T) {
	src := "set show_a with\n    print(100)\n" +
		"set main with\n    parallel\n        show_a()"
	prog, diag := parseSource(t, src)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	main := prog.Stmts[1].(*ast.FunctionDef)
	if _, ok := main.Body.Stmts[0].(*ast.ParallelBlock); !ok {
		t.Fatalf("expected a *ast.ParallelBlock, got %T", main.Body.Stmts[0])
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog, diag := parseSource(t, "set nums to [1,2,3]")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(diag))
	}
	s := prog.Stmts[0].(*ast.SetAssign)
	lit, ok := s.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected a *ast.ArrayLiteral, got %T", s.Value)
	}
	if len(lit.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(lit.Elements))
	}
}
