package pipeline

import (
	"strings"
	"testing"
)

const noErrorsExpected = "Expected no diagnostics, got: %v"

func diagMessages(r *Result) []string {
	var msgs []string
	for _, d := range r.Diagnostics {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// TestCompileSimplePrint covers scenario 1: a first-occurrence declaration
// followed by a print of it.
func TestCompileSimplePrint(t *testing.T) {
	src := "set age to 41\nprint(age)"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "int32_t age = 41;") {
		t.Errorf("expected age declared as int32_t, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, `printf("%d\n", (int)(age));`) {
		t.Errorf("expected a decimal printf of age, got:\n%s", r.C)
	}
}

// TestCompileFunctionWithParams covers scenario 2: a function declaration
// and a call to it inside print.
func TestCompileFunctionWithParams(t *testing.T) {
	src := "set add with a as i32, b as i32 returns i32\n" +
		"    return a + b\n" +
		"print(add(2, 3))"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "int32_t add(int32_t a, int32_t b)") {
		t.Errorf("expected add's C signature, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, "return (a + b);") {
		t.Errorf("expected a C return of a + b, got:\n%s", r.C)
	}
}

// TestCompileWhileLoop covers scenario 3: a while loop reassigning its own
// condition variable.
func TestCompileWhileLoop(t *testing.T) {
	src := "set i to 0\n" +
		"loop while i < 3\n" +
		"    print(i)\n" +
		"    set i to i + 1"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "while ((i < 3)) {") {
		t.Errorf("expected a C while loop over i < 3, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, "i = (i + 1);") {
		t.Errorf("expected a plain reassignment of i, got:\n%s", r.C)
	}
}

// TestCompileForOverArray covers scenario 4: iterating an array literal.
func TestCompileForOverArray(t *testing.T) {
	src := "set nums to [1,2,3]\n" +
		"loop for n in nums\n" +
		"    print(n)"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "for (size_t") {
		t.Errorf("expected a size_t-indexed for loop, got:\n%s", r.C)
	}
}

// TestCompileTryCatch covers scenario 5: a propagating-error function caught
// by its caller.
func TestCompileTryCatch(t *testing.T) {
	src := "set fail with returns i32!str\n" +
		"    return \"boom\"\n" +
		"set main with\n" +
		"    try fail() catch err\n" +
		"        print(err)"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "err_i32_str") {
		t.Errorf("expected an err_i32_str typedef, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, "err_i32_str_err(") {
		t.Errorf("expected fail's body to construct an _err value, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, ".ok) {") {
		t.Errorf("expected the caller's ok-check branch, got:\n%s", r.C)
	}
}

// TestCompileParallelBlock covers scenario 6: two zero-arg calls dispatched
// to their own threads and joined before the next statement.
func TestCompileParallelBlock(t *testing.T) {
	src := "set show_a with\n" +
		"    print(100)\n" +
		"set show_b with\n" +
		"    print(200)\n" +
		"set main with\n" +
		"    parallel\n" +
		"        show_a()\n" +
		"        show_b()"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, "__1im_par_runner") {
		t.Errorf("expected the parallel-runner shim to be emitted, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, "pthread_create") || !strings.Contains(r.C, "pthread_join") {
		t.Errorf("expected pthread_create/pthread_join calls, got:\n%s", r.C)
	}
}

// TestCompileLexError verifies the lexer phase short-circuits the pipeline.
func TestCompileLexError(t *testing.T) {
	r := Compile("set x to 1 $ 2", nil)
	if !r.HasErrors() {
		t.Fatalf("expected a lexical error for '$', got none")
	}
	if r.C != "" {
		t.Errorf("expected no C output on a lex error, got:\n%s", r.C)
	}
}

// TestCompileSemanticError verifies an undefined symbol is reported without
// ever reaching codegen.
func TestCompileSemanticError(t *testing.T) {
	r := Compile("print(undeclared)", nil)
	if !r.HasErrors() {
		t.Fatalf("expected a semantic error for an undeclared symbol, got none")
	}
	if r.C != "" {
		t.Errorf("expected no C output on a semantic error, got:\n%s", r.C)
	}
}

// TestCompilePrintFloatUsesPercentF exercises the float branch of
// generatePrintStmt: both widths print with %f (not %g, which would switch
// to exponential notation and drop trailing zeros for some magnitudes), cast
// to match their own width.
func TestCompilePrintFloatUsesPercentF(t *testing.T) {
	src := "set ratio as f32 to 3.5\n" +
		"set precise as f64 to 3.5\n" +
		"print(ratio)\n" +
		"print(precise)"
	r := Compile(src, nil)
	if r.HasErrors() {
		t.Fatalf(noErrorsExpected, diagMessages(r))
	}
	if !strings.Contains(r.C, `printf("%f\n", (float)(ratio));`) {
		t.Errorf("expected an f32 print cast to float with %%f, got:\n%s", r.C)
	}
	if !strings.Contains(r.C, `printf("%f\n", (double)(precise));`) {
		t.Errorf("expected an f64 print cast to double with %%f, got:\n%s", r.C)
	}
}

// TestCompileArrayReassignmentRefused exercises the codegen-capability
// rejection of whole-array reassignment.
func TestCompileArrayReassignmentRefused(t *testing.T) {
	src := "set nums to [1,2,3]\nset nums to [4,5,6]"
	r := Compile(src, nil)
	if !r.HasErrors() {
		t.Fatalf("expected array reassignment to be refused, got none")
	}
}

// TestCompileParallelWhileRefused exercises the rejection of `parallel`
// applied to a while loop.
func TestCompileParallelWhileRefused(t *testing.T) {
	src := "set i to 0\nparallel loop while i < 3\n    set i to i + 1"
	r := Compile(src, nil)
	if !r.HasErrors() {
		t.Fatalf("expected parallel while to be refused, got none")
	}
}
