package lexer

import (
	"testing"

	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
)

const noErrorsExpected = "Expected no diagnostics, got: %v"

func tokenize(t *testing.T, src string) ([]token.Token, *diagnostics.DiagnosticBag) {
	t.Helper()
	diag := diagnostics.NewDiagnosticBag("<test>")
	lx := New([]byte(src), "<test>", diag, false)
	return lx.Tokenize(), diag
}

func kinds(toks []token.Token) []token.Kind {
	var ks []token.Kind
	for _, tk := range toks {
		ks = append(ks, tk.Kind)
	}
	return ks
}

func TestTokenizeEndsInEOF(t *testing.T) {
	toks, diag := tokenize(t, "set x to 1")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected the last token to be EOF, got %v", toks[len(toks)-1].Kind)
	}
}

func TestTokenizeKeywordsAndName(t *testing.T) {
	toks, diag := tokenize(t, "set x to 1")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	got := kinds(toks)
	want := []token.Kind{token.SET, token.NAME, token.TO, token.INT_LITERAL, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %v, want %v", i, got[i], k)
		}
	}
}

func TestTokenizeFloatLiteral(t *testing.T) {
	toks, diag := tokenize(t, "3.14")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	if toks[0].Kind != token.FLOAT_LITERAL || toks[0].Lexeme != "3.14" {
		t.Errorf("expected a float literal 3.14, got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
}

func TestTokenizeDotNotFollowedByDigitIsPlainDot(t *testing.T) {
	toks, diag := tokenize(t, "x.name")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	want := []token.Kind{token.NAME, token.DOT, token.NAME, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %v, want %v", i, got[i], k)
		}
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks, diag := tokenize(t, `"hello"`)
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	if toks[0].Kind != token.STRING_LITERAL || toks[0].Lexeme != "hello" {
		t.Errorf("expected a string literal hello, got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
}

func TestTokenizeUnterminatedStringReportsError(t *testing.T) {
	_, diag := tokenize(t, `"unterminated`)
	if !diag.HasErrors() {
		t.Fatalf("expected an unterminated-string error, got none")
	}
}

func TestTokenizeCommentIsSkipped(t *testing.T) {
	toks, diag := tokenize(t, "set x to 1 # trailing comment\nprint(x)")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	for _, tk := range toks {
		if tk.Kind == token.NAME && tk.Lexeme == "comment" {
			t.Errorf("expected the comment text to be skipped, found token %q", tk.Lexeme)
		}
	}
}

func TestTokenizeNewlineIsSignificant(t *testing.T) {
	toks, diag := tokenize(t, "set x to 1\nset y to 2")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.NEWLINE {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a NEWLINE token between the two statements")
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks, diag := tokenize(t, "== != <= >= .. ..=")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	want := []token.Kind{token.EQ_EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.DOT_DOT, token.DOT_DOT_EQ, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %v, want %v", i, got[i], k)
		}
	}
}

func TestTokenizeUnexpectedCharacterReportsError(t *testing.T) {
	_, diag := tokenize(t, "set x to 1 $ 2")
	if !diag.HasErrors() {
		t.Fatalf("expected an unexpected-character error for '$', got none")
	}
}

func TestTokenizeBangAloneIsErrorUnionMarker(t *testing.T) {
	toks, diag := tokenize(t, "i32!str")
	if diag.HasErrors() {
		t.Fatalf(noErrorsExpected, diag.Diagnostics())
	}
	want := []token.Kind{token.I32, token.BANG, token.STR, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("token %d: got %v, want %v", i, got[i], k)
		}
	}
}
