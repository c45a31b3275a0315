package diagnostics

import (
	"strings"
	"testing"

	"github.com/melihbirim/1im-pl/internal/source"
)

func labelLoc(line, col int) *source.Location {
	return source.NewLocation(
		&source.Position{Line: line, Column: col},
		&source.Position{Line: line, Column: col + 1},
	)
}

func TestEmitAllToStringWithCachePrintsPrimaryLabel(t *testing.T) {
	bag := NewDiagnosticBag("<test>")
	d := TypeMismatch("<test>", labelLoc(1, 5), "i32", "str")
	bag.Add(d)
	out := bag.EmitAllToStringWithCache([]string{"set x as i32 to \"nope\""})
	if !strings.Contains(out, "type mismatch") {
		t.Errorf("expected the diagnostic message in the rendered output, got:\n%s", out)
	}
	if !strings.Contains(out, "1 error(s)") {
		t.Errorf("expected a 1-error summary line, got:\n%s", out)
	}
}

func TestEmitAllToStringWithCacheRendersCompactDualLabel(t *testing.T) {
	bag := NewDiagnosticBag("<test>")
	d := RedeclaredSymbol("<test>", labelLoc(2, 5), labelLoc(2, 10), "x")
	bag.Add(d)
	out := bag.EmitAllToStringWithCache([]string{"set x to 1", "set x to 2  set x to 3"})
	if !strings.Contains(out, "redeclared here") || !strings.Contains(out, "previously declared here") {
		t.Errorf("expected both the primary and secondary label messages, got:\n%s", out)
	}
}

func TestEmitAllToStringWithCacheWarningOnlySummary(t *testing.T) {
	bag := NewDiagnosticBag("<test>")
	bag.Add(NewWarning("heads up"))
	out := bag.EmitAllToStringWithCache(nil)
	if !strings.Contains(out, "succeeded with 1 warning(s)") {
		t.Errorf("expected a warning-only summary line, got:\n%s", out)
	}
}

func TestEmitAllToHTMLEscapesAndStyles(t *testing.T) {
	bag := NewDiagnosticBag("<test>")
	bag.Add(TypeMismatch("<test>", labelLoc(1, 1), "i32", "str"))
	html := bag.EmitAllToHTMLWithCache([]string{"set x as i32 to \"nope\""})
	if strings.Contains(html, "\033") {
		t.Errorf("expected no raw ANSI escapes left in the HTML output")
	}
	if !strings.Contains(html, "<span class=") {
		t.Errorf("expected at least one styled span in the HTML output, got:\n%s", html)
	}
}
