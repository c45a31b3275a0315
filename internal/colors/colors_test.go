package colors

import (
	"strings"
	"testing"
)

func TestWrapEmptyStringStaysEmpty(t *testing.T) {
	if got := RED.wrap(""); got != "" {
		t.Errorf("expected wrap(\"\") to stay empty, got %q", got)
	}
}

func TestWrapAddsEscapeAndReset(t *testing.T) {
	got := RED.wrap("boom")
	if !strings.HasPrefix(got, string(RED)) || !strings.HasSuffix(got, reset) {
		t.Errorf("expected wrap to add the color escape and a trailing reset, got %q", got)
	}
}

func TestConvertANSIToHTMLEscapesEntities(t *testing.T) {
	got := ConvertANSIToHTML("a < b & c > d")
	if strings.Contains(got, "<") || strings.Contains(got, ">") || !strings.Contains(got, "&amp;") {
		t.Errorf("expected HTML entity escaping, got %q", got)
	}
}

func TestConvertANSIToHTMLWrapsColoredRunInSpan(t *testing.T) {
	got := ConvertANSIToHTML(string(RED) + "boom" + reset)
	if !strings.Contains(got, `<span class="tok-red">boom</span>`) {
		t.Errorf("expected a tok-red span wrapping the colored text, got %q", got)
	}
}

func TestConvertANSIToHTMLClosesDanglingSpanAtEnd(t *testing.T) {
	got := ConvertANSIToHTML(string(BOLD_CYAN) + "unclosed")
	if !strings.HasSuffix(got, "</span>") {
		t.Errorf("expected a dangling colored run (no reset) to still close its span, got %q", got)
	}
}

func TestConvertANSIToHTMLPlainTextUnchanged(t *testing.T) {
	got := ConvertANSIToHTML("plain text")
	if got != "plain text" {
		t.Errorf("expected plain text with no escapes to pass through unchanged, got %q", got)
	}
}
