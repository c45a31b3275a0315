package token

import "testing"

func TestStringKnownKind(t *testing.T) {
	if got := SET.String(); got != "set" {
		t.Errorf("expected SET.String() == \"set\", got %q", got)
	}
}

func TestStringUnknownKindFallsBack(t *testing.T) {
	unknown := Kind(9999)
	if got := unknown.String(); got != "unknown" {
		t.Errorf("expected an out-of-range Kind to stringify as \"unknown\", got %q", got)
	}
}

func TestKeywordsCoversEveryTypeKeyword(t *testing.T) {
	for kind := range TypeKeywords {
		found := false
		for _, k := range Keywords {
			if k == kind {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("TypeKeywords entry %v has no matching Keywords lexeme", kind)
		}
	}
}

func TestKeywordsLooksUpReservedWord(t *testing.T) {
	if Keywords["loop"] != LOOP {
		t.Errorf("expected \"loop\" to map to LOOP")
	}
	if _, ok := Keywords["notakeyword"]; ok {
		t.Errorf("expected an arbitrary identifier to be absent from Keywords")
	}
}

func TestTypeKeywordsExcludesNonTypeKeyword(t *testing.T) {
	if TypeKeywords[SET] {
		t.Errorf("expected SET to not be classified as a type keyword")
	}
	if !TypeKeywords[VOID] {
		t.Errorf("expected VOID to be classified as a type keyword")
	}
}
