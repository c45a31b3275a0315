package semantics

import "testing"

func TestSymbolTableLookupFindsLocal(t *testing.T) {
	table := NewSymbolTable(nil)
	table.Declare(NewSymbol("x", SymbolVar, &PrimitiveType{}, nil))
	sym, ok := table.Lookup("x")
	if !ok || sym.Name != "x" {
		t.Fatalf("expected to find x, got %v %v", sym, ok)
	}
}

func TestSymbolTableLookupWalksAncestors(t *testing.T) {
	outer := NewSymbolTable(nil)
	outer.Declare(NewSymbol("x", SymbolVar, &PrimitiveType{}, nil))
	inner := NewSymbolTable(outer)
	sym, ok := inner.Lookup("x")
	if !ok || sym.Name != "x" {
		t.Fatalf("expected Lookup to walk to the outer scope, got %v %v", sym, ok)
	}
}

func TestSymbolTableLookupLocalIgnoresAncestors(t *testing.T) {
	outer := NewSymbolTable(nil)
	outer.Declare(NewSymbol("x", SymbolVar, &PrimitiveType{}, nil))
	inner := NewSymbolTable(outer)
	_, ok := inner.LookupLocal("x")
	if ok {
		t.Fatalf("expected LookupLocal to not see the outer scope's x")
	}
}

func TestSymbolTableLookupMissingReturnsFalse(t *testing.T) {
	table := NewSymbolTable(nil)
	_, ok := table.Lookup("nope")
	if ok {
		t.Fatalf("expected Lookup(nope) to report false")
	}
}

func TestSymbolTableAllLocalExcludesAncestors(t *testing.T) {
	outer := NewSymbolTable(nil)
	outer.Declare(NewSymbol("x", SymbolVar, &PrimitiveType{}, nil))
	inner := NewSymbolTable(outer)
	inner.Declare(NewSymbol("y", SymbolVar, &PrimitiveType{}, nil))
	all := inner.AllLocal()
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 local symbol, got %d", len(all))
	}
	if _, ok := all["y"]; !ok {
		t.Errorf("expected y in AllLocal, got %v", all)
	}
}
