package codegen

import (
	"testing"

	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

func i32() semantics.Type { return &semantics.PrimitiveType{Name: langtypes.TYPE_I32} }
func str() semantics.Type { return &semantics.PrimitiveType{Name: langtypes.TYPE_STRING} }

func TestCKeyPrimitive(t *testing.T) {
	if got := cKey(i32()); got != "i32" {
		t.Errorf("cKey(i32) = %q, want i32", got)
	}
}

func TestCKeyFixedArray(t *testing.T) {
	arr := &semantics.ArrayType{Fixed: true, Len: 3, Elem: i32()}
	if got := cKey(arr); got != "arr3_i32" {
		t.Errorf("cKey(fixed array) = %q, want arr3_i32", got)
	}
}

func TestCKeySlice(t *testing.T) {
	arr := &semantics.ArrayType{Fixed: false, Elem: i32()}
	if got := cKey(arr); got != "slice_i32" {
		t.Errorf("cKey(slice) = %q, want slice_i32", got)
	}
}

func TestCKeyErrorUnion(t *testing.T) {
	eu := &semantics.ErrorUnionType{Ok: i32(), Err: str()}
	if got := cKey(eu); got != "err_i32_str" {
		t.Errorf("cKey(error union) = %q, want err_i32_str", got)
	}
}

// TestCKeyDeduplicates checks that two structurally identical but
// distinctly-allocated types produce the same key — the property the
// typedef registry relies on to avoid emitting duplicate definitions.
func TestCKeyDeduplicates(t *testing.T) {
	a := &semantics.ArrayType{Fixed: false, Elem: &semantics.PrimitiveType{Name: langtypes.TYPE_U8}}
	b := &semantics.ArrayType{Fixed: false, Elem: &semantics.PrimitiveType{Name: langtypes.TYPE_U8}}
	if cKey(a) != cKey(b) {
		t.Errorf("expected identical structural keys, got %q and %q", cKey(a), cKey(b))
	}
}

func TestRegisterErrorUnionEmitsOnce(t *testing.T) {
	g := New(nil)
	eu := &semantics.ErrorUnionType{Ok: i32(), Err: str()}
	first := g.registerErrorUnion(eu)
	second := g.registerErrorUnion(eu)
	if first != second {
		t.Errorf("expected the same typedef name both times, got %q and %q", first, second)
	}
	if len(g.typedefOrder) != 1 {
		t.Errorf("expected exactly one typedef emitted, got %d", len(g.typedefOrder))
	}
}

func TestSanitizeNameAvoidsKeywordCollision(t *testing.T) {
	if got := sanitizeName("int"); got != "v_int" {
		t.Errorf("sanitizeName(int) = %q, want v_int", got)
	}
	if got := sanitizeName("total"); got != "total" {
		t.Errorf("sanitizeName(total) = %q, want total unchanged", got)
	}
}

func TestDeclareVarFixedArray(t *testing.T) {
	g := New(nil)
	arr := &semantics.ArrayType{Fixed: true, Len: 5, Elem: i32()}
	got := g.declareVar("nums", arr)
	want := "int32_t nums[5]"
	if got != want {
		t.Errorf("declareVar(fixed array) = %q, want %q", got, want)
	}
}

func TestZeroValue(t *testing.T) {
	if got := zeroValue(str()); got != "NULL" {
		t.Errorf("zeroValue(str) = %q, want NULL", got)
	}
	if got := zeroValue(i32()); got != "{0}" {
		t.Errorf("zeroValue(i32) = %q, want {0}", got)
	}
}
