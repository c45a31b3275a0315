package semantics

import (
	"testing"

	"github.com/melihbirim/1im-pl/internal/langtypes"
)

func prim(n langtypes.TYPE_NAME) Type { return &PrimitiveType{Name: n} }

func TestUnifyIntLitResolvesToExpected(t *testing.T) {
	got := Unify(prim(langtypes.TYPE_I64), &IntLitType{})
	if !TypesEqual(got, prim(langtypes.TYPE_I64)) {
		t.Errorf("expected int_lit to unify with i64, got %v", got)
	}
}

func TestUnifyIntLitNoExpectedDefaultsToI32(t *testing.T) {
	got := Unify(nil, &IntLitType{})
	if !TypesEqual(got, DefaultInt()) {
		t.Errorf("expected int_lit with no expected type to default to i32, got %v", got)
	}
}

func TestUnifyIntLitAgainstNonIntegerFails(t *testing.T) {
	got := Unify(prim(langtypes.TYPE_STRING), &IntLitType{})
	if got != nil {
		t.Errorf("expected int_lit to fail to unify with str, got %v", got)
	}
}

func TestUnifyFloatLitResolvesToExpected(t *testing.T) {
	got := Unify(prim(langtypes.TYPE_F32), &FloatLitType{})
	if !TypesEqual(got, prim(langtypes.TYPE_F32)) {
		t.Errorf("expected float_lit to unify with f32, got %v", got)
	}
}

func TestUnifyPassesThroughConcreteType(t *testing.T) {
	concrete := prim(langtypes.TYPE_BOOL)
	got := Unify(prim(langtypes.TYPE_I32), concrete)
	if got != concrete {
		t.Errorf("expected a non-placeholder type to pass through unchanged")
	}
}

func TestTypesEqualPrimitives(t *testing.T) {
	if !TypesEqual(prim(langtypes.TYPE_I32), prim(langtypes.TYPE_I32)) {
		t.Errorf("expected two i32 PrimitiveTypes to be equal")
	}
	if TypesEqual(prim(langtypes.TYPE_I32), prim(langtypes.TYPE_I64)) {
		t.Errorf("expected i32 and i64 to be unequal")
	}
}

func TestTypesEqualArrays(t *testing.T) {
	a := &ArrayType{Fixed: true, Len: 3, Elem: prim(langtypes.TYPE_I32)}
	b := &ArrayType{Fixed: true, Len: 3, Elem: prim(langtypes.TYPE_I32)}
	c := &ArrayType{Fixed: true, Len: 4, Elem: prim(langtypes.TYPE_I32)}
	if !TypesEqual(a, b) {
		t.Errorf("expected structurally identical arrays to be equal")
	}
	if TypesEqual(a, c) {
		t.Errorf("expected arrays of different length to be unequal")
	}
}

func TestAssignableErrorUnionAcceptsOkSide(t *testing.T) {
	eu := &ErrorUnionType{Ok: prim(langtypes.TYPE_I32), Err: prim(langtypes.TYPE_STRING)}
	if !Assignable(eu, &IntLitType{}) {
		t.Errorf("expected an int literal to be assignable to i32!str's Ok side")
	}
}

func TestAssignableErrorUnionAcceptsErrSide(t *testing.T) {
	eu := &ErrorUnionType{Ok: prim(langtypes.TYPE_I32), Err: prim(langtypes.TYPE_STRING)}
	if !Assignable(eu, prim(langtypes.TYPE_STRING)) {
		t.Errorf("expected a str value to be assignable to i32!str's Err side")
	}
}

func TestAssignableErrorUnionRejectsNeitherSide(t *testing.T) {
	eu := &ErrorUnionType{Ok: prim(langtypes.TYPE_I32), Err: prim(langtypes.TYPE_STRING)}
	if Assignable(eu, prim(langtypes.TYPE_BOOL)) {
		t.Errorf("expected a bool value to be refused against i32!str")
	}
}

func TestAssignableErrorUnionToErrorUnionRequiresExactMatch(t *testing.T) {
	eu := &ErrorUnionType{Ok: prim(langtypes.TYPE_I32), Err: prim(langtypes.TYPE_STRING)}
	other := &ErrorUnionType{Ok: prim(langtypes.TYPE_I64), Err: prim(langtypes.TYPE_STRING)}
	if Assignable(eu, other) {
		t.Errorf("expected a structurally different error union to be refused")
	}
	if !Assignable(eu, eu) {
		t.Errorf("expected an identical error union to be accepted")
	}
}

func TestAssignableNullOnlyFitsString(t *testing.T) {
	if !Assignable(prim(langtypes.TYPE_STRING), &NullType{}) {
		t.Errorf("expected null to be assignable to str")
	}
	if Assignable(prim(langtypes.TYPE_I32), &NullType{}) {
		t.Errorf("expected null to be refused against i32")
	}
}

func TestAssignableSliceAcceptsArrayLiteralOfSameElem(t *testing.T) {
	slice := &ArrayType{Fixed: false, Elem: prim(langtypes.TYPE_I32)}
	arr := &ArrayType{Fixed: true, Len: 3, Elem: prim(langtypes.TYPE_I32)}
	if !Assignable(slice, arr) {
		t.Errorf("expected a slice destination to accept a fixed array literal of the same element type")
	}
}

func TestAssignableArrayRejectsSlice(t *testing.T) {
	arr := &ArrayType{Fixed: true, Len: 3, Elem: prim(langtypes.TYPE_I32)}
	slice := &ArrayType{Fixed: false, Elem: prim(langtypes.TYPE_I32)}
	if Assignable(arr, slice) {
		t.Errorf("expected a fixed-array destination to refuse a slice value")
	}
}

func TestAssignableInvalidAlwaysPasses(t *testing.T) {
	if !Assignable(&Invalid{}, prim(langtypes.TYPE_I32)) {
		t.Errorf("expected Invalid expected type to short-circuit to true")
	}
	if !Assignable(prim(langtypes.TYPE_I32), &Invalid{}) {
		t.Errorf("expected Invalid actual type to short-circuit to true")
	}
}
