package semantics

import (
	"fmt"

	"github.com/melihbirim/1im-pl/internal/langtypes"
)

// Type is a semantic type or pseudo-type participating in the analyzer's
// typing judgements. Two pseudo-types — IntLitType and FloatLitType —
// never appear in the AST's closed type sum; they exist only to let a
// freshly written literal unify with whatever concrete numeric type its
// context expects (§4.4), instead of being over-promoted to a default.
type Type interface {
	String() string
}

// PrimitiveType is one of the 13 fixed primitives.
type PrimitiveType struct {
	Name langtypes.TYPE_NAME
}

func (t *PrimitiveType) String() string { return t.Name.String() }

// IntLitType is the placeholder type of an as-yet-ununified integer literal.
type IntLitType struct{}

func (t *IntLitType) String() string { return "int_lit" }

// FloatLitType is the placeholder type of an as-yet-ununified float literal.
type FloatLitType struct{}

func (t *FloatLitType) String() string { return "float_lit" }

// ArrayType covers both the fixed-length array{len,elem} and the
// slice{elem} compound types; Fixed distinguishes which.
type ArrayType struct {
	Fixed bool
	Len   int // meaningful only when Fixed
	Elem  Type
}

func (t *ArrayType) String() string {
	if t.Fixed {
		return fmt.Sprintf("array{%d,%s}", t.Len, t.Elem)
	}
	return fmt.Sprintf("slice{%s}", t.Elem)
}

// ErrorUnionType is error_union{ok,err}, written `T!E` in source.
type ErrorUnionType struct {
	Ok  Type
	Err Type
}

func (t *ErrorUnionType) String() string { return fmt.Sprintf("%s!%s", t.Ok, t.Err) }

// FunctionParam is one entry of a FunctionType's parameter list.
type FunctionParam struct {
	Name string
	Type Type
}

// FunctionType is a function's signature: parameter types plus a return
// type (nil for void).
type FunctionType struct {
	Params     []FunctionParam
	ReturnType Type // nil means void
}

func (t *FunctionType) String() string {
	s := "fn("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + " as " + p.Type.String()
	}
	s += ")"
	if t.ReturnType != nil {
		s += " returns " + t.ReturnType.String()
	}
	return s
}

// NullType is the type of the `null` literal; it unifies only with `str`
// and with the `str` side of an error union (§4.4 — "for now", per the
// spec's own open question on the matter).
type NullType struct{}

func (t *NullType) String() string { return "null" }

// Invalid stands in for a type the analyzer could not determine, so a
// downstream check doesn't cascade a second diagnostic from the same root
// cause.
type Invalid struct{}

func (t *Invalid) String() string { return "invalid" }

// IsInvalid reports whether t is the Invalid placeholder (including nil).
func IsInvalid(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(*Invalid)
	return ok
}

func IsIntLit(t Type) bool {
	_, ok := t.(*IntLitType)
	return ok
}

func IsFloatLit(t Type) bool {
	_, ok := t.(*FloatLitType)
	return ok
}

func IsBool(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Name == langtypes.TYPE_BOOL
}

func IsNumeric(t Type) bool {
	if IsIntLit(t) || IsFloatLit(t) {
		return true
	}
	p, ok := t.(*PrimitiveType)
	return ok && (p.Name.IsInteger() || p.Name.IsFloat())
}

// TypesEqual reports structural equality: two primitives are equal by
// name, two arrays/slices by fixedness+len+equal element, two error
// unions by equal ok+err.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return false
	}
	switch at := a.(type) {
	case *PrimitiveType:
		bt, ok := b.(*PrimitiveType)
		return ok && at.Name == bt.Name
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && at.Fixed == bt.Fixed && at.Len == bt.Len && TypesEqual(at.Elem, bt.Elem)
	case *ErrorUnionType:
		bt, ok := b.(*ErrorUnionType)
		return ok && TypesEqual(at.Ok, bt.Ok) && TypesEqual(at.Err, bt.Err)
	case *NullType:
		_, ok := b.(*NullType)
		return ok
	case *Invalid:
		return false
	}
	return false
}

// Unify resolves a literal placeholder against an expected concrete type,
// per §4.4's literal-type unification rule: an int_lit unifies with any
// concrete integer type, a float_lit with any concrete float type. A
// non-placeholder type is returned unchanged. Returns nil if the
// placeholder cannot unify with expected.
func Unify(expected, actual Type) Type {
	if IsIntLit(actual) {
		if expected == nil {
			return DefaultInt()
		}
		if p, ok := expected.(*PrimitiveType); ok && p.Name.IsInteger() {
			return expected
		}
		return nil
	}
	if IsFloatLit(actual) {
		if expected == nil {
			return DefaultFloat()
		}
		if p, ok := expected.(*PrimitiveType); ok && p.Name.IsFloat() {
			return expected
		}
		return nil
	}
	return actual
}

// DefaultInt and DefaultFloat are the fallback concrete types a literal
// placeholder resolves to when no expected type is available (§9).
func DefaultInt() Type   { return &PrimitiveType{Name: langtypes.TYPE_I32} }
func DefaultFloat() Type { return &PrimitiveType{Name: langtypes.TYPE_F64} }

// Assignable reports whether a value of type actual may be stored into a
// binding of type expected, after literal-placeholder resolution and
// null's str-only rule.
func Assignable(expected, actual Type) bool {
	if IsInvalid(expected) || IsInvalid(actual) {
		return true // already diagnosed; don't cascade
	}
	// A bare value (not itself an error union) is assignable to an
	// error-union-typed destination when it fits either side — the `fail
	// returns i32!str` / `return "boom"` pattern of §8's scenario 5,
	// resolved to whichever of Ok/Err the value's type actually matches.
	if eu, ok := expected.(*ErrorUnionType); ok {
		if aeu, ok := actual.(*ErrorUnionType); ok {
			return TypesEqual(eu, aeu)
		}
		return Assignable(eu.Ok, actual) || Assignable(eu.Err, actual)
	}
	if IsIntLit(actual) || IsFloatLit(actual) {
		return Unify(expected, actual) != nil
	}
	if _, ok := actual.(*NullType); ok {
		// The error-union case is handled above: Assignable recurses into
		// Ok/Err, and this same str-only rule applies there too.
		p, ok := expected.(*PrimitiveType)
		return ok && p.Name == langtypes.TYPE_STRING
	}
	if at, ok := actual.(*ArrayType); ok {
		if et, ok := expected.(*ArrayType); ok {
			// A slice-typed destination may also accept an array literal's
			// value (§4.4's "Typed slice assignment" rule); arrays never
			// accept slices.
			if !et.Fixed {
				return TypesEqual(et.Elem, at.Elem)
			}
		}
	}
	return TypesEqual(expected, actual)
}
