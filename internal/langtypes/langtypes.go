// Package langtypes holds the closed set of primitive type names the
// semantic analyzer and code generator both key off of.
package langtypes

// TYPE_NAME identifies one of the language's primitive types.
type TYPE_NAME string

const (
	TYPE_I8     TYPE_NAME = "i8"
	TYPE_I16    TYPE_NAME = "i16"
	TYPE_I32    TYPE_NAME = "i32"
	TYPE_I64    TYPE_NAME = "i64"
	TYPE_U8     TYPE_NAME = "u8"
	TYPE_U16    TYPE_NAME = "u16"
	TYPE_U32    TYPE_NAME = "u32"
	TYPE_U64    TYPE_NAME = "u64"
	TYPE_F32    TYPE_NAME = "f32"
	TYPE_F64    TYPE_NAME = "f64"
	TYPE_BOOL   TYPE_NAME = "bool"
	TYPE_STRING TYPE_NAME = "str"
	TYPE_VOID   TYPE_NAME = "void"
)

func (t TYPE_NAME) String() string {
	return string(t)
}

// IsInteger reports whether t is one of the signed/unsigned integer kinds.
func (t TYPE_NAME) IsInteger() bool {
	switch t {
	case TYPE_I8, TYPE_I16, TYPE_I32, TYPE_I64, TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64:
		return true
	}
	return false
}

// IsUnsigned reports whether t is one of the unsigned integer kinds.
func (t TYPE_NAME) IsUnsigned() bool {
	switch t {
	case TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64:
		return true
	}
	return false
}

// IsFloat reports whether t is one of the floating-point kinds.
func (t TYPE_NAME) IsFloat() bool {
	return t == TYPE_F32 || t == TYPE_F64
}

// Is64Bit reports whether t occupies 64 bits, relevant to loop induction
// variable widening in the code generator.
func (t TYPE_NAME) Is64Bit() bool {
	return t == TYPE_I64 || t == TYPE_U64 || t == TYPE_F64
}

// CType returns the fixed-width C type this primitive lowers to.
func (t TYPE_NAME) CType() string {
	switch t {
	case TYPE_I8:
		return "int8_t"
	case TYPE_I16:
		return "int16_t"
	case TYPE_I32:
		return "int32_t"
	case TYPE_I64:
		return "int64_t"
	case TYPE_U8:
		return "uint8_t"
	case TYPE_U16:
		return "uint16_t"
	case TYPE_U32:
		return "uint32_t"
	case TYPE_U64:
		return "uint64_t"
	case TYPE_F32:
		return "float"
	case TYPE_F64:
		return "double"
	case TYPE_BOOL:
		return "bool"
	case TYPE_STRING:
		return "const char*"
	case TYPE_VOID:
		return "void"
	}
	return "void"
}

// Lookup resolves a source-level type name to a TYPE_NAME, reporting ok=false
// for anything that isn't one of the 13 primitives (a user type, in a
// language without user types, is simply undefined).
func Lookup(name string) (TYPE_NAME, bool) {
	switch TYPE_NAME(name) {
	case TYPE_I8, TYPE_I16, TYPE_I32, TYPE_I64,
		TYPE_U8, TYPE_U16, TYPE_U32, TYPE_U64,
		TYPE_F32, TYPE_F64, TYPE_BOOL, TYPE_STRING, TYPE_VOID:
		return TYPE_NAME(name), true
	}
	return "", false
}
