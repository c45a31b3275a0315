package codegen

import (
	"fmt"

	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

// cKey is the textual structural encoding used to both name and deduplicate
// a composite type's typedef (§9 — "Structural keying"): two occurrences of
// the same structural type share one typedef and constructor set.
func cKey(t semantics.Type) string {
	switch v := t.(type) {
	case *semantics.PrimitiveType:
		return v.Name.String()
	case *semantics.ArrayType:
		if v.Fixed {
			return fmt.Sprintf("arr%d_%s", v.Len, cKey(v.Elem))
		}
		return "slice_" + cKey(v.Elem)
	case *semantics.ErrorUnionType:
		return "err_" + cKey(v.Ok) + "_" + cKey(v.Err)
	}
	return "invalid"
}

// concretize resolves a literal placeholder to its default concrete type
// (§9) — used whenever a type recorded by the analyzer might still be an
// unresolved int_lit/float_lit by the time codegen needs an actual C type
// for it (e.g. a for-loop's range endpoints when both sides were literals).
func concretize(t semantics.Type) semantics.Type {
	if semantics.IsIntLit(t) {
		return semantics.DefaultInt()
	}
	if semantics.IsFloatLit(t) {
		return semantics.DefaultFloat()
	}
	if t == nil {
		return &semantics.Invalid{}
	}
	return t
}

// zeroValue is the C literal used to zero the unused side of an err_T_E
// value: NULL for str, false for bool, {0} otherwise.
func zeroValue(t semantics.Type) string {
	if p, ok := t.(*semantics.PrimitiveType); ok {
		switch {
		case p.Name == langtypes.TYPE_STRING:
			return "NULL"
		case p.Name == langtypes.TYPE_BOOL:
			return "false"
		}
	}
	return "{0}"
}

// cType returns the C type name for t in a non-array-declarator context —
// usable directly as a field/variable type, a cast target, or a function
// return type. Fixed arrays never flow through here directly except as an
// error-union or slice element, which the type invariants (§3) forbid, so
// the fixed-array branch is a defensive fallback only.
func (g *Generator) cType(t semantics.Type) string {
	t = concretize(t)
	switch v := t.(type) {
	case *semantics.PrimitiveType:
		return v.Name.CType()
	case *semantics.ArrayType:
		if v.Fixed {
			return g.cType(v.Elem)
		}
		return g.registerSlice(v)
	case *semantics.ErrorUnionType:
		return g.registerErrorUnion(v)
	case *semantics.NullType:
		return "const char*"
	}
	return "void"
}

// registerSlice materialises slice{T} -> typedef struct { T* data; size_t
// len; } slice_<T>; the first time a given element type is seen (§4.5).
func (g *Generator) registerSlice(t *semantics.ArrayType) string {
	elemC := g.cType(t.Elem)
	key := cKey(t)
	if g.typedefEmitted[key] {
		return key
	}
	g.typedefEmitted[key] = true
	g.typedefOrder = append(g.typedefOrder, fmt.Sprintf(
		"typedef struct { %s* data; size_t len; } %s;\n", elemC, key))
	return key
}

// registerErrorUnion materialises error_union{T,E} -> the tagged struct plus
// its _ok/_err static-inline constructors (§4.5).
func (g *Generator) registerErrorUnion(t *semantics.ErrorUnionType) string {
	key := cKey(t)
	if g.typedefEmitted[key] {
		return key
	}
	g.typedefEmitted[key] = true

	okC := g.cType(t.Ok)
	errC := g.cType(t.Err)
	zeroOk := zeroValue(t.Ok)
	zeroErr := zeroValue(t.Err)

	def := fmt.Sprintf("typedef struct { bool ok; %s value; %s err; } %s;\n", okC, errC, key)
	ok := fmt.Sprintf("static inline %s %s_ok(%s value) { %s r; r.ok = true; r.value = value; r.err = %s; return r; }\n",
		key, key, okC, key, zeroErr)
	errCtor := fmt.Sprintf("static inline %s %s_err(%s err) { %s r; r.ok = false; r.value = %s; r.err = err; return r; }\n",
		key, key, errC, key, zeroOk)
	g.typedefOrder = append(g.typedefOrder, def+ok+errCtor)
	return key
}

// registerArrRet materialises the by-value return wrapper for a fixed-size
// array return type (§4.5 — C cannot return a raw array by value).
func (g *Generator) registerArrRet(t *semantics.ArrayType) string {
	elemC := g.cType(t.Elem)
	key := "arrret_" + cKey(t)
	if g.typedefEmitted[key] {
		return key
	}
	g.typedefEmitted[key] = true
	g.typedefOrder = append(g.typedefOrder, fmt.Sprintf(
		"typedef struct { %s value[%d]; } %s;\n", elemC, t.Len, key))
	return key
}

// declareVar renders a full C declarator — "T name" or, for a fixed array,
// "T name[N]" — since C's array declarator syntax is postfix and can't be
// expressed through cType alone.
func (g *Generator) declareVar(name string, t semantics.Type) string {
	t = concretize(t)
	if arr, ok := t.(*semantics.ArrayType); ok && arr.Fixed {
		return fmt.Sprintf("%s %s[%d]", g.cType(arr.Elem), sanitizeName(name), arr.Len)
	}
	return fmt.Sprintf("%s %s", g.cType(t), sanitizeName(name))
}

// reservedC are the C11 keywords (plus a couple of libc-reserved names) that
// would collide with an identically-named source identifier.
var reservedC = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"bool": true, "true": true, "false": true, "NULL": true,
}

// sanitizeName avoids an emitted identifier colliding with a C keyword.
func sanitizeName(name string) string {
	if reservedC[name] {
		return "v_" + name
	}
	return name
}
