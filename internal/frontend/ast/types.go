package ast

import (
	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/source"
)

// PrimitiveTypeNode names one of the 13 primitive types directly, e.g. the
// `i32` in `set x as i32 to 0`.
type PrimitiveTypeNode struct {
	Name langtypes.TYPE_NAME
	source.Location
}

func (t *PrimitiveTypeNode) INode()                {}
func (t *PrimitiveTypeNode) TNode()                {}
func (t *PrimitiveTypeNode) Loc() *source.Location { return &t.Location }

// ArrayTypeNode is a fixed-length array type, `[N]T`.
type ArrayTypeNode struct {
	Len  int
	Elem TypeNode
	source.Location
}

func (t *ArrayTypeNode) INode()                {}
func (t *ArrayTypeNode) TNode()                {}
func (t *ArrayTypeNode) Loc() *source.Location { return &t.Location }

// SliceTypeNode is a length-carrying slice type, `[]T`.
type SliceTypeNode struct {
	Elem TypeNode
	source.Location
}

func (t *SliceTypeNode) INode()                {}
func (t *SliceTypeNode) TNode()                {}
func (t *SliceTypeNode) Loc() *source.Location { return &t.Location }

// ErrorUnionTypeNode is a result type carrying either an Ok value or an Err
// value, written `T!E` in source (e.g. `i32!str`).
type ErrorUnionTypeNode struct {
	Ok  TypeNode
	Err TypeNode
	source.Location
}

func (t *ErrorUnionTypeNode) INode()                {}
func (t *ErrorUnionTypeNode) TNode()                {}
func (t *ErrorUnionTypeNode) Loc() *source.Location { return &t.Location }
