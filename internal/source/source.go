// Package source holds the position and location primitives shared by every
// pipeline stage, from the lexer's tokens through to codegen diagnostics.
package source

import "fmt"

// Position is a single point in a source file, 1-indexed on both axes.
type Position struct {
	Line   int
	Column int
	Index  int // byte offset into the source, 0-indexed
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location spans from Start to End, inclusive of Start and exclusive of End.
// Both ends are borrowed pointers into token-owned positions; Location never
// allocates its own.
type Location struct {
	Start *Position
	End   *Position
}

// NewLocation builds a Location from two borrowed positions.
func NewLocation(start, end *Position) *Location {
	return &Location{Start: start, End: end}
}

func (l *Location) String() string {
	if l == nil || l.Start == nil {
		return "?"
	}
	if l.End == nil {
		return l.Start.String()
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}
