package parser

import (
	"strconv"

	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
	"github.com/melihbirim/1im-pl/internal/langtypes"
)

// parseType parses a base type optionally followed by `!E`, the error-union
// suffix (`i32!str` reads as Ok=i32, Err=str).
func (p *Parser) parseType() ast.TypeNode {
	start := p.peek()
	base := p.parseBaseType()
	if p.match(token.BANG) {
		errType := p.parseBaseType()
		return p.arena.NewErrorUnionType(base, errType, p.spanFrom(start))
	}
	return base
}

func (p *Parser) parseBaseType() ast.TypeNode {
	tok := p.peek()
	if token.TypeKeywords[tok.Kind] {
		p.advance()
		name, _ := langtypes.Lookup(tok.Lexeme)
		return p.arena.NewPrimitiveType(name, *p.locOf(tok))
	}
	if p.check(token.LBRACKET) {
		return p.parseArrayOrSliceType()
	}
	p.errorf("expected a type")
	return nil
}

// parseArrayOrSliceType distinguishes the fixed-length `[N]T` form from the
// slice `[]T` form by whether an integer literal appears directly inside
// the brackets.
func (p *Parser) parseArrayOrSliceType() ast.TypeNode {
	start := p.expect(token.LBRACKET)
	if p.match(token.RBRACKET) {
		elem := p.parseBaseType()
		return p.arena.NewSliceType(elem, p.spanFrom(start))
	}
	sizeTok := p.expect(token.INT_LITERAL)
	p.expect(token.RBRACKET)
	elem := p.parseBaseType()
	size, _ := strconv.Atoi(sizeTok.Lexeme)
	return p.arena.NewArrayType(size, elem, p.spanFrom(start))
}
