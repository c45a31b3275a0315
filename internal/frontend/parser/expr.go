package parser

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
)

// parseExpr parses a full expression. Range syntax (`..`/`..=`) is
// deliberately not part of this chain — it is only legal as a for_loop
// iterable (§4.2), parsed instead by parseForIterable.
func (p *Parser) parseExpr() ast.Expression {
	expr := p.parseLogicalOr()
	if p.check(token.DOT_DOT) || p.check(token.DOT_DOT_EQ) {
		p.diag.Add(diagnostics.RangeOutsideForLoop(p.filepath, p.locOf(p.peek())))
	}
	return expr
}

// parseForIterable is the one grammar position where a range expression is
// legal; a plain expression (e.g. an already-built slice or array) is
// equally legal here.
func (p *Parser) parseForIterable() ast.Expression {
	start := p.peek()
	left := p.parseLogicalOr()
	if p.match(token.DOT_DOT, token.DOT_DOT_EQ) {
		inclusive := p.previous().Kind == token.DOT_DOT_EQ
		right := p.parseLogicalOr()
		return p.arena.NewRange(left, right, inclusive, p.spanFrom(start))
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Expression {
	start := p.peek()
	left := p.parseLogicalAnd()
	for p.match(token.OR) {
		right := p.parseLogicalAnd()
		left = p.arena.NewBinaryOp(ast.OpBoolOr, left, right, p.spanFrom(start))
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	start := p.peek()
	left := p.parseComparison()
	for p.match(token.AND) {
		right := p.parseComparison()
		left = p.arena.NewBinaryOp(ast.OpBoolAnd, left, right, p.spanFrom(start))
	}
	return left
}

var comparisonOps = map[token.Kind]ast.BinaryOperator{
	token.EQ_EQ:  ast.OpEq,
	token.NOT_EQ: ast.OpNeq,
	token.LT:     ast.OpLt,
	token.LT_EQ:  ast.OpLte,
	token.GT:     ast.OpGt,
	token.GT_EQ:  ast.OpGte,
}

// parseComparison implements the single non-chaining comparison tier: at
// most one comparison operator is accepted between a pair of additive
// sub-expressions. `a < b < c` is a syntax error (§4.2), unlike the
// donor's looping parseComparison which would happily chain them.
func (p *Parser) parseComparison() ast.Expression {
	start := p.peek()
	left := p.parseAdditive()

	op, ok := comparisonOps[p.peek().Kind]
	if !ok {
		return left
	}
	p.advance()
	right := p.parseAdditive()
	result := ast.Expression(p.arena.NewBinaryOp(op, left, right, p.spanFrom(start)))

	if _, chained := comparisonOps[p.peek().Kind]; chained {
		p.diag.Add(diagnostics.ChainedComparison(p.filepath, p.locOf(p.peek())))
	}
	return result
}

func (p *Parser) parseAdditive() ast.Expression {
	start := p.peek()
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := ast.OpAdd
		if p.peek().Kind == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = p.arena.NewBinaryOp(op, left, right, p.spanFrom(start))
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	start := p.peek()
	left := p.parseUnary()
	for {
		var op ast.BinaryOperator
		switch p.peek().Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		left = p.arena.NewBinaryOp(op, left, right, p.spanFrom(start))
	}
}

// parseUnary handles the two unary operators and the `try` prefix, both
// right-associative: `not not x` and `try try f()` parse as nested nodes.
func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.NOT) || p.check(token.MINUS) {
		start := p.peek()
		op := ast.OpBoolNot
		if start.Kind == token.MINUS {
			op = ast.OpNegate
		}
		p.advance()
		operand := p.parseUnary()
		return p.arena.NewUnaryOp(op, operand, p.spanFrom(start))
	}
	if p.check(token.TRY) {
		start := p.advance()
		operand := p.parseUnary()
		return p.arena.NewTryExpr(operand, p.spanFrom(start))
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	start := p.peek()
	expr := p.parsePrimary()

	for {
		switch {
		case p.check(token.LPAREN):
			p.advance()
			var args []ast.Expression
			if !p.check(token.RPAREN) {
				args = append(args, p.parseExpr())
				for p.match(token.COMMA) {
					args = append(args, p.parseExpr())
				}
			}
			p.expect(token.RPAREN)
			if _, ok := expr.(*ast.Variable); !ok {
				p.diag.Add(diagnostics.InvalidCallTarget(p.filepath, p.locOf(start)))
			}
			expr = p.arena.NewCall(expr, args, p.spanFrom(start))
		case p.check(token.LBRACKET):
			p.advance()
			index := p.parseExpr()
			p.expect(token.RBRACKET)
			expr = p.arena.NewIndexExpr(expr, index, p.spanFrom(start))
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case token.INT_LITERAL:
		p.advance()
		return p.arena.NewIntLiteral(tok.Lexeme, *p.locOf(tok))
	case token.FLOAT_LITERAL:
		p.advance()
		return p.arena.NewFloatLiteral(tok.Lexeme, *p.locOf(tok))
	case token.STRING_LITERAL:
		p.advance()
		return p.arena.NewStringLiteral(tok.Lexeme, *p.locOf(tok))
	case token.TRUE:
		p.advance()
		return p.arena.NewBoolLiteral(true, *p.locOf(tok))
	case token.FALSE:
		p.advance()
		return p.arena.NewBoolLiteral(false, *p.locOf(tok))
	case token.NULL:
		p.advance()
		return p.arena.NewNullLiteral(*p.locOf(tok))
	case token.NAME:
		p.advance()
		return p.arena.NewVariable(tok.Lexeme, *p.locOf(tok))
	case token.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	default:
		p.errorf("expected an expression")
		p.advance()
		return p.arena.NewNullLiteral(*p.locOf(tok))
	}
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	start := p.expect(token.LBRACKET)
	var elements []ast.Expression
	if !p.check(token.RBRACKET) {
		elements = append(elements, p.parseExpr())
		for p.match(token.COMMA) {
			if p.check(token.RBRACKET) {
				break
			}
			elements = append(elements, p.parseExpr())
		}
	}
	p.expect(token.RBRACKET)
	return p.arena.NewArrayLiteral(elements, p.spanFrom(start))
}
