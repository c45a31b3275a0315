package parser

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
)

// parseSetStmt disambiguates the four set-led constructs by one-token
// lookahead after the bound name: `with` selects a function definition,
// `as` followed by `fn` selects the alternate function-definition spelling,
// `as` followed by a type selects a typed declaration, and `to` selects a
// plain assignment (declaration or reassignment, resolved later by the
// analyzer's scope lookup).
func (p *Parser) parseSetStmt() ast.Node {
	start := p.expect(token.SET)
	nameTok := p.expect(token.NAME)

	switch {
	case p.check(token.WITH):
		return p.parseFunctionDefWith(start, nameTok)
	case p.check(token.AS) && p.peekAt(1).Kind == token.FN:
		return p.parseFunctionDefAsFn(start, nameTok)
	case p.check(token.AS):
		return p.parseTypedAssign(start, nameTok)
	case p.check(token.TO):
		p.advance()
		value := p.parseExpr()
		return p.arena.NewSetAssign(nameTok.Lexeme, value, p.spanFrom(start))
	default:
		p.errorf("expected 'with', 'as', or 'to' after %s", nameTok.Lexeme)
		return nil
	}
}

func (p *Parser) parseTypedAssign(start, nameTok token.Token) *ast.TypedAssign {
	p.expect(token.AS)
	typ := p.parseType()
	p.expect(token.TO)
	value := p.parseExpr()
	return p.arena.NewTypedAssign(nameTok.Lexeme, typ, value, p.spanFrom(start))
}

func (p *Parser) parseFunctionDefWith(start, nameTok token.Token) *ast.FunctionDef {
	p.expect(token.WITH)
	return p.finishFunctionDef(start, nameTok)
}

func (p *Parser) parseFunctionDefAsFn(start, nameTok token.Token) *ast.FunctionDef {
	p.expect(token.AS)
	p.expect(token.FN)
	return p.finishFunctionDef(start, nameTok)
}

func (p *Parser) finishFunctionDef(start, nameTok token.Token) *ast.FunctionDef {
	params := p.parseParamList()
	var retType ast.TypeNode
	if p.match(token.RETURNS) {
		retType = p.parseType()
	}
	body := p.parseBlock(nil)
	return p.arena.NewFunctionDef(nameTok.Lexeme, params, retType, body, p.spanFrom(start))
}

// parseParamList parses a comma-separated `name as T` list with no
// enclosing parentheses — this grammar never parenthesizes a parameter
// list (only calls and grouped expressions use parens, e.g. `add(2, 3)`);
// a zero-parameter function is simply followed immediately by `returns` or
// the body's first newline.
func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(token.NAME) {
		params = append(params, p.parseParam())
		for p.match(token.COMMA) {
			params = append(params, p.parseParam())
		}
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	nameTok := p.expect(token.NAME)
	p.expect(token.AS)
	typ := p.parseType()
	return p.arena.NewParam(nameTok.Lexeme, typ, *p.locOf(nameTok))
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(token.RETURN)
	var value ast.Expression
	if !p.atLineEnd() {
		value = p.parseExpr()
	}
	return p.arena.NewReturnStmt(value, p.spanFrom(start))
}

// parseIfStmt parses `if COND then BODY`, any number of `else if COND then
// BODY` clauses, and an optional terminal bare `else BODY`. Each then/else-if
// body stops early at `else` (elseStop) since that's a sibling clause, not
// nested content; the terminal else body has no stop set of its own.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	thenBody := p.parseBlock(elseStop)

	var elseIfs []*ast.ElseIf
	var elseBody *ast.Block
	for p.check(token.ELSE) {
		elseTok := p.peek()
		if p.peekAt(1).Kind == token.IF {
			p.advance()
			p.advance()
			cond2 := p.parseExpr()
			p.expect(token.THEN)
			body2 := p.parseBlock(elseStop)
			elseIfs = append(elseIfs, p.arena.NewElseIf(cond2, body2, p.spanFrom(elseTok)))
			continue
		}
		p.advance()
		elseBody = p.parseBlock(nil)
		break
	}

	return p.arena.NewIfStmt(cond, thenBody, elseIfs, elseBody, p.spanFrom(start))
}

// parseLoopStmt and parseParallelBlock share parseLoopHeader: `loop while`
// and `loop for` both optionally take a leading `parallel` modifier, while a
// bare `parallel` block (no `loop`) is its own zero-argument-call construct.
func (p *Parser) parseLoopStmt() ast.Node {
	start := p.peek()
	return p.parseLoopHeader(start, false)
}

func (p *Parser) parseParallelBlock() ast.Node {
	start := p.expect(token.PARALLEL)
	if p.check(token.LOOP) {
		return p.parseLoopHeader(start, true)
	}
	body := p.parseBlock(nil)
	return p.arena.NewParallelBlock(body, p.spanFrom(start))
}

func (p *Parser) parseLoopHeader(start token.Token, parallel bool) ast.Node {
	p.expect(token.LOOP)
	switch p.peek().Kind {
	case token.WHILE:
		p.advance()
		cond := p.parseExpr()
		body := p.parseBlock(nil)
		if parallel {
			p.diag.Add(diagnostics.ParallelWhile(p.filepath, p.locOf(start)))
		}
		return p.arena.NewWhileLoop(cond, body, parallel, p.spanFrom(start))
	case token.FOR:
		p.advance()
		nameTok := p.expect(token.NAME)
		p.expect(token.IN)
		iterable := p.parseForIterable()
		body := p.parseBlock(nil)
		return p.arena.NewForLoop(nameTok.Lexeme, iterable, body, parallel, p.spanFrom(start))
	default:
		p.errorf("expected 'while' or 'for' after 'loop'")
		return nil
	}
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	start := p.expect(token.BREAK)
	var value ast.Expression
	if !p.atLineEnd() {
		value = p.parseExpr()
	}
	return p.arena.NewBreakStmt(value, p.spanFrom(start))
}

func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	start := p.expect(token.CONTINUE)
	return p.arena.NewContinueStmt(p.spanFrom(start))
}

// parseTryCatchStmt covers both statement-level spellings: `try E` alone
// (error propagation, legal as an expression-statement) and `try E catch
// [x] BODY` (error handling). The leading `try` is otherwise just another
// prefix expression, parsed by parseUnary, so this reuses parseExpr rather
// than reimplementing try_expr parsing.
func (p *Parser) parseTryCatchStmt() ast.Node {
	start := p.peek()
	expr := p.parseExpr()

	if !p.check(token.CATCH) {
		return p.arena.NewExprStmt(expr, p.spanFrom(start))
	}

	tryExpr, ok := expr.(*ast.TryExpr)
	if !ok {
		p.diag.Add(diagnostics.InvalidTryTarget(p.filepath, p.locOf(p.peek()), "a non-try expression"))
		return p.arena.NewExprStmt(expr, p.spanFrom(start))
	}

	p.advance()
	var catchVar string
	hasCatchVar := false
	if p.check(token.NAME) {
		catchVar = p.advance().Lexeme
		hasCatchVar = true
	}
	body := p.parseBlock(nil)
	return p.arena.NewTryCatch(tryExpr, catchVar, hasCatchVar, body, p.spanFrom(start))
}

// parseExprStmt covers both a bare expression-statement (most commonly a
// call) and index_assign. index_assign has no leading keyword of its own —
// §4.2 names exactly four set-led constructs, none of which is it — so it
// is recognized here: an index_expr immediately followed by `to`.
func (p *Parser) parseExprStmt() ast.Node {
	start := p.peek()
	expr := p.parseExpr()

	if p.check(token.TO) {
		target, ok := expr.(*ast.IndexExpr)
		if !ok {
			p.errorf("assignment to a plain variable requires 'set'")
			return p.arena.NewExprStmt(expr, p.spanFrom(start))
		}
		p.advance()
		value := p.parseExpr()
		return p.arena.NewIndexAssign(target, value, p.spanFrom(start))
	}

	return p.arena.NewExprStmt(expr, p.spanFrom(start))
}
