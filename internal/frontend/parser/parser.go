// Package parser builds an ast.Program from a token.Token sequence by
// recursive descent, using Pratt/precedence climbing for expressions and a
// column-dedent rule (no INDENT/DEDENT tokens) for block delimitation.
package parser

import (
	"fmt"

	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
	"github.com/melihbirim/1im-pl/internal/source"
)

// Parser holds transient state for parsing a single token stream. It is
// created fresh per compilation; nothing about it is reused across runs.
type Parser struct {
	tokens   []token.Token
	current  int
	diag     *diagnostics.DiagnosticBag
	filepath string
	arena    *ast.Arena

	// anchorStack holds the column of each currently open block's first
	// statement, pushed on block entry and popped on exit (§4.2's
	// column-dedent rule replaces the brace-delimited donor grammar).
	anchorStack []int
}

// Parse parses tokens into an ast.Program. It stops after the first
// top-level statement that leaves an error in diag (fail-fast, matching the
// pipeline's policy) and returns the statements parsed up to that point.
func Parse(tokens []token.Token, filepath string, diag *diagnostics.DiagnosticBag, arena *ast.Arena) *ast.Program {
	p := &Parser{
		tokens:   tokens,
		current:  0,
		diag:     diag,
		filepath: filepath,
		arena:    arena,
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.peek()
	var stmts []ast.Node

	p.skipNewlines()
	for !p.isAtEnd() && !p.diag.HasErrors() {
		stmt := p.parseTopLevelStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}

	prog := p.arena.NewProgram(p.spanFrom(start))
	prog.Stmts = stmts
	return prog
}

// parseTopLevelStmt and parseStmt are the same dispatch: every statement
// form this grammar has is legal at both top level and inside a block.
func (p *Parser) parseTopLevelStmt() ast.Node {
	return p.parseStmt()
}

func (p *Parser) parseStmt() ast.Node {
	switch p.peek().Kind {
	case token.SET:
		return p.parseSetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.LOOP:
		return p.parseLoopStmt()
	case token.PARALLEL:
		return p.parseParallelBlock()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.TRY:
		return p.parseTryCatchStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock consumes the column-dedent body of a block-introducing
// construct: any trailing newlines after the header are skipped, the
// column of the first following token becomes the anchor, and statements
// are collected as long as their leading column is >= anchor and their
// leading token isn't in stop.
func (p *Parser) parseBlock(stop map[token.Kind]bool) *ast.Block {
	p.skipNewlines()
	start := p.peek()
	anchor := start.Column
	p.anchorStack = append(p.anchorStack, anchor)
	defer func() { p.anchorStack = p.anchorStack[:len(p.anchorStack)-1] }()

	var stmts []ast.Node
	for {
		p.skipNewlines()
		if p.isAtEnd() || p.diag.HasErrors() {
			break
		}
		tok := p.peek()
		if tok.Column < anchor {
			break
		}
		if stop[tok.Kind] {
			break
		}
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	block := p.arena.NewBlock(p.spanFrom(start))
	block.Stmts = stmts
	return block
}

var elseStop = map[token.Kind]bool{token.ELSE: true}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// atLineEnd reports whether the cursor sits at a statement boundary: this
// grammar has no semicolon, so a bare `return`/`break` (no trailing value)
// is recognized by the next token being a newline or EOF.
func (p *Parser) atLineEnd() bool {
	return p.check(token.NEWLINE) || p.isAtEnd()
}

func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

// peekAt looks offset tokens ahead of current without consuming anything,
// clamped to the final token (always EOF) once the stream runs out.
func (p *Parser) peekAt(offset int) token.Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	tok := p.peek()
	if tok.Kind == token.EOF {
		p.diag.Add(diagnostics.UnexpectedEOF(p.filepath, p.locOf(tok), kind.String()))
	} else {
		p.diag.Add(diagnostics.ExpectedToken(p.filepath, p.locOf(tok), kind.String()))
	}
	return tok
}

func (p *Parser) errorf(format string, args ...any) {
	tok := p.peek()
	p.diag.Add(diagnostics.UnexpectedToken(p.filepath, p.locOf(tok), tok.Kind.String(), fmt.Sprintf(format, args...)))
}

func (p *Parser) locOf(tok token.Token) *source.Location {
	pos := &source.Position{Line: tok.Line, Column: tok.Column}
	end := &source.Position{Line: tok.Line, Column: tok.Column + len(tok.Lexeme)}
	return source.NewLocation(pos, end)
}

// spanFrom builds a location from start's position to the position just
// past the most recently consumed token.
func (p *Parser) spanFrom(start token.Token) source.Location {
	startPos := &source.Position{Line: start.Line, Column: start.Column}
	last := p.previous()
	endPos := &source.Position{Line: last.Line, Column: last.Column + len(last.Lexeme)}
	return *source.NewLocation(startPos, endPos)
}
