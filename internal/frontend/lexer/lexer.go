// Package lexer turns source bytes into a finite token.Token sequence
// ending in token.EOF.
package lexer

import (
	"fmt"
	"os"

	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/token"
	"github.com/melihbirim/1im-pl/internal/source"
)

// Lexer scans a single source file into tokens.
type Lexer struct {
	src      []byte
	filepath string
	diag     *diagnostics.DiagnosticBag
	debug    bool

	pos    int
	line   int
	column int
}

// New creates a Lexer over src. diag collects lexical errors; debug, when
// true, logs each emitted token to stderr.
func New(src []byte, filepath string, diag *diagnostics.DiagnosticBag, debug bool) *Lexer {
	return &Lexer{
		src:      src,
		filepath: filepath,
		diag:     diag,
		debug:    debug,
		pos:      0,
		line:     1,
		column:   1,
	}
}

// Tokenize runs the scanner to completion, returning every token including
// the trailing EOF. A lexical error aborts scanning and leaves the token
// slice scanned so far; callers should check diag.HasErrors() first.
func (l *Lexer) Tokenize() []token.Token {
	if l.debug {
		fmt.Fprintf(os.Stderr, "Tokenizing %s (%d bytes)\n", l.filepath, len(l.src))
	}

	var toks []token.Token
	for {
		tok := l.next()
		toks = append(toks, tok)
		if l.debug {
			fmt.Fprintf(os.Stderr, "  %-14s %q %d:%d\n", tok.Kind, tok.Lexeme, tok.Line, tok.Column)
		}
		if tok.Kind == token.EOF {
			break
		}
		if l.diag.HasErrors() {
			break
		}
	}

	if l.debug {
		fmt.Fprintf(os.Stderr, "Generated %d token(s)\n", len(toks))
	}
	return toks
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	l.column++
	return c
}

func (l *Lexer) loc(startLine, startCol, endLine, endCol int) *source.Location {
	return source.NewLocation(
		&source.Position{Line: startLine, Column: startCol, Index: 0},
		&source.Position{Line: endLine, Column: endCol, Index: 0},
	)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

// next scans and returns the next token, stopping at EOF once reached (the
// caller is expected to notice the EOF kind and stop calling next).
func (l *Lexer) next() token.Token {
	for !l.atEnd() {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
			continue
		case c == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			continue
		case c == '\n':
			line, col := l.line, l.column
			l.advance()
			l.line++
			l.column = 1
			return token.Token{Kind: token.NEWLINE, Lexeme: "\n", Line: line, Column: col}
		default:
			return l.scanToken()
		}
	}
	return token.Token{Kind: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
}

func (l *Lexer) scanToken() token.Token {
	startLine, startCol := l.line, l.column
	c := l.peek()

	switch {
	case isAlpha(c):
		return l.scanIdentifier(startLine, startCol)
	case isDigit(c):
		return l.scanNumber(startLine, startCol)
	case c == '"':
		return l.scanString(startLine, startCol)
	}

	switch c {
	case '(':
		l.advance()
		return token.Token{Kind: token.LPAREN, Lexeme: "(", Line: startLine, Column: startCol}
	case ')':
		l.advance()
		return token.Token{Kind: token.RPAREN, Lexeme: ")", Line: startLine, Column: startCol}
	case '[':
		l.advance()
		return token.Token{Kind: token.LBRACKET, Lexeme: "[", Line: startLine, Column: startCol}
	case ']':
		l.advance()
		return token.Token{Kind: token.RBRACKET, Lexeme: "]", Line: startLine, Column: startCol}
	case ',':
		l.advance()
		return token.Token{Kind: token.COMMA, Lexeme: ",", Line: startLine, Column: startCol}
	case ':':
		l.advance()
		return token.Token{Kind: token.COLON, Lexeme: ":", Line: startLine, Column: startCol}
	case '+':
		l.advance()
		return token.Token{Kind: token.PLUS, Lexeme: "+", Line: startLine, Column: startCol}
	case '-':
		l.advance()
		return token.Token{Kind: token.MINUS, Lexeme: "-", Line: startLine, Column: startCol}
	case '*':
		l.advance()
		return token.Token{Kind: token.STAR, Lexeme: "*", Line: startLine, Column: startCol}
	case '/':
		l.advance()
		return token.Token{Kind: token.SLASH, Lexeme: "/", Line: startLine, Column: startCol}
	case '%':
		l.advance()
		return token.Token{Kind: token.PERCENT, Lexeme: "%", Line: startLine, Column: startCol}
	case '.':
		l.advance()
		if l.peek() == '.' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
				return token.Token{Kind: token.DOT_DOT_EQ, Lexeme: "..=", Line: startLine, Column: startCol}
			}
			return token.Token{Kind: token.DOT_DOT, Lexeme: "..", Line: startLine, Column: startCol}
		}
		return token.Token{Kind: token.DOT, Lexeme: ".", Line: startLine, Column: startCol}
	case '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.EQ_EQ, Lexeme: "==", Line: startLine, Column: startCol}
		}
		l.diag.Add(diagnostics.UnexpectedCharacter(l.filepath, l.loc(startLine, startCol, l.line, l.column), rune(c)))
		return token.Token{Kind: token.EOF, Line: startLine, Column: startCol}
	case '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.NOT_EQ, Lexeme: "!=", Line: startLine, Column: startCol}
		}
		return token.Token{Kind: token.BANG, Lexeme: "!", Line: startLine, Column: startCol}
	case '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.LT_EQ, Lexeme: "<=", Line: startLine, Column: startCol}
		}
		return token.Token{Kind: token.LT, Lexeme: "<", Line: startLine, Column: startCol}
	case '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return token.Token{Kind: token.GT_EQ, Lexeme: ">=", Line: startLine, Column: startCol}
		}
		return token.Token{Kind: token.GT, Lexeme: ">", Line: startLine, Column: startCol}
	}

	l.advance()
	l.diag.Add(diagnostics.UnexpectedCharacter(l.filepath, l.loc(startLine, startCol, l.line, l.column), rune(c)))
	return token.Token{Kind: token.EOF, Line: startLine, Column: startCol}
}

func (l *Lexer) scanIdentifier(startLine, startCol int) token.Token {
	start := l.pos
	for !l.atEnd() && isAlphaNumeric(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Line: startLine, Column: startCol}
	}
	return token.Token{Kind: token.NAME, Lexeme: lexeme, Line: startLine, Column: startCol}
}

func (l *Lexer) scanNumber(startLine, startCol int) token.Token {
	start := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	lexeme := string(l.src[start:l.pos])
	kind := token.INT_LITERAL
	if isFloat {
		kind = token.FLOAT_LITERAL
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Line: startLine, Column: startCol}
}

func (l *Lexer) scanString(startLine, startCol int) token.Token {
	l.advance() // opening quote
	start := l.pos
	for !l.atEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
			if l.atEnd() {
				break
			}
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0 // advance() below brings this to 1
		}
		l.advance()
	}
	if l.atEnd() {
		l.diag.Add(diagnostics.UnterminatedString(l.filepath, l.loc(startLine, startCol, l.line, l.column)))
		return token.Token{Kind: token.EOF, Line: startLine, Column: startCol}
	}
	lexeme := string(l.src[start:l.pos])
	l.advance() // closing quote
	return token.Token{Kind: token.STRING_LITERAL, Lexeme: lexeme, Line: startLine, Column: startCol}
}
