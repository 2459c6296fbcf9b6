package compiler

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType. Keywords win over
// identifiers only at equal length: "iffy" is an ID, "if" is a keyword.
var keywords = map[string]TokenType{
	"if":   IF,
	"else": ELSE,
}

// LexicalError reports a character that matches no lexical class.
type LexicalError struct {
	Char rune
	Pos  int // rune offset into the source
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error: unexpected character %q at position %d", e.Char, e.Pos)
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src []rune
	pos int // index of the next rune to consume
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// scanIdent collects a full identifier or keyword token.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := ID
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme}
}

// scanNumber collects a decimal integer literal.
// The first digit must still be at l.peek().
func (l *Lexer) scanNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	return Token{Type: NUMBER, Lexeme: string(l.src[start:l.pos])}
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Lexeme: ""}, nil
	}

	ch := l.peek()

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if unicode.IsDigit(ch) {
		return l.scanNumber(), nil
	}

	pos := l.pos
	l.advance() // consume the character before the switch
	switch ch {
	case '(':
		return Token{LPAREN, "("}, nil
	case ')':
		return Token{RPAREN, ")"}, nil
	case '{':
		return Token{LBRACE, "{"}, nil
	case '}':
		return Token{RBRACE, "}"}, nil
	case ';':
		return Token{SEMI, ";"}, nil

	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return Token{OP, "=="}, nil
		}
		return Token{ASSIGN, "="}, nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{OP, "!="}, nil
		}
		// a bare '!' belongs to no lexical class
		return Token{}, &LexicalError{Char: ch, Pos: pos}
	case '<':
		if l.peek() == '=' {
			l.advance()
			return Token{OP, "<="}, nil
		}
		return Token{OP, "<"}, nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return Token{OP, ">="}, nil
		}
		return Token{OP, ">"}, nil

	default:
		return Token{}, &LexicalError{Char: ch, Pos: pos}
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
