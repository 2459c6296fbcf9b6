package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Keywords
	IF   // "if"
	ELSE // "else"

	// Literals
	NUMBER // decimal integer literal
	ID     // variable name

	// Operators
	OP     // comparison operator: == != < > <= >=
	ASSIGN // =

	// Punctuation
	SEMI   // ;
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:    "EOF",
	IF:     "IF",
	ELSE:   "ELSE",
	NUMBER: "NUMBER",
	ID:     "ID",
	OP:     "OP",
	ASSIGN: "ASSIGN",
	SEMI:   "SEMI",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	LBRACE: "LBRACE",
	RBRACE: "RBRACE",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer. The EOF sentinel
// that terminates every token sequence has an empty lexeme.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
}

func (t Token) String() string {
	return fmt.Sprintf("%-8s %q", t.Type, t.Lexeme)
}
