package compiler

import (
	"fmt"
	"strconv"
)

// SyntaxError reports a token-kind mismatch against the grammar.
type SyntaxError struct {
	Expected TokenType
	Found    TokenType
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: expected %s, found %s", e.Expected, e.Found)
}

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	program      = if_statement
//	if_statement = IF LPAREN condition RPAREN LBRACE block RBRACE (ELSE LBRACE block RBRACE)?
//	condition    = ID OP (ID | NUMBER)
//	block        = (ID ASSIGN (NUMBER | ID) SEMI)*
//
// Single token of lookahead, no backtracking. A block ends at the first
// token that is not an ID; no explicit terminator is required.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns a
// SyntaxError.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, &SyntaxError{Expected: tt, Found: tok.Type}
	}
	return p.advance(), nil
}

// Parse is the entry point for the parser.
func (p *Parser) Parse() (*IfStatement, error) {
	return p.parseIfStatement()
}

func (p *Parser) parseIfStatement() (*IfStatement, error) {
	if _, err := p.expect(IF); err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}

	var elseBody []*Assignment
	if p.peek().Type == ELSE {
		p.advance()
		if _, err := p.expect(LBRACE); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACE); err != nil {
			return nil, err
		}
	}

	return &IfStatement{Condition: condition, Then: thenBody, Else: elseBody}, nil
}

func (p *Parser) parseCondition() (*BinOp, error) {
	left, err := p.expect(ID)
	if err != nil {
		return nil, err
	}

	op, err := p.expect(OP)
	if err != nil {
		return nil, err
	}

	// The right-hand side must be a single ID or NUMBER. Anything else is
	// left nil and not consumed; the semantic checker rejects the hole.
	var right Expr
	switch p.peek().Type {
	case ID:
		right = &Variable{Name: p.advance().Lexeme}
	case NUMBER:
		value, _ := strconv.Atoi(p.advance().Lexeme) // lexer emits digit runs only
		right = &Number{Value: value}
	}

	return &BinOp{Left: &Variable{Name: left.Lexeme}, Op: op.Lexeme, Right: right}, nil
}

func (p *Parser) parseBlock() ([]*Assignment, error) {
	statements := make([]*Assignment, 0)
	for p.peek().Type == ID {
		name := p.advance().Lexeme
		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}

		var value Expr
		switch p.peek().Type {
		case NUMBER:
			v, _ := strconv.Atoi(p.advance().Lexeme)
			value = &Number{Value: v}
		case ID:
			value = &Variable{Name: p.advance().Lexeme}
		}

		if _, err := p.expect(SEMI); err != nil {
			return nil, err
		}
		statements = append(statements, &Assignment{Name: name, Value: value})
	}
	return statements, nil
}

// Parse builds the AST for one conditional statement from tokens.
func Parse(tokens []Token) (*IfStatement, error) {
	return NewParser(tokens).Parse()
}
