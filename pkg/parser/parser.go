// Package parser implements a recursive descent parser for the SysY subset
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/raymyers/sysyc/pkg/ast"
	"github.com/raymyers/sysyc/pkg/lexer"
)

// ParseError reports every error found while parsing a source file
type ParseError struct {
	Errors []string
}

func (e *ParseError) Error() string {
	return strings.Join(e.Errors, "\n")
}

// Parse parses a complete SysY source file into a compilation unit
func Parse(src string) (*ast.CompUnit, error) {
	p := New(lexer.New(src))
	cu := p.ParseCompUnit()
	if len(p.Errors()) > 0 {
		return nil, &ParseError{Errors: p.Errors()}
	}
	return cu, nil
}

// Parser parses SysY source code into an AST
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d, col %d: %s",
		p.curToken.Line, p.curToken.Column, msg))
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("expected %s, got %s", t, p.describeCur()))
	return false
}

// describeCur names the current token for error messages
func (p *Parser) describeCur() string {
	switch p.curToken.Type {
	case lexer.TokenIdent, lexer.TokenInt, lexer.TokenIllegal:
		return fmt.Sprintf("%s %q", p.curToken.Type, p.curToken.Literal)
	}
	return p.curToken.Type.String()
}

// ParseCompUnit parses a whole file: exactly one function definition.
// Returns nil if any error was recorded.
func (p *Parser) ParseCompUnit() *ast.CompUnit {
	funcDef, ok := p.parseFuncDef()
	if !ok {
		return nil
	}
	if !p.curTokenIs(lexer.TokenEOF) {
		p.addError(fmt.Sprintf("unexpected %s after function definition", p.describeCur()))
		return nil
	}
	return &ast.CompUnit{FuncDef: funcDef}
}

func (p *Parser) parseFuncDef() (ast.FuncDef, bool) {
	var f ast.FuncDef

	if !p.curTokenIs(lexer.TokenInt_) {
		p.addError(fmt.Sprintf("expected function return type, got %s", p.describeCur()))
		return f, false
	}
	f.FuncType = ast.FuncTypeInt
	p.nextToken()

	if !p.curTokenIs(lexer.TokenIdent) {
		p.addError(fmt.Sprintf("expected function name, got %s", p.describeCur()))
		return f, false
	}
	f.Ident = p.curToken.Literal
	p.nextToken()

	// Parameter list (always empty)
	if !p.expect(lexer.TokenLParen) || !p.expect(lexer.TokenRParen) {
		return f, false
	}

	block, ok := p.parseBlock()
	if !ok {
		return f, false
	}
	f.Block = block
	return f, true
}

func (p *Parser) parseBlock() (ast.Block, bool) {
	if !p.expect(lexer.TokenLBrace) {
		return ast.Block{}, false
	}
	stmt, ok := p.parseStmt()
	if !ok {
		return ast.Block{}, false
	}
	if !p.expect(lexer.TokenRBrace) {
		return ast.Block{}, false
	}
	return ast.Block{Stmt: stmt}, true
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	if !p.expect(lexer.TokenReturn) {
		return ast.Stmt{}, false
	}
	expr := p.parseExpression()
	if expr == nil {
		return ast.Stmt{}, false
	}
	if !p.expect(lexer.TokenSemicolon) {
		return ast.Stmt{}, false
	}
	return ast.Stmt{Ret: expr}, true
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAdditive()
}

// additive: multiplicative (('+' | '-') multiplicative)*
func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil && (p.curTokenIs(lexer.TokenPlus) || p.curTokenIs(lexer.TokenMinus)) {
		op := ast.OpAdd
		if p.curTokenIs(lexer.TokenMinus) {
			op = ast.OpSub
		}
		p.nextToken()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

// multiplicative: unary (('*' | '/' | '%') unary)*
func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for left != nil {
		var op ast.BinaryOp
		switch p.curToken.Type {
		case lexer.TokenStar:
			op = ast.OpMul
		case lexer.TokenSlash:
			op = ast.OpDiv
		case lexer.TokenPercent:
			op = ast.OpMod
		default:
			return left
		}
		p.nextToken()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = ast.Binary{Left: left, Op: op, Right: right}
	}
	return nil
}

// unary: ('+' | '-' | '!') unary | primary
func (p *Parser) parseUnary() ast.Expr {
	var op ast.UnaryOp
	switch p.curToken.Type {
	case lexer.TokenPlus:
		op = ast.OpPos
	case lexer.TokenMinus:
		op = ast.OpNeg
	case lexer.TokenNot:
		op = ast.OpNot
	default:
		return p.parsePrimary()
	}
	p.nextToken()
	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	return ast.Unary{Op: op, Operand: operand}
}

// primary: '(' expression ')' | number
func (p *Parser) parsePrimary() ast.Expr {
	switch p.curToken.Type {
	case lexer.TokenLParen:
		p.nextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		return expr
	case lexer.TokenInt:
		return p.parseNumber()
	}
	p.addError(fmt.Sprintf("expected expression, got %s", p.describeCur()))
	return nil
}

func (p *Parser) parseNumber() ast.Expr {
	lit := p.curToken.Literal
	// Base 0 accepts the SysY forms: decimal, 0-prefixed octal and 0x hex.
	wide, err := strconv.ParseInt(lit, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		p.addError(fmt.Sprintf("integer literal %s out of range for int", lit))
		return nil
	}
	if err != nil {
		p.addError(fmt.Sprintf("invalid integer literal %q", lit))
		return nil
	}
	value, err := safecast.Conv[int32](wide)
	if err != nil {
		p.addError(fmt.Sprintf("integer literal %s out of range for int", lit))
		return nil
	}
	p.nextToken()
	return ast.Number{Value: value}
}
