// Package decparser is the hand-written recursive-descent parser for
// decision expressions (spec §4.2, component C3). Precedence, lowest to
// highest: ||, &&, !, comparison, additive, multiplicative, unary-minus,
// atom; parenthesized groups reset back to the lowest level.
//
// Boolean and arithmetic sub-expressions share one Expr grammar (a
// parenthesized group can hold either); the Resolver is what later rejects
// an Atom appearing where arithmetic is expected.
package decparser

import (
	"fmt"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/lexer"
)

// ParseError is a single non-fatal parse diagnostic (spec §4.2 failure
// semantics: a malformed decision is logged and skipped, never fatal).
type ParseError struct {
	Message string
	Pos     ast.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Parser struct {
	tokens []lexer.Token
	pos    int
	errs   []ParseError
}

// Parse tokenizes and parses canonical decision text into an Expr. Parse
// errors are collected, not fatal: on failure the returned Expr is a
// *ast.BadExpr and errs is non-empty.
func Parse(canonical string) (ast.Expr, []ParseError) {
	toks, err := lexer.Tokenize(canonical)
	if err != nil {
		return &ast.BadExpr{Reason: err.Error()}, []ParseError{{Message: err.Error()}}
	}
	p := &Parser{tokens: toks}
	expr := p.parseOr()
	if !p.check(lexer.TokEOF) {
		p.errorAtCurrent("unexpected trailing input: " + p.peek().Lexeme)
	}
	if len(p.errs) > 0 {
		return &ast.BadExpr{Start: expr.Pos(), Finish: expr.End(), Reason: p.errs[0].Message}, p.errs
	}
	return expr, p.errs
}

func (p *Parser) parseOr() ast.Expr {
	start := p.peekPos()
	children := []ast.Expr{p.parseAnd()}
	for p.matchLexeme("||") {
		children = append(children, p.parseAnd())
	}
	if len(children) == 1 {
		return children[0]
	}
	return &ast.Or{Start: start, Finish: p.prevEnd(), Children: children}
}

func (p *Parser) parseAnd() ast.Expr {
	start := p.peekPos()
	children := []ast.Expr{p.parseNot()}
	for p.matchLexeme("&&") {
		children = append(children, p.parseNot())
	}
	if len(children) == 1 {
		return children[0]
	}
	return &ast.And{Start: start, Finish: p.prevEnd(), Children: children}
}

func (p *Parser) parseNot() ast.Expr {
	if p.matchLexeme("!") {
		start := p.prevPos()
		child := p.parseNot()
		return &ast.Not{Start: start, Finish: child.End(), Child: child}
	}
	return p.parseComparison()
}

var cmpOps = map[string]ast.CmpOp{
	"==": ast.EQ, "!=": ast.NE,
	"<": ast.LT, "<=": ast.LE,
	">": ast.GT, ">=": ast.GE,
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if tok := p.peek(); tok.Type == lexer.TokOp {
		if op, ok := cmpOps[tok.Lexeme]; ok {
			p.advance()
			right := p.parseAdditive()
			return &ast.Atom{Start: left.Pos(), Finish: right.End(), Left: left, Op: op, Right: right}
		}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.ArithOp
		switch {
		case p.matchLexeme("+"):
			op = ast.ADD
		case p.matchLexeme("-"):
			op = ast.SUB
		default:
			return left
		}
		right := p.parseMultiplicative()
		left = &ast.ArithBinary{Start: left.Pos(), Finish: right.End(), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.ArithOp
		switch {
		case p.matchLexeme("*"):
			op = ast.MUL
		case p.matchLexeme("/"):
			op = ast.DIV
		default:
			return left
		}
		right := p.parseUnary()
		left = &ast.ArithBinary{Start: left.Pos(), Finish: right.End(), Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.matchLexeme("-") {
		start := p.prevPos()
		child := p.parseUnary()
		return &ast.Neg{Start: start, Finish: child.End(), Child: child}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokNumber:
		p.advance()
		return &ast.NumberLit{Start: posOf(tok), Finish: endOf(tok), Literal: tok.Lexeme, Value: parseFloat(tok.Lexeme)}
	case lexer.TokIdent:
		switch tok.Lexeme {
		case "true":
			p.advance()
			return &ast.BoolLit{Start: posOf(tok), Finish: endOf(tok), Value: true}
		case "false":
			p.advance()
			return &ast.BoolLit{Start: posOf(tok), Finish: endOf(tok), Value: false}
		case "abs":
			if p.peekAt(1).Lexeme == "(" {
				p.advance()
				p.advance()
				inner := p.parseOr()
				end := p.expectLexeme(")")
				return &ast.Abs{Start: posOf(tok), Finish: end, X: inner}
			}
		}
		p.advance()
		return &ast.Ident{Start: posOf(tok), Finish: endOf(tok), Name: tok.Lexeme}
	case lexer.TokOp:
		if tok.Lexeme == "(" {
			p.advance()
			inner := p.parseOr()
			end := p.expectLexeme(")")
			return &ast.Paren{Start: posOf(tok), Finish: end, X: inner}
		}
	}
	p.errorAtCurrent("unexpected token in expression: " + describeToken(tok))
	if tok.Type != lexer.TokEOF {
		p.advance()
	}
	return &ast.BadExpr{Start: posOf(tok), Finish: endOf(tok), Reason: "unexpected token " + describeToken(tok)}
}

func describeToken(t lexer.Token) string {
	if t.Type == lexer.TokEOF {
		return "end of input"
	}
	return t.Lexeme
}
