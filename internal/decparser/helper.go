package decparser

import (
	"strconv"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/lexer"
)

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Type != lexer.TokEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) matchLexeme(lexeme string) bool {
	tok := p.peek()
	if tok.Type == lexer.TokOp && tok.Lexeme == lexeme {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectLexeme(lexeme string) ast.Position {
	tok := p.peek()
	if tok.Type == lexer.TokOp && tok.Lexeme == lexeme {
		p.advance()
		return endOf(tok)
	}
	p.errorAtCurrent("expected '" + lexeme + "' but found " + describeToken(tok))
	return posOf(tok)
}

func (p *Parser) errorAtCurrent(msg string) {
	p.errs = append(p.errs, ParseError{Message: msg, Pos: posOf(p.peek())})
}

func (p *Parser) peekPos() ast.Position  { return posOf(p.peek()) }
func (p *Parser) prevPos() ast.Position  { return posOf(p.previous()) }
func (p *Parser) prevEnd() ast.Position  { return endOf(p.previous()) }

func posOf(t lexer.Token) ast.Position {
	return ast.Position{Line: t.Pos.Line, Column: t.Pos.Column, Offset: t.Pos.Offset}
}

func endOf(t lexer.Token) ast.Position {
	return ast.Position{Line: t.Pos.Line, Column: t.Pos.Column + len(t.Lexeme), Offset: t.Pos.Offset + len(t.Lexeme)}
}

func parseFloat(lexeme string) float64 {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return v
}
