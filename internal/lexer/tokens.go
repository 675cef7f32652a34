package lexer

import (
	ptlexer "github.com/alecthomas/participle/v2/lexer"
)

// TokenType names the lexical classes produced by Tokenize. Named after the
// teacher's token package conventions (kanso/token).
type TokenType string

const (
	TokIdent TokenType = "Ident"
	TokNumber TokenType = "Number"
	TokOp     TokenType = "Op"
	TokEOF    TokenType = "EOF"
)

// Token is a single lexical unit of canonical decision text.
type Token struct {
	Type    TokenType
	Lexeme  string
	Pos     ptlexer.Position
}

// DecisionLexer is a participle stateful lexer definition reused standalone
// (outside of participle's own parser-builder) purely as a tokenizer for
// the core's hand-written recursive-descent parser — grounded directly on
// the teacher's grammar/lexer.go, which drives the *whole* kanso grammar
// through participle; here it only supplies tokens that internal/decparser
// consumes itself (spec §4.2 requires the core to own precedence directly).
var DecisionLexer = ptlexer.MustStateful(ptlexer.Rules{
	"Root": {
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"Number", `[0-9]+(\.[0-9]+)?`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Op", `(==|!=|<=|>=|&&|\|\||[<>+\-*/(),!])`, nil},
	},
})

// Tokenize lexes canonical decision text into a flat token stream,
// discarding whitespace and appending a trailing EOF marker.
func Tokenize(canonical string) ([]Token, error) {
	lex, err := DecisionLexer.LexString("", canonical)
	if err != nil {
		return nil, err
	}
	symbols := DecisionLexer.Symbols()
	names := make(map[ptlexer.TokenType]string, len(symbols))
	for name, t := range symbols {
		names[t] = name
	}

	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			out = append(out, Token{Type: TokEOF, Pos: tok.Pos})
			return out, nil
		}
		name := names[tok.Type]
		if name == "Whitespace" {
			continue
		}
		out = append(out, Token{Type: TokenType(name), Lexeme: tok.Value, Pos: tok.Pos})
	}
}
