package decparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/lexer"
)

func parseCanonical(t *testing.T, raw string) ast.Expr {
	t.Helper()
	canonical, _ := lexer.Normalize(raw)
	expr, errs := Parse(canonical)
	assert.Empty(t, errs)
	return expr
}

func TestParsePrecedence(t *testing.T) {
	expr := parseCanonical(t, "A > 3 && B < 7 || C == 1")
	or, ok := expr.(*ast.Or)
	assert.True(t, ok)
	assert.Len(t, or.Children, 2)
	and, ok := or.Children[0].(*ast.And)
	assert.True(t, ok)
	assert.Len(t, and.Children, 2)
}

func TestParseParenResetsPrecedence(t *testing.T) {
	expr := parseCanonical(t, "(A > 3 || B < 7) && C == 1")
	and, ok := expr.(*ast.And)
	assert.True(t, ok)
	paren, ok := and.Children[0].(*ast.Paren)
	assert.True(t, ok)
	_, ok = paren.X.(*ast.Or)
	assert.True(t, ok)
}

func TestParseArithmeticAtomSide(t *testing.T) {
	expr := parseCanonical(t, "H - H_TO < THRESHOLD")
	atom, ok := expr.(*ast.Atom)
	assert.True(t, ok)
	assert.Equal(t, ast.LT, atom.Op)
	bin, ok := atom.Left.(*ast.ArithBinary)
	assert.True(t, ok)
	assert.Equal(t, ast.SUB, bin.Op)
}

func TestParseNot(t *testing.T) {
	expr := parseCanonical(t, "! (A == B)")
	not, ok := expr.(*ast.Not)
	assert.True(t, ok)
	_, ok = not.Child.(*ast.Paren)
	assert.True(t, ok)
}

func TestParseAbs(t *testing.T) {
	expr := parseCanonical(t, "abs(H - H_TO) < THRESHOLD")
	atom, ok := expr.(*ast.Atom)
	assert.True(t, ok)
	_, ok = atom.Left.(*ast.Abs)
	assert.True(t, ok)
}

func TestParseMalformedIsNonFatal(t *testing.T) {
	canonical, _ := lexer.Normalize("A > ")
	expr, errs := Parse(canonical)
	assert.NotEmpty(t, errs)
	_, ok := expr.(*ast.BadExpr)
	assert.True(t, ok)
}

func TestParseDurationFoldsToLiteral(t *testing.T) {
	expr := parseCanonical(t, "duration(x>1)")
	lit, ok := expr.(*ast.BoolLit)
	assert.True(t, ok)
	assert.True(t, lit.Value)
}

func TestParseIsDeterministic(t *testing.T) {
	const raw = "A > 3 && B < 7 || !(C == 1)"
	first := parseCanonical(t, raw)
	second := parseCanonical(t, raw)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing the same canonical text twice produced different ASTs (-first +second):\n%s", diff)
	}
}

func TestParseLastAlias(t *testing.T) {
	expr := parseCanonical(t, "last(H) - H > 2")
	atom, ok := expr.(*ast.Atom)
	assert.True(t, ok)
	bin := atom.Left.(*ast.ArithBinary)
	ident := bin.Left.(*ast.Ident)
	assert.Equal(t, "_H_", ident.Name)
}
