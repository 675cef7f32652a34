package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomString(t *testing.T) {
	a := &Atom{
		Left:  &Ident{Name: "A"},
		Op:    GT,
		Right: &NumberLit{Literal: "3", Value: 3},
	}
	assert.Equal(t, "A > 3", a.String())
}

func TestAndOrFlatten(t *testing.T) {
	and := &And{Children: []Expr{
		&Atom{Left: &Ident{Name: "A"}, Op: GT, Right: &NumberLit{Literal: "3", Value: 3}},
		&Atom{Left: &Ident{Name: "B"}, Op: LT, Right: &NumberLit{Literal: "7", Value: 7}},
	}}
	assert.Equal(t, "A > 3 && B < 7", and.String())
}

func TestIdentsOrder(t *testing.T) {
	expr := &And{Children: []Expr{
		&Atom{Left: &Ident{Name: "B"}, Op: LT, Right: &Ident{Name: "A"}},
		&Atom{Left: &Ident{Name: "A"}, Op: GT, Right: &NumberLit{Literal: "0", Value: 0}},
	}}
	assert.Equal(t, []string{"B", "A"}, Idents(expr))
}

func TestAtomsSourceOrder(t *testing.T) {
	a1 := &Atom{Left: &Ident{Name: "A"}, Op: GT, Right: &NumberLit{Literal: "3", Value: 3}}
	a2 := &Atom{Left: &Ident{Name: "B"}, Op: LT, Right: &NumberLit{Literal: "7", Value: 7}}
	expr := &And{Children: []Expr{a1, a2}}
	got := Atoms(expr)
	assert.Equal(t, []*Atom{a1, a2}, got)
}

func TestParenRoundTrip(t *testing.T) {
	inner := &Atom{Left: &Ident{Name: "A"}, Op: EQ, Right: &Ident{Name: "B"}}
	p := &Paren{X: inner}
	assert.Equal(t, "(A == B)", p.String())
}
