// Package smt is the MCDC synthesizer (spec §4.5, component C6): a small
// lazy-SMT / DPLL(T) loop pairing a SAT core over the decision's boolean
// skeleton with a bounded-search theory solver for the arithmetic side.
package smt

import (
	"fmt"
	"math/big"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/resolver"
)

// VKind discriminates a Value's domain.
type VKind int

const (
	VBool VKind = iota
	VNum
)

// Value is a numeric-semantics value (spec §4.5 "Numeric semantics"): reals
// are exact math/big.Rat so no precision is lost before final rendering.
type Value struct {
	Kind VKind
	Bool bool
	Num  *big.Rat
	// IsInt marks a VNum produced by (or destined for) an integer-typed
	// symbol, so the theory solver only ever proposes integral candidates
	// for it and the outcome encoder renders it without a decimal point.
	IsInt bool
}

func BoolValue(b bool) Value { return Value{Kind: VBool, Bool: b} }

func IntValue(n int64) Value { return Value{Kind: VNum, Num: big.NewRat(n, 1), IsInt: true} }

func RealValue(r *big.Rat) Value { return Value{Kind: VNum, Num: r} }

// Env maps a resolved symbol to its current Value.
type Env map[string]Value

// EvalError marks a decision that cannot be evaluated under env — always a
// programmer or resolver defect, never raised for ordinary user input
// (the Resolver has already rejected ill-shaped decisions by this point).
type EvalError struct{ Message string }

func (e EvalError) Error() string { return e.Message }

// Eval evaluates e under env using the numeric semantics of spec §4.5:
// integer and real operands are unified under exact rational arithmetic;
// `/` over integers promotes to real (rational) division.
func Eval(e ast.Expr, env Env) (Value, error) {
	switch n := e.(type) {
	case *ast.BoolLit:
		return BoolValue(n.Value), nil
	case *ast.NumberLit:
		r := new(big.Rat)
		if _, ok := r.SetString(n.Literal); !ok {
			r = new(big.Rat).SetFloat64(n.Value)
		}
		return Value{Kind: VNum, Num: r, IsInt: isIntLiteral(n.Literal)}, nil
	case *ast.Ident:
		v, ok := env[n.Name]
		if !ok {
			return Value{}, EvalError{Message: "unbound identifier: " + n.Name}
		}
		return v, nil
	case *ast.Paren:
		return Eval(n.X, env)
	case *ast.Neg:
		v, err := Eval(n.Child, env)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != VNum {
			return Value{}, EvalError{Message: "unary minus over non-numeric value"}
		}
		return Value{Kind: VNum, Num: new(big.Rat).Neg(v.Num), IsInt: v.IsInt}, nil
	case *ast.Abs:
		v, err := Eval(n.X, env)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != VNum {
			return Value{}, EvalError{Message: "abs() over non-numeric value"}
		}
		if v.Num.Sign() < 0 {
			return Value{Kind: VNum, Num: new(big.Rat).Neg(v.Num), IsInt: v.IsInt}, nil
		}
		return v, nil
	case *ast.ArithBinary:
		l, err := Eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		r, err := Eval(n.Right, env)
		if err != nil {
			return Value{}, err
		}
		if l.Kind != VNum || r.Kind != VNum {
			return Value{}, EvalError{Message: "arithmetic over non-numeric value"}
		}
		out := new(big.Rat)
		switch n.Op {
		case ast.ADD:
			out.Add(l.Num, r.Num)
		case ast.SUB:
			out.Sub(l.Num, r.Num)
		case ast.MUL:
			out.Mul(l.Num, r.Num)
		case ast.DIV:
			if r.Num.Sign() == 0 {
				return Value{}, EvalError{Message: "division by zero"}
			}
			out.Quo(l.Num, r.Num)
		}
		// Division over integers promotes to real (spec §4.5).
		isInt := l.IsInt && r.IsInt && n.Op != ast.DIV
		return Value{Kind: VNum, Num: out, IsInt: isInt}, nil
	case *ast.Atom:
		return evalAtom(n, env)
	case *ast.Not:
		v, err := Eval(n.Child, env)
		if err != nil {
			return Value{}, err
		}
		if v.Kind != VBool {
			return Value{}, EvalError{Message: "! over non-boolean value"}
		}
		return BoolValue(!v.Bool), nil
	case *ast.And:
		for _, c := range n.Children {
			v, err := Eval(c, env)
			if err != nil {
				return Value{}, err
			}
			if v.Kind != VBool {
				return Value{}, EvalError{Message: "&& over non-boolean value"}
			}
			if !v.Bool {
				return BoolValue(false), nil
			}
		}
		return BoolValue(true), nil
	case *ast.Or:
		for _, c := range n.Children {
			v, err := Eval(c, env)
			if err != nil {
				return Value{}, err
			}
			if v.Kind != VBool {
				return Value{}, EvalError{Message: "|| over non-boolean value"}
			}
			if v.Bool {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	case *ast.BadExpr:
		return Value{}, EvalError{Message: "malformed expression: " + n.Reason}
	default:
		return Value{}, EvalError{Message: fmt.Sprintf("unhandled expr type %T", e)}
	}
}

func evalAtom(a *ast.Atom, env Env) (Value, error) {
	l, err := Eval(a.Left, env)
	if err != nil {
		return Value{}, err
	}
	r, err := Eval(a.Right, env)
	if err != nil {
		return Value{}, err
	}

	if l.Kind == VBool || r.Kind == VBool {
		if l.Kind != r.Kind {
			return Value{}, EvalError{Message: "comparing bool to numeric value"}
		}
		switch a.Op {
		case ast.EQ:
			return BoolValue(l.Bool == r.Bool), nil
		case ast.NE:
			return BoolValue(l.Bool != r.Bool), nil
		default:
			return Value{}, EvalError{Message: "ordering comparison over boolean operands"}
		}
	}

	cmp := l.Num.Cmp(r.Num)
	switch a.Op {
	case ast.EQ:
		return BoolValue(cmp == 0), nil
	case ast.NE:
		return BoolValue(cmp != 0), nil
	case ast.LT:
		return BoolValue(cmp < 0), nil
	case ast.LE:
		return BoolValue(cmp <= 0), nil
	case ast.GT:
		return BoolValue(cmp > 0), nil
	case ast.GE:
		return BoolValue(cmp >= 0), nil
	}
	return Value{}, EvalError{Message: "unknown comparison operator"}
}

func isIntLiteral(lit string) bool {
	for _, c := range lit {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// envFromBindings seeds an Env with every constant binding (variables are
// left for the theory solver to fill in).
func envFromBindings(b *resolver.Bindings) Env {
	env := make(Env)
	for _, sym := range b.Symbols() {
		bd, _ := b.Get(sym)
		if bd.IsConstant {
			env[sym] = Value{Kind: VNum, Num: new(big.Rat).SetFloat64(bd.ConstValue), IsInt: isIntFloat(bd.ConstValue)}
		}
	}
	return env
}

func isIntFloat(f float64) bool {
	return f == float64(int64(f))
}
