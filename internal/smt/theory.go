package smt

import (
	"math/big"
	"sort"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/catalog"
	"mcdcsynth/internal/resolver"
)

// maxCandidateCombos bounds the backtracking search's total work; tripping
// it is treated the same as an unsat theory (spec §7.5 "timeout / unknown").
const maxCandidateCombos = 200000

// Realize searches for a witness Env over every free symbol in bindings
// that satisfies atoms[i] == required[i] for every index present in
// required, consistent across all free variables shared between atoms
// (spec §4.5 step 4 "extract v = M(all variables)").
//
// It returns false when no combination of candidate values (drawn from each
// variable's range bounds, midpoint, and nearby literal constants — spec
// §4.5 step 4 "midpoint of declared range") satisfies every required atom
// truth value jointly.
func Realize(atoms []*ast.Atom, required map[int]bool, bindings *resolver.Bindings) (Env, bool) {
	free := freeSymbols(bindings)
	candidates := make([][]Value, len(free))
	for i, sym := range free {
		bd, _ := bindings.Get(sym)
		candidates[i] = candidateValues(bd, atoms, bindings)
	}

	base := envFromBindings(bindings)
	env := make(Env, len(base)+len(free))
	for k, v := range base {
		env[k] = v
	}

	attempts := 0
	ok := backtrack(free, candidates, 0, env, atoms, required, &attempts)
	return env, ok
}

func backtrack(free []string, candidates [][]Value, idx int, env Env, atoms []*ast.Atom, required map[int]bool, attempts *int) bool {
	if *attempts > maxCandidateCombos {
		return false
	}
	if idx == len(free) {
		*attempts++
		return satisfiesAll(atoms, required, env)
	}
	sym := free[idx]
	for _, v := range candidates[idx] {
		env[sym] = v
		if partiallyConsistent(atoms, required, env) && backtrack(free, candidates, idx+1, env, atoms, required, attempts) {
			return true
		}
	}
	delete(env, sym)
	return false
}

// partiallyConsistent re-checks every required atom whose operands are
// already fully bound, pruning the search as soon as a candidate value for
// the most recently bound variable falsifies it.
func partiallyConsistent(atoms []*ast.Atom, required map[int]bool, env Env) bool {
	for i, want := range required {
		if i >= len(atoms) {
			continue
		}
		if !boundEnough(atoms[i], env) {
			continue
		}
		v, err := Eval(atoms[i], env)
		if err != nil {
			continue
		}
		if v.Bool != want {
			return false
		}
	}
	return true
}

func satisfiesAll(atoms []*ast.Atom, required map[int]bool, env Env) bool {
	for i, want := range required {
		if i >= len(atoms) {
			return false
		}
		v, err := Eval(atoms[i], env)
		if err != nil {
			return false
		}
		if v.Bool != want {
			return false
		}
	}
	return true
}

func boundEnough(a *ast.Atom, env Env) bool {
	bound := true
	ast.Walk(a, func(n ast.Expr) bool {
		if id, ok := n.(*ast.Ident); ok {
			if _, found := env[id.Name]; !found {
				bound = false
				return false
			}
		}
		return true
	})
	return bound
}

func freeSymbols(bindings *resolver.Bindings) []string {
	var free []string
	for _, sym := range bindings.Symbols() {
		bd, _ := bindings.Get(sym)
		if !bd.IsConstant {
			free = append(free, sym)
		}
	}
	// Fixed lexicographic order for determinism (spec §4.5 "Tie-breaks").
	sort.Strings(free)
	return free
}

// candidateValues builds bd's probe set: range bounds, midpoint, and values
// adjacent to any literal constant compared against bd's symbol in atoms.
func candidateValues(bd *resolver.Binding, atoms []*ast.Atom, bindings *resolver.Bindings) []Value {
	if bd.Kind == catalog.KindBool {
		return []Value{BoolValue(true), BoolValue(false)}
	}

	seen := make(map[string]bool)
	var vals []*big.Rat
	add := func(f float64) {
		r := new(big.Rat).SetFloat64(f)
		key := r.RatString()
		if !seen[key] {
			seen[key] = true
			vals = append(vals, r)
		}
	}

	add(bd.Min)
	add(bd.Max)
	add((bd.Min + bd.Max) / 2)

	for _, a := range atoms {
		lit, isVar := literalPairedWith(a, bd.Symbol)
		if !isVar {
			continue
		}
		add(lit)
		add(lit - 1)
		add(lit + 1)
	}

	out := make([]Value, 0, len(vals))
	for _, r := range vals {
		f, _ := r.Float64()
		if f < bd.Min || f > bd.Max {
			continue
		}
		isInt := bd.Kind == catalog.KindInt
		if isInt {
			r = new(big.Rat).SetInt64(int64(roundHalfAwayFromZero(f)))
		}
		out = append(out, Value{Kind: VNum, Num: r, IsInt: isInt})
	}
	if len(out) == 0 {
		out = append(out, Value{Kind: VNum, Num: new(big.Rat).SetFloat64((bd.Min + bd.Max) / 2), IsInt: bd.Kind == catalog.KindInt})
	}
	return out
}

// literalPairedWith reports the numeric literal compared directly against
// symbol in atom a, if any (e.g. `A > 5` paired with "A" returns (5, true)).
func literalPairedWith(a *ast.Atom, symbol string) (float64, bool) {
	if id, ok := a.Left.(*ast.Ident); ok && id.Name == symbol {
		if lit, ok := a.Right.(*ast.NumberLit); ok {
			return lit.Value, true
		}
	}
	if id, ok := a.Right.(*ast.Ident); ok && id.Name == symbol {
		if lit, ok := a.Left.(*ast.NumberLit); ok {
			return lit.Value, true
		}
	}
	return 0, false
}

func roundHalfAwayFromZero(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}
	return int64(f - 0.5)
}
