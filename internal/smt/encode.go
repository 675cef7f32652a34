package smt

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/resolver"
)

// Encoder Tseitin-encodes one decision's boolean skeleton into a gini CDCL
// solver, one propositional variable per atom (spec §4.5 "Boolean skeleton").
// Constant-only atoms (no free variable, spec §4.5 "Atomic-atom detection")
// are fixed with a unit clause instead of left free.
type Encoder struct {
	Solver   *gini.Gini
	Atoms    []*ast.Atom
	AtomLits []z.Lit
	Decision z.Lit

	trueLit z.Lit
}

// NewEncoder builds the CNF for expr. bindings supplies constant values so
// constant-only atoms can be evaluated once and fixed rather than
// flip-tested (they are never MCDC candidates).
func NewEncoder(expr ast.Expr, bindings *resolver.Bindings) (*Encoder, error) {
	g := gini.New()
	enc := &Encoder{Solver: g, Atoms: ast.Atoms(expr)}

	enc.trueLit = g.Lit()
	unit(g, enc.trueLit)

	constEnv := envFromBindings(bindings)

	enc.AtomLits = make([]z.Lit, len(enc.Atoms))
	for i, a := range enc.Atoms {
		if isConstantAtom(a, bindings) {
			v, err := Eval(a, constEnv)
			if err != nil {
				return nil, err
			}
			if v.Bool {
				enc.AtomLits[i] = enc.trueLit
			} else {
				enc.AtomLits[i] = enc.trueLit.Not()
			}
			continue
		}
		enc.AtomLits[i] = g.Lit()
	}

	atomIdx := 0
	enc.Decision = enc.encodeNode(expr, &atomIdx)
	return enc, nil
}

// encodeNode recursively Tseitin-encodes n, returning the literal standing
// for its truth value. atomIdx walks ast.Atoms(expr) in the same pre-order
// Walk uses, so it lines up with AtomLits.
func (enc *Encoder) encodeNode(n ast.Expr, atomIdx *int) z.Lit {
	switch node := n.(type) {
	case *ast.Atom:
		lit := enc.AtomLits[*atomIdx]
		*atomIdx++
		return lit
	case *ast.BoolLit:
		if node.Value {
			return enc.trueLit
		}
		return enc.trueLit.Not()
	case *ast.Not:
		return enc.encodeNode(node.Child, atomIdx).Not()
	case *ast.Paren:
		return enc.encodeNode(node.X, atomIdx)
	case *ast.And:
		lits := make([]z.Lit, len(node.Children))
		for i, c := range node.Children {
			lits[i] = enc.encodeNode(c, atomIdx)
		}
		return enc.tseitinAnd(lits)
	case *ast.Or:
		lits := make([]z.Lit, len(node.Children))
		for i, c := range node.Children {
			lits[i] = enc.encodeNode(c, atomIdx)
		}
		return enc.tseitinOr(lits)
	default:
		// Never reached for a Resolver-validated decision skeleton.
		return enc.trueLit
	}
}

// tseitinAnd introduces v <-> (c1 ∧ ... ∧ cn).
func (enc *Encoder) tseitinAnd(children []z.Lit) z.Lit {
	g := enc.Solver
	v := g.Lit()
	for _, c := range children {
		clause(g, v.Not(), c)
	}
	neg := make([]z.Lit, 0, len(children)+1)
	neg = append(neg, v)
	for _, c := range children {
		neg = append(neg, c.Not())
	}
	clause(g, neg...)
	return v
}

// tseitinOr introduces v <-> (c1 ∨ ... ∨ cn).
func (enc *Encoder) tseitinOr(children []z.Lit) z.Lit {
	g := enc.Solver
	v := g.Lit()
	for _, c := range children {
		clause(g, v, c.Not())
	}
	pos := make([]z.Lit, 0, len(children)+1)
	pos = append(pos, v.Not())
	for _, c := range children {
		pos = append(pos, c)
	}
	clause(g, pos...)
	return v
}

func clause(g *gini.Gini, lits ...z.Lit) {
	for _, l := range lits {
		g.Add(l)
	}
	g.Add(0)
}

func unit(g *gini.Gini, lit z.Lit) {
	clause(g, lit)
}

// isConstantAtom reports whether neither side of a references a
// non-constant identifier (spec §4.5 "Atomic-atom detection").
func isConstantAtom(a *ast.Atom, bindings *resolver.Bindings) bool {
	constantOnly := true
	ast.Walk(a, func(n ast.Expr) bool {
		if id, ok := n.(*ast.Ident); ok {
			bd, found := bindings.Get(id.Name)
			if !found || !bd.IsConstant {
				constantOnly = false
				return false
			}
		}
		return true
	})
	return constantOnly
}

// Assume assigns an atom's literal the requested truth value for the next
// Solve call.
func (enc *Encoder) Assume(lits ...z.Lit) {
	enc.Solver.Assume(lits...)
}

// Solve runs the SAT core; res follows gini's convention (1 sat, -1 unsat,
// 0 unknown/timeout — treated as infeasible per spec §7.5).
func (enc *Encoder) Solve() int {
	return enc.Solver.Solve()
}

func (enc *Encoder) ModelValue(lit z.Lit) bool {
	return enc.Solver.Value(lit)
}
