package smt

import (
	"github.com/irifrance/gini/z"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/diagnostics"
	"mcdcsynth/internal/resolver"
)

// Witness is one concrete valuation over every free symbol plus constants,
// ready for the outcome encoder (spec §4.6).
type Witness struct {
	Env    Env
	Result bool // D(witness)
}

// Pair is the MCDC independence pair (v⁺, v⁻) for one atom (spec §4.5).
type Pair struct {
	AtomIndex int
	Atom      *ast.Atom
	Plus      Witness
	Minus     Witness
}

// Synthesize runs the per-atom DPLL(T) loop of spec §4.5 over expr: for
// every candidate atom (one containing at least one non-constant
// identifier), it derives an independence pair or masks the atom with a
// diagnostic. decisionText/moduleID/moduleName are carried through purely
// for diagnostic context.
func Synthesize(expr ast.Expr, bindings *resolver.Bindings, decisionText, moduleID, moduleName string) ([]Pair, []diagnostics.Diagnostic) {
	enc, err := NewEncoder(expr, bindings)
	if err != nil {
		return nil, []diagnostics.Diagnostic{{
			Kind: diagnostics.KindTypeMismatch, Code: diagnostics.CodeTypeMismatch,
			Message: "decision failed to encode: " + err.Error(), ModuleID: moduleID, ModuleName: moduleName, Decision: decisionText,
		}}
	}

	var pairs []Pair
	var diags []diagnostics.Diagnostic

	for i, atom := range enc.Atoms {
		if isConstantAtom(atom, bindings) {
			continue // not a flip candidate (spec §4.5 "Atomic-atom detection")
		}

		enc.Assume(enc.AtomLits[i], enc.Decision)
		if enc.Solve() != 1 {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "atom could not be forced true while the decision holds"))
			continue
		}

		otherTruth := make(map[int]bool, len(enc.Atoms)-1)
		for j := range enc.Atoms {
			if j == i {
				continue
			}
			otherTruth[j] = enc.ModelValue(enc.AtomLits[j])
		}

		assumeMinus := buildMinusAssumption(enc, i, otherTruth)
		enc.Assume(assumeMinus...)
		if enc.Solve() != 1 {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "atom could not be forced false while the decision flips"))
			continue
		}
		minusTruth := make(map[int]bool, len(enc.Atoms))
		for j := range enc.Atoms {
			minusTruth[j] = enc.ModelValue(enc.AtomLits[j])
		}

		plusRequired := make(map[int]bool, len(enc.Atoms))
		for j, v := range otherTruth {
			plusRequired[j] = v
		}
		plusRequired[i] = true

		plusEnv, ok := Realize(enc.Atoms, plusRequired, bindings)
		if !ok {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "no numeric witness realizes the v+ leg"))
			continue
		}
		minusEnv, ok := Realize(enc.Atoms, minusTruth, bindings)
		if !ok {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "no numeric witness realizes the v- leg"))
			continue
		}

		plusResult, err := Eval(expr, plusEnv)
		if err != nil {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "v+ witness failed to evaluate: "+err.Error()))
			continue
		}
		minusResult, err := Eval(expr, minusEnv)
		if err != nil {
			diags = append(diags, maskedDiagnostic(atom, decisionText, moduleID, moduleName, "v- witness failed to evaluate: "+err.Error()))
			continue
		}

		pairs = append(pairs, Pair{
			AtomIndex: i,
			Atom:      atom,
			Plus:      Witness{Env: plusEnv, Result: plusResult.Bool},
			Minus:     Witness{Env: minusEnv, Result: minusResult.Bool},
		})
	}

	return pairs, diags
}

// buildMinusAssumption is the ¬aᵢ leg's assumption vector: the same
// other-atom truth values observed in the v⁺ model (spec §4.5 step 3
// "the same frozen other-atom truth values"), plus aᵢ negated and the
// decision forced false.
func buildMinusAssumption(enc *Encoder, i int, otherTruth map[int]bool) []z.Lit {
	lits := make([]z.Lit, 0, len(enc.Atoms)+1)
	lits = append(lits, enc.AtomLits[i].Not(), enc.Decision.Not())
	for j, v := range otherTruth {
		if v {
			lits = append(lits, enc.AtomLits[j])
		} else {
			lits = append(lits, enc.AtomLits[j].Not())
		}
	}
	return lits
}

func maskedDiagnostic(atom *ast.Atom, decisionText, moduleID, moduleName, reason string) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:       diagnostics.KindInfeasible,
		Code:       diagnostics.CodeInfeasibleAtom,
		Message:    "atom masked: " + reason,
		Pos:        atom.Pos(),
		ModuleID:   moduleID,
		ModuleName: moduleName,
		Decision:   decisionText,
	}
}
