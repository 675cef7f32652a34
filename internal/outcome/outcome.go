// Package outcome renders a synthesized witness into the
// `sym=value, sym=value, …` assignment string and True/False result field
// of spec §4.6 (component C7).
package outcome

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"mcdcsynth/internal/smt"
)

// precision is the minimum significant-digit count §4.5 requires for
// rendered real values ("rendered to decimal with ≥10 significant digits").
const precision = 10

// Render formats witness as spec §4.6's assignment string, at the
// spec-mandated minimum precision of 10 significant digits: symbols sorted
// lexicographically, synthetic `_X_` aliases rendered back as `last(X)`.
func Render(env smt.Env) string {
	return RenderPrecise(env, precision)
}

// RenderPrecise is Render with a caller-chosen significant-digit count
// (SPEC_FULL.md's configurable rendering precision); sig is clamped up to
// the spec-mandated floor of 10.
func RenderPrecise(env smt.Env, sig int) string {
	if sig < precision {
		sig = precision
	}
	symbols := make([]string, 0, len(env))
	for sym := range env {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	parts := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		parts = append(parts, fmt.Sprintf("%s=%s", displayName(sym), formatValue(env[sym], sig)))
	}
	return strings.Join(parts, ", ")
}

// ExpectedResult renders D's value under witness as the literal string
// "True" or "False" (spec §4.6).
func ExpectedResult(result bool) string {
	if result {
		return "True"
	}
	return "False"
}

func displayName(sym string) string {
	if len(sym) >= 2 && sym[0] == '_' && sym[len(sym)-1] == '_' {
		return "last(" + sym[1:len(sym)-1] + ")"
	}
	return sym
}

func formatValue(v smt.Value, sig int) string {
	switch v.Kind {
	case smt.VBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		if v.IsInt {
			return v.Num.RatString()
		}
		return formatRat(v.Num, sig)
	}
}

// formatRat renders an exact rational to a decimal string carrying at
// least `sig` significant digits (counted from the first non-zero digit),
// then trims trailing zeros and a bare trailing point. big.Rat.FloatString
// rounds to a fixed number of decimals and emits no `?` approximation
// marker, so there is none to strip.
func formatRat(r *big.Rat, sig int) string {
	if r == nil {
		return "0"
	}
	whole := new(big.Int)
	whole.Quo(r.Num(), r.Denom())
	digits := 0
	if whole.Sign() != 0 {
		digits = len(whole.Abs(whole).String())
	}
	decimals := sig - digits
	if whole.Sign() == 0 && r.Sign() != 0 {
		// |r| < 1: every zero right after the decimal point needs one more
		// decimal place to keep sig significant digits.
		frac := new(big.Rat).Abs(r)
		tenth := big.NewRat(1, 10)
		for frac.Cmp(tenth) < 0 {
			frac.Mul(frac, big.NewRat(10, 1))
			decimals++
		}
	}
	if decimals < 1 {
		decimals = 1
	}
	s := r.FloatString(decimals)
	return strings.TrimRight(strings.TrimRight(s, "0"), ".")
}
