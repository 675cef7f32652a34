package smt_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"mcdcsynth/internal/catalog"
	"mcdcsynth/internal/decparser"
	"mcdcsynth/internal/lexer"
	"mcdcsynth/internal/module"
	"mcdcsynth/internal/resolver"
	"mcdcsynth/internal/smt"
)

// stringifyEnv projects an Env into a plain map for cmp.Diff: smt.Value
// carries a *big.Rat, whose unexported fields cmp.Diff can't walk without
// a custom Comparer, so comparisons go through RatString()/fmt instead.
func stringifyEnv(env smt.Env) map[string]string {
	out := make(map[string]string, len(env))
	for sym, v := range env {
		switch v.Kind {
		case smt.VBool:
			out[sym] = fmt.Sprintf("bool:%v", v.Bool)
		default:
			out[sym] = fmt.Sprintf("num:%s", v.Num.RatString())
		}
	}
	return out
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSynthesizeSingleAtomPair(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))

	canonical, aliases := lexer.Normalize("A > 5")
	expr, perrs := decparser.Parse(canonical)
	require.Empty(t, perrs)
	bindings, diags, ok := resolver.New().Resolve(expr, aliases, cat, &module.Module{})
	require.True(t, ok)
	require.Empty(t, diags)

	pairs, sdiags := smt.Synthesize(expr, bindings, "A > 5", "m1", "Module1")
	require.Empty(t, sdiags)
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.True(t, p.Plus.Result)
	assert.False(t, p.Minus.Result)

	aVal, err := smt.Eval(expr, p.Plus.Env)
	require.NoError(t, err)
	assert.True(t, aVal.Bool)
}

func TestSynthesizeAndDecisionIndependence(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "B", Kind: catalog.KindInt, Min: 0, Max: 10}))

	canonical, aliases := lexer.Normalize("A > 5 && B < 3")
	expr, perrs := decparser.Parse(canonical)
	require.Empty(t, perrs)
	bindings, diags, ok := resolver.New().Resolve(expr, aliases, cat, &module.Module{})
	require.True(t, ok)
	require.Empty(t, diags)

	pairs, sdiags := smt.Synthesize(expr, bindings, canonical, "m1", "Module1")
	require.Empty(t, sdiags)
	require.Len(t, pairs, 2)

	for _, p := range pairs {
		assert.NotEqual(t, p.Plus.Result, p.Minus.Result, "decision must flip across the pair")

		plusVal, err := smt.Eval(p.Atom, p.Plus.Env)
		require.NoError(t, err)
		assert.True(t, plusVal.Bool)

		minusVal, err := smt.Eval(p.Atom, p.Minus.Env)
		require.NoError(t, err)
		assert.False(t, minusVal.Bool)
	}
}

func TestSynthesizeModuleInputBoolFallback(t *testing.T) {
	// flag has no Catalog entry at all — it only exists as a declared
	// module input, and must be inferred as boolean from the `== true`
	// comparison rather than defaulted to a bounded real (a real-typed
	// fallback here can never realize, since candidateValues only probes
	// {true,false} for KindBool).
	cat := catalog.New()
	mod := &module.Module{Inputs: []string{"flag"}}

	canonical, aliases := lexer.Normalize("flag == true")
	expr, perrs := decparser.Parse(canonical)
	require.Empty(t, perrs)
	bindings, diags, ok := resolver.New().Resolve(expr, aliases, cat, mod)
	require.True(t, ok)
	require.Empty(t, diags)

	pairs, sdiags := smt.Synthesize(expr, bindings, canonical, "m1", "Module1")
	require.Empty(t, sdiags, "flag must realize, not be reported as a masked atom")
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.True(t, p.Plus.Result)
	assert.False(t, p.Minus.Result)
}

func TestSynthesizeWitnessesAreDeterministic(t *testing.T) {
	// Re-running synthesis over the same decision must produce the same
	// witness values every time (spec §4.5 "Tie-breaks"); go-cmp pinpoints
	// exactly which symbol diverges if the backtracking search's candidate
	// order ever stops being deterministic.
	synthOnce := func() []smt.Pair {
		cat := catalog.New()
		require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))
		require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "B", Kind: catalog.KindInt, Min: 0, Max: 10}))

		canonical, aliases := lexer.Normalize("A > 5 && B < 3")
		expr, perrs := decparser.Parse(canonical)
		require.Empty(t, perrs)
		bindings, diags, ok := resolver.New().Resolve(expr, aliases, cat, &module.Module{})
		require.True(t, ok)
		require.Empty(t, diags)

		pairs, sdiags := smt.Synthesize(expr, bindings, canonical, "m1", "Module1")
		require.Empty(t, sdiags)
		return pairs
	}

	first := synthOnce()
	second := synthOnce()
	require.Len(t, first, len(second))

	for i := range first {
		if diff := cmp.Diff(stringifyEnv(first[i].Plus.Env), stringifyEnv(second[i].Plus.Env)); diff != "" {
			t.Fatalf("pair %d v+ witness differs across runs (-first +second):\n%s", i, diff)
		}
		if diff := cmp.Diff(stringifyEnv(first[i].Minus.Env), stringifyEnv(second[i].Minus.Env)); diff != "" {
			t.Fatalf("pair %d v- witness differs across runs (-first +second):\n%s", i, diff)
		}
	}
}

func TestSynthesizeConstantAtomExcluded(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddConstant(&catalog.Constant{Symbol: "PI", Value: 3.14159}))
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))

	canonical, aliases := lexer.Normalize("PI < 4 && A > 5")
	expr, perrs := decparser.Parse(canonical)
	require.Empty(t, perrs)
	bindings, diags, ok := resolver.New().Resolve(expr, aliases, cat, &module.Module{})
	require.True(t, ok)
	require.Empty(t, diags)

	pairs, sdiags := smt.Synthesize(expr, bindings, canonical, "m1", "Module1")
	require.Empty(t, sdiags)
	require.Len(t, pairs, 1, "the constant-only atom PI < 4 is never a flip candidate")
}
