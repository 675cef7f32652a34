// Package depgraph is a diagnostic extra (SPEC_FULL.md "Symbol usage
// diagnostics"): it builds a per-module bipartite graph of decisions and
// the symbols they reference, using github.com/katalvlaran/lvlath, to
// report shared-variable fan-out and detect `last(X)` alias self-reference
// cycles. It never affects synthesis outcomes — only what gets logged.
package depgraph

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/lexer"
)

// decisionPrefix/symbolPrefix keep the two vertex classes from colliding
// when a decision's source text happens to match a symbol name.
const (
	decisionPrefix = "D:"
	symbolPrefix   = "S:"
)

// Graph wraps a core.Graph specialized to one module's decision/symbol
// usage, plus the alias table needed to find last(X) self-reference
// cycles.
type Graph struct {
	g       *core.Graph
	aliases map[string]string // synthetic "_X_" -> original "X"
}

// Build adds one vertex per decision (keyed by its index in decisions) and
// one per referenced symbol, with a directed edge decision -> symbol for
// every identifier the decision's expr references.
func Build(decisions []ast.Expr, aliasesPerDecision [][]lexer.Alias) (*Graph, error) {
	g := core.NewGraph(core.WithDirected(true))
	dg := &Graph{g: g, aliases: make(map[string]string)}

	for i, expr := range decisions {
		decisionID := fmt.Sprintf("%s%d", decisionPrefix, i)
		if err := g.AddVertex(decisionID); err != nil {
			return nil, err
		}
		for _, alias := range aliasesPerDecision[i] {
			dg.aliases[alias.Synthetic] = alias.Original
		}
		linked := make(map[string]bool)
		for _, sym := range ast.Idents(expr) {
			symID := symbolPrefix + canonicalSymbol(sym, dg.aliases)
			if err := g.AddVertex(symID); err != nil {
				return nil, err
			}
			if linked[symID] {
				continue // H and its _H_ alias canonicalize to one vertex; one edge suffices
			}
			linked[symID] = true
			if _, err := g.AddEdge(decisionID, symID, 1); err != nil {
				return nil, err
			}
		}
	}
	return dg, nil
}

// canonicalSymbol folds a `_X_` alias back to its original X so the
// original variable and every `last(X)` reference to it share one vertex
// (a self-reference would otherwise never close a cycle).
func canonicalSymbol(sym string, aliases map[string]string) string {
	if orig, ok := aliases[sym]; ok {
		return orig
	}
	return sym
}

// SelfReferenceCycles runs DetectCycles over the graph and returns the
// cycles it finds. Every edge Build adds runs from a decision vertex to a
// symbol vertex, so a graph built by Build has no directed cycle and the
// result is always empty; X and its `last(X)` alias fold to one vertex and
// do not form a cycle either.
func (dg *Graph) SelfReferenceCycles() ([][]string, error) {
	found, cycles, err := dfs.DetectCycles(dg.g)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return cycles, nil
}

// FanOut returns, for a symbol, the number of distinct decisions that
// reference it — a quick "how load-bearing is this variable" diagnostic.
func (dg *Graph) FanOut(symbol string) int {
	target := symbolPrefix + symbol
	count := 0
	for _, e := range dg.g.Edges() {
		if e.To == target {
			count++
		}
	}
	return count
}
