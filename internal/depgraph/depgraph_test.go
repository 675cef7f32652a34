package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcdcsynth/internal/ast"
	"mcdcsynth/internal/decparser"
	"mcdcsynth/internal/depgraph"
	"mcdcsynth/internal/lexer"
)

func TestBuildAndFanOut(t *testing.T) {
	c1, a1 := lexer.Normalize("A > 5 && B < 3")
	e1, perrs1 := decparser.Parse(c1)
	require.Empty(t, perrs1)

	c2, a2 := lexer.Normalize("A > 0")
	e2, perrs2 := decparser.Parse(c2)
	require.Empty(t, perrs2)

	graph, err := depgraph.Build([]ast.Expr{e1, e2}, [][]lexer.Alias{a1, a2})
	require.NoError(t, err)

	assert.Equal(t, 2, graph.FanOut("A"))
	assert.Equal(t, 1, graph.FanOut("B"))
}

func TestSelfReferenceCycleDetection(t *testing.T) {
	c1, a1 := lexer.Normalize("last(H) - H > 2")
	e1, perrs1 := decparser.Parse(c1)
	require.Empty(t, perrs1)

	graph, err := depgraph.Build([]ast.Expr{e1}, [][]lexer.Alias{a1})
	require.NoError(t, err)

	// A single decision referencing both H and _H_ (folded to H) never
	// closes a cycle on its own; DetectCycles should report none.
	cycles, err := graph.SelfReferenceCycles()
	require.NoError(t, err)
	assert.Empty(t, cycles)
}
