package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcdcsynth/internal/catalog"
)

func TestAddVariablePromotesToConstant(t *testing.T) {
	cat := catalog.New()
	err := cat.AddVariable(&catalog.Variable{
		Symbol: "LIMIT", Kind: catalog.KindReal,
		Min: 7, Max: 7, Initial: 7, HasInitial: true,
	})
	require.NoError(t, err)

	_, isVar := cat.LookupVariable("LIMIT")
	assert.False(t, isVar)

	k, isConst := cat.LookupConstant("LIMIT")
	require.True(t, isConst)
	assert.Equal(t, float64(7), k.Value)
	assert.True(t, cat.IsConstant("LIMIT"))
}

func TestAddVariableBoolNeverPromoted(t *testing.T) {
	cat := catalog.New()
	err := cat.AddVariable(&catalog.Variable{
		Symbol: "READY", Kind: catalog.KindBool, HasInitial: true, Initial: 1,
	})
	require.NoError(t, err)

	v, isVar := cat.LookupVariable("READY")
	require.True(t, isVar)
	assert.Equal(t, catalog.KindBool, v.Kind)
	assert.False(t, cat.IsConstant("READY"))
}

func TestAddVariableWithRangeStaysVariable(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))

	_, isVar := cat.LookupVariable("A")
	assert.True(t, isVar)
	assert.False(t, cat.IsConstant("A"))
}

func TestDuplicateSymbolRejected(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddConstant(&catalog.Constant{Symbol: "LIMIT", Value: 1}))

	err := cat.AddVariable(&catalog.Variable{Symbol: "LIMIT", Kind: catalog.KindInt, Min: 0, Max: 10})
	assert.Error(t, err)
}

func TestSymbolsIncludesBothMaps(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.AddVariable(&catalog.Variable{Symbol: "A", Kind: catalog.KindInt, Min: 0, Max: 10}))
	require.NoError(t, cat.AddConstant(&catalog.Constant{Symbol: "LIMIT", Value: 1}))

	assert.ElementsMatch(t, []string{"A", "LIMIT"}, cat.Symbols())
}
