package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuseRankingsAccumulatesBothLists(t *testing.T) {
	lexical := []string{"a", "b"}
	dense := []string{"b", "c"}

	fused := FuseRankings(lexical, dense, WeightLexical, WeightDense, 0)
	require.Len(t, fused, 3)

	// "b" appears in both lists and must outrank single-list items
	assert.Equal(t, "b", fused[0].ID)

	expected := WeightLexical/(rrfConstant+2) + WeightDense/(rrfConstant+1)
	assert.InDelta(t, expected, fused[0].Score, 1e-12)
}

func TestFuseRankingsDenseWeightDominatesTies(t *testing.T) {
	// same rank position in each list; the dense item wins on weight
	fused := FuseRankings([]string{"lex"}, []string{"den"}, WeightLexical, WeightDense, 0)
	require.Len(t, fused, 2)
	assert.Equal(t, "den", fused[0].ID)
}

func TestFuseRankingsTruncatesToK(t *testing.T) {
	lexical := []string{"a", "b", "c"}
	dense := []string{"d", "e", "f"}

	fused := FuseRankings(lexical, dense, WeightLexical, WeightDense, 4)
	assert.Len(t, fused, 4)
}

func TestFuseRankingsEmptyInputs(t *testing.T) {
	assert.Empty(t, FuseRankings(nil, nil, WeightLexical, WeightDense, 5))
}
