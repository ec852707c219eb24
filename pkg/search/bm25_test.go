package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLowercasesAndSplitsOnPunctuation(t *testing.T) {
	tokens := Tokenize("Binary Search: O(log n), divide-and-conquer!")
	assert.Equal(t, []string{"binary", "search", "o", "log", "n", "divide", "and", "conquer"}, tokens)
}

func TestRankPrefersTermFrequencyAndRarity(t *testing.T) {
	docs := []string{
		"binary search halves the search range on every comparison",
		"bubble sort compares adjacent elements repeatedly",
		"graphs can be traversed depth first or breadth first",
	}
	idx := NewBM25(docs)

	ranked := idx.Rank("binary search", 3)
	require.NotEmpty(t, ranked)
	assert.Equal(t, 0, ranked[0])
}

func TestRankExcludesZeroScoreDocuments(t *testing.T) {
	docs := []string{
		"relational databases use tables",
		"normalization reduces redundancy",
	}
	idx := NewBM25(docs)

	ranked := idx.Rank("quantum entanglement", 5)
	assert.Empty(t, ranked)
}

func TestRankHonorsLimit(t *testing.T) {
	docs := []string{
		"sorting algorithms",
		"sorting networks",
		"sorting stability",
	}
	idx := NewBM25(docs)

	ranked := idx.Rank("sorting", 2)
	assert.Len(t, ranked, 2)
}

func TestRankOnEmptyIndex(t *testing.T) {
	idx := NewBM25(nil)
	assert.Nil(t, idx.Rank("anything", 3))
}
