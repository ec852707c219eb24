// Package search holds the pure ranking primitives behind the hybrid
// retriever: a BM25 lexical scorer and weighted reciprocal-rank fusion.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// BM25 free parameters. Standard Okapi defaults.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// BM25 is a keyword-statistical index built fresh from the current document
// set at query time. It is stateless by design and never persisted.
type BM25 struct {
	docTokens [][]string
	docFreq   map[string]int
	avgDocLen float64
}

// NewBM25 builds the index over the given documents. Document order is
// preserved: result indices refer to positions in docs.
func NewBM25(docs []string) *BM25 {
	idx := &BM25{
		docTokens: make([][]string, len(docs)),
		docFreq:   make(map[string]int),
	}

	var totalLen int
	for i, doc := range docs {
		tokens := Tokenize(doc)
		idx.docTokens[i] = tokens
		totalLen += len(tokens)

		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				idx.docFreq[tok]++
				seen[tok] = true
			}
		}
	}
	if len(docs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(docs))
	}
	return idx
}

// Rank scores every document against the query and returns document indices
// ordered by descending relevance, zero-score documents excluded, at most k.
// k <= 0 means unbounded.
func (b *BM25) Rank(query string, k int) []int {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 || len(b.docTokens) == 0 {
		return nil
	}

	n := float64(len(b.docTokens))
	type scored struct {
		idx   int
		score float64
	}
	var results []scored

	for i, tokens := range b.docTokens {
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}

		var score float64
		docLen := float64(len(tokens))
		for _, q := range queryTokens {
			freq := float64(tf[q])
			if freq == 0 {
				continue
			}
			df := float64(b.docFreq[q])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := freq * (bm25K1 + 1) / (freq + bm25K1*(1-bm25B+bm25B*docLen/b.avgDocLen))
			score += idf * norm
		}
		if score > 0 {
			results = append(results, scored{idx: i, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	ranked := make([]int, len(results))
	for i, r := range results {
		ranked[i] = r.idx
	}
	return ranked
}

// Tokenize lowercases and splits on any non-letter, non-digit rune.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
