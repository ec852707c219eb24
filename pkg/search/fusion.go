package search

import "sort"

// Default fusion weights for the hybrid retriever.
const (
	WeightLexical = 0.4
	WeightDense   = 0.6
)

// rrfConstant dampens the influence of lower-ranked items. The conventional
// value from the reciprocal-rank-fusion literature.
const rrfConstant = 60.0

// Fused is one item of a fused ranking.
type Fused struct {
	ID    string
	Score float64
}

// FuseRankings combines two ranked ID lists by weighted reciprocal-rank
// fusion: each list contributes weight/(rrfConstant+rank) per item. Items
// present in both lists accumulate both contributions. Returns the fused
// ranking, descending by score, at most k items (k <= 0 means unbounded).
func FuseRankings(lexical, dense []string, lexicalWeight, denseWeight float64, k int) []Fused {
	scores := make(map[string]float64)

	for rank, id := range lexical {
		scores[id] += lexicalWeight / (rrfConstant + float64(rank+1))
	}
	for rank, id := range dense {
		scores[id] += denseWeight / (rrfConstant + float64(rank+1))
	}

	fused := make([]Fused, 0, len(scores))
	for id, score := range scores {
		fused = append(fused, Fused{ID: id, Score: score})
	}
	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score == fused[j].Score {
			return fused[i].ID < fused[j].ID
		}
		return fused[i].Score > fused[j].Score
	})

	if k > 0 && len(fused) > k {
		fused = fused[:k]
	}
	return fused
}
