package fmdl

import (
	"math"
	"sort"
)

// Candidate is a merge proposal: an observed bigram, its corpus frequency,
// and the estimated description-length delta of fusing it. The estimate is
// made against the epoch's freshly seeded codebook; the committer
// revalidates it against the codebook as mutated by earlier commits.
type Candidate struct {
	Pair  Pair
	Total int
	Cost  Cost
}

type pairCount struct {
	Pair  Pair
	Count int
}

// topPairs returns the n most frequent bigrams, most frequent first. Ties
// break lexicographically so candidate collection is deterministic.
func topPairs(stats PairStats, n int) []pairCount {
	out := make([]pairCount, 0, len(stats))
	for p, c := range stats {
		out = append(out, pairCount{Pair: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Pair.Left != out[j].Pair.Left {
			return out[i].Pair.Left < out[j].Pair.Left
		}
		return out[i].Pair.Right < out[j].Pair.Right
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// rankCandidates orders candidates by ascending estimated cost, cheapest
// merges first, and keeps the best threshold fraction, rounding up. The
// sort is stable so equal-cost candidates keep their frequency order.
func rankCandidates(cands []Candidate, threshold float64) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Cost.Total() < cands[j].Cost.Total()
	})
	keep := int(math.Ceil(float64(len(cands)) * threshold))
	return cands[:keep]
}
