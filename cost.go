package fmdl

import (
	"math"
	"unicode/utf8"
)

// Default training parameters
const (
	DefaultIterations = 5     // training epochs
	DefaultMinCount   = 5     // ignore merges rarer than this
	DefaultVocabSize  = 20000 // codebook size cap
	DefaultThreshold  = 0.8   // keep this fraction of scored candidates
)

// Cost is the estimated description-length delta of a merge, in nats.
// Code is the change in the cost of transmitting the codebook itself;
// Data is the change in the cost of the corpus encoded with it. A merge
// is worth committing only when Total is negative.
type Cost struct {
	Code float64
	Data float64
}

// Total returns the combined description-length delta.
func (c Cost) Total() float64 { return c.Code + c.Data }

// runeLen is the token length in code points, not bytes. Code cost charges
// per character transmitted, so multi-byte scripts must not be overcharged.
func runeLen(s string) int { return utf8.RuneCountInString(s) }

// dataCost estimates how the corpus encoding cost changes when c1w2
// occurrences of a bigram are fused into one token. c1 and c2 are the
// current unigram counts of the two halves and n is the corpus length in
// tokens. Derived from the two-part MDL objective: each term moves
// probability mass from the halves to the fused token.
//
// Every logarithm is guarded. Counts can legitimately reach zero mid-epoch
// (an earlier commit may have consumed a half entirely), and a guarded term
// contributes nothing rather than producing a NaN or Inf that would poison
// the comparison against zero.
func dataCost(c1w2, c1, c2, n float64) float64 {
	cost := 0.0
	if c1 > 0 && n > 0 {
		cost += c1 * math.Log(c1/n)
	}
	if c1 > c1w2 && n > 0 {
		cost -= (c1 - c1w2) * math.Log((c1-c1w2)/n)
	}
	if c2 > 0 && n > 0 {
		cost += c2 * math.Log(c2/n)
	}
	if c2 > c1w2 && n > 0 {
		cost -= (c2 - c1w2) * math.Log((c2-c1w2)/n)
	}
	if c1w2 > 0 && n > 0 {
		cost -= c1w2 * math.Log(c1w2/n)
	}
	if n > c1w2 {
		cost += (n - c1 - c2) * math.Log((n-c1w2)/n)
	}
	return cost
}

// codeCostRaw counts the characters the codebook gains or sheds when w1 and
// w2 fuse: the fused token always enters, and a half leaves when the merge
// consumes every occurrence it has (total == count). The result is negated
// so that scaling by the trainer's negative log base yields nats with the
// same sign convention as dataCost.
func codeCostRaw(w1, w2 string, c1, c2, total int) float64 {
	raw := 0.0
	if total > 0 {
		raw += float64(runeLen(w1) + runeLen(w2))
	}
	if total == c1 {
		raw -= float64(runeLen(w1))
	}
	if total == c2 {
		raw -= float64(runeLen(w2))
	}
	return -raw
}
