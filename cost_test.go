package fmdl

import (
	"math"
	"testing"
)

// Sweep small count tuples, including degenerate ones the guards must
// absorb: zero counts, zero corpus length, totals exceeding the counts.
func TestDataCostFinite(t *testing.T) {
	for c1w2 := 0; c1w2 <= 5; c1w2++ {
		for c1 := 0; c1 <= 5; c1++ {
			for c2 := 0; c2 <= 5; c2++ {
				for n := 0; n <= 8; n++ {
					got := dataCost(float64(c1w2), float64(c1), float64(c2), float64(n))
					if math.IsNaN(got) || math.IsInf(got, 0) {
						t.Fatalf("dataCost(%d,%d,%d,%d) = %v, want finite", c1w2, c1, c2, n, got)
					}
				}
			}
		}
	}
}

func TestDataCostValues(t *testing.T) {
	tests := []struct {
		name            string
		c1w2, c1, c2, n float64
		want            float64
	}{
		// Merging every ab in ababab: the canonical entropy reduction.
		{"full_consolidation", 3, 3, 3, 6, 3 * math.Log(0.5)},
		// Post-commit recheck of the same merge: corpus length already
		// shrunk to 3, every term cancels.
		{"post_commit_neutral", 3, 3, 3, 3, 0},
		// Partial merge leaves residual mass for both halves.
		{"partial_merge", 2, 3, 3, 6, 6*math.Log(0.5) - 2*math.Log(1.0/6) - 2*math.Log(1.0/3)},
		{"two_line_consolidation", 6, 6, 6, 12, 6 * math.Log(0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dataCost(tt.c1w2, tt.c1, tt.c2, tt.n)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("dataCost(%v,%v,%v,%v) = %v, want %v", tt.c1w2, tt.c1, tt.c2, tt.n, got, tt.want)
			}
		})
	}
}

func TestDataCostSign(t *testing.T) {
	// A frequent pair in a large corpus must be worth merging; a rare one
	// must not.
	if got := dataCost(50, 60, 60, 500); got >= 0 {
		t.Fatalf("frequent pair: dataCost = %v, want negative", got)
	}
	if got := dataCost(2, 60, 60, 500); got <= 0 {
		t.Fatalf("rare pair: dataCost = %v, want positive", got)
	}
}

func TestCodeCostRaw(t *testing.T) {
	tests := []struct {
		name          string
		w1, w2        string
		c1, c2, total int
		want          float64
	}{
		// Both halves fully consumed: dictionary grows and shrinks evenly.
		{"both_consumed", "a", "b", 3, 3, 3, 0},
		{"right_consumed", "a", "b", 5, 3, 3, -1},
		{"neither_consumed", "a", "b", 5, 7, 3, -2},
		// No occurrences at all: nothing added, both "consumed" at zero.
		{"degenerate_zero", "a", "b", 0, 0, 0, 2},
		// Lengths are code points, not bytes.
		{"multibyte", "日", "本語", 9, 9, 3, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codeCostRaw(tt.w1, tt.w2, tt.c1, tt.c2, tt.total)
			if got != tt.want {
				t.Fatalf("codeCostRaw(%q,%q,%d,%d,%d) = %v, want %v",
					tt.w1, tt.w2, tt.c1, tt.c2, tt.total, got, tt.want)
			}
		})
	}
}

func TestCostTotal(t *testing.T) {
	c := Cost{Code: 1.5, Data: -2.0}
	if got := c.Total(); got != -0.5 {
		t.Fatalf("Total() = %v, want -0.5", got)
	}
}

// FuzzDataCost checks that the guards hold for arbitrary count tuples,
// including totals larger than either half's count and counts larger than
// the corpus length.
func FuzzDataCost(f *testing.F) {
	f.Add(uint16(3), uint16(3), uint16(3), uint16(6))
	f.Add(uint16(5), uint16(9), uint16(7), uint16(40))
	f.Add(uint16(1), uint16(5), uint16(5), uint16(19))
	f.Add(uint16(0), uint16(0), uint16(0), uint16(0))
	f.Add(uint16(50), uint16(2), uint16(2), uint16(10))
	f.Fuzz(func(t *testing.T, c1w2, c1, c2, n uint16) {
		got := dataCost(float64(c1w2), float64(c1), float64(c2), float64(n))
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("dataCost(%d,%d,%d,%d) = %v, want finite", c1w2, c1, c2, n, got)
		}
	})
}
