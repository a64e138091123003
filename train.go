package fmdl

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// verboseSamples is how many segmented lines verbose mode shows per epoch.
const verboseSamples = 5

// ErrBadConfig indicates training options that cannot produce a valid run.
var ErrBadConfig = errors.New("fmdl: invalid training options")

// Dataset is the training-data contract the Trainer drives. Corpus is the
// concrete implementation; tests substitute scripted datasets.
type Dataset interface {
	// BuildVocab recomputes and returns the token census under the current
	// segmentation.
	BuildVocab() map[string]int
	// Vocab returns the census from the last BuildVocab or ApplyCodebook.
	Vocab() map[string]int
	// DataLen returns the corpus length in tokens.
	DataLen() int
	// Stopwords returns the protected token set.
	Stopwords() map[string]struct{}
	// PairStats counts adjacent token pairs, stopwords excluded.
	PairStats() PairStats
	// Contexts returns the surrounding tokens of every occurrence of p.
	Contexts(p Pair) []PairContext
	// ApplyCodebook re-encodes the corpus against cb.
	ApplyCodebook(cb *Codebook)
	// Samples returns up to n segmented lines for diagnostics.
	Samples(n int) []string
}

// Options configures training. A zero field selects its default, except
// Iterations, where zero is meaningful: it runs no epochs and Train returns
// the freshly seeded codebook. Use DefaultOptions for the stock parameters.
type Options struct {
	// Iterations is the number of epochs. Zero seeds without training.
	Iterations int
	// MinCount rejects merges whose validated frequency falls below it
	// (default 5).
	MinCount int
	// VocabSize caps the codebook; exceeding it stops training (default
	// 20000).
	VocabSize int
	// Threshold is the fraction of negative-cost candidates kept per epoch,
	// in (0, 1] (default 0.8).
	Threshold float64
	// MaxCandidates bounds how many of the most frequent bigrams are scored
	// per epoch (default VocabSize/2).
	MaxCandidates int
	// Verbose logs segmented corpus samples at the start of each epoch.
	Verbose bool
	// Progress observes training milestones. Defaults to a silent observer,
	// or to LogProgress when Verbose is set.
	Progress Progress
}

// Trainer owns the training state for one run: the evolving codebook, the
// fixed per-character code cost base, and the corpus length that commits
// decrement as they fuse tokens. It is not safe for concurrent use.
type Trainer struct {
	corpus  Dataset
	opts    Options
	book    *Codebook
	logBase float64
	dataLen int
}

// DefaultOptions returns the stock training configuration.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		MinCount:   DefaultMinCount,
		VocabSize:  DefaultVocabSize,
		Threshold:  DefaultThreshold,
	}
}

// NewTrainer validates opts, fills in defaults, and prepares a training run
// over corpus. Negative or out-of-range options are reported as errors
// rather than clamped.
func NewTrainer(corpus Dataset, opts Options) (*Trainer, error) {
	if corpus == nil {
		return nil, fmt.Errorf("%w: nil corpus", ErrBadConfig)
	}
	if opts.MinCount == 0 {
		opts.MinCount = DefaultMinCount
	}
	if opts.VocabSize == 0 {
		opts.VocabSize = DefaultVocabSize
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxCandidates == 0 {
		opts.MaxCandidates = max(opts.VocabSize/2, 1)
	}
	if opts.Progress == nil {
		if opts.Verbose {
			opts.Progress = LogProgress{}
		} else {
			opts.Progress = nopProgress{}
		}
	}
	switch {
	case opts.Iterations < 0:
		return nil, fmt.Errorf("%w: iterations %d", ErrBadConfig, opts.Iterations)
	case opts.MinCount < 1:
		return nil, fmt.Errorf("%w: min count %d", ErrBadConfig, opts.MinCount)
	case opts.VocabSize < 1:
		return nil, fmt.Errorf("%w: vocab size %d", ErrBadConfig, opts.VocabSize)
	case opts.Threshold < 0 || opts.Threshold > 1 || math.IsNaN(opts.Threshold):
		return nil, fmt.Errorf("%w: threshold %v", ErrBadConfig, opts.Threshold)
	case opts.MaxCandidates < 1:
		return nil, fmt.Errorf("%w: max candidates %d", ErrBadConfig, opts.MaxCandidates)
	}
	return &Trainer{corpus: corpus, opts: opts}, nil
}

// Train runs the configured number of epochs and returns the learned
// codebook. Each epoch reseeds the codebook from the current census,
// scores candidate merges, commits the survivors one at a time, and
// re-encodes the corpus. Training stops early only when the codebook
// exceeds VocabSize; the codebook as committed so far is returned.
//
// Rejected merges are not errors. Train never fails once NewTrainer has
// accepted the configuration.
func (t *Trainer) Train() *Codebook {
	census := t.corpus.BuildVocab()
	t.book = NewCodebook(census, t.corpus.Stopwords())
	if len(census) == 0 {
		return t.book
	}
	// The per-character transmission cost is fixed by the initial alphabet
	// and deliberately not updated as the codebook grows.
	t.logBase = -math.Log(float64(len(census)))
	for epoch := 0; epoch < t.opts.Iterations; epoch++ {
		t.opts.Progress.EpochStart(epoch)
		if t.opts.Verbose {
			t.opts.Progress.Samples(epoch, t.corpus.Samples(verboseSamples))
		}
		t.book = NewCodebook(t.corpus.Vocab(), t.corpus.Stopwords())
		t.dataLen = t.corpus.DataLen()
		cands := t.collectCandidates(t.corpus.PairStats())
		if !t.updateCodebook(epoch, cands) {
			break
		}
		t.corpus.ApplyCodebook(t.book)
	}
	return t.book
}

// computeCost estimates the description-length delta of fusing p at the
// given frequency, against the codebook and corpus length as they stand.
func (t *Trainer) computeCost(p Pair, total int) Cost {
	c1 := t.book.Count(p.Left)
	c2 := t.book.Count(p.Right)
	return Cost{
		Code: codeCostRaw(p.Left, p.Right, c1, c2, total) * t.logBase,
		Data: dataCost(float64(total), float64(c1), float64(c2), float64(t.dataLen)),
	}
}

// collectCandidates scores the most frequent bigrams and keeps the best
// negative-cost fraction, cheapest first.
func (t *Trainer) collectCandidates(stats PairStats) []Candidate {
	var cands []Candidate
	for _, pc := range topPairs(stats, t.opts.MaxCandidates) {
		if pc.Count < t.opts.MinCount {
			continue
		}
		cost := t.computeCost(pc.Pair, pc.Count)
		if cost.Total() < 0 {
			cands = append(cands, Candidate{Pair: pc.Pair, Total: pc.Count, Cost: cost})
		}
	}
	return rankCandidates(cands, t.opts.Threshold)
}

// checkValid discounts occurrences of p that an earlier commit in this
// epoch would already have claimed: sites where the preceding token fuses
// with p's left half, or failing that, where p's right half fuses with the
// following token. Each site is discounted at most once. The result can go
// negative; the caller compares it against MinCount.
func (t *Trainer) checkValid(p Pair, total int) int {
	for _, ctx := range t.corpus.Contexts(p) {
		if ctx.Prev != "" && t.book.Contains(ctx.Prev+p.Left) {
			total--
		} else if ctx.Next != "" && t.book.Contains(p.Right+ctx.Next) {
			total--
		}
	}
	return total
}

// commit revalidates one candidate and, if it still pays, applies the merge
// to the codebook. The corpus length is decremented before the cost
// recheck and intentionally stays decremented when the recheck rejects;
// later candidates see the shorter length. The recheck fails only on a
// strictly positive cost: a merge that consolidates the whole corpus can
// recompute to exactly zero nats and must still land.
func (t *Trainer) commit(cand Candidate) bool {
	total := t.checkValid(cand.Pair, cand.Total)
	if total < t.opts.MinCount {
		return false
	}
	t.dataLen -= total
	if t.computeCost(cand.Pair, total).Total() > 0 {
		return false
	}
	t.book.bump(cand.Pair.Left+cand.Pair.Right, total)
	t.book.bump(cand.Pair.Left, -total)
	t.book.bump(cand.Pair.Right, -total)
	return true
}

// updateCodebook runs the commit pass for one epoch. The size cap is
// checked before every commit; crossing it reports Capped and returns
// false, which ends training with the codebook as committed so far.
func (t *Trainer) updateCodebook(epoch int, cands []Candidate) bool {
	before := t.book.Len()
	committed := 0
	for _, cand := range cands {
		if t.book.Len() > t.opts.VocabSize {
			t.opts.Progress.Capped(epoch, t.book.Len())
			t.opts.Progress.EpochEnd(epoch, before, t.book.Len(), committed)
			return false
		}
		if t.commit(cand) {
			committed++
		}
	}
	t.opts.Progress.EpochEnd(epoch, before, t.book.Len(), committed)
	return true
}

// Train learns a codebook from corpus in one call.
func Train(corpus Dataset, opts Options) (*Codebook, error) {
	t, err := NewTrainer(corpus, opts)
	if err != nil {
		return nil, err
	}
	return t.Train(), nil
}

// TrainLines learns a codebook from in-memory lines. It is a convenience
// for tests and small inputs; larger corpora should go through LoadCorpus.
func TrainLines(lines []string, opts Options) (*Codebook, error) {
	c, err := NewCorpus(strings.NewReader(strings.Join(lines, "\n")), CorpusOptions{})
	if err != nil {
		return nil, err
	}
	return Train(c, opts)
}
