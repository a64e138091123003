package fmdl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalization selects the Unicode normalization applied to input text
// while loading. The zero value applies none.
type Normalization int

const (
	NormNone Normalization = iota
	NormNFC
	NormNFD
	NormNFKC
	NormNFKD
)

// ParseNormalization maps a form name ("none", "nfc", "nfd", "nfkc",
// "nfkd") to its Normalization, case-insensitively.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return NormNone, nil
	case "nfc":
		return NormNFC, nil
	case "nfd":
		return NormNFD, nil
	case "nfkc":
		return NormNFKC, nil
	case "nfkd":
		return NormNFKD, nil
	}
	return NormNone, fmt.Errorf("fmdl: unknown normalization %q", s)
}

func (nz Normalization) String() string {
	switch nz {
	case NormNFC:
		return "nfc"
	case NormNFD:
		return "nfd"
	case NormNFKC:
		return "nfkc"
	case NormNFKD:
		return "nfkd"
	default:
		return "none"
	}
}

func (nz Normalization) form() (norm.Form, bool) {
	switch nz {
	case NormNFC:
		return norm.NFC, true
	case NormNFD:
		return norm.NFD, true
	case NormNFKC:
		return norm.NFKC, true
	case NormNFKD:
		return norm.NFKD, true
	default:
		return 0, false
	}
}

// Pair is an adjacent token bigram observed in the corpus.
type Pair struct {
	Left  string
	Right string
}

// PairStats maps each observed bigram to its occurrence count.
type PairStats map[Pair]int

// PairContext is one occurrence site of a bigram: the tokens immediately
// before and after it. Prev is empty at the start of a line.
type PairContext struct {
	Prev string
	Next string
}

// CorpusOptions configures corpus loading.
type CorpusOptions struct {
	// Normalization is applied to the text as it is read.
	Normalization Normalization
	// Stopwords lists protected tokens. They are seeded into every epoch's
	// codebook, never removed from it, and never participate in merges.
	Stopwords []string
}

// Corpus is training data under an evolving segmentation. Lines start as
// one token per code point; ApplyCodebook re-encodes them greedily against
// a learned codebook. Statistics never span lines, so sentence boundaries
// need no marker tokens. Corpus implements Dataset.
type Corpus struct {
	raw       []string   // normalized input lines, the re-encoding source
	lines     [][]string // current segmentation
	census    map[string]int
	dataLen   int
	stopwords map[string]struct{}
}

// LoadCorpus reads training text from path, one sentence per line.
func LoadCorpus(path string, opts CorpusOptions) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := NewCorpus(f, opts)
	if err != nil {
		return nil, fmt.Errorf("fmdl: load corpus %s: %w", path, err)
	}
	return c, nil
}

// NewCorpus reads training text from r, one sentence per line. Blank lines
// are skipped; all other characters, whitespace included, become tokens.
func NewCorpus(r io.Reader, opts CorpusOptions) (*Corpus, error) {
	if f, ok := opts.Normalization.form(); ok {
		r = transform.NewReader(r, f)
	}
	c := &Corpus{
		stopwords: make(map[string]struct{}, len(opts.Stopwords)),
	}
	for _, tok := range opts.Stopwords {
		if tok != "" {
			c.stopwords[tok] = struct{}{}
		}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		runes := []rune(line)
		toks := make([]string, 0, len(runes))
		for _, r := range runes {
			toks = append(toks, string(r))
		}
		c.raw = append(c.raw, line)
		c.lines = append(c.lines, toks)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	c.BuildVocab()
	return c, nil
}

// BuildVocab recomputes the token census and corpus length from the current
// segmentation and returns the census. The census is the trainer's "current
// alphabet": each epoch's codebook is seeded from it.
func (c *Corpus) BuildVocab() map[string]int {
	census := make(map[string]int)
	total := 0
	for _, line := range c.lines {
		for _, tok := range line {
			census[tok]++
			total++
		}
	}
	c.census = census
	c.dataLen = total
	return census
}

// Vocab returns the census computed by the last BuildVocab or ApplyCodebook.
// The returned map is shared; callers must not modify it.
func (c *Corpus) Vocab() map[string]int { return c.census }

// DataLen returns the corpus length in tokens under the current segmentation.
func (c *Corpus) DataLen() int { return c.dataLen }

// Stopwords returns the protected token set. The returned map is shared;
// callers must not modify it.
func (c *Corpus) Stopwords() map[string]struct{} { return c.stopwords }

// PairStats counts adjacent token pairs within each line. Pairs with a
// stopword member are excluded, which is what keeps protected tokens out
// of any merge.
func (c *Corpus) PairStats() PairStats {
	stats := make(PairStats)
	for _, line := range c.lines {
		for i := 0; i+1 < len(line); i++ {
			if _, ok := c.stopwords[line[i]]; ok {
				continue
			}
			if _, ok := c.stopwords[line[i+1]]; ok {
				continue
			}
			stats[Pair{Left: line[i], Right: line[i+1]}]++
		}
	}
	return stats
}

// Contexts returns the surrounding tokens of every occurrence of p, in
// corpus order. The committer uses them to discount occurrences that an
// earlier merge in the same epoch would already have claimed.
func (c *Corpus) Contexts(p Pair) []PairContext {
	var out []PairContext
	for _, line := range c.lines {
		for i := 0; i+1 < len(line); i++ {
			if line[i] != p.Left || line[i+1] != p.Right {
				continue
			}
			var ctx PairContext
			if i > 0 {
				ctx.Prev = line[i-1]
			}
			if i+2 < len(line) {
				ctx.Next = line[i+2]
			}
			out = append(out, ctx)
		}
	}
	return out
}

// ApplyCodebook re-encodes every line against cb with the greedy segmenter
// and refreshes the census and corpus length.
func (c *Corpus) ApplyCodebook(cb *Codebook) {
	seg := newSegmenter(cb)
	for i, raw := range c.raw {
		c.lines[i] = seg.segmentLine(raw)
	}
	c.BuildVocab()
}

// Samples returns up to n segmented lines from the front of the corpus,
// tokens space-joined. Verbose training logs them between epochs.
func (c *Corpus) Samples(n int) []string {
	if n > len(c.lines) {
		n = len(c.lines)
	}
	out := make([]string, 0, n)
	for _, line := range c.lines[:n] {
		out = append(out, strings.Join(line, " "))
	}
	return out
}

// WriteSegmented writes the whole corpus under its current segmentation,
// tokens space-joined, one line per input line.
func (c *Corpus) WriteSegmented(w io.Writer) (int64, error) {
	var n int64
	bw := bufio.NewWriter(w)
	for _, line := range c.lines {
		nn, err := fmt.Fprintln(bw, strings.Join(line, " "))
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// LoadStopwords reads one protected token per line from path, skipping
// blank lines.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
