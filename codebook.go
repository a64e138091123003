package fmdl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codebook holds the learned subword vocabulary: a count per token plus a
// protected set that survives any count arithmetic. A Codebook is produced
// by Train and can be serialized with WriteTo and restored with ReadFrom.
type Codebook struct {
	counts    map[string]int      // token -> occurrence count, always >= 1
	protected map[string]struct{} // tokens exempt from removal (sentinels, stopwords)
	maxLen    int                 // upper bound on token length in runes, for greedy matching
}

// ErrBadCodebook indicates serialized codebook data that cannot be parsed.
var ErrBadCodebook = errors.New("fmdl: malformed codebook")

// NewCodebook seeds a codebook from a token census. Every protected token is
// guaranteed an entry with count at least 1 even if the census lacks it, and
// census entries below 1 are dropped.
func NewCodebook(census map[string]int, protected map[string]struct{}) *Codebook {
	cb := &Codebook{
		counts:    make(map[string]int, len(census)),
		protected: make(map[string]struct{}, len(protected)),
	}
	for tok, n := range census {
		if n < 1 {
			continue
		}
		cb.counts[tok] = n
		if l := runeLen(tok); l > cb.maxLen {
			cb.maxLen = l
		}
	}
	for tok := range protected {
		cb.protected[tok] = struct{}{}
		if cb.counts[tok] < 1 {
			cb.counts[tok] = 1
		}
		if l := runeLen(tok); l > cb.maxLen {
			cb.maxLen = l
		}
	}
	return cb
}

// bump is the single mutation point. It adjusts a token's count by delta and
// enforces the invariant that no entry drops below 1: an ordinary token with
// a resulting count under 1 is removed, a protected token is clamped at 1.
func (cb *Codebook) bump(tok string, delta int) {
	n := cb.counts[tok] + delta
	if n < 1 {
		if _, ok := cb.protected[tok]; ok {
			cb.counts[tok] = 1
			return
		}
		delete(cb.counts, tok)
		return
	}
	cb.counts[tok] = n
	if l := runeLen(tok); l > cb.maxLen {
		cb.maxLen = l
	}
}

// Count returns the token's occurrence count, 0 if absent.
func (cb *Codebook) Count(tok string) int { return cb.counts[tok] }

// Contains reports whether the token is in the codebook.
func (cb *Codebook) Contains(tok string) bool {
	_, ok := cb.counts[tok]
	return ok
}

// Len returns the number of tokens in the codebook.
func (cb *Codebook) Len() int { return len(cb.counts) }

// Protected reports whether the token is exempt from removal.
func (cb *Codebook) Protected(tok string) bool {
	_, ok := cb.protected[tok]
	return ok
}

// MaxTokenLen returns an upper bound on token length in runes. The greedy
// segmenter uses it to size its match window.
func (cb *Codebook) MaxTokenLen() int { return cb.maxLen }

// Tokens returns all tokens in lexicographic order.
func (cb *Codebook) Tokens() []string {
	toks := make([]string, 0, len(cb.counts))
	for tok := range cb.counts {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	return toks
}

type tokenCount struct {
	Token string
	Count int
}

// entries returns the codebook ordered by descending count, ties broken by
// token, so serialized output is deterministic.
func (cb *Codebook) entries() []tokenCount {
	out := make([]tokenCount, 0, len(cb.counts))
	for tok, n := range cb.counts {
		out = append(out, tokenCount{Token: tok, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// WriteTo serializes the codebook to w in its text format: one token per
// line as "token<TAB>count", most frequent first.
func (cb *Codebook) WriteTo(w io.Writer) (int64, error) {
	var n int64
	bw := bufio.NewWriter(w)
	for _, e := range cb.entries() {
		nn, err := fmt.Fprintf(bw, "%s\t%d\n", e.Token, e.Count)
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadFrom replaces the codebook with one parsed from r's text format.
// Tokens parsed this way carry no protected set.
func (cb *Codebook) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	n := int64(len(data))
	if err != nil {
		return n, err
	}
	counts := make(map[string]int)
	maxLen := 0
	for lineNo, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		tok, countField, ok := strings.Cut(line, "\t")
		if !ok || tok == "" {
			return n, fmt.Errorf("%w: line %d: %q", ErrBadCodebook, lineNo+1, line)
		}
		count, err := strconv.Atoi(countField)
		if err != nil || count < 1 {
			return n, fmt.Errorf("%w: line %d: bad count %q", ErrBadCodebook, lineNo+1, countField)
		}
		counts[tok] = count
		if l := runeLen(tok); l > maxLen {
			maxLen = l
		}
	}
	cb.counts = counts
	cb.protected = map[string]struct{}{}
	cb.maxLen = maxLen
	return n, nil
}

// MarshalText implements encoding.TextMarshaler.
func (cb *Codebook) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := cb.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cb *Codebook) UnmarshalText(data []byte) error {
	_, err := cb.ReadFrom(bytes.NewReader(data))
	return err
}

// Save writes the codebook to path in its text format.
func (cb *Codebook) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := cb.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadCodebook reads a text-format codebook from path.
func LoadCodebook(path string) (*Codebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cb := &Codebook{}
	if _, err := cb.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("fmdl: load codebook %s: %w", path, err)
	}
	return cb, nil
}

// yamlCodebook is the YAML document shape: a flat token list, most frequent
// first, with protected tokens flagged so a reload can restore the set.
type yamlCodebook struct {
	Tokens []yamlToken `yaml:"tokens"`
}

type yamlToken struct {
	Token     string `yaml:"token"`
	Count     int    `yaml:"count"`
	Protected bool   `yaml:"protected,omitempty"`
}

// WriteYAML serializes the codebook to w as YAML. Unlike the text format,
// YAML round-trips the protected set.
func (cb *Codebook) WriteYAML(w io.Writer) error {
	doc := yamlCodebook{Tokens: make([]yamlToken, 0, len(cb.counts))}
	for _, e := range cb.entries() {
		doc.Tokens = append(doc.Tokens, yamlToken{
			Token:     e.Token,
			Count:     e.Count,
			Protected: cb.Protected(e.Token),
		})
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadYAML replaces the codebook with one parsed from YAML.
func (cb *Codebook) ReadYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var doc yamlCodebook
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBadCodebook, err)
	}
	counts := make(map[string]int, len(doc.Tokens))
	protected := make(map[string]struct{})
	maxLen := 0
	for i, t := range doc.Tokens {
		if t.Token == "" || t.Count < 1 {
			return fmt.Errorf("%w: token %d: %q count %d", ErrBadCodebook, i, t.Token, t.Count)
		}
		counts[t.Token] = t.Count
		if t.Protected {
			protected[t.Token] = struct{}{}
		}
		if l := runeLen(t.Token); l > maxLen {
			maxLen = l
		}
	}
	cb.counts = counts
	cb.protected = protected
	cb.maxLen = maxLen
	return nil
}

// SaveYAML writes the codebook to path as YAML.
func (cb *Codebook) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cb.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadCodebookYAML reads a YAML-format codebook from path.
func LoadCodebookYAML(path string) (*Codebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cb := &Codebook{}
	if err := cb.ReadYAML(f); err != nil {
		return nil, fmt.Errorf("fmdl: load codebook %s: %w", path, err)
	}
	return cb, nil
}
