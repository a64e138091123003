package fmdl

import (
	lru "github.com/hashicorp/golang-lru"
)

// segCacheSize bounds the re-encode cache. Natural-language corpora repeat
// lines often enough that caching whole-line segmentations pays for itself.
const segCacheSize = 8192

// segmenter greedily re-encodes raw lines against a codebook. Matching is
// longest-first over code points, bounded by the codebook's longest token.
// A code point with no codebook entry is emitted as a bare token, so the
// segmentation always covers the input.
type segmenter struct {
	book  *Codebook
	cache *lru.Cache
}

func newSegmenter(book *Codebook) *segmenter {
	cache, _ := lru.New(segCacheSize)
	return &segmenter{book: book, cache: cache}
}

// segmentLine returns the token sequence for one raw line. Cached slices
// are shared between identical lines and must not be mutated.
func (s *segmenter) segmentLine(raw string) []string {
	if cached, ok := s.cache.Get(raw); ok {
		return cached.([]string)
	}
	toks := s.segment([]rune(raw))
	s.cache.Add(raw, toks)
	return toks
}

func (s *segmenter) segment(runes []rune) []string {
	maxLen := s.book.MaxTokenLen()
	toks := make([]string, 0, len(runes))
	for i := 0; i < len(runes); {
		limit := min(maxLen, len(runes)-i)
		matched := 1
		tok := string(runes[i])
		for l := limit; l > 1; l-- {
			cand := string(runes[i : i+l])
			if s.book.Contains(cand) {
				tok, matched = cand, l
				break
			}
		}
		toks = append(toks, tok)
		i += matched
	}
	return toks
}
