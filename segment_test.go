package fmdl

import (
	"reflect"
	"testing"
)

func TestSegmentLongestMatch(t *testing.T) {
	seg := newSegmenter(NewCodebook(map[string]int{"ab": 2, "abc": 1}, nil))
	got := seg.segmentLine("abcab")
	want := []string{"abc", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segmentLine(abcab) = %v, want %v", got, want)
	}
}

func TestSegmentFallsBackToRunes(t *testing.T) {
	seg := newSegmenter(NewCodebook(nil, nil))
	got := seg.segmentLine("xyz")
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segmentLine(xyz) = %v, want bare code points", got)
	}
}

func TestSegmentMixedCoverage(t *testing.T) {
	seg := newSegmenter(NewCodebook(map[string]int{"ab": 1}, nil))
	got := seg.segmentLine("xabx")
	want := []string{"x", "ab", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segmentLine(xabx) = %v, want %v", got, want)
	}
}

func TestSegmentGreedyNeverBacktracks(t *testing.T) {
	// ab wins the first match even though taking bc would have covered
	// more of the input.
	seg := newSegmenter(NewCodebook(map[string]int{"ab": 1, "bc": 1}, nil))
	got := seg.segmentLine("abc")
	want := []string{"ab", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segmentLine(abc) = %v, want %v", got, want)
	}
}

func TestSegmentMultibyte(t *testing.T) {
	seg := newSegmenter(NewCodebook(map[string]int{"日本": 5}, nil))
	got := seg.segmentLine("日本語")
	want := []string{"日本", "語"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("segmentLine(日本語) = %v, want %v", got, want)
	}
}

func TestSegmentCachedLines(t *testing.T) {
	seg := newSegmenter(NewCodebook(map[string]int{"ab": 2}, nil))
	first := seg.segmentLine("abab")
	second := seg.segmentLine("abab")
	if !reflect.DeepEqual(first, []string{"ab", "ab"}) {
		t.Fatalf("segmentLine(abab) = %v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached segmentation differs: %v vs %v", first, second)
	}
}
