package haplotype

import (
	"testing"

	"github.com/dasnellings/cnvcall/segment"
)

func TestSelectSingleHaplotypePicksItWithoutScoring(t *testing.T) {
	set := &segment.SegmentSet{HaplotypeA: []segment.Segment{{Chrom: "chr1", Begin: 0, End: 100}}}
	called := false
	score := func([]segment.Segment) float64 { called = true; return 0 }
	got := Select(set, score, score)
	if got != segment.HaplotypeA {
		t.Errorf("expected HaplotypeA selected, got %v", got)
	}
	if called {
		t.Error("expected scoring to be skipped when only one haplotype exists")
	}
}

func TestSelectPicksHigherScoringHaplotype(t *testing.T) {
	a := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 50}}
	b := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 25}, {Chrom: "chr1", Begin: 25, End: 50}}
	set := &segment.SegmentSet{HaplotypeA: a, HaplotypeB: b}

	scoreA := func([]segment.Segment) float64 { return 0.2 }
	scoreB := func([]segment.Segment) float64 { return 0.9 }

	got := Select(set, scoreA, scoreB)
	if got != segment.HaplotypeB {
		t.Errorf("expected HaplotypeB to win on higher score, got %v", got)
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	a := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 50}}
	b := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 50}}
	set := &segment.SegmentSet{HaplotypeA: a, HaplotypeB: b}
	scoreA := func([]segment.Segment) float64 { return 0.5 }
	scoreB := func([]segment.Segment) float64 { return 0.1 }

	first := Select(set, scoreA, scoreB)
	second := Select(set, scoreA, scoreB)
	if first != second {
		t.Errorf("expected idempotent selection, got %v then %v", first, second)
	}
}

func TestAverageEmptyIsZero(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Errorf("expected 0 for empty score list, got %v", got)
	}
}
