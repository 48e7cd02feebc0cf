package pedigree

import (
	"testing"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/segment"
)

func TestMergeCollapsesWhenAllSamplesShareCN(t *testing.T) {
	params := config.Default()
	params.MinimumCallSize = 0

	segs := map[string][]segment.Segment{
		"c1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 1, QS: 30},
			{Chrom: "chr1", Begin: 1000, End: 2000, CN: 1, QS: 40},
		},
		"p1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 2, QS: 30},
			{Chrom: "chr1", Begin: 1000, End: 2000, CN: 2, QS: 40},
		},
	}

	out := Merge([]string{"c1", "p1"}, segs, params)
	if len(out["c1"]) != 1 {
		t.Fatalf("expected c1 segments merged into 1, got %d", len(out["c1"]))
	}
	if out["c1"][0].End != 2000 {
		t.Errorf("expected merged segment to extend to 2000, got %d", out["c1"][0].End)
	}
	if len(out["p1"]) != 1 {
		t.Fatalf("expected p1 segments merged into 1, got %d", len(out["p1"]))
	}
}

func TestMergeDoesNotCollapseWhenOneSampleDisagrees(t *testing.T) {
	params := config.Default()
	params.MinimumCallSize = 0

	segs := map[string][]segment.Segment{
		"c1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 1, QS: 30},
			{Chrom: "chr1", Begin: 1000, End: 2000, CN: 1, QS: 40},
		},
		"p1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 2, QS: 30},
			{Chrom: "chr1", Begin: 1000, End: 2000, CN: 3, QS: 40},
		},
	}

	out := Merge([]string{"c1", "p1"}, segs, params)
	if len(out["c1"]) != 2 {
		t.Errorf("expected c1 to stay split since p1 disagrees across the boundary, got %d", len(out["c1"]))
	}
}

func TestMergeRespectsMaxGap(t *testing.T) {
	params := config.Default()
	params.MinimumCallSize = 0
	params.MaxMergeGapBp = 100

	segs := map[string][]segment.Segment{
		"c1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 2, QS: 30},
			{Chrom: "chr1", Begin: 200000, End: 201000, CN: 2, QS: 40},
		},
	}

	out := Merge([]string{"c1"}, segs, params)
	if len(out["c1"]) != 2 {
		t.Errorf("expected no merge across a gap exceeding MaxMergeGapBp, got %d", len(out["c1"]))
	}
}

func TestMergeThreeSegmentRunAveragesQSArithmetically(t *testing.T) {
	params := config.Default()
	params.MinimumCallSize = 0

	segs := map[string][]segment.Segment{
		"c1": {
			{Chrom: "chr1", Begin: 0, End: 1000, CN: 1, QS: 10},
			{Chrom: "chr1", Begin: 1000, End: 2000, CN: 1, QS: 20},
			{Chrom: "chr1", Begin: 2000, End: 3000, CN: 1, QS: 30},
		},
	}

	out := Merge([]string{"c1"}, segs, params)
	if len(out["c1"]) != 1 {
		t.Fatalf("expected all three segments merged into 1, got %d", len(out["c1"]))
	}
	if got := out["c1"][0].QS; got != 20 {
		t.Errorf("expected merged QS to be the arithmetic mean 20, got %v", got)
	}
}

func TestMergeDropsShortCalls(t *testing.T) {
	params := config.Default()
	params.MinimumCallSize = 500

	segs := map[string][]segment.Segment{
		"c1": {
			{Chrom: "chr1", Begin: 0, End: 100, CN: 3, QS: 30},
		},
	}

	out := Merge([]string{"c1"}, segs, params)
	if len(out["c1"]) != 0 {
		t.Errorf("expected sub-minimum call to be dropped, got %v", out["c1"])
	}
}
