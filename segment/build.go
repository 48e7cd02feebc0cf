package segment

import "github.com/dasnellings/cnvcall/commoncnv"

// NewSegmentSets groups one sample's candidate segments into
// SegmentSets, using the optional common-CNV regions to propose the
// alternative (haplotype B) partitioning described in the external
// interfaces section: a segment whose span is subdivided by a known
// common-CNV boundary gets a second, split haplotype list covering the
// same genomic extent; a segment untouched by any common-CNV region
// becomes a SegmentSet whose haplotype A is a singleton and B is
// absent.
func NewSegmentSets(segments []Segment, common *commoncnv.Regions) []SegmentSet {
	sets := make([]SegmentSet, 0, len(segments))
	for _, seg := range segments {
		set := SegmentSet{HaplotypeA: []Segment{seg}}
		cuts := common.Breakpoints(seg.Chrom, seg.Begin, seg.End)
		if len(cuts) > 0 {
			set.HaplotypeB = splitAt(seg, cuts)
		}
		sets = append(sets, set)
	}
	return sets
}

func splitAt(seg Segment, cuts []int) []Segment {
	bounds := append([]int{seg.Begin}, cuts...)
	bounds = append(bounds, seg.End)
	out := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		if bounds[i] == bounds[i+1] {
			continue
		}
		piece := seg
		piece.Begin = bounds[i]
		piece.End = bounds[i+1]
		out = append(out, piece)
	}
	if len(out) < 2 {
		return nil
	}
	return out
}
