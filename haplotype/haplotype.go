// Package haplotype implements C8: choosing which of a SegmentSet's
// two haplotype segment lists downstream work reads.
package haplotype

import "github.com/dasnellings/cnvcall/segment"

// ScoreFunc averages (or otherwise reduces) a haplotype's segments to
// a single comparable score: for pedigree calls this is the average
// max joint likelihood C4 returned per segment; for no-pedigree calls
// it is the average of the per-sample-likelihood sum per segment.
type ScoreFunc func([]segment.Segment) float64

// Select scores both haplotype lists with the same reduction and
// writes the winner into set.Selected. When only one list is present,
// it is selected without scoring. Calling Select again on an
// already-selected set recomputes and can only confirm the same
// winner, since the scores themselves do not change between calls.
func Select(set *segment.SegmentSet, scoreA, scoreB ScoreFunc) segment.Haplotype {
	hasA := len(set.HaplotypeA) > 0
	hasB := len(set.HaplotypeB) > 0

	switch {
	case hasA && !hasB:
		set.Selected = segment.HaplotypeA
	case hasB && !hasA:
		set.Selected = segment.HaplotypeB
	case hasA && hasB:
		if scoreA(set.HaplotypeA) >= scoreB(set.HaplotypeB) {
			set.Selected = segment.HaplotypeA
		} else {
			set.Selected = segment.HaplotypeB
		}
	default:
		set.Selected = segment.Unselected
	}
	return set.Selected
}

// Average reduces a list of per-segment scores to their mean, 0 for an
// empty list.
func Average(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
