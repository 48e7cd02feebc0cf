package pedigree

import (
	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/segment"
	"golang.org/x/exp/slices"
)

// Merge implements the final contiguous-segment merge of C10. Every
// sample's selected-haplotype segment list shares the same (chrom,
// begin, end) boundaries coming out of C9, so the lists are first
// sorted into that common order; adjacent boundary i is then
// collapsed only when every sample's CN at position i equals its CN
// at position i+1 and the gap between them is within MaxMergeGapBp.
// A collapsed segment's QS is the average of its inputs' QS per
// sample. After collapsing, segments shorter than MinimumCallSize are
// dropped. Grounded
// on callCopyNumber.go's sort-then-sweep merge idiom
// (mergeIdenticalEndpoints/anyOverlaps), adapted from same-sample
// endpoint coalescing to cross-sample CN-vector agreement.
func Merge(sampleNames []string, segments map[string][]segment.Segment, params config.Params) map[string][]segment.Segment {
	sorted := make(map[string][]segment.Segment, len(sampleNames))
	for _, name := range sampleNames {
		list := append([]segment.Segment(nil), segments[name]...)
		slices.SortFunc(list, func(a, b segment.Segment) int {
			if a.Chrom != b.Chrom {
				if a.Chrom < b.Chrom {
					return -1
				}
				return 1
			}
			if a.Begin != b.Begin {
				if a.Begin < b.Begin {
					return -1
				}
				return 1
			}
			return 0
		})
		sorted[name] = list
	}

	n := 0
	for _, list := range sorted {
		if len(list) > n {
			n = len(list)
		}
	}
	if n == 0 {
		return sorted
	}

	collapse := make([]bool, n-1)
	for i := 0; i < n-1; i++ {
		collapse[i] = canCollapse(sampleNames, sorted, i, params)
	}

	out := make(map[string][]segment.Segment, len(sampleNames))
	for _, name := range sampleNames {
		out[name] = applyCollapse(sorted[name], collapse, params)
	}
	return out
}

// canCollapse checks, for every sample, that its segment at i and i+1
// share a chromosome and CN and sit within MaxMergeGapBp of each
// other.
func canCollapse(sampleNames []string, sorted map[string][]segment.Segment, i int, params config.Params) bool {
	for _, name := range sampleNames {
		list := sorted[name]
		if i+1 >= len(list) {
			return false
		}
		a, b := list[i], list[i+1]
		gap := b.Begin - a.End
		if a.Chrom != b.Chrom || a.CN != b.CN || gap < 0 || gap > params.MaxMergeGapBp {
			return false
		}
	}
	return true
}

// applyCollapse walks segs in runs of consecutive collapsible
// boundaries, merging each whole run into a single segment whose QS is
// the arithmetic mean across every segment in the run (not a
// recency-weighted running average, which would bias a 3+ segment run
// toward its most recent members).
func applyCollapse(segs []segment.Segment, collapse []bool, params config.Params) []segment.Segment {
	if len(segs) == 0 {
		return segs
	}
	var result []segment.Segment
	for i := 0; i < len(segs); {
		j := i
		qsSum := segs[i].QS
		var dqs *float64
		if segs[i].DQS != nil {
			dqs = segs[i].DQS
		}
		for j < len(collapse) && collapse[j] {
			j++
			qsSum += segs[j].QS
			if segs[j].DQS != nil {
				dqs = segs[j].DQS
			}
		}
		merged := segs[i]
		merged.End = segs[j].End
		merged.QS = qsSum / float64(j-i+1)
		merged.DQS = dqs
		result = append(result, merged)
		i = j + 1
	}
	return filterMinSize(result, params)
}

func filterMinSize(segs []segment.Segment, params config.Params) []segment.Segment {
	out := segs[:0]
	for _, s := range segs {
		if s.Length() >= params.MinimumCallSize {
			out = append(out, s)
		}
	}
	return out
}
