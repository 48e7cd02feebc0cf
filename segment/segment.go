// Package segment defines the genomic-interval data model shared by
// every inference component: Segment (per-sample call state) and
// SegmentSet (the two alternative haplotype partitionings C8 chooses
// between). Segments are mutated only by the inference pass for their
// own sample, and a SegmentSet's selected-haplotype field is written
// exactly once, by C8.
package segment

import "github.com/dasnellings/cnvcall/genotype"

// Segment is a half-open genomic interval with per-bin depth, optional
// B-allele SNV observations, and mutable call state for one sample.
type Segment struct {
	Chrom string
	Begin int
	End   int

	BinDepths   []float64
	AlleleCounts []genotype.AlleleCount

	// Call state, written by the inference pass.
	CN     int
	MCC    *int
	QS     float64
	DQS    *float64
	Filter string
}

// Length returns the segment's span in base pairs.
func (s Segment) Length() int { return s.End - s.Begin }

// Haplotype identifies which alternative list in a SegmentSet a
// sample's realized segments come from.
type Haplotype int

const (
	// Unselected means C8 has not yet run for this set.
	Unselected Haplotype = iota
	HaplotypeA
	HaplotypeB
)

// SegmentSet holds the two alternative haplotype partitionings of one
// genomic span, per sample. Either HaplotypeA or HaplotypeB may be
// absent (nil), but not both.
type SegmentSet struct {
	HaplotypeA []Segment
	HaplotypeB []Segment
	Selected   Haplotype
}

// Chosen returns the segment list for the haplotype C8 selected. It
// panics if called before Selected is set, since every downstream
// reader depends on the selection having already happened exactly
// once.
func (s SegmentSet) Chosen() []Segment {
	switch s.Selected {
	case HaplotypeA:
		return s.HaplotypeA
	case HaplotypeB:
		return s.HaplotypeB
	default:
		panic("segment: SegmentSet.Chosen called before haplotype selection")
	}
}

// Valid reports whether the set satisfies the data-model invariant:
// at least one haplotype present.
func (s SegmentSet) Valid() bool {
	return len(s.HaplotypeA) > 0 || len(s.HaplotypeB) > 0
}
