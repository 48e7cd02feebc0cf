// Package sample holds the immutable per-sample identity and derived
// metadata used throughout the caller: kinship role, expected ploidy
// by interval, mean coverage, and the opaque depth-likelihood model
// (C2) each sample carries. Segment call state lives on segment.Segment,
// not here, per the data-model ownership note: samples are read-only
// during a pass; only the per-segment call state is mutated.
package sample

import (
	"github.com/dasnellings/cnvcall/depth"
	"github.com/dasnellings/cnvcall/ploidybed"
	"github.com/vertgenlab/gonomics/numbers"
)

// Kin is the pedigree role of a sample.
type Kin int

const (
	Other Kin = iota
	Parent
	Proband
)

func (k Kin) String() string {
	switch k {
	case Parent:
		return "Parent"
	case Proband:
		return "Proband"
	default:
		return "Other"
	}
}

// Sample is the immutable identity and metadata for one pedigree
// member or independent sample.
type Sample struct {
	Name         string
	Kin          Kin
	Ploidy       *ploidybed.Tree
	MeanCoverage float64
	DepthModel   depth.Model
}

// ExpectedPloidy returns the expected ploidy over [start, end) on
// chrom, defaulting to 2 outside any ploidy-BED override.
func (s Sample) ExpectedPloidy(chrom string, start, end int) int {
	return s.Ploidy.Lookup(chrom, start, end)
}

// CappedCoverage clamps raw observed coverage at 3x the sample's mean
// coverage, per the coverage cap applied before depth-likelihood
// evaluation (spec section 4.4).
func (s Sample) CappedCoverage(raw float64) float64 {
	return numbers.Min(raw, 3*s.MeanCoverage)
}
