// Package config collects the tunable parameters shared across every
// inference component. A single Params value is built once from flags
// in cmd/cnvcall and threaded down by value or pointer; there is no
// global mutable configuration state.
package config

import "github.com/dasnellings/cnvcall/cnverr"

// Params holds every tunable named in the specification.
type Params struct {
	// MaxCN is the exclusive upper bound on total copy number; valid
	// calls fall in [0, MaxCN-1].
	MaxCN int

	// MaxCoreNumber caps the number of worker goroutines used by the
	// parallel driver regardless of runtime.NumCPU.
	MaxCoreNumber int

	// MaxNumOffspringGenotypes caps the offspring-genotype Cartesian
	// product before uniform subsampling kicks in.
	MaxNumOffspringGenotypes int

	// OffspringSubsampleSeed seeds the RNG used to subsample the
	// offspring-genotype product deterministically.
	OffspringSubsampleSeed int64

	// MaxAlleles bounds the number of distinct CN values considered in
	// a no-pedigree copy-number combination.
	MaxAlleles int

	DefaultReadCountsThreshold        int
	DefaultAlleleDensityThreshold     float64
	DefaultPerSegmentAlleleMaxCounts  int
	MedianCoverageThreshold           float64
	MaxQScore                        float64
	QualityFilterThreshold           float64
	DeNovoQualityFilterThreshold     float64
	DeNovoRate                       float64
	MinimumCallSize                  int
	MaxMergeGapBp                    int
	NumberOfTrimmedBins              int

	// Debug enables ASCII rendering of each sample's per-CN likelihood
	// curve to stderr as each segment is scored.
	Debug bool
}

// Default returns the parameter set documented in the specification.
func Default() Params {
	return Params{
		MaxCN:                            5,
		MaxCoreNumber:                    8,
		MaxNumOffspringGenotypes:         500,
		OffspringSubsampleSeed:           1546311,
		MaxAlleles:                       3,
		DefaultReadCountsThreshold:       10,
		DefaultAlleleDensityThreshold:    0.1,
		DefaultPerSegmentAlleleMaxCounts: 200,
		MedianCoverageThreshold:          4,
		MaxQScore:                        60,
		QualityFilterThreshold:           7,
		DeNovoQualityFilterThreshold:     20,
		DeNovoRate:                       1e-6,
		MinimumCallSize:                  1000,
		MaxMergeGapBp:                    10000,
		NumberOfTrimmedBins:              2,
	}
}

// Validate checks cross-field constraints the way mcsCallVariants
// checks -s*2 against -a before starting a run, returning a
// cnverr.Configuration error so the process boundary can distinguish
// it from a data-level failure.
func (p Params) Validate() error {
	if p.MaxCN < 2 {
		return cnverr.Configf("params", "MaxCN must be >= 2")
	}
	if p.QualityFilterThreshold >= p.MaxQScore {
		return cnverr.Configf("params", "QualityFilterThreshold must be less than MaxQScore")
	}
	if p.DeNovoQualityFilterThreshold >= p.MaxQScore {
		return cnverr.Configf("params", "DeNovoQualityFilterThreshold must be less than MaxQScore")
	}
	if p.MaxNumOffspringGenotypes <= 0 {
		return cnverr.Configf("params", "MaxNumOffspringGenotypes must be > 0")
	}
	if p.MaxCoreNumber <= 0 {
		return cnverr.Configf("params", "MaxCoreNumber must be > 0")
	}
	return nil
}
