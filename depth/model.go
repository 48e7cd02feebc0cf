// Package depth implements component C2, the depth-likelihood model:
// an injected collaborator with a fixed contract (spec section 4.2).
// Given a sample's observed coverage, it returns an unnormalized
// likelihood vector over copy-number states; given a segment's allele
// counts and a candidate genotype, it returns a scalar allele
// likelihood. The Poisson read-count model is grounded on
// repeats/baysian_likelihood.go's ReadLikelihood/GenotypeLogLikelihood;
// the optional per-bin refinement is grounded on the gmm package,
// completed in this module (see gmm/mixture.go) from its surviving
// test file.
package depth

import (
	"math"

	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/gmm"
	"gonum.org/v1/gonum/stat/distuv"
)

// Model is the injected depth-likelihood contract (C2).
type Model interface {
	// Likelihood returns L[0..maxCN-1], the unnormalized likelihood of
	// each candidate total copy number given observed scalar coverage.
	Likelihood(coverage float64, maxCN int) []float64

	// AlleleLikelihood scores a candidate (a,b) genotype against a
	// segment's observed B-allele SNV counts.
	AlleleLikelihood(counts []genotype.AlleleCount, g genotype.Genotype) float64

	// BestOf scores a list of candidate genotypes against observed
	// allele counts and reports the best index and a Phred-like score
	// for it (-10*log10(1 - best/sum), clipped to [0, 60]).
	BestOf(counts []genotype.AlleleCount, candidates []genotype.Genotype) (bestIdx int, phred float64)
}

// PoissonModel is the baseline depth-likelihood model: copy number cn
// is expected to produce coverage (cn/2)*meanCoverage, so observed
// coverage is scored as a Poisson count around that rate. This mirrors
// the Poisson stutter-count model in repeats/baysian_likelihood.go,
// applied to read depth instead of repeat-unit counts.
type PoissonModel struct {
	MeanCoverage float64
}

// NewPoissonModel builds the baseline scalar-coverage model for a
// sample with the given mean coverage.
func NewPoissonModel(meanCoverage float64) PoissonModel {
	return PoissonModel{MeanCoverage: meanCoverage}
}

func (m PoissonModel) Likelihood(coverage float64, maxCN int) []float64 {
	return poissonLikelihoodVector(coverage, m.MeanCoverage, maxCN)
}

func poissonLikelihoodVector(coverage, meanCoverage float64, maxCN int) []float64 {
	out := make([]float64, maxCN)
	for cn := 0; cn < maxCN; cn++ {
		lambda := math.Max(float64(cn)/2*meanCoverage, 0.1)
		p := distuv.Poisson{Lambda: lambda}
		v := p.Prob(math.Round(coverage))
		out[cn] = clampFinite(v)
	}
	return out
}

func (m PoissonModel) AlleleLikelihood(counts []genotype.AlleleCount, g genotype.Genotype) float64 {
	return alleleLikelihood(counts, g)
}

func (m PoissonModel) BestOf(counts []genotype.AlleleCount, candidates []genotype.Genotype) (int, float64) {
	return bestOf(counts, candidates, m.AlleleLikelihood)
}

// MixtureModelBacked refines the baseline with a two-component Gaussian
// mixture fit over the per-bin depths given to NewFromBins (cmd/cnvcall
// passes all of a sample's bins) when enough bins are present;
// NewFromBins returns a plain PoissonModel when they are not, or when
// the mixture fit does not converge.
type MixtureModelBacked struct {
	PoissonModel
	mm           *gmm.MixtureModel
	minBinsToFit int
}

// NewFromBins builds a depth model from a list of per-bin depths,
// fitting a two-component mixture over them when there are enough of
// them, and otherwise deferring entirely to the Poisson baseline.
func NewFromBins(bins []float64, meanCoverage float64, minBinsToFit int) Model {
	base := NewPoissonModel(meanCoverage)
	if len(bins) < minBinsToFit {
		return base
	}
	mm := new(gmm.MixtureModel)
	converged, _ := gmm.RunMixtureModel(bins, 2, 50, 20, mm)
	if !converged {
		return base
	}
	return MixtureModelBacked{PoissonModel: base, mm: mm, minBinsToFit: minBinsToFit}
}

func (m MixtureModelBacked) Likelihood(coverage float64, maxCN int) []float64 {
	out := make([]float64, maxCN)
	for cn := 0; cn < maxCN; cn++ {
		expected := float64(cn) / 2 * m.MeanCoverage
		best := 0.0
		for c := range m.mm.Means {
			diff := expected - m.mm.Means[c]
			if diff < 0 {
				diff = -diff
			}
			// score this CN by the mixture component whose fitted
			// mean it is closest to, weighted by that component's
			// density at the observed coverage
			stdev := m.mm.Stdev[c]
			if stdev <= 0 {
				stdev = 1
			}
			n := distuv.Normal{Mu: m.mm.Means[c], Sigma: stdev}
			v := m.mm.Weights[c] * n.Prob(coverage)
			if diff < m.mm.Stdev[c]*2 && v > best {
				best = v
			}
		}
		if best == 0 {
			out[cn] = poissonLikelihoodVector(coverage, m.MeanCoverage, maxCN)[cn]
			continue
		}
		out[cn] = clampFinite(best)
	}
	return out
}

func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}
