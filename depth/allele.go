package depth

import (
	"math"

	"github.com/dasnellings/cnvcall/genotype"
	"gonum.org/v1/gonum/stat/distuv"
)

// alleleLikelihood scores genotype g = (a, b) against a list of
// per-SNV (A-count, B-count) observations. Each SNV is treated as a
// binomial draw of B-reads out of (A+B) total reads with success
// probability b/(a+b) (0.5 when the genotype is balanced, 0 or 1 for
// hemizygous/nullizygous calls); the segment-level likelihood is the
// product across SNVs. This is the allele-count analogue of
// repeats/baysian_likelihood.go's GenotypeLogLikelihood, evaluated in
// likelihood rather than log-likelihood space to match the rest of
// the depth-likelihood contract.
func alleleLikelihood(counts []genotype.AlleleCount, g genotype.Genotype) float64 {
	if len(counts) == 0 {
		return 0
	}
	total := g.CountsA + g.CountsB
	var p float64
	switch {
	case total == 0:
		p = 0.5 // no allele evidence to favor either haplotype
	default:
		p = float64(g.CountsB) / float64(total)
	}

	lik := 1.0
	for _, c := range counts {
		n := c.A + c.B
		if n == 0 {
			continue
		}
		b := distuv.Binomial{N: float64(n), P: clampProb(p)}
		lik *= b.Prob(float64(c.B))
	}
	return clampFinite(lik)
}

func clampProb(p float64) float64 {
	switch {
	case p < 1e-6:
		return 1e-6
	case p > 1-1e-6:
		return 1 - 1e-6
	default:
		return p
	}
}

// bestOf picks the candidate genotype with the highest allele
// likelihood and converts its relative support into a Phred-like
// score, matching quality.PerSample's -10*log10((sum-best)/sum) form
// so C2's self-reported confidence and C7's QS agree on scale.
func bestOf(counts []genotype.AlleleCount, candidates []genotype.Genotype, score func([]genotype.AlleleCount, genotype.Genotype) float64) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}
	liks := make([]float64, len(candidates))
	var sum float64
	bestIdx := 0
	for i, g := range candidates {
		liks[i] = score(counts, g)
		sum += liks[i]
		if liks[i] > liks[bestIdx] {
			bestIdx = i
		}
	}
	if sum <= 0 {
		return bestIdx, 0
	}
	residual := (sum - liks[bestIdx]) / sum
	if residual <= 0 {
		return bestIdx, 60
	}
	phred := -10 * math.Log10(residual)
	if phred < 0 {
		phred = 0
	}
	if phred > 60 {
		phred = 60
	}
	return bestIdx, phred
}
