// Package transition implements component C3: the parent-CN to
// offspring-allele-count transition matrix and the de-novo rate. Row
// cn gives P(offspring allele count = g | parent CN = cn) as a
// Poisson(lambda = max(cn/2, 0.1)) pmf, with row 0 overridden to
// [1, 0, 0, ...] since a parent with zero copies cannot transmit any
// allele. Grounded on the distuv.Poisson usage in
// repeats/baysian_likelihood.go's likelihoodPerAllele.
package transition

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Matrix builds the maxCN x maxCN transition matrix.
func Matrix(maxCN int) [][]float64 {
	t := make([][]float64, maxCN)
	for cn := 0; cn < maxCN; cn++ {
		t[cn] = make([]float64, maxCN)
		if cn == 0 {
			t[cn][0] = 1
			continue
		}
		lambda := math.Max(float64(cn)/2, 0.1)
		p := distuv.Poisson{Lambda: lambda}
		for g := 0; g < maxCN; g++ {
			v := p.Prob(float64(g))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			t[cn][g] = v
		}
	}
	return t
}

// DefaultDeNovoRate is the default de-novo rate value. Matrix does not
// use it, and joint.RunPedigree scores offspring allele counts through
// the transition matrix alone, so no rate is applied to offspring
// allele counts that match neither parent.
const DefaultDeNovoRate = 1e-6
