package joint

import (
	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/vertgenlab/gonomics/numbers"
)

// RunIndependent implements C5: the no-pedigree joint inference. Each
// candidate copy-number combination (from genotype.CopyNumberCombinations)
// is scored by summing, over samples, the best depth likelihood any CN
// in the combination offers that sample; the winning combination then
// assigns each sample its own best CN within it, breaking ties toward
// the lower CN the way the teacher's modeReads prefers the smaller
// value on ties.
func RunIndependent(
	samples []sample.Sample, segs []segment.Segment,
	combinations [][]int, params config.Params,
) (Distribution, CallResult) {
	maxCN := params.MaxCN
	n := len(samples)

	liks := make([][]float64, n)
	for i := range samples {
		liks[i] = samples[i].DepthModel.Likelihood(samples[i].CappedCoverage(meanDepth(segs[i])), maxCN)
	}

	result := CallResult{CN: make([]int, n), Likelihoods: make([][]float64, n)}

	if n == 1 {
		best := argmaxLowestTie(liks[0])
		result.CN[0] = best
		result.Likelihoods[0] = liks[0]
		result.MaxLikelihood = liks[0][best]
		dist := NewDistribution([]int{maxCN})
		dist.UpdateMax([]int{best}, liks[0][best])
		return dist, result
	}

	var bestCombo []int
	var bestTotal float64
	haveBest := false
	for _, combo := range combinations {
		var total float64
		for i := 0; i < n; i++ {
			total += bestInCombo(liks[i], combo)
		}
		if !haveBest || total > bestTotal {
			haveBest = true
			bestTotal = total
			bestCombo = combo
		}
	}

	dist := NewDistribution([]int{maxCN})
	for i := 0; i < n; i++ {
		cn := argmaxLowestTieInCombo(liks[i], bestCombo)
		result.CN[i] = cn
		restricted := make([]float64, maxCN)
		for _, c := range bestCombo {
			restricted[c] = liks[i][c]
		}
		result.Likelihoods[i] = restricted
		dist.UpdateMax([]int{cn}, liks[i][cn])
	}
	result.MaxLikelihood = bestTotal
	return dist, result
}

func bestInCombo(v []float64, combo []int) float64 {
	best := v[combo[0]]
	for _, c := range combo[1:] {
		best = numbers.Max(best, v[c])
	}
	return best
}

func argmaxLowestTieInCombo(v []float64, combo []int) int {
	best := combo[0]
	for _, c := range combo[1:] {
		if v[c] > v[best] || (v[c] == v[best] && c < best) {
			best = c
		}
	}
	return best
}

func argmaxLowestTie(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
