// Package quality implements C7: per-sample Phred-like quality scoring
// and the conditional de-novo quality score.
package quality

import (
	"math"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/joint"
	"github.com/vertgenlab/gonomics/numbers"
)

// PerSample scores a 1-D likelihood vector v at the chosen CN c:
// QS = -10*log10((sum(v) - v[c]) / sum(v)), clipped to [0, maxQ].
func PerSample(v []float64, chosenCN int, maxQ float64) float64 {
	if chosenCN >= len(v) {
		chosenCN = len(v) - 1
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum <= 0 {
		return 0
	}
	ratio := (sum - v[chosenCN]) / sum
	return clip(phred(ratio), maxQ)
}

// Marginal computes the per-sample QS directly from a joint
// Distribution by marginalizing out every axis but axis, then applying
// the same formula as PerSample.
func Marginal(dist joint.Distribution, axis, chosenCN int, maxQ float64) float64 {
	v := dist.Marginal(axis)
	return PerSample(v, chosenCN, maxQ)
}

// DeNovo implements the conditional de-novo quality score. dist is the
// joint pedigree Distribution; probandAxis/parent1Axis/parent2Axis/
// siblingAxes locate the relevant samples within it; chosenCN is the
// proband's called CN. commonCNV reports whether the proband shares
// the called CN with either parent at that parent's own called CN --
// a "shared allele set at same ploidy" in spec terms, not BED overlap.
// ok is false whenever a prerequisite fails (CN equals expected
// ploidy, a parent or sibling is non-reference and shares that allele
// set, or any of the three QSs falls at or below
// QualityFilterThreshold), in which case dqs is meaningless.
func DeNovo(
	dist joint.Distribution,
	probandAxis, parent1Axis, parent2Axis int, siblingAxes []int,
	expectedPloidy, chosenCN int,
	commonCNV bool,
	params config.Params,
) (dqs float64, ok bool) {
	if chosenCN == expectedPloidy {
		return 0, false
	}

	p1Marg := dist.Marginal(parent1Axis)
	p2Marg := dist.Marginal(parent2Axis)
	parentsAtPloidy := argmaxCN(p1Marg) == 2 && argmaxCN(p2Marg) == 2
	if !parentsAtPloidy && commonCNV {
		return 0, false
	}

	for _, sib := range siblingAxes {
		sibCN := argmaxCN(dist.Marginal(sib))
		if sibCN != expectedPloidy && commonCNV {
			return 0, false
		}
	}

	probandQS := PerSample(dist.Marginal(probandAxis), chosenCN, params.MaxQScore)
	p1QS := PerSample(p1Marg, 2, params.MaxQScore)
	p2QS := PerSample(p2Marg, 2, params.MaxQScore)
	threshold := params.QualityFilterThreshold
	if probandQS <= threshold || p1QS <= threshold || p2QS <= threshold {
		return 0, false
	}

	shape := dist.Shape()
	numerator := sumWhere(dist, shape, func(idx []int) bool {
		if idx[probandAxis] != chosenCN || idx[parent1Axis] != 2 || idx[parent2Axis] != 2 {
			return false
		}
		for _, sib := range siblingAxes {
			if idx[sib] != 2 {
				return false
			}
		}
		return true
	})
	denominator := sumWhere(dist, shape, func(idx []int) bool {
		return idx[probandAxis] == chosenCN
	})

	var ratio float64
	if denominator > 0 {
		ratio = numerator / denominator
	}

	probandMarg := dist.Marginal(probandAxis)
	altDenom := probandMarg[chosenCN] + probandMarg[2]
	var probandMargAlt float64
	if altDenom > 0 {
		probandMargAlt = probandMarg[chosenCN] / altDenom
	}

	deNovo := (1 - ratio) * (1 - probandMargAlt)
	if deNovo < 1e-6 {
		deNovo = 1e-6
	}
	return clip(phred(deNovo), params.MaxQScore), true
}

func argmaxCN(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

func sumWhere(dist joint.Distribution, shape []int, match func(idx []int) bool) float64 {
	idx := make([]int, len(shape))
	var total float64
	var walk func(dim int)
	walk = func(dim int) {
		if dim == len(shape) {
			if match(idx) {
				total += dist.At(idx)
			}
			return
		}
		for v := 0; v < shape[dim]; v++ {
			idx[dim] = v
			walk(dim + 1)
		}
	}
	walk(0)
	return total
}

func phred(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(1)
	}
	return -10 * math.Log10(ratio)
}

func clip(q, maxQ float64) float64 {
	if math.IsNaN(q) || q < 0 {
		return 0
	}
	return numbers.Min(q, maxQ)
}
