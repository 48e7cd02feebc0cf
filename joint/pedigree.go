package joint

import (
	"math"

	"github.com/dasnellings/cnvcall/cnverr"
	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/vertgenlab/gonomics/numbers"
)

// RunPedigree implements C4: for one genomic segment, finds the
// maximum-joint-probability (CN_p1, CN_p2, {CN_child}) and records the
// full joint distribution over every enumerated index. Coverage for
// every sample is capped at 3x that sample's mean coverage before
// scoring (spec section 4.4). NaN/Inf likelihoods are coerced to 0
// inline; they never propagate into the distribution or the argmax.
func RunPedigree(
	p1, p2 sample.Sample, p1Seg, p2Seg segment.Segment,
	children []sample.Sample, childSegs []segment.Segment,
	T [][]float64, offspring []genotype.OffspringSet,
	params config.Params,
) (Distribution, CallResult) {
	if len(children) != len(childSegs) {
		panic(cnverr.Configf("pedigree", "child sample count (%d) does not match child segment count (%d)", len(children), len(childSegs)))
	}

	maxCN := params.MaxCN
	k := len(children)

	shape := make([]int, 2+k)
	for i := range shape {
		shape[i] = maxCN
	}
	dist := NewDistribution(shape)

	lp1 := p1.DepthModel.Likelihood(p1.CappedCoverage(meanDepth(p1Seg)), maxCN)
	lp2 := p2.DepthModel.Likelihood(p2.CappedCoverage(meanDepth(p2Seg)), maxCN)

	lchild := make([][]float64, k)
	for i := range children {
		lchild[i] = children[i].DepthModel.Likelihood(children[i].CappedCoverage(meanDepth(childSegs[i])), maxCN)
	}

	result := CallResult{CN: make([]int, 2+k)}
	for i := range result.CN {
		result.CN[i] = 2 // reset baseline per spec 4.4
	}

	idx := make([]int, 2+k)
	var globalMax float64
	haveMax := false

	for cn1 := 0; cn1 < maxCN; cn1++ {
		for cn2 := 0; cn2 < maxCN; cn2++ {
			for _, o := range offspring {
				if len(o.Genotypes) != k {
					continue
				}
				L := lp1[cn1] * lp2[cn2]
				idx[0], idx[1] = cn1, cn2
				for i, gi := range o.Genotypes {
					childTotal := numbers.Min(gi.Total(), maxCN-1)
					L *= T[cn1][gi.CountsA] * T[cn2][gi.CountsB] * lchild[i][childTotal]
					idx[2+i] = childTotal
				}
				L = clampFinite(L)
				dist.UpdateMax(idx, L)

				if !haveMax || L > globalMax {
					haveMax = true
					globalMax = L
					result.CN[0] = cn1
					result.CN[1] = cn2
					for i := 0; i < k; i++ {
						result.CN[2+i] = idx[2+i]
					}
				}
			}
		}
	}
	result.MaxLikelihood = globalMax
	return dist, result
}

func meanDepth(seg segment.Segment) float64 {
	if len(seg.BinDepths) == 0 {
		return 0
	}
	var sum float64
	for _, d := range seg.BinDepths {
		sum += d
	}
	return sum / float64(len(seg.BinDepths))
}

func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
