package main

import (
	"fmt"
	"os"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/depth"
	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/haplotype"
	"github.com/dasnellings/cnvcall/joint"
	"github.com/dasnellings/cnvcall/mcc"
	"github.com/dasnellings/cnvcall/quality"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
)

// scoredSegment bundles one sub-segment's joint-inference output with
// the per-sample segments it was computed from, so haplotype scoring
// and final write-back can share a single pass over C4/C5.
type scoredSegment struct {
	perSample []segment.Segment
	dist      joint.Distribution
	result    joint.CallResult
}

// processSet runs C8 (haplotype scoring/selection) followed by C4/C5,
// C6, and C7 for one canonical segment-set index, writing each
// sample's finalized segment(s) into perIndex[idx]. perIndex is a
// slice with one slot per segment-set index; workers own disjoint
// idx ranges, so writing only to perIndex[idx] needs no
// synchronization even though every worker shares the same backing
// slice.
func processSet(
	idx int, samples []sample.Sample, byName map[string]sample.Sample,
	perSampleSets map[string][]segment.SegmentSet,
	perIndex [][]sampleSegment,
	pedigreeMode bool, T [][]float64, offspring []genotype.OffspringSet, combos [][]int,
	params config.Params,
) {
	first := perSampleSets[samples[0].Name][idx]
	canonicalSet := &segment.SegmentSet{HaplotypeA: first.HaplotypeA, HaplotypeB: first.HaplotypeB}

	scoreHaplotype := func(n int, get func(sampleName string) []segment.Segment) []scoredSegment {
		out := make([]scoredSegment, n)
		for j := 0; j < n; j++ {
			perSample := make([]segment.Segment, len(samples))
			for i, s := range samples {
				perSample[i] = get(s.Name)[j]
			}
			dist, res := runInference(samples, perSample, pedigreeMode, T, offspring, combos, params)
			out[j] = scoredSegment{perSample: perSample, dist: dist, result: res}
		}
		return out
	}

	var scoredA, scoredB []scoredSegment
	if len(first.HaplotypeA) > 0 {
		scoredA = scoreHaplotype(len(first.HaplotypeA), func(name string) []segment.Segment {
			return perSampleSets[name][idx].HaplotypeA
		})
	}
	if len(first.HaplotypeB) > 0 {
		scoredB = scoreHaplotype(len(first.HaplotypeB), func(name string) []segment.Segment {
			return perSampleSets[name][idx].HaplotypeB
		})
	}

	avgScore := func(scored []scoredSegment) float64 {
		scores := make([]float64, len(scored))
		for i, s := range scored {
			scores[i] = s.result.MaxLikelihood
		}
		return haplotype.Average(scores)
	}
	haplotype.Select(canonicalSet,
		func([]segment.Segment) float64 { return avgScore(scoredA) },
		func([]segment.Segment) float64 { return avgScore(scoredB) },
	)

	chosen := scoredA
	if canonicalSet.Selected == segment.HaplotypeB {
		chosen = scoredB
	}

	var out []sampleSegment
	for _, sc := range chosen {
		out = append(out, finalizeSegment(samples, sc, pedigreeMode, params)...)
	}
	perIndex[idx] = out
}

// sampleSegment pairs a finalized Segment with the sample name it
// belongs to, since one canonical segment-set index can expand into
// more than one resulting Segment per sample (a split haplotype B).
type sampleSegment struct {
	sampleName string
	seg        segment.Segment
}

// pedigreeAxis maps an index into samples -- which is in the spec's
// probands-first, parents-last working-list order -- to the axis
// joint.RunPedigree's Distribution and CallResult.CN use internally
// (axis 0 = parent1, axis 1 = parent2, axis 2+j = the jth child/
// proband, in the order they were passed). The two orders agree on
// nothing but length, so every lookup into a pedigree-mode
// joint.Distribution or a pre-externalization CallResult must go
// through this.
func pedigreeAxis(n, external int) int {
	switch external {
	case n - 2:
		return 0
	case n - 1:
		return 1
	default:
		return 2 + external
	}
}

func runInference(
	samples []sample.Sample, perSample []segment.Segment,
	pedigreeMode bool, T [][]float64, offspring []genotype.OffspringSet, combos [][]int,
	params config.Params,
) (joint.Distribution, joint.CallResult) {
	if pedigreeMode {
		n := len(samples)
		p1, p2 := n-2, n-1
		dist, res := joint.RunPedigree(samples[p1], samples[p2], perSample[p1], perSample[p2], samples[:n-2], perSample[:n-2], T, offspring, params)
		return dist, externalizeCN(res, n)
	}
	return joint.RunIndependent(samples, perSample, combos, params)
}

// externalizeCN rewrites a pedigree CallResult's CN slice from
// RunPedigree's internal [parent1, parent2, child0, ...] order into
// the external samples order so every other call site can index
// CallResult.CN and samples with the same position.
func externalizeCN(res joint.CallResult, n int) joint.CallResult {
	cn := make([]int, n)
	cn[n-2] = res.CN[0]
	cn[n-1] = res.CN[1]
	for i := 0; i < n-2; i++ {
		cn[i] = res.CN[2+i]
	}
	res.CN = cn
	return res
}

func finalizeSegment(
	samples []sample.Sample, sc scoredSegment,
	pedigreeMode bool, params config.Params,
) []sampleSegment {
	n := len(samples)
	hetCounts := make([]int, n)
	for i := range samples {
		hetCounts[i] = len(sc.perSample[i].AlleleCounts)
	}
	gateOpen := mcc.GateOnAlleleEvidence(hetCounts, params)

	// dqsSet[i] is true exactly when the proband at external index i
	// gets a de-novo quality score this segment -- i.e. its call is NOT
	// inherited. Computed up front so assignMCC's pedigree-consistency
	// gate (spec.md section 4.6: a child is only included in the MCC
	// argmax when its call was inherited) can use it, instead of
	// assignMCC hardcoding every child as inherited.
	dqsVals := make([]float64, n)
	dqsSet := make([]bool, n)
	if pedigreeMode {
		for i, s := range samples {
			if s.Kin != sample.Proband {
				continue
			}
			seg := sc.perSample[i]
			expected := s.ExpectedPloidy(seg.Chrom, seg.Begin, seg.End)
			chosenCN := sc.result.CN[i]
			commonCNV := sc.result.CN[n-2] == chosenCN || sc.result.CN[n-1] == chosenCN
			siblingAxes := make([]int, 0, len(otherProbandAxes(samples, i)))
			for _, sib := range otherProbandAxes(samples, i) {
				siblingAxes = append(siblingAxes, pedigreeAxis(n, sib))
			}
			dqs, ok := quality.DeNovo(sc.dist, pedigreeAxis(n, i), 0, 1, siblingAxes, expected, chosenCN, commonCNV, params)
			if ok {
				dqsVals[i] = dqs
				dqsSet[i] = true
			}
		}
	}

	var mccVals []int
	if gateOpen {
		mccVals = assignMCC(samples, sc, pedigreeMode, params, dqsSet)
	}

	out := make([]sampleSegment, 0, n)
	for i, s := range samples {
		final := sc.perSample[i]
		final.CN = sc.result.CN[i]

		var qs float64
		if pedigreeMode {
			qs = quality.Marginal(sc.dist, pedigreeAxis(n, i), final.CN, params.MaxQScore)
		} else {
			qs = quality.PerSample(sc.result.Likelihoods[i], final.CN, params.MaxQScore)
		}
		final.QS = qs

		if params.Debug && i < len(sc.result.Likelihoods) {
			label := fmt.Sprintf("%s %s:%d-%d", s.Name, final.Chrom, final.Begin, final.End)
			fmt.Fprint(os.Stderr, depth.DebugPlot(label, sc.result.Likelihoods[i]))
		}

		if mccVals != nil {
			v := mccVals[i]
			final.MCC = &v
		}

		if pedigreeMode && s.Kin == sample.Proband && dqsSet[i] {
			v := dqsVals[i]
			final.DQS = &v
		}

		if final.End > 0 {
			out = append(out, sampleSegment{sampleName: s.Name, seg: final})
		}
	}
	return out
}

func otherProbandAxes(samples []sample.Sample, exclude int) []int {
	var axes []int
	for i, s := range samples {
		if i == exclude {
			continue
		}
		if s.Kin == sample.Proband {
			axes = append(axes, i)
		}
	}
	return axes
}

func assignMCC(samples []sample.Sample, sc scoredSegment, pedigreeMode bool, params config.Params, dqsSet []bool) []int {
	out := make([]int, len(samples))
	if !pedigreeMode {
		for i, s := range samples {
			cn := sc.result.CN[i]
			alleles := sc.perSample[i].AlleleCounts
			model := s.DepthModel
			out[i] = mcc.AssignIndependent(cn, params.MaxCN, func(cand genotype.Genotype) float64 {
				return model.AlleleLikelihood(alleles, cand)
			})
		}
		return out
	}

	n := len(samples)
	p1Idx, p2Idx := n-2, n-1
	p1, p2 := samples[p1Idx], samples[p2Idx]
	cnChildren := append([]int(nil), sc.result.CN[:n-2]...)
	// A child is pedigree-consistency-eligible only when its call was
	// inherited, i.e. no de-novo quality score got set for it this
	// segment (spec.md section 4.6). External index i < n-2 is the
	// child's own axis since probands occupy the low indices of the
	// working list.
	inherited := func(childIdx int) bool { return !dqsSet[childIdx] }
	alleleLikelihoodP1 := func(g genotype.Genotype) float64 {
		return p1.DepthModel.AlleleLikelihood(sc.perSample[p1Idx].AlleleCounts, g)
	}
	alleleLikelihoodP2 := func(g genotype.Genotype) float64 {
		return p2.DepthModel.AlleleLikelihood(sc.perSample[p2Idx].AlleleCounts, g)
	}
	alleleLikelihoodChild := func(childIdx int, g genotype.Genotype) float64 {
		return samples[childIdx].DepthModel.AlleleLikelihood(sc.perSample[childIdx].AlleleCounts, g)
	}

	mccP1, mccP2, mccChildren := mcc.AssignPedigree(sc.result.CN[p1Idx], sc.result.CN[p2Idx], params.MaxCN, cnChildren, inherited, alleleLikelihoodP1, alleleLikelihoodP2, alleleLikelihoodChild)
	out[p1Idx] = mccP1
	out[p2Idx] = mccP2
	copy(out[:n-2], mccChildren)
	return out
}
