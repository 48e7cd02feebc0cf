// Package mcc implements C6: major chromosome count assignment, both
// the pedigree-consistent variant and the no-pedigree variant.
package mcc

import (
	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/genotype"
)

// Consistent reports whether offspring genotype gc is reachable from
// parental genotype gp: gp contributes one of its two alleles, so gp's
// count must appear on at least one side of gc.
func Consistent(gc, gp genotype.Genotype) bool {
	return gp.CountsA == gc.CountsA || gp.CountsA == gc.CountsB ||
		gp.CountsB == gc.CountsA || gp.CountsB == gc.CountsB
}

// FromCN folds a copy number into its MCC under the CN<=2 convention:
// MCC=1 when CN=2 (balanced diploid), MCC=CN otherwise (CN 0 or 1).
func fromCN(cn int) int {
	if cn == 2 {
		return 1
	}
	return cn
}

func major(g genotype.Genotype) int {
	if g.CountsA > g.CountsB {
		return g.CountsA
	}
	return g.CountsB
}

// GateOnAlleleEvidence reproduces the source's low-allele-count
// decision: C6 is skipped for a segment if any sample has fewer than
// DefaultReadCountsThreshold heterozygous SNV observations there. The
// richer allele-density/per-segment-cap/coverage checks the source
// also runs collapse to this single boolean in practice, so that is
// all this reproduces.
func GateOnAlleleEvidence(hetCountsPerSample []int, params config.Params) bool {
	for _, c := range hetCountsPerSample {
		if c < params.DefaultReadCountsThreshold {
			return false
		}
	}
	return true
}

// AssignIndependent implements the no-pedigree variant: CN>2 picks the
// allele-count-likelihood argmax over genotypes_by_cn[CN]; CN<=2 folds
// directly via fromCN.
func AssignIndependent(cn int, maxCN int, alleleLikelihood func(genotype.Genotype) float64) int {
	if cn <= 2 {
		return fromCN(cn)
	}
	byCN := genotype.GenotypesByCN(maxCN)
	if cn >= len(byCN) {
		return cn
	}
	candidates := byCN[cn]
	if len(candidates) == 0 {
		return fromCN(cn)
	}
	best := candidates[0]
	bestL := alleleLikelihood(best)
	for _, g := range candidates[1:] {
		if l := alleleLikelihood(g); l > bestL {
			bestL = l
			best = g
		}
	}
	return major(best)
}

// ChildInherited reports whether this segment's call for the child was
// inherited rather than de-novo (DQS unset for this segment), the
// prerequisite for including a child in the pedigree MCC argmax.
type ChildInherited func(childIdx int) bool

// AssignPedigree implements the pedigree variant. cnP1, cnP2 are the
// parents' final CNs; cnChildren holds each child's final CN. For
// every (gp1, gp2) combination and, per child, every pedigree-consistent
// genotype whose call is inherited, the joint genotype likelihood is
// evaluated and the overall argmax's parental MCCs and child MCCs are
// returned. alleleLikelihood scores the allele evidence for a given
// sample's candidate genotype at this segment.
func AssignPedigree(
	cnP1, cnP2 int, maxCN int,
	cnChildren []int, inherited ChildInherited,
	alleleLikelihoodP1, alleleLikelihoodP2 func(genotype.Genotype) float64,
	alleleLikelihoodChild func(childIdx int, g genotype.Genotype) float64,
) (mccP1, mccP2 int, mccChildren []int) {
	if cnP1 <= 2 && cnP2 <= 2 {
		allSimple := true
		for _, c := range cnChildren {
			if c > 2 {
				allSimple = false
				break
			}
		}
		if allSimple {
			mccChildren = make([]int, len(cnChildren))
			for i, c := range cnChildren {
				mccChildren[i] = fromCN(c)
			}
			return fromCN(cnP1), fromCN(cnP2), mccChildren
		}
	}

	byCN := genotype.GenotypesByCN(maxCN)
	gp1List := genotypesFor(byCN, cnP1)
	gp2List := genotypesFor(byCN, cnP2)

	childLists := make([][]genotype.Genotype, len(cnChildren))
	for i, c := range cnChildren {
		childLists[i] = genotypesFor(byCN, c)
	}

	mccChildren = make([]int, len(cnChildren))
	var bestL float64
	haveBest := false
	var bestGP1, bestGP2 genotype.Genotype
	bestChild := make([]genotype.Genotype, len(cnChildren))

	for _, gp1 := range gp1List {
		for _, gp2 := range gp2List {
			L := alleleLikelihoodP1(gp1) * alleleLikelihoodP2(gp2)
			childChoice := make([]genotype.Genotype, len(cnChildren))
			ok := true
			for i := range cnChildren {
				if inherited != nil && !inherited(i) {
					childChoice[i] = childLists[i][0]
					continue
				}
				best, bestCL, found := bestConsistentChild(childLists[i], gp1, gp2, func(g genotype.Genotype) float64 {
					return alleleLikelihoodChild(i, g)
				})
				if !found {
					ok = false
					break
				}
				childChoice[i] = best
				L *= bestCL
			}
			if !ok {
				continue
			}
			if !haveBest || L > bestL {
				haveBest = true
				bestL = L
				bestGP1, bestGP2 = gp1, gp2
				copy(bestChild, childChoice)
			}
		}
	}

	if !haveBest {
		mccP1, mccP2 = fromCN(cnP1), fromCN(cnP2)
		for i, c := range cnChildren {
			mccChildren[i] = fromCN(c)
		}
		return mccP1, mccP2, mccChildren
	}

	mccP1 = mccFromGenotype(cnP1, bestGP1)
	mccP2 = mccFromGenotype(cnP2, bestGP2)
	for i, c := range cnChildren {
		mccChildren[i] = mccFromGenotype(c, bestChild[i])
	}
	return mccP1, mccP2, mccChildren
}

func mccFromGenotype(cn int, g genotype.Genotype) int {
	if cn <= 2 {
		return fromCN(cn)
	}
	return major(g)
}

func genotypesFor(byCN [][]genotype.Genotype, cn int) []genotype.Genotype {
	if cn < 0 || cn >= len(byCN) || len(byCN[cn]) == 0 {
		return []genotype.Genotype{{CountsA: 0, CountsB: cn}}
	}
	return byCN[cn]
}

func bestConsistentChild(candidates []genotype.Genotype, gp1, gp2 genotype.Genotype, score func(genotype.Genotype) float64) (genotype.Genotype, float64, bool) {
	var best genotype.Genotype
	var bestL float64
	found := false
	for _, gc := range candidates {
		if !Consistent(gc, gp1) || !Consistent(gc, gp2) {
			continue
		}
		l := score(gc)
		if !found || l > bestL {
			found = true
			bestL = l
			best = gc
		}
	}
	return best, bestL, found
}
