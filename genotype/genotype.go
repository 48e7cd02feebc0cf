// Package genotype enumerates the parental and offspring genotype
// spaces the joint inference engine searches over (component C1).
// The enumeration order is deterministic everywhere: outer loop on
// total copy number ascending, inner loop on the A-allele count
// ascending, matching the tie-break idiom used throughout the corpus
// (e.g. the teacher's microsatellite genotyper preferred the smaller
// value on ties in modeReads; BestSingleGenotype in
// repeats/baysian_likelihood.go enumerates diploid permutations the
// same deterministic way before taking an argmax).
package genotype

import (
	"math/rand"

	"golang.org/x/exp/slices"
)

// Genotype is an ordered pair of allele copy counts. CountsA + CountsB
// never exceeds MaxCN-1 for the MaxCN the genotype was enumerated
// under.
type Genotype struct {
	CountsA int
	CountsB int
}

// Total returns the copy number implied by the genotype.
func (g Genotype) Total() int { return g.CountsA + g.CountsB }

// AlleleCount is one SNV's observed (A-count, B-count) read support.
type AlleleCount struct {
	A int
	B int
}

// ParentalGenotypes enumerates all (a,b) with a,b >= 0 and a+b <
// maxCN, ordered by ascending total then ascending a.
func ParentalGenotypes(maxCN int) []Genotype {
	var out []Genotype
	for t := 0; t < maxCN; t++ {
		for a := 0; a <= t; a++ {
			out = append(out, Genotype{CountsA: a, CountsB: t - a})
		}
	}
	return out
}

// OffspringSet is one Cartesian-product entry: one genotype per child,
// in pedigree child order.
type OffspringSet struct {
	Genotypes []Genotype
}

// OffspringGenotypes returns the k-fold Cartesian product of parents
// over k children. When the product exceeds cap, it is uniformly
// subsampled without replacement to exactly cap entries using a seeded
// RNG so the run is reproducible -- the teacher's unspecified-seed
// shuffle is an intentional correction here (spec open question),
// never a behavior this package repeats.
func OffspringGenotypes(parents []Genotype, k int, cap int, seed int64) []OffspringSet {
	if k <= 0 {
		return []OffspringSet{{}}
	}
	total := pow(len(parents), k)
	if cap <= 0 || total <= cap {
		return cartesianProduct(parents, k)
	}

	rng := rand.New(rand.NewSource(seed))
	chosen := make(map[int]struct{}, cap)
	for len(chosen) < cap {
		idx := rng.Intn(total)
		chosen[idx] = struct{}{}
	}
	idxs := make([]int, 0, len(chosen))
	for idx := range chosen {
		idxs = append(idxs, idx)
	}
	slices.Sort(idxs)

	out := make([]OffspringSet, len(idxs))
	for i, idx := range idxs {
		out[i] = OffspringSet{Genotypes: unrank(parents, k, idx)}
	}
	return out
}

func cartesianProduct(parents []Genotype, k int) []OffspringSet {
	total := pow(len(parents), k)
	out := make([]OffspringSet, total)
	for idx := 0; idx < total; idx++ {
		out[idx] = OffspringSet{Genotypes: unrank(parents, k, idx)}
	}
	return out
}

// unrank maps a flat index in [0, len(parents)^k) to the corresponding
// k-tuple, treating the index as a base-len(parents) number with the
// first child in the most significant digit -- deterministic given the
// index regardless of how the index itself was produced.
func unrank(parents []Genotype, k int, idx int) []Genotype {
	n := len(parents)
	digits := make([]int, k)
	for i := k - 1; i >= 0; i-- {
		digits[i] = idx % n
		idx /= n
	}
	gs := make([]Genotype, k)
	for i, d := range digits {
		gs[i] = parents[d]
	}
	return gs
}

func pow(base, exp int) int {
	out := 1
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

// CopyNumberCombinations returns the union, over r in 1..maxAlleles, of
// all r-subsets of {0, ..., maxCN-1}, deduplicated. It always contains
// every singleton {c} for c < maxCN.
func CopyNumberCombinations(maxCN, maxAlleles int) [][]int {
	universe := make([]int, maxCN)
	for i := range universe {
		universe[i] = i
	}

	seen := make(map[string]bool)
	var out [][]int
	for r := 1; r <= maxAlleles && r <= maxCN; r++ {
		for _, combo := range subsetsOfSize(universe, r) {
			key := comboKey(combo)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, combo)
		}
	}
	return out
}

func comboKey(combo []int) string {
	b := make([]byte, 0, len(combo)*2)
	for _, c := range combo {
		b = append(b, byte(c), ',')
	}
	return string(b)
}

func subsetsOfSize(universe []int, r int) [][]int {
	n := len(universe)
	if r > n {
		return nil
	}
	var out [][]int
	idxs := make([]int, r)
	for i := range idxs {
		idxs[i] = i
	}
	for {
		combo := make([]int, r)
		for i, idx := range idxs {
			combo[i] = universe[idx]
		}
		out = append(out, combo)

		i := r - 1
		for i >= 0 && idxs[i] == i+n-r {
			i--
		}
		if i < 0 {
			break
		}
		idxs[i]++
		for j := i + 1; j < r; j++ {
			idxs[j] = idxs[j-1] + 1
		}
	}
	return out
}

// CNAlleleSet returns the set of allowed A-allele counts for a given
// total copy number: {0} for cn=0, {0,1} for cn=1, {1..cn} otherwise.
func CNAlleleSet(cn int) []int {
	switch {
	case cn == 0:
		return []int{0}
	case cn == 1:
		return []int{0, 1}
	default:
		out := make([]int, 0, cn)
		for a := 1; a <= cn; a++ {
			out = append(out, a)
		}
		return out
	}
}

// GenotypesByCN returns, for each cn in [0, maxCN), the c+1 genotypes
// (a, cn-a) for a in 0..cn.
func GenotypesByCN(maxCN int) [][]Genotype {
	out := make([][]Genotype, maxCN)
	for cn := 0; cn < maxCN; cn++ {
		gs := make([]Genotype, cn+1)
		for a := 0; a <= cn; a++ {
			gs[a] = Genotype{CountsA: a, CountsB: cn - a}
		}
		out[cn] = gs
	}
	return out
}
