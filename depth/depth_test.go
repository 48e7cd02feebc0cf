package depth

import (
	"math"
	"testing"

	"github.com/dasnellings/cnvcall/genotype"
)

func TestPoissonModelLikelihoodPeaksNearExpectedCN(t *testing.T) {
	m := NewPoissonModel(30)
	v := m.Likelihood(30, 5) // coverage matches diploid expectation
	if len(v) != 5 {
		t.Fatalf("expected vector length 5, got %d", len(v))
	}
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	if best != 2 {
		t.Errorf("expected peak likelihood at CN=2 for coverage=mean, got CN=%d (%v)", best, v)
	}
}

func TestPoissonModelLikelihoodNoNaNOrInf(t *testing.T) {
	m := NewPoissonModel(0) // degenerate mean coverage
	v := m.Likelihood(30, 5)
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Errorf("Likelihood[%d] = %v, want finite", i, x)
		}
	}
}

func TestAlleleLikelihoodFavorsBalancedHetOnBalancedCounts(t *testing.T) {
	m := NewPoissonModel(30)
	counts := []genotype.AlleleCount{
		{A: 15, B: 15}, {A: 14, B: 16}, {A: 16, B: 14},
	}
	het := genotype.Genotype{CountsA: 1, CountsB: 1}
	hom := genotype.Genotype{CountsA: 0, CountsB: 2}
	if m.AlleleLikelihood(counts, het) <= m.AlleleLikelihood(counts, hom) {
		t.Errorf("balanced allele counts should favor heterozygous genotype over homozygous")
	}
}

func TestBestOfPicksHighestLikelihood(t *testing.T) {
	m := NewPoissonModel(30)
	counts := []genotype.AlleleCount{{A: 0, B: 30}, {A: 1, B: 29}}
	candidates := []genotype.Genotype{
		{CountsA: 1, CountsB: 1},
		{CountsA: 0, CountsB: 2},
	}
	idx, phred := m.BestOf(counts, candidates)
	if idx != 1 {
		t.Errorf("expected homozygous-B genotype to win on all-B counts, got index %d", idx)
	}
	if phred < 0 || phred > 60 {
		t.Errorf("phred score out of range: %v", phred)
	}
}

func TestNewFromBinsFallsBackOnSparseBins(t *testing.T) {
	model := NewFromBins([]float64{30, 31}, 30, 10)
	if _, ok := model.(PoissonModel); !ok {
		t.Errorf("expected fallback to PoissonModel for too few bins, got %T", model)
	}
}

func TestNewFromBinsFitsMixtureOnEnoughBins(t *testing.T) {
	bins := make([]float64, 0, 40)
	for i := 0; i < 20; i++ {
		bins = append(bins, 30, 30, 29, 31, 15, 16, 14, 15)
	}
	model := NewFromBins(bins, 30, 10)
	v := model.Likelihood(30, 5)
	if len(v) != 5 {
		t.Fatalf("expected vector length 5, got %d", len(v))
	}
}
