package joint

import (
	"testing"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/depth"
	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/dasnellings/cnvcall/transition"
)

func diploidSample(name string, mean float64) sample.Sample {
	return sample.Sample{Name: name, Kin: sample.Parent, MeanCoverage: mean, DepthModel: depth.NewPoissonModel(mean)}
}

func flatSeg(depths ...float64) segment.Segment {
	return segment.Segment{Chrom: "chr1", Begin: 0, End: 1000, BinDepths: depths}
}

func TestRunPedigreeAllDiploidPicksCN2(t *testing.T) {
	params := config.Default()
	params.MaxCN = 5

	p1 := diploidSample("p1", 30)
	p2 := diploidSample("p2", 30)
	child := diploidSample("c1", 30)

	T := transition.Matrix(params.MaxCN)
	parents := genotype.ParentalGenotypes(params.MaxCN)
	offspring := genotype.OffspringGenotypes(parents, 1, params.MaxNumOffspringGenotypes, params.OffspringSubsampleSeed)

	dist, result := RunPedigree(
		p1, p2, flatSeg(30, 30, 30), flatSeg(30, 30, 30),
		[]sample.Sample{child}, []segment.Segment{flatSeg(30, 30, 30)},
		T, offspring, params,
	)

	if result.CN[0] != 2 || result.CN[1] != 2 || result.CN[2] != 2 {
		t.Errorf("expected all CN=2 for balanced diploid coverage, got %v", result.CN)
	}
	if dist == nil {
		t.Fatal("expected non-nil distribution")
	}
	maxV, _ := dist.Max()
	if maxV != result.MaxLikelihood {
		t.Errorf("distribution max %v does not match reported MaxLikelihood %v", maxV, result.MaxLikelihood)
	}
}

func TestRunPedigreeDetectsParentalDeletion(t *testing.T) {
	params := config.Default()
	params.MaxCN = 5

	p1 := diploidSample("p1", 30)
	p2 := diploidSample("p2", 30)
	child := diploidSample("c1", 30)

	T := transition.Matrix(params.MaxCN)
	parents := genotype.ParentalGenotypes(params.MaxCN)
	offspring := genotype.OffspringGenotypes(parents, 1, params.MaxNumOffspringGenotypes, params.OffspringSubsampleSeed)

	_, result := RunPedigree(
		p1, p2, flatSeg(15, 15, 15), flatSeg(30, 30, 30),
		[]sample.Sample{child}, []segment.Segment{flatSeg(30, 30, 30)},
		T, offspring, params,
	)

	if result.CN[0] != 1 {
		t.Errorf("expected parent1 hemizygous deletion (CN=1) given half coverage, got %d", result.CN[0])
	}
}

func TestRunPedigreeZeroChildrenReducesToIndependentParents(t *testing.T) {
	params := config.Default()
	params.MaxCN = 5

	p1 := diploidSample("p1", 30)
	p2 := diploidSample("p2", 30)

	T := transition.Matrix(params.MaxCN)
	parents := genotype.ParentalGenotypes(params.MaxCN)
	offspring := genotype.OffspringGenotypes(parents, 0, params.MaxNumOffspringGenotypes, params.OffspringSubsampleSeed)

	_, result := RunPedigree(
		p1, p2, flatSeg(30, 30, 30), flatSeg(30, 30, 30),
		nil, nil,
		T, offspring, params,
	)

	if len(result.CN) != 2 {
		t.Fatalf("expected 2-element CN with no children, got %v", result.CN)
	}
	if result.CN[0] != 2 || result.CN[1] != 2 {
		t.Errorf("expected both parents CN=2, got %v", result.CN)
	}
}

func TestRunPedigreeNoNaNInDistribution(t *testing.T) {
	params := config.Default()
	params.MaxCN = 4

	p1 := diploidSample("p1", 0)
	p2 := diploidSample("p2", 0)
	child := diploidSample("c1", 0)

	T := transition.Matrix(params.MaxCN)
	parents := genotype.ParentalGenotypes(params.MaxCN)
	offspring := genotype.OffspringGenotypes(parents, 1, params.MaxNumOffspringGenotypes, params.OffspringSubsampleSeed)

	dist, result := RunPedigree(
		p1, p2, flatSeg(0, 0), flatSeg(0, 0),
		[]sample.Sample{child}, []segment.Segment{flatSeg(0, 0)},
		T, offspring, params,
	)

	maxV, _ := dist.Max()
	if maxV != maxV {
		t.Error("distribution max is NaN")
	}
	if result.MaxLikelihood != result.MaxLikelihood {
		t.Error("result MaxLikelihood is NaN")
	}
}
