package gmm

import (
	"math"
	"math/rand"
	"testing"
)

// generateNormalizedDepths synthesizes per-bin normalized-coverage
// values (read depth divided by the sample's genome-wide mean) for a
// single copy-number state. CN 2 bins cluster near 1.0, a single-copy
// duplication (CN 3) near 1.5.
func generateNormalizedDepths(r *rand.Rand, n int, mean, stdev float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.NormFloat64()*stdev + mean
	}
	return out
}

func TestRunMixtureModelRecoversTwoCopyNumberComponents(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	const cn2Mean, cn3Mean, stdev = 1.0, 1.5, 0.08
	data := append(
		generateNormalizedDepths(r, 150, cn2Mean, stdev),
		generateNormalizedDepths(r, 100, cn3Mean, stdev)...,
	)

	mm := new(MixtureModel)
	converged, iterations := RunMixtureModel(data, 2, 50, 100, mm)
	if !converged {
		t.Fatalf("expected EM to converge within the reset budget, ran %d iterations", iterations)
	}
	if len(mm.Means) != 2 {
		t.Fatalf("expected 2 fitted components, got %d", len(mm.Means))
	}

	lo, hi := mm.Means[0], mm.Means[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	const tol = 0.05
	if math.Abs(lo-cn2Mean) > tol {
		t.Errorf("expected a component near CN2 mean %.2f, got %.4f", cn2Mean, lo)
	}
	if math.Abs(hi-cn3Mean) > tol {
		t.Errorf("expected a component near CN3 mean %.2f, got %.4f", cn3Mean, hi)
	}

	var weightSum float64
	for _, w := range mm.Weights {
		weightSum += w
	}
	if math.Abs(weightSum-1) > 1e-6 {
		t.Errorf("expected component weights to sum to 1, got %.6f", weightSum)
	}
}

func TestRunMixtureModelSingleComponentFitsOneCluster(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	data := generateNormalizedDepths(r, 200, 1.0, 0.05)

	mm := new(MixtureModel)
	converged, _ := RunMixtureModel(data, 1, 50, 10, mm)
	if !converged {
		t.Fatal("expected single-component EM to converge")
	}
	if len(mm.Means) != 1 {
		t.Fatalf("expected 1 fitted component, got %d", len(mm.Means))
	}
	if math.Abs(mm.Means[0]-1.0) > 0.05 {
		t.Errorf("expected mean near 1.0, got %.4f", mm.Means[0])
	}
}
