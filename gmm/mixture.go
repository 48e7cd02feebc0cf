package gmm

import (
	"math"
	"math/rand"

	"github.com/vertgenlab/gonomics/numbers"
	"gonum.org/v1/gonum/stat/distuv"
)

// MixtureModel is a fitted univariate Gaussian mixture over observed
// per-bin read depths. The gmm package retrieved alongside this
// teacher carried only mixtureModel_test.go -- its mixtureModel.go was
// never captured -- so this file completes it against the test's own
// API (Means, Stdev, Weights, LogLikelihood, RunMixtureModel), fitted
// with a standard EM loop and random restarts on non-convergence,
// mirroring the "maxResets" knob the test already exercises.
type MixtureModel struct {
	Means         []float64
	Stdev         []float64
	Weights       []float64
	LogLikelihood float64
	Data          []float64

	posteriors [][]float64
}

// RunMixtureModel fits an nComponents-component 1-D Gaussian mixture to
// data with EM, restarting from new random initial means up to
// maxResets times if a run fails to converge within maxIterations
// steps. Reports whether the final run converged and how many E/M
// iterations it took.
func RunMixtureModel(data []float64, nComponents, maxIterations, maxResets int, mm *MixtureModel) (converged bool, iterationsRun int) {
	if len(data) == 0 || nComponents <= 0 {
		return false, 0
	}
	mm.Data = data

	for reset := 0; reset <= maxResets; reset++ {
		initMixture(mm, data, nComponents)
		converged, iterationsRun = emLoop(mm, maxIterations)
		if converged {
			return converged, iterationsRun
		}
	}
	return converged, iterationsRun
}

func initMixture(mm *MixtureModel, data []float64, nComponents int) {
	min, max := data[0], data[0]
	for _, d := range data {
		min = numbers.Min(min, d)
		max = numbers.Max(max, d)
	}
	mm.Means = make([]float64, nComponents)
	mm.Stdev = make([]float64, nComponents)
	mm.Weights = make([]float64, nComponents)
	span := max - min
	if span == 0 {
		span = 1
	}
	for i := 0; i < nComponents; i++ {
		mm.Means[i] = min + rand.Float64()*span
		mm.Stdev[i] = span / float64(nComponents*2)
		if mm.Stdev[i] == 0 {
			mm.Stdev[i] = 1
		}
		mm.Weights[i] = 1.0 / float64(nComponents)
	}
	mm.posteriors = make([][]float64, nComponents)
	for i := range mm.posteriors {
		mm.posteriors[i] = make([]float64, len(data))
	}
}

func emLoop(mm *MixtureModel, maxIterations int) (bool, int) {
	prevLL := math.Inf(-1)
	for iter := 1; iter <= maxIterations; iter++ {
		eStep(mm)
		mStep(mm)
		ll := logLikelihood(mm)
		mm.LogLikelihood = ll
		if math.Abs(ll-prevLL) < 1e-6 {
			return true, iter
		}
		prevLL = ll
	}
	return false, maxIterations
}

func eStep(mm *MixtureModel) {
	n := len(mm.Data)
	k := len(mm.Means)
	for i := 0; i < n; i++ {
		var total float64
		dens := make([]float64, k)
		for c := 0; c < k; c++ {
			n := distuv.Normal{Mu: mm.Means[c], Sigma: stdevOrFloor(mm.Stdev[c])}
			dens[c] = mm.Weights[c] * n.Prob(mm.Data[i])
			total += dens[c]
		}
		for c := 0; c < k; c++ {
			if total > 0 {
				mm.posteriors[c][i] = dens[c] / total
			} else {
				mm.posteriors[c][i] = 1.0 / float64(k)
			}
		}
	}
}

func mStep(mm *MixtureModel) {
	n := len(mm.Data)
	k := len(mm.Means)
	for c := 0; c < k; c++ {
		var sumPost, sumX float64
		for i := 0; i < n; i++ {
			sumPost += mm.posteriors[c][i]
			sumX += mm.posteriors[c][i] * mm.Data[i]
		}
		if sumPost == 0 {
			continue
		}
		mean := sumX / sumPost
		var sumVar float64
		for i := 0; i < n; i++ {
			d := mm.Data[i] - mean
			sumVar += mm.posteriors[c][i] * d * d
		}
		variance := sumVar / sumPost
		if variance < 1e-6 {
			variance = 1e-6
		}
		mm.Means[c] = mean
		mm.Stdev[c] = math.Sqrt(variance)
		mm.Weights[c] = sumPost / float64(n)
	}
}

func logLikelihood(mm *MixtureModel) float64 {
	var ll float64
	for i := range mm.Data {
		var sum float64
		for c := range mm.Means {
			n := distuv.Normal{Mu: mm.Means[c], Sigma: stdevOrFloor(mm.Stdev[c])}
			sum += mm.Weights[c] * n.Prob(mm.Data[i])
		}
		if sum > 0 {
			ll += math.Log(sum)
		}
	}
	return ll
}

// stdevOrFloor guards distuv.Normal against a degenerate zero sigma
// by flooring it at 1e-6.
func stdevOrFloor(stdev float64) float64 {
	if stdev <= 0 {
		return 1e-6
	}
	return stdev
}
