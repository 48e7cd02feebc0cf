package joint

// CallResult is the per-segment CN assignment produced by either C4
// or C5, plus the maximum joint likelihood it was selected under (used
// by C8's haplotype selector and reported to C7 for QS/DQS scoring).
type CallResult struct {
	// CN holds one entry per sample, in the same order the samples
	// were passed to RunPedigree/RunIndependent: for RunPedigree that
	// is [parent1, parent2, child0, ..., childK-1].
	CN []int

	// Likelihoods holds the per-sample likelihood vector the scorer
	// will marginalize or read directly: for RunPedigree it is nil
	// (the caller marginalizes the returned Distribution instead); for
	// RunIndependent it is the 1-D depth-likelihood vector of each
	// sample restricted to the winning combination.
	Likelihoods [][]float64

	MaxLikelihood float64
}
