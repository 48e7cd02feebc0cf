// Package joint implements components C4 and C5: the joint
// probabilistic inference engine that enumerates parent/offspring (or
// independent) copy-number combinations, evaluates them under the
// depth and transition models, and records the result as a dense
// (or, for large pedigrees, sparse) maximum-likelihood distribution.
package joint

import (
	"fmt"
	"strings"

	"github.com/vertgenlab/gonomics/numbers"
)

// Distribution is the (k+2)-axis joint-likelihood table described in
// the data model: axis 0 is parent1's CN, axis 1 is parent2's CN, and
// axes 2..k+1 are each child's CN, each of length maxCN. Every
// reachable index receives the maximum likelihood seen across all
// enumerations mapping to it (Viterbi-style max-marginalization).
type Distribution interface {
	Shape() []int
	UpdateMax(idx []int, v float64)
	At(idx []int) float64
	// Marginal sums the table over every axis except axis, returning
	// a vector of length Shape()[axis].
	Marginal(axis int) []float64
	// Max returns the global maximum value and its argmax index.
	Max() (float64, []int)
}

// sparseAxisThreshold is the axis count above which a dense array
// becomes intractable (spec design note: "for k > 6 probands, fall
// back to sparse storage keyed by tuple"). 2 parent axes + 6 proband
// axes = 8.
const sparseAxisThreshold = 8

// NewDistribution builds a Distribution over the given per-axis
// lengths (all equal to maxCN in practice), picking a dense backing
// array for small pedigrees and a sparse map for large ones.
func NewDistribution(shape []int) Distribution {
	if len(shape) <= sparseAxisThreshold {
		return newDense(shape)
	}
	return newSparse(shape)
}

type dense struct {
	shape   []int
	strides []int
	data    []float64
}

func newDense(shape []int) *dense {
	strides := make([]int, len(shape))
	size := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = size
		size *= shape[i]
	}
	return &dense{shape: shape, strides: strides, data: make([]float64, size)}
}

func (d *dense) Shape() []int { return d.shape }

func (d *dense) flatIndex(idx []int) int {
	f := 0
	for i, v := range idx {
		f += v * d.strides[i]
	}
	return f
}

func (d *dense) UpdateMax(idx []int, v float64) {
	f := d.flatIndex(idx)
	d.data[f] = numbers.Max(d.data[f], v)
}

func (d *dense) At(idx []int) float64 { return d.data[d.flatIndex(idx)] }

func (d *dense) Marginal(axis int) []float64 {
	out := make([]float64, d.shape[axis])
	idx := make([]int, len(d.shape))
	var walk func(dim int)
	walk = func(dim int) {
		if dim == len(d.shape) {
			out[idx[axis]] += d.data[d.flatIndex(idx)]
			return
		}
		for v := 0; v < d.shape[dim]; v++ {
			idx[dim] = v
			walk(dim + 1)
		}
	}
	walk(0)
	return out
}

func (d *dense) Max() (float64, []int) {
	bestV := d.data[0]
	bestI := 0
	for i, v := range d.data {
		if v > bestV {
			bestV = v
			bestI = i
		}
	}
	idx := make([]int, len(d.shape))
	rem := bestI
	for i := range d.shape {
		idx[i] = rem / d.strides[i]
		rem %= d.strides[i]
	}
	return bestV, idx
}

// sparse backs the same contract with a map keyed by the string-joined
// index tuple, used once the dense array would be intractably large
// (spec design note on k > 6 probands).
type sparse struct {
	shape []int
	data  map[string]float64
}

func newSparse(shape []int) *sparse {
	return &sparse{shape: shape, data: make(map[string]float64)}
}

func (s *sparse) Shape() []int { return s.shape }

func key(idx []int) string {
	b := new(strings.Builder)
	for i, v := range idx {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%d", v)
	}
	return b.String()
}

func (s *sparse) UpdateMax(idx []int, v float64) {
	k := key(idx)
	s.data[k] = numbers.Max(s.data[k], v)
}

func (s *sparse) At(idx []int) float64 { return s.data[key(idx)] }

func (s *sparse) Marginal(axis int) []float64 {
	out := make([]float64, s.shape[axis])
	for k, v := range s.data {
		idx := parseKey(k)
		out[idx[axis]] += v
	}
	return out
}

func (s *sparse) Max() (float64, []int) {
	var bestV float64
	var bestI []int
	first := true
	for k, v := range s.data {
		if first || v > bestV {
			bestV = v
			bestI = parseKey(k)
			first = false
		}
	}
	return bestV, bestI
}

func parseKey(k string) []int {
	parts := strings.Split(k, ",")
	idx := make([]int, len(parts))
	for i, p := range parts {
		fmt.Sscanf(p, "%d", &idx[i])
	}
	return idx
}
