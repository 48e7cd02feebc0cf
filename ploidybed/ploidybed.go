// Package ploidybed loads a ploidy-BED file (chrom, start, end,
// expected-ploidy) and answers point lookups, overriding the default
// autosomal ploidy of 2 for the intervals it names. Grounded on the
// interval.BuildTree/interval.Query usage in genotype.pileup and
// filter.Filter: region records are represented as gonomics bed.Bed
// values (the ploidy is stashed in the Score field) so the same
// interval package used throughout the corpus indexes them.
package ploidybed

import (
	"strconv"

	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/interval"
)

const defaultPloidy = 2

// Tree answers ploidy lookups by genomic interval. The zero value
// (nil *Tree) is valid and always reports the default ploidy.
type Tree struct {
	nodes map[string]*interval.IntervalNode
}

// Load reads a ploidy-BED file into a Tree. An empty path is not an
// error: it yields a Tree that reports the default ploidy everywhere.
func Load(path string) (*Tree, error) {
	if path == "" {
		return nil, nil
	}
	records := bed.Read(path)
	ivals := make([]interval.Interval, 0, len(records))
	for i := range records {
		ploidy, err := strconv.Atoi(records[i].Name)
		if err != nil {
			continue
		}
		records[i].Score = ploidy
		ivals = append(ivals, records[i])
	}
	t := &Tree{nodes: interval.BuildTree(ivals)}
	return t, nil
}

// Lookup returns the expected ploidy for [start, end) on chrom,
// defaulting to 2 when no override interval is present or t is nil.
func (t *Tree) Lookup(chrom string, start, end int) int {
	if t == nil || t.nodes == nil {
		return defaultPloidy
	}
	q := bed.Bed{Chrom: chrom, ChromStart: start, ChromEnd: end, FieldsInitialized: 3}
	hits := interval.Query(t.nodes, q, "any")
	if len(hits) == 0 {
		return defaultPloidy
	}
	best := defaultPloidy
	for i := range hits {
		if b, ok := hits[i].(bed.Bed); ok {
			best = b.Score
		}
	}
	return best
}
