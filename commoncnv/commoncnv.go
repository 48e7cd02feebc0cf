// Package commoncnv loads the optional common-CNV BED used to split a
// segment into alternative haplotype partitionings (spec section on
// external interfaces). When no file is given, every segment becomes a
// SegmentSet whose haplotype A is a singleton and B is absent. This
// package answers overlap queries (Overlaps) and lists the region
// boundaries inside a segment (Breakpoints); segment.NewSegmentSets
// uses Breakpoints for that decision. The quality scorer's common-CNV
// gate does not use this package.
package commoncnv

import (
	"sort"

	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/interval"
)

// Regions answers overlap queries against a loaded common-CNV BED.
// The zero value (nil *Regions) always reports no overlap.
type Regions struct {
	nodes map[string]*interval.IntervalNode
	raw   []bed.Bed
}

// Load reads a common-CNV BED file. An empty path yields a Regions
// value that reports no overlaps anywhere.
func Load(path string) (*Regions, error) {
	if path == "" {
		return nil, nil
	}
	records := bed.Read(path)
	ivals := make([]interval.Interval, len(records))
	for i := range records {
		ivals[i] = records[i]
	}
	return &Regions{nodes: interval.BuildTree(ivals), raw: records}, nil
}

// Overlaps reports whether [start, end) on chrom intersects a known
// common-CNV region.
func (r *Regions) Overlaps(chrom string, start, end int) bool {
	if r == nil || r.nodes == nil {
		return false
	}
	q := bed.Bed{Chrom: chrom, ChromStart: start, ChromEnd: end, FieldsInitialized: 3}
	return len(interval.Query(r.nodes, q, "any")) > 0
}

// Breakpoints returns the sorted set of internal region boundaries
// that fall strictly inside [start, end), used to build the
// alternative (haplotype B) partitioning of a segment that a common
// CNV region subdivides.
func (r *Regions) Breakpoints(chrom string, start, end int) []int {
	if r == nil {
		return nil
	}
	var cuts []int
	for _, b := range r.raw {
		if b.Chrom != chrom {
			continue
		}
		if b.ChromStart > start && b.ChromStart < end {
			cuts = append(cuts, b.ChromStart)
		}
		if b.ChromEnd > start && b.ChromEnd < end {
			cuts = append(cuts, b.ChromEnd)
		}
	}
	sort.Ints(cuts)
	var uniq []int
	for _, c := range cuts {
		if len(uniq) == 0 || c != uniq[len(uniq)-1] {
			uniq = append(uniq, c)
		}
	}
	return uniq
}
