package main

import (
	"strconv"
	"strings"

	"github.com/dasnellings/cnvcall/cnverr"
	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// readSegmentsTSV streams the per-sample segmentation input: one
// record per (sample, genomic interval), columns
// sample\tchrom\tbegin\tend\tdepths\talleles, where depths is a
// comma-separated bin depth list and alleles is a semicolon-separated
// list of a:b allele-count pairs ("-" when absent). Grounded on
// trf.go's EasyOpen/EasyNextRealLine streaming-parse idiom.
func readSegmentsTSV(path string) (map[string][]segment.Segment, error) {
	out := make(map[string][]segment.Segment)
	input := fileio.EasyOpen(path)
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		fields := strings.Split(line, "\t")
		if len(fields) < 6 {
			continue
		}
		sampleName := fields[0]
		chrom := fields[1]
		begin, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, cnverr.Dataf(sampleName, "unparseable begin coordinate %q: %v", fields[2], err)
		}
		end, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, cnverr.Dataf(sampleName, "unparseable end coordinate %q: %v", fields[3], err)
		}
		if begin < 0 || end <= begin {
			return nil, cnverr.Dataf(sampleName, "invalid interval [%d, %d) on %s", begin, end, chrom)
		}
		depths, err := parseDepths(fields[4])
		if err != nil {
			return nil, cnverr.Dataf(sampleName, "unparseable depths %q: %v", fields[4], err)
		}
		for _, d := range depths {
			if d < 0 {
				return nil, cnverr.Dataf(sampleName, "negative coverage %v on %s:%d-%d", d, chrom, begin, end)
			}
		}
		alleles, err := parseAlleles(fields[5])
		if err != nil {
			return nil, cnverr.Dataf(sampleName, "unparseable alleles %q: %v", fields[5], err)
		}
		out[sampleName] = append(out[sampleName], segment.Segment{
			Chrom:        chrom,
			Begin:        begin,
			End:          end,
			BinDepths:    depths,
			AlleleCounts: alleles,
		})
	}
	if err := input.Close(); err != nil {
		exception.PanicOnErr(err)
	}
	return out, nil
}

func parseDepths(field string) ([]float64, error) {
	if field == "-" || field == "" {
		return nil, nil
	}
	parts := strings.Split(field, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseAlleles(field string) ([]genotype.AlleleCount, error) {
	if field == "-" || field == "" {
		return nil, nil
	}
	parts := strings.Split(field, ";")
	out := make([]genotype.AlleleCount, 0, len(parts))
	for _, p := range parts {
		ab := strings.Split(p, ":")
		if len(ab) != 2 {
			continue
		}
		a, err := strconv.Atoi(ab[0])
		if err != nil {
			return nil, err
		}
		b, err := strconv.Atoi(ab[1])
		if err != nil {
			return nil, err
		}
		out = append(out, genotype.AlleleCount{A: a, B: b})
	}
	return out, nil
}
