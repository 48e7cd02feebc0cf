// Package callset assembles the final per-pedigree-member output
// records after C10's merge: CN, MCC, QS, DQS, and filter label, bridged
// into gonomics' vcf.Vcf/vcf.Sample shape for the external VCF writer.
// Exact serialization stays an external concern; this package only
// builds the records.
package callset

import (
	"fmt"
	"strconv"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/vertgenlab/gonomics/vcf"
)

// Build assembles, per sample, the vcf.Vcf records for its merged
// segment list. Format is CN:MCC:QS:DQS, with MCC and DQS left out of
// a record whose segment has them unset, matching the FORMAT-column
// convention the corpus uses for per-sample genotype-adjacent fields
// (mcsCallVariants.go's GT:DP:PS:MS:RF). FILTER is "PASS" when QS
// clears QualityFilterThreshold, else q{QualityFilterThreshold}.
func Build(sampleName string, segments []segment.Segment, params config.Params) []vcf.Vcf {
	out := make([]vcf.Vcf, len(segments))
	for i, s := range segments {
		out[i] = vcf.Vcf{
			Chr:    s.Chrom,
			Pos:    s.Begin + 1,
			Id:     ".",
			Ref:    "N",
			Alt:    []string{altForCN(s.CN)},
			Filter: filterLabel(s.QS, params),
			Info:   fmt.Sprintf("END=%d;SVTYPE=CNV", s.End),
			Format: formatFields(s),
			Samples: []vcf.Sample{
				{
					Alleles:    []int16{0},
					FormatData: formatData(s),
				},
			},
		}
	}
	return out
}

func altForCN(cn int) string {
	if cn < 2 {
		return "<DEL>"
	}
	if cn > 2 {
		return "<DUP>"
	}
	return "."
}

func filterLabel(qs float64, params config.Params) string {
	if qs > params.QualityFilterThreshold {
		return "PASS"
	}
	return fmt.Sprintf("q%s", trimFloat(params.QualityFilterThreshold))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFields(s segment.Segment) []string {
	if s.MCC != nil {
		if s.DQS != nil {
			return []string{"CN", "MCC", "QS", "DQS"}
		}
		return []string{"CN", "MCC", "QS"}
	}
	if s.DQS != nil {
		return []string{"CN", "QS", "DQS"}
	}
	return []string{"CN", "QS"}
}

func formatData(s segment.Segment) []string {
	data := []string{strconv.Itoa(s.CN)}
	if s.MCC != nil {
		data = append(data, strconv.Itoa(*s.MCC))
	}
	data = append(data, strconv.FormatFloat(s.QS, 'f', 2, 64))
	if s.DQS != nil {
		data = append(data, strconv.FormatFloat(*s.DQS, 'f', 2, 64))
	}
	return data
}
