// Package pedigree implements C10: parsing the pedigree TSV into a
// working sample list, and the final cross-sample contiguous-segment
// merge.
package pedigree

import (
	"log"
	"strings"

	"github.com/dasnellings/cnvcall/cnverr"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Pedigree holds the two parents and the working proband list. Parent1
// and Parent2 are addressable by fixed index so the joint-distribution
// axes built from them stay stable across a run.
type Pedigree struct {
	Parent1  sample.Sample
	Parent2  sample.Sample
	Probands []sample.Sample
}

// Samples returns the working list in probands-first, parents-last
// order (spec.md section 4.10), skipping any parent that was never
// set (the no-pedigree case, where Parent1/Parent2 are zero values).
func (p Pedigree) Samples() []sample.Sample {
	out := make([]sample.Sample, 0, len(p.Probands)+2)
	out = append(out, p.Probands...)
	if p.Parent1.Name != "" {
		out = append(out, p.Parent1)
	}
	if p.Parent2.Name != "" {
		out = append(out, p.Parent2)
	}
	return out
}

// Load streams a 6-column pedigree TSV: column 2 is the sample id,
// column 3 maternal id, column 4 paternal id, column 6 the proband
// ("affected") flag. A sample with maternal=paternal="0" is a Parent;
// a sample flagged "affected" is a Proband; anything else is skipped
// with a warning, mirroring trf.go's readToChan line-at-a-time TSV
// scan.
func Load(path string) (Pedigree, error) {
	var p Pedigree
	var parents []sample.Sample

	input := fileio.EasyOpen(path)
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		fields := strings.Split(line, "\t")
		if len(fields) < 6 {
			log.Printf("pedigree: skipping malformed line (want >=6 columns): %q", line)
			continue
		}
		id := fields[1]
		maternal := fields[2]
		paternal := fields[3]
		affected := fields[5]

		s := sample.Sample{Name: id}
		switch {
		case maternal == "0" && paternal == "0":
			s.Kin = sample.Parent
			parents = append(parents, s)
		case strings.EqualFold(affected, "affected"):
			s.Kin = sample.Proband
			p.Probands = append(p.Probands, s)
		default:
			log.Printf("pedigree: ignoring sample %s (neither founder nor affected)", id)
		}
	}
	err := input.Close()
	exception.PanicOnErr(err)

	if len(parents) == 1 {
		return Pedigree{}, cnverr.Configf(path, "pedigree declares exactly one founder parent; expected zero (no-pedigree mode) or two")
	}
	if len(parents) == 0 && len(p.Probands) == 0 {
		return Pedigree{}, cnverr.Configf(path, "pedigree file contains no founder parents or affected probands")
	}
	if len(parents) > 0 {
		p.Parent1 = parents[0]
	}
	if len(parents) > 1 {
		p.Parent2 = parents[1]
	}
	return p, nil
}
