package main

import (
	"testing"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/joint"
	"github.com/dasnellings/cnvcall/pedigree"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
)

func TestPedigreeAxisMapsExternalOrderToRunPedigreeAxes(t *testing.T) {
	// n=4: working list is [child0, child1, parent1, parent2].
	// joint.RunPedigree's internal axes are [parent1, parent2, child0, child1].
	const n = 4
	cases := []struct {
		external int
		wantAxis int
	}{
		{external: 0, wantAxis: 2}, // child0
		{external: 1, wantAxis: 3}, // child1
		{external: n - 2, wantAxis: 0},
		{external: n - 1, wantAxis: 1},
	}
	for _, c := range cases {
		if got := pedigreeAxis(n, c.external); got != c.wantAxis {
			t.Errorf("pedigreeAxis(%d, %d) = %d, want %d", n, c.external, got, c.wantAxis)
		}
	}
}

func TestExternalizeCNRoundTripsThroughPedigreeAxis(t *testing.T) {
	const n = 4
	internal := joint.CallResult{CN: []int{5, 6, 7, 8}} // [p1, p2, child0, child1]
	externalized := externalizeCN(internal, n)

	for external := 0; external < n; external++ {
		axis := pedigreeAxis(n, external)
		if externalized.CN[external] != internal.CN[axis] {
			t.Errorf("externalizeCN[%d]=%d, want internal.CN[axis=%d]=%d",
				external, externalized.CN[external], axis, internal.CN[axis])
		}
	}
	// Spot-check the externally visible positions directly: children
	// first, parents last.
	if externalized.CN[0] != 7 || externalized.CN[1] != 8 {
		t.Errorf("expected children at external 0,1 to be 7,8, got %v", externalized.CN[:2])
	}
	if externalized.CN[n-2] != 5 || externalized.CN[n-1] != 6 {
		t.Errorf("expected parents at external n-2,n-1 to be 5,6, got %v", externalized.CN[n-2:])
	}
}

// TestRunCohortTrioAllDiploid exercises spec.md section 8's S1 scenario
// end-to-end through runCohort: a trio with uniform diploid coverage
// should call CN=2 for every sample, with QS above the quality filter
// threshold and no DQS set on the child.
func TestRunCohortTrioAllDiploid(t *testing.T) {
	params := config.Default()

	mkSeg := func() segment.Segment {
		return segment.Segment{
			Chrom:     "chr1",
			Begin:     0,
			End:       1000,
			BinDepths: []float64{30, 30, 30},
		}
	}
	bySample := map[string][]segment.Segment{
		"p1":    {mkSeg()},
		"p2":    {mkSeg()},
		"child": {mkSeg()},
	}

	ped := pedigree.Pedigree{
		Parent1:  sample.Sample{Name: "p1", Kin: sample.Parent},
		Parent2:  sample.Sample{Name: "p2", Kin: sample.Parent},
		Probands: []sample.Sample{{Name: "child", Kin: sample.Proband}},
	}

	samples := buildSamples(ped, bySample, nil, params)
	finalSegs := runCohort(samples, bySample, nil, params)

	for _, name := range []string{"p1", "p2", "child"} {
		segs := finalSegs[name]
		if len(segs) != 1 {
			t.Fatalf("expected 1 finalized segment for %s, got %d", name, len(segs))
		}
		if segs[0].CN != 2 {
			t.Errorf("expected CN=2 for %s, got %d", name, segs[0].CN)
		}
		if segs[0].QS < params.QualityFilterThreshold {
			t.Errorf("expected QS >= %v for %s, got %v", params.QualityFilterThreshold, name, segs[0].QS)
		}
	}
	if finalSegs["child"][0].DQS != nil {
		t.Errorf("expected DQS unset for a diploid child matching expected ploidy, got %v", *finalSegs["child"][0].DQS)
	}
}
