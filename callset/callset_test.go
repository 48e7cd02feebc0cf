package callset

import (
	"testing"

	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/segment"
)

func TestBuildPassFilterAboveThreshold(t *testing.T) {
	params := config.Default()
	mcc := 2
	segs := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 1000, CN: 3, QS: 40, MCC: &mcc}}
	recs := Build("child1", segs, params)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Filter != "PASS" {
		t.Errorf("expected PASS filter, got %q", recs[0].Filter)
	}
	if recs[0].Alt[0] != "<DUP>" {
		t.Errorf("expected <DUP> ALT for CN=3, got %q", recs[0].Alt[0])
	}
}

func TestBuildLowQSFilterLabel(t *testing.T) {
	params := config.Default()
	segs := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 1000, CN: 1, QS: 2}}
	recs := Build("child1", segs, params)
	if recs[0].Filter == "PASS" {
		t.Error("expected a non-PASS filter label for low QS")
	}
	if recs[0].Alt[0] != "<DEL>" {
		t.Errorf("expected <DEL> ALT for CN=1, got %q", recs[0].Alt[0])
	}
}

func TestBuildIncludesDQSWhenPresent(t *testing.T) {
	params := config.Default()
	dqs := 15.0
	segs := []segment.Segment{{Chrom: "chr1", Begin: 0, End: 1000, CN: 1, QS: 40, DQS: &dqs}}
	recs := Build("child1", segs, params)
	if len(recs[0].Format) != 3 || recs[0].Format[2] != "DQS" {
		t.Errorf("expected FORMAT to include DQS, got %v", recs[0].Format)
	}
}
