package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dasnellings/cnvcall/call"
	"github.com/dasnellings/cnvcall/callset"
	"github.com/dasnellings/cnvcall/commoncnv"
	"github.com/dasnellings/cnvcall/config"
	"github.com/dasnellings/cnvcall/depth"
	"github.com/dasnellings/cnvcall/genotype"
	"github.com/dasnellings/cnvcall/pedigree"
	"github.com/dasnellings/cnvcall/ploidybed"
	"github.com/dasnellings/cnvcall/sample"
	"github.com/dasnellings/cnvcall/segment"
	"github.com/dasnellings/cnvcall/transition"
	"github.com/vertgenlab/gonomics/exception"
)

func callUsage(callFlags *flag.FlagSet) {
	fmt.Print(
		"call - call pedigree-aware copy number variants\n\n" +
			"Usage:\n" +
			"  cnvcall call -segments in.tsv -pedigree ped.tsv [options] > calls.tsv\n\n" +
			"Options:\n")
	callFlags.PrintDefaults()
}

func runCall(args []string) {
	callFlags := flag.NewFlagSet("call", flag.ExitOnError)
	callFlags.Usage = func() { callUsage(callFlags) }

	segmentsFile := callFlags.String("segments", "", "TSV of per-sample segmentation input (sample, chrom, begin, end, depths, alleles).")
	pedigreeFile := callFlags.String("pedigree", "", "Pedigree TSV. When empty, runs in no-pedigree (independent) mode over every sample in -segments.")
	ploidyBedFile := callFlags.String("ploidyBed", "", "BED of (chrom, start, end, ploidy) overrides. Defaults to ploidy 2 everywhere.")
	commonCNVFile := callFlags.String("commonCNV", "", "BED of common-CNV regions used to propose alternative haplotype breakpoints.")
	output := callFlags.String("o", "stdout", "Output TSV of merged per-sample calls.")

	maxCN := callFlags.Int("maxCN", config.Default().MaxCN, "Maximum total copy number considered.")
	maxCoreNumber := callFlags.Int("maxCoreNumber", config.Default().MaxCoreNumber, "Maximum worker goroutines.")
	maxNumOffspringGenotypes := callFlags.Int("maxNumOffspringGenotypes", config.Default().MaxNumOffspringGenotypes, "Cap on enumerated offspring genotype combinations before subsampling.")
	offspringSeed := callFlags.Int64("offspringSeed", config.Default().OffspringSubsampleSeed, "RNG seed for offspring-genotype subsampling.")
	maxAlleles := callFlags.Int("maxAlleles", config.Default().MaxAlleles, "Maximum distinct CN values considered in a no-pedigree combination.")
	readCountsThreshold := callFlags.Int("readCountsThreshold", config.Default().DefaultReadCountsThreshold, "Minimum heterozygous SNV observations required per sample to run MCC assignment.")
	maxQScore := callFlags.Float64("maxQScore", config.Default().MaxQScore, "Maximum Phred-scaled quality score.")
	qualityFilterThreshold := callFlags.Float64("qualityFilterThreshold", config.Default().QualityFilterThreshold, "QS threshold below which the q{threshold} filter is applied.")
	deNovoQualityFilterThreshold := callFlags.Float64("deNovoQualityFilterThreshold", config.Default().DeNovoQualityFilterThreshold, "DQS threshold below which a de-novo call is not reported as high-confidence.")
	deNovoRate := callFlags.Float64("deNovoRate", config.Default().DeNovoRate, "De-novo rate parameter; stored in the run parameters but not read by the joint inference.")
	minimumCallSize := callFlags.Int("minimumCallSize", config.Default().MinimumCallSize, "Minimum bp length of a merged call.")
	maxMergeGapBp := callFlags.Int("maxMergeGapBp", config.Default().MaxMergeGapBp, "Maximum bp gap between adjacent same-CN segments that still merge.")
	debug := callFlags.Bool("debug", false, "Print an ASCII rendering of each sample's per-CN likelihood curve to stderr as segments are scored.")

	if err := callFlags.Parse(args); err != nil {
		errExit(err.Error())
	}
	if *segmentsFile == "" {
		errExit("call: -segments is required")
	}

	params := config.Params{
		MaxCN:                        *maxCN,
		MaxCoreNumber:                *maxCoreNumber,
		MaxNumOffspringGenotypes:     *maxNumOffspringGenotypes,
		OffspringSubsampleSeed:       *offspringSeed,
		MaxAlleles:                   *maxAlleles,
		DefaultReadCountsThreshold:   *readCountsThreshold,
		MaxQScore:                    *maxQScore,
		QualityFilterThreshold:       *qualityFilterThreshold,
		DeNovoQualityFilterThreshold: *deNovoQualityFilterThreshold,
		DeNovoRate:                   *deNovoRate,
		MinimumCallSize:              *minimumCallSize,
		MaxMergeGapBp:                *maxMergeGapBp,
		Debug:                        *debug,
	}
	if err := params.Validate(); err != nil {
		errExit(err.Error())
	}

	bySample, err := readSegmentsTSV(*segmentsFile)
	exception.PanicOnErr(err)

	ploidy, err := ploidybed.Load(*ploidyBedFile)
	exception.PanicOnErr(err)
	commonRegions, err := commoncnv.Load(*commonCNVFile)
	exception.PanicOnErr(err)

	var ped pedigree.Pedigree
	if *pedigreeFile != "" {
		ped, err = pedigree.Load(*pedigreeFile)
		exception.PanicOnErr(err)
	} else {
		for name := range bySample {
			ped.Probands = append(ped.Probands, sample.Sample{Name: name, Kin: sample.Proband})
		}
	}

	samples := buildSamples(ped, bySample, ploidy, params)
	finalSegs := runCohort(samples, bySample, commonRegions, params)
	merged := pedigree.Merge(sampleNames(samples), finalSegs, params)

	out := os.Stdout
	if *output != "stdout" {
		f, err := os.Create(*output)
		exception.PanicOnErr(err)
		defer f.Close()
		out = f
	}
	for _, s := range samples {
		recs := callset.Build(s.Name, merged[s.Name], params)
		for _, r := range recs {
			fmt.Fprintf(out, "%s\t%s\t%d\t%d\t%s\t%s\n", s.Name, r.Chr, r.Pos, r.Pos+len(r.Ref), r.Alt[0], r.Filter)
		}
	}
}

func sampleNames(samples []sample.Sample) []string {
	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.Name
	}
	return names
}

// buildSamples attaches each sample's computed mean coverage and depth
// model, then returns the working list in the order pedigree.md
// section 4.10 names: probands first, parents last
// (pedigree.Pedigree.Samples). Callers that need the two parents or
// the child/proband list specifically recover them by position via
// pedigreeAxis, not by assuming Parent1/Parent2 come first.
func buildSamples(ped pedigree.Pedigree, bySample map[string][]segment.Segment, ploidy *ploidybed.Tree, params config.Params) []sample.Sample {
	build := func(base sample.Sample) sample.Sample {
		segs := bySample[base.Name]
		mean := meanOfAllBins(segs)
		base.MeanCoverage = mean
		base.Ploidy = ploidy
		base.DepthModel = depth.NewFromBins(allBins(segs), mean, params.NumberOfTrimmedBins*4)
		return base
	}

	built := pedigree.Pedigree{}
	if ped.Parent1.Name != "" {
		built.Parent1 = build(ped.Parent1)
	}
	if ped.Parent2.Name != "" {
		built.Parent2 = build(ped.Parent2)
	}
	for _, p := range ped.Probands {
		built.Probands = append(built.Probands, build(p))
	}
	return built.Samples()
}

func meanOfAllBins(segs []segment.Segment) float64 {
	var sum float64
	var n int
	for _, s := range segs {
		for _, d := range s.BinDepths {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func allBins(segs []segment.Segment) []float64 {
	var out []float64
	for _, s := range segs {
		out = append(out, s.BinDepths...)
	}
	return out
}

// runCohort drives C8 (haplotype selection) and C4/C5/C6/C7 over every
// segment-set index via the C9 parallel driver, returning each
// sample's finalized, pre-merge segment list.
func runCohort(samples []sample.Sample, bySample map[string][]segment.Segment, commonRegions *commoncnv.Regions, params config.Params) map[string][]segment.Segment {
	byName := make(map[string]sample.Sample, len(samples))
	for _, s := range samples {
		byName[s.Name] = s
	}

	perSampleSets := make(map[string][]segment.SegmentSet, len(samples))
	for _, s := range samples {
		perSampleSets[s.Name] = segment.NewSegmentSets(bySample[s.Name], commonRegions)
	}

	n := 0
	for _, sets := range perSampleSets {
		if len(sets) > n {
			n = len(sets)
		}
	}
	canonical := make([]segment.SegmentSet, n)
	for i := 0; i < n; i++ {
		for _, s := range samples {
			if i < len(perSampleSets[s.Name]) {
				canonical[i] = perSampleSets[s.Name][i]
				break
			}
		}
	}

	pedigreeMode := samples != nil && hasParents(samples)

	var parentGenotypes []genotype.Genotype
	var offspring []genotype.OffspringSet
	var T [][]float64
	if pedigreeMode {
		T = transition.Matrix(params.MaxCN)
		parentGenotypes = genotype.ParentalGenotypes(params.MaxCN)
		nChildren := len(samples) - 2
		offspring = genotype.OffspringGenotypes(parentGenotypes, nChildren, params.MaxNumOffspringGenotypes, params.OffspringSubsampleSeed)
	}
	combos := genotype.CopyNumberCombinations(params.MaxCN, params.MaxAlleles)

	perIndex := make([][]sampleSegment, n)

	work := func(ctx context.Context, idx int, ped pedigree.Pedigree, set *segment.SegmentSet, params config.Params) error {
		processSet(idx, samples, byName, perSampleSets, perIndex, pedigreeMode, T, offspring, combos, params)
		return nil
	}

	ctx := context.Background()
	if err := call.Run(ctx, pedigree.Pedigree{Probands: samples}, canonical, params, work); err != nil {
		log.Printf("cnvcall: worker error: %v", err)
	}

	result := make(map[string][]segment.Segment, len(samples))
	for _, row := range perIndex {
		for _, ss := range row {
			result[ss.sampleName] = append(result[ss.sampleName], ss.seg)
		}
	}
	return result
}

func hasParents(samples []sample.Sample) bool {
	var parents int
	for _, s := range samples {
		if s.Kin == sample.Parent {
			parents++
		}
	}
	return parents == 2
}
