package genotype

import "testing"

func TestParentalGenotypes(t *testing.T) {
	maxCN := 5
	gs := ParentalGenotypes(maxCN)
	want := maxCN * (maxCN + 1) / 2
	if len(gs) != want {
		t.Errorf("ParentalGenotypes(%d) length = %d, want %d", maxCN, len(gs), want)
	}
	for _, g := range gs {
		if g.Total() >= maxCN {
			t.Errorf("genotype %+v has total >= maxCN", g)
		}
	}
	// deterministic order: ascending total, then ascending a
	if gs[0] != (Genotype{0, 0}) {
		t.Errorf("first genotype = %+v, want (0,0)", gs[0])
	}
	if gs[1] != (Genotype{0, 1}) || gs[2] != (Genotype{1, 0}) {
		t.Errorf("unexpected order at totals=1: %+v %+v", gs[1], gs[2])
	}
}

func TestOffspringGenotypesExhaustive(t *testing.T) {
	parents := ParentalGenotypes(3)
	k := 2
	cap := len(parents)*len(parents) + 10 // comfortably above the exact product
	sets := OffspringGenotypes(parents, k, cap, 1)
	if len(sets) != len(parents)*len(parents) {
		t.Errorf("expected exhaustive enumeration of %d, got %d", len(parents)*len(parents), len(sets))
	}
}

func TestOffspringGenotypesSubsampleReproducible(t *testing.T) {
	parents := ParentalGenotypes(5)
	k := 3
	cap := 50
	a := OffspringGenotypes(parents, k, cap, 42)
	b := OffspringGenotypes(parents, k, cap, 42)
	if len(a) != cap || len(b) != cap {
		t.Fatalf("expected exactly %d entries, got %d and %d", cap, len(a), len(b))
	}
	for i := range a {
		if len(a[i].Genotypes) != len(b[i].Genotypes) {
			t.Fatalf("mismatched shapes at %d", i)
		}
		for j := range a[i].Genotypes {
			if a[i].Genotypes[j] != b[i].Genotypes[j] {
				t.Errorf("same seed produced different subsample at [%d][%d]: %+v vs %+v", i, j, a[i].Genotypes[j], b[i].Genotypes[j])
			}
		}
	}
}

func TestOffspringGenotypesZeroChildren(t *testing.T) {
	parents := ParentalGenotypes(5)
	sets := OffspringGenotypes(parents, 0, 500, 1)
	if len(sets) != 1 || len(sets[0].Genotypes) != 0 {
		t.Errorf("k=0 should produce a single empty set, got %+v", sets)
	}
}

func TestCopyNumberCombinationsNoDuplicatesAndSingletons(t *testing.T) {
	maxCN, maxAlleles := 5, 2
	combos := CopyNumberCombinations(maxCN, maxAlleles)
	seen := make(map[string]bool)
	for _, c := range combos {
		key := comboKey(c)
		if seen[key] {
			t.Errorf("duplicate combination: %v", c)
		}
		seen[key] = true
	}
	for c := 0; c < maxCN; c++ {
		if !seen[comboKey([]int{c})] {
			t.Errorf("missing singleton {%d}", c)
		}
	}
}

func TestCNAlleleSet(t *testing.T) {
	cases := []struct {
		cn   int
		want []int
	}{
		{0, []int{0}},
		{1, []int{0, 1}},
		{2, []int{1, 2}},
		{4, []int{1, 2, 3, 4}},
	}
	for _, c := range cases {
		got := CNAlleleSet(c.cn)
		if len(got) != len(c.want) {
			t.Errorf("CNAlleleSet(%d) = %v, want %v", c.cn, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("CNAlleleSet(%d) = %v, want %v", c.cn, got, c.want)
				break
			}
		}
	}
}

func TestGenotypesByCN(t *testing.T) {
	maxCN := 5
	gbc := GenotypesByCN(maxCN)
	for cn, gs := range gbc {
		if len(gs) != cn+1 {
			t.Errorf("GenotypesByCN[%d] length = %d, want %d", cn, len(gs), cn+1)
		}
		for _, g := range gs {
			if g.Total() != cn {
				t.Errorf("genotype %+v in bucket %d has wrong total", g, cn)
			}
		}
	}
}
