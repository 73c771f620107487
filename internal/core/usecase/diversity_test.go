package usecase

import (
	"reflect"
	"testing"
)

func adjustedFixture() adjustedList {
	list := adjustedList{
		statuteCandidate("bns-a", "BNS", "100", 0.9),
		statuteCandidate("bns-b", "BNS", "101", 0.9),
		statuteCandidate("bns-c", "BNS", "102", 0.9),
		precedentCandidate("judg-1", "(2021) 5 SCC 200", 0.8),
	}
	scores := []float64{1.0, 0.95, 0.9, 0.5}
	for i := range list {
		list[i].AdjustedScore = scores[i]
	}
	return list
}

func TestSelectDiverseZeroFactorIsIdentity(t *testing.T) {
	in := adjustedFixture()
	out := selectDiverse(in, 3, 0)

	want := selectedList(in[:3])
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("zero diversity factor must be a byte-identical head copy\n got: %+v\nwant: %+v", out, want)
	}
}

func TestSelectDiversePenalizesCrowding(t *testing.T) {
	in := adjustedFixture()
	out := selectDiverse(in, 2, 0.5)

	if len(out) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(out))
	}
	if out[0].ID != "bns-a" {
		t.Fatalf("first pick must be the top adjusted candidate, got %s", out[0].ID)
	}
	// bns-b: 0.5*0.95 - 0.5*1.0 < judg-1: 0.5*0.5 - 0.5*0.2
	if out[1].ID != "judg-1" {
		t.Fatalf("expected the dissimilar judgment chunk second, got %s", out[1].ID)
	}
}

func TestSelectDiverseRespectsPoolExhaustion(t *testing.T) {
	in := adjustedFixture()

	all := selectDiverse(in, 10, 0.3)
	if len(all) != len(in) {
		t.Fatalf("expected all %d candidates when topK exceeds pool, got %d", len(in), len(all))
	}

	seen := map[string]bool{}
	for _, c := range all {
		if seen[c.ID] {
			t.Fatalf("candidate %s selected twice", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestSelectDiverseInventsNothing(t *testing.T) {
	in := adjustedFixture()
	out := selectDiverse(in, 3, 0.7)

	inIDs := map[string]bool{}
	for _, c := range in {
		inIDs[c.ID] = true
	}
	for _, c := range out {
		if !inIDs[c.ID] {
			t.Fatalf("diversity selector invented candidate %q", c.ID)
		}
	}
}
