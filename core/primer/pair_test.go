package primer

import "testing"

func TestPoolPairs(t *testing.T) {
	fwds := []Oligo{
		{ID: "f1", Seq: "ACGTACGTACGT", Concentration: 4e-7},
		{ID: "f2", Seq: "TTGGCCAATTGG", Concentration: 2.5e-7},
	}
	revs := []Oligo{
		{ID: "r1", Seq: "GGCCGGCCAATT", Concentration: 2.5e-7},
	}

	got := PoolPairs(fwds, revs, 50, 1200)
	if len(got) != 2 {
		t.Fatalf("PoolPairs: got %d pairs, want 2", len(got))
	}
	want := Pair{ID: "f1+r1", Forward: "ACGTACGTACGT", Reverse: "GGCCGGCCAATT", MinProduct: 50, MaxProduct: 1200}
	if got[0] != want {
		t.Errorf("PoolPairs[0] = %+v, want %+v", got[0], want)
	}
	if got[1].ID != "f2+r1" || got[1].Forward != "TTGGCCAATTGG" {
		t.Errorf("PoolPairs[1] = %+v", got[1])
	}
}

func TestPoolPairsEmptySide(t *testing.T) {
	if got := PoolPairs(nil, []Oligo{{ID: "r1", Seq: "ACGT"}}, 0, 0); len(got) != 0 {
		t.Errorf("PoolPairs with no forwards: got %d pairs, want 0", len(got))
	}
}
