package primer

import "testing"

func TestFindMatches(t *testing.T) {
	seq := []byte("ACGTACGTACGT")

	tests := []struct {
		name         string
		primer       string
		maxMM        int
		termWin      int
		wantCount    int
		wantFirstPos int
	}{
		{"perfect match", "ACG", 0, 0, 3, 0},
		{"one mismatch allowed", "AGG", 1, 0, 3, 0},
		{"exceed mismatch threshold", "AGG", 0, 0, 0, -1},
		{"3prime mismatch disallowed", "ACA", 1, 1, 0, -1},
		{"IUPAC degeneracy", "ACN", 0, 0, 3, 0},
	}

	for _, tc := range tests {
		hits := FindMatches(seq, []byte(tc.primer), tc.maxMM, 0, tc.termWin)
		if len(hits) != tc.wantCount {
			t.Errorf("%s: got %d hits, want %d", tc.name, len(hits), tc.wantCount)
		}
		if tc.wantCount > 0 && hits[0].Pos != tc.wantFirstPos {
			t.Errorf("%s: first match pos %d, want %d", tc.name, hits[0].Pos, tc.wantFirstPos)
		}
	}
}

func TestFindMatchesHitCap(t *testing.T) {
	seq := []byte("AAAAAAAAAA")
	hits := FindMatches(seq, []byte("AA"), 0, 3, 0)
	if len(hits) != 3 {
		t.Fatalf("hit cap: got %d hits, want 3", len(hits))
	}
}

func TestFindMatchesTemplateN(t *testing.T) {
	// N in the template is a hard mismatch even for primer N.
	hits := FindMatches([]byte("ANGT"), []byte("ANG"), 0, 0, 0)
	if len(hits) != 0 {
		t.Fatalf("template N must not match, got %d hits", len(hits))
	}
}

func TestTerminal3Mismatch(t *testing.T) {
	hits := FindMatches([]byte("ACGT"), []byte("ACGA"), 1, 0, 0)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if !hits[0].Terminal3Mismatch() {
		t.Error("expected a 3'-terminal mismatch")
	}
	hits = FindMatches([]byte("ACGT"), []byte("AGGT"), 1, 0, 0)
	if len(hits) != 1 || hits[0].Terminal3Mismatch() {
		t.Error("internal mismatch flagged as 3'-terminal")
	}
}
