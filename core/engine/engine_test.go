package engine

import (
	"testing"

	"paneval-core/primer"
)

// template: FWD site at 2, rc(REV) site at 14
//
//	  ACGTAC            GTCAGT (= rc of ACTGAC)
//	NN......NNNNNN......NN
const tmpl = "TTACGTACAAAAAAGTCAGTTT"

func TestSimulateForward(t *testing.T) {
	e := New(Config{MaxLen: 100, NeedSites: true})
	prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACGTAC", Reverse: "ACTGAC"})
	if len(prods) != 1 {
		t.Fatalf("got %d products, want 1", len(prods))
	}
	p := prods[0]
	if p.Start != 2 || p.End != 20 || p.Length != 18 || p.Type != "forward" {
		t.Errorf("bad product: %+v", p)
	}
	if p.FwdSite != "ACGTAC" || p.RevSite != "ACTGAC" {
		t.Errorf("sites: %q %q", p.FwdSite, p.RevSite)
	}
}

func TestSimulateLengthBounds(t *testing.T) {
	e := New(Config{MinLen: 19})
	if prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACGTAC", Reverse: "ACTGAC"}); len(prods) != 0 {
		t.Fatalf("min bound ignored: %d products", len(prods))
	}
	e = New(Config{MaxLen: 17})
	if prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACGTAC", Reverse: "ACTGAC"}); len(prods) != 0 {
		t.Fatalf("max bound ignored: %d products", len(prods))
	}
}

func TestSimulateRevcompOrientation(t *testing.T) {
	// Swap the primers; the same region is then reported as "revcomp".
	e := New(Config{MaxLen: 100})
	prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACTGAC", Reverse: "ACGTAC"})
	if len(prods) != 1 || prods[0].Type != "revcomp" {
		t.Fatalf("got %+v, want one revcomp product", prods)
	}
}

func TestSimulateMismatchAnnotation(t *testing.T) {
	e := New(Config{MaxMM: 1, MaxLen: 100})
	// Forward primer with one internal mismatch against the template.
	prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACTTAC", Reverse: "ACTGAC"})
	if len(prods) != 1 {
		t.Fatalf("got %d products, want 1", len(prods))
	}
	p := prods[0]
	if p.FwdMM != 1 || len(p.FwdMismatchIdx) != 1 || p.FwdMismatchIdx[0] != 2 {
		t.Errorf("fwd mismatch annotation: %+v", p)
	}
	if p.Fwd3Mismatch {
		t.Error("internal mismatch flagged as 3'-terminal")
	}
}

func TestSimulateRev3Mismatch(t *testing.T) {
	// Reverse primer whose 3'-terminal base mismatches: rc appears on the
	// forward strand with the mismatch at index 0.
	e := New(Config{MaxMM: 1, MaxLen: 100})
	prods := e.Simulate("s", []byte(tmpl), primer.Pair{ID: "p1", Forward: "ACGTAC", Reverse: "ACTGAA"})
	if len(prods) != 1 {
		t.Fatalf("got %d products, want 1", len(prods))
	}
	if !prods[0].Rev3Mismatch {
		t.Error("expected reverse 3'-terminal mismatch flag")
	}
}

func TestSimulateBatch(t *testing.T) {
	e := New(Config{MaxLen: 100})
	pairs := []primer.Pair{
		{ID: "a", Forward: "ACGTAC", Reverse: "ACTGAC"},
		{ID: "b", Forward: "GGGGGG", Reverse: "CCCCCC"}, // absent
	}
	prods := e.SimulateBatch("s", []byte(tmpl), pairs)
	if len(prods) != 1 || prods[0].PairID != "a" {
		t.Fatalf("batch: %+v", prods)
	}
}
