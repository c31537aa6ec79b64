package sim

import (
	"math"
	"strings"
	"testing"

	"paneval-core/primer"
)

func testConditions() Conditions {
	return Conditions{
		AnnealC:      55,
		Na:           0.05,
		Mg:           0.0015,
		DNTP:         200e-6,
		DNA:          1e-10,
		PolymeraseUL: 25000,
		Cycles:       30,
		MaxAmplicon:  3000,
	}
}

const (
	fwdSeq = "ACGTTGGCCAATGCACTGAT"
	revSeq = "TGCAACGGTTACGGATCCAT"
)

func addPair(t *testing.T, r *Reaction, key string, length int) bool {
	t.Helper()
	f := primer.Oligo{ID: "f", Seq: fwdSeq, Concentration: 250e-9}
	v := primer.Oligo{ID: "r", Seq: revSeq, Concentration: 250e-9}
	r.AddPrimer(f)
	r.AddPrimer(v)
	af, err := r.NewAnnealing(f, fwdSeq)
	if err != nil {
		t.Fatalf("fwd annealing: %v", err)
	}
	ar, err := r.NewAnnealing(v, revSeq)
	if err != nil {
		t.Fatalf("rev annealing: %v", err)
	}
	return r.AddProduct(key, "chr1", 100, 100+length, []Annealing{af}, []Annealing{ar})
}

func TestRunAmplifies(t *testing.T) {
	r := New(testConditions())
	if !addPair(t, r, "chr1:100-600", 500) {
		t.Fatal("product rejected")
	}
	out := r.Run()
	if len(out.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(out.Products))
	}
	p := out.Products[0]
	if p.Quantity <= 0 {
		t.Fatalf("quantity = %g, want > 0", p.Quantity)
	}
	if p.Quantity <= r.cond.DNA {
		t.Fatalf("quantity %g did not exceed template concentration %g", p.Quantity, r.cond.DNA)
	}
	if out.CyclesRun < seedCycles {
		t.Fatalf("CyclesRun = %d", out.CyclesRun)
	}
}

func TestMoreCyclesMoreProduct(t *testing.T) {
	short := testConditions()
	short.Cycles = 10
	long := testConditions()
	long.Cycles = 15

	r1 := New(short)
	addPair(t, r1, "p", 500)
	r2 := New(long)
	addPair(t, r2, "p", 500)

	q1 := r1.Run().Products[0].Quantity
	q2 := r2.Run().Products[0].Quantity
	if q2 <= q1 {
		t.Fatalf("15 cycles gave %g, 10 cycles gave %g", q2, q1)
	}
}

func TestPrimerDepletionCapsQuantity(t *testing.T) {
	cond := testConditions()
	cond.Cycles = 40
	r := New(cond)
	f := primer.Oligo{ID: "f", Seq: fwdSeq, Concentration: 1e-9}
	v := primer.Oligo{ID: "r", Seq: revSeq, Concentration: 1e-9}
	r.AddPrimer(f)
	r.AddPrimer(v)
	af, _ := r.NewAnnealing(f, fwdSeq)
	ar, _ := r.NewAnnealing(v, revSeq)
	if !r.AddProduct("p", "chr1", 0, 500, []Annealing{af}, []Annealing{ar}) {
		t.Fatal("product rejected")
	}
	out := r.Run()
	if len(out.Products) == 1 && out.Products[0].Quantity > 1e-9 {
		t.Fatalf("quantity %g exceeds total primer pool", out.Products[0].Quantity)
	}
	if len(out.DepletedPrimers) == 0 && !out.Saturated {
		t.Fatal("expected primer depletion or saturation")
	}
}

func TestTerminal3MismatchRejectedWithoutExonuclease(t *testing.T) {
	// last base of the site does not pair with the primer 3' end
	site := fwdSeq[:len(fwdSeq)-1] + "C"

	r := New(testConditions())
	f := primer.Oligo{ID: "f", Seq: fwdSeq, Concentration: 250e-9}
	v := primer.Oligo{ID: "r", Seq: revSeq, Concentration: 250e-9}
	r.AddPrimer(f)
	r.AddPrimer(v)
	af, err := r.NewAnnealing(f, site)
	if err != nil {
		t.Fatal(err)
	}
	if !af.Duplex.Terminal3Mismatch() {
		t.Fatal("test site should mismatch at the 3' end")
	}
	ar, _ := r.NewAnnealing(v, revSeq)
	if r.AddProduct("p", "chr1", 0, 500, []Annealing{af}, []Annealing{ar}) {
		t.Fatal("3'-mismatched product admitted without proofreading polymerase")
	}

	cond := testConditions()
	cond.WithExonuclease = true
	r2 := New(cond)
	r2.AddPrimer(f)
	r2.AddPrimer(v)
	af2, _ := r2.NewAnnealing(f, site)
	ar2, _ := r2.NewAnnealing(v, revSeq)
	if af2.K >= cond.minK() {
		if !r2.AddProduct("p", "chr1", 0, 500, []Annealing{af2}, []Annealing{ar2}) {
			t.Fatal("proofreading polymerase should admit the 3'-mismatched product")
		}
	}
}

func TestWeakDuplexRejected(t *testing.T) {
	cond := testConditions()
	cond.AnnealC = 95 // far above any short duplex melting point
	r := New(cond)
	f := primer.Oligo{ID: "f", Seq: "ACGTACGT", Concentration: 250e-9}
	r.AddPrimer(f)
	af, err := r.NewAnnealing(f, "ACGTACGT")
	if err != nil {
		t.Fatal(err)
	}
	if af.K >= cond.minK() {
		t.Skipf("K = %g unexpectedly high", af.K)
	}
	if r.AddProduct("p", "chr1", 0, 100, []Annealing{af}, []Annealing{af}) {
		t.Fatal("admitted a duplex below the equilibrium floor")
	}
}

func TestDuplexConc(t *testing.T) {
	// strong binding exhausts the limiting component
	d := duplexConc(1e12, 250e-9, 1e-10)
	if math.Abs(d-1e-10)/1e-10 > 0.01 {
		t.Fatalf("strong K: d = %g, want ~1e-10", d)
	}
	// weak binding tracks K·P·T
	d = duplexConc(10, 250e-9, 1e-10)
	want := 10 * 250e-9 * 1e-10
	if math.Abs(d-want)/want > 0.05 {
		t.Fatalf("weak K: d = %g, want ~%g", d, want)
	}
	if duplexConc(0, 1, 1) != 0 || duplexConc(10, 0, 1) != 0 {
		t.Fatal("degenerate inputs should give zero")
	}
}

func TestReports(t *testing.T) {
	products := []*Product{
		{Key: "a", Length: 500, Quantity: 1e-7},
		{Key: "b", Length: 1500, Quantity: 3e-8},
	}
	h := Histogram(products)
	if !strings.Contains(h, "a") || !strings.Contains(h, "b") {
		t.Fatalf("histogram missing products:\n%s", h)
	}
	if strings.Index(h, "a") > strings.Index(h, "b") {
		t.Fatal("histogram should list the most abundant product first")
	}
	if !strings.Contains(h, "100.00 nM") || !strings.Contains(h, "30.00 nM") {
		t.Fatalf("histogram should print SI-prefixed concentrations:\n%s", h)
	}
	gel := Electrophoresis(products)
	if !strings.Contains(gel, "bp |") {
		t.Fatalf("gel lane missing bands:\n%s", gel)
	}
	if Histogram(nil) != "no products\n" || Electrophoresis(nil) != "no products\n" {
		t.Fatal("empty input should render a placeholder")
	}
}
