package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"paneval-core/engine"
	"paneval/pkg/api"
)

func sample() engine.Product {
	return engine.Product{
		PairID:         "pairA",
		SequenceID:     "chr1",
		SourceFile:     "ref.fa",
		Start:          10,
		End:            110,
		Length:         100,
		Type:           "forward",
		FwdMM:          1,
		FwdMismatchIdx: []int{3},
		Quantity:       2.5e-8,
		Cycles:         30,
		Seq:            "ACGT",
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, []engine.Product{sample()}, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if lines[0] != TSVHeader {
		t.Fatalf("header = %q", lines[0])
	}
	cols := strings.Split(lines[1], "\t")
	want := strings.Count(TSVHeader, "\t") + 1
	if len(cols) != want {
		t.Fatalf("row has %d columns, header has %d", len(cols), want)
	}
	if cols[2] != "pairA" || cols[3] != "10" || cols[4] != "110" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, []engine.Product{sample()}); err != nil {
		t.Fatal(err)
	}
	var got []api.ProductV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PairID != "pairA" || got[0].Quantity != 2.5e-8 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	p := sample()
	if err := WriteFASTA(&buf, []engine.Product{p}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, ">pairA_1 start=10 end=110 len=100") {
		t.Fatalf("header line = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "\nACGT\n") {
		t.Fatalf("sequence missing: %q", out)
	}

	buf.Reset()
	p.Seq = ""
	if err := WriteFASTA(&buf, []engine.Product{p}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatal("products without sequence should be skipped")
	}
}

func TestIntsCSV(t *testing.T) {
	if got := IntsCSV([]int{1, 2, 3}); got != "1,2,3" {
		t.Fatalf("IntsCSV = %q", got)
	}
	if got := IntsCSV(nil); got != "" {
		t.Fatalf("IntsCSV(nil) = %q", got)
	}
}
