package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"paneval-core/engine"
	"paneval-core/primer"
)

// fakeSim reports one fixed product per chunk it sees.
type fakeSim struct{}

func (fakeSim) SimulateBatch(seqID string, seq []byte, pairs []primer.Pair) []engine.Product {
	return []engine.Product{{
		PairID:     "p1",
		SequenceID: seqID,
		Start:      0,
		End:        2,
		Length:     2,
		Type:       "forward",
	}}
}

func writeFASTA(t *testing.T, seq string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.fa")
	if err := os.WriteFile(path, []byte(">s\n"+seq+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestForEachProductDedup(t *testing.T) {
	// 16-base record chunked into overlapping windows: every chunk reports a
	// product at local [0,2); globally distinct offsets stay, duplicates at
	// identical global coordinates would collapse.
	path := writeFASTA(t, "ACGTACGTACGTACGT")
	var got []engine.Product
	err := ForEachProduct(context.Background(),
		Config{Threads: 2, ChunkSize: 8, Overlap: 4},
		[]string{path}, nil, fakeSim{},
		func(p engine.Product) error {
			got = append(got, p)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d products, want 4 (one per chunk)", len(got))
	}

	// same record scanned twice in one file list: global keys repeat
	got = nil
	err = ForEachProduct(context.Background(),
		Config{Threads: 2, ChunkSize: 0},
		[]string{path, path}, nil, fakeSim{},
		func(p engine.Product) error {
			got = append(got, p)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d products, want 1 after dedup", len(got))
	}
}

func TestForEachProductVisitError(t *testing.T) {
	path := writeFASTA(t, "ACGTACGT")
	boom := errors.New("boom")
	err := ForEachProduct(context.Background(),
		Config{Threads: 1},
		[]string{path}, nil, fakeSim{},
		func(engine.Product) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestForEachProductMissingFile(t *testing.T) {
	err := ForEachProduct(context.Background(),
		Config{Threads: 1},
		[]string{"/nonexistent/ref.fa"}, nil, fakeSim{},
		func(engine.Product) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
