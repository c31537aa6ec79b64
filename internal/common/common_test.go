package common

import (
	"reflect"
	"testing"

	"paneval-core/engine"
)

func TestSplitChunkSuffix(t *testing.T) {
	tests := []struct {
		in    string
		base  string
		start int
		ok    bool
	}{
		{"chr1:100-200", "chr1", 100, true},
		{"chr1", "chr1", 0, false},
		{"chr1:abc-200", "chr1:abc-200", 0, false},
		{"a:b:300-400", "a:b", 300, true},
		{"chr1:", "chr1:", 0, false},
	}
	for _, tt := range tests {
		base, start, ok := SplitChunkSuffix(tt.in)
		if base != tt.base || start != tt.start || ok != tt.ok {
			t.Errorf("SplitChunkSuffix(%q) = %q,%d,%v want %q,%d,%v",
				tt.in, base, start, ok, tt.base, tt.start, tt.ok)
		}
	}
}

func TestSortProducts(t *testing.T) {
	ps := []engine.Product{
		{SequenceID: "b", Start: 5},
		{SequenceID: "a", Start: 9},
		{SequenceID: "a", Start: 2, End: 10},
		{SequenceID: "a", Start: 2, End: 4},
	}
	SortProducts(ps)
	got := make([][3]interface{}, len(ps))
	for i, p := range ps {
		got[i] = [3]interface{}{p.SequenceID, p.Start, p.End}
	}
	want := [][3]interface{}{
		{"a", 2, 4}, {"a", 2, 10}, {"a", 9, 0}, {"b", 5, 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}
