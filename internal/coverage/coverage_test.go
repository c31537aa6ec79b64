package coverage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	in := strings.Join([]string{
		"# panel run 12",
		"target\tsequence_id\tstart\tend\treads",
		"ampl_1\tchr1\t100\t250\t1532",
		"ampl_2\tchr2\t0\t180\t0",
		"",
	}, "\n")
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Target{
		{Name: "ampl_1", SequenceID: "chr1", Start: 100, End: 250, Reads: 1532},
		{Name: "ampl_2", SequenceID: "chr2", Start: 0, End: 180, Reads: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few columns", "a\tchr1\t1\t2"},
		{"bad start", "a\tchr1\tx\t2\t10"},
		{"bad end", "a\tchr1\t1\ty\t10"},
		{"inverted interval", "a\tchr1\t50\t40\t10"},
		{"negative reads", "a\tchr1\t1\t2\t-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.in)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/coverage.tsv"); err == nil {
		t.Fatal("expected error")
	}
}
