package stats

import (
	"math"
	"testing"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"perfect positive", []float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, 1},
		{"perfect negative", []float64{1, 2, 3, 4}, []float64{8, 6, 4, 2}, -1},
		{"uncorrelated", []float64{1, 2, 1, 2}, []float64{1, 1, 2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pearson(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Pearson = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPearsonDegenerate(t *testing.T) {
	cases := [][2][]float64{
		{{1}, {1}},
		{{}, {}},
		{{1, 2}, {1, 2, 3}},
		{{1, 1, 1}, {1, 2, 3}}, // zero variance
	}
	for _, c := range cases {
		if got := Pearson(c[0], c[1]); !math.IsNaN(got) {
			t.Fatalf("Pearson(%v, %v) = %g, want NaN", c[0], c[1], got)
		}
	}
}

func TestConfusion(t *testing.T) {
	c := Confusion{TP: 6, FP: 2, FN: 1, TN: 1}
	if got := c.Accuracy(); math.Abs(got-0.7) > 1e-12 {
		t.Fatalf("Accuracy = %g, want 0.7", got)
	}
	if got := c.Sensitivity(); math.Abs(got-6.0/7.0) > 1e-12 {
		t.Fatalf("Sensitivity = %g", got)
	}
	if got := c.Precision(); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("Precision = %g", got)
	}
	p, s := 0.75, 6.0/7.0
	if got := c.F1(); math.Abs(got-2*p*s/(p+s)) > 1e-12 {
		t.Fatalf("F1 = %g", got)
	}
}

func TestConfusionEmpty(t *testing.T) {
	var c Confusion
	for name, got := range map[string]float64{
		"Accuracy":    c.Accuracy(),
		"Sensitivity": c.Sensitivity(),
		"Precision":   c.Precision(),
		"F1":          c.F1(),
	} {
		if !math.IsNaN(got) {
			t.Fatalf("%s on empty confusion = %g, want NaN", name, got)
		}
	}
}

func TestMeanAbsError(t *testing.T) {
	if got := MeanAbsError([]float64{1, 2, 3}, []float64{2, 2, 1}); math.Abs(got-1) > 1e-12 {
		t.Fatalf("MeanAbsError = %g, want 1", got)
	}
	if !math.IsNaN(MeanAbsError(nil, nil)) {
		t.Fatal("empty input should give NaN")
	}
}

func TestLog10p(t *testing.T) {
	if got := Log10p(99); math.Abs(got-2) > 1e-12 {
		t.Fatalf("Log10p(99) = %g, want 2", got)
	}
	if got := Log10p(0); got != 0 {
		t.Fatalf("Log10p(0) = %g, want 0", got)
	}
	if got := Log10p(-5); got != 0 {
		t.Fatalf("Log10p(-5) = %g, want 0", got)
	}
}
