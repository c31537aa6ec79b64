// Package stats provides the small set of descriptive statistics used to
// compare predicted amplification against observed coverage.
package stats

import "math"

// Pearson returns the sample correlation coefficient of x and y.
// It returns NaN when the inputs differ in length, hold fewer than two
// points, or either side has zero variance.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	n := float64(len(x))
	var sx, sy float64
	for i := range x {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/n, sy/n
	var cov, vx, vy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(vx*vy)
}

// Confusion tallies detection outcomes per target.
type Confusion struct {
	TP int // predicted and observed
	FP int // predicted, not observed
	FN int // observed, not predicted
	TN int // neither
}

func (c Confusion) Total() int { return c.TP + c.FP + c.FN + c.TN }

// Accuracy is the fraction of targets classified correctly.
func (c Confusion) Accuracy() float64 {
	if c.Total() == 0 {
		return math.NaN()
	}
	return float64(c.TP+c.TN) / float64(c.Total())
}

// Sensitivity is the fraction of observed targets that were predicted.
func (c Confusion) Sensitivity() float64 {
	if c.TP+c.FN == 0 {
		return math.NaN()
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// Precision is the fraction of predictions that were observed.
func (c Confusion) Precision() float64 {
	if c.TP+c.FP == 0 {
		return math.NaN()
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// F1 is the harmonic mean of precision and sensitivity.
func (c Confusion) F1() float64 {
	p, s := c.Precision(), c.Sensitivity()
	if math.IsNaN(p) || math.IsNaN(s) || p+s == 0 {
		return math.NaN()
	}
	return 2 * p * s / (p + s)
}

// MeanAbsError returns the mean absolute difference of paired values,
// NaN for empty or mismatched input.
func MeanAbsError(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return math.NaN()
	}
	var sum float64
	for i := range x {
		sum += math.Abs(x[i] - y[i])
	}
	return sum / float64(len(x))
}

// Log10p returns log10(v+1), the transform applied to read counts and
// quantities before correlation so spanning magnitudes compare sanely.
func Log10p(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return math.Log10(v + 1)
}
