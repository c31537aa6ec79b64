// Package evaluate scores predicted amplification against observed
// sequencing coverage: per-target detection outcomes plus correlation of
// predicted quantity with read counts.
package evaluate

import (
	"paneval-core/engine"
	"paneval-core/stats"
	"paneval/internal/common"
	"paneval/internal/coverage"
)

// Prediction is one predicted amplicon in reference-global coordinates.
type Prediction struct {
	PairID     string
	SequenceID string
	Start      int
	End        int
	Quantity   float64
}

// FromProduct converts an engine product, lifting chunk-local coordinates
// back to the reference.
func FromProduct(p engine.Product) Prediction {
	base, off, ok := common.SplitChunkSuffix(p.SequenceID)
	if !ok {
		base = p.SequenceID
		off = 0
	}
	return Prediction{
		PairID:     p.PairID,
		SequenceID: base,
		Start:      p.Start + off,
		End:        p.End + off,
		Quantity:   p.Quantity,
	}
}

// Options tune target matching.
type Options struct {
	// MinOverlap is the minimum reciprocal overlap fraction: the overlap
	// must cover at least this fraction of the target and of the
	// prediction. Zero means any overlap of one base or more matches.
	MinOverlap float64
	// MinReads is the read count at or above which a target counts as
	// observed.
	MinReads float64
}

func (o Options) withDefaults() Options {
	if o.MinReads <= 0 {
		o.MinReads = 1
	}
	return o
}

// TargetResult is the per-target outcome.
type TargetResult struct {
	Target    coverage.Target
	Predicted bool
	Observed  bool
	Quantity  float64 // summed over matching predictions
}

// Report is a full evaluation of one panel run.
type Report struct {
	Results   []TargetResult
	Confusion stats.Confusion
	PearsonR  float64 // log-transformed quantity vs reads, detected targets
	LogMAE    float64 // mean absolute error of the same log-transformed pairs
	OffTarget int     // predictions matching no panel target
}

// Evaluate matches predictions to targets by genomic overlap and tallies
// detection outcomes. Correlation uses log10(x+1) on both sides and only
// targets where both a prediction and reads exist.
func Evaluate(preds []Prediction, targets []coverage.Target, opts Options) Report {
	opts = opts.withDefaults()
	rep := Report{Results: make([]TargetResult, len(targets))}
	matched := make([]bool, len(preds))

	for i, tg := range targets {
		res := TargetResult{Target: tg, Observed: tg.Reads >= opts.MinReads}
		needTg := opts.MinOverlap * float64(tg.End-tg.Start)
		for j, p := range preds {
			if p.SequenceID != tg.SequenceID {
				continue
			}
			needPred := opts.MinOverlap * float64(p.End-p.Start)
			if ov := overlap(p.Start, p.End, tg.Start, tg.End); ov > 0 &&
				float64(ov) >= needTg && float64(ov) >= needPred {
				res.Predicted = true
				res.Quantity += p.Quantity
				matched[j] = true
			}
		}
		rep.Results[i] = res
		switch {
		case res.Predicted && res.Observed:
			rep.Confusion.TP++
		case res.Predicted && !res.Observed:
			rep.Confusion.FP++
		case !res.Predicted && res.Observed:
			rep.Confusion.FN++
		default:
			rep.Confusion.TN++
		}
	}
	for _, m := range matched {
		if !m {
			rep.OffTarget++
		}
	}

	var qs, rs []float64
	for _, res := range rep.Results {
		if res.Predicted && res.Observed {
			qs = append(qs, stats.Log10p(res.Quantity*1e9)) // nM scale
			rs = append(rs, stats.Log10p(res.Target.Reads))
		}
	}
	rep.PearsonR = stats.Pearson(qs, rs)
	rep.LogMAE = stats.MeanAbsError(qs, rs)
	return rep
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo, hi := aStart, aEnd
	if bStart > lo {
		lo = bStart
	}
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
