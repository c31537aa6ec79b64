package evaluate

import (
	"fmt"
	"io"
	"math"

	"paneval/internal/jsonutil"
	"paneval/pkg/api"
)

// WriteText renders a human-readable summary followed by per-target rows.
func (r Report) WriteText(w io.Writer) error {
	c := r.Confusion
	if _, err := fmt.Fprintf(w,
		"targets: %d  TP: %d  FP: %d  FN: %d  TN: %d  off-target: %d\n"+
			"accuracy: %s  sensitivity: %s  precision: %s  F1: %s  pearson_r: %s  log_mae: %s\n",
		c.Total(), c.TP, c.FP, c.FN, c.TN, r.OffTarget,
		pct(c.Accuracy()), pct(c.Sensitivity()), pct(c.Precision()), num(c.F1()), num(r.PearsonR), num(r.LogMAE),
	); err != nil {
		return err
	}
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%s\t%s:%d-%d\t%s\t%s\t%.3g\t%g\n",
			res.Target.Name,
			res.Target.SequenceID, res.Target.Start, res.Target.End,
			yn(res.Predicted), yn(res.Observed),
			res.Quantity, res.Target.Reads,
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV renders per-target rows with a header.
func (r Report) WriteTSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w,
		"target\tsequence_id\tstart\tend\tpredicted\tobserved\tquantity\treads"); err != nil {
		return err
	}
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%g\t%g\n",
			res.Target.Name, res.Target.SequenceID, res.Target.Start, res.Target.End,
			yn(res.Predicted), yn(res.Observed), res.Quantity, res.Target.Reads,
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the stable v1 summary schema.
func (r Report) WriteJSON(w io.Writer) error {
	c := r.Confusion
	return jsonutil.EncodePretty(w, api.EvaluationV1{
		Targets:     c.Total(),
		TP:          c.TP,
		FP:          c.FP,
		FN:          c.FN,
		TN:          c.TN,
		Accuracy:    finite(c.Accuracy()),
		Sensitivity: finite(c.Sensitivity()),
		Precision:   finite(c.Precision()),
		F1:          finite(c.F1()),
		PearsonR:    finite(r.PearsonR),
		LogMAE:      finite(r.LogMAE),
	})
}

func yn(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// finite maps NaN to zero so JSON encoding never fails.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
