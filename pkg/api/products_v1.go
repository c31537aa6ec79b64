// Package api holds the stable wire schemas for machine-readable output.
package api

// ProductV1 is the stable JSON/JSONL schema for predicted amplicons.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProductV1 struct {
	PairID         string  `json:"pair_id"`
	SequenceID     string  `json:"sequence_id"`
	Start          int     `json:"start"`
	End            int     `json:"end"`
	Length         int     `json:"length"`
	Type           string  `json:"type"` // "forward" | "revcomp"
	FwdMM          int     `json:"fwd_mm,omitempty"`
	RevMM          int     `json:"rev_mm,omitempty"`
	FwdMismatchIdx []int   `json:"fwd_mm_i,omitempty"`
	RevMismatchIdx []int   `json:"rev_mm_i,omitempty"`
	Quantity       float64 `json:"quantity,omitempty"` // mol/L at reaction end
	Cycles         int     `json:"cycles,omitempty"`
	Seq            string  `json:"seq,omitempty"`
	SourceFile     string  `json:"source_file,omitempty"`
}

// EvaluationV1 is the stable schema for a panel evaluation report.
type EvaluationV1 struct {
	Targets     int     `json:"targets"`
	TP          int     `json:"tp"`
	FP          int     `json:"fp"`
	FN          int     `json:"fn"`
	TN          int     `json:"tn"`
	Accuracy    float64 `json:"accuracy"`
	Sensitivity float64 `json:"sensitivity"`
	Precision   float64 `json:"precision"`
	F1          float64 `json:"f1"`
	PearsonR    float64 `json:"pearson_r"`
	LogMAE      float64 `json:"log_mae"`
}
