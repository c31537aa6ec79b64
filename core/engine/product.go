package engine

// Product is a predicted amplicon. Coordinates are 0-based half-open on the
// forward strand of the template record and include both primer footprints.
type Product struct {
	PairID     string `json:"pair_id"`
	SequenceID string `json:"sequence_id"`
	SourceFile string `json:"source_file,omitempty"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Length     int    `json:"length"`
	Type       string `json:"type"` // "forward" or "revcomp"

	FwdMM          int   `json:"fwd_mm"`
	RevMM          int   `json:"rev_mm"`
	FwdMismatchIdx []int `json:"fwd_mismatch_idx,omitempty"`
	RevMismatchIdx []int `json:"rev_mismatch_idx,omitempty"`

	// 3'-terminal mismatch on either primer; such products only amplify
	// with a proofreading polymerase.
	Fwd3Mismatch bool `json:"fwd_3_mismatch,omitempty"`
	Rev3Mismatch bool `json:"rev_3_mismatch,omitempty"`

	// primer sequences and their annealing sites (5'→3'), for the
	// thermodynamic reaction model
	FwdPrimer string `json:"-"`
	RevPrimer string `json:"-"`
	FwdSite   string `json:"-"`
	RevSite   string `json:"-"`

	// optional amplicon sequence
	Seq string `json:"seq,omitempty"`

	// filled by the reaction simulation
	Quantity float64 `json:"quantity,omitempty"` // mol/L at reaction end
	Cycles   int     `json:"cycles,omitempty"`   // last cycle still synthesizing
}
