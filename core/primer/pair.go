package primer

// Oligo is one primer of a multiplex pool. Concentration is the total
// concentration of the (possibly degenerate) oligo in mol/L; components of a
// degenerate primer share it evenly.
type Oligo struct {
	ID            string
	Seq           string // 5'→3'
	Concentration float64
}

// Pair couples a forward and a reverse primer for product prediction.
// Min/MaxProduct of 0 defer to the engine-wide bounds.
type Pair struct {
	ID         string
	Forward    string // binds the forward strand, 5'→3'
	Reverse    string // binds the reverse strand, 5'→3'
	MinProduct int
	MaxProduct int
}

// PoolPairs expands a pool into all forward × reverse combinations, the way a
// multiplex reaction actually mixes them.
func PoolPairs(fwds, revs []Oligo, minLen, maxLen int) []Pair {
	out := make([]Pair, 0, len(fwds)*len(revs))
	for _, f := range fwds {
		for _, r := range revs {
			out = append(out, Pair{
				ID:         f.ID + "+" + r.ID,
				Forward:    f.Seq,
				Reverse:    r.Seq,
				MinProduct: minLen,
				MaxProduct: maxLen,
			})
		}
	}
	return out
}
