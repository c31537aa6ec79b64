// Package engine predicts PCR products by locating annealing sites of primer
// pairs on template sequences and joining opposite-strand sites within the
// configured amplicon size bounds.
package engine

import (
	"sort"

	"paneval-core/primer"
)

// Config holds annealing-site search parameters.
type Config struct {
	MaxMM          int // max mismatches per primer
	TerminalWindow int // bases at the primer 3' end where mismatches are disallowed (0=allow)
	MinLen         int // minimum product length (0=unbounded)
	MaxLen         int // maximum product length (0=unbounded)
	HitCap         int // max stored sites per primer per template (0=unlimited)
	NeedSites      bool
}

// Engine predicts products with a fixed Config.
type Engine struct {
	cfg Config
}

func New(c Config) *Engine { return &Engine{cfg: c} }

// SimulateBatch predicts products for all pairs on one template.
func (e *Engine) SimulateBatch(seqID string, seq []byte, pairs []primer.Pair) []Product {
	var out []Product
	for i := range pairs {
		out = append(out, e.Simulate(seqID, seq, pairs[i])...)
	}
	return out
}

// Simulate predicts products of a single pair on one template. Both
// orientations are reported: forward primer upstream of the reverse site
// ("forward") and the swapped arrangement ("revcomp").
func (e *Engine) Simulate(seqID string, seq []byte, p primer.Pair) []Product {
	a := []byte(p.Forward)
	b := []byte(p.Reverse)
	ra := primer.RevComp(a)
	rb := primer.RevComp(b)

	hc := e.cfg.HitCap
	tw := e.cfg.TerminalWindow

	fwdA := primer.FindMatches(seq, a, e.cfg.MaxMM, hc, tw)
	fwdB := primer.FindMatches(seq, b, e.cfg.MaxMM, hc, tw)
	// The 3' end of a reverse-complemented primer sits at the leftmost
	// position, so the terminal window flips sides.
	revA := filterLeftTW(primer.FindMatches(seq, ra, e.cfg.MaxMM, hc, 0), tw)
	revB := filterLeftTW(primer.FindMatches(seq, rb, e.cfg.MaxMM, hc, 0), tw)

	minL, maxL := p.MinProduct, p.MaxProduct
	if minL == 0 {
		minL = e.cfg.MinLen
	}
	if maxL == 0 {
		maxL = e.cfg.MaxLen
	}

	out := e.join(seqID, seq, p.ID, p.Forward, p.Reverse, fwdA, revB, minL, maxL, "forward")
	out = append(out, e.join(seqID, seq, p.ID, p.Reverse, p.Forward, fwdB, revA, minL, maxL, "revcomp")...)
	return out
}

// filterLeftTW drops reverse-strand matches whose mismatches fall inside the
// first tw bases (the primer's 3' end after reverse complementing).
func filterLeftTW(ms []primer.Match, tw int) []primer.Match {
	if tw <= 0 {
		return ms
	}
	out := make([]primer.Match, 0, len(ms))
outer:
	for _, m := range ms {
		for _, j := range m.MismatchIdx {
			if j < tw {
				continue outer
			}
		}
		out = append(out, m)
	}
	return out
}

// join pairs upstream forward-strand sites with downstream reverse-strand
// sites. Reverse sites are sorted by start so the eligible window is found by
// binary search.
func (e *Engine) join(seqID string, seq []byte, pairID, fwdPrimer, revPrimer string,
	ups, downs []primer.Match, minL, maxL int, typ string,
) []Product {
	if len(ups) == 0 || len(downs) == 0 {
		return nil
	}
	flen := len(fwdPrimer)
	rlen := len(revPrimer)

	starts := make([]int, len(downs))
	for i, m := range downs {
		starts[i] = m.Pos
	}
	if !sort.IntsAreSorted(starts) {
		sort.SliceStable(downs, func(i, j int) bool { return downs[i].Pos < downs[j].Pos })
		for i, m := range downs {
			starts[i] = m.Pos
		}
	}

	var out []Product
	for _, mu := range ups {
		lo := mu.Pos + 1
		if minL > 0 {
			if v := mu.Pos + minL - rlen; v > lo {
				lo = v
			}
		}
		hi := len(seq) - rlen
		if maxL > 0 {
			if v := mu.Pos + maxL - rlen; v < hi {
				hi = v
			}
		}
		if hi < lo {
			continue
		}
		iMin := sort.SearchInts(starts, lo)
		iMax := sort.Search(len(starts), func(i int) bool { return starts[i] > hi })
		for j := iMin; j < iMax; j++ {
			md := downs[j]
			end := md.Pos + rlen
			length := end - mu.Pos
			if (minL != 0 && length < minL) || (maxL != 0 && length > maxL) {
				continue
			}
			pr := Product{
				PairID:         pairID,
				SequenceID:     seqID,
				Start:          mu.Pos,
				End:            end,
				Length:         length,
				Type:           typ,
				FwdMM:          mu.Mismatches,
				RevMM:          md.Mismatches,
				FwdMismatchIdx: mu.MismatchIdx,
				RevMismatchIdx: flipIdx(rlen, md.MismatchIdx),
				Fwd3Mismatch:   mu.Terminal3Mismatch(),
				Rev3Mismatch:   contains(md.MismatchIdx, 0), // rc orientation: 3' end is index 0
				FwdPrimer:      fwdPrimer,
				RevPrimer:      revPrimer,
			}
			if e.cfg.NeedSites {
				if mu.Pos+flen <= len(seq) {
					pr.FwdSite = string(seq[mu.Pos : mu.Pos+flen])
				}
				pr.RevSite = string(primer.RevComp(seq[md.Pos:end]))
			}
			out = append(out, pr)
		}
	}
	return out
}

// flipIdx converts mismatch indices from forward-strand scan order to primer
// 5'→3' coordinates.
func flipIdx(n int, idx []int) []int {
	if len(idx) == 0 {
		return nil
	}
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = n - 1 - v
	}
	return out
}

func contains(idx []int, v int) bool {
	for _, x := range idx {
		if x == v {
			return true
		}
	}
	return false
}
