package primer

import "bytes"

// Match is a single annealing site of a primer on the forward strand of a
// template. Positions in MismatchIdx are 0-based in primer coordinates
// (5'→3').
type Match struct {
	Pos         int
	Mismatches  int
	Length      int
	MismatchIdx []int
}

// Terminal3Mismatch reports whether the primer's 3'-terminal base is
// mismatched at this site. Products seeded by such sites are not extended
// by polymerases lacking 3'→5' exonuclease activity.
func (m Match) Terminal3Mismatch() bool {
	for _, j := range m.MismatchIdx {
		if j == m.Length-1 {
			return true
		}
	}
	return false
}

func isUnambiguous(p []byte) bool {
	for _, c := range p {
		if c != 'A' && c != 'C' && c != 'G' && c != 'T' {
			return false
		}
	}
	return true
}

// FindMatches scans seq for annealing sites of primer allowing up to maxMM
// mismatches. capHits == 0 means unlimited. terminalWindow is the number of
// bases at the primer 3' end where mismatches are disallowed outright
// (0 = allow everywhere).
func FindMatches(seq, primer []byte, maxMM, capHits, terminalWindow int) []Match {
	pl := len(primer)
	if pl == 0 || len(seq) < pl {
		return nil
	}

	// Exact unambiguous primers ride on bytes.Index jump scanning.
	if maxMM == 0 && isUnambiguous(primer) {
		out := make([]Match, 0, 8)
		for i := 0; ; {
			j := bytes.Index(seq[i:], primer)
			if j < 0 {
				break
			}
			pos := i + j
			out = append(out, Match{Pos: pos, Length: pl})
			if capHits > 0 && len(out) >= capHits {
				break
			}
			i = pos + 1
		}
		return out
	}

	// Mismatches at index >= cutoff are rejected.
	cutoff := pl - terminalWindow
	if terminalWindow <= 0 {
		cutoff = pl + 1
	}
	if cutoff < 0 {
		cutoff = 0
	}

	end := len(seq) - pl
	out := make([]Match, 0, 8)
window:
	for pos := 0; pos <= end; pos++ {
		mm := 0
		var idx []int
		for j := 0; j < pl; j++ {
			if !BaseMatch(seq[pos+j], primer[j]) {
				if j >= cutoff {
					continue window
				}
				mm++
				idx = append(idx, j)
				if mm > maxMM {
					continue window
				}
			}
		}
		out = append(out, Match{Pos: pos, Mismatches: mm, Length: pl, MismatchIdx: idx})
		if capHits > 0 && len(out) >= capHits {
			break
		}
	}
	return out
}
